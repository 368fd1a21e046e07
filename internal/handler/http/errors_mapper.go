package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-crud-keeper/internal/app"
	"github.com/MKhiriev/go-crud-keeper/internal/service"
	"github.com/MKhiriev/go-crud-keeper/internal/store"
	"github.com/MKhiriev/go-crud-keeper/internal/validators"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// errorMappings is checked in order; the first target matched by errors.Is
// decides the status and the envelope message.
var errorMappings = []errorMapping{
	{validators.ErrInvalidData, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{validators.ErrMalformedJSON, http.StatusBadRequest, app.MsgMalformedJSON},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{store.ErrForeignKeyViolation, http.StatusBadRequest, app.MsgInvalidDataProvided},

	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized, app.MsgAuthorizationRequired},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized, app.MsgAuthorizationRequired},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, app.MsgInvalidCredentials},
	{service.ErrTokenIsExpired, http.StatusUnauthorized, app.MsgTokenIsExpired},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	{service.ErrStaleToken, http.StatusUnauthorized, app.MsgStaleToken},

	{ErrAccessDenied, http.StatusForbidden, app.MsgAccessDenied},

	{ErrInvalidPathID, http.StatusNotFound, app.MsgNotFound},
	{store.ErrUserNotFound, http.StatusNotFound, app.MsgUserNotFound},
	{store.ErrItemNotFound, http.StatusNotFound, app.MsgItemNotFound},

	{store.ErrUniqueViolation, http.StatusConflict, app.MsgAlreadyExists},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError, app.MsgInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError, app.MsgInternalServerError},
	{store.ErrBeginningTransaction, http.StatusInternalServerError, app.MsgInternalServerError},
	{store.ErrCommitingTransaction, http.StatusInternalServerError, app.MsgInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError, app.MsgInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError, app.MsgInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError, app.MsgInternalServerError},
}

func lookupError(err error) errorMapping {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m
		}
	}
	return errorMapping{status: http.StatusInternalServerError, message: app.MsgInternalServerError}
}

func statusFromError(err error) int {
	return lookupError(err).status
}

// errorDetails builds the "details" member for err: the field map of a
// validation or constraint error, a generic string for server errors and
// nil otherwise.
func errorDetails(err error, status int) any {
	var verr *validators.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}

	var constraintErr *store.ConstraintError
	if errors.As(err, &constraintErr) {
		switch {
		case errors.Is(constraintErr.Kind, store.ErrUniqueViolation):
			field := constraintErr.Field
			if field == "" {
				field = validators.SchemaField
			}
			return map[string][]string{field: {validators.MsgAlreadyExists}}
		case errors.Is(constraintErr.Kind, store.ErrForeignKeyViolation):
			field := constraintErr.Field
			if field == "" {
				field = "user_id"
			}
			return map[string][]string{field: {validators.MsgUnknownRelated}}
		}
	}

	if status >= http.StatusInternalServerError {
		return app.MsgUnexpectedErrorDetails
	}

	return nil
}

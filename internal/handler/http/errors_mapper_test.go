package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-crud-keeper/internal/app"
	"github.com/MKhiriev/go-crud-keeper/internal/service"
	"github.com/MKhiriev/go-crud-keeper/internal/store"
	"github.com/MKhiriev/go-crud-keeper/internal/validators"
)

func Test_statusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", validators.NewValidationError("email", validators.MsgNotEmail), http.StatusBadRequest},
		{"malformed json", fmt.Errorf("%w: eof", validators.ErrMalformedJSON), http.StatusBadRequest},
		{"foreign key", &store.ConstraintError{Kind: store.ErrForeignKeyViolation, Err: errors.New("x")}, http.StatusBadRequest},
		{"no header", ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
		{"credentials", fmt.Errorf("login: %w", service.ErrInvalidCredentials), http.StatusUnauthorized},
		{"expired", fmt.Errorf("%w: %w", service.ErrTokenIsExpired, service.ErrTokenIsExpiredOrInvalid), http.StatusUnauthorized},
		{"stale", service.ErrStaleToken, http.StatusUnauthorized},
		{"forbidden", ErrAccessDenied, http.StatusForbidden},
		{"bad path id", ErrInvalidPathID, http.StatusNotFound},
		{"user not found", fmt.Errorf("get: %w", store.ErrUserNotFound), http.StatusNotFound},
		{"item not found", store.ErrItemNotFound, http.StatusNotFound},
		{"unique", &store.ConstraintError{Kind: store.ErrUniqueViolation, Field: "name", Err: errors.New("x")}, http.StatusConflict},
		{"query", fmt.Errorf("%w: boom", store.ErrExecutingQuery), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func Test_lookupError_ExpiredMessageWins(t *testing.T) {
	err := fmt.Errorf("%w: %w", service.ErrTokenIsExpired, service.ErrTokenIsExpiredOrInvalid)
	assert.Equal(t, app.MsgTokenIsExpired, lookupError(err).message)
}

func Test_errorDetails(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		want   any
	}{
		{
			name:   "validation fields",
			err:    validators.NewValidationError("name", validators.MsgRequired),
			status: http.StatusBadRequest,
			want:   map[string][]string{"name": {validators.MsgRequired}},
		},
		{
			name:   "unique with field",
			err:    &store.ConstraintError{Kind: store.ErrUniqueViolation, Field: "email"},
			status: http.StatusConflict,
			want:   map[string][]string{"email": {validators.MsgAlreadyExists}},
		},
		{
			name:   "unique without field",
			err:    &store.ConstraintError{Kind: store.ErrUniqueViolation},
			status: http.StatusConflict,
			want:   map[string][]string{validators.SchemaField: {validators.MsgAlreadyExists}},
		},
		{
			name:   "foreign key defaults to user_id",
			err:    &store.ConstraintError{Kind: store.ErrForeignKeyViolation},
			status: http.StatusBadRequest,
			want:   map[string][]string{"user_id": {validators.MsgUnknownRelated}},
		},
		{
			name:   "server error",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			want:   app.MsgUnexpectedErrorDetails,
		},
		{
			name:   "plain client error",
			err:    store.ErrUserNotFound,
			status: http.StatusNotFound,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorDetails(tt.err, tt.status))
		})
	}
}

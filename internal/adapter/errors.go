package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinels matched by [*APIError] through errors.Is, one per status class.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected status")

	ErrMalformedResponse = errors.New("malformed response")
	ErrInvalidAddress    = errors.New("invalid server address")
)

// APIError is a non-2xx reply of the API.
type APIError struct {
	StatusCode int
	// Message is the "error" member of the envelope, or the raw body when
	// the reply is not an envelope.
	Message string
	// Details is the raw "details" member: null, a string or a field map.
	Details json.RawMessage

	kind error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// Fields returns the per-field messages of a validation or conflict reply,
// or nil when details is not a field map.
func (e *APIError) Fields() map[string][]string {
	var fields map[string][]string
	if err := json.Unmarshal(e.Details, &fields); err != nil {
		return nil
	}
	return fields
}

package validators

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrMalformedJSON   = errors.New("malformed JSON body")
	ErrInvalidData     = errors.New("invalid data")
)

// Messages attached to offending fields.
const (
	MsgRequired       = "Missing data for required field."
	MsgUnknownField   = "Unknown field."
	MsgNull           = "Field may not be null."
	MsgNotString      = "Not a valid string."
	MsgNotInteger     = "Not a valid integer."
	MsgNotEmail       = "Not a valid email address."
	MsgInvalidValue   = "Invalid value."
	MsgInvalidInput   = "Invalid input type."
	MsgMaxLengthFmt   = "Longer than maximum length %s."
	MsgMinLengthFmt   = "Shorter than minimum length %s."
	MsgEqualFmt       = "Must be equal to %s."
	MsgAlreadyExists  = "already exists."
	MsgUnknownRelated = "Related user does not exist."
)

// SchemaField is the key used for errors that concern the payload as a
// whole rather than one of its fields.
const SchemaField = "_schema"

// ValidationError lists every offending field of a payload.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns a ValidationError with a single field message.
func NewValidationError(field, message string) *ValidationError {
	e := &ValidationError{Fields: make(map[string][]string)}
	e.Add(field, message)
	return e
}

// Add appends message to the messages of field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Has reports whether field already has at least one message.
func (e *ValidationError) Has(field string) bool {
	return len(e.Fields[field]) > 0
}

// Error renders the fields in sorted order, e.g.
// "invalid data: email: Not a valid email address.; username: ...".
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], " ")))
	}

	return fmt.Sprintf("%s: %s", ErrInvalidData, strings.Join(parts, "; "))
}

// Is makes errors.Is(err, ErrInvalidData) true for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidData
}

// orNil returns nil for an empty ValidationError.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

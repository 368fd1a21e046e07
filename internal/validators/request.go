package validators

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RequestValidator decodes and validates wire DTOs.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator constructs a RequestValidator whose errors are keyed
// by JSON field names.
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	return &RequestValidator{validate: v}
}

// Decode fills dst from body and validates it.
//
// The body must be a JSON object; an empty body is treated as {}. Each key is
// matched against the JSON names of dst's fields; unknown keys, nulls and
// values of the wrong JSON type are reported, then the `validate` tags run
// for the fields that decoded cleanly.
func (v *RequestValidator) Decode(ctx context.Context, body []byte, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, dst)
	}
	target := rv.Elem()

	raw, err := decodeObject(body)
	if err != nil {
		return err
	}

	fields := fieldIndex(target.Type())
	verr := &ValidationError{}

	for key, value := range raw {
		idx, ok := fields[key]
		if !ok {
			verr.Add(key, MsgUnknownField)
			continue
		}

		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			verr.Add(key, MsgNull)
			continue
		}

		field := target.Field(idx)
		if err := json.Unmarshal(value, field.Addr().Interface()); err != nil {
			field.Set(reflect.Zero(field.Type()))
			verr.Add(key, typeMessage(field.Type()))
		}
	}

	if err := v.collect(verr, dst); err != nil {
		return err
	}

	return verr.orNil()
}

func (v *RequestValidator) collect(verr *ValidationError, obj any) error {
	err := v.validate.Struct(obj)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %w", ErrUnsupportedType, err)
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	for _, fe := range fieldErrs {
		name := fe.Field()
		// a field that failed to decode already carries its message
		if verr.Has(name) {
			continue
		}
		verr.Add(name, tagMessage(fe))
	}

	return nil
}

func decodeObject(body []byte) (map[string]json.RawMessage, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, NewValidationError(SchemaField, MsgInvalidInput)
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}

	if raw == nil {
		return nil, NewValidationError(SchemaField, MsgInvalidInput)
	}

	return raw, nil
}

func fieldIndex(t reflect.Type) map[string]int {
	index := make(map[string]int, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := jsonFieldName(f)
		if name == "" {
			continue
		}
		index[name] = i
	}
	return index
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	default:
		return name
	}
}

func typeMessage(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return MsgNotString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return MsgNotInteger
	default:
		return MsgInvalidValue
	}
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "max":
		return fmt.Sprintf(MsgMaxLengthFmt, fe.Param())
	case "min":
		return fmt.Sprintf(MsgMinLengthFmt, fe.Param())
	case "email":
		return MsgNotEmail
	case "eq":
		return fmt.Sprintf(MsgEqualFmt, fe.Param())
	default:
		return MsgInvalidValue
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators turns request bodies into wire DTOs and enforces their
// field-level rules.
//
// A Decoder decodes strictly and then validates; a ValidationError lists
// every offending field of the payload with its messages.
//
// Rules are declared with `validate` struct tags (go-playground/validator)
// on the DTOs in package models; field names in errors are the JSON names.
package validators

import "context"

// Decoder decodes a raw request body into dst and validates the result.
type Decoder interface {
	// Decode fills dst (a pointer to a DTO struct) from body. On failure it
	// returns a *ValidationError listing every offending field, or
	// ErrMalformedJSON when body is not JSON at all.
	Decode(ctx context.Context, body []byte, dst any) error
}

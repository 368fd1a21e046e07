// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors raised by the middlewares and handlers of this package.
// Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrAccessDenied is returned by requireRole when the role claim of the
	// token differs from the role the route requires.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidPathID is returned when the {id} path segment is not a
	// valid identifier.
	ErrInvalidPathID = errors.New("invalid id in path")
)

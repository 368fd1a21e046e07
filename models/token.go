// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of an identity token: the user's id and role on top
// of the registered JWT claims (iss, sub, iat, exp).
type Claims struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`

	jwt.RegisteredClaims
}

// Token wraps a signed identity token together with the claims it carries.
type Token struct {
	// Token is the underlying JWT, kept for callers that need the header or
	// raw claims. Excluded from JSON.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS form (header.payload.signature).
	SignedString string `json:"-"`

	// UserID is the "id" claim.
	UserID int64 `json:"-"`

	// Role is the "role" claim.
	Role string `json:"-"`
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}

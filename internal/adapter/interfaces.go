// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed client of the go-crud-keeper HTTP API.
//
// The primary abstraction is [ServerAdapter]. Replies are unwrapped from the
// {"success", "data", "message"} envelope; failures are returned as
// [*APIError], which matches the sentinel of its status class with
// [errors.Is] (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-crud-keeper/models"
)

// ServerAdapter is the client side of the go-crud-keeper API.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to every later request.
	// Login calls it on success.
	SetToken(token string)

	// Token returns the stored bearer token, or "" if none is set.
	Token() string

	// Register creates an account through POST /api/auth/register. A role
	// may be chosen on this route.
	Register(ctx context.Context, req models.UserRegisterRequest) (models.UserView, error)

	// Login exchanges credentials for an access token through
	// POST /api/auth/login and stores it. The returned token carries the id
	// and role claims, read without verifying the signature.
	Login(ctx context.Context, req models.LoginRequest) (models.Token, error)

	CreateUser(ctx context.Context, req models.UserCreateRequest) (models.UserView, error)
	ListUsers(ctx context.Context) ([]models.UserView, error)
	GetUser(ctx context.Context, userID int64) (models.UserView, error)
	UpdateUser(ctx context.Context, userID int64, req models.UserUpdateRequest) (models.UserView, error)
	// DeleteUser requires an admin token.
	DeleteUser(ctx context.Context, userID int64) error

	// CreateItem, UpdateItem and DeleteItem require an admin token.
	CreateItem(ctx context.Context, req models.ItemCreateRequest) (models.ItemView, error)
	ListItems(ctx context.Context) ([]models.ItemView, error)
	GetItem(ctx context.Context, itemID int64) (models.ItemView, error)
	UpdateItem(ctx context.Context, itemID int64, req models.ItemUpdateRequest) (models.ItemView, error)
	DeleteItem(ctx context.Context, itemID int64) error

	// Version returns the version reported by GET /api/version.
	Version(ctx context.Context) (string, error)
}

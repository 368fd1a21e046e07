// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-crud-keeper HTTP handlers and middleware.
//
// Msg* constants are the human-readable strings written into the "error" or
// "message" member of the response envelope.
package app

// Failure messages, written to the "error" member.
const (
	// MsgInvalidDataProvided accompanies a field-by-field validation error.
	MsgInvalidDataProvided = "Invalid data provided"

	// MsgMalformedJSON is returned when the request body is not valid JSON.
	MsgMalformedJSON = "Malformed JSON body"

	// MsgInvalidCredentials is returned by login for an unknown username and
	// for a wrong password alike.
	MsgInvalidCredentials = "Invalid username or password"

	// MsgAuthorizationRequired is returned when the "Authorization" header is
	// absent or is not a bearer token.
	MsgAuthorizationRequired = "Authorization required"

	MsgTokenIsExpired          = "Token is expired"
	MsgTokenIsExpiredOrInvalid = "Token is expired or invalid"

	// MsgStaleToken is returned when the token's user has been deleted.
	MsgStaleToken = "Token user no longer exists"

	// MsgAccessDenied is returned when the token's role is not the one the
	// route requires.
	MsgAccessDenied = "Access denied"

	MsgUserNotFound = "User not found"
	MsgItemNotFound = "Item not found"
	MsgNotFound     = "Resource not found"

	// MsgAlreadyExists is returned when a write would duplicate a unique
	// column. Details name the column.
	MsgAlreadyExists = "Resource already exists"

	// MsgInternalServerError is returned for every unclassified failure. The
	// cause is logged, never sent.
	MsgInternalServerError = "Internal server error"
)

// Details messages, written to the "details" member.
const (
	// MsgUnexpectedErrorDetails accompanies every 500 reply.
	MsgUnexpectedErrorDetails = "An unexpected error occurred. See the server logs for this trace id."

	// MsgBodyTooLarge is the "_schema" message for an oversized request body.
	MsgBodyTooLarge = "Request body is too large."
)

// Success messages, written to the "message" member.
const (
	MsgOperationSuccessful = "Operation successful"
	MsgUserCreated         = "User created successfully"
	MsgUserUpdated         = "User updated successfully"
	MsgUserDeleted         = "User deleted successfully"
	MsgLoginSuccessful     = "Login successful"
	MsgItemCreated         = "Item created successfully"
	MsgItemUpdated         = "Item updated successfully"
	MsgItemDeleted         = "Item deleted successfully"
)


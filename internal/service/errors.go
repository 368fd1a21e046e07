package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned by Login for an unknown username and
	// for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrPasswordHashingFailed = errors.New("password hashing failed")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenIsExpired          = errors.New("token is expired")

	// ErrStaleToken is returned when a valid token names a user that has
	// since been deleted.
	ErrStaleToken = errors.New("token refers to a user that no longer exists")

	ErrVersionIsNotSpecified = errors.New("version is not specified")
)

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates a missing database DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates a missing HTTP address or a
	// non-positive request timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidTokenConfigs indicates a missing sign key or issuer, or a
	// non-positive token duration.
	ErrInvalidTokenConfigs = errors.New("invalid token configuration")
	// ErrInvalidPasswordHashCost indicates a bcrypt cost outside [4, 31].
	ErrInvalidPasswordHashCost = errors.New("invalid password hash cost")
	// ErrInvalidLogLevel indicates a log level zerolog does not know.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty database DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAuthConfigs indicates missing token signing secrets.
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidFilesConfigs indicates invalid file storage limits
	// (for example, a negative maximum upload size).
	ErrInvalidFilesConfigs = errors.New("invalid file storage configuration")
)

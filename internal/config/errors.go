package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty database DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates invalid HTTP server settings
	// (for example, missing listen address or non-positive timeout).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a non-positive session lifetime).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidCatalogConfigs indicates invalid catalog client settings
	// (for example, missing base URL or non-positive lookup timeout).
	ErrInvalidCatalogConfigs = errors.New("invalid catalog configuration")
)

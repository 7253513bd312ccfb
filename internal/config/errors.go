package config

import "errors"

// Validation errors returned by [FrameConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid adapter settings
	// (for example, missing endpoint URL or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid asset store settings
	// (for example, empty asset directory or unknown eviction policy).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidWorkerConfigs indicates invalid loop timing settings
	// (for example, a zero sync or refresh interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)

package store

import "errors"

// Sentinel errors returned by content store methods to signal well-known
// failure conditions. Callers should use [errors.Is] to match against these
// values.
var (
	// ErrInvalidAssetID is returned when an operation names an asset whose
	// ID is not a canonical lowercase UUID.
	ErrInvalidAssetID = errors.New("invalid asset id")

	// ErrInvalidContentHash is returned when an operation names an asset
	// whose content hash is not a lowercase hex digest.
	ErrInvalidContentHash = errors.New("invalid content hash")

	// ErrHashMismatch is returned by Put when the digest of the streamed
	// bytes does not match the expected content hash. The temporary file
	// is discarded and nothing becomes visible in the store.
	ErrHashMismatch = errors.New("content hash mismatch")
)

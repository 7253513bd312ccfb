package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the picture
// frame application. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the version string.
	App App `envPrefix:"APP_"`

	// Adapter holds the middleware endpoint settings used by the outbound
	// HTTP transport.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds settings for the on-disk asset store, including the
	// asset root directory and the eviction policy.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds timing settings for the sync and display loops.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application
	// (e.g. "1.2.3").
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Adapter holds settings for the outbound connection to the middleware
// service that serves the asset manifest and re-encoded images.
type Adapter struct {
	// EndpointURL is the base URL of the middleware service
	// (e.g. "http://frame-middleware.local:5000").
	// Env: ADAPTER_ENDPOINT_URL
	EndpointURL string `env:"ENDPOINT_URL"`

	// RequestTimeout bounds connecting, response headers, and whole
	// manifest requests (e.g. "30s", "1m"). It does not bound reading a
	// streamed image body, so a large bitmap on a slow medium is never
	// cut off mid-transfer.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage holds settings for the local asset store on the removable medium.
type Storage struct {
	// AssetDir is the root directory under which assets are cached, one
	// subdirectory per asset ID, one file per subdirectory named by
	// content hash.
	// Env: STORAGE_ASSET_DIR
	AssetDir string `env:"ASSET_DIR"`

	// MinFreeBytes is the worst-case on-disk size of one re-encoded asset.
	// Before each download at least this much free space is ensured,
	// evicting cached assets if necessary. Zero means unset (the default
	// applies); any negative value disables the check and eviction.
	// Env: STORAGE_MIN_FREE_BYTES
	MinFreeBytes int64 `env:"MIN_FREE_BYTES"`

	// DeleteOrphans enables pruning of files and directories under
	// AssetDir that do not match the asset naming scheme during scans.
	// Env: STORAGE_DELETE_ORPHANS
	DeleteOrphans bool `env:"DELETE_ORPHANS"`

	// EvictRetained allows the space reclaimer to cull assets that are
	// still wanted by the current manifest once no other victims remain.
	// Env: STORAGE_EVICT_RETAINED
	EvictRetained bool `env:"EVICT_RETAINED"`

	// EvictionPolicy selects the victim ordering for space reclamation:
	// "oldest-first" (default) or "scan-order".
	// Env: STORAGE_EVICTION_POLICY
	EvictionPolicy string `env:"EVICTION_POLICY"`
}

// Workers holds timing settings for the background phases of the frame loop.
type Workers struct {
	// SyncInterval defines how often a sync cycle runs (e.g. "1h").
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// RefreshInterval defines how often the displayed picture changes
	// (e.g. "5m").
	// Env: WORKERS_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`

	// DownloadRetries is the number of immediate retries per asset after
	// a failed download, before the asset is skipped until the next cycle.
	// Env: WORKERS_DOWNLOAD_RETRIES
	DownloadRetries int `env:"DOWNLOAD_RETRIES"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}

package config

import (
	"fmt"
	"time"
)

// Defaults applied by GetFrameConfig when a setting is absent from every
// configuration source. The intervals match the original device firmware.
const (
	DefaultRequestTimeout  = 15 * time.Second
	DefaultSyncInterval    = time.Hour
	DefaultRefreshInterval = 5 * time.Minute
	DefaultMinFreeBytes    = 1 << 20 // worst case for one fixed-format bitmap
	DefaultDownloadRetries = 2
	DefaultEvictionPolicy  = "oldest-first"
)

// FrameAdapter holds network settings used by the outbound transport layer.
type FrameAdapter struct {
	// EndpointURL is the base URL of the middleware service.
	EndpointURL string
	// RequestTimeout bounds connect, response headers, and whole manifest
	// requests; streamed download bodies are exempt.
	RequestTimeout time.Duration
}

// FrameStorage groups asset store settings.
type FrameStorage struct {
	// AssetDir is the root directory of the local asset cache.
	AssetDir string
	// MinFreeBytes is the per-download free space requirement. Negative
	// disables the check and with it all eviction.
	MinFreeBytes int64
	// DeleteOrphans enables pruning of non-conforming files during scans.
	DeleteOrphans bool
	// EvictRetained allows culling manifest-wanted assets as a last resort.
	EvictRetained bool
	// EvictionPolicy names the victim ordering for space reclamation.
	EvictionPolicy string
}

// FrameWorkers contains loop timing settings.
type FrameWorkers struct {
	// SyncInterval defines how often a sync cycle runs.
	SyncInterval time.Duration
	// RefreshInterval defines how often the displayed picture changes.
	RefreshInterval time.Duration
	// DownloadRetries is the immediate retry budget per asset download.
	DownloadRetries int
}

// FrameConfig is the top-level frame configuration assembled from
// [StructuredConfig].
type FrameConfig struct {
	// Version is the application version string.
	Version string
	// Adapter contains transport address and timeout settings.
	Adapter FrameAdapter
	// Storage contains asset store settings.
	Storage FrameStorage
	// Workers contains loop timing settings.
	Workers FrameWorkers
}

// GetFrameConfig builds and validates the frame runtime config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps the fields
// relevant to the frame runtime, fills in defaults for unset timing and
// storage values, and validates the resulting [FrameConfig].
func GetFrameConfig() (*FrameConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	frameCfg := &FrameConfig{
		Version: cfg.App.Version,
		Adapter: FrameAdapter{
			EndpointURL:    cfg.Adapter.EndpointURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: FrameStorage{
			AssetDir:       cfg.Storage.AssetDir,
			MinFreeBytes:   cfg.Storage.MinFreeBytes,
			DeleteOrphans:  cfg.Storage.DeleteOrphans,
			EvictRetained:  cfg.Storage.EvictRetained,
			EvictionPolicy: cfg.Storage.EvictionPolicy,
		},
		Workers: FrameWorkers{
			SyncInterval:    cfg.Workers.SyncInterval,
			RefreshInterval: cfg.Workers.RefreshInterval,
			DownloadRetries: cfg.Workers.DownloadRetries,
		},
	}
	frameCfg.applyDefaults()

	return frameCfg, frameCfg.validate()
}

func (cfg *FrameConfig) applyDefaults() {
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Storage.MinFreeBytes == 0 {
		cfg.Storage.MinFreeBytes = DefaultMinFreeBytes
	}
	if cfg.Storage.EvictionPolicy == "" {
		cfg.Storage.EvictionPolicy = DefaultEvictionPolicy
	}
	if cfg.Workers.SyncInterval == 0 {
		cfg.Workers.SyncInterval = DefaultSyncInterval
	}
	if cfg.Workers.RefreshInterval == 0 {
		cfg.Workers.RefreshInterval = DefaultRefreshInterval
	}
	if cfg.Workers.DownloadRetries == 0 {
		cfg.Workers.DownloadRetries = DefaultDownloadRetries
	}
}

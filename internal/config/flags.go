package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-endpoint-url middleware base URL
//	-request-timeout outbound request timeout (e.g., "30s", "1m")
//	-asset-dir asset cache root directory
//	-min-free-bytes worst-case per-asset free space requirement
//	-delete-orphans prune non-conforming files during scans
//	-evict-retained allow eviction of manifest-wanted assets as a last resort
//	-eviction-policy victim ordering ("oldest-first" or "scan-order")
//	-sync-interval sync cycle interval (e.g., "1h")
//	-refresh-interval picture refresh interval (e.g., "5m")
//	-download-retries immediate retries per asset download
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var endpointURL string
	var requestTimeout time.Duration
	var assetDir string
	var minFreeBytes int64
	var deleteOrphans bool
	var evictRetained bool
	var evictionPolicy string
	var syncInterval time.Duration
	var refreshInterval time.Duration
	var downloadRetries int
	var jsonConfigPath string

	flag.StringVar(&endpointURL, "endpoint-url", "", "Middleware base URL")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Outbound request timeout (e.g., 30s, 1m)")
	flag.StringVar(&assetDir, "asset-dir", "", "Asset cache root directory")
	flag.Int64Var(&minFreeBytes, "min-free-bytes", 0, "Worst-case per-asset free space requirement")
	flag.BoolVar(&deleteOrphans, "delete-orphans", false, "Prune non-conforming files during scans")
	flag.BoolVar(&evictRetained, "evict-retained", false, "Allow eviction of manifest-wanted assets as a last resort")
	flag.StringVar(&evictionPolicy, "eviction-policy", "", "Eviction victim ordering (oldest-first or scan-order)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Sync cycle interval (e.g., 1h)")
	flag.DurationVar(&refreshInterval, "refresh-interval", 0, "Picture refresh interval (e.g., 5m)")
	flag.IntVar(&downloadRetries, "download-retries", 0, "Immediate retries per asset download")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		Adapter: Adapter{
			EndpointURL:    endpointURL,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			AssetDir:       assetDir,
			MinFreeBytes:   minFreeBytes,
			DeleteOrphans:  deleteOrphans,
			EvictRetained:  evictRetained,
			EvictionPolicy: evictionPolicy,
		},
		Workers: Workers{
			SyncInterval:    syncInterval,
			RefreshInterval: refreshInterval,
			DownloadRetries: downloadRetries,
		},
		JSONFilePath: jsonConfigPath,
	}
}

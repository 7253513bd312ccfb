package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Cross-field rules are enforced on the [FrameConfig] view instead, after
// defaults have been applied; the structured form accepts any shape the
// sources produce.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *FrameConfig) validate() error {
	if cfg.Adapter.EndpointURL == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Storage.AssetDir == "" {
		return ErrInvalidStorageConfigs
	}
	switch cfg.Storage.EvictionPolicy {
	case "oldest-first", "scan-order":
	default:
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.RefreshInterval <= 0 || cfg.Workers.DownloadRetries < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

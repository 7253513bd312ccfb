package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Adapter struct {
		EndpointURL    string   `json:"endpoint_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Storage struct {
		AssetDir       string `json:"asset_dir"`
		MinFreeBytes   int64  `json:"min_free_bytes"`
		DeleteOrphans  bool   `json:"delete_orphans"`
		EvictRetained  bool   `json:"evict_retained"`
		EvictionPolicy string `json:"eviction_policy"`
	} `json:"storage,omitempty"`

	Workers struct {
		SyncInterval    Duration `json:"sync_interval"`
		RefreshInterval Duration `json:"refresh_interval"`
		DownloadRetries int      `json:"download_retries"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version: jsonCfg.App.Version,
		},
		Adapter: Adapter{
			EndpointURL:    jsonCfg.Adapter.EndpointURL,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Storage: Storage{
			AssetDir:       jsonCfg.Storage.AssetDir,
			MinFreeBytes:   jsonCfg.Storage.MinFreeBytes,
			DeleteOrphans:  jsonCfg.Storage.DeleteOrphans,
			EvictRetained:  jsonCfg.Storage.EvictRetained,
			EvictionPolicy: jsonCfg.Storage.EvictionPolicy,
		},
		Workers: Workers{
			SyncInterval:    time.Duration(jsonCfg.Workers.SyncInterval),
			RefreshInterval: time.Duration(jsonCfg.Workers.RefreshInterval),
			DownloadRetries: jsonCfg.Workers.DownloadRetries,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

package service

import (
	"context"

	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/models"
)

// Planner defines the contract for the stateless reconciliation step: given
// the authoritative remote manifest and the locally scanned inventory, decide
// what to delete and what to fetch.
type Planner interface {
	// BuildSyncPlan compares manifest against inventory and returns the
	// plan that converges the cache on the manifest. An asset whose hash
	// changed appears in both halves of the plan: its stale file in
	// Delete and its new content in Fetch. The comparison is purely
	// in-memory and has no side effects.
	BuildSyncPlan(ctx context.Context, manifest models.Manifest, inventory models.Inventory) (models.SyncPlan, error)
}

// Reclaimer defines the contract for freeing space on the storage medium
// ahead of a download.
type Reclaimer interface {
	// EnsureFree evicts cached assets until at least need bytes are free
	// on the medium. Assets whose id→hash pair appears in retain are
	// spared for as long as possible; whether they may be culled at all
	// is an implementation policy. Returns ErrNotEnoughSpace when the
	// target cannot be reached.
	EnsureFree(ctx context.Context, need int64, retain map[string]string) error
}

// SyncRunner defines the contract for executing one full sync cycle:
// fetch manifest, scan, plan, delete, download.
type SyncRunner interface {
	// RunSyncCycle performs one cycle and reports how it went. Overlapping
	// calls are coalesced: if a cycle is already in flight the call
	// returns immediately with a SyncSkipped report. A manifest fetch
	// failure aborts the whole cycle before any local change; individual
	// asset failures are skipped and retried on the next cycle.
	RunSyncCycle(ctx context.Context) (models.SyncReport, error)
}

// Slideshow defines the contract for choosing the next picture to display.
type Slideshow interface {
	// Next re-scans the library and returns a uniformly random committed
	// asset, avoiding previousID whenever more than one asset is cached.
	// Returns ErrNoAssets when the cache is empty.
	Next(ctx context.Context, previousID string) (models.Asset, error)
}

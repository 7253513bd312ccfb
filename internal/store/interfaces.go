package store

import (
	"context"
	"io"

	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/models"
)

// Library is the read-only view of the content store. The slideshow selector
// holds only this capability; all mutation stays with the sync phase.
type Library interface {
	// Scan walks the asset root and returns the inventory of fully
	// committed assets. The result is never cached; each call reflects the
	// medium as it is right now. Scan never writes: orphans are ignored
	// and the newest file wins when an ID holds duplicates, so a
	// write-protected or half-broken medium still yields its resident
	// assets.
	Scan(ctx context.Context) (models.Inventory, error)
}

// ContentStore is the full read-write capability over the asset cache. It is
// mutated only from within a sync cycle: cleanup, plan deletions, download
// commits, and space-reclaimer evictions.
type ContentStore interface {
	Library

	// Prune scans like [Library.Scan] but also repairs the medium: files
	// and directories outside the asset naming scheme are removed when
	// the store was configured to delete orphans, and stale duplicate
	// files for an ID are always removed. A file that cannot be removed
	// is logged and skipped; it never fails the call. Returns the
	// inventory left after cleanup.
	Prune(ctx context.Context) (models.Inventory, error)

	// Put streams r into the store and commits it as the asset (id,
	// contentHash). The data is written to a temporary file, verified
	// against contentHash, and atomically renamed into place; on any
	// failure the store is left as if the call never happened.
	Put(ctx context.Context, id, contentHash string, r io.Reader) (models.Asset, error)

	// Delete removes the asset's file, and its directory once empty.
	// Deleting an asset that is already gone is not an error.
	Delete(ctx context.Context, asset models.Asset) error

	// FreeBytes reports the free space remaining on the medium holding
	// the asset root.
	FreeBytes() (int64, error)
}

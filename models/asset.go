package models

import "time"

// Asset is the unit of storage and display: one remote picture cached as a
// single file on the removable medium.
type Asset struct {
	// ID is the opaque stable identifier assigned by the remote system,
	// unique per logical picture. On disk it names the asset's directory.
	ID string `json:"id"`

	// ContentHash is the hex digest of the asset's bytes. It changes if and
	// only if the remote content changed, and names the file inside the
	// asset's directory.
	ContentHash string `json:"content_hash"`

	// SizeBytes is the on-disk size, used for space accounting.
	SizeBytes int64 `json:"size_bytes"`

	// LocalPath is derived deterministically from (ID, ContentHash):
	// <root>/<id>/<content_hash>.bmp. Two resident files never share an ID
	// with different hashes.
	LocalPath string `json:"local_path"`

	// ModTime is the file's modification time, used only as an eviction
	// ordering hint. Zero for assets that have not been committed yet.
	ModTime time.Time `json:"-"`
}

// Manifest is the remote mapping of asset ID to content hash for every asset
// that currently qualifies for display. It is a snapshot: the most recently
// fetched manifest is authoritative and is never merged with an older one.
type Manifest map[string]string

// Inventory is the locally derived mapping of asset ID to cached Asset,
// recovered by scanning the content store. It is never persisted between
// sync cycles; the store itself is the source of truth.
type Inventory map[string]Asset

// Hashes reduces the inventory to its id→hash mapping, the shape the
// reconciler compares against a Manifest.
func (inv Inventory) Hashes() map[string]string {
	hashes := make(map[string]string, len(inv))
	for id, asset := range inv {
		hashes[id] = asset.ContentHash
	}
	return hashes
}

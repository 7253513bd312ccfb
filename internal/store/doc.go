// Package store implements the content store: the on-disk asset cache on the
// removable medium.
//
// Assets live under a fixed root, one subdirectory per asset ID, one file per
// subdirectory named by content hash. No other persisted index exists — the
// directory tree is the source of truth and every inventory is recovered by
// scanning it, so the store self-heals if the medium is swapped, reformatted,
// or left partially written by a previous run.
//
// Writes are crash-safe: a download is streamed to a hidden temporary file in
// the asset's directory, verified against its content hash, and renamed into
// place only on success. A scan can never observe a half-written asset.
package store

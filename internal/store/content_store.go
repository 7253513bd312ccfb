package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"

	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/config"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/logger"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/utils"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/models"
)

// assetExt is the extension of every committed asset file. The middleware
// serves exactly one format, so the extension is fixed.
const assetExt = ".bmp"

// SpaceFunc reports the free bytes available on the medium holding path.
// Injected so tests can simulate space pressure without a real device.
type SpaceFunc func(path string) (int64, error)

type contentStore struct {
	fs            afero.Fs
	root          string
	deleteOrphans bool
	space         SpaceFunc
	logger        *logger.Logger
}

// NewContentStore constructs a ContentStore rooted at cfg.AssetDir on the
// host filesystem, creating the root directory if needed.
func NewContentStore(cfg config.FrameStorage, log *logger.Logger) (ContentStore, error) {
	return newContentStore(afero.NewOsFs(), diskFree, cfg, log)
}

func newContentStore(fsys afero.Fs, space SpaceFunc, cfg config.FrameStorage, log *logger.Logger) (ContentStore, error) {
	if err := fsys.MkdirAll(cfg.AssetDir, 0o755); err != nil {
		return nil, fmt.Errorf("create asset root: %w", err)
	}

	return &contentStore{
		fs:            fsys,
		root:          cfg.AssetDir,
		deleteOrphans: cfg.DeleteOrphans,
		space:         space,
		logger:        log,
	}, nil
}

// Scan implements [Library]. It reads the asset root one directory deep:
// UUID-named directories holding hash-named files are assets, everything
// else is an orphan. Scan never deletes anything, so the display path works
// even on a write-protected medium; when an ID holds more than one file the
// newest by modification time represents the asset and the rest are left
// for [ContentStore.Prune].
func (s *contentStore) Scan(ctx context.Context) (models.Inventory, error) {
	return s.walk(ctx, false)
}

// Prune implements [ContentStore]. It performs the same walk as Scan, but
// additionally removes orphans (when DeleteOrphans is set) and stale
// duplicate files.
//
// Two committed files under one ID cannot be produced by a sync cycle
// (deletion precedes the replacement fetch), but an externally written
// medium can contain them; the older file is treated as stale. Removal
// failures are logged and skipped so a flaky medium never blocks the cycle.
func (s *contentStore) Prune(ctx context.Context) (models.Inventory, error) {
	return s.walk(ctx, true)
}

func (s *contentStore) walk(ctx context.Context, clean bool) (models.Inventory, error) {
	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		return nil, fmt.Errorf("read asset root: %w", err)
	}

	inventory := make(models.Inventory, len(entries))
	for _, entry := range entries {
		if err = ctx.Err(); err != nil {
			return nil, err
		}

		name := entry.Name()
		fullDir := filepath.Join(s.root, name)

		if !entry.IsDir() || !utils.IsAssetID(name) {
			s.handleOrphan(fullDir, entry.IsDir(), clean)
			continue
		}

		files, err := afero.ReadDir(s.fs, fullDir)
		if err != nil {
			return nil, fmt.Errorf("read asset dir %s: %w", name, err)
		}

		for _, file := range files {
			path := filepath.Join(fullDir, file.Name())

			hash, ok := splitAssetFileName(file.Name())
			if file.IsDir() || !ok {
				s.handleOrphan(path, file.IsDir(), clean)
				continue
			}

			asset := models.Asset{
				ID:          name,
				ContentHash: hash,
				SizeBytes:   file.Size(),
				LocalPath:   path,
				ModTime:     file.ModTime(),
			}

			if existing, dup := inventory[name]; dup {
				stale := existing
				if asset.ModTime.Before(existing.ModTime) {
					stale, asset = asset, existing
				}
				if clean {
					s.logger.Warn().
						Str("asset_id", name).
						Str("stale_hash", stale.ContentHash).
						Msg("removing stale duplicate for asset")
					if err := s.fs.Remove(stale.LocalPath); err != nil {
						s.logger.Warn().Err(err).
							Str("path", stale.LocalPath).
							Msg("failed to remove stale duplicate")
					}
				}
			}
			inventory[name] = asset
		}
	}

	return inventory, nil
}

// Put implements [ContentStore]. The reader is streamed to a hidden
// temporary file inside the asset's directory while being digested, so the
// payload is never held in memory and a scan can never observe it. Only a
// verified, fully synced file is renamed to its final hash-derived name.
func (s *contentStore) Put(ctx context.Context, id, contentHash string, r io.Reader) (models.Asset, error) {
	if !utils.IsAssetID(id) {
		return models.Asset{}, fmt.Errorf("%w: %q", ErrInvalidAssetID, id)
	}
	if !utils.IsContentHash(contentHash) {
		return models.Asset{}, fmt.Errorf("%w: %q", ErrInvalidContentHash, contentHash)
	}

	dir := filepath.Join(s.root, id)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return models.Asset{}, fmt.Errorf("create asset dir %s: %w", id, err)
	}

	tmp, err := afero.TempFile(s.fs, dir, ".incoming-*")
	if err != nil {
		return models.Asset{}, fmt.Errorf("create temp file for %s: %w", id, err)
	}
	tmpName := tmp.Name()

	digest := utils.NewDigestWriter(tmp)
	written, err := io.Copy(digest, r)
	if err != nil {
		err = fmt.Errorf("stream asset %s: %w", id, err)
	}
	if err == nil {
		err = ctx.Err()
	}
	if err == nil && digest.Sum() != contentHash {
		err = fmt.Errorf("asset %s: %w: got %s want %s", id, ErrHashMismatch, digest.Sum(), contentHash)
	}
	if err == nil {
		if syncErr := tmp.Sync(); syncErr != nil {
			err = fmt.Errorf("sync temp file for %s: %w", id, syncErr)
		}
	}

	if closeErr := tmp.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close temp file for %s: %w", id, closeErr)
	}
	if err != nil {
		s.discardTemp(tmpName)
		return models.Asset{}, err
	}

	finalPath := s.assetPath(id, contentHash)
	if err = s.fs.Rename(tmpName, finalPath); err != nil {
		s.discardTemp(tmpName)
		return models.Asset{}, fmt.Errorf("commit asset %s: %w", id, err)
	}

	asset := models.Asset{
		ID:          id,
		ContentHash: contentHash,
		SizeBytes:   written,
		LocalPath:   finalPath,
	}
	if info, statErr := s.fs.Stat(finalPath); statErr == nil {
		asset.ModTime = info.ModTime()
	}

	s.logger.Debug().
		Str("asset_id", id).
		Str("content_hash", contentHash).
		Str("size", humanize.IBytes(uint64(written))).
		Msg("asset committed")

	return asset, nil
}

// Delete implements [ContentStore]. A missing file is not an error, so
// deletions are idempotent across interrupted cycles.
func (s *contentStore) Delete(ctx context.Context, asset models.Asset) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := asset.LocalPath
	if path == "" {
		path = s.assetPath(asset.ID, asset.ContentHash)
	}

	if err := s.fs.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete asset %s: %w", asset.ID, err)
	}

	// drop the ID directory once its last file is gone
	dir := filepath.Dir(path)
	if dir != s.root {
		if remaining, err := afero.ReadDir(s.fs, dir); err == nil && len(remaining) == 0 {
			if err = s.fs.Remove(dir); err != nil {
				s.logger.Debug().Err(err).Str("dir", dir).Msg("could not remove empty asset dir")
			}
		}
	}

	s.logger.Debug().
		Str("asset_id", asset.ID).
		Str("content_hash", asset.ContentHash).
		Msg("asset deleted")

	return nil
}

// FreeBytes implements [ContentStore].
func (s *contentStore) FreeBytes() (int64, error) {
	free, err := s.space(s.root)
	if err != nil {
		return 0, fmt.Errorf("query free space: %w", err)
	}
	return free, nil
}

func (s *contentStore) assetPath(id, contentHash string) string {
	return filepath.Join(s.root, id, contentHash+assetExt)
}

func (s *contentStore) handleOrphan(path string, isDir, clean bool) {
	if !clean || !s.deleteOrphans {
		s.logger.Debug().Str("path", path).Msg("ignoring orphan")
		return
	}

	s.logger.Info().Str("path", path).Msg("deleting orphan")
	remove := s.fs.Remove
	if isDir {
		remove = s.fs.RemoveAll
	}
	if err := remove(path); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("failed to delete orphan")
	}
}

func (s *contentStore) discardTemp(path string) {
	if err := s.fs.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn().Err(err).Str("path", path).Msg("failed to discard temp file")
	}
}

// splitAssetFileName extracts the content hash from a committed asset file
// name of the form <hash>.bmp.
func splitAssetFileName(name string) (string, bool) {
	base, found := strings.CutSuffix(name, assetExt)
	if !found || !utils.IsContentHash(base) {
		return "", false
	}
	return base, true
}

package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/config"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/logger"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/store"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/models"
)

// VictimOrder sorts eviction candidates in place into the order they should
// be deleted. The first element is the first victim.
type VictimOrder func(victims []models.Asset)

// OldestFirst evicts the asset with the oldest modification time first, so
// the pictures most recently downloaded survive the longest. Ties fall back
// to ID order to keep the sequence deterministic.
func OldestFirst(victims []models.Asset) {
	sort.Slice(victims, func(i, j int) bool {
		if !victims[i].ModTime.Equal(victims[j].ModTime) {
			return victims[i].ModTime.Before(victims[j].ModTime)
		}
		return victims[i].ID < victims[j].ID
	})
}

// ScanOrder evicts assets in ID order, mirroring the order a directory scan
// discovers them. It ignores timestamps entirely, which matters on media
// whose clock is unreliable.
func ScanOrder(victims []models.Asset) {
	sort.Slice(victims, func(i, j int) bool {
		return victims[i].ID < victims[j].ID
	})
}

// victimOrderFor maps a configured eviction policy name to its ordering.
func victimOrderFor(policy string) (VictimOrder, error) {
	switch policy {
	case "oldest-first":
		return OldestFirst, nil
	case "scan-order":
		return ScanOrder, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvictionPolicy, policy)
	}
}

type reclaimer struct {
	contentStore  store.ContentStore
	order         VictimOrder
	evictRetained bool
	logger        *logger.Logger
}

// NewReclaimer constructs a Reclaimer over contentStore using the eviction
// policy named in storageCfg. Returns ErrUnknownEvictionPolicy if the policy
// string is not recognised.
func NewReclaimer(contentStore store.ContentStore, storageCfg config.FrameStorage, log *logger.Logger) (Reclaimer, error) {
	order, err := victimOrderFor(storageCfg.EvictionPolicy)
	if err != nil {
		return nil, err
	}

	return &reclaimer{
		contentStore:  contentStore,
		order:         order,
		evictRetained: storageCfg.EvictRetained,
		logger:        log,
	}, nil
}

// EnsureFree implements Reclaimer.
//
// It evicts in two passes. The first pass deletes only assets the retain map
// does not want: stale hashes and IDs missing from the map. If that is not
// enough and evicting retained assets is enabled, a second pass culls
// manifest-wanted assets in the same victim order. Free space is re-measured
// after every deletion so the loop stops as soon as the target is met.
func (r *reclaimer) EnsureFree(ctx context.Context, need int64, retain map[string]string) error {
	free, err := r.contentStore.FreeBytes()
	if err != nil {
		return fmt.Errorf("measure free space: %w", err)
	}
	if free >= need {
		return nil
	}

	inventory, err := r.contentStore.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan for eviction candidates: %w", err)
	}

	var spare, retained []models.Asset
	for id, asset := range inventory {
		if hash, ok := retain[id]; ok && hash == asset.ContentHash {
			retained = append(retained, asset)
		} else {
			spare = append(spare, asset)
		}
	}

	free, err = r.evict(ctx, spare, need, free)
	if err != nil {
		return err
	}
	if free >= need {
		return nil
	}

	if r.evictRetained {
		free, err = r.evict(ctx, retained, need, free)
		if err != nil {
			return err
		}
		if free >= need {
			return nil
		}
	}

	return fmt.Errorf("%w: need %s, have %s",
		ErrNotEnoughSpace, humanize.IBytes(uint64(need)), humanize.IBytes(uint64(free)))
}

func (r *reclaimer) evict(ctx context.Context, victims []models.Asset, need, free int64) (int64, error) {
	r.order(victims)

	for _, victim := range victims {
		if free >= need {
			return free, nil
		}
		if err := ctx.Err(); err != nil {
			return free, err
		}

		if err := r.contentStore.Delete(ctx, victim); err != nil {
			return free, fmt.Errorf("evict asset %s: %w", victim.ID, err)
		}
		r.logger.Info().
			Str("asset_id", victim.ID).
			Str("size", humanize.IBytes(uint64(victim.SizeBytes))).
			Msg("evicted asset to reclaim space")

		var err error
		if free, err = r.contentStore.FreeBytes(); err != nil {
			return free, fmt.Errorf("measure free space: %w", err)
		}
	}

	return free, nil
}

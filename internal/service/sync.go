package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/adapter"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/config"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/logger"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/store"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/models"
)

// retryBackoff is the base delay between download attempts for one asset.
const retryBackoff = 500 * time.Millisecond

type syncRunner struct {
	server       adapter.FrameServer
	contentStore store.ContentStore
	planner      Planner
	reclaimer    Reclaimer
	retries      int
	minFree      int64
	logger       *logger.Logger

	inFlight atomic.Bool
}

// NewSyncRunner constructs the SyncRunner that drives one reconciliation
// cycle end to end: manifest from server, inventory from contentStore, plan
// from the internal planner, then deletions and downloads with reclaimer
// keeping space ahead of every fetch.
func NewSyncRunner(
	server adapter.FrameServer,
	contentStore store.ContentStore,
	reclaimer Reclaimer,
	cfg *config.FrameConfig,
	log *logger.Logger,
) SyncRunner {
	return &syncRunner{
		server:       server,
		contentStore: contentStore,
		planner:      NewPlanner(),
		reclaimer:    reclaimer,
		retries:      cfg.Workers.DownloadRetries,
		minFree:      cfg.Storage.MinFreeBytes,
		logger:       log,
	}
}

// RunSyncCycle implements SyncRunner.
func (s *syncRunner) RunSyncCycle(ctx context.Context) (models.SyncReport, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.logger.Debug().Msg("sync already in flight, trigger coalesced")
		return models.SyncReport{Outcome: models.SyncSkipped}, nil
	}
	defer s.inFlight.Store(false)

	manifest, err := s.server.FetchManifest(ctx)
	if err != nil {
		return models.SyncReport{Outcome: models.SyncFailed}, fmt.Errorf("fetch manifest: %w", err)
	}

	// The sync phase owns all writes, so its walk is the one that repairs
	// the medium: orphan pruning and stale-duplicate removal happen here,
	// never on the display path.
	inventory, err := s.contentStore.Prune(ctx)
	if err != nil {
		return models.SyncReport{Outcome: models.SyncFailed}, fmt.Errorf("scan inventory: %w", err)
	}

	plan, err := s.planner.BuildSyncPlan(ctx, manifest, inventory)
	if err != nil {
		return models.SyncReport{Outcome: models.SyncFailed}, fmt.Errorf("build sync plan: %w", err)
	}

	report := models.SyncReport{Outcome: models.SyncSucceeded}
	if plan.IsEmpty() {
		s.logger.Debug().Int("cached", len(inventory)).Msg("cache already converged")
		return report, nil
	}

	// Deletions run first so an asset whose hash changed never has two
	// resident files at once.
	for _, asset := range plan.Delete {
		if err = ctx.Err(); err != nil {
			report.Outcome = models.SyncPartial
			return report, err
		}

		if err = s.contentStore.Delete(ctx, asset); err != nil {
			s.logger.Error().Err(err).Str("asset_id", asset.ID).Msg("delete failed, will retry next cycle")
			report.Skipped++
			continue
		}
		report.Deleted++
	}

	for _, item := range plan.Fetch {
		if err = ctx.Err(); err != nil {
			report.Outcome = models.SyncPartial
			return report, err
		}

		if err = s.fetchOne(ctx, item, manifest); err != nil {
			s.logger.Error().Err(err).Str("asset_id", item.ID).Msg("fetch failed, skipping asset this cycle")
			report.Skipped++
			continue
		}
		report.Fetched++
	}

	if report.Skipped > 0 {
		report.Outcome = models.SyncPartial
	}

	s.logger.Info().
		Str("outcome", string(report.Outcome)).
		Int("deleted", report.Deleted).
		Int("fetched", report.Fetched).
		Int("skipped", report.Skipped).
		Msg("sync cycle finished")

	return report, nil
}

// fetchOne downloads and commits a single asset, making room first and
// retrying transient failures with a constant backoff. A persistent failure
// is returned to the caller, which skips the asset for this cycle.
func (s *syncRunner) fetchOne(ctx context.Context, item models.FetchItem, retain map[string]string) error {
	// A negative minFree turns the space guard off entirely.
	if s.minFree >= 0 {
		if err := s.reclaimer.EnsureFree(ctx, s.minFree, retain); err != nil {
			return fmt.Errorf("make room for %s: %w", item.ID, err)
		}
	}

	backoff := retry.WithMaxRetries(uint64(s.retries), retry.NewConstant(retryBackoff))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		body, err := s.server.DownloadAsset(ctx, item.ID)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("download %s: %w", item.ID, err))
		}
		defer body.Close()

		_, err = s.contentStore.Put(ctx, item.ID, item.ContentHash, body)
		if err == nil {
			return nil
		}
		if errors.Is(err, store.ErrHashMismatch) {
			// A truncated or corrupted transfer looks exactly like this;
			// the next attempt re-streams from scratch.
			return retry.RetryableError(fmt.Errorf("commit %s: %w", item.ID, err))
		}
		return fmt.Errorf("commit %s: %w", item.ID, err)
	})
}

package client

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/config"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/logger"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/service"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/models"
)

// App is the frame's host loop. A single goroutine owns the display and the
// sync trigger, so a running sync simply delays the next picture change the
// way it does on the device itself.
type App struct {
	syncRunner service.SyncRunner
	slideshow  service.Slideshow
	display    Display
	clock      clockwork.Clock
	logger     *logger.Logger

	refreshInterval time.Duration
	syncInterval    time.Duration

	previousID string
}

// NewApp wires the loop from its collaborators and the timing configuration.
func NewApp(
	syncRunner service.SyncRunner,
	slideshow service.Slideshow,
	display Display,
	workersCfg config.FrameWorkers,
	log *logger.Logger,
) *App {
	return newApp(syncRunner, slideshow, display, clockwork.NewRealClock(), workersCfg, log)
}

// newApp lets tests substitute a fake clock.
func newApp(
	syncRunner service.SyncRunner,
	slideshow service.Slideshow,
	display Display,
	clock clockwork.Clock,
	workersCfg config.FrameWorkers,
	log *logger.Logger,
) *App {
	return &App{
		syncRunner:      syncRunner,
		slideshow:       slideshow,
		display:         display,
		clock:           clock,
		logger:          log,
		refreshInterval: workersCfg.RefreshInterval,
		syncInterval:    workersCfg.SyncInterval,
	}
}

// Run starts the frame and blocks until ctx is cancelled.
//
// Startup order depends on what is already cached. With pictures on the
// medium the first one goes up immediately and reconciliation happens
// behind it; with an empty cache a waiting message is shown and the first
// sync runs before the first picture. After that the loop alternates on its
// two intervals, always from this one goroutine.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().
		Dur("refresh_interval", a.refreshInterval).
		Dur("sync_interval", a.syncInterval).
		Msg("picture frame starting")

	if err := a.showNext(ctx); err != nil {
		if !errors.Is(err, service.ErrNoAssets) {
			return err
		}
		a.display.SetStatus("waiting for pictures")
		if err = a.runSync(ctx); err != nil {
			return err
		}
		if err = a.showNext(ctx); err != nil && !errors.Is(err, service.ErrNoAssets) {
			return err
		}
	} else if err := a.runSync(ctx); err != nil {
		return err
	}

	nextRefresh := a.clock.Now().Add(a.refreshInterval)
	nextSync := a.clock.Now().Add(a.syncInterval)

	for {
		next := nextRefresh
		if nextSync.Before(next) {
			next = nextSync
		}

		select {
		case <-ctx.Done():
			a.logger.Info().Msg("picture frame stopping")
			return ctx.Err()
		case <-a.clock.After(next.Sub(a.clock.Now())):
		}

		now := a.clock.Now()
		if !now.Before(nextSync) {
			if err := a.runSync(ctx); err != nil {
				return err
			}
			nextSync = a.clock.Now().Add(a.syncInterval)
		}
		if !now.Before(nextRefresh) {
			if err := a.showNext(ctx); err != nil && !errors.Is(err, service.ErrNoAssets) {
				return err
			}
			nextRefresh = a.clock.Now().Add(a.refreshInterval)
		}
	}
}

// runSync runs one cycle and drives the offline indicator from its outcome.
// Sync failures never stop the loop; only ctx cancellation is returned.
func (a *App) runSync(ctx context.Context) error {
	report, err := a.syncRunner.RunSyncCycle(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		a.logger.Error().Err(err).Msg("sync cycle failed")
		a.display.SetOffline(true)
		return nil
	}

	a.display.SetOffline(false)
	if report.Outcome == models.SyncPartial {
		a.logger.Warn().Int("skipped", report.Skipped).Msg("sync cycle left assets behind")
	}
	return nil
}

// showNext draws the next picture. An empty cache shows the placeholder and
// returns ErrNoAssets so startup can order its first sync; any other
// selection failure keeps the current picture up. Only ctx cancellation
// stops the loop.
func (a *App) showNext(ctx context.Context) error {
	asset, err := a.slideshow.Next(ctx, a.previousID)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, service.ErrNoAssets) {
		a.display.ShowEmpty()
		return err
	}
	if err != nil {
		a.logger.Error().Err(err).Msg("picking next picture failed")
		return nil
	}

	if err = a.display.ShowAsset(asset); err != nil {
		a.logger.Error().Err(err).Str("asset_id", asset.ID).Msg("drawing picture failed")
		return nil
	}
	a.previousID = asset.ID
	return nil
}

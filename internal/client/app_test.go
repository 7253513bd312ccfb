package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/config"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/logger"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/service"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/models"
)

const (
	frameIDOne = "3f2c8a4e-9d1b-4c6a-8e2f-1a5b9c3d7e0f"
	frameIDTwo = "7b1e0d2c-5a4f-4b8d-9c3e-6f2a8d0b4e1c"
)

// ─────────────────────────────────────────────────────────────────────────────
// Test doubles
// ─────────────────────────────────────────────────────────────────────────────

// stubSlideshow hands out the first pooled asset that differs from the
// previously shown one. An empty pool behaves like an empty cache.
type stubSlideshow struct {
	mu     sync.Mutex
	assets []models.Asset
}

func (s *stubSlideshow) Next(_ context.Context, previousID string) (models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.assets) == 0 {
		return models.Asset{}, service.ErrNoAssets
	}
	for _, a := range s.assets {
		if a.ID != previousID {
			return a, nil
		}
	}
	return s.assets[0], nil
}

func (s *stubSlideshow) add(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets = append(s.assets, models.Asset{ID: id, LocalPath: "/sd/assets/" + id + "/x.bmp"})
}

// stubSyncRunner scripts per-call outcomes through next.
type stubSyncRunner struct {
	mu    sync.Mutex
	calls int
	next  func(call int) (models.SyncReport, error)
}

func (s *stubSyncRunner) RunSyncCycle(context.Context) (models.SyncReport, error) {
	s.mu.Lock()
	s.calls++
	call := s.calls
	s.mu.Unlock()

	if s.next != nil {
		return s.next(call)
	}
	return models.SyncReport{Outcome: models.SyncSucceeded}, nil
}

func (s *stubSyncRunner) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// spyDisplay records calls and publishes each one as an event so tests can
// wait for the loop to reach a known point.
type spyDisplay struct {
	events chan string
}

func newSpyDisplay() *spyDisplay {
	return &spyDisplay{events: make(chan string, 64)}
}

func (d *spyDisplay) ShowAsset(asset models.Asset) error {
	d.events <- "show:" + asset.ID
	return nil
}

func (d *spyDisplay) ShowEmpty() { d.events <- "empty" }

func (d *spyDisplay) SetStatus(status string) { d.events <- "status:" + status }

func (d *spyDisplay) SetOffline(offline bool) {
	if offline {
		d.events <- "offline:true"
		return
	}
	d.events <- "offline:false"
}

// waitEvent blocks until the display publishes want, failing the test after
// a timeout. Events before want are consumed and returned for inspection.
func waitEvent(t *testing.T, d *spyDisplay, want string) []string {
	t.Helper()

	var seen []string
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev := <-d.events:
			if ev == want {
				return seen
			}
			seen = append(seen, ev)
		case <-timeout:
			t.Fatalf("timed out waiting for display event %q, saw %v", want, seen)
		}
	}
}

type frameFixture struct {
	app       *App
	clock     *clockwork.FakeClock
	display   *spyDisplay
	slideshow *stubSlideshow
	sync      *stubSyncRunner

	cancel context.CancelFunc
	done   chan struct{}
	runErr error
}

func startFrame(t *testing.T, slideshow *stubSlideshow, sync *stubSyncRunner, workersCfg config.FrameWorkers) *frameFixture {
	t.Helper()

	f := &frameFixture{
		clock:     clockwork.NewFakeClock(),
		display:   newSpyDisplay(),
		slideshow: slideshow,
		sync:      sync,
		done:      make(chan struct{}),
	}
	f.app = newApp(sync, slideshow, f.display, f.clock, workersCfg, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	go func() {
		f.runErr = f.app.Run(ctx)
		close(f.done)
	}()

	t.Cleanup(func() {
		cancel()
		select {
		case <-f.done:
		case <-time.After(2 * time.Second):
			t.Error("frame loop did not stop after cancel")
		}
	})

	return f
}

// tick waits for the loop to park on its clock, then advances time.
func (f *frameFixture) tick(t *testing.T, d time.Duration) {
	t.Helper()
	require.NoError(t, f.clock.BlockUntilContext(context.Background(), 1))
	f.clock.Advance(d)
}

var defaultWorkers = config.FrameWorkers{
	SyncInterval:    time.Hour,
	RefreshInterval: 5 * time.Minute,
}

// ─────────────────────────────────────────────────────────────────────────────
// Startup ordering
// ─────────────────────────────────────────────────────────────────────────────

func TestApp_Startup_CachedPictureBeforeFirstSync(t *testing.T) {
	slideshow := &stubSlideshow{}
	slideshow.add(frameIDOne)
	syncRunner := &stubSyncRunner{}

	f := startFrame(t, slideshow, syncRunner, defaultWorkers)

	// A cached picture must reach the screen before reconciliation runs.
	before := waitEvent(t, f.display, "show:"+frameIDOne)
	assert.Empty(t, before)
	waitEvent(t, f.display, "offline:false")
	assert.Equal(t, 1, syncRunner.callCount())
}

func TestApp_Startup_EmptyCacheSyncsFirst(t *testing.T) {
	slideshow := &stubSlideshow{}
	syncRunner := &stubSyncRunner{}
	syncRunner.next = func(int) (models.SyncReport, error) {
		// The first cycle lands the first picture.
		slideshow.add(frameIDOne)
		return models.SyncReport{Outcome: models.SyncSucceeded, Fetched: 1}, nil
	}

	f := startFrame(t, slideshow, syncRunner, defaultWorkers)

	before := waitEvent(t, f.display, "show:"+frameIDOne)
	assert.Equal(t, []string{"empty", "status:waiting for pictures", "offline:false"}, before)
}

func TestApp_Startup_EmptyCacheAndFailingSyncShowsPlaceholder(t *testing.T) {
	slideshow := &stubSlideshow{}
	syncRunner := &stubSyncRunner{next: func(int) (models.SyncReport, error) {
		return models.SyncReport{Outcome: models.SyncFailed}, errors.New("middleware unreachable")
	}}

	f := startFrame(t, slideshow, syncRunner, defaultWorkers)

	waitEvent(t, f.display, "offline:true")
	// The second placeholder draw comes from the post-sync pick attempt.
	waitEvent(t, f.display, "empty")
}

// ─────────────────────────────────────────────────────────────────────────────
// Steady-state loop
// ─────────────────────────────────────────────────────────────────────────────

func TestApp_RefreshTickChangesPicture(t *testing.T) {
	slideshow := &stubSlideshow{}
	slideshow.add(frameIDOne)
	slideshow.add(frameIDTwo)

	f := startFrame(t, slideshow, &stubSyncRunner{}, defaultWorkers)
	waitEvent(t, f.display, "offline:false") // startup finished

	f.tick(t, defaultWorkers.RefreshInterval)
	waitEvent(t, f.display, "show:"+frameIDTwo)

	f.tick(t, defaultWorkers.RefreshInterval)
	waitEvent(t, f.display, "show:"+frameIDOne)
}

func TestApp_SyncTickTogglesOfflineIndicator(t *testing.T) {
	slideshow := &stubSlideshow{}
	slideshow.add(frameIDOne)
	syncRunner := &stubSyncRunner{next: func(call int) (models.SyncReport, error) {
		if call == 2 {
			return models.SyncReport{Outcome: models.SyncFailed}, errors.New("middleware unreachable")
		}
		return models.SyncReport{Outcome: models.SyncSucceeded}, nil
	}}

	// Sync fires before any refresh in this configuration.
	workers := config.FrameWorkers{SyncInterval: 5 * time.Minute, RefreshInterval: time.Hour}
	f := startFrame(t, slideshow, syncRunner, workers)
	waitEvent(t, f.display, "offline:false")

	f.tick(t, workers.SyncInterval)
	waitEvent(t, f.display, "offline:true")

	f.tick(t, workers.SyncInterval)
	waitEvent(t, f.display, "offline:false")
	assert.Equal(t, 3, syncRunner.callCount())
}

func TestApp_CancelStopsLoop(t *testing.T) {
	slideshow := &stubSlideshow{}
	slideshow.add(frameIDOne)

	f := startFrame(t, slideshow, &stubSyncRunner{}, defaultWorkers)
	waitEvent(t, f.display, "offline:false")

	f.cancel()
	select {
	case <-f.done:
		require.ErrorIs(t, f.runErr, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

package service

import (
	"context"
	"sort"

	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/models"
)

// planner is the concrete implementation of Planner. It performs a purely
// in-memory comparison of the manifest and the inventory; no storage layer
// or logger is required because the operation is stateless and produces no
// side effects.
type planner struct{}

// NewPlanner constructs a Planner ready for use. Because BuildSyncPlan is a
// stateless, in-memory operation, no dependencies are needed.
func NewPlanner() Planner {
	return &planner{}
}

// BuildSyncPlan implements Planner.
//
// It makes two linear passes and classifies every asset into at most one
// action per side:
//
//   - Pass 1 (over inventory): a cached asset whose ID is absent from the
//     manifest, or whose hash no longer matches, goes into Delete.
//   - Pass 2 (over manifest): a wanted asset that is not cached under the
//     manifest's hash goes into Fetch.
//
// An asset with a changed hash therefore lands in both halves; executing
// deletions first guarantees its stale file is gone before the replacement
// arrives. Both halves are sorted by ID so repeated cycles walk the plan in
// the same order.
//
// ctx cancellation is checked at the start of each iteration so that callers
// can abort early when operating on large caches.
func (p *planner) BuildSyncPlan(
	ctx context.Context,
	manifest models.Manifest,
	inventory models.Inventory,
) (models.SyncPlan, error) {
	var plan models.SyncPlan

	// ── Pass 1: cached assets the manifest no longer wants ──────────────────
	for id, asset := range inventory {
		if err := ctx.Err(); err != nil {
			return models.SyncPlan{}, err
		}

		wantedHash, wanted := manifest[id]
		if !wanted || wantedHash != asset.ContentHash {
			plan.Delete = append(plan.Delete, asset)
		}
	}

	// ── Pass 2: wanted assets the cache does not hold ───────────────────────
	for id, hash := range manifest {
		if err := ctx.Err(); err != nil {
			return models.SyncPlan{}, err
		}

		if cached, ok := inventory[id]; ok && cached.ContentHash == hash {
			continue
		}
		plan.Fetch = append(plan.Fetch, models.FetchItem{ID: id, ContentHash: hash})
	}

	sort.Slice(plan.Delete, func(i, j int) bool { return plan.Delete[i].ID < plan.Delete[j].ID })
	sort.Slice(plan.Fetch, func(i, j int) bool { return plan.Fetch[i].ID < plan.Fetch[j].ID })

	return plan, nil
}

package models

// FetchItem identifies one asset the download pipeline must retrieve: the
// remote ID together with the content hash the committed file must carry.
type FetchItem struct {
	ID          string `json:"id"`
	ContentHash string `json:"content_hash"`
}

// SyncPlan is the output of one reconciliation: which cached assets to
// delete and which remote assets to fetch. No ordering within either slice
// is semantically required; execution applies an asset's deletion before
// its replacement fetch.
type SyncPlan struct {
	Delete []Asset     `json:"delete"`
	Fetch  []FetchItem `json:"fetch"`
}

// IsEmpty reports whether the plan requires no work. A second successful
// cycle against an unchanged manifest always produces an empty plan.
func (p SyncPlan) IsEmpty() bool {
	return len(p.Delete) == 0 && len(p.Fetch) == 0
}

// SyncOutcome classifies the result of one sync cycle for the host.
type SyncOutcome string

const (
	// SyncSucceeded means every planned deletion and fetch was applied.
	SyncSucceeded SyncOutcome = "succeeded"

	// SyncPartial means the cycle ran to the end of the plan but one or
	// more assets were skipped after failing their fetch or eviction.
	SyncPartial SyncOutcome = "partial"

	// SyncFailed means the cycle aborted before any plan was computed
	// (manifest fetch failed); the store was left untouched.
	SyncFailed SyncOutcome = "failed"

	// SyncSkipped means a cycle was already in flight and this trigger
	// was coalesced.
	SyncSkipped SyncOutcome = "skipped"
)

// SyncReport summarizes one sync cycle so the host can surface it without
// inspecting errors item by item.
type SyncReport struct {
	Outcome SyncOutcome `json:"outcome"`

	// Deleted is the number of assets removed by the delete plan. Evictions
	// by the space reclaimer are not counted here.
	Deleted int `json:"deleted"`

	// Fetched is the number of assets downloaded and committed.
	Fetched int `json:"fetched"`

	// Skipped is the number of fetch-plan entries abandoned after retries
	// or a storage failure. The next cycle retries them from scratch.
	Skipped int `json:"skipped"`
}

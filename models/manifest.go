package models

// ManifestPage is one page of the middleware's asset listing. The adapter
// follows NextPageToken until it is empty and returns the merged Manifest;
// callers never see individual pages.
type ManifestPage struct {
	// Assets maps asset ID to content hash for this page.
	Assets map[string]string `json:"assets"`

	// NextPageToken requests the next page when non-empty. An empty token
	// marks the final page.
	NextPageToken string `json:"next_page_token"`
}

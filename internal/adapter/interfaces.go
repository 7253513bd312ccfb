// Package adapter implements the outbound HTTP transport to the middleware
// service that serves the asset manifest and the re-encoded images.
package adapter

import (
	"context"
	"io"

	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/models"
)

// FrameServer is the boundary to the remote middleware. Implementations must
// be safe for use from a single control loop; no concurrent calls are made.
type FrameServer interface {
	// FetchManifest returns the complete id→hash mapping of every asset
	// that currently qualifies for display. Server-side paging is followed
	// transparently; the caller either receives the whole mapping or an
	// error, never a partial one.
	FetchManifest(ctx context.Context) (models.Manifest, error)

	// DownloadAsset opens a stream of the fixed-format bitmap for id. The
	// caller owns the returned reader and must close it.
	DownloadAsset(ctx context.Context, id string) (io.ReadCloser, error)
}

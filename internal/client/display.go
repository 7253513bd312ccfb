package client

import (
	"github.com/dustin/go-humanize"

	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/logger"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/models"
)

// Display is the output surface of the frame. Implementations draw from the
// asset's committed file; the loop never hands them bytes directly.
type Display interface {
	// ShowAsset renders the committed file at asset.LocalPath.
	ShowAsset(asset models.Asset) error

	// ShowEmpty renders the placeholder for an empty cache.
	ShowEmpty()

	// SetStatus surfaces a short progress message, e.g. during the very
	// first sync before any picture exists.
	SetStatus(status string)

	// SetOffline toggles the unobtrusive indicator shown while the
	// middleware is unreachable. The last shown picture stays on screen.
	SetOffline(offline bool)
}

// logDisplay is a Display that records every draw to the structured log.
// It stands in for real panel hardware and keeps the runtime fully
// observable when running headless.
type logDisplay struct {
	logger *logger.Logger
}

// NewLogDisplay returns a Display that writes draws to log instead of a
// physical panel.
func NewLogDisplay(log *logger.Logger) Display {
	return &logDisplay{logger: log}
}

func (d *logDisplay) ShowAsset(asset models.Asset) error {
	d.logger.Info().
		Str("asset_id", asset.ID).
		Str("path", asset.LocalPath).
		Str("size", humanize.IBytes(uint64(asset.SizeBytes))).
		Msg("showing picture")
	return nil
}

func (d *logDisplay) ShowEmpty() {
	d.logger.Info().Msg("no pictures cached, showing placeholder")
}

func (d *logDisplay) SetStatus(status string) {
	d.logger.Info().Str("status", status).Msg("status changed")
}

func (d *logDisplay) SetOffline(offline bool) {
	d.logger.Info().Bool("offline", offline).Msg("connectivity indicator changed")
}

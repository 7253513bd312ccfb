package service

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/logger"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/store"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/models"
)

type slideshow struct {
	library store.Library
	intn    func(n int) int
	logger  *logger.Logger
}

// NewSlideshow constructs a Slideshow over the read-only library view.
func NewSlideshow(library store.Library, log *logger.Logger) Slideshow {
	return newSlideshow(library, rand.Intn, log)
}

// newSlideshow lets tests inject a deterministic picker.
func newSlideshow(library store.Library, intn func(n int) int, log *logger.Logger) Slideshow {
	return &slideshow{library: library, intn: intn, logger: log}
}

// Next implements Slideshow.
//
// The library is re-scanned on every call, so an asset committed or deleted
// by a concurrent sync cycle is picked up immediately; nothing is cached
// between calls. When two or more assets are cached, previousID is excluded
// from the pool so the frame never shows the same picture twice in a row.
// With exactly one asset cached it is returned even if it was just shown.
func (s *slideshow) Next(ctx context.Context, previousID string) (models.Asset, error) {
	inventory, err := s.library.Scan(ctx)
	if err != nil {
		return models.Asset{}, fmt.Errorf("scan library: %w", err)
	}
	if len(inventory) == 0 {
		return models.Asset{}, ErrNoAssets
	}

	pool := make([]string, 0, len(inventory))
	for id := range inventory {
		if id == previousID && len(inventory) > 1 {
			continue
		}
		pool = append(pool, id)
	}
	sort.Strings(pool)

	picked := inventory[pool[s.intn(len(pool))]]
	s.logger.Debug().Str("asset_id", picked.ID).Int("pool", len(pool)).Msg("next picture chosen")

	return picked, nil
}

package service

import "errors"

var (
	// ErrNotEnoughSpace is returned by a Reclaimer when eviction cannot
	// reach the requested amount of free space.
	ErrNotEnoughSpace = errors.New("not enough space")

	// ErrNoAssets is returned by a Slideshow when the cache holds no
	// committed assets to display.
	ErrNoAssets = errors.New("no assets cached")

	// ErrUnknownEvictionPolicy is returned when the configured eviction
	// policy does not name a known victim ordering.
	ErrUnknownEvictionPolicy = errors.New("unknown eviction policy")
)

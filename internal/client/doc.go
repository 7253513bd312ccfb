// Package client implements the picture frame runtime.
//
// It wires the slideshow selector, the sync runner, and the display into a
// single cooperative loop: one goroutine alternates between changing the
// picture on its refresh interval and reconciling the cache on its sync
// interval. Nothing in this package mutates storage directly; all cache
// changes flow through the sync runner.
package client

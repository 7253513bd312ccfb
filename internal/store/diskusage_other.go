//go:build !linux && !darwin

package store

import "math"

// diskFree has no statfs to call on this platform; report unlimited space so
// eviction never triggers.
func diskFree(string) (int64, error) {
	return math.MaxInt64, nil
}

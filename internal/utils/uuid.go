// Package utils provides general-purpose helper utilities used across
// different parts of the application: asset identifier validation and
// content digest computation.
package utils

import (
	"strings"

	"github.com/google/uuid"
)

// IsAssetID reports whether s is a canonical lowercase UUID, the only shape
// the remote system uses for asset identifiers. Directory entries under the
// asset root that fail this check are orphans, not assets.
func IsAssetID(s string) bool {
	if len(s) != 36 || s != strings.ToLower(s) {
		return false
	}

	_, err := uuid.Parse(s)
	return err == nil
}

package utils

import (
	"crypto/md5"
	"encoding/hex"
	"hash"
	"io"
)

// hashHexLen is the length of a lowercase hex MD5 digest, the content hash
// format the middleware derives for every asset.
const hashHexLen = 32

// IsContentHash reports whether s is a lowercase hex MD5 digest. Files whose
// names fail this check are not assets.
func IsContentHash(s string) bool {
	if len(s) != hashHexLen {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// DigestWriter wraps an io.Writer and digests every byte written through it,
// so a streamed download can be verified without buffering the payload.
type DigestWriter struct {
	w io.Writer
	h hash.Hash
}

// NewDigestWriter returns a DigestWriter that forwards writes to w.
func NewDigestWriter(w io.Writer) *DigestWriter {
	return &DigestWriter{w: w, h: md5.New()}
}

// Write implements io.Writer. Bytes are added to the digest only when the
// underlying write succeeded in full.
func (d *DigestWriter) Write(p []byte) (int, error) {
	n, err := d.w.Write(p)
	if n > 0 {
		d.h.Write(p[:n])
	}
	return n, err
}

// Sum returns the lowercase hex digest of everything written so far.
func (d *DigestWriter) Sum() string {
	return hex.EncodeToString(d.h.Sum(nil))
}

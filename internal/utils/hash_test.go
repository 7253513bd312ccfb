package utils

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsContentHash(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name:  "valid md5 hex",
			input: "d41d8cd98f00b204e9800998ecf8427e",
			want:  true,
		},
		{
			name:  "uppercase rejected",
			input: "D41D8CD98F00B204E9800998ECF8427E",
			want:  false,
		},
		{
			name:  "too short",
			input: "d41d8cd98f00b204",
			want:  false,
		},
		{
			name:  "too long",
			input: "d41d8cd98f00b204e9800998ecf8427e00",
			want:  false,
		},
		{
			name:  "non-hex characters",
			input: "g41d8cd98f00b204e9800998ecf8427e",
			want:  false,
		},
		{
			name:  "empty",
			input: "",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsContentHash(tt.input))
		})
	}
}

func TestDigestWriter_ForwardsAndDigests(t *testing.T) {
	var buf bytes.Buffer
	dw := NewDigestWriter(&buf)

	payload := []byte("fixed-format bitmap bytes")
	n, err := dw.Write(payload)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
	assert.Equal(t, payload, buf.Bytes())

	want := md5.Sum(payload)
	assert.Equal(t, hex.EncodeToString(want[:]), dw.Sum())
}

func TestDigestWriter_MultipleWrites(t *testing.T) {
	var buf bytes.Buffer
	dw := NewDigestWriter(&buf)

	_, err := dw.Write([]byte("part one "))
	require.NoError(t, err)
	_, err = dw.Write([]byte("part two"))
	require.NoError(t, err)

	want := md5.Sum([]byte("part one part two"))
	assert.Equal(t, hex.EncodeToString(want[:]), dw.Sum())
}

func TestDigestWriter_EmptyInput(t *testing.T) {
	var buf bytes.Buffer
	dw := NewDigestWriter(&buf)

	// md5 of the empty string
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", dw.Sum())
}

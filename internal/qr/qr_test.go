package qr

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestEncode(t *testing.T) {
	t.Parallel()

	r := New(128)

	png, err := r.Encode(`{"id":"b1","place":"Karnak Temple","visit_date":"2030-03-01"}`)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestEncodeEmpty(t *testing.T) {
	t.Parallel()

	_, err := New(128).Encode("")
	assert.ErrorIs(t, err, ErrEmptyPayload)
}

func TestEncodeTooLong(t *testing.T) {
	t.Parallel()

	_, err := New(128).Encode(strings.Repeat("x", 5000))
	assert.Error(t, err)
}

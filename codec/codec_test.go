package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGzipRoundTrip(t *testing.T) {
	original := []byte("the quick brown fox jumps over the lazy dog, repeatedly, for compressibility")

	encoded, err := EncodeGzip(original)
	require.NoError(t, err)
	assert.NotEqual(t, original, encoded)

	decoded, err := DecodeGzip(encoded)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestBrotliRoundTrip(t *testing.T) {
	original := []byte("the quick brown fox jumps over the lazy dog, repeatedly, for compressibility")

	encoded, err := EncodeBrotli(original)
	require.NoError(t, err)
	assert.NotEqual(t, original, encoded)

	decoded, err := DecodeBrotli(encoded)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestDecodeGzipRejectsGarbage(t *testing.T) {
	_, err := DecodeGzip([]byte("not a gzip stream"))
	assert.Error(t, err)
}

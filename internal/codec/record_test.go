package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []*Record{
		{Type: RecordNormal, Key: []byte("a"), Value: []byte("1")},
		{Type: RecordNormal, Key: []byte("empty-value"), Value: []byte{}},
		{Type: RecordDeleted, Key: []byte("tombstone"), Value: nil},
		{Type: RecordNormal, Key: []byte("k"), Value: make([]byte, 4096)},
	}

	for _, want := range cases {
		encoded := Encode(want)
		got, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, want.Type, got.Type)
		assert.Equal(t, want.Key, got.Key)
		assert.Equal(t, want.Value, got.Value)
	}
}

func TestDecodeHeaderReportsRecordLen(t *testing.T) {
	rec := &Record{Type: RecordNormal, Key: []byte("hello"), Value: []byte("world!!")}
	encoded := Encode(rec)

	header, err := DecodeHeader(encoded)
	require.NoError(t, err)
	assert.Equal(t, len(encoded), header.RecordLen())
}

func TestDecodeCorruptedOnBitFlip(t *testing.T) {
	rec := &Record{Type: RecordNormal, Key: []byte("flip-me"), Value: []byte("value")}
	encoded := Encode(rec)

	encoded[len(encoded)-5] ^= 0xFF

	_, err := Decode(encoded)
	assert.ErrorIs(t, err, ErrCorrupted)
}

func TestDecodeCorruptedOnTruncatedBuffer(t *testing.T) {
	rec := &Record{Type: RecordNormal, Key: []byte("k"), Value: []byte("v")}
	encoded := Encode(rec)

	_, err := Decode(encoded[:len(encoded)-2])
	assert.ErrorIs(t, err, ErrCorrupted)
}

func TestDecodeHeaderRejectsEmptyBuffer(t *testing.T) {
	_, err := DecodeHeader(nil)
	assert.ErrorIs(t, err, ErrCorrupted)
}

func TestEncodeAllowsEmptyKeyAtCodecLevel(t *testing.T) {
	// The codec itself imposes no restriction on zero-length keys; only
	// the engine boundary rejects them.
	rec := &Record{Type: RecordNormal, Key: []byte{}, Value: []byte("v")}
	encoded := Encode(rec)
	got, err := Decode(encoded)
	require.NoError(t, err)
	assert.Empty(t, got.Key)
}

package stream

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/simple8b"
	"github.com/arloliu/simple8b/endian"
	"github.com/arloliu/simple8b/format"
)

func buildSample(t *testing.T, w *BlockWriter) []uint64 {
	t.Helper()

	builder := simple8b.NewBuilder[uint64](w.WriteWord)
	vals := make([]uint64, 0, 600)
	for i := uint64(0); i < 300; i++ {
		require.True(t, builder.Append(i%8))
		vals = append(vals, i%8)
	}
	for i := 0; i < 300; i++ {
		require.True(t, builder.Append(7))
		vals = append(vals, 7)
	}
	builder.Flush()

	return vals
}

func decodeAndCompare(t *testing.T, packed []byte, want []uint64) {
	t.Helper()

	got := make([]uint64, 0, len(want))
	for v, ok := range simple8b.NewDecoder[uint64](packed).All() {
		require.True(t, ok)
		got = append(got, v)
	}
	require.Equal(t, want, got)
}

func TestBlockWriter_RawBytes(t *testing.T) {
	w, err := NewBlockWriter()
	require.NoError(t, err)
	defer w.Close()

	vals := buildSample(t, w)

	require.Greater(t, w.Words(), 0)
	require.Equal(t, w.Words()*8, len(w.Bytes()))

	decodeAndCompare(t, w.Bytes(), vals)
}

func TestBlockWriter_SealAndOpen(t *testing.T) {
	for _, comp := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(comp.String(), func(t *testing.T) {
			w, err := NewBlockWriter(WithCompression(comp))
			require.NoError(t, err)
			defer w.Close()

			vals := buildSample(t, w)

			sealed, err := w.Seal()
			require.NoError(t, err)
			require.Equal(t, byte(comp), sealed[0])

			r, err := NewBlockReader()
			require.NoError(t, err)
			packed, err := r.Open(sealed)
			require.NoError(t, err)

			decodeAndCompare(t, packed, vals)
		})
	}
}

func TestBlockWriter_SealWithoutChecksum(t *testing.T) {
	w, err := NewBlockWriter(WithChecksum(false))
	require.NoError(t, err)
	defer w.Close()

	vals := buildSample(t, w)

	sealed, err := w.Seal()
	require.NoError(t, err)
	require.Len(t, sealed, 1+w.Words()*8)

	r, err := NewBlockReader(WithChecksumVerify(false))
	require.NoError(t, err)
	packed, err := r.Open(sealed)
	require.NoError(t, err)

	decodeAndCompare(t, packed, vals)
}

func TestBlockWriter_InvalidCompression(t *testing.T) {
	_, err := NewBlockWriter(WithCompression(format.CompressionType(0x7F)))
	require.Error(t, err)
}

func TestBlockWriter_WithEngine(t *testing.T) {
	w, err := NewBlockWriter(WithEngine(endian.GetLittleEndianEngine()))
	require.NoError(t, err)
	defer w.Close()

	w.WriteWord(0x0102030405060708)
	require.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, w.Bytes())
}

func TestBlockWriter_WriteAfterClosePanics(t *testing.T) {
	w, err := NewBlockWriter()
	require.NoError(t, err)
	w.Close()

	require.Panics(t, func() { w.WriteWord(1) })
	require.Panics(t, func() { w.Bytes() })
}

func TestBlockReader_ChecksumMismatch(t *testing.T) {
	w, err := NewBlockWriter()
	require.NoError(t, err)
	defer w.Close()

	buildSample(t, w)
	sealed, err := w.Seal()
	require.NoError(t, err)

	// Corrupt one payload byte.
	sealed[len(sealed)/2] ^= 0xFF

	r, err := NewBlockReader()
	require.NoError(t, err)
	_, err = r.Open(sealed)
	require.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestBlockReader_Truncated(t *testing.T) {
	r, err := NewBlockReader()
	require.NoError(t, err)

	_, err = r.Open(nil)
	require.ErrorIs(t, err, ErrTruncated)
	_, err = r.Open([]byte{byte(format.CompressionNone), 1, 2, 3})
	require.ErrorIs(t, err, ErrTruncated)
}

func TestBlockReader_UnknownCompression(t *testing.T) {
	r, err := NewBlockReader(WithChecksumVerify(false))
	require.NoError(t, err)

	_, err = r.Open([]byte{0x7F, 1, 2, 3})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrTruncated)
}

func TestBlockWriter_ChecksumTracksWords(t *testing.T) {
	w, err := NewBlockWriter()
	require.NoError(t, err)
	defer w.Close()

	before := w.Checksum()
	w.WriteWord(1)
	after := w.Checksum()
	require.NotEqual(t, before, after)

	// Same content, same digest.
	w2, err := NewBlockWriter()
	require.NoError(t, err)
	defer w2.Close()
	w2.WriteWord(1)
	require.Equal(t, after, w2.Checksum())
}

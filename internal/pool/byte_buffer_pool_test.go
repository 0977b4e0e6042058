package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_Basics(t *testing.T) {
	bb := NewByteBuffer(64)
	require.Equal(t, 0, bb.Len())
	require.Equal(t, 64, bb.Cap())

	bb.MustWrite([]byte{1, 2, 3})
	require.Equal(t, 3, bb.Len())
	require.Equal(t, []byte{1, 2, 3}, bb.Bytes())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.Equal(t, 64, bb.Cap())
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte{1, 2, 3, 4})

	bb.Grow(100)
	require.GreaterOrEqual(t, bb.Cap()-bb.Len(), 100)
	require.Equal(t, []byte{1, 2, 3, 4}, bb.Bytes())

	// Growing within capacity is a no-op.
	capBefore := bb.Cap()
	bb.Grow(1)
	require.Equal(t, capBefore, bb.Cap())
}

func TestBlockBufferPool_Reuse(t *testing.T) {
	bb := GetBlockBuffer()
	require.Equal(t, 0, bb.Len())
	bb.MustWrite([]byte{9, 9, 9})
	PutBlockBuffer(bb)

	// A pooled buffer always comes back clean.
	bb2 := GetBlockBuffer()
	require.Equal(t, 0, bb2.Len())
	PutBlockBuffer(bb2)
}

func TestBlockBufferPool_DropsOversized(t *testing.T) {
	bb := &ByteBuffer{B: make([]byte, 0, BlockBufferMaxThreshold+1)}
	// Must not panic; the oversized buffer is simply discarded.
	PutBlockBuffer(bb)
	PutBlockBuffer(nil)
}

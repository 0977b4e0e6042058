// Package pool provides pooled byte buffers for the stream layer.
package pool

import "sync"

const (
	// BlockBufferDefaultSize is the default capacity of a pooled buffer:
	// room for 2048 code words, plenty for typical packed streams.
	BlockBufferDefaultSize = 1024 * 16 // 16KiB

	// BlockBufferMaxThreshold caps what goes back into the pool; larger
	// buffers are dropped so one oversized stream doesn't pin memory.
	BlockBufferMaxThreshold = 1024 * 128 // 128KiB
)

// ByteBuffer is a growable byte slice with explicit length management.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Grow ensures the buffer has capacity for at least n more bytes.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}
	grown := make([]byte, len(bb.B), len(bb.B)+n)
	copy(grown, bb.B)
	bb.B = grown
}

var blockBufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(BlockBufferDefaultSize)
	},
}

// GetBlockBuffer obtains a clean ByteBuffer from the pool.
func GetBlockBuffer() *ByteBuffer {
	bb := blockBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutBlockBuffer returns a ByteBuffer to the pool. Buffers that grew
// beyond BlockBufferMaxThreshold are discarded.
func PutBlockBuffer(bb *ByteBuffer) {
	if bb == nil || cap(bb.B) > BlockBufferMaxThreshold {
		return
	}
	blockBufferPool.Put(bb)
}

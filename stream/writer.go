// Package stream packages a Simple-8b word sequence into a
// self-describing byte container.
//
// The codec core deliberately knows nothing about buffers: the Builder
// hands 64-bit words to a callback and the Decoder borrows a byte slice.
// This package supplies the common concrete ends of that pipe:
// BlockWriter collects words into a pooled buffer and seals them with an
// optional compression pass and an xxHash64 integrity checksum;
// BlockReader reverses it.
//
// Container layout:
//
//	[1B compression type][compressed packed words][8B xxHash64, little-endian]
//
// The checksum covers the uncompressed packed words, so corruption is
// detected after decompression, where it would otherwise surface as
// silently wrong values.
//
//	writer := stream.NewBlockWriter()
//	defer writer.Close()
//	builder := simple8b.NewBuilder[uint64](writer.WriteWord)
//	// ... Append/Skip ...
//	builder.Flush()
//	sealed, err := writer.Seal()
package stream

import (
	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/simple8b/compress"
	"github.com/arloliu/simple8b/endian"
	"github.com/arloliu/simple8b/format"
	"github.com/arloliu/simple8b/internal/options"
	"github.com/arloliu/simple8b/internal/pool"
)

// checksumSize is the byte width of the xxHash64 trailer.
const checksumSize = 8

// BlockWriter accumulates code words into a pooled byte buffer. Its
// WriteWord method has the simple8b.WriteFn signature and is meant to be
// passed directly to simple8b.NewBuilder.
//
// A BlockWriter is single-use per stream: write words, call Seal (or
// Bytes for the raw packed form), then Close to return the buffer to the
// pool. Not safe for concurrent use.
type BlockWriter struct {
	buf      *pool.ByteBuffer
	engine   endian.EndianEngine
	codec    compress.Codec
	compType format.CompressionType
	checksum bool
	words    int
}

// Option configures a BlockWriter.
type Option = options.Option[*BlockWriter]

// WithEngine sets the byte order used to record code words. The default
// is the machine-native engine, matching what simple8b.Decoder reads;
// pick a fixed engine for buffers that travel between machines.
func WithEngine(engine endian.EndianEngine) Option {
	return options.NoError(func(w *BlockWriter) {
		w.engine = engine
	})
}

// WithCompression selects the outer compression applied by Seal.
// The default is CompressionNone.
func WithCompression(compressionType format.CompressionType) Option {
	return options.New(func(w *BlockWriter) error {
		codec, err := compress.CreateCodec(compressionType, "block")
		if err != nil {
			return err
		}
		w.codec = codec
		w.compType = compressionType

		return nil
	})
}

// WithChecksum enables or disables the xxHash64 trailer. Enabled by
// default.
func WithChecksum(enabled bool) Option {
	return options.NoError(func(w *BlockWriter) {
		w.checksum = enabled
	})
}

// NewBlockWriter creates a BlockWriter backed by a pooled buffer.
func NewBlockWriter(opts ...Option) (*BlockWriter, error) {
	w := &BlockWriter{
		buf:      pool.GetBlockBuffer(),
		engine:   endian.GetNativeEngine(),
		codec:    compress.NewNoOpCompressor(),
		compType: format.CompressionNone,
		checksum: true,
	}
	if err := options.Apply(w, opts...); err != nil {
		pool.PutBlockBuffer(w.buf)
		return nil, err
	}

	return w, nil
}

// WriteWord appends one code word to the buffer.
//
// Panics if the writer has been closed.
func (w *BlockWriter) WriteWord(word uint64) {
	if w.buf == nil {
		panic("stream: write after Close")
	}
	w.buf.B = w.engine.AppendUint64(w.buf.B, word)
	w.words++
}

// Words returns the number of code words written so far.
func (w *BlockWriter) Words() int {
	return w.words
}

// Bytes returns the raw packed word buffer, without container framing.
// The slice aliases the writer's internal buffer and is valid until
// Close; feed it straight to simple8b.NewDecoder when no container is
// wanted.
func (w *BlockWriter) Bytes() []byte {
	if w.buf == nil {
		panic("stream: access after Close")
	}

	return w.buf.Bytes()
}

// Checksum returns the xxHash64 digest of the packed words written so
// far.
func (w *BlockWriter) Checksum() uint64 {
	return xxhash.Sum64(w.Bytes())
}

// Seal produces the sealed container: compression type byte, compressed
// payload, and, when enabled, the xxHash64 trailer over the
// uncompressed words. The returned slice is newly allocated and owned by
// the caller.
func (w *BlockWriter) Seal() ([]byte, error) {
	packed := w.Bytes()

	payload, err := w.codec.Compress(packed)
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, 1+len(payload)+checksumSize)
	sealed = append(sealed, byte(w.compType))
	sealed = append(sealed, payload...)
	if w.checksum {
		sealed = endian.GetLittleEndianEngine().AppendUint64(sealed, xxhash.Sum64(packed))
	}

	return sealed, nil
}

// Close returns the internal buffer to the pool. The writer is unusable
// afterwards; Bytes results obtained earlier become invalid.
func (w *BlockWriter) Close() {
	if w.buf != nil {
		pool.PutBlockBuffer(w.buf)
		w.buf = nil
	}
}

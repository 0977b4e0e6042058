package stream

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/simple8b/compress"
	"github.com/arloliu/simple8b/endian"
	"github.com/arloliu/simple8b/format"
	"github.com/arloliu/simple8b/internal/options"
)

var (
	// ErrTruncated reports a container too short to hold its declared
	// sections.
	ErrTruncated = errors.New("stream: truncated container")

	// ErrChecksumMismatch reports that the decompressed payload does not
	// match the recorded xxHash64 digest.
	ErrChecksumMismatch = errors.New("stream: checksum mismatch")
)

// BlockReader opens containers produced by BlockWriter.Seal and returns
// the packed word buffer ready for simple8b.NewDecoder.
//
// The reader must be configured the way the writer was: a container
// sealed without a checksum has no trailer to strip or verify.
type BlockReader struct {
	checksum bool
}

// ReaderOption configures a BlockReader.
type ReaderOption = options.Option[*BlockReader]

// WithChecksumVerify enables or disables checksum verification; it must
// match the writer's WithChecksum setting. Enabled by default.
func WithChecksumVerify(enabled bool) ReaderOption {
	return options.NoError(func(r *BlockReader) {
		r.checksum = enabled
	})
}

// NewBlockReader creates a BlockReader.
func NewBlockReader(opts ...ReaderOption) (*BlockReader, error) {
	r := &BlockReader{checksum: true}
	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}

	return r, nil
}

// Open parses a sealed container: it strips the framing, decompresses
// the payload, and verifies the checksum when one is expected.
//
// Returns:
//   - []byte: The packed word buffer. For CompressionNone the slice
//     aliases data; otherwise it is newly allocated.
//   - error: ErrTruncated, ErrChecksumMismatch, an unknown compression
//     type, or a decompression failure.
func (r *BlockReader) Open(data []byte) ([]byte, error) {
	trailer := 0
	if r.checksum {
		trailer = checksumSize
	}
	if len(data) < 1+trailer {
		return nil, ErrTruncated
	}

	compType := format.CompressionType(data[0])
	if !compType.Valid() {
		return nil, fmt.Errorf("stream: unknown compression type 0x%02x", data[0])
	}
	codec, err := compress.GetCodec(compType)
	if err != nil {
		return nil, err
	}

	payload := data[1 : len(data)-trailer]
	packed, err := codec.Decompress(payload)
	if err != nil {
		return nil, err
	}

	if r.checksum {
		want := endian.GetLittleEndianEngine().Uint64(data[len(data)-checksumSize:])
		if xxhash.Sum64(packed) != want {
			return nil, ErrChecksumMismatch
		}
	}

	return packed, nil
}

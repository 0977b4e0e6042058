package compress

// ZstdCompressor compresses payloads with Zstandard, trading speed for
// ratio. The right choice for cold storage of long packed streams and
// for network transfer where bandwidth dominates.
//
// Two implementations exist behind build tags, mirroring the split
// between the pure-Go and cgo Zstandard bindings: the default build uses
// klauspost/compress/zstd; building with -tags cgozstd switches to the
// libzstd binding.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

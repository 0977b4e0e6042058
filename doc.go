// Package simple8b implements the Simple-8b variable-width integer
// compression scheme: streams of non-negative 64- or 128-bit integers,
// with optional missing markers, packed into chains of 64-bit code words.
//
// Each word carries a 4-bit selector choosing among fixed
// (slot width × slot count) layouts, two extended families that trade
// slot width for a per-slot trailing-zero multiplier, and run-length
// blocks that collapse 120 or 240 repeats of the previous value into a
// single word. Missing entries occupy one slot, encoded as all ones.
//
// # Encoding
//
// Builder consumes values and skip markers and emits finalized words
// through a caller-supplied sink:
//
//	var packed []uint64
//	builder := simple8b.NewBuilder[uint64](func(w uint64) {
//	    packed = append(packed, w)
//	})
//	builder.Append(1)
//	builder.Append(2)
//	builder.Skip() // missing entry
//	builder.Flush()
//
// Append returns false for values too wide for the format (more than 60
// stored bits for the base layouts, where an all-ones value such as
// 2^60-1 needs one extra bit, and beyond the extended families'
// trailing-zero reach otherwise); everything else is accepted. Signed
// integers are out of scope; callers zig-zag encode first.
//
// # Decoding
//
// Decoder walks a packed byte buffer, one 8-byte machine-native word at
// a time, and yields each logical entry with a presence flag:
//
//	decoder := simple8b.NewDecoder[uint64](buffer)
//	for v, ok := range decoder.All() {
//	    if !ok {
//	        // missing entry
//	        continue
//	    }
//	    use(v)
//	}
//
// Decoder.Iter exposes a step-by-step cursor with block-level movement
// (AdvanceBlock, BlockSize) for callers that navigate word boundaries.
//
// # 128-bit elements
//
// The codec is generic over uint64 and num.Uint128; the wide
// instantiation stores up to 112 meaningful bits through the
// trailing-zero families.
//
// # Package structure
//
// The codec core is this package. Companion packages cover the stream's
// outer concerns: stream wraps the sink side with a pooled byte buffer,
// optional compression, and an xxHash64 integrity checksum; compress
// holds the compression codecs; endian supplies byte-order engines; num
// provides the 128-bit element type.
package simple8b

package simple8b

import (
	"iter"

	"github.com/arloliu/simple8b/endian"
)

// wordSize is the byte width of one code word in the packed buffer.
const wordSize = 8

// Decoder reads a packed Simple-8b buffer produced by Builder.
//
// The decoder borrows the caller's byte buffer for its lifetime and
// allocates nothing per decoded value. Each 8-byte chunk, read in
// machine-native byte order, is one code word; trailing bytes below 8
// are ignored.
type Decoder[T Unsigned] struct {
	buf   []byte
	words int
}

// NewDecoder creates a Decoder over buffer. The buffer is borrowed, not
// copied; it must stay valid and unmodified while the decoder is in use.
func NewDecoder[T Unsigned](buffer []byte) *Decoder[T] {
	return &Decoder[T]{
		buf:   buffer,
		words: len(buffer) / wordSize,
	}
}

// Len returns the number of complete code words in the buffer.
func (d *Decoder[T]) Len() int {
	return d.words
}

// All returns an iterator over every logical entry in the stream, in
// order. Each step yields the decoded value and a presence flag; missing
// entries yield the zero value and false.
//
// Example:
//
//	for v, ok := range decoder.All() {
//	    if !ok {
//	        // missing entry
//	        continue
//	    }
//	    use(v)
//	}
func (d *Decoder[T]) All() iter.Seq2[T, bool] {
	return func(yield func(T, bool) bool) {
		it := d.Iter()
		for it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Iter returns a cursor positioned before the first entry. Call Next to
// advance onto each value.
func (d *Decoder[T]) Iter() *Iterator[T] {
	return &Iterator[T]{
		buf:    d.buf,
		end:    d.words,
		engine: endian.GetNativeEngine(),
	}
}

// Iterator is a forward cursor over a packed buffer. It exposes one
// logical entry at a time and two movement primitives: Next, which
// advances a single value, and AdvanceBlock, which jumps to the next
// code word.
//
// The zero Iterator is not usable; obtain one from Decoder.Iter.
type Iterator[T Unsigned] struct {
	buf    []byte
	engine endian.EndianEngine

	pos int // index of the current word
	end int

	current uint64 // current word, native byte order

	val     T
	missing bool

	// last entry yielded; an RLE block re-emits it.
	lastVal     T
	lastMissing bool

	// slot geometry of the current block
	slotBits  uint8
	slotCount uint8
	shift     uint8
	countBits uint8
	countMult uint8

	// rleRemaining counts the values of the current RLE block not yet
	// consumed; zero inside slot blocks.
	rleRemaining uint16

	// blockLen is the total logical entry count of the current block.
	blockLen uint16

	started bool
	done    bool
}

// Next advances to the next logical entry. It returns false when the
// stream is exhausted, including when a reserved selector or an
// out-of-range sub-selector is encountered, which the decoder treats as
// end of stream.
func (it *Iterator[T]) Next() bool {
	if it.done {
		return false
	}
	if !it.started {
		it.started = true
		return it.loadBlock()
	}

	if it.rleRemaining > 0 {
		it.rleRemaining--
		if it.rleRemaining > 0 {
			return true
		}

		return it.advanceBlock()
	}

	it.shift += it.slotBits
	if it.shift+it.slotBits > 64 {
		return it.advanceBlock()
	}
	it.loadValue()

	return true
}

// Value returns the entry at the current position: the decoded integer
// and true, or the zero value and false for a missing entry. Only valid
// after Next or AdvanceBlock has returned true.
func (it *Iterator[T]) Value() (T, bool) {
	return it.val, !it.missing
}

// AdvanceBlock jumps to the first entry of the next code word, skipping
// whatever remains of the current block. Returns false at end of stream.
//
// An RLE block entered this way repeats the last entry actually yielded,
// not the final slot of the skipped word; sequential consumption with
// Next is what reproduces the encoder's stream exactly.
func (it *Iterator[T]) AdvanceBlock() bool {
	if it.done {
		return false
	}
	if !it.started {
		it.started = true
		return it.loadBlock()
	}

	return it.advanceBlock()
}

// BlockSize returns the number of logical entries the current code word
// holds: the slot count for packed blocks, the run length for RLE blocks.
func (it *Iterator[T]) BlockSize() int {
	return int(it.blockLen)
}

// Equal reports whether two iterators sit at the same position: same
// word index and same slot shift. Entries within one RLE block share a
// single position by this definition.
func (it *Iterator[T]) Equal(other *Iterator[T]) bool {
	return it.pos == other.pos && it.shift == other.shift
}

func (it *Iterator[T]) advanceBlock() bool {
	it.pos++
	return it.loadBlock()
}

// loadBlock reads the word at pos, resolves its geometry from the
// selector table, and loads the first value. RLE blocks re-emit the last
// yielded entry (the implicit seed is zero at the very start of a
// stream).
func (it *Iterator[T]) loadBlock() bool {
	if it.pos >= it.end {
		it.done = true
		return false
	}

	it.current = it.engine.Uint64(it.buf[it.pos*wordSize:])
	selector := uint8(it.current & countFieldMask)
	sub := uint8(it.current >> selectorBits & countFieldMask)

	lay, ok := lookupBlock(selector, sub)
	if !ok {
		it.done = true
		return false
	}

	if lay.rleRun > 0 {
		it.rleRemaining = lay.rleRun
		it.blockLen = lay.rleRun
		it.slotBits = 0
		it.slotCount = 0
		it.shift = 0
		it.val = it.lastVal
		it.missing = it.lastMissing

		return true
	}

	it.rleRemaining = 0
	it.blockLen = uint16(lay.slotCount)
	it.slotBits = lay.slotBits
	it.slotCount = lay.slotCount
	it.countBits = lay.countBits
	it.countMult = lay.countMult
	it.shift = lay.shiftStart
	it.loadValue()

	return true
}

// loadValue extracts the slot at the current shift. An all-ones slot is
// the missing marker; extended slots split into a trailing-zero count
// (low bits) and a payload shifted back up by count × multiplier.
func (it *Iterator[T]) loadValue() {
	mask := slotMask(it.slotBits)
	slot := it.current >> it.shift & mask

	if slot == mask {
		var zero T
		it.val = zero
		it.missing = true
	} else {
		payload := slot
		var zeros uint
		if it.countBits > 0 {
			payload = slot >> it.countBits
			zeros = uint(slot&countFieldMask) * uint(it.countMult)
		}
		it.val = shiftLeft(fromUint64[T](payload), zeros)
		it.missing = false
	}

	it.lastVal = it.val
	it.lastMissing = it.missing
}

package simple8b

// WriteFn receives each finalized 64-bit code word, in machine-native
// byte order, synchronously from Append, Skip, or Flush. The callback
// must not re-enter the builder.
type WriteFn func(word uint64)

// maxPendingValues bounds the pending queue: no selector family packs
// more than 60 slots into one word, and the builder flushes before the
// queue could exceed the capacity of the best remaining family.
const maxPendingValues = 60

// Builder compresses a series of non-negative integers, with optional
// missing markers, into a chain of 64-bit Simple-8b words delivered
// through a caller-supplied sink.
//
// The builder keeps a bounded queue of pending values annotated with
// their storage cost under each selector family. Each Append either
// extends an active run of repeats, joins the queue, or flushes the
// largest full word first when no family can fit the queue plus the new
// value into a single word. Runs of 120 or more identical values collapse
// into RLE words.
//
// Typical usage:
//
//	var packed []uint64
//	builder := simple8b.NewBuilder[uint64](func(w uint64) {
//	    packed = append(packed, w)
//	})
//	for _, v := range values {
//	    if !builder.Append(v) {
//	        // value too wide for the format
//	    }
//	}
//	builder.Skip() // record a missing entry
//	builder.Flush()
//
// A Builder is not safe for concurrent use.
type Builder[T Unsigned] struct {
	write WriteFn

	// pending holds values not yet committed to a word, oldest first.
	pending []pendingValue[T]

	// rleCount is the number of values absorbed into the active run
	// beyond the committed seed; zero when no run is active.
	rleCount uint32

	// lastInPrevWord is the most recent value committed into an emitted
	// word. It seeds run-length continuation across the word boundary.
	// The initial seed is the value zero, so a stream may open with an
	// RLE block of zeros.
	lastInPrevWord pendingValue[T]

	// currMaxBitLen tracks, per family, the widest stored payload across
	// the pending queue. It only grows between flushes, floored at
	// minDataBits.
	currMaxBitLen [numFamilies]uint8

	// possible is the sticky per-family feasibility flag: true on
	// (re)start, cleared permanently for the current word once the
	// family is proven unable to hold the queue. The monotonicity is
	// what keeps Append amortised constant.
	possible [numFamilies]bool

	// lastValidFamily is the family that most recently admitted the
	// queue; it decides the layout of the next emitted word.
	lastValidFamily int
}

// NewBuilder creates a Builder that emits code words through write.
//
// Panics if write is nil.
func NewBuilder[T Unsigned](write WriteFn) *Builder[T] {
	if write == nil {
		panic("simple8b: nil write function")
	}

	b := &Builder[T]{
		write:   write,
		pending: make([]pendingValue[T], 0, maxPendingValues),
	}
	b.resetFitState()

	return b
}

// Append adds one value to the stream.
//
// Returns false, leaving the builder untouched, when no selector family
// can store the value: more than 60 stored bits for the base family and
// more than 52 payload bits after the extended families' trailing-zero
// strips, where an all-ones payload counts one extra bit to stay distinct
// from the missing marker (so 2^60-1 is rejected). Every other input
// succeeds.
func (b *Builder[T]) Append(v T) bool {
	pv, ok := makePending(v)
	if !ok {
		return false
	}

	if b.rlePossible() {
		if !b.lastInPrevWord.skip && b.lastInPrevWord.val == v {
			b.rleCount++
			return true
		}
		b.handleRleTermination()
	}

	b.appendValue(pv, true)

	return true
}

// Skip records a missing value. It occupies one slot, encoded as all
// ones, and always terminates an active run first.
func (b *Builder[T]) Skip() {
	b.handleRleTermination()
	b.appendValue(skipPending[T](), false)
}

// Flush drains all buffered state: an active run becomes RLE words plus
// a re-queued residue, then the pending queue is emitted as full words,
// widening slots for the final short tail. After Flush the builder can
// keep appending; the stream simply continues.
func (b *Builder[T]) Flush() {
	b.handleRleTermination()
	for len(b.pending) > 0 {
		b.encodeLargestPossibleWord(b.lastValidFamily)
	}
}

// Reset returns the builder to its initial state, dropping any pending
// values and restoring the implicit zero RLE seed. The sink is retained.
func (b *Builder[T]) Reset() {
	b.pending = b.pending[:0]
	b.rleCount = 0
	b.lastInPrevWord = pendingValue[T]{}
	b.resetFitState()
}

// rlePossible reports whether a run may accrue: either one is active, or
// the queue is empty so the incoming value sits directly after the last
// committed word.
func (b *Builder[T]) rlePossible() bool {
	return b.rleCount > 0 || len(b.pending) == 0
}

// appendValue queues pv, flushing words until it fits. tryRle allows a
// flush that empties the queue to convert the new value into a fresh run
// seed instead of queueing it; re-queued RLE residue passes false to
// avoid bouncing straight back into a run.
func (b *Builder[T]) appendValue(pv pendingValue[T], tryRle bool) {
	for !b.fits(&pv) {
		b.encodeLargestPossibleWord(b.lastValidFamily)

		if tryRle && len(b.pending) == 0 &&
			!pv.skip && !b.lastInPrevWord.skip && pv.val == b.lastInPrevWord.val {
			b.rleCount = 1
			return
		}
	}

	b.push(pv)
}

// fits runs the admissibility check: families are probed in index order
// and the first one whose word capacity still covers the queue plus pv
// wins. A family that fails is never re-probed for the current word.
func (b *Builder[T]) fits(pv *pendingValue[T]) bool {
	n := len(b.pending) + 1
	for f := familyBase; f < familyReserved; f++ {
		if !b.possible[f] {
			continue
		}

		bitsNeeded := max(b.currMaxBitLen[f], pv.bitCount[f])
		if familyCapacity(f, bitsNeeded) >= n {
			b.lastValidFamily = f
			return true
		}
		b.possible[f] = false
	}

	return false
}

func (b *Builder[T]) push(pv pendingValue[T]) {
	b.pending = append(b.pending, pv)
	for f := range numFamilies {
		if pv.bitCount[f] > b.currMaxBitLen[f] {
			b.currMaxBitLen[f] = pv.bitCount[f]
		}
	}
}

// resetFitState restores the per-word bookkeeping after a flush: widths
// back to the family floors, every real family feasible again.
func (b *Builder[T]) resetFitState() {
	b.currMaxBitLen = minDataBits
	b.possible = [numFamilies]bool{true, true, true, false}
	b.lastValidFamily = familyBase
}

// handleRleTermination ends an active run: full RLE words are emitted in
// descending multiples (240-word runs first, then one 120), and the
// residue below 120 is re-queued as plain values of the seed.
func (b *Builder[T]) handleRleTermination() {
	if b.rleCount == 0 {
		return
	}

	for b.rleCount >= rleRunLong {
		b.write(selectorRLE240)
		b.rleCount -= rleRunLong
	}
	if b.rleCount >= rleRunShort {
		b.write(selectorRLE120)
		b.rleCount -= rleRunShort
	}

	residue := int(b.rleCount)
	b.rleCount = 0
	if residue == 0 {
		return
	}

	pv, _ := makePending(b.lastInPrevWord.val)
	for range residue {
		b.appendValue(pv, false)
	}
}

// encodeLargestPossibleWord packs the longest prefix of the pending
// queue that fills one word under family, emits it, and rebuilds the
// width and feasibility bookkeeping from the carry-over tail.
func (b *Builder[T]) encodeLargestPossibleWord(family int) {
	var (
		word     uint64
		consumed int
	)
	if family == familyBase {
		word, consumed = b.packBaseWord()
	} else {
		word, consumed = b.packExtendedWord(family)
	}

	b.write(word)
	b.lastInPrevWord = b.pending[consumed-1]

	tail := b.pending[:copy(b.pending, b.pending[consumed:])]
	b.pending = b.pending[:0]
	b.resetFitState()
	for i := range tail {
		pv := tail[i]
		// The tail is a strict subset of a set that fit together, so it
		// always re-fits without emitting.
		b.fits(&pv)
		b.push(pv)
	}
}

// packBaseWord assembles a base-family word from the front of the queue.
// Slot 0 sits immediately above the selector (or above the zero
// sub-selector nibble for the 7- and 8-bit layouts); a skip becomes an
// all-ones slot.
func (b *Builder[T]) packBaseWord() (uint64, int) {
	lay := packLayoutBase(b.currMaxBitLen[familyBase], len(b.pending))

	word := uint64(lay.selector)
	shift := uint(selectorBits)
	if lay.extNibble {
		shift = selectorBits + extensionBits
	}

	count := int(lay.slotCount)
	for i := range count {
		pv := &b.pending[i]
		slot := slotMask(lay.dataBits)
		if !pv.skip {
			slot = low64(pv.val)
		}
		word |= slot << shift
		shift += uint(lay.dataBits)
	}

	return word, count
}

// packExtendedWord assembles an extended-family word: each slot stores
// the trailing-zero count in its low 4 bits and the stripped payload
// above it.
func (b *Builder[T]) packExtendedWord(family int) (uint64, int) {
	lay := packLayoutExtended(family, b.currMaxBitLen[family], len(b.pending))

	selector := uint64(selectorExt7)
	if family == familyExtended8 {
		selector = selectorExt8
	}
	word := selector | uint64(lay.sub)<<selectorBits

	slotBits := lay.dataBits + countFieldBits
	mult := uint(extendedMultiplier[family])
	shift := uint(selectorBits + extensionBits)

	count := int(lay.slotCount)
	for i := range count {
		pv := &b.pending[i]
		slot := slotMask(slotBits)
		if !pv.skip {
			zeros := uint(pv.storedZeros[family])
			payload := low64(shiftRight(pv.val, zeros))
			slot = payload<<countFieldBits | uint64(zeros/mult)
		}
		word |= slot << shift
		shift += uint(slotBits)
	}

	return word, count
}

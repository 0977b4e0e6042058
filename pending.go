package simple8b

// unstorable marks a family that cannot hold a value at any width. Any
// capacity lookup against it returns 0, so the fit test rejects the
// family naturally.
const unstorable = 0xFF

// pendingValue is one queued element awaiting emission, annotated at
// insertion time with its storage cost under each selector family:
// the payload width after stripping the trailing zeros that family can
// absorb, and the stripped trailing-zero count itself. Costs are computed
// once and never revisited.
type pendingValue[T Unsigned] struct {
	val  T
	skip bool

	// bitCount is the stored payload width per family, after the
	// trailing-zero strip, widened by one where the payload would
	// otherwise collide with the all-ones missing marker. unstorable
	// when the family cannot hold the value at all.
	bitCount [numFamilies]uint8

	// storedZeros is the trailing-zero count the family's slot count
	// field would record for this value. Always 0 for the base family
	// and a multiple of 4 for extended-8.
	storedZeros [numFamilies]uint8
}

// makePending computes the per-family cost annotations for v. The second
// return is false when no family can store the value: more stored bits,
// including any missing-marker widening bit, than base (60) or the
// extended families (52 payload bits after their trailing-zero strips)
// can reach.
func makePending[T Unsigned](v T) (pendingValue[T], bool) {
	pv := pendingValue[T]{val: v}

	pv.bitCount[familyBase], pv.storedZeros[familyBase] = baseCost(v)
	pv.bitCount[familyExtended7], pv.storedZeros[familyExtended7] = extendedCost(v, familyExtended7)
	pv.bitCount[familyExtended8], pv.storedZeros[familyExtended8] = extendedCost(v, familyExtended8)

	// The reserved family mirrors extended-8 so the bookkeeping arrays
	// stay uniform; it is never selectable.
	pv.bitCount[familyReserved] = pv.bitCount[familyExtended8]
	pv.storedZeros[familyReserved] = pv.storedZeros[familyExtended8]

	ok := pv.bitCount[familyBase] != unstorable ||
		pv.bitCount[familyExtended7] != unstorable ||
		pv.bitCount[familyExtended8] != unstorable

	return pv, ok
}

// skipPending returns the queue entry for a missing value. It occupies a
// slot in any family (encoded as all ones) but contributes nothing to the
// width bookkeeping.
func skipPending[T Unsigned]() pendingValue[T] {
	return pendingValue[T]{skip: true}
}

// baseCost returns the stored width of v in the base family. The base
// family strips nothing, so the stored payload is v itself; when v is
// all ones at its own bit length it gains one widening bit to stay
// distinguishable from the missing marker.
func baseCost[T Unsigned](v T) (uint8, uint8) {
	n := bitLen(v)
	if n > 0 && isMask(v, n) {
		n++
	}
	if n > maxBaseDataBits {
		return unstorable, 0
	}

	return uint8(n), 0
}

// extendedCost returns the stored payload width and the stored
// trailing-zero count of v in an extended family.
//
// The strip is greedy: as many trailing zeros as the family's count field
// can record (15 for extended-7; 60, rounded down to a multiple of 4,
// for extended-8). The widening bit applies only when the slot as a whole
// would read as the missing marker, i.e. the stripped payload is all ones
// and the count field is saturated at all ones too.
func extendedCost[T Unsigned](v T, family int) (uint8, uint8) {
	if isZero(v) {
		return 0, 0
	}

	mult := int(extendedMultiplier[family])
	maxZeros := countFieldMask * mult

	zeros := trailingZeros(v)
	if zeros > maxZeros {
		zeros = maxZeros
	}
	zeros -= zeros % mult

	stored := shiftRight(v, uint(zeros))
	n := bitLen(stored)
	if isMask(stored, n) && zeros == maxZeros {
		n++
	}
	if n > maxExtendedDataBits {
		return unstorable, 0
	}

	return uint8(n), uint8(zeros)
}

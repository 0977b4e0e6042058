package simple8b

// The selector table below is the sole authority for how a 64-bit word is
// laid out, on both the encode and the decode side.
//
// Every word carries a 4-bit selector in its low nibble:
//
//	┌──────────┬────────────────────────────────────────────────────────────┐
//	│ Selector │ Layout                                                     │
//	├──────────┼────────────────────────────────────────────────────────────┤
//	│    0     │ reserved, never emitted                                    │
//	│    1     │ RLE, 120 repeats of the previous value; upper bits zero    │
//	│    2     │ RLE, 240 repeats of the previous value; upper bits zero    │
//	│   3-6    │ 60×1, 30×2, 20×3, 15×4 bit slots starting at bit 4         │
//	│   7, 8   │ extension nibble in bits [4,8); slots start at bit 8       │
//	│   9-14   │ 6×10, 5×12, 4×15, 3×20, 2×30, 1×60 slots from bit 4        │
//	│    15    │ reserved, never emitted                                    │
//	└──────────┴────────────────────────────────────────────────────────────┘
//
// Selectors 7 and 8 are the only base layouts whose slots total 56 bits
// (8×7 and 7×8), which is exactly the room left after a second nibble.
// That second nibble disambiguates: sub-selector 0 keeps the plain base
// layout, sub-selectors ≥ 1 switch to the extended families where each
// slot stores a 4-bit trailing-zero count below its data bits.

const (
	// selectorBits is the width of the selector tag in every word.
	selectorBits = 4
	// extensionBits is the width of the sub-selector nibble on selectors 7/8.
	extensionBits = 4

	selectorRLE120 = 1
	selectorRLE240 = 2
	selectorExt7   = 7
	selectorExt8   = 8

	rleRunShort = 120
	rleRunLong  = 240

	// countFieldBits is the per-slot trailing-zero field width in the
	// extended families.
	countFieldBits = 4
	countFieldMask = 0xF

	// maxBaseDataBits and maxExtendedDataBits bound the stored payload
	// width per family.
	maxBaseDataBits     = 60
	maxExtendedDataBits = 52
)

// Selector families tracked independently by the builder. The reserved
// family exists so the per-family state arrays have a fixed size of four;
// it never admits values.
const (
	familyBase = iota
	familyExtended7
	familyExtended8
	familyReserved

	numFamilies
)

// minDataBits is the floor on stored data bits per family. A word never
// uses slots narrower than this even when every pending value is smaller.
var minDataBits = [numFamilies]uint8{1, 2, 4, 4}

// extendedMultiplier converts a slot's count field into a trailing-zero
// count, indexed by family. Zero for families without a count field.
var extendedMultiplier = [numFamilies]uint8{0, 1, 4, 0}

// baseLayout is one (slot width, slot count) entry of the base family.
type baseLayout struct {
	dataBits  uint8
	slotCount uint8
	selector  uint8
	// extNibble marks the two layouts wire-encoded under selectors 7/8
	// with a zero sub-selector; their slots start at bit 8, not bit 4.
	extNibble bool
}

// baseLayouts is the base family menu in ascending slot width. Widths 5
// and 6 are intentionally absent: selectors 7 and 8 carry the extension
// nibble, and their sub-0 layouts cover the 7- and 8-bit widths, so the
// 5/6-bit values ride in 7-bit slots.
var baseLayouts = []baseLayout{
	{dataBits: 1, slotCount: 60, selector: 3},
	{dataBits: 2, slotCount: 30, selector: 4},
	{dataBits: 3, slotCount: 20, selector: 5},
	{dataBits: 4, slotCount: 15, selector: 6},
	{dataBits: 7, slotCount: 8, selector: 7, extNibble: true},
	{dataBits: 8, slotCount: 7, selector: 8, extNibble: true},
	{dataBits: 10, slotCount: 6, selector: 9},
	{dataBits: 12, slotCount: 5, selector: 10},
	{dataBits: 15, slotCount: 4, selector: 11},
	{dataBits: 20, slotCount: 3, selector: 12},
	{dataBits: 30, slotCount: 2, selector: 13},
	{dataBits: 60, slotCount: 1, selector: 14},
}

// extendedLayout is one sub-selector entry of an extended family. The
// slot is countFieldBits of trailing-zero count (low) plus dataBits of
// payload (high).
type extendedLayout struct {
	dataBits  uint8
	slotCount uint8
	sub       uint8
}

// extended7Layouts: selector 7, multiplier 1, stored trailing zeros 0-15.
var extended7Layouts = []extendedLayout{
	{dataBits: 2, slotCount: 9, sub: 1},
	{dataBits: 3, slotCount: 8, sub: 2},
	{dataBits: 4, slotCount: 7, sub: 3},
	{dataBits: 5, slotCount: 6, sub: 4},
	{dataBits: 7, slotCount: 5, sub: 5},
	{dataBits: 10, slotCount: 4, sub: 6},
	{dataBits: 14, slotCount: 3, sub: 7},
	{dataBits: 24, slotCount: 2, sub: 8},
	{dataBits: 52, slotCount: 1, sub: 9},
}

// extended8Layouts: selector 8, multiplier 4, stored trailing zeros
// 0-60 in steps of 4.
var extended8Layouts = []extendedLayout{
	{dataBits: 4, slotCount: 7, sub: 1},
	{dataBits: 5, slotCount: 6, sub: 2},
	{dataBits: 7, slotCount: 5, sub: 3},
	{dataBits: 10, slotCount: 4, sub: 4},
	{dataBits: 14, slotCount: 3, sub: 5},
	{dataBits: 24, slotCount: 2, sub: 6},
	{dataBits: 52, slotCount: 1, sub: 7},
}

func extendedLayoutsFor(family int) []extendedLayout {
	if family == familyExtended7 {
		return extended7Layouts
	}

	return extended8Layouts
}

// familyCapacity returns the slot count of the narrowest layout in the
// family whose data width admits dataBits, or 0 when the family cannot
// store payloads that wide. This is the fit test's word capacity: the
// pending queue may never grow past it.
func familyCapacity(family int, dataBits uint8) int {
	switch family {
	case familyBase:
		for i := range baseLayouts {
			if baseLayouts[i].dataBits >= dataBits {
				return int(baseLayouts[i].slotCount)
			}
		}
	case familyExtended7, familyExtended8:
		layouts := extendedLayoutsFor(family)
		for i := range layouts {
			if layouts[i].dataBits >= dataBits {
				return int(layouts[i].slotCount)
			}
		}
	}

	return 0
}

// packLayoutBase picks the base layout for a word holding pending values
// whose widest payload is dataBits. The narrowest admitting layout wins;
// when fewer than its slotCount values remain (flush of a short tail),
// slots widen until the word can be filled completely. Words are never
// emitted with unused slots.
func packLayoutBase(dataBits uint8, pending int) baseLayout {
	for i := range baseLayouts {
		lay := baseLayouts[i]
		if lay.dataBits >= dataBits && int(lay.slotCount) <= pending {
			return lay
		}
	}

	// Unreachable for valid state: the 1×60 layout admits any storable
	// payload and a single value.
	return baseLayouts[len(baseLayouts)-1]
}

// packLayoutExtended is packLayoutBase for the extended families.
func packLayoutExtended(family int, dataBits uint8, pending int) extendedLayout {
	layouts := extendedLayoutsFor(family)
	for i := range layouts {
		lay := layouts[i]
		if lay.dataBits >= dataBits && int(lay.slotCount) <= pending {
			return lay
		}
	}

	return layouts[len(layouts)-1]
}

// blockLayout describes the decode-side geometry of one word.
type blockLayout struct {
	slotBits   uint8 // total slot width, count field included
	slotCount  uint8
	countBits  uint8 // 0 for base layouts
	countMult  uint8 // trailing-zero multiplier, 0 for base layouts
	shiftStart uint8 // bit position of slot 0
	rleRun     uint16
}

// lookupBlock resolves a word's selector (and, for selectors 7/8, its
// sub-selector) into the block geometry. The second return is false for
// the reserved selectors 0 and 15 and for out-of-range sub-selectors;
// decoders treat those words as end of stream.
func lookupBlock(selector, sub uint8) (blockLayout, bool) {
	switch selector {
	case 0, 15:
		return blockLayout{}, false
	case selectorRLE120:
		return blockLayout{rleRun: rleRunShort}, true
	case selectorRLE240:
		return blockLayout{rleRun: rleRunLong}, true
	case selectorExt7, selectorExt8:
		if sub == 0 {
			if selector == selectorExt7 {
				return blockLayout{slotBits: 7, slotCount: 8, shiftStart: 8}, true
			}

			return blockLayout{slotBits: 8, slotCount: 7, shiftStart: 8}, true
		}

		family := familyExtended7
		if selector == selectorExt8 {
			family = familyExtended8
		}
		layouts := extendedLayoutsFor(family)
		if int(sub) > len(layouts) {
			return blockLayout{}, false
		}
		lay := layouts[sub-1]

		return blockLayout{
			slotBits:   lay.dataBits + countFieldBits,
			slotCount:  lay.slotCount,
			countBits:  countFieldBits,
			countMult:  extendedMultiplier[family],
			shiftStart: 8,
		}, true
	default:
		for i := range baseLayouts {
			if baseLayouts[i].selector == selector {
				lay := baseLayouts[i]

				return blockLayout{
					slotBits:   lay.dataBits,
					slotCount:  lay.slotCount,
					shiftStart: selectorBits,
				}, true
			}
		}

		return blockLayout{}, false
	}
}

package simple8b

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectorTable_BaseLayoutsFitOneWord(t *testing.T) {
	seen := map[uint8]bool{}
	for _, lay := range baseLayouts {
		overhead := selectorBits
		if lay.extNibble {
			overhead += extensionBits
		}
		total := overhead + int(lay.dataBits)*int(lay.slotCount)
		require.LessOrEqual(t, total, 64, "selector %d", lay.selector)

		// No wasted slots: one more slot must not fit.
		require.Greater(t, overhead+int(lay.dataBits)*(int(lay.slotCount)+1), 64,
			"selector %d leaves room for another slot", lay.selector)

		require.False(t, seen[lay.selector], "selector %d reused", lay.selector)
		seen[lay.selector] = true
	}
}

func TestSelectorTable_ExtendedLayoutsFitOneWord(t *testing.T) {
	for _, family := range []int{familyExtended7, familyExtended8} {
		for _, lay := range extendedLayoutsFor(family) {
			slotBits := int(lay.dataBits) + countFieldBits
			total := selectorBits + extensionBits + slotBits*int(lay.slotCount)
			require.LessOrEqual(t, total, 64, "family %d sub %d", family, lay.sub)
			require.Greater(t, total+slotBits, 64, "family %d sub %d wastes a slot", family, lay.sub)
		}
	}
}

func TestSelectorTable_MinimumDataBits(t *testing.T) {
	require.Equal(t, [numFamilies]uint8{1, 2, 4, 4}, minDataBits)
	require.Equal(t, uint8(2), extended7Layouts[0].dataBits)
	require.Equal(t, uint8(4), extended8Layouts[0].dataBits)
}

func TestFamilyCapacity(t *testing.T) {
	// Base family: slot counts 1-8 plus 15, 20, 30 and 60 are all
	// reachable exactly; that is what keeps flush words full.
	require.Equal(t, 60, familyCapacity(familyBase, 1))
	require.Equal(t, 30, familyCapacity(familyBase, 2))
	require.Equal(t, 20, familyCapacity(familyBase, 3))
	require.Equal(t, 15, familyCapacity(familyBase, 4))
	require.Equal(t, 8, familyCapacity(familyBase, 5))
	require.Equal(t, 8, familyCapacity(familyBase, 7))
	require.Equal(t, 7, familyCapacity(familyBase, 8))
	require.Equal(t, 6, familyCapacity(familyBase, 10))
	require.Equal(t, 1, familyCapacity(familyBase, 60))
	require.Equal(t, 0, familyCapacity(familyBase, 61))

	require.Equal(t, 9, familyCapacity(familyExtended7, 2))
	require.Equal(t, 1, familyCapacity(familyExtended7, 52))
	require.Equal(t, 0, familyCapacity(familyExtended7, 53))
	require.Equal(t, 7, familyCapacity(familyExtended8, 4))
	require.Equal(t, 0, familyCapacity(familyExtended8, unstorable))

	require.Equal(t, 0, familyCapacity(familyReserved, 1))
}

func TestLookupBlock(t *testing.T) {
	// Reserved selectors.
	_, ok := lookupBlock(0, 0)
	require.False(t, ok)
	_, ok = lookupBlock(15, 0)
	require.False(t, ok)

	// RLE selectors carry only a run length.
	lay, ok := lookupBlock(selectorRLE120, 0)
	require.True(t, ok)
	require.Equal(t, uint16(rleRunShort), lay.rleRun)
	lay, ok = lookupBlock(selectorRLE240, 0)
	require.True(t, ok)
	require.Equal(t, uint16(rleRunLong), lay.rleRun)

	// Plain base selectors start slots at bit 4.
	for _, base := range baseLayouts {
		if base.extNibble {
			continue
		}
		lay, ok = lookupBlock(base.selector, 0)
		require.True(t, ok)
		require.Equal(t, base.dataBits, lay.slotBits)
		require.Equal(t, base.slotCount, lay.slotCount)
		require.Equal(t, uint8(selectorBits), lay.shiftStart)
		require.Equal(t, uint8(0), lay.countBits)
	}

	// Selector 7/8 sub 0 are the 56-bit base layouts from bit 8.
	lay, ok = lookupBlock(selectorExt7, 0)
	require.True(t, ok)
	require.Equal(t, uint8(7), lay.slotBits)
	require.Equal(t, uint8(8), lay.slotCount)
	require.Equal(t, uint8(8), lay.shiftStart)

	lay, ok = lookupBlock(selectorExt8, 0)
	require.True(t, ok)
	require.Equal(t, uint8(8), lay.slotBits)
	require.Equal(t, uint8(7), lay.slotCount)

	// Extended sub-selectors resolve data+count geometry.
	lay, ok = lookupBlock(selectorExt7, 1)
	require.True(t, ok)
	require.Equal(t, uint8(6), lay.slotBits)
	require.Equal(t, uint8(9), lay.slotCount)
	require.Equal(t, uint8(4), lay.countBits)
	require.Equal(t, uint8(1), lay.countMult)

	lay, ok = lookupBlock(selectorExt8, 7)
	require.True(t, ok)
	require.Equal(t, uint8(56), lay.slotBits)
	require.Equal(t, uint8(1), lay.slotCount)
	require.Equal(t, uint8(4), lay.countMult)

	// Out-of-range sub-selectors are malformed.
	_, ok = lookupBlock(selectorExt7, 10)
	require.False(t, ok)
	_, ok = lookupBlock(selectorExt8, 8)
	require.False(t, ok)
}

func TestPendingCost_Widening(t *testing.T) {
	// 1 is all ones at one bit; stored as-is it would read as missing.
	pv, ok := makePending[uint64](1)
	require.True(t, ok)
	require.Equal(t, uint8(2), pv.bitCount[familyBase])

	// 2^4-1 widens from 4 to 5 bits.
	pv, ok = makePending[uint64](15)
	require.True(t, ok)
	require.Equal(t, uint8(5), pv.bitCount[familyBase])

	// 2^60-1 widens past the base family and has no trailing zeros for
	// the extended ones.
	_, ok = makePending[uint64](uint64(1)<<60 - 1)
	require.False(t, ok)
}

func TestPendingCost_TrailingZeroStrip(t *testing.T) {
	pv, ok := makePending[uint64](1 << 30)
	require.True(t, ok)

	// Base family stores the value whole.
	require.Equal(t, uint8(31), pv.bitCount[familyBase])
	require.Equal(t, uint8(0), pv.storedZeros[familyBase])

	// Extended-7 strips at most 15 zeros.
	require.Equal(t, uint8(16), pv.bitCount[familyExtended7])
	require.Equal(t, uint8(15), pv.storedZeros[familyExtended7])

	// Extended-8 strips multiples of four, here 28 of the 30.
	require.Equal(t, uint8(3), pv.bitCount[familyExtended8])
	require.Equal(t, uint8(28), pv.storedZeros[familyExtended8])
}

func TestPendingCost_Zero(t *testing.T) {
	pv, ok := makePending[uint64](0)
	require.True(t, ok)
	for f := familyBase; f <= familyExtended8; f++ {
		require.Equal(t, uint8(0), pv.bitCount[f])
		require.Equal(t, uint8(0), pv.storedZeros[f])
	}
}

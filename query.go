// Copyright (C) 2019 Manuel Weitzman
// SPDX-License-Identifier: GPL-3.0-or-later

package s18vec

// accessSweep walks words from the start of a block, accumulating an
// absolute bit position (initialized one below the block's first bit),
// and reports whether the bit at target is set.
func accessSweep(words []uint32, target uint64) int {
	accum := int64(-1)

	for _, w := range words {
		layout, leading := classify(w)
		if leading > 0 {
			accum += int64(leading)
			if uint64(accum) >= target {
				return 1
			}
		}

		sw := sealedWord(w)
		for k := 0; k < int(fieldCount[layout]); k++ {
			g := sw.field(layout, k)
			if g == 0 {
				break // word was sealed short, zero-padded
			}
			accum += int64(g)
			switch {
			case uint64(accum) == target:
				return 1
			case uint64(accum) > target:
				return 0
			}
		}
	}

	return 0
}

// rankSweep walks words from the start of a block and returns the
// number of one-bits strictly before target (relative to the block's
// first bit).
func rankSweep(words []uint32, target uint64) uint64 {
	accum := int64(-1)
	oneCount := int64(0)
	tgt := int64(target)

	for _, w := range words {
		layout, leading := classify(w)
		ld := int64(leading)

		if accum+ld >= tgt {
			return uint64(oneCount + tgt - accum - 1)
		}
		accum += ld
		oneCount += ld

		sw := sealedWord(w)
		for k := 0; k < int(fieldCount[layout]); k++ {
			g := sw.field(layout, k)
			if g == 0 {
				break
			}
			if accum+int64(g) >= tgt {
				return uint64(oneCount)
			}
			accum += int64(g)
			oneCount++
		}
	}

	return uint64(oneCount)
}

// selectSweep walks words from the start of a block, summing gap
// values while counting down remaining, and returns the sum of the
// first `remaining` gaps: one more than the bit offset, relative to the
// block's first bit, of the `remaining`-th one-bit in the block.
func selectSweep(words []uint32, remaining uint64) uint64 {
	var accum uint64

	for _, w := range words {
		if remaining == 0 {
			break
		}

		layout, leading := classify(w)
		take := uint64(leading)
		if take > remaining {
			take = remaining
		}
		accum += take
		remaining -= take

		sw := sealedWord(w)
		for k := 0; k < int(fieldCount[layout]) && remaining > 0; k++ {
			g := sw.field(layout, k)
			if g == 0 {
				break
			}
			accum += uint64(g)
			remaining--
		}
	}

	return accum
}

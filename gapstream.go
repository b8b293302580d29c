// Copyright (C) 2019 Manuel Weitzman
// SPDX-License-Identifier: GPL-3.0-or-later

package s18vec

import (
	"fmt"
	"iter"

	"github.com/bits-and-blooms/bitset"
)

// gapsFromBitVector walks the one-bits of bits in [0, n) and yields the
// gap sequence: the position of the first one-bit plus one, then the
// distance from each one-bit to the next. It never materializes the
// full position or gap list, unlike the reference implementation -
// bits.NextSet already gives O(1)-amortized iteration over set bits.
func gapsFromBitVector(bits *bitset.BitSet, n uint64) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		prev := -1
		pos := uint(0)
		for {
			next, ok := bits.NextSet(pos)
			if !ok || uint64(next) >= n {
				return
			}

			var gap uint32
			if prev < 0 {
				gap = uint32(next) + 1
			} else {
				gap = uint32(int(next) - prev)
			}

			if !yield(gap) {
				return
			}

			prev = int(next)
			pos = next + 1
		}
	}
}

// packWords greedily packs a gap sequence into S18 words, imposing
// block boundaries every blockSize words. It returns the word stream
// and the two L1 prefix-sum arrays (length = number of blocks + 1, the
// last entry always carrying the true totals even when the final block
// falls short of blockSize words).
func packWords(gaps iter.Seq[uint32], blockSize int) (words []uint32, prefixBits, prefixOnes []uint64, err error) {
	prefixBits = []uint64{0}
	prefixOnes = []uint64{0}

	b := newWordBuilder()
	wordsInBlock := 0
	var blockBits, blockOnes uint64

	sealCurrent := func() {
		words = append(words, uint32(b.seal()))
		wordsInBlock++
		b = newWordBuilder()
		if wordsInBlock == blockSize {
			prefixBits = append(prefixBits, prefixBits[len(prefixBits)-1]+blockBits)
			prefixOnes = append(prefixOnes, prefixOnes[len(prefixOnes)-1]+blockOnes)
			blockBits, blockOnes = 0, 0
			wordsInBlock = 0
		}
	}

	for gap := range gaps {
		if gap > maxGapValue {
			return nil, nil, nil, fmt.Errorf("%w: gap %d", ErrGapTooLarge, gap)
		}

		for !b.tryAppend(gap) {
			sealCurrent()
		}
		blockBits += uint64(gap)
		blockOnes++
	}

	if !b.empty() {
		sealCurrent()
	}
	if wordsInBlock != 0 {
		prefixBits = append(prefixBits, prefixBits[len(prefixBits)-1]+blockBits)
		prefixOnes = append(prefixOnes, prefixOnes[len(prefixOnes)-1]+blockOnes)
	}

	return words, prefixBits, prefixOnes, nil
}

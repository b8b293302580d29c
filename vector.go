// Copyright (C) 2019 Manuel Weitzman
// SPDX-License-Identifier: GPL-3.0-or-later

package s18vec

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/mweitzman/s18vec/internal/intvec"
)

// validBlockSizes enumerates the only block sizes the wire format and
// index construction support. Go has no compile-time const-generic
// parameter to pin this at the type level, so it is validated here
// instead, once, at construction.
var validBlockSizes = map[int]bool{
	8: true, 16: true, 32: true, 64: true, 128: true,
	256: true, 512: true, 1024: true,
}

// Vector is a succinct, immutable compressed bitvector. Once built by
// New it answers Access, Rank1, and Select1 without allocating, and is
// safe for concurrent use by any number of readers.
type Vector struct {
	n, ones   uint64
	blockSize int

	words []uint32

	prefixBits *intvec.Packed
	prefixOnes *intvec.Packed
	l2Bits     *intvec.Packed
	l2Ones     *intvec.Packed

	divBits, divOnes uint64
}

// New builds a Vector holding the first n bits of bits (bits beyond n
// are ignored), using blockSize S18 words per L1 block. blockSize must
// be one of {8,16,32,64,128,256,512,1024}; any other value is a
// contract violation and panics.
//
// New returns ErrGapTooLarge if two consecutive one-bits are farther
// apart than 2^28-1, or the position of the first one-bit plus one
// exceeds 2^28-1: the
// input is too sparse for the S18 codec.
func New(bits *bitset.BitSet, n uint64, blockSize int) (*Vector, error) {
	if !validBlockSizes[blockSize] {
		panic("s18vec: invalid block size")
	}

	gaps := gapsFromBitVector(bits, n)
	words, prefixBitsRaw, prefixOnesRaw, err := packWords(gaps, blockSize)
	if err != nil {
		return nil, err
	}

	ones := prefixOnesRaw[len(prefixOnesRaw)-1]

	l2BitsRaw, l2OnesRaw, divBits, divOnes := buildL2(prefixBitsRaw, prefixOnesRaw, n, ones)

	return &Vector{
		n:          n,
		ones:       ones,
		blockSize:  blockSize,
		words:      words,
		prefixBits: intvec.FromValues(prefixBitsRaw),
		prefixOnes: intvec.FromValues(prefixOnesRaw),
		l2Bits:     intvec.FromValues(l2BitsRaw),
		l2Ones:     intvec.FromValues(l2OnesRaw),
		divBits:    divBits,
		divOnes:    divOnes,
	}, nil
}

// Len returns N, the number of bits the vector represents.
func (v *Vector) Len() uint64 { return v.n }

// blockForBit returns the index of the block containing bit position i.
func (v *Vector) blockForBit(i uint64) int {
	j := i / v.divBits
	idx := v.l2Bits.Get(j)
	if idx == 0 {
		return 0
	}
	return int(idx) - 1
}

// blockForOne returns the index of the block containing the block
// boundary relevant to the k-th one-bit, 1-indexed (k in [1, M]), per
// the l2_ones[k/d_o]-1 formula.
func (v *Vector) blockForOne(k uint64) int {
	j := k / v.divOnes
	idx := v.l2Ones.Get(j)
	if idx == 0 {
		return 0
	}
	return int(idx) - 1
}

// blockWords returns every word from the start of block b to the end
// of the stream. The L2 directory only promises to land on a block at
// or before the one actually containing the query target, so the
// sweep functions must be free to walk past a single block's worth of
// words; in practice they stop within the first block almost always.
func (v *Vector) blockWords(b int) []uint32 {
	start := b * v.blockSize
	if start > len(v.words) {
		start = len(v.words)
	}
	return v.words[start:]
}

// Access returns the i-th bit (0 or 1). i must be < Len(); an
// out-of-range i is a contract violation and panics.
func (v *Vector) Access(i uint64) int {
	if i >= v.n {
		panic("s18vec: Access index out of range")
	}

	b := v.blockForBit(i)
	target := i - v.prefixBits.Get(uint64(b))
	return accessSweep(v.blockWords(b), target)
}

// Rank1 returns the number of one-bits in positions [0, i). i may
// equal Len(), in which case the result is M. A larger i is a contract
// violation and panics.
func (v *Vector) Rank1(i uint64) uint64 {
	if i > v.n {
		panic("s18vec: Rank1 index out of range")
	}
	if i == v.n {
		return v.ones
	}

	b := v.blockForBit(i)
	target := i - v.prefixBits.Get(uint64(b))
	return v.prefixOnes.Get(uint64(b)) + rankSweep(v.blockWords(b), target)
}

// Rank0 returns the number of zero-bits in positions [0, i); it is
// simply i - Rank1(i).
func (v *Vector) Rank0(i uint64) uint64 {
	return i - v.Rank1(i)
}

// Select1 returns the position of the k-th one-bit, 1-indexed. k must
// be in [1, M]; any other value is a contract violation and panics.
func (v *Vector) Select1(k uint64) uint64 {
	if k < 1 || k > v.ones {
		panic("s18vec: Select1 rank out of range")
	}

	b := v.blockForOne(k)
	target := k - v.prefixOnes.Get(uint64(b))
	sum := v.prefixBits.Get(uint64(b)) + selectSweep(v.blockWords(b), target)

	// Every gap in the stream carries an implicit +1 (the very first
	// gap is defined as pos(first one)+1, and this bias telescopes
	// losslessly through every partial sum), so a sum of raw gaps is
	// always one more than the 0-indexed bit position it encodes.
	return sum - 1
}

// SizeInBytes returns the total memory footprint of the vector's owned
// arrays: the S18 word stream plus the four bit-compressed index
// arrays.
func (v *Vector) SizeInBytes() int {
	return len(v.words)*4 +
		v.prefixBits.SizeInBytes() +
		v.prefixOnes.SizeInBytes() +
		v.l2Bits.SizeInBytes() +
		v.l2Ones.SizeInBytes()
}

// accessSlow answers Access by a full linear decode of the word
// stream from the beginning, ignoring the L1/L2 indexes entirely. It
// exists only as an independent, deliberately-slow oracle for
// differential testing against Access.
func (v *Vector) accessSlow(i uint64) int {
	if i >= v.n {
		panic("s18vec: Access index out of range")
	}
	return accessSweep(v.words, i)
}

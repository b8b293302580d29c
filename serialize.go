// Copyright (C) 2019 Manuel Weitzman
// SPDX-License-Identifier: GPL-3.0-or-later

package s18vec

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/mweitzman/s18vec/internal/intvec"
)

// Serialize writes v to w as a length-prefixed, little-endian stream:
// scalars M, N, |W|, block size, d_b, d_o, the raw word stream, then
// the four index arrays in their own self-describing format. It
// returns the number of bytes written. I/O errors are returned as-is.
func (v *Vector) Serialize(w io.Writer) (int64, error) {
	var n int64

	scalars := []uint64{v.ones, v.n, uint64(len(v.words)), uint64(v.blockSize), v.divBits, v.divOnes}
	for _, s := range scalars {
		if err := binary.Write(w, binary.LittleEndian, s); err != nil {
			return n, err
		}
		n += 8
	}

	if len(v.words) > 0 {
		if err := binary.Write(w, binary.LittleEndian, v.words); err != nil {
			return n, err
		}
		n += int64(len(v.words)) * 4
	}

	for _, arr := range []*intvec.Packed{v.prefixBits, v.prefixOnes, v.l2Bits, v.l2Ones} {
		m, err := arr.WriteTo(w)
		n += m
		if err != nil {
			return n, err
		}
	}

	return n, nil
}

// Deserialize reconstructs a Vector previously written by Serialize.
// It does not re-validate the S18 word stream; a corrupted or
// foreign byte stream produces a Vector whose queries have undefined
// results rather than a reported error, beyond what the underlying
// reads themselves surface.
func Deserialize(r io.Reader) (*Vector, error) {
	var scalars [6]uint64
	for i := range scalars {
		if err := binary.Read(r, binary.LittleEndian, &scalars[i]); err != nil {
			return nil, fmt.Errorf("s18vec: read header: %w", err)
		}
	}
	ones, n, wordCount, blockSize, divBits, divOnes := scalars[0], scalars[1], scalars[2], scalars[3], scalars[4], scalars[5]

	words := make([]uint32, wordCount)
	if wordCount > 0 {
		if err := binary.Read(r, binary.LittleEndian, words); err != nil {
			return nil, fmt.Errorf("s18vec: read word stream: %w", err)
		}
	}

	prefixBits, _, err := intvec.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("s18vec: read prefix_bits: %w", err)
	}
	prefixOnes, _, err := intvec.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("s18vec: read prefix_ones: %w", err)
	}
	l2Bits, _, err := intvec.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("s18vec: read l2_bits: %w", err)
	}
	l2Ones, _, err := intvec.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("s18vec: read l2_ones: %w", err)
	}

	return &Vector{
		n:          n,
		ones:       ones,
		blockSize:  int(blockSize),
		words:      words,
		prefixBits: prefixBits,
		prefixOnes: prefixOnes,
		l2Bits:     l2Bits,
		l2Ones:     l2Ones,
		divBits:    divBits,
		divOnes:    divOnes,
	}, nil
}

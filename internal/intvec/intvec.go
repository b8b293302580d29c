// Copyright (C) 2019 Manuel Weitzman
// SPDX-License-Identifier: GPL-3.0-or-later

// Package intvec implements a packed array of fixed-but-arbitrary
// bit-width unsigned integers: the host container the S18 vector's
// indexes are built on, standing in for sdsl's int_vector<W> from the
// original C++ implementation. There is no equivalent generic
// packed-width container anywhere in the Go ecosystem surfaced by this
// project's reference corpus, so this package is built directly on
// math/bits and a []uint64 word store, in the same word/shift/mask
// idiom the corpus uses for single-bit bitsets, generalized to
// multi-bit fields.
package intvec

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"
)

const wordBits = 64

// Packed is a fixed-length array of length elements, each width bits
// wide (0 <= width <= 64), packed into consecutive uint64 words with no
// padding between elements. The zero value is not usable; construct
// with New or FromValues.
type Packed struct {
	width  uint
	length uint64
	words  []uint64
}

func ceilDiv(a, b uint64) uint64 {
	if b == 0 {
		return 0
	}
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}

// New allocates a zeroed packed array of length elements, each width
// bits wide.
func New(width uint, length uint64) *Packed {
	if width > 64 {
		panic("intvec: width must be <= 64")
	}
	var nWords uint64
	if width > 0 {
		nWords = ceilDiv(length*uint64(width), wordBits)
	}
	return &Packed{width: width, length: length, words: make([]uint64, nWords)}
}

// FromValues bit-compresses values into the minimum width that can
// represent every element - the "rewrite with minimum width" routine
// the spec's host interface requires.
func FromValues(values []uint64) *Packed {
	var maxV uint64
	for _, v := range values {
		if v > maxV {
			maxV = v
		}
	}

	width := uint(bits.Len64(maxV))
	p := New(width, uint64(len(values)))
	for i, v := range values {
		p.Set(uint64(i), v)
	}
	return p
}

func (p *Packed) mask() uint64 {
	if p.width == 64 {
		return ^uint64(0)
	}
	return uint64(1)<<p.width - 1
}

// Len returns the number of elements.
func (p *Packed) Len() uint64 { return p.length }

// Width returns the bit width of each element.
func (p *Packed) Width() uint { return p.width }

// Get returns the element at index i.
func (p *Packed) Get(i uint64) uint64 {
	if p.width == 0 {
		return 0
	}
	if i >= p.length {
		panic("intvec: index out of range")
	}

	bitPos := i * uint64(p.width)
	wordIdx := bitPos / wordBits
	bitOff := bitPos % wordBits

	v := p.words[wordIdx] >> bitOff
	if bitOff+uint64(p.width) > wordBits {
		rem := bitOff + uint64(p.width) - wordBits
		v |= p.words[wordIdx+1] << (uint64(p.width) - rem)
	}
	return v & p.mask()
}

// Set overwrites the element at index i. Only used while building an
// array; once a Vector is constructed its index arrays are never
// written to again.
func (p *Packed) Set(i uint64, val uint64) {
	if p.width == 0 {
		return
	}
	if i >= p.length {
		panic("intvec: index out of range")
	}

	val &= p.mask()
	bitPos := i * uint64(p.width)
	wordIdx := bitPos / wordBits
	bitOff := bitPos % wordBits

	p.words[wordIdx] &^= p.mask() << bitOff
	p.words[wordIdx] |= val << bitOff

	if bitOff+uint64(p.width) > wordBits {
		rem := bitOff + uint64(p.width) - wordBits
		hiShift := uint64(p.width) - rem
		p.words[wordIdx+1] &^= p.mask() >> hiShift
		p.words[wordIdx+1] |= val >> hiShift
	}
}

// SizeInBytes returns the number of bytes occupied by the packed word
// store, not counting the small fixed struct overhead.
func (p *Packed) SizeInBytes() int {
	return len(p.words) * 8
}

// WriteTo serializes the array as a length-prefixed, little-endian
// stream: width (uint32), length (uint64), word count (uint64), then
// each backing word (uint64).
func (p *Packed) WriteTo(w io.Writer) (int64, error) {
	var n int64

	if err := binary.Write(w, binary.LittleEndian, uint32(p.width)); err != nil {
		return n, err
	}
	n += 4

	if err := binary.Write(w, binary.LittleEndian, p.length); err != nil {
		return n, err
	}
	n += 8

	if err := binary.Write(w, binary.LittleEndian, uint64(len(p.words))); err != nil {
		return n, err
	}
	n += 8

	if len(p.words) > 0 {
		if err := binary.Write(w, binary.LittleEndian, p.words); err != nil {
			return n, err
		}
		n += int64(len(p.words)) * 8
	}

	return n, nil
}

// ReadFrom reconstructs a Packed previously written by WriteTo.
func ReadFrom(r io.Reader) (*Packed, int64, error) {
	var n int64

	var width32 uint32
	if err := binary.Read(r, binary.LittleEndian, &width32); err != nil {
		return nil, n, fmt.Errorf("intvec: read width: %w", err)
	}
	n += 4

	var length uint64
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return nil, n, fmt.Errorf("intvec: read length: %w", err)
	}
	n += 8

	var wordCount uint64
	if err := binary.Read(r, binary.LittleEndian, &wordCount); err != nil {
		return nil, n, fmt.Errorf("intvec: read word count: %w", err)
	}
	n += 8

	words := make([]uint64, wordCount)
	if wordCount > 0 {
		if err := binary.Read(r, binary.LittleEndian, words); err != nil {
			return nil, n, fmt.Errorf("intvec: read words: %w", err)
		}
		n += int64(wordCount) * 8
	}

	return &Packed{width: uint(width32), length: length, words: words}, n, nil
}

// Copyright (C) 2019 Manuel Weitzman
// SPDX-License-Identifier: GPL-3.0-or-later

package s18vec

import "math/bits"

// A sealedWord is a fully packed 32-bit S18 codeword: one to fourteen
// explicit gaps (plus an optional prepended run of 28 1-gaps), or, in
// case 16, a pure run of up to 2^27-1 1-gaps, decodable via classify
// and field without branching on gap content.
type sealedWord uint32

// Tag bits. Cases 1-7 (plain) and 8-14 (prefixed with a run of 28
// 1-gaps) share the high 4 bits as a case selector; case 15 (also
// prefixed) uses the same 4-bit slot with a distinct tag. Cases 16 and
// 17 need a 5th tag bit to stay distinguishable from case 15 and from
// each other.
const (
	tagMaskHigh4 uint32 = 0xF0000000
	tagMaskHigh5 uint32 = 0xF8000000

	tagCase01 uint32 = 0x00000000
	tagCase02 uint32 = 0x10000000
	tagCase03 uint32 = 0x20000000
	tagCase04 uint32 = 0x30000000
	tagCase05 uint32 = 0x40000000
	tagCase06 uint32 = 0x50000000
	tagCase07 uint32 = 0x60000000
	tagCase08 uint32 = 0x70000000
	tagCase09 uint32 = 0x80000000
	tagCase10 uint32 = 0x90000000
	tagCase11 uint32 = 0xA0000000
	tagCase12 uint32 = 0xB0000000
	tagCase13 uint32 = 0xC0000000
	tagCase14 uint32 = 0xD0000000
	tagCase15 uint32 = 0xE0000000
	tagCase16 uint32 = 0xF0000000
	tagCase17 uint32 = 0xF8000000

	// runLengthMask extracts the 27-bit run length carried by case 16.
	// It is a *count*, not a gap value - unlike every other field.
	runLengthMask uint32 = 0x07FFFFFF

	runPrefixSize = 28         // implicit leading 1-gaps in cases 8-15
	maxRunLength  = 0x07FFFFFF // largest run case 16 can hold alone
	maxGapValue   = 1<<28 - 1  // largest gap any field can hold
)

// Field layouts, indexed by an internal layout id distinct from the
// wire-format case number: the plain and run-prefixed variants of the
// same field width share one layout (the explicit field area sits at
// the same bit positions either way). noFieldsLayout is case 16's
// pure-run body, which has no explicit fields at all.
const (
	layout28x1 = iota
	layout14x2
	layout9x3
	layout7x4
	layout4x7
	layout3x9
	layout2x14
	layout5x5
	noFieldsLayout
	numLayouts
)

var fieldWidth = [numLayouts]uint32{28, 14, 9, 7, 4, 3, 2, 5, 0}
var fieldCount = [numLayouts]uint32{1, 2, 3, 4, 7, 9, 14, 5, 0}

// fieldMask and fieldShift give constant-time field extraction: no
// branching on gap content, ever. Materialized once at program start.
var fieldMask [numLayouts][14]uint32
var fieldShift [numLayouts][14]uint32

func init() {
	for l := 0; l < numLayouts; l++ {
		w, c := fieldWidth[l], fieldCount[l]
		if c == 0 {
			continue
		}
		maxVal := uint32(1)<<w - 1
		for i := uint32(0); i < c; i++ {
			shift := w * (c - 1 - i)
			fieldMask[l][i] = maxVal << shift
			fieldShift[l][i] = shift
		}
	}
}

// bitPadTable rounds a gap's bit length up to the nearest field width
// the codec actually supports: {1,2,3,4,5,7,9,14,28}. Indexed by
// bits.Len32(gap); built once at program start, mirroring the
// original's BIT_PAD constant table.
var bitPadTable [29]uint32

func init() {
	widths := [9]uint32{1, 2, 3, 4, 5, 7, 9, 14, 28}
	w := 0
	for blen := 0; blen <= 28; blen++ {
		for widths[w] < uint32(blen) {
			w++
		}
		bitPadTable[blen] = widths[w]
	}
}

// bitPad returns the minimum supported field width that can hold gap.
// gap must already be known to satisfy gap <= maxGapValue.
func bitPad(gap uint32) uint32 {
	return bitPadTable[bits.Len32(gap)]
}

// chunksForWidth returns how many fields of the given width fit in the
// 28-bit payload area. Only ever called with a width bitPad can produce.
func chunksForWidth(w uint32) uint32 {
	switch w {
	case 28:
		return 1
	case 14:
		return 2
	case 9:
		return 3
	case 7:
		return 4
	case 5:
		return 5
	case 4:
		return 7
	case 3:
		return 9
	case 2:
		return 14
	default:
		panic("s18vec: invalid chunk width")
	}
}

// classify splits a sealed word into its field layout and its count of
// implicitly prepended 1-gaps. For case 16 (a pure run, no explicit
// fields) layout is noFieldsLayout and leadingOnes carries the run
// length itself rather than the fixed value 28.
func classify(v uint32) (layout int, leadingOnes uint32) {
	switch v & tagMaskHigh4 {
	case tagCase01:
		return layout28x1, 0
	case tagCase02:
		return layout14x2, 0
	case tagCase03:
		return layout9x3, 0
	case tagCase04:
		return layout7x4, 0
	case tagCase05:
		return layout4x7, 0
	case tagCase06:
		return layout3x9, 0
	case tagCase07:
		return layout2x14, 0
	case tagCase08:
		return layout28x1, runPrefixSize
	case tagCase09:
		return layout14x2, runPrefixSize
	case tagCase10:
		return layout9x3, runPrefixSize
	case tagCase11:
		return layout7x4, runPrefixSize
	case tagCase12:
		return layout4x7, runPrefixSize
	case tagCase13:
		return layout3x9, runPrefixSize
	case tagCase14:
		return layout2x14, runPrefixSize
	case tagCase15:
		return layout5x5, runPrefixSize
	default:
		switch v & tagMaskHigh5 {
		case tagCase16:
			return noFieldsLayout, v & runLengthMask
		case tagCase17:
			return layout5x5, 0
		default:
			panic("s18vec: invalid S18 word tag")
		}
	}
}

// field extracts the i-th explicit field (0-indexed, most significant
// first) of a word known to use the given layout.
func (w sealedWord) field(layout, i int) uint32 {
	return (uint32(w) & fieldMask[layout][i]) >> fieldShift[layout][i]
}

// wordBuilder is a pending S18 word under construction: an append-only
// sink for gaps that may refuse further gaps once full. Once sealed it
// must not be reused.
type wordBuilder struct {
	processingLeadingOnes bool
	leadingOnes           uint32
	pending               []uint32
	chunkWidth            uint32
}

func newWordBuilder() *wordBuilder {
	return &wordBuilder{processingLeadingOnes: true, chunkWidth: 1}
}

// empty reports whether the builder has never accepted a gap.
func (b *wordBuilder) empty() bool {
	return b.leadingOnes == 0 && len(b.pending) == 0
}

// tryAppend attempts to add gap to the word. It reports false if the
// word is full as it stands; the caller must seal the current word,
// start a new one, and retry the same gap there.
func (b *wordBuilder) tryAppend(gap uint32) bool {
	if gap == 0 {
		panic("s18vec: gap must be >= 1")
	}

	if b.processingLeadingOnes && gap != 1 {
		b.processingLeadingOnes = false
	}

	if b.processingLeadingOnes {
		if b.leadingOnes < maxRunLength {
			b.leadingOnes++
			return true
		}
		return false
	}

	switch {
	case b.leadingOnes > 0 && b.leadingOnes < runPrefixSize:
		for b.leadingOnes > 0 {
			b.pending = append(b.pending, 1)
			b.leadingOnes--
		}
	case b.leadingOnes > runPrefixSize:
		return false
	}

	width := bitPad(gap)
	if width < b.chunkWidth {
		width = b.chunkWidth
	}
	count := uint32(len(b.pending)) + 1
	if width*count > 28 {
		return false
	}

	b.pending = append(b.pending, gap)
	b.chunkWidth = width
	return true
}

// seal packs the pending gaps into a sealed word, choosing the case tag
// deterministically from (chunkWidth, leadingOnes). The builder must
// not be used again afterward.
func (b *wordBuilder) seal() sealedWord {
	if b.chunkWidth == 1 && b.leadingOnes > 0 {
		return sealedWord(tagCase16 | b.leadingOnes)
	}
	if b.chunkWidth == 1 && len(b.pending) > 0 {
		return sealedWord(tagCase16 | uint32(len(b.pending)))
	}

	width := b.chunkWidth
	count := chunksForWidth(width)

	var v uint32
	for _, g := range b.pending {
		v <<= width
		v |= g
	}
	v <<= width * (count - uint32(len(b.pending)))

	prefixed := b.leadingOnes == runPrefixSize
	var tag uint32
	switch width {
	case 28:
		tag = pickTag(prefixed, tagCase01, tagCase08)
	case 14:
		tag = pickTag(prefixed, tagCase02, tagCase09)
	case 9:
		tag = pickTag(prefixed, tagCase03, tagCase10)
	case 7:
		tag = pickTag(prefixed, tagCase04, tagCase11)
	case 4:
		tag = pickTag(prefixed, tagCase05, tagCase12)
	case 3:
		tag = pickTag(prefixed, tagCase06, tagCase13)
	case 2:
		tag = pickTag(prefixed, tagCase07, tagCase14)
	case 5:
		tag = pickTag(prefixed, tagCase17, tagCase15)
	default:
		panic("s18vec: invalid chunk width at seal")
	}

	return sealedWord(v | tag)
}

func pickTag(prefixed bool, plain, withRun uint32) uint32 {
	if prefixed {
		return withRun
	}
	return plain
}

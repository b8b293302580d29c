// Copyright (C) 2019 Manuel Weitzman
// SPDX-License-Identifier: GPL-3.0-or-later

package s18vec

import "testing"

// packOneWord packs gaps into a single sealed word, failing the test
// if they don't fit in one.
func packOneWord(t *testing.T, gaps []uint32) sealedWord {
	t.Helper()

	b := newWordBuilder()
	for _, g := range gaps {
		if !b.tryAppend(g) {
			t.Fatalf("gaps %v do not fit in a single word", gaps)
		}
	}
	return b.seal()
}

// decodeWord reads back every gap a sealed word carries, including its
// implicit leading-ones prefix.
func decodeWord(w sealedWord) []uint32 {
	layout, leading := classify(uint32(w))

	var out []uint32
	for i := uint32(0); i < leading; i++ {
		out = append(out, 1)
	}

	for i := 0; i < int(fieldCount[layout]); i++ {
		g := w.field(layout, i)
		if g == 0 {
			break
		}
		out = append(out, g)
	}
	return out
}

func gapsEqual(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestWordRoundTripSingleField(t *testing.T) {
	t.Parallel()

	cases := [][]uint32{
		{1},
		{2},
		{43},      // S3: a gap that needs w >= 7
		{1 << 27}, // a gap that needs the 28-bit field
	}

	for _, gaps := range cases {
		w := packOneWord(t, gaps)
		got := decodeWord(w)
		if !gapsEqual(got, gaps) {
			t.Errorf("gaps %v: round-trip got %v", gaps, got)
		}
	}
}

func TestWordRoundTripEachLayout(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		gaps []uint32
	}{
		{"layout14x2", []uint32{1000, 2000}},
		{"layout9x3", []uint32{200, 300, 400}},
		{"layout7x4", []uint32{50, 60, 70, 80}},
		{"layout5x5", []uint32{1, 2, 3, 4, 20}},
		{"layout4x7", []uint32{1, 1, 1, 1, 1, 1, 10}},
		{"layout3x9", []uint32{1, 2, 3, 4, 5, 6, 2, 2, 2}},
		{"layout2x14", []uint32{1, 2, 1, 2, 1, 2, 1, 2, 1, 2, 1, 2, 1, 3}},
	}

	for _, tc := range cases {
		w := packOneWord(t, tc.gaps)
		got := decodeWord(w)
		if !gapsEqual(got, tc.gaps) {
			t.Errorf("%s: gaps %v, round-trip got %v", tc.name, tc.gaps, got)
		}
	}
}

func TestWordCase16PureRun(t *testing.T) {
	t.Parallel()

	// S2: a pure run of 100 one-gaps must seal into a single Case 16 word.
	gaps := make([]uint32, 100)
	for i := range gaps {
		gaps[i] = 1
	}

	w := packOneWord(t, gaps)
	layout, leading := classify(uint32(w))
	if layout != noFieldsLayout {
		t.Fatalf("layout = %d, want noFieldsLayout", layout)
	}
	if leading != 100 {
		t.Fatalf("leading = %d, want 100", leading)
	}
}

func TestWordPrefixedRunPlusField(t *testing.T) {
	t.Parallel()

	// S4: 28 leading one-gaps then an explicit gap of 5. bitPad(5) == 3
	// (a 3-bit field, not a 5-bit one - the gap's numeric value and the
	// field-width case both happening to be named "5" is a coincidence),
	// so this seals into layout3x9 (case 13), not layout5x5.
	gaps := make([]uint32, 0, 29)
	for i := 0; i < 28; i++ {
		gaps = append(gaps, 1)
	}
	gaps = append(gaps, 5)

	w := packOneWord(t, gaps)
	layout, leading := classify(uint32(w))
	if leading != runPrefixSize {
		t.Fatalf("leading = %d, want %d", leading, runPrefixSize)
	}
	if layout != layout3x9 {
		t.Fatalf("layout = %d, want layout3x9", layout)
	}

	got := decodeWord(w)
	if !gapsEqual(got, gaps) {
		t.Errorf("round-trip got %v, want %v", got, gaps)
	}
}

func TestWordRejectsZeroGap(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on zero gap")
		}
	}()

	b := newWordBuilder()
	b.tryAppend(0)
}

func TestWordOverflowSplitsAcrossWords(t *testing.T) {
	t.Parallel()

	b := newWordBuilder()
	accepted := 0
	for i := 0; i < 60; i++ {
		if !b.tryAppend(200) {
			break
		}
		accepted++
	}
	if accepted == 0 || accepted >= 60 {
		t.Fatalf("expected a partial word, accepted = %d", accepted)
	}

	w := b.seal()
	got := decodeWord(w)
	if len(got) != accepted {
		t.Fatalf("sealed word carries %d gaps, want %d", len(got), accepted)
	}
}

func TestBitPadMatchesSupportedWidths(t *testing.T) {
	t.Parallel()

	widths := map[uint32]bool{1: true, 2: true, 3: true, 4: true, 5: true, 7: true, 9: true, 14: true, 28: true}

	for gap := uint32(1); gap <= 1<<20; gap <<= 1 {
		w := bitPad(gap)
		if !widths[w] {
			t.Errorf("bitPad(%d) = %d, not a supported width", gap, w)
		}
	}
}

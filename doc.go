// Copyright (C) 2019 Manuel Weitzman
// SPDX-License-Identifier: GPL-3.0-or-later

// Package s18vec implements S18, a succinct compressed bitvector.
//
// A Vector stores an immutable sequence of N bits with M ones in
// near-entropy space and answers three queries in near-constant time:
//
//   - Access(i): the i-th bit
//   - Rank1(i): the number of 1-bits in positions [0, i)
//   - Select1(k): the position of the k-th 1-bit (1-indexed)
//
// The compression scheme packs runs and small gaps between consecutive
// one-bits into 32-bit "S18 words" using one of 17 layouts, then builds
// a two-level index (per-block prefix sums, plus a uniform-stride
// directory over those) so that every query touches O(1) blocks.
//
// A Vector is built once, from a [*bitset.BitSet], and never mutated
// afterward; concurrent readers need no synchronization.
package s18vec

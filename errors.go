// Copyright (C) 2019 Manuel Weitzman
// SPDX-License-Identifier: GPL-3.0-or-later

package s18vec

import "errors"

// ErrGapTooLarge is returned by [New] when a gap between consecutive
// one-bits (or the position of the very first one-bit, plus one) exceeds
// 2^28-1 and so cannot be packed into any S18 field. The input is too
// sparse for this codec; the caller should pick a different structure.
var ErrGapTooLarge = errors.New("s18vec: gap exceeds 2^28-1, input too sparse for S18")

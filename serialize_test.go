// Copyright (C) 2019 Manuel Weitzman
// SPDX-License-Identifier: GPL-3.0-or-later

package s18vec

import (
	"bytes"
	"io"
	"testing"

	"github.com/bits-and-blooms/bitset"
)

type shortReader struct {
	data []byte
}

func (r *shortReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestDeserializeTruncatedStreamPropagatesError(t *testing.T) {
	t.Parallel()

	b := bitset.New(8)
	b.Set(1)
	b.Set(5)
	v, err := New(b, 8, 8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var buf bytes.Buffer
	if _, err := v.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	truncated := &shortReader{data: buf.Bytes()[:buf.Len()-4]}
	if _, err := Deserialize(truncated); err == nil {
		t.Fatal("expected error deserializing a truncated stream")
	}
}

func TestSerializeEmptyVector(t *testing.T) {
	t.Parallel()

	b := bitset.New(0)
	v, err := New(b, 0, 16)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var buf bytes.Buffer
	if _, err := v.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	v2, err := Deserialize(&buf)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if v2.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", v2.Len())
	}
}

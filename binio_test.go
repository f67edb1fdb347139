// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

package bsa

import (
	"bytes"
	"strings"
	"testing"
)

func TestBinReaderWriterRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	bw := newBinWriter(&buf)
	bw.u8(0x12)
	bw.u16(0x3456)
	bw.u32(0x789abcde)
	bw.u64(0x0102030405060708)
	bw.bstring("hello")
	bw.zstring("world")
	if bw.err != nil {
		t.Fatalf("write: %v", bw.err)
	}

	br := newBinReader(&buf)
	if got := br.u8(); got != 0x12 {
		t.Fatalf("u8 = %#x, want 0x12", got)
	}
	if got := br.u16(); got != 0x3456 {
		t.Fatalf("u16 = %#x, want 0x3456", got)
	}
	if got := br.u32(); got != 0x789abcde {
		t.Fatalf("u32 = %#x, want 0x789abcde", got)
	}
	if got := br.u64(); got != 0x0102030405060708 {
		t.Fatalf("u64 = %#x, want 0x0102030405060708", got)
	}
	if got := br.bstring(); got != "hello" {
		t.Fatalf("bstring = %q, want %q", got, "hello")
	}
	if got := br.zstring(); got != "world" {
		t.Fatalf("zstring = %q, want %q", got, "world")
	}
	if br.err != nil {
		t.Fatalf("read: %v", br.err)
	}
}

func TestBinReaderCollapsesFirstError(t *testing.T) {
	t.Parallel()

	br := newBinReader(bytes.NewReader(nil))
	_ = br.u32()
	firstErr := br.err
	if firstErr == nil {
		t.Fatal("expected an error reading past the end of an empty stream")
	}

	_ = br.u64()
	if br.err != firstErr {
		t.Fatalf("a later read must not replace the first error: got %v, want %v", br.err, firstErr)
	}
}

func TestBinWriterBStringTruncatesAt255(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	bw := newBinWriter(&buf)
	bw.bstring(strings.Repeat("x", 300))
	if bw.err != nil {
		t.Fatalf("write: %v", bw.err)
	}

	br := newBinReader(&buf)
	got := br.bstring()
	if br.err != nil {
		t.Fatalf("read: %v", br.err)
	}
	if len(got) != 255 {
		t.Fatalf("bstring length = %d, want 255", len(got))
	}
}

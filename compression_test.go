// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

package bsa

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/pierrec/lz4/v4"
)

func TestZlibDeflateInflateRoundTrip(t *testing.T) {
	t.Parallel()

	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 64)

	packed, err := zlibDeflate(data)
	if err != nil {
		t.Fatalf("zlibDeflate: %v", err)
	}

	got, err := zlibInflate(packed, uint32(len(data)))
	if err != nil {
		t.Fatalf("zlibInflate: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("round trip did not reproduce the original bytes")
	}
}

func TestZlibInflateRawNoSizePrefix(t *testing.T) {
	t.Parallel()

	data := []byte("BA2 GNRL payloads carry no embedded size prefix")

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("zlib.Write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zlib.Close: %v", err)
	}

	got, err := zlibInflateRaw(buf.Bytes(), uint32(len(data)))
	if err != nil {
		t.Fatalf("zlibInflateRaw: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("round trip did not reproduce the original bytes")
	}
}

func TestLZ4FrameInflate(t *testing.T) {
	t.Parallel()

	data := bytes.Repeat([]byte("SkyrimSE uses a real LZ4 frame, not a bare block. "), 32)

	var body bytes.Buffer
	zw := lz4.NewWriter(&body)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("lz4.Write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("lz4.Close: %v", err)
	}

	var payload bytes.Buffer
	var sizePrefix [4]byte
	binary.LittleEndian.PutUint32(sizePrefix[:], uint32(len(data)))
	payload.Write(sizePrefix[:])
	payload.Write(body.Bytes())

	got, err := lz4FrameInflate(payload.Bytes(), uint32(len(data)))
	if err != nil {
		t.Fatalf("lz4FrameInflate: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("round trip did not reproduce the original bytes")
	}
}

func TestLZ4FrameDeflateInflateRoundTrip(t *testing.T) {
	t.Parallel()

	data := bytes.Repeat([]byte("round trip through our own encoder and decoder. "), 40)

	packed, err := lz4FrameDeflate(data)
	if err != nil {
		t.Fatalf("lz4FrameDeflate: %v", err)
	}

	got, err := lz4FrameInflate(packed, uint32(len(data)))
	if err != nil {
		t.Fatalf("lz4FrameInflate: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("round trip did not reproduce the original bytes")
	}
}

func TestLZ4BlockInflate(t *testing.T) {
	t.Parallel()

	data := bytes.Repeat([]byte("StarfieldLz4Texture chunks are raw LZ4 blocks. "), 32)

	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	var ht [65536]int
	n, err := lz4.CompressBlock(data, dst, ht[:])
	if err != nil {
		t.Fatalf("lz4.CompressBlock: %v", err)
	}
	if n == 0 {
		t.Skip("input did not compress under this LZ4 table, nothing to assert")
	}

	got, err := lz4BlockInflate(dst[:n], uint32(len(data)))
	if err != nil {
		t.Fatalf("lz4BlockInflate: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("round trip did not reproduce the original bytes")
	}
}

func TestEffectiveCompressed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name              string
		archiveType       ArchiveType
		defaultCompressed bool
		toggle            bool
		packedSize        uint32
		want              bool
	}{
		{name: "fallout4 keys off packed size, zero", archiveType: Fallout4, defaultCompressed: true, toggle: false, packedSize: 0, want: false},
		{name: "fallout4 keys off packed size, nonzero", archiveType: Fallout4, defaultCompressed: false, toggle: false, packedSize: 128, want: true},
		{name: "fallout4ng7 keys off packed size too", archiveType: Fallout4NG7, defaultCompressed: false, toggle: true, packedSize: 64, want: true},
		{name: "fallout4ng8 keys off packed size too", archiveType: Fallout4NG8, defaultCompressed: true, toggle: true, packedSize: 0, want: false},
		{name: "skyrimSE toggle matches default", archiveType: SkyrimSE, defaultCompressed: true, toggle: true, packedSize: 0, want: false},
		{name: "skyrimSE toggle overrides default", archiveType: SkyrimSE, defaultCompressed: true, toggle: false, packedSize: 0, want: true},
		{name: "oblivion toggle overrides default", archiveType: Oblivion, defaultCompressed: false, toggle: true, packedSize: 0, want: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := effectiveCompressed(tc.archiveType, tc.defaultCompressed, tc.toggle, tc.packedSize)
			if got != tc.want {
				t.Fatalf("effectiveCompressed(%v, %v, %v, %d) = %v, want %v",
					tc.archiveType, tc.defaultCompressed, tc.toggle, tc.packedSize, got, tc.want)
			}
		})
	}
}

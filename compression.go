// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

package bsa

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pierrec/lz4/v4"
)

// zlibInflate decompresses a zlib stream, stripping the legacy 4-byte
// little-endian uncompressed-size prefix carried by every legacy BSA
// compressed payload. outLen is the caller-known uncompressed size used
// only to size the output buffer; the prefix in the stream is what the
// original trusts for validation.
func zlibInflate(payload []byte, outLen uint32) ([]byte, error) {
	if len(payload) < 4 {
		return nil, fmt.Errorf("%w: zlib payload too short", ErrInvalidData)
	}

	stored := binary.LittleEndian.Uint32(payload[:4])
	zr, err := zlib.NewReader(bytes.NewReader(payload[4:]))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrZlibInitFailed, err)
	}
	defer func() { _ = zr.Close() }()

	n := outLen
	if n == 0 {
		n = stored
	}

	out := make([]byte, n)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, fmt.Errorf("%w: zlib inflate: %w", ErrInvalidData, err)
	}

	return out, nil
}

// zlibInflateRaw decompresses a zlib stream with no size prefix, used by
// BA2 GNRL files where packed_size/unpacked_size are already known from the
// file record rather than embedded in the payload.
func zlibInflateRaw(payload []byte, outLen uint32) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrZlibInitFailed, err)
	}
	defer func() { _ = zr.Close() }()

	out := make([]byte, outLen)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, fmt.Errorf("%w: zlib inflate: %w", ErrInvalidData, err)
	}

	return out, nil
}

// zlibDeflate compresses data for the legacy BSA writer, prepending the
// 4-byte little-endian uncompressed size the reader expects to strip.
func zlibDeflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], uint32(len(data)))
	buf.Write(prefix[:])

	zw, err := zlib.NewWriterLevel(&buf, zlib.DefaultCompression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrZlibInitFailed, err)
	}

	if _, err := zw.Write(data); err != nil {
		_ = zw.Close()
		return nil, fmt.Errorf("%w: zlib deflate: %w", ErrInvalidData, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: zlib deflate close: %w", ErrInvalidData, err)
	}

	return buf.Bytes(), nil
}

// lz4FrameInflate decompresses the LZ4-frame payload used exclusively by
// SkyrimSE compressed files. The first 4 bytes are the uncompressed size;
// the remainder is a single LZ4 frame.
func lz4FrameInflate(payload []byte, outLen uint32) ([]byte, error) {
	if len(payload) < 4 {
		return nil, fmt.Errorf("%w: lz4 frame payload too short", ErrInvalidData)
	}

	n := outLen
	if n == 0 {
		n = binary.LittleEndian.Uint32(payload[:4])
	}

	zr := lz4.NewReader(bytes.NewReader(payload[4:]))
	out := make([]byte, n)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, fmt.Errorf("%w: lz4 frame decode: %w", ErrInvalidData, err)
	}

	return out, nil
}

// lz4FrameDeflate compresses data into a single LZ4 frame for the legacy
// BSA writer, prepending the 4-byte little-endian uncompressed size the
// reader expects to strip, SkyrimSE's only compression backend.
func lz4FrameDeflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], uint32(len(data)))
	buf.Write(prefix[:])

	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		_ = zw.Close()
		return nil, fmt.Errorf("%w: lz4 frame encode: %w", ErrInvalidData, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: lz4 frame encode close: %w", ErrInvalidData, err)
	}

	return buf.Bytes(), nil
}

// lz4BlockInflate decompresses one LZ4 block, used only for
// StarfieldLz4Texture chunks. outLen must equal the chunk's unpacked size.
func lz4BlockInflate(payload []byte, outLen uint32) ([]byte, error) {
	out := make([]byte, outLen)
	n, err := lz4.UncompressBlock(payload, out)
	if err != nil {
		return nil, fmt.Errorf("%w: lz4 block decode: %w", ErrInvalidData, err)
	}
	if uint32(n) != outLen {
		return nil, fmt.Errorf("%w: lz4 block produced %d bytes, want %d", ErrInvalidData, n, outLen)
	}

	return out, nil
}

// effectiveCompressed applies the per-type compression predicate from the
// compression backend table: Fallout4 family keys off packed_size alone,
// everything else XORs the per-file toggle against the archive default.
func effectiveCompressed(archiveType ArchiveType, defaultCompressed, toggle bool, packedSize uint32) bool {
	if archiveType == Fallout4 || archiveType == Fallout4NG7 || archiveType == Fallout4NG8 {
		return packedSize > 0
	}

	return toggle != defaultCompressed
}

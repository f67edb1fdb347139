// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

package bsa

import (
	"encoding/binary"
	"fmt"
	"io"
)

// binReader sequences little-endian fixed-width reads over an io.Reader,
// collapsing the first error encountered so call sites can chain reads
// without checking after every field, matching the original's readType<T>
// template which throws on the first short read.
type binReader struct {
	r   io.Reader
	err error
}

func newBinReader(r io.Reader) *binReader {
	return &binReader{r: r}
}

func (b *binReader) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// readN reads exactly n bytes, returning a zero slice once b is in an error
// state so later calls become no-ops.
func (b *binReader) readN(n int) []byte {
	if b.err != nil {
		return make([]byte, n)
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(b.r, buf); err != nil {
		b.fail(fmt.Errorf("%w: %w", ErrInvalidData, err))
	}

	return buf
}

func (b *binReader) u8() byte {
	return b.readN(1)[0]
}

func (b *binReader) u16() uint16 {
	return binary.LittleEndian.Uint16(b.readN(2))
}

func (b *binReader) u32() uint32 {
	return binary.LittleEndian.Uint32(b.readN(4))
}

func (b *binReader) u64() uint64 {
	return binary.LittleEndian.Uint64(b.readN(8))
}

// bstring reads a Bethesda BString: one length-prefix byte followed by that
// many characters (not NUL-terminated). Grounded on original_source's
// readBString/writeBString declared in bsatypes.h.
func (b *binReader) bstring() string {
	n := int(b.u8())
	if n == 0 {
		return ""
	}

	return string(b.readN(n))
}

// zstring reads a NUL-terminated Bethesda string of unknown length.
func (b *binReader) zstring() string {
	if b.err != nil {
		return ""
	}

	var out []byte
	for {
		c := b.u8()
		if b.err != nil {
			return ""
		}
		if c == 0 {
			return string(out)
		}
		out = append(out, c)
	}
}

// binWriter is the write-side counterpart of binReader, used by the legacy
// BSA writer.
type binWriter struct {
	w   io.Writer
	err error
}

func newBinWriter(w io.Writer) *binWriter {
	return &binWriter{w: w}
}

func (b *binWriter) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *binWriter) write(p []byte) {
	if b.err != nil {
		return
	}
	if _, err := b.w.Write(p); err != nil {
		b.fail(fmt.Errorf("%w: %w", ErrAccessFailed, err))
	}
}

func (b *binWriter) u8(v byte) {
	b.write([]byte{v})
}

func (b *binWriter) u16(v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	b.write(buf[:])
}

func (b *binWriter) u32(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	b.write(buf[:])
}

func (b *binWriter) u64(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	b.write(buf[:])
}

// bstring writes a Bethesda BString: one length byte followed by the raw
// characters, truncating silently at 255 bytes as the original format has
// no room to express a longer prefix.
func (b *binWriter) bstring(s string) {
	if len(s) > 255 {
		s = s[:255]
	}
	b.u8(byte(len(s)))
	b.write([]byte(s))
}

// zstring writes a NUL-terminated Bethesda string.
func (b *binWriter) zstring(s string) {
	b.write([]byte(s))
	b.u8(0)
}

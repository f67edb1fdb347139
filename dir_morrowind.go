// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

package bsa

import "io"

// morrowindSizeOffset is one entry of the {size, offset} array immediately
// following the 12-byte header.
type morrowindSizeOffset struct {
	size   uint32
	offset uint32
}

// parseMorrowindDirectory parses the oldest, magic-less layout: a
// {size,offset} array, a name-offset array, and a contiguous name table
// whose per-entry lengths are derived from successive offsets.
func parseMorrowindDirectory(ra io.ReaderAt, size int64, hdr Header) (*FolderNode, error) {
	root := newRootFolder()

	br := newBinReader(sectionFrom(ra, size, 12))

	sizeOffsets := make([]morrowindSizeOffset, hdr.FileCount)
	for i := range sizeOffsets {
		sizeOffsets[i] = morrowindSizeOffset{size: br.u32(), offset: br.u32()}
	}

	nameOffsets := make([]uint32, hdr.FileCount)
	for i := range nameOffsets {
		nameOffsets[i] = br.u32()
	}
	if br.err != nil {
		return nil, br.err
	}

	lastLen := hdr.Offset - 12*hdr.FileCount
	dataStart := int64(12) + int64(hdr.Offset) + int64(hdr.FileCount)*8

	for i := uint32(0); i < hdr.FileCount; i++ {
		var nameLen uint32
		if i+1 == hdr.FileCount {
			nameLen = lastLen
		} else {
			nameLen = nameOffsets[i+1] - nameOffsets[i]
		}

		raw := br.readN(int(nameLen))
		if br.err != nil {
			return nil, br.err
		}

		fullPath := trimTrailingNUL(raw)
		dirs, base, err := splitPathComponents(fullPath)
		if err != nil {
			return nil, err
		}

		folder := root.FindOrInsertPath(dirs)
		rec := newFileRecord(base)
		rec.Size = sizeOffsets[i].size
		rec.Offset = dataStart + int64(sizeOffsets[i].offset)
		folder.AddFile(rec)
	}

	return root, nil
}

// trimTrailingNUL strips a single trailing NUL byte some Morrowind name
// table entries include as part of their derived length.
func trimTrailingNUL(b []byte) string {
	if n := len(b); n > 0 && b[n-1] == 0 {
		b = b[:n-1]
	}

	return string(b)
}

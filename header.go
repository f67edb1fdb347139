// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

package bsa

import (
	"fmt"
	"io"
)

const (
	morrowindMarker uint32 = 0x00000100
	legacyMagic     uint32 = 0x00415342 // "BSA\0"
	ba2Magic        uint32 = 0x58445442 // "BTDX"
)

// identifyAndParseHeader reads the archive's fixed header block, dispatching
// on the first 4 bytes. r must be positioned at the start of the stream.
func identifyAndParseHeader(r io.Reader) (Header, error) {
	br := newBinReader(r)
	marker := br.u32()
	if br.err != nil {
		return Header{}, br.err
	}

	switch {
	case marker == morrowindMarker:
		offset := br.u32()
		fileCount := br.u32()
		if br.err != nil {
			return Header{}, br.err
		}

		return Header{
			Type:         Morrowind,
			ArchiveFlags: FlagHasDirNames | FlagHasFileNames,
			FileCount:    fileCount,
			Offset:       offset,
			HeaderSize:   12,
		}, nil

	case marker == legacyMagic:
		typeID := br.u32()
		offset := br.u32()
		archiveFlags := br.u32()
		folderCount := br.u32()
		fileCount := br.u32()
		folderNameLength := br.u32()
		fileNameLength := br.u32()
		fileFlags := br.u32()
		if br.err != nil {
			return Header{}, br.err
		}

		t, ok := typeFromLegacyID(typeID)
		if !ok {
			return Header{}, fmt.Errorf("%w: unknown legacy type id 0x%x", ErrNotAnArchive, typeID)
		}

		return Header{
			Type:             t,
			ArchiveFlags:     ArchiveFlags(archiveFlags),
			FolderCount:      folderCount,
			FileCount:        fileCount,
			FolderNameLength: folderNameLength,
			FileNameLength:   fileNameLength,
			FileFlags:        FileFlags(fileFlags),
			Offset:           offset,
			HeaderSize:       36,
		}, nil

	case marker == ba2Magic:
		typeID := br.u32()
		archType := br.readN(4)
		fileCount := br.u32()
		nameTableOffset := br.u64()
		if br.err != nil {
			return Header{}, br.err
		}

		t, ok := typeFromBA2ID(typeID)
		if !ok {
			return Header{}, fmt.Errorf("%w: unknown ba2 type id 0x%x", ErrNotAnArchive, typeID)
		}

		return Header{
			Type:            t,
			ArchiveFlags:    FlagHasDirNames | FlagHasFileNames,
			FileCount:       fileCount,
			ArchType:        string(archType),
			NameTableOffset: nameTableOffset,
			HeaderSize:      24,
		}, nil

	default:
		return Header{}, fmt.Errorf("%w: unrecognized magic 0x%08x", ErrNotAnArchive, marker)
	}
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

package bsa

import "io"

// ba2RecordAreaStart returns the byte offset where GNRL/DX10 file records
// begin, which is wider than the base 24-byte dispatcher header for the
// Starfield variants.
func ba2RecordAreaStart(t ArchiveType) int64 {
	switch t {
	case Starfield:
		return 32
	case StarfieldLz4Texture:
		return 36
	default:
		return 24
	}
}

// readBA2NameTable reads the fileCount length-prefixed full paths stored at
// hdr.NameTableOffset, in file-record order.
func readBA2NameTable(ra io.ReaderAt, size int64, hdr Header) ([]string, error) {
	br := newBinReader(sectionFrom(ra, size, int64(hdr.NameTableOffset)))

	names := make([]string, hdr.FileCount)
	for i := range names {
		n := br.u16()
		names[i] = string(br.readN(int(n)))
	}

	return names, br.err
}

// insertBA2File resolves a full path into the folder tree and attaches a
// freshly created file record, returning it for the caller to populate.
func insertBA2File(root *FolderNode, fullPath string) (*FileRecord, error) {
	dirs, base, err := splitPathComponents(fullPath)
	if err != nil {
		return nil, err
	}

	folder := root.FindOrInsertPath(dirs)
	rec := newFileRecord(base)
	folder.AddFile(rec)

	return rec, nil
}

// parseBA2GNRL parses the "GNRL" directory variant: 36-byte file records
// paired positionally with the name table.
func parseBA2GNRL(ra io.ReaderAt, size int64, hdr Header) (*FolderNode, error) {
	root := newRootFolder()

	names, err := readBA2NameTable(ra, size, hdr)
	if err != nil {
		return nil, err
	}

	br := newBinReader(sectionFrom(ra, size, ba2RecordAreaStart(hdr.Type)))
	for i := uint32(0); i < hdr.FileCount; i++ {
		nameHash := br.u32()
		_ = br.readN(4) // extension, folded into the name table path instead
		dirHash := br.u32()
		_ = br.u32() // reserved
		offset := br.u64()
		packedSize := br.u32()
		unpackedSize := br.u32()
		_ = br.u32() // reserved
		if br.err != nil {
			return nil, br.err
		}

		rec, err := insertBA2File(root, names[i])
		if err != nil {
			return nil, err
		}

		rec.hash = uint64(dirHash)<<32 | uint64(nameHash)
		rec.Offset = int64(offset)
		rec.Size = packedSize
		rec.UnpackedSize = unpackedSize
	}

	return root, nil
}

// parseBA2DX10 parses the "DX10" texture directory variant: a fixed-size
// texture header followed by chunkCount chunk records per file.
func parseBA2DX10(ra io.ReaderAt, size int64, hdr Header) (*FolderNode, error) {
	root := newRootFolder()

	names, err := readBA2NameTable(ra, size, hdr)
	if err != nil {
		return nil, err
	}

	br := newBinReader(sectionFrom(ra, size, ba2RecordAreaStart(hdr.Type)))
	for i := uint32(0); i < hdr.FileCount; i++ {
		var th TextureHeader
		th.NameHash = br.u32()
		ext := br.readN(4)
		copy(th.Extension[:], ext)
		th.DirHash = br.u32()
		th.Unknown1 = br.u8()
		th.ChunkCount = br.u8()
		th.ChunkHeaderSize = br.u16()
		th.Height = br.u16()
		th.Width = br.u16()
		th.MipCount = br.u8()
		th.Format = br.u16()
		th.Unknown2 = br.u8()
		th.IsCubemap = int(th.Unknown2) == 2049

		chunks := make([]TextureChunk, th.ChunkCount)
		for c := range chunks {
			chunks[c] = TextureChunk{
				Offset:       br.u64(),
				PackedSize:   br.u32(),
				UnpackedSize: br.u32(),
				StartMip:     br.u16(),
				EndMip:       br.u16(),
				Unknown:      br.u32(),
			}
		}
		if br.err != nil {
			return nil, br.err
		}

		rec, err := insertBA2File(root, names[i])
		if err != nil {
			return nil, err
		}

		rec.hash = uint64(th.DirHash)<<32 | uint64(th.NameHash)
		rec.Texture = &th
		rec.Chunks = chunks
		if len(chunks) > 0 {
			rec.Offset = int64(chunks[0].Offset)
			rec.Size = chunks[0].PackedSize
			rec.UnpackedSize = chunks[0].UnpackedSize
		}
	}

	return root, nil
}

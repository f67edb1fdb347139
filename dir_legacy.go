// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

package bsa

import (
	"fmt"
	"io"
)

// legacyFolderRecord is the parsed fixed-size folder header entry; the
// wider SkyrimSE variant differs only in data_offset width.
type legacyFolderRecord struct {
	hash       uint64
	fileCount  uint32
	dataOffset int64
}

// legacyFileRecord is the parsed fixed-size file header entry; the top two
// bits of sizeFlags form the per-file compression toggle (0xC0000000).
type legacyFileRecord struct {
	hash       uint64
	size       uint32
	toggle     bool
	dataOffset int64
}

func sectionFrom(ra io.ReaderAt, size, off int64) io.Reader {
	return io.NewSectionReader(ra, off, size-off)
}

// parseLegacyDirectory parses the Oblivion/Fallout3/SkyrimLE/SkyrimSE
// family: an array of folder records at hdr.HeaderSize, each pointing at a
// folder-name-plus-file-records block, followed by a trailing NUL-delimited
// file name table at hdr.Offset.
func parseLegacyDirectory(ra io.ReaderAt, size int64, hdr Header, testHashes bool) (*FolderNode, error) {
	root := newRootFolder()

	recBr := newBinReader(sectionFrom(ra, size, int64(hdr.HeaderSize)))
	folderRecs := make([]legacyFolderRecord, hdr.FolderCount)
	for i := range folderRecs {
		h := recBr.u64()
		fc := recBr.u32()
		var off int64
		if hdr.Type == SkyrimSE {
			_ = recBr.u32() // padding
			off = int64(recBr.u64())
		} else {
			off = int64(recBr.u32())
		}
		folderRecs[i] = legacyFolderRecord{hash: h, fileCount: fc, dataOffset: off}
	}
	if recBr.err != nil {
		return nil, recBr.err
	}

	type parsedFolder struct {
		node  *FolderNode
		files []legacyFileRecord
	}
	parsed := make([]parsedFolder, hdr.FolderCount)

	for i, rec := range folderRecs {
		blockOffset := rec.dataOffset - int64(hdr.FileNameLength)
		if blockOffset < 0 || blockOffset >= size {
			return nil, fmt.Errorf("%w: folder block offset out of range", ErrInvalidData)
		}

		fb := newBinReader(sectionFrom(ra, size, blockOffset))
		folderPath := fb.bstring()

		files := make([]legacyFileRecord, rec.fileCount)
		for j := range files {
			fh := fb.u64()
			sizeFlags := fb.u32()
			foff := fb.u32()
			files[j] = legacyFileRecord{
				hash:       fh,
				size:       sizeFlags &^ 0xC0000000,
				toggle:     sizeFlags&0xC0000000 != 0,
				dataOffset: int64(foff),
			}
		}
		if fb.err != nil {
			return nil, fb.err
		}

		folder := root.FindOrInsertPath(splitAllComponents(folderPath))
		parsed[i] = parsedFolder{node: folder, files: files}
	}

	nameBr := newBinReader(sectionFrom(ra, size, int64(hdr.Offset)))
	hashesValid := true
	for _, pf := range parsed {
		for _, fr := range pf.files {
			name := nameBr.zstring()
			if nameBr.err != nil {
				return nil, nameBr.err
			}

			rec := newFileRecord(name)
			rec.hash = fr.hash
			rec.Size = fr.size
			rec.CompressToggle = fr.toggle
			rec.Offset = fr.dataOffset
			pf.node.AddFile(rec)

			if testHashes && fileHash(name) != fr.hash {
				hashesValid = false
			}
		}
	}

	if testHashes && !hashesValid {
		return root, ErrInvalidHashes
	}

	return root, nil
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

package bsa

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// folderRecordSize returns the on-disk size of one folder header record,
// which widens for SkyrimSE's 64-bit data offset plus its padding field.
func folderRecordSize(t ArchiveType) int64 {
	if t == SkyrimSE {
		return 24
	}

	return 16
}

// Write serializes the archive's current folder tree to path in the
// legacy BSA layout. Only Oblivion, Fallout3 (which also covers
// Skyrim Legendary Edition), and SkyrimSE are writable; BA2 and Morrowind
// archives return ErrNotWritable.
func (a *Archive) Write(path string) error {
	if a == nil {
		return ErrNilArchive
	}
	if a.typ != Oblivion && a.typ != Fallout3 && a.typ != SkyrimSE {
		return ErrNotWritable
	}

	folders := a.root.collectFolders()
	sort.Slice(folders, func(i, j int) bool { return folders[i].Hash() < folders[j].Hash() })
	for _, f := range folders {
		sort.Slice(f.Files, func(i, j int) bool { return f.Files[i].Hash() < f.Files[j].Hash() })
	}

	payloads, fileNames, err := a.preparePayloads(folders)
	if err != nil {
		return err
	}

	var fileCount, fileNameLength, folderNameLength uint32
	for _, f := range folders {
		folderNameLength += uint32(1 + len(f.FullPath()))
		fileCount += uint32(len(f.Files))
	}
	for _, n := range fileNames {
		fileNameLength += uint32(len(n) + 1)
	}

	tmpPath := path + ".tmp"
	out, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAccessFailed, err)
	}
	defer func() { _ = out.Close() }()

	// Write through a temp file and rename into place at the end so a
	// failed or interrupted write never leaves a half-written archive at
	// path, matching the original tool's never-lose-the-source-archive
	// guarantee during rewrite.
	succeeded := false
	defer func() {
		if !succeeded {
			_ = os.Remove(tmpPath)
		}
	}()

	recSize := folderRecordSize(a.typ)
	folderRecordsStart := int64(36)
	blockStart := folderRecordsStart + int64(len(folders))*recSize

	blockOffsets := make([]int64, len(folders))
	pos := blockStart
	for i, f := range folders {
		blockOffsets[i] = pos
		pos += int64(1+len(f.FullPath())) + int64(len(f.Files))*16
	}
	nameTableOffset := pos
	dataAreaStart := nameTableOffset + int64(fileNameLength)

	a.archiveFlags |= FlagHasDirNames | FlagHasFileNames
	fileFlags := determineFileFlags(fileNames)

	if err := writeLegacyHeader(out, a.typ, a.archiveFlags, uint32(nameTableOffset), uint32(len(folders)), fileCount, folderNameLength, fileNameLength, fileFlags); err != nil {
		return err
	}

	// Pass 1: folder header records with offsets stubbed, then each
	// folder's name-plus-file-records block (file offsets stubbed too).
	bw := newBinWriter(out)
	for _, f := range folders {
		bw.u64(f.Hash())
		bw.u32(uint32(len(f.Files)))
		writeFolderOffset(bw, a.typ, 0)
	}
	for _, f := range folders {
		bw.bstring(f.FullPath())
		for _, fr := range f.Files {
			bw.u64(fr.Hash())
			bw.u32(sizeFlagsFor(fr))
			bw.u32(0) // file data offset, patched in pass 2
		}
	}
	if bw.err != nil {
		return bw.err
	}

	for _, n := range fileNames {
		bw.zstring(n)
	}
	if bw.err != nil {
		return bw.err
	}

	// Step 5: write payloads in folder-then-file order, recording each
	// file's final absolute offset on its record.
	offset := dataAreaStart
	for _, f := range folders {
		for _, fr := range f.Files {
			payload := payloads[fr]
			fr.Offset = offset
			if _, err := out.Write(payload); err != nil {
				return fmt.Errorf("%w: %w", ErrAccessFailed, err)
			}
			offset += int64(len(payload))
		}
	}

	// Pass 2: seek back to 0x24 (right after the fixed header) and
	// re-emit the folder/file header blocks now that offsets are known.
	if _, err := out.Seek(0x24, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %w", ErrAccessFailed, err)
	}

	bw2 := newBinWriter(out)
	for i, f := range folders {
		bw2.u64(f.Hash())
		bw2.u32(uint32(len(f.Files)))
		writeFolderOffset(bw2, a.typ, blockOffsets[i]+int64(fileNameLength))
	}
	for _, f := range folders {
		bw2.bstring(f.FullPath())
		for _, fr := range f.Files {
			bw2.u64(fr.Hash())
			bw2.u32(sizeFlagsFor(fr))
			bw2.u32(uint32(fr.Offset))
		}
	}
	if bw2.err != nil {
		return bw2.err
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrAccessFailed, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: %w", ErrAccessFailed, err)
	}
	succeeded = true

	return nil
}

// writeLegacyHeader emits the fixed 36-byte legacy BSA header.
func writeLegacyHeader(w io.Writer, t ArchiveType, flags ArchiveFlags, offset, folderCount, fileCount, folderNameLength, fileNameLength uint32, fileFlags FileFlags) error {
	bw := newBinWriter(w)
	bw.write([]byte("BSA\x00"))
	bw.u32(typeToID(t))
	bw.u32(offset)
	bw.u32(uint32(flags))
	bw.u32(folderCount)
	bw.u32(fileCount)
	bw.u32(folderNameLength)
	bw.u32(fileNameLength)
	bw.u32(uint32(fileFlags))

	return bw.err
}

// writeFolderOffset writes a folder's data offset field, widening to a
// padded 64-bit value for SkyrimSE.
func writeFolderOffset(bw *binWriter, t ArchiveType, v int64) {
	if t == SkyrimSE {
		bw.u32(0)
		bw.u64(uint64(v))
		return
	}

	bw.u32(uint32(v))
}

// sizeFlagsFor packs a file's on-disk size field with its compression
// toggle bit (0xC0000000), mirroring the parser's inverse operation.
func sizeFlagsFor(fr *FileRecord) uint32 {
	v := fr.Size
	if fr.CompressToggle {
		v |= 0xC0000000
	}

	return v
}

// preparePayloads resolves every file's on-disk payload bytes in
// folder-then-file order, updating fr.Size to the actual written length.
// Files with SourcePath set are read from the local filesystem, deflated
// when Compressed(fr) is true; files without one are assumed to already
// be backed by this archive's source stream, and their original encoded
// bytes are carried over unchanged to preserve round-trip byte equality.
func (a *Archive) preparePayloads(folders []*FolderNode) (map[*FileRecord][]byte, []string, error) {
	payloads := make(map[*FileRecord][]byte)
	var names []string

	for _, f := range folders {
		for _, fr := range f.Files {
			names = append(names, fr.Name)

			var payload []byte
			var err error
			if fr.SourcePath != "" {
				payload, err = a.encodeFromSource(fr)
			} else {
				payload = make([]byte, fr.Size)
				if _, err = io.ReadFull(io.NewSectionReader(a.ra, fr.Offset, int64(fr.Size)), payload); err != nil {
					err = fmt.Errorf("%w: %w", ErrInvalidData, err)
				}
			}
			if err != nil {
				return nil, nil, err
			}

			fr.Size = uint32(len(payload))
			payloads[fr] = payload
		}
	}

	return payloads, names, nil
}

// encodeFromSource reads fr's local source file and, if Compressed(fr) is
// true, compresses it with the size prefix the legacy reader expects:
// LZ4-frame for SkyrimSE, zlib for every other writable type.
func (a *Archive) encodeFromSource(fr *FileRecord) ([]byte, error) {
	raw, err := os.ReadFile(filepath.Clean(fr.SourcePath))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceFileMissing, err)
	}

	if !a.Compressed(fr) {
		return raw, nil
	}

	fr.UnpackedSize = uint32(len(raw))
	if a.typ == SkyrimSE {
		return lz4FrameDeflate(raw)
	}

	return zlibDeflate(raw)
}

// determineFileFlags computes the content-summary bitset over a write
// set's filenames, purely a metadata hint readers may ignore.
func determineFileFlags(names []string) FileFlags {
	var flags FileFlags
	for _, n := range names {
		switch strings.ToLower(filepath.Ext(n)) {
		case ".nif":
			flags |= FileFlagNIF
		case ".dds":
			flags |= FileFlagDDS
		case ".xml":
			flags |= FileFlagXML
		case ".wav":
			flags |= FileFlagWAV
		case ".mp3":
			flags |= FileFlagMP3
		case ".txt":
			flags |= FileFlagTXT
		case ".spt":
			flags |= FileFlagSPT
		case ".tex":
			flags |= FileFlagTEX
		case ".ctl":
			flags |= FileFlagCTL
		}
	}

	return flags
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

package bsa

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Archive provides read, write (legacy BSA only), and extraction access to
// a parsed Bethesda game archive.
type Archive struct {
	ra   io.ReaderAt
	file *os.File
	size int64

	typ          ArchiveType
	archiveFlags ArchiveFlags
	root         *FolderNode
	logger       *slog.Logger

	mu     sync.Mutex
	closed bool
}

// New constructs an empty archive for building up with CreateFile and
// writing out via Write. The default type mirrors the original's default
// constructor (Skyrim Legendary Edition's on-disk layout).
func New() *Archive {
	return &Archive{
		typ:          Fallout3,
		archiveFlags: FlagHasDirNames | FlagHasFileNames,
		root:         newRootFolder(),
		logger:       slog.New(slog.DiscardHandler),
	}
}

// Open opens an archive by path and parses its directory structure.
func Open(path string, opts ReadOptions) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: stat: %w", ErrFileNotFound, err)
	}

	a, err := NewArchiveFromReaderAt(f, fi.Size(), opts)
	if err != nil && err != ErrInvalidHashes {
		_ = f.Close()
		return nil, err
	}

	a.file = f
	return a, err
}

// NewArchiveFromReaderAt parses an archive already open on ra, useful for
// callers holding an in-memory buffer or a non-*os.File stream.
func NewArchiveFromReaderAt(ra io.ReaderAt, size int64, opts ReadOptions) (*Archive, error) {
	opts.applyDefaults()

	hdr, err := identifyAndParseHeader(io.NewSectionReader(ra, 0, size))
	if err != nil {
		return nil, err
	}

	var root *FolderNode
	var parseErr error

	switch {
	case hdr.Type.isBA2():
		switch hdr.ArchType {
		case "GNRL":
			root, parseErr = parseBA2GNRL(ra, size, hdr)
		case "DX10":
			root, parseErr = parseBA2DX10(ra, size, hdr)
		default:
			parseErr = fmt.Errorf("%w: unknown ba2 archType %q", ErrInvalidData, hdr.ArchType)
		}
	case hdr.Type == Morrowind:
		root, parseErr = parseMorrowindDirectory(ra, size, hdr)
	default:
		root, parseErr = parseLegacyDirectory(ra, size, hdr, opts.TestHashes)
	}

	if parseErr != nil && parseErr != ErrInvalidHashes {
		return nil, parseErr
	}

	if root != nil {
		if extentErr := validateFileExtents(root, size); extentErr != nil {
			return nil, extentErr
		}
	}

	a := &Archive{
		ra:           ra,
		size:         size,
		typ:          hdr.Type,
		archiveFlags: hdr.ArchiveFlags,
		root:         root,
		logger:       opts.Logger,
	}

	return a, parseErr
}

// validateFileExtents rejects a parsed tree containing any file whose data
// extent falls outside the archive's bounds, catching a crafted or
// corrupt directory before a later read attempt fails deep inside the
// decompression path.
func validateFileExtents(root *FolderNode, size int64) error {
	for _, fr := range root.collectFiles() {
		if fr.Offset < 0 || fr.Offset > size || fr.effectiveSize() > size-fr.Offset {
			return fmt.Errorf("%w: %s: data extent exceeds archive size", ErrInvalidData, fr.FullPath())
		}
	}

	return nil
}

// Close releases the underlying file, if Archive opened one itself.
func (a *Archive) Close() error {
	if a == nil {
		return ErrNilArchive
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}
	a.closed = true

	if a.file != nil {
		return a.file.Close()
	}

	return nil
}

// SetType changes the archive's reported type, for callers building a new
// archive before Write.
func (a *Archive) SetType(t ArchiveType) {
	a.typ = t
}

// GetType returns the archive's type.
func (a *Archive) GetType() ArchiveType {
	return a.typ
}

// GetRoot returns the archive's root folder.
func (a *Archive) GetRoot() *FolderNode {
	return a.root
}

// GetFlags returns the archive's raw flag bitset.
func (a *Archive) GetFlags() ArchiveFlags {
	return a.archiveFlags
}

// defaultCompressed reports whether files are compressed by default.
func (a *Archive) defaultCompressed() bool {
	return a.archiveFlags.Has(FlagDefaultCompressed)
}

// namePrefixed reports whether file payloads carry an inline name prefix.
// This only applies to non-Oblivion legacy archives.
func (a *Archive) namePrefixed() bool {
	return a.archiveFlags.Has(FlagNamePrefixed) && a.typ != Oblivion
}

// Compressed reports whether fr is effectively compressed under this
// archive's type and default-compression flag.
func (a *Archive) Compressed(fr *FileRecord) bool {
	return effectiveCompressed(a.typ, a.defaultCompressed(), fr.CompressToggle, fr.Size)
}

// FindFile resolves a full archive path to its file record, matching each
// path component case-insensitively the way the archive's own name hash
// does.
func (a *Archive) FindFile(path string) (*FileRecord, error) {
	dirs, base, err := splitPathComponents(path)
	if err != nil {
		return nil, err
	}

	folder := a.root
	for _, d := range dirs {
		folder = folder.findChild(d)
		if folder == nil {
			return nil, fmt.Errorf("%w: %q", ErrEntryNotFound, path)
		}
	}

	for _, fr := range folder.Files {
		if strings.EqualFold(fr.Name, base) {
			return fr, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrEntryNotFound, path)
}

// CreateFile constructs a new file record backed by a local source path,
// for use with the legacy writer. The per-file toggle is set so that
// Compressed(fr) == compressed, matching the original's createFile.
func (a *Archive) CreateFile(name, sourcePath string, compressed bool) *FileRecord {
	fr := newFileRecord(name)
	fr.SourcePath = sourcePath
	fr.CompressToggle = a.defaultCompressed() != compressed

	return fr
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

package bsa

import "errors"

// Sentinel errors returned by archive operations. Use errors.Is in callers.
var (
	// ErrNotAnArchive means the first bytes of the stream match no known
	// BSA/BA2 magic and no Morrowind sentinel.
	ErrNotAnArchive = errors.New("not a bsa/ba2 archive")
	// ErrFileNotFound means the input archive path could not be opened for reading.
	ErrFileNotFound = errors.New("archive file not found")
	// ErrAccessFailed means an output file or directory could not be opened or created.
	ErrAccessFailed = errors.New("access failed")
	// ErrInvalidData means a read or decompression produced a format violation.
	ErrInvalidData = errors.New("invalid archive data")
	// ErrInvalidHashes means one or more recomputed name hashes did not match their stored value.
	ErrInvalidHashes = errors.New("invalid name hashes")
	// ErrZlibInitFailed means the zlib reader or writer could not be constructed.
	ErrZlibInitFailed = errors.New("zlib init failed")
	// ErrSourceFileMissing means a file's local source path could not be opened during write.
	ErrSourceFileMissing = errors.New("source file missing")
	// ErrCanceled means extraction was canceled by the progress callback or context.
	ErrCanceled = errors.New("extraction canceled")
	// ErrNotWritable means the archive type does not support the write path (all BA2 variants).
	ErrNotWritable = errors.New("archive type does not support writing")
	// ErrNilArchive means the operation was attempted on a nil *Archive.
	ErrNilArchive = errors.New("archive is nil")
	// ErrClosed means the archive's underlying stream was already closed.
	ErrClosed = errors.New("archive already closed")
	// ErrEntryNotFound means a requested file could not be resolved in the folder tree.
	ErrEntryNotFound = errors.New("file not found in archive")
	// ErrUnsupportedFormat means a DXGI format has no DDS pixel-format mapping.
	ErrUnsupportedFormat = errors.New("unsupported dxgi format")
	// ErrInvalidPath means a folder or file path could not be normalized or contains traversal.
	ErrInvalidPath = errors.New("invalid archive path")
)

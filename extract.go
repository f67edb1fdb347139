// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

package bsa

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// fileWorkItem carries one file's raw payload from the reader goroutine to
// the extractor loop. Payload is still compressed where applicable; for
// DX10 textures it is every chunk's bytes concatenated in chunk order.
type fileWorkItem struct {
	file    *FileRecord
	payload []byte
}

// Extract decodes a single file's payload and writes it under outDir at
// its archive-relative path, creating parent folders as needed.
func (a *Archive) Extract(fr *FileRecord, outDir string) error {
	if a == nil || a.ra == nil {
		return ErrNilArchive
	}

	payload, err := a.readRawPayload(fr)
	if err != nil {
		return err
	}

	return a.writeFileOutput(outDir, fr, payload, true)
}

// readRawPayload reads one file's raw bytes at its data offset, stripping
// the inline name prefix legacy archives carry when NamePrefixed is set.
// BA2 GNRL and DX10 entries carry no such prefix; their packed/unpacked
// sizes come straight from the directory records.
func (a *Archive) readRawPayload(fr *FileRecord) ([]byte, error) {
	if fr.IsTexture() {
		var total int64
		for _, c := range fr.Chunks {
			n := c.PackedSize
			if n == 0 {
				n = c.UnpackedSize
			}
			total += int64(n)
		}

		buf := make([]byte, total)
		if total > 0 {
			if _, err := io.ReadFull(io.NewSectionReader(a.ra, fr.Offset, total), buf); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
			}
		}

		return buf, nil
	}

	if a.typ.isBA2() {
		n := int64(fr.Size)
		if n == 0 {
			n = int64(fr.UnpackedSize)
		}

		buf := make([]byte, n)
		if n > 0 {
			if _, err := io.ReadFull(io.NewSectionReader(a.ra, fr.Offset, n), buf); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
			}
		}

		return buf, nil
	}

	offset := fr.Offset
	size := int64(fr.Size)

	if a.namePrefixed() {
		br := newBinReader(io.NewSectionReader(a.ra, offset, size))
		prefix := br.bstring()
		if br.err != nil {
			return nil, br.err
		}

		consumed := int64(1 + len(prefix))
		if size < consumed {
			return nil, fmt.Errorf("%w: name prefix exceeds file size", ErrInvalidData)
		}
		offset += consumed
		size -= consumed
	}

	buf := make([]byte, size)
	if size > 0 {
		if _, err := io.ReadFull(io.NewSectionReader(a.ra, offset, size), buf); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
		}
	}

	return buf, nil
}

// decodeFilePayload applies the archive's compression backend (and, for
// textures, synthesizes the DDS envelope) and writes the result to w.
func (a *Archive) decodeFilePayload(w io.Writer, fr *FileRecord, payload []byte) error {
	if fr.IsTexture() {
		hdrBytes, err := buildDDSHeader(*fr.Texture)
		if err != nil {
			return err
		}
		if _, err := w.Write(hdrBytes); err != nil {
			return fmt.Errorf("%w: %w", ErrAccessFailed, err)
		}

		pos := 0
		for _, c := range fr.Chunks {
			packed := int(c.PackedSize)
			n := packed
			if n == 0 {
				n = int(c.UnpackedSize)
			}
			chunkBytes := payload[pos : pos+n]
			pos += n

			var out []byte
			var err error
			switch {
			case packed == 0:
				out = chunkBytes
			case a.typ == StarfieldLz4Texture:
				out, err = lz4BlockInflate(chunkBytes, c.UnpackedSize)
			default:
				out, err = zlibInflateRaw(chunkBytes, c.UnpackedSize)
			}
			if err != nil {
				return err
			}

			if _, err := w.Write(out); err != nil {
				return fmt.Errorf("%w: %w", ErrAccessFailed, err)
			}
		}

		return nil
	}

	if !a.Compressed(fr) {
		if _, err := w.Write(payload); err != nil {
			return fmt.Errorf("%w: %w", ErrAccessFailed, err)
		}
		return nil
	}

	var out []byte
	var err error
	switch {
	case a.typ == SkyrimSE:
		out, err = lz4FrameInflate(payload, fr.UnpackedSize)
	case a.typ.isBA2():
		out, err = zlibInflateRaw(payload, fr.UnpackedSize)
	default:
		out, err = zlibInflate(payload, fr.UnpackedSize)
	}
	if err != nil {
		return err
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("%w: %w", ErrAccessFailed, err)
	}

	return nil
}

// writeFileOutput decodes payload and writes it to fr's path under outDir.
// When overwrite is false and the destination already exists, it is left
// untouched and no error is returned.
func (a *Archive) writeFileOutput(outDir string, fr *FileRecord, payload []byte, overwrite bool) error {
	outPath := archiveRelJoin(outDir, fr.FullPath())

	if !overwrite {
		if _, err := os.Stat(outPath); err == nil {
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrAccessFailed, err)
	}

	out, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAccessFailed, err)
	}
	defer func() { _ = out.Close() }()

	return a.decodeFilePayload(out, fr, payload)
}

// archiveRelJoin joins an archive's '\\'-separated internal path onto a
// local filesystem directory, sanitizing it first so a crafted archive
// cannot escape outDir via ".." components or device-reserved names.
func archiveRelJoin(outDir, archivePath string) string {
	return filepath.Join(outDir, filepath.FromSlash(sanitizeExtractPath(archivePath)))
}

// ExtractAll extracts every file in the archive into outDir, preserving
// the folder layout, through the reader/extractor pipeline.
func (a *Archive) ExtractAll(ctx context.Context, outDir string, opts ExtractOptions) error {
	return a.extractFiles(ctx, outDir, a.root.collectFiles(), opts)
}

// ExtractFiltered extracts the subset of files whose full archive path
// satisfies keep, through the same pipeline as ExtractAll.
func (a *Archive) ExtractFiltered(ctx context.Context, outDir string, opts ExtractOptions, keep func(path string) bool) error {
	var files []*FileRecord
	for _, fr := range a.root.collectFiles() {
		if keep(fr.FullPath()) {
			files = append(files, fr)
		}
	}

	return a.extractFiles(ctx, outDir, files, opts)
}

// extractFiles runs the bounded-channel producer/consumer pipeline over
// files, sorted by ascending data offset to keep the reader goroutine's
// I/O sequential. A reader goroutine fills a buffered channel of
// fileWorkItem; this goroutine drains it, decodes each payload, and polls
// the progress callback. Canceling ctx stops the reader from enqueueing
// further work and unblocks the drain loop; the progress callback
// returning false cancels ctx itself so the reader goroutine never blocks
// forever on a full channel after this function returns.
func (a *Archive) extractFiles(ctx context.Context, outDir string, files []*FileRecord, opts ExtractOptions) error {
	if a == nil || a.ra == nil {
		return ErrNilArchive
	}

	opts.applyDefaults()

	if err := a.createOutputFolders(outDir); err != nil {
		return err
	}

	sorted := make([]*FileRecord, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })

	if len(sorted) == 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	work := make(chan fileWorkItem, opts.QueueCapacity)

	go func() {
		defer close(work)
		for _, fr := range sorted {
			select {
			case <-ctx.Done():
				return
			default:
			}

			payload, err := a.readRawPayload(fr)
			if err != nil {
				a.logger.Warn("extract: read failed", "file", fr.FullPath(), "error", err)
				continue
			}

			select {
			case work <- fileWorkItem{file: fr, payload: payload}:
			case <-ctx.Done():
				return
			}
		}
	}()

	total := len(sorted)
	done := 0

	for {
		select {
		case <-ctx.Done():
			cancel()
			return ErrCanceled
		case item, ok := <-work:
			if !ok {
				return nil
			}

			done++
			if opts.Progress != nil {
				if !opts.Progress((done*100)/total, item.file.FullPath()) {
					cancel()
					return ErrCanceled
				}
			}

			if err := a.writeFileOutput(outDir, item.file, item.payload, opts.Overwrite); err != nil {
				a.logger.Warn("extract: write failed", "file", item.file.FullPath(), "error", err)
			}
		}
	}
}

// createOutputFolders pre-creates every populated folder's directory under
// outDir before extraction begins, matching the original's folder
// pre-creation pass.
func (a *Archive) createOutputFolders(outDir string) error {
	for _, f := range a.root.collectFolders() {
		if err := os.MkdirAll(archiveRelJoin(outDir, f.FullPath()), 0o755); err != nil {
			return fmt.Errorf("%w: %w", ErrAccessFailed, err)
		}
	}

	return nil
}

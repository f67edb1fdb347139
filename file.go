// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

package bsa

// FileRecord is one file entry in the archive's folder tree.
type FileRecord struct {
	Name   string
	Folder *FolderNode

	hash uint64

	// Size is the stored (on-disk) payload size.
	Size uint32
	// UnpackedSize is the uncompressed size, 0 when equal to Size or
	// unknown (legacy archives infer it from the zlib/lz4 size prefix
	// instead).
	UnpackedSize uint32
	// Offset is the absolute data offset within the source stream.
	Offset int64
	// CompressToggle inverts the archive's default compression sense for
	// this file, legacy archives only.
	CompressToggle bool

	// Texture is populated only for BA2 DX10 entries.
	Texture *TextureHeader
	// Chunks holds the texture's chunk table, DX10 entries only.
	Chunks []TextureChunk

	// SourcePath is the local filesystem path backing this record when it
	// was constructed for writing rather than parsed from an archive.
	SourcePath string
}

// Hash returns the file's cached 64-bit name hash.
func (fr *FileRecord) Hash() uint64 {
	return fr.hash
}

// FullPath returns the file's full archive path with '\\' separators.
func (fr *FileRecord) FullPath() string {
	if fr.Folder == nil || fr.Folder.FullPath() == "" {
		return fr.Name
	}

	return fr.Folder.FullPath() + `\` + fr.Name
}

// IsTexture reports whether fr carries BA2 DX10 texture chunk metadata.
func (fr *FileRecord) IsTexture() bool {
	return fr.Texture != nil
}

// effectiveSize returns the size used to validate data_offset + size <=
// file_size: the unpacked size for texture entries (sum of chunk unpacked
// sizes), otherwise the stored size.
func (fr *FileRecord) effectiveSize() int64 {
	if fr.IsTexture() {
		var total int64
		for _, c := range fr.Chunks {
			total += int64(c.UnpackedSize)
		}
		return total
	}

	return int64(fr.Size)
}

// newFileRecord creates a file record with its name hash precomputed.
func newFileRecord(name string) *FileRecord {
	return &FileRecord{
		Name: name,
		hash: fileHash(name),
	}
}

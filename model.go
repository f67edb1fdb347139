// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

package bsa

import "log/slog"

// ArchiveType is a tagged enumeration of the supported on-disk container
// variants. Each maps to a 32-bit on-disk type ID (see typeFromLegacyID,
// typeFromBA2ID and typeToID).
type ArchiveType int

// Supported archive type variants.
const (
	// Morrowind is the original, magic-less BSA layout (TES3).
	Morrowind ArchiveType = iota
	// Oblivion is the first "BSA\0" layout (TES4).
	Oblivion
	// Fallout3 covers Fallout 3, Fallout: New Vegas, and Skyrim Legendary
	// Edition, which all share one directory layout.
	Fallout3
	// SkyrimSE widens folder-record data offsets to 64 bits.
	SkyrimSE
	// Fallout4 introduces the "BTDX" BA2 container (GNRL and DX10 archType).
	Fallout4
	// Starfield is BA2 with zlib-compressed DX10 chunks.
	Starfield
	// StarfieldLz4Texture is BA2 with LZ4-block-compressed DX10 chunks.
	StarfieldLz4Texture
	// Fallout4NG7 is a Fallout 4 "next-gen" update content-version variant;
	// it shares Fallout4's directory layout.
	Fallout4NG7
	// Fallout4NG8 is a Fallout 4 "next-gen" update content-version variant;
	// it shares Fallout4's directory layout.
	Fallout4NG8
)

// String returns a human-readable name for the archive type.
func (t ArchiveType) String() string {
	switch t {
	case Morrowind:
		return "Morrowind"
	case Oblivion:
		return "Oblivion"
	case Fallout3:
		return "Fallout3"
	case SkyrimSE:
		return "SkyrimSE"
	case Fallout4:
		return "Fallout4"
	case Starfield:
		return "Starfield"
	case StarfieldLz4Texture:
		return "StarfieldLz4Texture"
	case Fallout4NG7:
		return "Fallout4NG7"
	case Fallout4NG8:
		return "Fallout4NG8"
	default:
		return "Unknown"
	}
}

// isBA2 reports whether the archive type uses the "BTDX" container family.
func (t ArchiveType) isBA2() bool {
	switch t {
	case Fallout4, Starfield, StarfieldLz4Texture, Fallout4NG7, Fallout4NG8:
		return true
	default:
		return false
	}
}

// isLegacy reports whether the archive type uses the "BSA\0" or Morrowind
// legacy container family. The writable types (Oblivion, Fallout3,
// SkyrimSE) all belong to it; Morrowind does not support writing.
func (t ArchiveType) isLegacy() bool {
	return !t.isBA2()
}

// ArchiveFlags is a bitset over legacy-BSA header flags.
type ArchiveFlags uint32

// Archive flag bits.
const (
	// FlagHasDirNames indicates the archive stores folder names.
	FlagHasDirNames ArchiveFlags = 0x01
	// FlagHasFileNames indicates the archive stores file names.
	FlagHasFileNames ArchiveFlags = 0x02
	// FlagDefaultCompressed indicates files are compressed unless toggled off.
	FlagDefaultCompressed ArchiveFlags = 0x04
	// FlagNamePrefixed indicates each payload is preceded by a length-prefixed
	// full path. Applies only to non-Oblivion legacy archives.
	FlagNamePrefixed ArchiveFlags = 0x100
)

// Has reports whether all bits in mask are set.
func (f ArchiveFlags) Has(mask ArchiveFlags) bool {
	return f&mask == mask
}

// FileFlags is a content-summary bitset computed once over a write set's
// filenames. Readers may ignore it; it exists purely as a metadata hint.
type FileFlags uint32

// File flag bits, one per recognized extension.
const (
	FileFlagNIF FileFlags = 1 << 0
	FileFlagDDS FileFlags = 1 << 1
	FileFlagXML FileFlags = 1 << 2
	FileFlagWAV FileFlags = 1 << 3
	FileFlagMP3 FileFlags = 1 << 4
	FileFlagTXT FileFlags = 1 << 5
	FileFlagSPT FileFlags = 1 << 6
	FileFlagTEX FileFlags = 1 << 7
	FileFlagCTL FileFlags = 1 << 8
)

// typeToID maps an ArchiveType to its on-disk 32-bit type identifier.
func typeToID(t ArchiveType) uint32 {
	switch t {
	case Morrowind:
		return 0x100
	case Oblivion:
		return 0x67
	case Fallout3:
		return 0x68
	case SkyrimSE:
		return 0x69
	case Fallout4, Fallout4NG7, Fallout4NG8:
		return 0x01
	case Starfield:
		return 0x02
	case StarfieldLz4Texture:
		return 0x03
	default:
		return 0
	}
}

// typeFromBA2ID maps a BA2 on-disk type ID to an ArchiveType. Fallout4NG7/
// Fallout4NG8 are not distinguishable by type ID alone (the original format
// carries the NG variant in a separate content-version byte outside the
// container header); typeFromBA2ID always resolves type ID 0x01 to Fallout4,
// callers that know the NG variant out-of-band can SetType explicitly.
func typeFromBA2ID(id uint32) (ArchiveType, bool) {
	switch id {
	case 0x01:
		return Fallout4, true
	case 0x02:
		return Starfield, true
	case 0x03:
		return StarfieldLz4Texture, true
	default:
		return 0, false
	}
}

// typeFromLegacyID maps a legacy "BSA\0" on-disk type ID to an ArchiveType.
func typeFromLegacyID(id uint32) (ArchiveType, bool) {
	switch id {
	case 0x67:
		return Oblivion, true
	case 0x68:
		return Fallout3, true
	case 0x69:
		return SkyrimSE, true
	default:
		return 0, false
	}
}

// Header is the parsed, format-agnostic result of identifyAndParseHeader.
// Not every field is populated for every archive type; see the dispatcher
// in header.go for which fields a given variant fills.
type Header struct {
	Type             ArchiveType
	ArchiveFlags     ArchiveFlags
	FolderCount      uint32
	FileCount        uint32
	FolderNameLength uint32
	FileNameLength   uint32
	FileFlags        FileFlags
	HeaderSize       uint32
	Offset           uint32
	ArchType         string // "GNRL" or "DX10", BA2 only
	NameTableOffset  uint64
}

// TextureHeader describes one BA2 DX10 texture file's fixed-size header.
type TextureHeader struct {
	NameHash        uint32
	Extension       [4]byte
	DirHash         uint32
	Unknown1        byte
	ChunkCount      byte
	ChunkHeaderSize uint16
	Height          uint16
	Width           uint16
	MipCount        byte
	Format          uint16 // DXGI_FORMAT
	IsCubemap       bool
	Unknown2        byte
}

// TextureChunk describes one DX10 texture chunk within a BA2 archive.
type TextureChunk struct {
	Offset       uint64
	PackedSize   uint32
	UnpackedSize uint32
	StartMip     uint16
	EndMip       uint16
	Unknown      uint32
}

// ProgressFunc is called during ExtractAll/ExtractFiltered once for each
// file taken from the queue, before that file is written, with completion
// percent (0..100) and the file's full path. It is not called on a timer.
// Returning false requests cancellation.
type ProgressFunc func(percent int, currentFileName string) bool

// ReadOptions controls archive parsing.
type ReadOptions struct {
	// TestHashes recomputes every file's name hash during Open and reports
	// ErrInvalidHashes on any mismatch, still returning the parsed archive.
	TestHashes bool
	// Logger receives diagnostic messages; defaults to a discard handler.
	Logger *slog.Logger
}

func (o *ReadOptions) applyDefaults() {
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
}

// ExtractOptions controls ExtractAll/ExtractFiltered behavior.
type ExtractOptions struct {
	// Overwrite controls whether existing output files are replaced.
	Overwrite bool
	// Progress is called once per extracted file; may be nil.
	Progress ProgressFunc
	// QueueCapacity bounds the reader/extractor channel; defaults to 100
	// per the pipeline's canonical bounded-queue size.
	QueueCapacity int
}

func (o *ExtractOptions) applyDefaults() {
	if o.QueueCapacity <= 0 {
		o.QueueCapacity = 100
	}
}

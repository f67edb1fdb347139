// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

package bsa

import (
	"path"
	"strings"
)

// extHashBonus adds a fixed bonus to hash1 for extensions the original
// format treats specially. Folder names never carry an extension bonus.
var extHashBonus = map[string]uint64{
	".kf":  0x80,
	".nif": 0x8000,
	".dds": 0x8080,
	".wav": 0x80000000,
}

// sanitizeHashPath lowercases a path and normalizes its separators to
// backslashes, matching the case-insensitive, backslash-native convention
// every Bethesda archive format hashes names under.
func sanitizeHashPath(p string) string {
	return strings.ToLower(strings.ReplaceAll(p, "/", "\\"))
}

// nameHash computes the 64-bit Bethesda folder/file name hash. isFile
// selects whether the extension bonus table applies; folder names are
// hashed with an empty extension.
func nameHash(name string, isFile bool) uint64 {
	name = sanitizeHashPath(name)

	var ext string
	root := name
	if isFile {
		ext = path.Ext(name)
		root = name[:len(name)-len(ext)]
	}

	chars := []byte(root)
	if len(chars) == 0 {
		return uint64(extHashBonus[ext])
	}

	hash1 := uint64(chars[len(chars)-1])
	if len(chars) > 2 {
		hash1 |= uint64(chars[len(chars)-2]) << 8
	}
	hash1 |= uint64(len(chars))<<16 | uint64(chars[0])<<24 | extHashBonus[ext]

	const mask uint64 = 0xFFFFFFFF
	var hash2 uint64
	if len(chars) > 3 {
		for _, c := range chars[1 : len(chars)-2] {
			hash2 = ((hash2 * 0x1003F) + uint64(c)) & mask
		}
	}

	var hash3 uint64
	for _, c := range []byte(ext) {
		hash3 = ((hash3 * 0x1003F) + uint64(c)) & mask
	}

	hash2 = (hash2 + hash3) & mask
	return (hash2 << 32) + hash1
}

// folderHash computes the name hash for a folder path component.
func folderHash(name string) uint64 {
	return nameHash(name, false)
}

// fileHash computes the name hash for a file name (including extension).
func fileHash(name string) uint64 {
	return nameHash(name, true)
}

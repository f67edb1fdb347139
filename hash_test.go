// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

package bsa

import "testing"

func TestFileHashCaseInsensitive(t *testing.T) {
	t.Parallel()

	if fileHash(`Textures\Armor\Plate.dds`) != fileHash(`textures\armor\plate.dds`) {
		t.Fatal("fileHash must be case-insensitive")
	}
}

func TestFileHashSeparatorInsensitive(t *testing.T) {
	t.Parallel()

	if fileHash("textures/armor/plate.dds") != fileHash(`textures\armor\plate.dds`) {
		t.Fatal("fileHash must treat '/' and '\\' the same")
	}
}

func TestFileHashExtensionBonusChangesHash(t *testing.T) {
	t.Parallel()

	if fileHash("plate.dds") == fileHash("plate.bin") {
		t.Fatal("extension bonus table entries must change the resulting hash")
	}
}

func TestFolderHashIgnoresExtensionBonus(t *testing.T) {
	t.Parallel()

	if folderHash("armor.dds") == fileHash("armor.dds") {
		t.Fatal("folderHash must not apply the file extension bonus table")
	}
}

func TestFileHashDeterministic(t *testing.T) {
	t.Parallel()

	const name = `meshes\armor\plate.nif`
	if fileHash(name) != fileHash(name) {
		t.Fatal("fileHash must be deterministic")
	}
}

func TestFileHashBareExtension(t *testing.T) {
	t.Parallel()

	got := fileHash(".nif")
	want := uint64(extHashBonus[".nif"])
	if got != want {
		t.Fatalf("fileHash(%q) = %#x, want %#x", ".nif", got, want)
	}
}

func TestFileHashDifferentNamesDiffer(t *testing.T) {
	t.Parallel()

	if fileHash("plate.dds") == fileHash("helmet.dds") {
		t.Fatal("distinct base names must not collide for this fixture pair")
	}
}

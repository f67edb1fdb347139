// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

package bsa

import (
	"errors"
	"testing"
)

func TestArchiveFindFile(t *testing.T) {
	t.Parallel()

	a := New()
	armor := a.GetRoot().FindOrInsertPath([]string{"meshes", "armor"})
	plate := newFileRecord("Plate.nif")
	armor.AddFile(plate)

	got, err := a.FindFile(`meshes\Armor\plate.NIF`)
	if err != nil {
		t.Fatalf("FindFile: %v", err)
	}
	if got != plate {
		t.Fatalf("FindFile returned %v, want %v", got, plate)
	}
}

func TestArchiveFindFileNotFound(t *testing.T) {
	t.Parallel()

	a := New()
	a.GetRoot().FindOrInsertPath([]string{"meshes", "armor"}).AddFile(newFileRecord("plate.nif"))

	cases := []string{
		`meshes\armor\helmet.nif`,
		`meshes\weapons\sword.nif`,
	}
	for _, path := range cases {
		if _, err := a.FindFile(path); !errors.Is(err, ErrEntryNotFound) {
			t.Fatalf("FindFile(%q) err = %v, want ErrEntryNotFound", path, err)
		}
	}
}

func TestArchiveCloseTwiceReturnsErrClosed(t *testing.T) {
	t.Parallel()

	a := New()
	if err := a.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := a.Close(); !errors.Is(err, ErrClosed) {
		t.Fatalf("second Close err = %v, want ErrClosed", err)
	}
}

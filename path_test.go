// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

package bsa

import (
	"errors"
	"testing"
)

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "slash", in: "/", want: ""},
		{name: "clean", in: "textures/armor/plate.dds", want: "textures/armor/plate.dds"},
		{name: "windows", in: `.\textures\armor\plate.dds`, want: "textures/armor/plate.dds"},
		{name: "dot segments", in: "./a/../b//c.txt", want: "b/c.txt"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := NormalizePath(tc.in)
			if got != tc.want {
				t.Fatalf("NormalizePath(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSplitPathComponents(t *testing.T) {
	t.Parallel()

	dirs, base, err := splitPathComponents(`textures\armor\plate.dds`)
	if err != nil {
		t.Fatalf("splitPathComponents: %v", err)
	}
	if base != "plate.dds" {
		t.Fatalf("base = %q, want %q", base, "plate.dds")
	}
	if len(dirs) != 2 || dirs[0] != "textures" || dirs[1] != "armor" {
		t.Fatalf("dirs = %v, want [textures armor]", dirs)
	}
}

func TestSplitPathComponentsRejectsEmpty(t *testing.T) {
	t.Parallel()

	_, _, err := splitPathComponents("")
	if !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("err = %v, want ErrInvalidPath", err)
	}
}

func TestSplitAllComponents(t *testing.T) {
	t.Parallel()

	got := splitAllComponents(`textures\armor`)
	if len(got) != 2 || got[0] != "textures" || got[1] != "armor" {
		t.Fatalf("splitAllComponents = %v, want [textures armor]", got)
	}

	if got := splitAllComponents(""); got != nil {
		t.Fatalf("splitAllComponents(\"\") = %v, want nil", got)
	}
}

func TestJoinArchivePath(t *testing.T) {
	t.Parallel()

	got := joinArchivePath([]string{"textures", "armor"}, "plate.dds")
	want := `textures\armor\plate.dds`
	if got != want {
		t.Fatalf("joinArchivePath = %q, want %q", got, want)
	}

	if got := joinArchivePath(nil, "plate.dds"); got != "plate.dds" {
		t.Fatalf("joinArchivePath(nil, ...) = %q, want %q", got, "plate.dds")
	}
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

package bsa

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeSourceFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("os.WriteFile(%q): %v", path, err)
	}
	return path
}

func TestArchiveWriteOpenExtractRoundTripUncompressed(t *testing.T) {
	t.Parallel()

	srcDir := t.TempDir()
	plateContent := []byte("plate armor mesh data, not actually a nif")
	helmetContent := []byte("helmet mesh data")

	a := New()
	a.SetType(Fallout3)

	armor := a.GetRoot().FindOrInsertPath([]string{"meshes", "armor"})
	armor.AddFile(a.CreateFile("plate.nif", writeSourceFile(t, srcDir, "plate.nif", plateContent), false))
	armor.AddFile(a.CreateFile("helmet.nif", writeSourceFile(t, srcDir, "helmet.nif", helmetContent), false))

	archivePath := filepath.Join(t.TempDir(), "test.bsa")
	if err := a.Write(archivePath); err != nil {
		t.Fatalf("Write: %v", err)
	}

	reopened, err := Open(archivePath, ReadOptions{TestHashes: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	if reopened.GetType() != Fallout3 {
		t.Fatalf("GetType() = %v, want Fallout3", reopened.GetType())
	}

	outDir := t.TempDir()
	if err := reopened.ExtractAll(context.Background(), outDir, ExtractOptions{}); err != nil {
		t.Fatalf("ExtractAll: %v", err)
	}

	gotPlate, err := os.ReadFile(filepath.Join(outDir, "meshes", "armor", "plate.nif"))
	if err != nil {
		t.Fatalf("reading extracted plate.nif: %v", err)
	}
	if string(gotPlate) != string(plateContent) {
		t.Fatalf("plate.nif content = %q, want %q", gotPlate, plateContent)
	}

	gotHelmet, err := os.ReadFile(filepath.Join(outDir, "meshes", "armor", "helmet.nif"))
	if err != nil {
		t.Fatalf("reading extracted helmet.nif: %v", err)
	}
	if string(gotHelmet) != string(helmetContent) {
		t.Fatalf("helmet.nif content = %q, want %q", gotHelmet, helmetContent)
	}
}

func TestArchiveWriteOpenExtractRoundTripSkyrimSECompressed(t *testing.T) {
	t.Parallel()

	srcDir := t.TempDir()
	content := []byte("a texture payload long enough to actually benefit from lz4 framing, repeated. ")
	for len(content) < 4096 {
		content = append(content, content...)
	}

	a := New()
	a.SetType(SkyrimSE)

	textures := a.GetRoot().FindOrInsertPath([]string{"textures"})
	textures.AddFile(a.CreateFile("plate.dds", writeSourceFile(t, srcDir, "plate.dds", content), true))

	archivePath := filepath.Join(t.TempDir(), "test.bsa")
	if err := a.Write(archivePath); err != nil {
		t.Fatalf("Write: %v", err)
	}

	reopened, err := Open(archivePath, ReadOptions{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	outDir := t.TempDir()
	if err := reopened.ExtractAll(context.Background(), outDir, ExtractOptions{}); err != nil {
		t.Fatalf("ExtractAll: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(outDir, "textures", "plate.dds"))
	if err != nil {
		t.Fatalf("reading extracted plate.dds: %v", err)
	}
	if string(got) != string(content) {
		t.Fatal("extracted content did not match the original source file after LZ4-frame round trip")
	}
}

func TestArchiveWriteRejectsBA2Type(t *testing.T) {
	t.Parallel()

	a := New()
	a.SetType(Fallout4)

	err := a.Write(filepath.Join(t.TempDir(), "test.ba2"))
	if err != ErrNotWritable {
		t.Fatalf("Write err = %v, want ErrNotWritable", err)
	}
}

func TestArchiveWriteDoesNotLeaveTempFileOnSourceMissing(t *testing.T) {
	t.Parallel()

	a := New()
	a.SetType(Fallout3)
	a.GetRoot().AddFile(a.CreateFile("missing.nif", filepath.Join(t.TempDir(), "does-not-exist.nif"), false))

	archivePath := filepath.Join(t.TempDir(), "test.bsa")
	if err := a.Write(archivePath); err == nil {
		t.Fatal("expected Write to fail when a file's source path does not exist")
	}

	if _, err := os.Stat(archivePath); !os.IsNotExist(err) {
		t.Fatalf("final archive path exists after a failed write: %v", err)
	}
	if _, err := os.Stat(archivePath + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file was not cleaned up after a failed write")
	}
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

// Package bsa provides read, write, and extraction support for Bethesda game
// archives: the legacy "BSA\x00" family (Oblivion, Fallout 3/NV, Skyrim
// Legendary and Special Edition), the magic-less Morrowind layout, and the
// "BTDX" BA2 family (Fallout 4, Starfield, including its LZ4-block texture
// variant). It is designed around a seekable input stream: parsing builds an
// in-memory folder tree without reading any file payload, and payloads are
// read lazily during Extract/ExtractAll.
//
// # Opening an archive
//
// Open an archive by path, or wrap any io.ReaderAt already holding one:
//
//	a, err := bsa.Open("Skyrim - Textures.bsa", bsa.ReadOptions{})
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	for _, f := range a.GetRoot().Folders() {
//	    fmt.Println(f.FullPath())
//	}
//
// Recompute every name hash during parsing to detect a corrupt or hand-edited
// archive:
//
//	a, err := bsa.Open("mod.bsa", bsa.ReadOptions{TestHashes: true})
//	if errors.Is(err, bsa.ErrInvalidHashes) {
//	    // archive parsed, but some stored hashes did not match
//	}
//
// # Extracting
//
// ExtractAll runs a bounded producer/consumer pipeline: one goroutine reads
// raw payloads in ascending data-offset order while the caller's goroutine
// decompresses and writes them, calling an optional progress callback once
// per file.
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	err := a.ExtractAll(ctx, "out/", bsa.ExtractOptions{
//	    Overwrite: true,
//	    Progress: func(percent int, name string) bool {
//	        fmt.Printf("%3d%% %s\n", percent, name)
//	        return true // return false to cancel
//	    },
//	})
//
// Extract a single file directly, without the pipeline:
//
//	for _, f := range a.GetRoot().Folders() {
//	    for _, fr := range f.Files {
//	        if fr.Name == "texture.dds" {
//	            _ = a.Extract(fr, "out/")
//	        }
//	    }
//	}
//
// Extract only a matching subset, using an include/exclude glob rule set:
//
//	err := a.ExtractByRules(ctx, "out/textures", []pathrules.Rule{
//	    {Action: pathrules.ActionInclude, Pattern: "textures/**/*.dds"},
//	}, pathrules.MatcherOptions{
//	    CaseInsensitive: true,
//	    DefaultAction:   pathrules.ActionExclude,
//	}, bsa.ExtractOptions{})
//
// DX10 texture entries are reassembled into standalone .dds files: Extract
// and ExtractAll synthesize the DDS_HEADER (and DDS_HEADER_DXT10 where the
// DXGI format requires one) ahead of the decompressed chunk bytes.
//
// # Writing
//
// Only the legacy BSA family is writable; BA2 and Morrowind archives return
// ErrNotWritable from Write. Build a fresh archive with New, or mutate the
// folder tree obtained from Open before writing it back out — rewriting an
// unmodified tree reproduces the original archive byte-for-byte once its
// folders and files are sorted by ascending name hash:
//
//	out := bsa.New()
//	out.SetType(bsa.SkyrimSE)
//
//	folder := out.GetRoot().FindOrInsertPath([]string{"textures", "armor"})
//	folder.AddFile(out.CreateFile("plate.dds", "local/plate.dds", true))
//
//	if err := out.Write("plate.bsa"); err != nil {
//	    return err
//	}
package bsa

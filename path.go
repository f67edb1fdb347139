// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

package bsa

import (
	"fmt"
	"path"
	"strings"
)

// NormalizePath converts an archive-internal path to normalized slash form.
// It trims spaces, accepts both "/" and "\" separators, removes leading
// "./" and "/", and cleans "." segments.
func NormalizePath(raw string) string {
	raw = normalizePathForMatching(raw)
	raw = strings.TrimPrefix(raw, "/")
	raw = path.Clean("/" + raw)
	raw = strings.TrimPrefix(raw, "/")
	if raw == "." {
		return ""
	}

	return strings.TrimSuffix(raw, "/")
}

// normalizePathForMatching converts raw user/archive paths to slash form
// for comparison and glob matching.
func normalizePathForMatching(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.ReplaceAll(raw, `\`, "/")
	raw = strings.TrimPrefix(raw, "./")
	return raw
}

// splitPathComponents splits a full archive path into its folder
// components and trailing basename. Both "\\" and "/" are accepted as
// separators.
func splitPathComponents(raw string) ([]string, string, error) {
	normalized := NormalizePath(raw)
	if normalized == "" {
		return nil, "", fmt.Errorf("%w: %q", ErrInvalidPath, raw)
	}

	parts := strings.Split(normalized, "/")
	base := parts[len(parts)-1]
	dirs := parts[:len(parts)-1]

	return dirs, base, nil
}

// splitAllComponents splits a folder's full path into its components, with
// no trailing basename distinction. An empty path yields no components
// (the root folder).
func splitAllComponents(raw string) []string {
	normalized := NormalizePath(raw)
	if normalized == "" {
		return nil
	}

	return strings.Split(normalized, "/")
}

// joinArchivePath joins folder components and a basename with the
// archive's native "\\" separator.
func joinArchivePath(dirs []string, base string) string {
	if len(dirs) == 0 {
		return base
	}

	return strings.Join(dirs, `\`) + `\` + base
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

package bsa

import "strings"

// FolderNode is one directory in the archive's in-memory folder tree.
// The root folder has an empty Name and a nil Parent.
type FolderNode struct {
	Name   string
	Parent *FolderNode

	children     []*FolderNode
	childrenByName map[string]*FolderNode

	Files []*FileRecord

	hash       uint64
	fullPath   string
	pathCached bool

	// writeOffset is filled in during pass 1 of the legacy writer and
	// consumed during pass 2.
	writeOffset int64
}

// newRootFolder creates an empty root folder.
func newRootFolder() *FolderNode {
	return &FolderNode{
		childrenByName: make(map[string]*FolderNode),
		fullPath:       "",
		pathCached:     true,
	}
}

// newChildFolder creates a folder under parent, computing its name hash.
func newChildFolder(parent *FolderNode, name string) *FolderNode {
	return &FolderNode{
		Name:           name,
		Parent:         parent,
		childrenByName: make(map[string]*FolderNode),
		hash:           folderHash(name),
	}
}

// Hash returns the folder's cached 64-bit name hash.
func (f *FolderNode) Hash() uint64 {
	return f.hash
}

// FullPath returns the folder's full path with '\\' separators, cached
// after first computation, empty at root.
func (f *FolderNode) FullPath() string {
	if f.pathCached {
		return f.fullPath
	}

	if f.Parent == nil || f.Parent.FullPath() == "" {
		f.fullPath = f.Name
	} else {
		f.fullPath = f.Parent.FullPath() + `\` + f.Name
	}

	f.pathCached = true
	return f.fullPath
}

// Folders returns the folder's direct children in insertion order.
func (f *FolderNode) Folders() []*FolderNode {
	return f.children
}

// AddFolder inserts a new child folder named name, returning the existing
// one if already present.
func (f *FolderNode) AddFolder(name string) *FolderNode {
	if existing, ok := f.childrenByName[name]; ok {
		return existing
	}

	child := newChildFolder(f, name)
	f.children = append(f.children, child)
	f.childrenByName[name] = child

	return child
}

// AddFile appends a file record to this folder.
func (f *FolderNode) AddFile(fr *FileRecord) {
	fr.Folder = f
	f.Files = append(f.Files, fr)
}

// findChild returns the direct child folder matching name case-insensitively,
// or nil if none exists.
func (f *FolderNode) findChild(name string) *FolderNode {
	for _, c := range f.children {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}

	return nil
}

// FindOrInsertPath walks dirs from f, creating folders on demand, and
// returns the terminal folder. This is the deduplicated-insertion
// operation used by every directory parser that ingests full paths
// (BA2 name tables, Morrowind) and by callers building a fresh tree.
func (f *FolderNode) FindOrInsertPath(dirs []string) *FolderNode {
	cur := f
	for _, d := range dirs {
		if d == "" {
			continue
		}
		cur = cur.AddFolder(d)
	}

	return cur
}

// collectFolders returns every folder in the tree, depth-first pre-order,
// excluding folders with zero files directly attached — the legacy writer
// only emits a folder header record for folders that carry files.
func (f *FolderNode) collectFolders() []*FolderNode {
	var out []*FolderNode
	var walk func(n *FolderNode)
	walk = func(n *FolderNode) {
		if len(n.Files) > 0 {
			out = append(out, n)
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(f)

	return out
}

// collectFiles returns every file in the tree, depth-first pre-order.
func (f *FolderNode) collectFiles() []*FileRecord {
	var out []*FileRecord
	var walk func(n *FolderNode)
	walk = func(n *FolderNode) {
		out = append(out, n.Files...)
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(f)

	return out
}

// collectFolderNames returns the full path of every folder collectFolders
// would return, in the same order.
func (f *FolderNode) collectFolderNames() []string {
	folders := f.collectFolders()
	names := make([]string, len(folders))
	for i, fn := range folders {
		names[i] = fn.FullPath()
	}

	return names
}

// collectFileNames returns the basename of every file collectFiles would
// return, in the same order.
func (f *FolderNode) collectFileNames() []string {
	files := f.collectFiles()
	names := make([]string, len(files))
	for i, fr := range files {
		names[i] = fr.Name
	}

	return names
}

// countFiles returns the total number of files anywhere under f.
func (f *FolderNode) countFiles() int {
	count := len(f.Files)
	for _, c := range f.children {
		count += c.countFiles()
	}

	return count
}

package main

import (
	"path"

	"github.com/disiqueira/gotree/v3"
)

// fileTree renders slash-separated paths as a directory tree.
type fileTree struct {
	tree gotree.Tree
	dirs map[string]gotree.Tree
}

func newFileTree(rootLabel string) fileTree {
	return fileTree{tree: gotree.New(rootLabel), dirs: make(map[string]gotree.Tree)}
}

func (t fileTree) dir(dirPath string) gotree.Tree {
	if dirPath == "." {
		return t.tree
	}
	d := t.dirs[dirPath]
	if d == nil {
		d = t.dir(path.Dir(dirPath)).Add(path.Base(dirPath))
		t.dirs[dirPath] = d
	}
	return d
}

// Insert adds a file. Paths must arrive in lexical order for a stable rendering.
func (t fileTree) Insert(filePath string) {
	t.dir(path.Dir(filePath)).Add(path.Base(filePath))
}

func (t fileTree) Render() string {
	return t.tree.Print()
}

package tree

import (
	"fmt"
	"os"
	"path/filepath"

	fsutil "github.com/holgertkey/dtree/internal/fs"
)

// Tree is the rooted structure of Nodes. Re-rooting replaces the whole
// subtree; the old root becomes garbage once the last outstanding handle
// (flat list entry, mid-walk reference) drops it.
type Tree struct {
	probe *fsutil.Probe
	root  *Node
}

// New creates an empty tree backed by probe. Call SetRoot before use.
func New(probe *fsutil.Probe) *Tree {
	return &Tree{probe: probe}
}

// Probe exposes the probe so collaborators (navigation, search) discover
// children through the same primitive.
func (t *Tree) Probe() *fsutil.Probe {
	return t.probe
}

// Root returns the current root node, or nil before the first SetRoot.
func (t *Tree) Root() *Node {
	return t.root
}

// SetRoot builds a fresh node for path, loads its immediate children and
// marks it expanded. On failure the previous root is kept and a typed error
// is returned, so navigation state stays unchanged. Used for both "enter
// directory" and "go to parent".
func (t *Tree) SetRoot(path string, opts LoadOptions) (*Node, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid root %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("invalid root %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("invalid root %s: not a directory", abs)
	}

	root := newNode(abs, "", true, 0)
	if err := root.LoadChildren(t.probe, opts); err != nil {
		return nil, err
	}
	root.SetExpanded(true)

	t.root = root
	return root, nil
}

// FindByPath walks the whole discovered tree comparing paths and returns the
// matching node, or nil. The flat-list index alone is not a safe mutation
// handle once the tree changed underneath, hence the path-based lookup.
func (t *Tree) FindByPath(path string) *Node {
	if t.root == nil {
		return nil
	}
	return findByPath(t.root, path)
}

func findByPath(n *Node, path string) *Node {
	if n.Path == path {
		return n
	}
	if !IsAncestor(n.Path, path) {
		return nil
	}
	for _, child := range n.Children() {
		if found := findByPath(child, path); found != nil {
			return found
		}
	}
	return nil
}

// IsAncestor reports whether target lives somewhere under dir (or is dir).
func IsAncestor(dir, target string) bool {
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		return false
	}
	return rel == "." || !hasDotDotPrefix(rel)
}

func hasDotDotPrefix(rel string) bool {
	if rel == ".." {
		return true
	}
	prefix := ".." + string(filepath.Separator)
	return len(rel) >= len(prefix) && rel[:len(prefix)] == prefix
}

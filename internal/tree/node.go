package tree

import (
	"path/filepath"
	"sync"

	fsutil "github.com/holgertkey/dtree/internal/fs"
)

// LoadState distinguishes "not yet loaded" from "loaded and genuinely empty"
// and from "tried and failed".
type LoadState int

const (
	NotLoaded LoadState = iota
	Loaded
	LoadFailed
)

// LoadOptions controls which probe entries become children.
type LoadOptions struct {
	IncludeFiles bool
	ShowHidden   bool
}

// Node is one filesystem entry in the tree. A node exclusively owns its
// children; every accessor takes the node's own mutex, so the interaction
// goroutine and a deep-walk goroutine may touch the same node safely
// (single-writer-per-node, not per-tree).
type Node struct {
	Path  string
	Name  string
	IsDir bool
	Depth int

	mu       sync.Mutex
	expanded bool
	state    LoadState
	loadErr  string
	loadOpts LoadOptions
	children []*Node
}

func newNode(path, name string, isDir bool, depth int) *Node {
	if name == "" {
		name = filepath.Base(path)
	}
	return &Node{
		Path:  path,
		Name:  name,
		IsDir: isDir,
		Depth: depth,
	}
}

// LoadChildren re-queries the probe and replaces the child set. A probe
// failure is recorded on the node (children cleared, state LoadFailed) and
// also returned; expand/walk callers ignore it since the failure surfaces
// through HasError.
func (n *Node) LoadChildren(probe *fsutil.Probe, opts LoadOptions) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.loadLocked(probe, opts)
}

// EnsureLoaded loads children only when the node has never been loaded, or
// was loaded with a different inclusion mode. Check and load run under one
// lock so concurrent holders cannot trigger duplicate loads or observe a
// half-populated child set.
func (n *Node) EnsureLoaded(probe *fsutil.Probe, opts LoadOptions) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state == Loaded && n.loadOpts == opts {
		return nil
	}
	return n.loadLocked(probe, opts)
}

func (n *Node) loadLocked(probe *fsutil.Probe, opts LoadOptions) error {
	if !n.IsDir {
		return nil
	}

	entries, err := probe.ListChildren(n.Path)
	if err != nil {
		n.children = nil
		n.state = LoadFailed
		n.loadErr = err.Error()
		return err
	}

	children := make([]*Node, 0, len(entries))
	for _, e := range entries {
		if !opts.IncludeFiles && !e.IsDir {
			continue
		}
		if !opts.ShowHidden && e.IsHidden() {
			continue
		}
		children = append(children, newNode(e.FullPath, e.Name, e.IsDir, n.Depth+1))
	}

	n.children = children
	n.state = Loaded
	n.loadErr = ""
	n.loadOpts = opts
	return nil
}

// ToggleExpand flips the expansion flag. Collapsing keeps the children so
// re-expanding is free; expanding a never-loaded directory triggers a load.
// File nodes are childless and never expanded.
func (n *Node) ToggleExpand(probe *fsutil.Probe, opts LoadOptions) error {
	if !n.IsDir {
		return nil
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.expanded {
		n.expanded = false
		return nil
	}

	var err error
	if n.state != Loaded || n.loadOpts != opts {
		err = n.loadLocked(probe, opts)
	}
	n.expanded = true
	return err
}

// Expanded reports whether children are visible.
func (n *Node) Expanded() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.expanded && n.IsDir
}

// SetExpanded flips the expansion flag without touching children. Callers
// that need a load must go through ToggleExpand or EnsureLoaded first.
func (n *Node) SetExpanded(v bool) {
	n.mu.Lock()
	n.expanded = v && n.IsDir
	n.mu.Unlock()
}

// State returns the load marker.
func (n *Node) State() LoadState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// LoadError returns the recorded enumeration failure, if any.
func (n *Node) LoadError() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.loadErr, n.state == LoadFailed
}

// HasError reports whether the last load attempt failed.
func (n *Node) HasError() bool {
	_, failed := n.LoadError()
	return failed
}

// Children returns a snapshot of the child slice. Callers get stable,
// non-owning handles; the slice header is copied so a concurrent reload
// cannot mutate what the caller iterates.
func (n *Node) Children() []*Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

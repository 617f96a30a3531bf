package nav

import (
	"fmt"
	"path/filepath"

	fsutil "github.com/holgertkey/dtree/internal/fs"
	"github.com/holgertkey/dtree/internal/tree"
)

// Row is one visible line of the tree pane.
type Row struct {
	Path       string
	Name       string
	Depth      int
	IsDir      bool
	IsExpanded bool
	HasError   bool
}

// Navigation owns the flattened view of the tree and the selection cursor.
// All methods run on the interaction goroutine; the tree nodes themselves
// carry the locking that makes them safe to share with a search walk.
type Navigation struct {
	tree     *tree.Tree
	opts     tree.LoadOptions
	flat     []*tree.Node
	selected int
}

// New roots a tree at startPath and builds the initial flat list.
func New(startPath string, probe *fsutil.Probe, opts tree.LoadOptions) (*Navigation, error) {
	t := tree.New(probe)
	if _, err := t.SetRoot(startPath, opts); err != nil {
		return nil, err
	}
	n := &Navigation{tree: t, opts: opts}
	n.Rebuild()
	return n, nil
}

// Tree exposes the shared tree for search sessions.
func (n *Navigation) Tree() *tree.Tree {
	return n.tree
}

// Options returns the current load options (file/hidden visibility).
func (n *Navigation) Options() tree.LoadOptions {
	return n.opts
}

// Rebuild re-derives the flat list: depth-first pre-order from root, pushing
// every node and recursing only into expanded directories. The list is a
// pure projection; it is rebuilt wholesale after every structural change.
func (n *Navigation) Rebuild() {
	n.flat = n.flat[:0]
	if root := n.tree.Root(); root != nil {
		n.collectVisible(root)
	}
	n.clampSelection()
}

func (n *Navigation) collectVisible(node *tree.Node) {
	n.flat = append(n.flat, node)
	if !node.Expanded() {
		return
	}
	for _, child := range node.Children() {
		n.collectVisible(child)
	}
}

func (n *Navigation) clampSelection() {
	if len(n.flat) == 0 {
		n.selected = 0
		return
	}
	if n.selected < 0 {
		n.selected = 0
	}
	if n.selected >= len(n.flat) {
		n.selected = len(n.flat) - 1
	}
}

// Len reports the number of visible rows.
func (n *Navigation) Len() int {
	return len(n.flat)
}

// Selected returns the cursor index.
func (n *Navigation) Selected() int {
	return n.selected
}

// SelectedNode returns the node under the cursor, or nil when empty.
func (n *Navigation) SelectedNode() *tree.Node {
	if n.selected < 0 || n.selected >= len(n.flat) {
		return nil
	}
	return n.flat[n.selected]
}

// SelectedPath returns the path under the cursor.
func (n *Navigation) SelectedPath() (string, bool) {
	node := n.SelectedNode()
	if node == nil {
		return "", false
	}
	return node.Path, true
}

// MoveSelection moves the cursor by delta, clamped to the list bounds.
func (n *Navigation) MoveSelection(delta int) {
	n.selected += delta
	n.clampSelection()
}

// MoveUp moves the cursor one row up.
func (n *Navigation) MoveUp() { n.MoveSelection(-1) }

// MoveDown moves the cursor one row down.
func (n *Navigation) MoveDown() { n.MoveSelection(1) }

// ToggleAt expands or collapses the directory at the given flat-list index.
// The index is resolved to a path and the whole tree is searched for the
// matching node: the flat list holds non-owning handles that may be stale
// after a concurrent reload, the path lookup is the safe mutation handle.
func (n *Navigation) ToggleAt(index int) error {
	if index < 0 || index >= len(n.flat) {
		return fmt.Errorf("row %d out of range", index)
	}
	path := n.flat[index].Path

	node := n.tree.FindByPath(path)
	if node == nil {
		n.Rebuild()
		return nil
	}
	_ = node.ToggleExpand(n.tree.Probe(), n.opts) // probe failure recorded on the node
	n.Rebuild()
	return nil
}

// ToggleSelected toggles the node under the cursor.
func (n *Navigation) ToggleSelected() error {
	if len(n.flat) == 0 {
		return nil
	}
	return n.ToggleAt(n.selected)
}

// EnterSelected re-roots the tree at the selected directory.
func (n *Navigation) EnterSelected() error {
	node := n.SelectedNode()
	if node == nil || !node.IsDir {
		return nil
	}
	if _, err := n.tree.SetRoot(node.Path, n.opts); err != nil {
		return err
	}
	n.selected = 0
	n.Rebuild()
	return nil
}

// GoToParent re-roots at the parent directory and re-selects the row whose
// path equals the previous root. The linear scan over the new flat list is
// O(visible nodes), which only runs on explicit navigation.
func (n *Navigation) GoToParent() error {
	root := n.tree.Root()
	if root == nil {
		return nil
	}
	parent := filepath.Dir(root.Path)
	if parent == root.Path {
		return nil // already at filesystem root
	}

	previous := root.Path
	if _, err := n.tree.SetRoot(parent, n.opts); err != nil {
		return err
	}
	n.Rebuild()
	n.SelectPath(previous)
	return nil
}

// GoToDirectory re-roots at an arbitrary directory (bookmark jumps).
func (n *Navigation) GoToDirectory(path string) error {
	if _, err := n.tree.SetRoot(path, n.opts); err != nil {
		return err
	}
	n.selected = 0
	n.Rebuild()
	return nil
}

// SelectPath moves the cursor to the row with the given path, if visible.
func (n *Navigation) SelectPath(path string) bool {
	for i, node := range n.flat {
		if node.Path == path {
			n.selected = i
			return true
		}
	}
	return false
}

// ExpandPathTo expands every ancestor directory toward targetPath (loading
// through the probe as needed) so a search result becomes visible, then
// selects it. Returns false without mutating anything when the target lies
// outside the root subtree.
func (n *Navigation) ExpandPathTo(targetPath string) (bool, error) {
	root := n.tree.Root()
	if root == nil {
		return false, nil
	}
	if !tree.IsAncestor(root.Path, targetPath) {
		return false, nil
	}

	node := root
	for node.Path != targetPath {
		if err := node.EnsureLoaded(n.tree.Probe(), n.opts); err != nil {
			n.Rebuild()
			return false, err
		}
		node.SetExpanded(true)

		var next *tree.Node
		for _, child := range node.Children() {
			if tree.IsAncestor(child.Path, targetPath) {
				next = child
				break
			}
		}
		if next == nil {
			// Target exists on disk but is filtered out of the tree
			// (hidden or file-excluded); reveal as far as we got.
			n.Rebuild()
			return false, nil
		}
		node = next
	}

	n.Rebuild()
	n.SelectPath(targetPath)
	return true, nil
}

// SetOptions switches file/hidden visibility: every expanded directory is
// re-queried with the new mode and its expansion restored, then the cursor
// returns to the previously selected path when it is still visible.
func (n *Navigation) SetOptions(opts tree.LoadOptions) error {
	if opts == n.opts {
		return nil
	}
	n.reload(opts)
	return nil
}

// Reload re-queries every expanded directory from disk with the current
// options, picking up entries created or removed since the last load.
func (n *Navigation) Reload() {
	n.reload(n.opts)
}

func (n *Navigation) reload(opts tree.LoadOptions) {
	selectedPath, hadSelection := n.SelectedPath()

	expanded := make([]string, 0, len(n.flat))
	for _, node := range n.flat {
		if node.IsDir && node.Expanded() {
			expanded = append(expanded, node.Path)
		}
	}

	n.opts = opts
	// Flat list is in depth-first pre-order, so parents reload before the
	// children they re-create.
	for _, path := range expanded {
		node := n.tree.FindByPath(path)
		if node == nil {
			continue
		}
		_ = node.LoadChildren(n.tree.Probe(), opts) // failures stay recorded on the node
		node.SetExpanded(true)
	}

	n.Rebuild()
	if hadSelection && !n.SelectPath(selectedPath) {
		n.clampSelection()
	}
}

// VisibleRows projects the flat list into display rows.
func (n *Navigation) VisibleRows() []Row {
	rows := make([]Row, len(n.flat))
	for i, node := range n.flat {
		rows[i] = Row{
			Path:       node.Path,
			Name:       node.Name,
			Depth:      node.Depth,
			IsDir:      node.IsDir,
			IsExpanded: node.Expanded(),
			HasError:   node.HasError(),
		}
	}
	return rows
}

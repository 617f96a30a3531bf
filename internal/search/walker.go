package search

import (
	"context"

	fsutil "github.com/holgertkey/dtree/internal/fs"
	"github.com/holgertkey/dtree/internal/tree"
)

// walker is the deep pass: one goroutine per generation walking the shared
// tree from root, discovering children through the probe. Cancellation is
// cooperative, checked at every directory boundary; a probe failure on a
// subdirectory is recorded on that node and the walk continues past it.
type walker struct {
	probe   *fsutil.Probe
	opts    tree.LoadOptions
	query   string
	fuzzy   bool
	gen     int
	msgs    chan<- message
	visited int
}

func (w *walker) run(ctx context.Context, root *tree.Node) {
	w.walk(ctx, root)
	if ctx.Err() != nil {
		return // cancelled walks never report completion
	}
	w.send(ctx, message{gen: w.gen, kind: msgProgress, visited: w.visited})
	w.send(ctx, message{gen: w.gen, kind: msgDone})
}

func (w *walker) walk(ctx context.Context, node *tree.Node) {
	if ctx.Err() != nil {
		return
	}

	if r, ok := matchName(node.Path, node.Name, node.IsDir, w.query, w.fuzzy); ok {
		if w.opts.IncludeFiles || node.IsDir {
			w.send(ctx, message{gen: w.gen, kind: msgResult, result: r})
		}
	}

	if !node.IsDir {
		return
	}

	// Load-if-needed and the walk share the node's lock with navigation;
	// a failure stays on the node as display state.
	if err := node.EnsureLoaded(w.probe, w.opts); err != nil {
		return
	}

	w.visited++
	if w.visited%progressEvery == 0 {
		w.send(ctx, message{gen: w.gen, kind: msgProgress, visited: w.visited})
	}

	for _, child := range node.Children() {
		if ctx.Err() != nil {
			return
		}
		w.walk(ctx, child)
	}
}

// send delivers a message unless the generation was cancelled; selecting on
// ctx keeps a cancelled walker from blocking on a full buffer forever.
func (w *walker) send(ctx context.Context, m message) {
	select {
	case w.msgs <- m:
	case <-ctx.Done():
	}
}

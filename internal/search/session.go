package search

import (
	"context"
	"sort"
	"strings"

	"github.com/holgertkey/dtree/internal/tree"
)

// progressEvery is how many visited directories separate progress messages.
const progressEvery = 100

// messageBuffer bounds the channel between a deep walk and the poller. A
// full buffer never deadlocks a cancelled walker: sends also select on
// context cancellation.
const messageBuffer = 256

// Result is one search hit. Score and MatchedIndexes are only set in fuzzy
// mode; MatchedIndexes reference the name and are used for highlighting only.
type Result struct {
	Path           string
	Name           string
	IsDir          bool
	Score          int
	HasScore       bool
	MatchedIndexes []int

	order int // discovery order, breaks fuzzy score ties
}

// Event is one item returned by Poll.
type Event interface{ isEvent() }

// ResultEvent reports a newly accepted result.
type ResultEvent struct{ Result Result }

// ProgressEvent reports the number of directories visited so far.
type ProgressEvent struct{ Visited int }

// DoneEvent reports natural completion of the deep walk.
type DoneEvent struct{}

func (ResultEvent) isEvent()   {}
func (ProgressEvent) isEvent() {}
func (DoneEvent) isEvent()     {}

type msgKind int

const (
	msgResult msgKind = iota
	msgProgress
	msgDone
)

type message struct {
	gen     int
	kind    msgKind
	result  Result
	visited int
}

// Session orchestrates the two-phase search: a synchronous instant pass over
// already-discovered nodes, then one background deep walk over the whole
// tree. Each submission bumps the generation; messages from superseded
// generations are discarded at the poll boundary, so starting a new search
// never waits for the old walker to stop (fire-and-forget cancellation).
//
// All methods run on the interaction goroutine. The deep walk shares the
// tree with it; per-node locking inside tree.Node makes that safe.
type Session struct {
	tree *tree.Tree

	query     string
	fuzzyMode bool
	results   []Result
	seen      map[string]struct{}
	visited   int
	active    bool
	order     int

	gen    int
	cancel context.CancelFunc
	msgs   chan message
}

// NewSession creates an idle session over the shared tree.
func NewSession(t *tree.Tree) *Session {
	return &Session{
		tree: t,
		seen: make(map[string]struct{}),
		msgs: make(chan message, messageBuffer),
	}
}

// Query returns the effective query of the current generation.
func (s *Session) Query() string { return s.query }

// FuzzyMode reports whether the current generation ranks fuzzily.
func (s *Session) FuzzyMode() bool { return s.fuzzyMode }

// Active reports whether a deep walk is still running.
func (s *Session) Active() bool { return s.active }

// Visited returns the progress counter (directories visited by the walk).
func (s *Session) Visited() int { return s.visited }

// Results returns a snapshot of the ordered result list.
func (s *Session) Results() []Result {
	out := make([]Result, len(s.results))
	copy(out, s.results)
	return out
}

// Submit cancels any previous generation and starts a new search. A leading
// '/' selects fuzzy mode and is stripped; an empty effective query just
// clears the session. The instant pass runs synchronously before this
// returns, so first results have zero latency.
func (s *Session) Submit(rawQuery string, opts tree.LoadOptions) {
	s.cancelWalk()
	s.gen++

	s.fuzzyMode = strings.HasPrefix(rawQuery, "/")
	query := rawQuery
	if s.fuzzyMode {
		query = rawQuery[1:]
	}
	s.query = query
	s.results = s.results[:0]
	s.seen = make(map[string]struct{})
	s.visited = 0
	s.order = 0

	root := s.tree.Root()
	if query == "" || root == nil {
		s.active = false
		return
	}

	s.instantPass(root, query, opts)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.active = true

	w := &walker{
		probe: s.tree.Probe(),
		opts:  opts,
		query: query,
		fuzzy: s.fuzzyMode,
		gen:   s.gen,
		msgs:  s.msgs,
	}
	go w.run(ctx, root)
}

// Cancel aborts the current generation but keeps accumulated results.
func (s *Session) Cancel() {
	s.cancelWalk()
	s.active = false
}

// Reset aborts and clears everything; used when search mode exits.
func (s *Session) Reset() {
	s.cancelWalk()
	s.gen++
	s.query = ""
	s.fuzzyMode = false
	s.results = s.results[:0]
	s.seen = make(map[string]struct{})
	s.visited = 0
	s.active = false
}

func (s *Session) cancelWalk() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Poll drains pending messages without blocking and applies those belonging
// to the current generation. Within one generation messages arrive in send
// order, so progress is monotonic and substring results keep discovery order.
func (s *Session) Poll() []Event {
	var events []Event
	for {
		select {
		case m := <-s.msgs:
			if m.gen != s.gen {
				continue // stale generation, dropped silently
			}
			switch m.kind {
			case msgResult:
				if r, ok := s.accept(m.result); ok {
					events = append(events, ResultEvent{Result: r})
				}
			case msgProgress:
				if m.visited > s.visited {
					s.visited = m.visited
				}
				events = append(events, ProgressEvent{Visited: s.visited})
			case msgDone:
				s.active = false
				events = append(events, DoneEvent{})
			}
		default:
			return events
		}
	}
}

// accept dedupes by path (the instant pass may have seen it first) and
// inserts the result at its ordered position.
func (s *Session) accept(r Result) (Result, bool) {
	if _, dup := s.seen[r.Path]; dup {
		return Result{}, false
	}
	s.seen[r.Path] = struct{}{}
	r.order = s.order
	s.order++

	if !s.fuzzyMode {
		s.results = append(s.results, r)
		return r, true
	}

	// Fuzzy results stay sorted by descending score at all times; equal
	// scores keep discovery order.
	idx := sort.Search(len(s.results), func(i int) bool {
		return s.results[i].Score < r.Score
	})
	s.results = append(s.results, Result{})
	copy(s.results[idx+1:], s.results[idx:])
	s.results[idx] = r
	return r, true
}

// instantPass scans only nodes already discovered by navigation, appending
// matches synchronously.
func (s *Session) instantPass(node *tree.Node, query string, opts tree.LoadOptions) {
	s.matchNode(node, query, opts)
	if node.State() != tree.Loaded {
		return
	}
	for _, child := range node.Children() {
		s.instantPass(child, query, opts)
	}
}

func (s *Session) matchNode(node *tree.Node, query string, opts tree.LoadOptions) {
	if !opts.IncludeFiles && !node.IsDir {
		return
	}
	if r, ok := matchName(node.Path, node.Name, node.IsDir, query, s.fuzzyMode); ok {
		s.accept(r)
	}
}

func matchName(path, name string, isDir bool, query string, fuzzyMode bool) (Result, bool) {
	if fuzzyMode {
		score, indexes, ok := FuzzyScore(query, name)
		if !ok {
			return Result{}, false
		}
		return Result{
			Path:           path,
			Name:           name,
			IsDir:          isDir,
			Score:          score,
			HasScore:       true,
			MatchedIndexes: indexes,
		}, true
	}
	if !SubstringMatch(query, name) {
		return Result{}, false
	}
	return Result{Path: path, Name: name, IsDir: isDir}, true
}

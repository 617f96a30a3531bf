package ui

import (
	"github.com/holgertkey/dtree/internal/bookmarks"
	"github.com/holgertkey/dtree/internal/nav"
	"github.com/holgertkey/dtree/internal/search"
	"github.com/holgertkey/dtree/internal/viewer"
)

// Mode selects which pane owns the keyboard and how the left pane renders.
type Mode int

const (
	ModeTree Mode = iota
	ModeSearchInput
	ModeResults
	ModeBookmarks
)

// View is the per-frame snapshot the renderer draws. The application owns
// all state; the renderer never mutates a View.
type View struct {
	Mode     Mode
	RootPath string

	Rows       []nav.Row
	Selected   int
	TreeScroll int

	SearchQuery    string
	Results        []search.Result
	ResultSelected int
	ResultScroll   int
	Searching      bool
	Visited        int

	Preview         *viewer.Document
	PreviewScroll   int
	ShowLineNumbers bool
	// SplitPosition is the tree pane width as a percentage of the screen.
	SplitPosition int

	Bookmarks        []bookmarks.Bookmark
	BookmarkSelected int

	StatusMessage string
	StatusIsError bool

	// SizeFor returns a formatted size for a directory path, if cached.
	SizeFor func(path string) (string, bool)
}

package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/holgertkey/dtree/internal/nav"
	"github.com/holgertkey/dtree/internal/search"
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetSize(80, 24)
	t.Cleanup(s.Fini)
	return s
}

func screenLines(s tcell.SimulationScreen) []string {
	cells, w, h := s.GetContents()
	lines := make([]string, h)
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) > 0 {
				b.WriteRune(c.Runes[0])
			} else {
				b.WriteByte(' ')
			}
		}
		lines[y] = b.String()
	}
	return lines
}

func screenContains(lines []string, want string) bool {
	for _, line := range lines {
		if strings.Contains(line, want) {
			return true
		}
	}
	return false
}

func TestRenderTreeShowsRowsAndSelection(t *testing.T) {
	s := newTestScreen(t)
	r := NewRenderer(s, Theme{Selected: tcell.ColorYellow})

	r.Render(&View{
		Mode:     ModeTree,
		RootPath: "/work/project",
		Rows: []nav.Row{
			{Path: "/work/project", Name: "project", Depth: 0, IsDir: true, IsExpanded: true},
			{Path: "/work/project/src", Name: "src", Depth: 1, IsDir: true},
			{Path: "/work/project/readme.md", Name: "readme.md", Depth: 1},
		},
		Selected:      1,
		SplitPosition: 50,
	})

	lines := screenLines(s)
	if !screenContains(lines, "dtree  /work/project") {
		t.Fatal("header missing")
	}
	if !screenContains(lines, "▾ project") {
		t.Fatal("expanded marker missing")
	}
	if !screenContains(lines, "▸ src") {
		t.Fatal("collapsed marker missing")
	}
	if !screenContains(lines, "readme.md") {
		t.Fatal("file row missing")
	}
	if !screenContains(lines, "3 items") {
		t.Fatal("status count missing")
	}
}

func TestRenderErrorRowMarked(t *testing.T) {
	s := newTestScreen(t)
	r := NewRenderer(s, Theme{Error: tcell.ColorRed})

	r.Render(&View{
		Mode: ModeTree,
		Rows: []nav.Row{
			{Path: "/locked", Name: "locked", IsDir: true, HasError: true},
		},
		SplitPosition: 50,
	})

	if !screenContains(screenLines(s), "▸ locked ⚠") {
		t.Fatal("error marker missing")
	}
}

func TestRenderSearchModeShowsQueryAndResults(t *testing.T) {
	s := newTestScreen(t)
	r := NewRenderer(s, Theme{Highlight: tcell.ColorYellow})

	r.Render(&View{
		Mode:        ModeResults,
		SearchQuery: "/main",
		Results: []search.Result{
			{Path: "/p/src/main.go", Name: "main.go", Score: 42, HasScore: true},
		},
		Searching:     true,
		Visited:       120,
		SplitPosition: 50,
	})

	lines := screenLines(s)
	if !screenContains(lines, "> /main") {
		t.Fatal("query prompt missing")
	}
	if !screenContains(lines, "main.go") {
		t.Fatal("result missing")
	}
	if !screenContains(lines, "120 scanned") {
		t.Fatal("progress missing")
	}
}

func TestMatchHighlightSurvivesSanitizedName(t *testing.T) {
	s := newTestScreen(t)
	r := NewRenderer(s, Theme{Highlight: tcell.ColorYellow, File: tcell.ColorWhite})

	// The escape byte at offset 1 renders as '?', shifting the drawn text
	// relative to the raw bytes the matched indexes refer to.
	r.Render(&View{
		Mode:        ModeResults,
		SearchQuery: "/m",
		Results: []search.Result{
			{
				Path:           "/p/a\x1bmain.go",
				Name:           "a\x1bmain.go",
				Score:          10,
				HasScore:       true,
				MatchedIndexes: []int{2},
			},
		},
		ResultSelected: 1,
		SplitPosition:  50,
	})

	cells, w, _ := s.GetContents()
	row := 2 // header, search prompt, first result
	// marker "  " then a, ?, m
	runeAt := func(x int) rune {
		c := cells[row*w+x]
		if len(c.Runes) == 0 {
			return ' '
		}
		return c.Runes[0]
	}
	fgAt := func(x int) tcell.Color {
		fg, _, _ := cells[row*w+x].Style.Decompose()
		return fg
	}

	if got := runeAt(2); got != 'a' {
		t.Fatalf("cell 2 = %q, want a", got)
	}
	if got := runeAt(3); got != '?' {
		t.Fatalf("cell 3 = %q, want sanitized ?", got)
	}
	if got := runeAt(4); got != 'm' {
		t.Fatalf("cell 4 = %q, want m", got)
	}
	if fgAt(4) != tcell.ColorYellow {
		t.Fatal("matched rune not highlighted")
	}
	if fgAt(3) == tcell.ColorYellow {
		t.Fatal("highlight drifted onto the sanitized replacement")
	}
	if fgAt(2) == tcell.ColorYellow {
		t.Fatal("highlight drifted onto an unmatched rune")
	}
}

func TestRenderEmptyResults(t *testing.T) {
	s := newTestScreen(t)
	r := NewRenderer(s, Theme{})

	r.Render(&View{Mode: ModeResults, SearchQuery: "zzz", SplitPosition: 50})

	if !screenContains(screenLines(s), "no matches") {
		t.Fatal("placeholder missing")
	}
}

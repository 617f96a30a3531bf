// Package app owns the interactive session: one Navigation, one search
// Session, and the event loop that ties them to the screen.
package app

import (
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/holgertkey/dtree/internal/bookmarks"
	"github.com/holgertkey/dtree/internal/config"
	"github.com/holgertkey/dtree/internal/dirsize"
	fsutil "github.com/holgertkey/dtree/internal/fs"
	"github.com/holgertkey/dtree/internal/nav"
	"github.com/holgertkey/dtree/internal/search"
	"github.com/holgertkey/dtree/internal/tree"
	"github.com/holgertkey/dtree/internal/ui"
	"github.com/holgertkey/dtree/internal/viewer"
)

// Application holds all interactive state. Everything runs on the event
// loop goroutine; the search session and size cache deliver their results
// through polling.
type Application struct {
	screen   tcell.Screen
	cfg      *config.Config
	renderer *ui.Renderer

	nav     *nav.Navigation
	session *search.Session
	marks   *bookmarks.Store
	sizes   *dirsize.Cache

	mode         ui.Mode
	searchInput  string
	resultSel    int
	resultScroll int
	treeScroll   int
	bookmarkSel  int

	preview       *viewer.Document
	previewPath   string
	previewScroll int

	showSizes  bool
	status     string
	statusErr  bool
	shouldQuit bool
}

// New builds an application on a freshly initialised terminal screen.
func New(cfg *config.Config, startPath string) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	marksPath, err := bookmarks.DefaultPath()
	if err != nil {
		screen.Fini()
		return nil, err
	}

	app, err := NewWithScreen(screen, cfg, startPath, marksPath)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

// NewWithScreen wires the application onto an already initialised screen.
// Tests use this with a simulation screen.
func NewWithScreen(screen tcell.Screen, cfg *config.Config, startPath, marksPath string) (*Application, error) {
	probe := &fsutil.Probe{FollowSymlinks: cfg.Behavior.FollowSymlinks}
	opts := tree.LoadOptions{
		IncludeFiles: cfg.Behavior.ShowFiles,
		ShowHidden:   cfg.Behavior.ShowHidden,
	}

	navigation, err := nav.New(startPath, probe, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", startPath, err)
	}

	marks, err := bookmarks.Open(marksPath)
	if err != nil {
		return nil, err
	}

	app := &Application{
		screen:   screen,
		cfg:      cfg,
		renderer: ui.NewRenderer(screen, ui.ThemeFromConfig(cfg.Appearance)),
		nav:      navigation,
		session:  search.NewSession(navigation.Tree()),
		marks:    marks,
		sizes:    dirsize.New(),
	}
	app.refreshPreview()
	return app, nil
}

func (app *Application) options() tree.LoadOptions {
	return app.nav.Options()
}

// view assembles the frame snapshot for the renderer.
func (app *Application) view() *ui.View {
	rows := app.nav.VisibleRows()
	_, h := app.screen.Size()
	page := h - 2
	if page < 1 {
		page = 1
	}

	app.treeScroll = clampScroll(app.treeScroll, app.nav.Selected(), len(rows), page)
	app.resultScroll = clampScroll(app.resultScroll, app.resultSel, len(app.session.Results()), page)

	v := &ui.View{
		Mode:             app.mode,
		RootPath:         app.rootPath(),
		Rows:             rows,
		Selected:         app.nav.Selected(),
		TreeScroll:       app.treeScroll,
		SearchQuery:      app.searchInput,
		Results:          app.session.Results(),
		ResultSelected:   app.resultSel,
		ResultScroll:     app.resultScroll,
		Searching:        app.session.Active(),
		Visited:          app.session.Visited(),
		Preview:          app.preview,
		PreviewScroll:    app.previewScroll,
		ShowLineNumbers:  app.cfg.Appearance.ShowLineNumbers,
		SplitPosition:    app.cfg.Appearance.SplitPosition,
		Bookmarks:        app.marks.List(),
		BookmarkSelected: app.bookmarkSel,
		StatusMessage:    app.status,
		StatusIsError:    app.statusErr,
	}
	if app.showSizes {
		v.SizeFor = func(path string) (string, bool) {
			app.sizes.Request(path)
			size, partial, ok := app.sizes.Get(path)
			if !ok {
				return "…", true
			}
			return dirsize.Format(size, partial), true
		}
	}
	return v
}

func (app *Application) rootPath() string {
	if root := app.nav.Tree().Root(); root != nil {
		return root.Path
	}
	return ""
}

// clampScroll keeps the selected row inside the visible window.
func clampScroll(scroll, selected, total, page int) int {
	if total == 0 {
		return 0
	}
	if selected < scroll {
		scroll = selected
	}
	if selected >= scroll+page {
		scroll = selected - page + 1
	}
	if scroll > total-1 {
		scroll = total - 1
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}

// refreshPreview loads the selected file into the preview pane. Directories
// and unchanged selections keep the current document.
func (app *Application) refreshPreview() {
	node := app.nav.SelectedNode()
	if node == nil || node.IsDir {
		app.preview = nil
		app.previewPath = ""
		app.previewScroll = 0
		return
	}
	if node.Path == app.previewPath {
		return
	}

	doc, err := viewer.Load(node.Path, viewer.Options{
		MaxLines:  app.cfg.Behavior.MaxFileLines,
		Highlight: app.cfg.Appearance.EnableSyntax,
		Theme:     app.cfg.Appearance.SyntaxTheme,
	})
	if err != nil {
		app.preview = nil
		app.previewPath = ""
		app.setError(err.Error())
		return
	}
	app.preview = doc
	app.previewPath = node.Path
	app.previewScroll = 0
}

func (app *Application) setError(msg string) {
	app.status = msg
	app.statusErr = true
}

func (app *Application) setStatus(msg string) {
	app.status = msg
	app.statusErr = false
}

func (app *Application) clearStatus() {
	app.status = ""
	app.statusErr = false
}

// addBookmark stores the selected directory under its base name.
func (app *Application) addBookmark() {
	node := app.nav.SelectedNode()
	if node == nil {
		return
	}
	path := node.Path
	if !node.IsDir {
		path = filepath.Dir(path)
	}
	name := filepath.Base(path)
	if err := app.marks.Add(name, path); err != nil {
		app.setError(err.Error())
		return
	}
	app.setStatus(fmt.Sprintf("bookmarked %s", name))
}

package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/holgertkey/dtree/internal/tree"
	"github.com/holgertkey/dtree/internal/ui"
)

func (app *Application) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		app.shouldQuit = true
		return
	}

	switch app.mode {
	case ui.ModeSearchInput:
		app.handleSearchInputKey(ev)
	case ui.ModeResults:
		app.handleResultsKey(ev)
	case ui.ModeBookmarks:
		app.handleBookmarksKey(ev)
	default:
		app.handleTreeKey(ev)
	}
}

func (app *Application) handleTreeKey(ev *tcell.EventKey) {
	app.clearStatus()

	switch ev.Key() {
	case tcell.KeyUp:
		app.moveSelection(-1)
		return
	case tcell.KeyDown:
		app.moveSelection(1)
		return
	case tcell.KeyPgUp:
		app.moveSelection(-app.pageSize())
		return
	case tcell.KeyPgDn:
		app.moveSelection(app.pageSize())
		return
	case tcell.KeyEnter:
		app.toggleSelected()
		return
	case tcell.KeyRight:
		app.expandSelected()
		return
	case tcell.KeyLeft:
		app.collapseSelected()
		return
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		app.goToParent()
		return
	case tcell.KeyEscape:
		app.shouldQuit = true
		return
	}

	switch ev.Rune() {
	case 'q':
		app.shouldQuit = true
	case 'j':
		app.moveSelection(1)
	case 'k':
		app.moveSelection(-1)
	case 'g':
		app.moveSelection(-app.nav.Len())
	case 'G':
		app.moveSelection(app.nav.Len())
	case ' ':
		app.toggleSelected()
	case 'o':
		if err := app.nav.EnterSelected(); err != nil {
			app.setError(err.Error())
		}
		app.refreshPreview()
	case 'u':
		app.goToParent()
	case '/', 'f':
		app.mode = ui.ModeSearchInput
		app.searchInput = ""
		app.resultSel = 0
		app.resultScroll = 0
	case 'b':
		app.mode = ui.ModeBookmarks
		app.bookmarkSel = 0
	case 'a':
		app.addBookmark()
	case '.':
		opts := app.options()
		opts.ShowHidden = !opts.ShowHidden
		app.applyOptions(opts)
	case 't':
		opts := app.options()
		opts.IncludeFiles = !opts.IncludeFiles
		app.applyOptions(opts)
	case 's':
		app.showSizes = !app.showSizes
	case 'r':
		app.nav.Reload()
		app.refreshPreview()
	}
}

func (app *Application) handleSearchInputKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		app.session.Reset()
		app.mode = ui.ModeTree
		return
	case tcell.KeyEnter:
		app.mode = ui.ModeResults
		return
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if app.searchInput != "" {
			runes := []rune(app.searchInput)
			app.searchInput = string(runes[:len(runes)-1])
			app.resubmit()
		}
		return
	}

	if r := ev.Rune(); r != 0 && ev.Key() == tcell.KeyRune {
		app.searchInput += string(r)
		app.resubmit()
	}
}

func (app *Application) handleResultsKey(ev *tcell.EventKey) {
	results := app.session.Results()

	switch ev.Key() {
	case tcell.KeyEscape:
		app.session.Reset()
		app.mode = ui.ModeTree
		return
	case tcell.KeyUp:
		app.moveResultSelection(-1)
		return
	case tcell.KeyDown:
		app.moveResultSelection(1)
		return
	case tcell.KeyEnter:
		if app.resultSel >= 0 && app.resultSel < len(results) {
			app.revealResult(results[app.resultSel].Path)
		}
		return
	}

	switch ev.Rune() {
	case 'q':
		app.session.Reset()
		app.mode = ui.ModeTree
	case 'j':
		app.moveResultSelection(1)
	case 'k':
		app.moveResultSelection(-1)
	case '/':
		app.mode = ui.ModeSearchInput
	}
}

func (app *Application) handleBookmarksKey(ev *tcell.EventKey) {
	marks := app.marks.List()

	switch ev.Key() {
	case tcell.KeyEscape:
		app.mode = ui.ModeTree
		return
	case tcell.KeyUp:
		app.moveBookmarkSelection(-1)
		return
	case tcell.KeyDown:
		app.moveBookmarkSelection(1)
		return
	case tcell.KeyEnter:
		if app.bookmarkSel >= 0 && app.bookmarkSel < len(marks) {
			if err := app.nav.GoToDirectory(marks[app.bookmarkSel].Path); err != nil {
				app.setError(err.Error())
			} else {
				app.mode = ui.ModeTree
				app.refreshPreview()
			}
		}
		return
	}

	switch ev.Rune() {
	case 'q':
		app.mode = ui.ModeTree
	case 'j':
		app.moveBookmarkSelection(1)
	case 'k':
		app.moveBookmarkSelection(-1)
	case 'd':
		if app.bookmarkSel >= 0 && app.bookmarkSel < len(marks) {
			if err := app.marks.Remove(marks[app.bookmarkSel].Name); err != nil {
				app.setError(err.Error())
			}
			app.moveBookmarkSelection(0)
		}
	}
}

func (app *Application) moveSelection(delta int) {
	app.nav.MoveSelection(delta)
	app.refreshPreview()
}

func (app *Application) moveResultSelection(delta int) {
	app.resultSel += delta
	app.clampResultSelection()
}

func (app *Application) moveBookmarkSelection(delta int) {
	n := len(app.marks.List())
	app.bookmarkSel += delta
	if app.bookmarkSel >= n {
		app.bookmarkSel = n - 1
	}
	if app.bookmarkSel < 0 {
		app.bookmarkSel = 0
	}
}

func (app *Application) pageSize() int {
	_, h := app.screen.Size()
	if h < 3 {
		return 1
	}
	return h - 2
}

func (app *Application) toggleSelected() {
	if err := app.nav.ToggleSelected(); err != nil {
		app.setError(err.Error())
	}
	app.refreshPreview()
}

func (app *Application) expandSelected() {
	node := app.nav.SelectedNode()
	if node == nil || !node.IsDir || node.Expanded() {
		return
	}
	app.toggleSelected()
}

func (app *Application) collapseSelected() {
	node := app.nav.SelectedNode()
	if node == nil {
		return
	}
	if node.IsDir && node.Expanded() {
		app.toggleSelected()
		return
	}
	app.goToParent()
}

func (app *Application) goToParent() {
	if err := app.nav.GoToParent(); err != nil {
		app.setError(err.Error())
	}
	app.refreshPreview()
}

// resubmit restarts the search for the current input. Each keystroke
// supersedes the previous walk.
func (app *Application) resubmit() {
	app.session.Submit(app.searchInput, app.options())
	app.resultSel = 0
	app.resultScroll = 0
}

// revealResult expands the tree down to a search hit and selects it.
func (app *Application) revealResult(path string) {
	found, err := app.nav.ExpandPathTo(path)
	if err != nil {
		app.setError(err.Error())
		return
	}
	if !found {
		app.setError("no longer reachable: " + path)
		return
	}
	app.session.Reset()
	app.mode = ui.ModeTree
	app.refreshPreview()
}

func (app *Application) applyOptions(opts tree.LoadOptions) {
	if err := app.nav.SetOptions(opts); err != nil {
		app.setError(err.Error())
	}
	app.refreshPreview()
}

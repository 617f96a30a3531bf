package app

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

const pollInterval = 50 * time.Millisecond

// Run drives the event loop until the user quits.
func (app *Application) Run() {
	defer app.screen.Fini()
	defer app.sizes.Close()

	app.renderer.Render(app.view())

	eventCh := make(chan tcell.Event)
	go func() {
		for {
			eventCh <- app.screen.PollEvent()
		}
	}()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for !app.shouldQuit {
		renderPending := false

		select {
		case ev := <-eventCh:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case <-ticker.C:
			if app.pollBackground() {
				renderPending = true
			}
		}

		if renderPending {
			app.renderer.Render(app.view())
		}
	}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		app.handleKey(ev)
		return true
	case *tcell.EventResize:
		app.screen.Sync()
		return true
	default:
		return false
	}
}

// pollBackground drains search and size results; reports whether the
// screen needs a redraw.
func (app *Application) pollBackground() bool {
	changed := app.sizes.Poll()
	if len(app.session.Poll()) > 0 {
		changed = true
		app.clampResultSelection()
	}
	return changed
}

func (app *Application) clampResultSelection() {
	n := len(app.session.Results())
	if app.resultSel >= n {
		app.resultSel = n - 1
	}
	if app.resultSel < 0 {
		app.resultSel = 0
	}
}

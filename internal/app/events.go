package app

import (
	"github.com/bethropolis/sprig/internal/config"
	"github.com/bethropolis/sprig/internal/event"
	"github.com/bethropolis/sprig/internal/logger"
)

// subscribe wires the app's own reactions to editor events.
func (a *App) subscribe() {
	a.eventManager.Subscribe(event.TypeSelectionChanged, a.handleSelectionChanged)
	a.eventManager.Subscribe(event.TypeDocumentLoaded, a.handleDocumentLoaded)
	a.eventManager.Subscribe(event.TypeDocumentSaved, a.handleDocumentSaved)
}

// handleSelectionChanged scrolls the selected node into view.
func (a *App) handleSelectionChanged(e event.Event) bool {
	loc, ok := a.editor.SelectedLocation()
	if !ok {
		return false
	}
	width, height := a.tuiManager.Size()
	rows := height - config.StatusBarHeight
	if width <= 0 || rows <= 0 {
		return false
	}
	r := a.editor.Engine().NodeRect(loc.Instance, loc.Node)
	a.viewport.EnsureVisible(r, width, rows)
	return false
}

// handleDocumentLoaded returns the view to the pane origin.
func (a *App) handleDocumentLoaded(e event.Event) bool {
	a.viewport.ScrollX, a.viewport.ScrollY = 0, 0
	if data, ok := e.Data.(event.DocumentLoadedData); ok {
		logger.DebugTagf("app", "Document loaded: %q", data.FilePath)
	}
	return false
}

func (a *App) handleDocumentSaved(e event.Event) bool {
	if data, ok := e.Data.(event.DocumentSavedData); ok {
		logger.DebugTagf("app", "Document saved: %q", data.FilePath)
	}
	return false
}

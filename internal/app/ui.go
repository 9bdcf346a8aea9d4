package app

import (
	"github.com/bethropolis/sprig/internal/config"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/statusbar"
	"github.com/bethropolis/sprig/internal/theme"
	"github.com/bethropolis/sprig/internal/tui"
)

// drawEditor clears the screen and redraws the diagram and status line.
func (a *App) drawEditor() {
	current := a.themeManager.Current()
	a.updateStatusBarContent(current)

	width, height := a.tuiManager.Size()
	logger.DebugTagf("draw", "drawEditor: screen %dx%d, scroll (%.0f, %.0f)",
		width, height, a.viewport.ScrollX, a.viewport.ScrollY)

	a.tuiManager.SetStyle(current.GetStyle(theme.StyleDefault))
	a.tuiManager.Clear()
	tui.DrawDocument(a.tuiManager, a.editor, a.viewport, current)
	a.statusBar.Draw(a.tuiManager.GetScreen(), width, height)
	a.tuiManager.Show()
}

// updateStatusBarContent pushes current editor state to the status bar.
func (a *App) updateStatusBarContent(current *theme.Theme) {
	a.statusBar.SetConfig(statusbar.ConfigFromTheme(current, config.MessageTimeout))

	doc := a.editor.Document()
	state := statusbar.State{
		FilePath: a.editor.FilePath(),
		Modified: a.editor.Modified(),
		Tool:     a.editor.Tool().String(),
		Trees:    len(doc),
		Nodes:    doc.NodeCount(),
		CanUndo:  a.editor.CanUndo(),
		CanRedo:  a.editor.CanRedo(),
	}
	if loc, ok := a.editor.SelectedLocation(); ok {
		state.Selection = loc.Node.Label
		if state.Selection == "" {
			state.Selection = loc.Node.Kind.String()
		}
	}
	if _, ok := a.editor.PendingMove(); ok {
		state.Pending = "pick a location"
	}
	a.statusBar.SetState(state)
}

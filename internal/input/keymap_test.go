package input

import (
	"testing"

	"github.com/bethropolis/sprig/internal/core"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestProcessEvent(t *testing.T) {
	p := NewInputProcessor()
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want ActionEvent
	}{
		{"arrow left selects parent", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), ActionEvent{Action: ActionSelectParent}},
		{"shift arrow scrolls", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift), ActionEvent{Action: ActionScrollUp}},
		{"ctrl+s saves", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), ActionEvent{Action: ActionSave}},
		{"ctrl+z undoes", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), ActionEvent{Action: ActionUndo}},
		{"enter applies", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), ActionEvent{Action: ActionApplyTool}},
		{"escape quits", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionEvent{Action: ActionQuit}},
		{"digit picks a formula tool", tcell.NewEventKey(tcell.KeyRune, '2', tcell.ModNone), ActionEvent{Action: ActionSelectTool, Tool: core.ToolAddFormula2}},
		{"capital T picks two terms", tcell.NewEventKey(tcell.KeyRune, 'T', tcell.ModShift), ActionEvent{Action: ActionSelectTool, Tool: core.ToolAddTerm2}},
		{"colon opens the command line", tcell.NewEventKey(tcell.KeyRune, ':', tcell.ModNone), ActionEvent{Action: ActionEnterCommandMode}},
		{"n repeats the search", tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone), ActionEvent{Action: ActionFindNext}},
		{"unbound rune", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), ActionEvent{Action: ActionUnknown}},
		{"alt rune is ignored", tcell.NewEventKey(tcell.KeyRune, 'y', tcell.ModAlt), ActionEvent{Action: ActionUnknown}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ProcessEvent(tt.ev))
		})
	}
}

func TestProcessPromptEvent(t *testing.T) {
	p := NewInputProcessor()

	// runes bound in normal mode are plain text in a prompt
	got := p.ProcessPromptEvent(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone))
	assert.Equal(t, ActionEvent{Action: ActionInsertRune, Rune: 'n'}, got)

	assert.Equal(t, ActionInsertNewLine, p.ProcessPromptEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)).Action)
	assert.Equal(t, ActionDeleteCharBackward, p.ProcessPromptEvent(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone)).Action)
	assert.Equal(t, ActionQuit, p.ProcessPromptEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)).Action)
	assert.Equal(t, ActionUnknown, p.ProcessPromptEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)).Action)
}

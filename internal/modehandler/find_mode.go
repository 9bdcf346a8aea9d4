package modehandler

import (
	"github.com/bethropolis/sprig/internal/input"
	"github.com/bethropolis/sprig/internal/logger"
)

func (mh *ModeHandler) enterFindMode() {
	mh.currentMode = ModeFind
	mh.findBuffer = ""
	mh.editor.Find().Clear()
	mh.statusBar.SetPrompt("/")
	logger.Debugf("ModeHandler: Entering Find Mode")
}

// handleActionFind handles actions when in ModeFind. Matches are
// highlighted as the pattern is typed.
func (mh *ModeHandler) handleActionFind(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionInsertRune:
		mh.findBuffer += string(actionEvent.Rune)

	case input.ActionDeleteCharBackward:
		if mh.findBuffer == "" {
			mh.cancelFindMode()
			return true
		}
		mh.findBuffer = trimLastRune(mh.findBuffer)

	case input.ActionInsertNewLine:
		term := mh.findBuffer
		mh.currentMode = ModeNormal
		mh.findBuffer = ""
		mh.statusBar.ClearPrompt()
		if term == "" {
			mh.editor.Find().Clear()
			return true
		}
		mh.lastSearchTerm = term
		if err := mh.editor.Find().SetPattern(term); err != nil {
			mh.statusBar.SetTemporaryMessage("Invalid pattern: %v", err)
			return true
		}
		mh.executeFind(true)
		return true

	case input.ActionQuit:
		mh.cancelFindMode()
		return true

	default:
		return false
	}

	// incremental highlight; a half-typed pattern may not compile yet
	if err := mh.editor.Find().SetPattern(mh.findBuffer); err != nil {
		mh.editor.Find().Clear()
	}
	mh.statusBar.SetPrompt("/" + mh.findBuffer)
	return true
}

// cancelFindMode leaves find mode without searching.
func (mh *ModeHandler) cancelFindMode() {
	mh.currentMode = ModeNormal
	mh.findBuffer = ""
	mh.editor.Find().Clear()
	mh.statusBar.ClearPrompt()
	logger.Debugf("ModeHandler: Canceled Find Mode")
}

// executeFind selects the next match in the given direction.
func (mh *ModeHandler) executeFind(forward bool) {
	if mh.lastSearchTerm == "" {
		mh.statusBar.SetTemporaryMessage("No previous search term")
		return
	}
	if !mh.editor.Find().Active() {
		if err := mh.editor.Find().SetPattern(mh.lastSearchTerm); err != nil {
			mh.statusBar.SetTemporaryMessage("Invalid pattern: %v", err)
			return
		}
	}
	if _, found := mh.editor.Find().Next(forward); !found {
		mh.statusBar.SetTemporaryMessage("Pattern not found: %s", mh.lastSearchTerm)
		return
	}
	mh.statusBar.SetTemporaryMessage("%d match(es) for '%s'", len(mh.editor.Find().Matches()), mh.lastSearchTerm)
}

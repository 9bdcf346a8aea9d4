package modehandler

import (
	"github.com/bethropolis/sprig/internal/input"
	"github.com/bethropolis/sprig/internal/logger"
)

// enterCommandMode opens the command line, optionally prefilled.
func (mh *ModeHandler) enterCommandMode(prefill string) {
	mh.currentMode = ModeCommand
	mh.cmdBuffer = prefill
	mh.statusBar.SetPrompt(":" + prefill)
	logger.Debugf("ModeHandler: Entering Command Mode")
}

func (mh *ModeHandler) leaveCommandMode() {
	mh.currentMode = ModeNormal
	mh.cmdBuffer = ""
	mh.statusBar.ClearPrompt()
}

// handleActionCommand handles actions when in ModeCommand.
func (mh *ModeHandler) handleActionCommand(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionInsertRune:
		mh.cmdBuffer += string(actionEvent.Rune)

	case input.ActionDeleteCharBackward:
		if mh.cmdBuffer == "" {
			mh.leaveCommandMode()
			logger.Debugf("ModeHandler: Exiting Command Mode via Backspace")
			return true
		}
		mh.cmdBuffer = trimLastRune(mh.cmdBuffer)

	case input.ActionInsertNewLine:
		line := mh.cmdBuffer
		mh.leaveCommandMode()
		mh.ExecuteCommand(line)
		return true

	case input.ActionQuit:
		mh.leaveCommandMode()
		logger.Debugf("ModeHandler: Canceled Command Mode via Escape")
		return true

	default:
		return false
	}

	mh.statusBar.SetPrompt(":" + mh.cmdBuffer)
	return true
}

// internal/input/action.go
package input

import "github.com/bethropolis/sprig/internal/core"

// Action represents a command or operation to be performed by the editor.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown   Action = iota
	ActionQuit             // Checks modified status first
	ActionForceQuit        // Quit without checking modified status
	ActionSave
	ActionUndo
	ActionRedo

	// --- Navigation (moves the selection through the diagram) ---
	ActionSelectParent
	ActionSelectChild
	ActionSelectPrevSibling
	ActionSelectNextSibling
	ActionSelectPrevTree
	ActionSelectNextTree
	ActionSelectHome

	// --- Viewport ---
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight

	// --- Editing ---
	ActionSelectTool   // Requires Tool argument
	ActionApplyTool    // Run the active tool on the selection
	ActionDeleteNode   // Delete the selection regardless of tool
	ActionYank         // Copy the selected subtree
	ActionPaste        // Paste onto the selection
	ActionEditLabel    // Open the command line prefilled with the label
	ActionEditConnector

	// --- Prompt editing (command and find modes) ---
	ActionInsertRune
	ActionInsertNewLine
	ActionDeleteCharBackward

	// --- Editor Mode ---
	ActionEnterCommandMode
	ActionEnterFindMode
	ActionFindNext
	ActionFindPrevious
)

// ActionEvent represents a decoded input event resulting in an action.
type ActionEvent struct {
	Action Action
	Rune   rune      // Used for ActionInsertRune
	Tool   core.Tool // Used for ActionSelectTool
}

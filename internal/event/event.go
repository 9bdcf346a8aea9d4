// internal/event/event.go
package event

import (
	"github.com/gdamore/tcell/v2"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Diagram events
	TypeDiagramModified  // A committed edit changed the document
	TypeHistoryChanged   // Undo/redo availability may have changed
	TypeToolChanged      // The active edit tool changed
	TypeSelectionChanged // The selected node changed
	TypeDocumentLoaded   // A document was loaded from disk
	TypeDocumentSaved    // The document was written to disk

	// Input events
	TypeKeyPressed // Raw key press forwarded for plugins

	// Application lifecycle
	TypeAppReady
	TypeAppQuit
)

// String names the type for logs.
func (t Type) String() string {
	switch t {
	case TypeDiagramModified:
		return "DiagramModified"
	case TypeHistoryChanged:
		return "HistoryChanged"
	case TypeToolChanged:
		return "ToolChanged"
	case TypeSelectionChanged:
		return "SelectionChanged"
	case TypeDocumentLoaded:
		return "DocumentLoaded"
	case TypeDocumentSaved:
		return "DocumentSaved"
	case TypeKeyPressed:
		return "KeyPressed"
	case TypeAppReady:
		return "AppReady"
	case TypeAppQuit:
		return "AppQuit"
	default:
		return "Unknown"
	}
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// --- Event payloads ---

// DiagramModifiedData names the operation that committed and the instances
// it touched (indices into the document after the edit; -1 when an instance
// was removed).
type DiagramModifiedData struct {
	Operation string
	Instances []int
}

// HistoryChangedData carries the new undo/redo availability.
type HistoryChangedData struct {
	CanUndo bool
	CanRedo bool
}

// ToolChangedData carries the tool name after a change.
type ToolChangedData struct {
	Tool string
}

// SelectionChangedData carries the selected node ID ("" when cleared).
type SelectionChangedData struct {
	NodeID string
}

// DocumentLoadedData contains the loaded file path.
type DocumentLoadedData struct {
	FilePath string
}

// DocumentSavedData contains the saved file path.
type DocumentSavedData struct {
	FilePath string
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// AppReadyData is empty for now.
type AppReadyData struct{}

// AppQuitData is empty for now.
type AppQuitData struct{}

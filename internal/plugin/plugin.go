// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/sprig/internal/event"
	"github.com/bethropolis/sprig/internal/tree"
)

// CommandFunc defines the signature for commands registered by plugins.
// It takes the words typed after the command name.
type CommandFunc func(args []string) error

// EditorAPI is the controlled surface plugins use to reach the editor.
type EditorAPI interface {
	// --- Document Access (read-only: callers get a deep copy) ---
	Document() tree.Document
	FilePath() string
	IsModified() bool
	SelectedNode() (tree.Location, bool)

	// --- Persistence ---
	// SaveDocument writes the document to path, or to its current file
	// when path is empty.
	SaveDocument(path string) error

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	// --- Configuration ---
	// PluginConfigValue reads a key from the plugin's own config section.
	PluginConfigValue(pluginName, key string) (interface{}, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded. Plugins
	// subscribe to events and register commands here.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}

// internal/app/editor_api.go
package app

import (
	"fmt"

	"github.com/bethropolis/sprig/internal/event"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/plugin"
	"github.com/bethropolis/sprig/internal/theme"
	"github.com/bethropolis/sprig/internal/tree"
)

// Ensure appEditorAPI implements the plugin.EditorAPI interface.
var _ plugin.EditorAPI = (*appEditorAPI)(nil)

// The theme command reports through the same adapter.
var _ theme.StatusSetter = (*appEditorAPI)(nil)

// appEditorAPI provides the concrete implementation of the EditorAPI interface.
type appEditorAPI struct {
	app *App
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Document Access ---

func (api *appEditorAPI) Document() tree.Document {
	return api.app.editor.Document().Clone()
}

func (api *appEditorAPI) FilePath() string {
	return api.app.editor.FilePath()
}

func (api *appEditorAPI) IsModified() bool {
	return api.app.editor.Modified()
}

// SelectedNode returns the selection resolved against a copy of the
// document, so plugins cannot edit the live tree through it.
func (api *appEditorAPI) SelectedNode() (tree.Location, bool) {
	id, ok := api.app.editor.Selected()
	if !ok {
		return tree.Location{}, false
	}
	return api.Document().Find(id)
}

// --- Persistence ---

func (api *appEditorAPI) SaveDocument(path string) error {
	return api.app.SaveDocument(path)
}

// --- Event Bus Interaction ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Command Registration ---

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if api.app == nil || api.app.GetModeHandler() == nil {
		logger.Errorf("appEditorAPI cannot register command '%s', app or modeHandler is nil", name)
		return fmt.Errorf("internal error: API cannot access command registration")
	}
	return api.app.GetModeHandler().RegisterCommand(name, cmdFunc)
}

// --- Status Bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
}

// --- Configuration ---

func (api *appEditorAPI) PluginConfigValue(pluginName, key string) (interface{}, bool) {
	return api.app.cfg.PluginValue(pluginName, key)
}

package autosave

import (
	"sync"

	"github.com/bethropolis/sprig/internal/event"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/plugin"
)

// Ensure AutoSave implements plugin.Plugin
var _ plugin.Plugin = (*AutoSave)(nil)

const (
	defaultEnabled = false
	defaultEvery   = 20
)

// AutoSave writes the diagram back to its file after every N committed
// edits. Documents without a file are never saved.
type AutoSave struct {
	api plugin.EditorAPI

	mutex   sync.Mutex // protects the fields below
	enabled bool
	every   int
	edits   int // committed edits since the last save or load
}

// New creates a new instance of the AutoSave plugin.
func New() plugin.Plugin {
	return &AutoSave{
		enabled: defaultEnabled,
		every:   defaultEvery,
	}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads the [plugins.autosave] table and subscribes to edits.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api
	pluginName := p.Name()

	p.mutex.Lock()
	if v, ok := api.PluginConfigValue(pluginName, "enabled"); ok {
		if b, isBool := v.(bool); isBool {
			p.enabled = b
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", pluginName, v, p.enabled)
		}
	}
	if v, ok := api.PluginConfigValue(pluginName, "every"); ok {
		if n, isInt := v.(int); isInt && n > 0 {
			p.every = n
		} else {
			logger.Warnf("%s: Invalid 'every' config (%v), using default (%d)", pluginName, v, p.every)
		}
	}
	enabled, every := p.enabled, p.every
	p.mutex.Unlock()

	api.SubscribeEvent(event.TypeDiagramModified, p.onModified)
	api.SubscribeEvent(event.TypeDocumentSaved, p.onReset)
	api.SubscribeEvent(event.TypeDocumentLoaded, p.onReset)

	if err := api.RegisterCommand("autosave", p.toggleCommand); err != nil {
		return err
	}

	logger.Infof("%s initialized. Enabled: %v, every %d edits", pluginName, enabled, every)
	return nil
}

// Shutdown has nothing to release; saving happens on the editor goroutine.
func (p *AutoSave) Shutdown() error {
	return nil
}

func (p *AutoSave) onModified(e event.Event) bool {
	p.mutex.Lock()
	p.edits++
	due := p.enabled && p.edits >= p.every
	p.mutex.Unlock()

	if due {
		p.saveIfModified()
	}
	return false
}

func (p *AutoSave) onReset(e event.Event) bool {
	p.mutex.Lock()
	p.edits = 0
	p.mutex.Unlock()
	return false
}

// saveIfModified saves to the current file when there is one and it has
// unsaved changes. A successful save resets the edit count through the
// DocumentSaved event.
func (p *AutoSave) saveIfModified() {
	path := p.api.FilePath()
	if path == "" || !p.api.IsModified() {
		return
	}
	logger.Debugf("%s: Saving %s", p.Name(), path)
	if err := p.api.SaveDocument(""); err != nil {
		logger.Errorf("%s: Failed to save %s: %v", p.Name(), path, err)
		p.api.SetStatusMessage("Autosave FAILED: %v", err)
		return
	}
	p.api.SetStatusMessage("Autosaved %s", path)
}

// toggleCommand implements ":autosave [on|off]".
func (p *AutoSave) toggleCommand(args []string) error {
	p.mutex.Lock()
	switch {
	case len(args) == 0:
		p.enabled = !p.enabled
	case args[0] == "on":
		p.enabled = true
	case args[0] == "off":
		p.enabled = false
	}
	enabled, every := p.enabled, p.every
	p.mutex.Unlock()

	if enabled {
		p.api.SetStatusMessage("Autosave on (every %d edits)", every)
	} else {
		p.api.SetStatusMessage("Autosave off")
	}
	return nil
}

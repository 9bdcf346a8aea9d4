// internal/app/app.go
package app

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/bethropolis/sprig/internal/config"
	"github.com/bethropolis/sprig/internal/core"
	"github.com/bethropolis/sprig/internal/event"
	"github.com/bethropolis/sprig/internal/input"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/measure"
	"github.com/bethropolis/sprig/internal/modehandler"
	"github.com/bethropolis/sprig/internal/plugin"
	"github.com/bethropolis/sprig/internal/statusbar"
	"github.com/bethropolis/sprig/internal/store"
	"github.com/bethropolis/sprig/internal/theme"
	"github.com/bethropolis/sprig/internal/tree"
	"github.com/bethropolis/sprig/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// Options configures NewApp.
type Options struct {
	Config    *config.Config
	FilePath  string
	ThemesDir string       // "" skips loading theme files
	Screen    tcell.Screen // nil opens the terminal
}

// App encapsulates the core components and main loop of the editor. All
// editing happens on the goroutine running Run; the terminal poller only
// forwards events to it.
type App struct {
	cfg           *config.Config
	tuiManager    *tui.TUI
	editor        *core.Editor
	viewport      *tui.Viewport
	hitTester     *tui.HitTester
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	modeHandler   *modehandler.ModeHandler
	themeManager  *theme.Manager
	editorAPI     plugin.EditorAPI

	quit        chan struct{}
	events      chan tcell.Event
	lastButtons tcell.ButtonMask
}

// NewApp creates and initializes a new application instance.
func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	themeManager := theme.NewManager(opts.ThemesDir, cfg.View.Theme)
	defStyle := themeManager.Current().GetStyle(theme.StyleDefault)

	var (
		tuiManager *tui.TUI
		err        error
	)
	if opts.Screen != nil {
		tuiManager, err = tui.NewWithScreen(opts.Screen, defStyle)
	} else {
		tuiManager, err = tui.New(defStyle)
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	editor := core.NewEditor(core.Options{
		Metrics:         cfg.Layout,
		Measurer:        measure.NewCells(cfg.View.CellWidth),
		HistoryCapacity: cfg.History.Capacity,
		SystemClipboard: cfg.Editor.SystemClipboard,
		KeepLastNode:    cfg.Editor.KeepLastNode,
	})
	hitTester := tui.NewHitTester(editor.Engine())
	editor.SetHitTester(hitTester)

	eventManager := event.NewManager()
	editor.SetEventManager(eventManager)
	statusBar := statusbar.New(statusbar.ConfigFromTheme(themeManager.Current(), config.MessageTimeout))
	quitChan := make(chan struct{})

	a := &App{
		cfg:           cfg,
		tuiManager:    tuiManager,
		editor:        editor,
		viewport:      tui.NewViewport(cfg.View.CellWidth, cfg.View.CellHeight),
		hitTester:     hitTester,
		statusBar:     statusBar,
		eventManager:  eventManager,
		pluginManager: plugin.NewManager(),
		themeManager:  themeManager,
		quit:          quitChan,
		events:        make(chan tcell.Event, 16),
	}

	a.modeHandler = modehandler.New(modehandler.Config{
		Editor:         editor,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   eventManager,
		StatusBar:      statusBar,
		Scroller:       a.viewport,
		Saver:          a,
		QuitSignal:     quitChan,
	})
	a.editorAPI = newEditorAPI(a)

	a.subscribe()
	registerAppCommands(a)
	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	if failed := a.pluginManager.InitializePlugins(a.editorAPI); len(failed) > 0 {
		statusBar.SetTemporaryMessage("Plugins failed to start: %v", failed)
	}

	if err := a.OpenDocument(opts.FilePath); err != nil {
		tuiManager.Close()
		return nil, err
	}
	return a, nil
}

// OpenDocument loads path into the editor. An empty path or a file that
// does not exist yet starts a diagram with one empty tree.
func (a *App) OpenDocument(path string) error {
	doc := tree.Document{tree.NewInstance(tree.Point{})}
	if path != "" {
		loaded, err := store.Load(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Infof("App: %s does not exist yet, starting a new diagram", path)
		case err != nil:
			return err
		case len(loaded) > 0:
			doc = loaded
		}
	}
	a.editor.Load(doc, path)
	return nil
}

// SaveDocument writes the document to path, or to the current file when
// path is empty.
func (a *App) SaveDocument(path string) error {
	if path == "" {
		path = a.editor.FilePath()
	}
	if path == "" {
		return errors.New("no file name (use :w <path>)")
	}
	if err := store.Save(path, a.editor.Document()); err != nil {
		return err
	}
	a.editor.MarkSaved(path)
	logger.Infof("App: saved %s", path)
	return nil
}

// Run starts the main loop and blocks until the user quits.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.pluginManager.ShutdownPlugins()

	go a.pollEvents()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("sprig - ':' commands | Ctrl+S save | ESC quit")
	a.drawEditor()

	// repaint now and then so temporary messages expire on an idle screen
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.editor.Modified() {
				logger.Warnf("App: exited with unsaved changes")
			}
			logger.Infof("Exiting application.")
			return nil
		case ev, ok := <-a.events:
			if !ok {
				return nil
			}
			if a.handleEvent(ev) {
				a.drawEditor()
			}
		case <-ticker.C:
			a.drawEditor()
		}
	}
}

// pollEvents forwards terminal events to Run.
func (a *App) pollEvents() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			close(a.events)
			return
		}
		select {
		case a.events <- ev:
		case <-a.quit:
			return
		}
	}
}

// handleEvent applies one terminal event and reports whether to redraw.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.GetScreen().Sync()
		return true
	case *tcell.EventKey:
		return a.modeHandler.HandleKeyEvent(e)
	case *tcell.EventMouse:
		return a.handleMouse(e)
	}
	return false
}

// GetModeHandler gives the API adapter access to command registration.
func (a *App) GetModeHandler() *modehandler.ModeHandler {
	return a.modeHandler
}

// Editor returns the diagram editor.
func (a *App) Editor() *core.Editor {
	return a.editor
}

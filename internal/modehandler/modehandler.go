// internal/modehandler/modehandler.go
package modehandler

import (
	"fmt"
	"strings"

	"github.com/bethropolis/sprig/internal/core"
	"github.com/bethropolis/sprig/internal/event"
	"github.com/bethropolis/sprig/internal/input"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/plugin"
	"github.com/bethropolis/sprig/internal/statusbar"
	"github.com/gdamore/tcell/v2"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
	ModeFind
)

func (m InputMode) String() string {
	switch m {
	case ModeCommand:
		return "COMMAND"
	case ModeFind:
		return "FIND"
	default:
		return "NORMAL"
	}
}

// Scroller moves the diagram view by whole cells.
type Scroller interface {
	Scroll(dCols, dRows int)
}

// Saver writes the document; an empty path means its current file.
type Saver interface {
	SaveDocument(path string) error
}

// ModeHandler manages input modes, command execution, and related state.
type ModeHandler struct {
	editor         *core.Editor
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	scroller       Scroller
	saver          Saver
	quitSignal     chan<- struct{}

	currentMode      InputMode
	cmdBuffer        string
	findBuffer       string
	lastSearchTerm   string
	commands         map[string]plugin.CommandFunc
	forceQuitPending bool
	quitting         bool
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Editor         *core.Editor
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	Scroller       Scroller
	Saver          Saver
	QuitSignal     chan<- struct{}
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.EventManager == nil || cfg.StatusBar == nil ||
		cfg.Scroller == nil || cfg.Saver == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	return &ModeHandler{
		editor:         cfg.Editor,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		scroller:       cfg.Scroller,
		saver:          cfg.Saver,
		quitSignal:     cfg.QuitSignal,
		currentMode:    ModeNormal,
		commands:       make(map[string]plugin.CommandFunc),
	}
}

// HandleKeyEvent routes a key by mode. It returns true when the screen
// needs redrawing.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	mh.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})

	switch mh.currentMode {
	case ModeNormal:
		return mh.executeAction(mh.inputProcessor.ProcessEvent(ev))
	case ModeCommand:
		return mh.handleActionCommand(mh.inputProcessor.ProcessPromptEvent(ev))
	case ModeFind:
		return mh.handleActionFind(mh.inputProcessor.ProcessPromptEvent(ev))
	default:
		logger.Warnf("ModeHandler: Unknown input mode: %v", mh.currentMode)
		return false
	}
}

// RegisterCommand adds a command to the registry. Called via EditorAPI.
func (mh *ModeHandler) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, exists := mh.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	mh.commands[name] = cmdFunc
	logger.Debugf("ModeHandler: Registered command ':%s'", name)
	return nil
}

// Commands lists registered command names.
func (mh *ModeHandler) Commands() []string {
	names := make([]string, 0, len(mh.commands))
	for name := range mh.commands {
		names = append(names, name)
	}
	return names
}

// ExecuteCommand runs a command line without the leading ':'.
func (mh *ModeHandler) ExecuteCommand(line string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return
	}
	name, args := parts[0], parts[1:]
	cmdFunc, exists := mh.commands[name]
	if !exists {
		mh.statusBar.SetTemporaryMessage("Unknown command: %s", name)
		return
	}
	logger.Debugf("ModeHandler: Executing command ':%s' with args %v", name, args)
	if err := cmdFunc(args); err != nil {
		mh.statusBar.SetTemporaryMessage("Error executing command '%s': %v", name, err)
	}
}

// Quit asks the app to exit. Unless force is set, a modified document
// needs a second request.
func (mh *ModeHandler) Quit(force bool) {
	if !force && mh.editor.Modified() && !mh.forceQuitPending {
		mh.statusBar.SetTemporaryMessage("Unsaved changes! Press ESC again or Ctrl+Q to force quit.")
		mh.forceQuitPending = true
		return
	}
	if mh.quitting {
		return
	}
	mh.quitting = true
	close(mh.quitSignal)
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCommandBuffer returns the command line being typed.
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return mh.cmdBuffer
	}
	return ""
}

// GetFindBuffer returns the search pattern being typed.
func (mh *ModeHandler) GetFindBuffer() string {
	if mh.currentMode == ModeFind {
		return mh.findBuffer
	}
	return ""
}

// trimLastRune drops the final rune, not the final byte.
func trimLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}

// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bethropolis/sprig/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleModified  tcell.Style
	StyleMessage   tcell.Style
	StylePrompt    tcell.Style
	StyleTool      tcell.Style
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleModified:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlue).Bold(true),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		StylePrompt:    tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlue).Bold(true),
		StyleTool:      tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// ConfigFromTheme takes the status bar styles from a theme.
func ConfigFromTheme(t *theme.Theme, timeout time.Duration) Config {
	return Config{
		StyleDefault:   t.GetStyle(theme.StyleStatusBar),
		StyleModified:  t.GetStyle(theme.StyleStatusBarModified),
		StyleMessage:   t.GetStyle(theme.StyleStatusBarMessage),
		StylePrompt:    t.GetStyle(theme.StyleStatusBarFind),
		StyleTool:      t.GetStyle(theme.StyleStatusBarTool),
		MessageTimeout: timeout,
	}
}

// State is the editor state summarised on the status line.
type State struct {
	FilePath  string
	Modified  bool
	Tool      string
	Selection string // label or kind of the selected node, "" for none
	Trees     int
	Nodes     int
	CanUndo   bool
	CanRedo   bool
	Pending   string // note about a half-finished gesture
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	state  State
	prompt string // shown while the command or find line is open

	tempMessage     string
	tempMessageTime time.Time
	now             func() time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config, now: time.Now}
}

// SetConfig swaps styles, e.g. after a theme change.
func (sb *StatusBar) SetConfig(config Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

// SetState replaces the summarised editor state.
func (sb *StatusBar) SetState(s State) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.state = s
}

// SetPrompt shows text until ClearPrompt; it does not expire.
func (sb *StatusBar) SetPrompt(text string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.prompt = text
}

// ClearPrompt removes the prompt line.
func (sb *StatusBar) ClearPrompt() {
	sb.SetPrompt("")
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

func (sb *StatusBar) defaultText() string {
	s := sb.state
	var b strings.Builder
	if s.FilePath == "" {
		b.WriteString("[No Name]")
	} else {
		b.WriteString(s.FilePath)
	}
	if s.Modified {
		b.WriteString(" [Modified]")
	}
	fmt.Fprintf(&b, " -- %s", s.Tool)
	if s.Pending != "" {
		fmt.Fprintf(&b, " (%s)", s.Pending)
	}
	if s.Selection != "" {
		fmt.Fprintf(&b, " -- sel: %s", s.Selection)
	}
	fmt.Fprintf(&b, " -- %d trees, %d nodes", s.Trees, s.Nodes)
	if s.CanUndo {
		b.WriteString(" [undo]")
	}
	if s.CanRedo {
		b.WriteString(" [redo]")
	}
	return b.String()
}

// Text returns what the bar shows now and the style to draw it in. Expired
// temporary messages are dropped as a side effect.
func (sb *StatusBar) Text() (string, tcell.Style) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.prompt != "" {
		return sb.prompt, sb.config.StylePrompt
	}
	if !sb.tempMessageTime.IsZero() {
		if sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout {
			return sb.tempMessage, sb.config.StyleMessage
		}
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	if sb.state.Modified {
		return sb.defaultText(), sb.config.StyleModified
	}
	return sb.defaultText(), sb.config.StyleDefault
}

// Draw renders the status bar on the last screen row.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1
	text, style := sb.Text()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	x := 0
	for gr.Next() {
		w := gr.Width()
		if x+w > width {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += w
	}
}

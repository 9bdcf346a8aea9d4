// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/sprig/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names used by the diagram view and status bar. A dotted name falls
// back to its base ("Node.Term" -> "Node") and then to "Default".
const (
	StyleDefault           = "Default"
	StyleNode              = "Node"
	StyleNodeTerm          = "Node.Term"
	StyleConnector         = "Connector"
	StyleBracket           = "Bracket"
	StyleIndefinite        = "Indefinite"
	StyleAnnotation        = "Annotation"
	StyleSelected          = "Selected"
	StyleMatch             = "Match"
	StylePendingMove       = "PendingMove"
	StyleStatusBar         = "StatusBar"
	StyleStatusBarModified = "StatusBarModified"
	StyleStatusBarMessage  = "StatusBarMessage"
	StyleStatusBarFind     = "StatusBarFind"
	StyleStatusBarTool     = "StatusBarTool"
)

// Theme is a named set of styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves name, falling back to its base name and then Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// SprigDark is the built-in dark theme.
var SprigDark = func() Theme {
	bg := tcell.NewHexColor(0x2a2f38)
	fg := tcell.NewHexColor(0xc5cdd9)
	muted := tcell.NewHexColor(0x5c6370)
	orange := tcell.NewHexColor(0xd19a66)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	cyan := tcell.NewHexColor(0x56b6c2)
	blue := tcell.NewHexColor(0x61afef)
	magenta := tcell.NewHexColor(0xc678dd)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fg)
	return Theme{
		Name:   "Sprig Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:     base,
			StyleNode:        base,
			StyleNodeTerm:    base.Foreground(cyan),
			StyleConnector:   base.Foreground(blue).Bold(true),
			StyleBracket:     base.Foreground(muted),
			StyleIndefinite:  base.Foreground(muted).Italic(true),
			StyleAnnotation:  base.Foreground(magenta).Bold(true),
			StyleSelected:    base.Reverse(true),
			StyleMatch:       tcell.StyleDefault.Background(orange).Foreground(tcell.ColorBlack),
			StylePendingMove: base.Foreground(yellow).Underline(true),

			StyleStatusBar:         tcell.StyleDefault.Background(bg).Foreground(fg),
			StyleStatusBarModified: tcell.StyleDefault.Background(bg).Foreground(yellow),
			StyleStatusBarMessage:  tcell.StyleDefault.Background(bg).Foreground(fg).Bold(true),
			StyleStatusBarFind:     tcell.StyleDefault.Background(bg).Foreground(green).Bold(true),
			StyleStatusBarTool:     tcell.StyleDefault.Background(bg).Foreground(cyan).Bold(true),
		},
	}
}()

// SprigLight is the built-in light theme.
var SprigLight = func() Theme {
	bg := tcell.NewHexColor(0xe5e9f0)
	fg := tcell.NewHexColor(0x2e3440)
	muted := tcell.NewHexColor(0x8a8f98)
	teal := tcell.NewHexColor(0x0e7c86)
	blue := tcell.NewHexColor(0x2f6fb3)
	purple := tcell.NewHexColor(0x8839a1)
	amber := tcell.NewHexColor(0xf0b429)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fg)
	return Theme{
		Name: "Sprig Light",
		Styles: map[string]tcell.Style{
			StyleDefault:     base,
			StyleNodeTerm:    base.Foreground(teal),
			StyleConnector:   base.Foreground(blue).Bold(true),
			StyleBracket:     base.Foreground(muted),
			StyleIndefinite:  base.Foreground(muted).Italic(true),
			StyleAnnotation:  base.Foreground(purple).Bold(true),
			StyleSelected:    base.Reverse(true),
			StyleMatch:       tcell.StyleDefault.Background(amber).Foreground(tcell.ColorBlack),
			StylePendingMove: base.Underline(true),

			StyleStatusBar:         tcell.StyleDefault.Background(bg).Foreground(fg),
			StyleStatusBarModified: tcell.StyleDefault.Background(bg).Foreground(purple),
			StyleStatusBarMessage:  tcell.StyleDefault.Background(bg).Foreground(fg).Bold(true),
			StyleStatusBarFind:     tcell.StyleDefault.Background(bg).Foreground(teal).Bold(true),
			StyleStatusBarTool:     tcell.StyleDefault.Background(bg).Foreground(blue).Bold(true),
		},
	}
}()

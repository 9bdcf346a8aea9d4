// internal/theme/loader.go
package theme

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// styleDef is one [styles.<Name>] table. Pointers tell unset from false.
type styleDef struct {
	Fg        *string `toml:"fg"`
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
}

type themeFile struct {
	Name   string              `toml:"name"`
	IsDark bool                `toml:"is_dark"`
	Styles map[string]styleDef `toml:"styles"`
}

// LoadThemeFromFile parses a TOML theme file. A missing name falls back to
// the file name.
func LoadThemeFromFile(filePath string) (*Theme, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file '%s': %w", filePath, err)
	}
	defer f.Close()

	t, err := DecodeTheme(f)
	if err != nil {
		return nil, fmt.Errorf("theme file '%s': %w", filePath, err)
	}
	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}
	return t, nil
}

// DecodeTheme reads a theme from TOML. Styles inherit unset attributes from
// the file's Default style; a style that fails to parse is skipped.
func DecodeTheme(r io.Reader) (*Theme, error) {
	var tf themeFile
	metadata, err := toml.NewDecoder(r).Decode(&tf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML theme: %w", err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Theme '%s': Unrecognized keys: %v", tf.Name, undecoded)
	}

	t := &Theme{
		Name:   tf.Name,
		IsDark: tf.IsDark,
		Styles: make(map[string]tcell.Style),
	}

	base := tcell.StyleDefault
	if def, ok := tf.Styles[StyleDefault]; ok {
		if base, err = convertStyle(def, tcell.StyleDefault); err != nil {
			logger.Warnf("Theme '%s': Failed to parse 'Default' style, using tcell default as base: %v", t.Name, err)
			base = tcell.StyleDefault
		}
	}
	t.Styles[StyleDefault] = base

	for name, def := range tf.Styles {
		if name == StyleDefault {
			continue
		}
		style, err := convertStyle(def, base)
		if err != nil {
			logger.Warnf("Theme '%s': Failed to parse style '%s', skipping: %v", t.Name, name, err)
			continue
		}
		t.Styles[name] = style
	}
	return t, nil
}

func convertStyle(def styleDef, base tcell.Style) (tcell.Style, error) {
	style := base
	if def.Fg != nil {
		color, err := parseColor(*def.Fg)
		if err != nil {
			return style, fmt.Errorf("invalid foreground color '%s': %w", *def.Fg, err)
		}
		style = style.Foreground(color)
	}
	if def.Bg != nil {
		color, err := parseColor(*def.Bg)
		if err != nil {
			return style, fmt.Errorf("invalid background color '%s': %w", *def.Bg, err)
		}
		style = style.Background(color)
	}
	if def.Bold != nil {
		style = style.Bold(*def.Bold)
	}
	if def.Italic != nil {
		style = style.Italic(*def.Italic)
	}
	if def.Underline != nil {
		style = style.Underline(*def.Underline)
	}
	if def.Reverse != nil {
		style = style.Reverse(*def.Reverse)
	}
	return style, nil
}

// parseColor accepts #RRGGBB, "reset", "default" or a W3C color name.
func parseColor(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "#"):
		if len(s) != 7 {
			return tcell.ColorDefault, fmt.Errorf("invalid hex color format '%s', must be #RRGGBB", s)
		}
		val, err := strconv.ParseInt(s[1:], 16, 32)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid hex value '%s': %w", s, err)
		}
		return tcell.NewHexColor(int32(val)), nil
	case s == "reset":
		return tcell.ColorReset, nil
	case s == "default":
		return tcell.ColorDefault, nil
	}
	if c, ok := tcell.ColorNames[s]; ok {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color format or name '%s'", s)
}

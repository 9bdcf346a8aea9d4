// internal/theme/manager.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/sprig/internal/logger"
)

// Manager holds loaded themes and the active one. Names are matched
// case-insensitively.
type Manager struct {
	mu          sync.RWMutex
	themes      map[string]*Theme
	activeTheme *Theme
	themesDir   string
}

// NewManager loads the built-in themes plus any *.toml files in themesDir
// (skipped when empty), then activates initial, falling back to the
// built-in dark theme.
func NewManager(themesDir, initial string) *Manager {
	m := &Manager{
		themes:    make(map[string]*Theme),
		themesDir: themesDir,
	}
	for _, t := range []*Theme{&SprigDark, &SprigLight} {
		m.themes[strings.ToLower(t.Name)] = t
	}

	if themesDir != "" {
		if err := m.LoadThemesFromDir(); err != nil {
			logger.Errorf("Error loading themes from '%s': %v", themesDir, err)
		}
	}

	m.activeTheme = &SprigDark
	if initial != "" {
		if err := m.SetTheme(initial); err != nil {
			logger.Warnf("Theme Manager: %v, using '%s'", err, SprigDark.Name)
		}
	}
	logger.Infof("Initial active theme set to: %s", m.activeTheme.Name)
	return m
}

// LoadThemesFromDir scans the themes directory and loads .toml files. A
// missing directory is not an error.
func (m *Manager) LoadThemesFromDir() error {
	files, err := os.ReadDir(m.themesDir)
	if os.IsNotExist(err) {
		logger.Debugf("Theme directory '%s' does not exist. No custom themes loaded.", m.themesDir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read theme directory '%s': %w", m.themesDir, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	loaded := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".toml") {
			continue
		}
		path := filepath.Join(m.themesDir, file.Name())
		t, err := LoadThemeFromFile(path)
		if err != nil {
			logger.Warnf("Failed to load theme from '%s': %v", path, err)
			continue
		}
		key := strings.ToLower(t.Name)
		if existing, ok := m.themes[key]; ok {
			logger.Warnf("Theme '%s' from '%s' overrides existing theme '%s'", t.Name, path, existing.Name)
		}
		m.themes[key] = t
		loaded++
	}
	logger.Infof("Loaded %d custom themes.", loaded)
	return nil
}

// Current returns the active theme.
func (m *Manager) Current() *Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeTheme
}

// SetTheme activates a theme by name.
func (m *Manager) SetTheme(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}
	if m.activeTheme != t {
		m.activeTheme = t
		logger.Infof("Active theme set to: %s", t.Name)
	}
	return nil
}

// ListThemes returns the sorted names of all loaded themes.
func (m *Manager) ListThemes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.themes))
	for _, t := range m.themes {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

// GetTheme returns a theme by name.
func (m *Manager) GetTheme(name string) (*Theme, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.themes[strings.ToLower(name)]
	return t, ok
}

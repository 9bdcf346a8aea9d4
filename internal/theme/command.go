package theme

import "strings"

// StatusSetter is the part of the editor API the theme command reports to.
type StatusSetter interface {
	SetStatusMessage(format string, args ...interface{})
}

// Command returns the ":theme [name]" handler. Without an argument it lists
// the available themes.
func Command(m *Manager, status StatusSetter) func(args []string) error {
	return func(args []string) error {
		if len(args) == 0 {
			status.SetStatusMessage("Themes: %s (active: %s)", strings.Join(m.ListThemes(), ", "), m.Current().Name)
			return nil
		}
		name := strings.Join(args, " ")
		if err := m.SetTheme(name); err != nil {
			return err
		}
		status.SetStatusMessage("Theme: %s", m.Current().Name)
		return nil
	}
}

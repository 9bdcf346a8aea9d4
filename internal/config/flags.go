// internal/config/flags.go
package config

import (
	"fmt"
	"strings"

	"github.com/bethropolis/sprig/internal/logger"
	"github.com/spf13/pflag"
)

// Flags holds values bound to command-line flags. Only flags the user set
// (pflag's Changed) override the configuration.
type Flags struct {
	fs *pflag.FlagSet

	ConfigFilePath  string
	LogLevel        string
	LogFilePath     string
	EnableTags      []string
	DisableTags     []string
	EnablePkgs      []string
	DisablePkgs     []string
	HistoryCapacity int
	SystemClipboard bool
	Autosave        bool
	AutosaveEvery   int
}

// Register defines the flags on fs and remembers it for ApplyOverrides.
func (f *Flags) Register(fs *pflag.FlagSet) {
	f.fs = fs
	fs.StringVar(&f.ConfigFilePath, "config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	fs.StringVar(&f.LogLevel, "loglevel", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFilePath, "logfile", "", "Path to write log file (use '-' for stderr)")
	fs.StringSliceVar(&f.EnableTags, "log-tags", nil, "Tags to enable")
	fs.StringSliceVar(&f.DisableTags, "log-disable-tags", nil, "Tags to disable")
	fs.StringSliceVar(&f.EnablePkgs, "log-packages", nil, "Packages to enable")
	fs.StringSliceVar(&f.DisablePkgs, "log-disable-packages", nil, "Packages to disable")
	fs.IntVar(&f.HistoryCapacity, "history", DefaultHistoryCapacity, "Number of undo steps to keep")
	fs.BoolVar(&f.SystemClipboard, "system-clipboard", SystemClipboard, "Copy yanked subtrees to the system clipboard as an outline")
	fs.BoolVar(&f.Autosave, "autosave", false, "Save the diagram automatically while editing")
	fs.IntVar(&f.AutosaveEvery, "autosave-every", DefaultAutosaveEvery, "Committed edits between autosaves")
}

// ApplyOverrides updates cfg with the flags that were set on the command line.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.fs == nil {
		return
	}
	f.fs.Visit(func(fl *pflag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s=%s", fl.Name, fl.Value.String())
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != "" {
				cfg.Logger.LogLevel = strings.ToLower(f.LogLevel)
			}
		case "logfile":
			cfg.Logger.LogFilePath = f.LogFilePath
		case "log-tags":
			cfg.Logger.EnabledTags = f.EnableTags
		case "log-disable-tags":
			cfg.Logger.DisabledTags = f.DisableTags
		case "log-packages":
			cfg.Logger.EnabledPackages = f.EnablePkgs
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = f.DisablePkgs
		case "history":
			cfg.History.Capacity = f.HistoryCapacity
		case "system-clipboard":
			cfg.Editor.SystemClipboard = f.SystemClipboard
		case "autosave":
			cfg.Plugins.Autosave.Enabled = f.Autosave
		case "autosave-every":
			cfg.Plugins.Autosave.Every = f.AutosaveEvery
		}
	})
}

// Changed reports whether the named flag was set on the command line.
func (f *Flags) Changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

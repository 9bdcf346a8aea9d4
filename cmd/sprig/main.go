// cmd/sprig/main.go
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bethropolis/sprig/internal/app"
	"github.com/bethropolis/sprig/internal/config"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	flags    config.Flags
	cfg      *config.Config
	closeLog = func() error { return nil }

	rootCmd = &cobra.Command{
		Use:   "sprig [file]",
		Short: "A terminal editor for branching tree diagrams",
		Long: `sprig edits horizontal tree diagrams in the terminal. Diagrams are
stored as TOML or YAML, chosen by file extension.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runEditor,
	}
)

func main() {
	defer func() { _ = closeLog() }()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sprig: %v\n", err)
		_ = closeLog()
		os.Exit(1)
	}
}

func init() {
	flags.Register(rootCmd.PersistentFlags())
	rootCmd.PersistentPreRunE = setup
	rootCmd.AddCommand(layoutCmd, checkCmd, convertCmd)
}

// setup loads the configuration and starts logging. The editor logs to a
// file only, since stderr is the screen it draws on.
func setup(cmd *cobra.Command, args []string) error {
	var (
		warnings []string
		err      error
	)
	cfg, warnings, err = config.LoadConfig(flags.ConfigFilePath, &flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sprig: %v (using defaults)\n", err)
	}

	var out io.Writer
	path := cfg.Logger.LogFilePath
	if path != "" || cmd != rootCmd {
		out, closeLog, err = logger.OpenOutput(path)
		if err != nil {
			return err
		}
	}
	logger.Init(cfg.Logger, out)
	for _, w := range warnings {
		logger.Warnf("Config: %s", w)
	}
	return nil
}

func runEditor(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("the editor needs a terminal; see 'sprig layout' for scripted use")
	}

	var filePath string
	if len(args) > 0 {
		filePath = args[0]
		logger.Debugf("File path specified: %s", filePath)
	} else {
		logger.Debugf("No file specified, starting empty.")
	}

	logger.Infof("Starting sprig...")
	sprigApp, err := app.NewApp(app.Options{
		Config:    cfg,
		FilePath:  filePath,
		ThemesDir: themesDir(),
	})
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		return err
	}
	if err := sprigApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		return err
	}
	logger.Infof("sprig finished.")
	return nil
}

// themesDir is ~/.config/sprig/themes, or "" when there is no config dir.
func themesDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, config.ConfigDirName, config.ThemesDirName)
}

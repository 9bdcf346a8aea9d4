package app

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bethropolis/sprig/internal/core"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/modehandler"
	"github.com/bethropolis/sprig/internal/plugin"
	"github.com/bethropolis/sprig/internal/theme"
)

var errNoSelection = errors.New("nothing selected")

// registerAppCommands registers the built-in ':' commands.
func registerAppCommands(app *App) {
	api := app.editorAPI
	ed := app.editor

	write := func(args []string) error {
		if err := app.SaveDocument(strings.Join(args, " ")); err != nil {
			return err
		}
		api.SetStatusMessage("Saved to %s", ed.FilePath())
		return nil
	}

	edit := func(force bool) plugin.CommandFunc {
		return func(args []string) error {
			if len(args) == 0 {
				return errors.New("usage: e <path>")
			}
			if ed.Modified() && !force {
				return errors.New("no write since last change (use :e! to discard)")
			}
			path := strings.Join(args, " ")
			if err := app.OpenDocument(path); err != nil {
				return err
			}
			api.SetStatusMessage("Opened %s", path)
			return nil
		}
	}

	commands := map[string]plugin.CommandFunc{
		"w": write,
		"wq": func(args []string) error {
			if err := write(args); err != nil {
				return err
			}
			app.modeHandler.Quit(true)
			return nil
		},
		"q": func(args []string) error {
			if ed.Modified() {
				return errors.New("no write since last change (use :q! to discard)")
			}
			app.modeHandler.Quit(true)
			return nil
		},
		"q!": func(args []string) error {
			app.modeHandler.Quit(true)
			return nil
		},
		"e":  edit(false),
		"e!": edit(true),
		"label": func(args []string) error {
			id, ok := ed.Selected()
			if !ok {
				return errNoSelection
			}
			ed.SetLabel(id, strings.Join(args, " "))
			return nil
		},
		"connector": func(args []string) error {
			id, ok := ed.Selected()
			if !ok {
				return errNoSelection
			}
			ed.SetConnector(id, strings.Join(args, " "))
			return nil
		},
		"tool": func(args []string) error {
			if len(args) == 0 {
				names := make([]string, 0, len(core.Tools()))
				for _, t := range core.Tools() {
					names = append(names, t.String())
				}
				api.SetStatusMessage("Tool: %s (available: %s)", ed.Tool(), strings.Join(names, ", "))
				return nil
			}
			t, ok := core.ParseTool(args[0])
			if !ok {
				return fmt.Errorf("unknown tool %q", args[0])
			}
			ed.SelectTool(t)
			return nil
		},
		"new": func(args []string) error {
			id, ok := ed.NewTree(modehandler.NextTreeOffset(ed))
			if ok {
				ed.Select(id)
			}
			return nil
		},
		"theme": theme.Command(app.themeManager, api),
		"themes": func(args []string) error {
			api.SetStatusMessage("Themes: %s", strings.Join(app.themeManager.ListThemes(), ", "))
			return nil
		},
		"help": func(args []string) error {
			names := app.modeHandler.Commands()
			sort.Strings(names)
			api.SetStatusMessage("Commands: %s", strings.Join(names, " "))
			return nil
		},
	}

	for name, fn := range commands {
		if err := api.RegisterCommand(name, fn); err != nil {
			logger.Warnf("Failed to register ':%s' command: %v", name, err)
		}
	}
}

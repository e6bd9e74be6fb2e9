package commands

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/beacon/internal/core/config"
	"github.com/colonyops/beacon/internal/core/notify"
	"github.com/colonyops/beacon/internal/core/styles"
	"github.com/colonyops/beacon/internal/data/db"
	"github.com/colonyops/beacon/internal/data/stores"
	"github.com/colonyops/beacon/internal/notifier"
	"github.com/colonyops/beacon/internal/tui"
)

// DemoCmd runs the interactive toast demo: a host surface wired to a
// lifecycle engine, with history persistence and config hot-reload.
type DemoCmd struct {
	flags *Flags
}

// NewDemoCmd creates a new demo command.
func NewDemoCmd(flags *Flags) *DemoCmd {
	return &DemoCmd{flags: flags}
}

// Run executes the demo TUI. Exported for use as the default command.
func (cmd *DemoCmd) Run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config

	if p, ok := styles.GetPalette(cfg.Theme); ok {
		styles.SetTheme(p)
	}

	var store notify.Store
	if !cfg.History.Disabled {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		database, err := db.Open(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer func() { _ = database.Close() }()
		store = stores.NewNotifyStore(database)
	}

	manager := notifier.New(notifier.Options{
		Durations:  cfg.Durations(),
		EnterDelay: cfg.EnterDelay(),
		ExitWindow: cfg.ExitWindow(),
		Store:      store,
	})
	defer manager.Close()

	buffer := tui.NewNotificationBuffer()
	manager.Subscribe(buffer.Push)

	m := tui.New(tui.Deps{Manager: manager, Buffer: buffer}, cfg.Toasts.MaxVisible)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Hot-reload timing and theme when the config file changes. The
	// callback runs on the watcher's timer goroutine; the theme switch is
	// sent into the update loop because the style globals are only safe
	// to write from there.
	if cmd.flags.ConfigPath != "" {
		watcher, err := config.Watch(cmd.flags.ConfigPath, func() {
			reloaded, err := config.Load(cmd.flags.ConfigPath, cfg.DataDir)
			if err != nil {
				log.Error().Err(err).Msg("config reload failed")
				manager.Errorf("config reload failed")
				return
			}
			manager.SetDurations(reloaded.Durations())
			if pal, ok := styles.GetPalette(reloaded.Theme); ok {
				p.Send(tui.ThemeChangedMsg{Palette: pal})
			}
			manager.Infof("configuration reloaded")
		})
		if err != nil {
			log.Warn().Err(err).Msg("config watcher unavailable")
		} else {
			defer watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}

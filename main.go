package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/beacon/internal/commands"
	"github.com/colonyops/beacon/internal/core/config"
	"github.com/colonyops/beacon/internal/core/logging"
)

var (
	// Build information. Populated at build-time via -ldflags.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &commands.Flags{}

	demoCmd := commands.NewDemoCmd(flags)
	historyCmd := commands.NewHistoryCmd(flags)
	clearCmd := commands.NewClearCmd(flags)
	pruneCmd := commands.NewPruneCmd(flags)

	app := &cli.Command{
		Name:      "beacon",
		Usage:     "Ephemeral toast notifications for terminal apps",
		UsageText: "beacon [global options] command [command options]",
		Description: `Beacon manages ephemeral user-facing notifications: timed auto-dismissal,
manual dismissal, and a persisted history.

Run 'beacon' with no arguments to open the interactive demo surface.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("BEACON_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/beacon.log)",
				Sources:     cli.EnvVars("BEACON_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("BEACON_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("BEACON_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Log to a file so log lines never corrupt the rendered UI.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "beacon.log")
			}

			if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
				return ctx, fmt.Errorf("create log dir: %w", err)
			}

			closer, err := logging.Setup(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "demo",
				Usage:  "Open the interactive notification demo",
				Action: demoCmd.Run,
			},
			{
				Name:   "history",
				Usage:  "List the persisted notification history",
				Flags:  historyCmd.Flags(),
				Action: historyCmd.Run,
			},
			{
				Name:   "clear",
				Usage:  "Delete all persisted notifications",
				Action: clearCmd.Run,
			},
			{
				Name:   "prune",
				Usage:  "Delete persisted notifications older than a cutoff",
				Flags:  pruneCmd.Flags(),
				Action: pruneCmd.Run,
			},
		},
	}

	// Running with no subcommand opens the demo.
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'beacon --help' for usage", c.Args().First())
		}
		return demoCmd.Run(ctx, c)
	}

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Println()
		fmt.Println(err.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}

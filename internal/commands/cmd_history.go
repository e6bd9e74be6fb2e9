package commands

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/beacon/internal/core/styles"
	"github.com/colonyops/beacon/internal/data/db"
	"github.com/colonyops/beacon/internal/data/stores"
)

// HistoryCmd lists the persisted notification history.
type HistoryCmd struct {
	flags *Flags
	limit int
}

// NewHistoryCmd creates a new history command.
func NewHistoryCmd(flags *Flags) *HistoryCmd {
	return &HistoryCmd{flags: flags}
}

// Flags returns the history-specific flags.
func (cmd *HistoryCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "limit",
			Aliases:     []string{"n"},
			Usage:       "maximum number of entries to show (0 = all)",
			Destination: &cmd.limit,
		},
	}
}

// Run prints the history, newest first.
func (cmd *HistoryCmd) Run(ctx context.Context, c *cli.Command) error {
	database, err := db.Open(cmd.flags.Config.DataDir)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	store := stores.NewNotifyStore(database)
	list, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	if len(list) == 0 {
		fmt.Println("no notifications recorded")
		return nil
	}

	if cmd.limit > 0 && len(list) > cmd.limit {
		list = list[:cmd.limit]
	}

	for _, n := range list {
		kind := styles.KindStyle(n.Kind).Render(styles.KindIcon(n.Kind) + " " + string(n.Kind))
		when := styles.MutedStyle.Render(humanize.Time(n.CreatedAt))
		fmt.Printf("%-20s %s  %s\n", kind, n.Message, when)
	}

	return nil
}

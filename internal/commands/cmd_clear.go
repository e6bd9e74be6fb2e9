package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/beacon/internal/data/db"
	"github.com/colonyops/beacon/internal/data/stores"
)

// ClearCmd wipes the persisted notification history.
type ClearCmd struct {
	flags *Flags
}

// NewClearCmd creates a new clear command.
func NewClearCmd(flags *Flags) *ClearCmd {
	return &ClearCmd{flags: flags}
}

// Run deletes all history entries.
func (cmd *ClearCmd) Run(ctx context.Context, c *cli.Command) error {
	database, err := db.Open(cmd.flags.Config.DataDir)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	store := stores.NewNotifyStore(database)

	count, err := store.Count(ctx)
	if err != nil {
		return fmt.Errorf("count history: %w", err)
	}

	if err := store.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}

	fmt.Printf("cleared %d notifications\n", count)
	return nil
}

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/beacon/internal/data/db"
	"github.com/colonyops/beacon/internal/data/stores"
)

// PruneCmd deletes history entries older than a cutoff.
type PruneCmd struct {
	flags     *Flags
	olderThan time.Duration
}

// NewPruneCmd creates a new prune command.
func NewPruneCmd(flags *Flags) *PruneCmd {
	return &PruneCmd{flags: flags}
}

// Flags returns the prune-specific flags.
func (cmd *PruneCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "older-than",
			Usage:       "delete entries older than this duration (e.g. 720h)",
			Value:       30 * 24 * time.Hour,
			Destination: &cmd.olderThan,
		},
	}
}

// Run prunes the history.
func (cmd *PruneCmd) Run(ctx context.Context, c *cli.Command) error {
	database, err := db.Open(cmd.flags.Config.DataDir)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	store := stores.NewNotifyStore(database)

	deleted, err := store.Prune(ctx, time.Now().Add(-cmd.olderThan))
	if err != nil {
		return fmt.Errorf("prune history: %w", err)
	}

	fmt.Printf("pruned %d notifications\n", deleted)
	return nil
}

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sift-money/sift/internal/cli"
	"github.com/sift-money/sift/internal/storage"
)

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List past training runs",
		Long: `List past training runs recorded in the history database.

Each successful "sift train" appends one row: when it ran, what data it used,
and the accuracy it reached.`,
		RunE: runRuns,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to show")

	_ = viper.BindPFlag("runs.limit", cmd.Flags().Lookup("limit"))

	return cmd
}

func runRuns(cmd *cobra.Command, _ []string) error {
	db, err := storage.NewSQLiteStorage(historyDBPath())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	ctx := cmd.Context()
	if err := db.Migrate(ctx); err != nil {
		return err
	}

	runs, err := db.ListRuns(ctx, viper.GetInt("runs.limit"))
	if err != nil {
		return err
	}

	cli.RenderRuns(os.Stdout, runs)
	return nil
}

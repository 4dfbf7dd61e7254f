package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sift-money/sift/internal/cli"
	"github.com/sift-money/sift/internal/config"
	"github.com/sift-money/sift/internal/model"
	"github.com/sift-money/sift/internal/pipeline"
	"github.com/sift-money/sift/internal/storage"
)

func trainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a categorization model from labeled transactions",
		Long: `Train a categorization model from a CSV of labeled transactions.

The CSV needs a header with "description" and "category" columns. The model
and its vocabulary are saved together as one artifact for later use with
"sift classify".

Examples:
  sift train                                  # uses transactions.csv / sift-model.gob
  sift train --data 2024.csv                  # custom input
  sift train --data 2024.csv --model my.gob   # custom input and output`,
		RunE: runTrain,
	}

	cmd.Flags().StringP("data", "d", pipeline.DefaultDataPath, "CSV file of labeled transactions")
	cmd.Flags().StringP("model", "m", pipeline.DefaultModelPath, "Where to save the trained model artifact")

	_ = viper.BindPFlag("train.data", cmd.Flags().Lookup("data"))
	_ = viper.BindPFlag("train.model", cmd.Flags().Lookup("model"))

	return cmd
}

func runTrain(cmd *cobra.Command, _ []string) error {
	cfg := pipeline.Config{
		DataPath:  config.ExpandPath(viper.GetString("train.data")),
		ModelPath: config.ExpandPath(viper.GetString("train.model")),
	}

	slog.Info("Starting training run", "data", cfg.DataPath)

	result, err := pipeline.Run(cfg)
	if err != nil {
		return err
	}

	cli.RenderReport(os.Stdout, result.Report)
	fmt.Fprintf(os.Stdout, "\n%s %s\n",
		cli.SuccessStyle.Render("Model saved to"),
		cli.BoldStyle.Render(cfg.ModelPath))

	recordRunHistory(cmd, cfg, result)

	return nil
}

// recordRunHistory appends the run to the history database. History is
// advisory only; failures are logged, never fatal to a successful run.
func recordRunHistory(cmd *cobra.Command, cfg pipeline.Config, result *pipeline.Result) {
	dbPath := historyDBPath()

	db, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		slog.Warn("Skipping run history", "db", dbPath, "error", err)
		return
	}
	defer func() { _ = db.Close() }()

	ctx := cmd.Context()
	if err := db.Migrate(ctx); err != nil {
		slog.Warn("Skipping run history", "db", dbPath, "error", err)
		return
	}

	cfg = cfg.Normalize()
	_, err = db.SaveRun(ctx, model.TrainingRun{
		DataPath:     cfg.DataPath,
		ModelPath:    cfg.ModelPath,
		RawRecords:   result.RawRecords,
		TrainRecords: result.TrainRecords,
		TestRecords:  result.TestRecords,
		Categories:   len(result.Bundle.Model.Classes),
		Accuracy:     result.Report.Accuracy,
	})
	if err != nil {
		slog.Warn("Failed to record run history", "db", dbPath, "error", err)
	}
}

func historyDBPath() string {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/sift/sift.db"
	}
	return config.ExpandPath(dbPath)
}

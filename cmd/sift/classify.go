package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sift-money/sift/internal/artifact"
	"github.com/sift-money/sift/internal/cli"
	"github.com/sift-money/sift/internal/config"
	"github.com/sift-money/sift/internal/dataset"
	"github.com/sift-money/sift/internal/model"
	"github.com/sift-money/sift/internal/ofx"
	"github.com/sift-money/sift/internal/pipeline"
)

// progressThreshold is the batch size above which a progress bar is shown.
const progressThreshold = 50

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [files or descriptions...]",
		Short: "Categorize transactions with a trained model",
		Long: `Categorize transactions using a previously trained model artifact.

Arguments can be CSV files (with a "description" column), OFX/QFX bank
exports, or literal transaction descriptions.

Examples:
  sift classify "starbucks downtown"
  sift classify ~/Downloads/january.qfx
  sift classify --model my.gob statements.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: runClassify,
	}

	cmd.Flags().StringP("model", "m", pipeline.DefaultModelPath, "Trained model artifact")

	_ = viper.BindPFlag("classify.model", cmd.Flags().Lookup("model"))

	return cmd
}

func runClassify(_ *cobra.Command, args []string) error {
	modelPath := config.ExpandPath(viper.GetString("classify.model"))

	bundle, err := artifact.Load(modelPath)
	if err != nil {
		return fmt.Errorf("failed to load model (run \"sift train\" first?): %w", err)
	}
	slog.Info("Loaded model artifact",
		"path", modelPath,
		"categories", len(bundle.Model.Classes),
		"vocabulary", len(bundle.Vectorizer.Vocabulary))

	descriptions, err := collectDescriptions(args)
	if err != nil {
		return err
	}
	if len(descriptions) == 0 {
		return fmt.Errorf("nothing to classify")
	}

	predictions, err := classifyAll(bundle, descriptions)
	if err != nil {
		return err
	}

	cli.RenderPredictions(os.Stdout, predictions)
	return nil
}

// collectDescriptions gathers descriptions from file arguments and literal
// description arguments. Anything that exists on disk is treated as a file.
func collectDescriptions(args []string) ([]string, error) {
	var descriptions []string

	for _, arg := range args {
		info, statErr := os.Stat(arg)
		if statErr != nil || info.IsDir() {
			// Not a file: treat as a literal description.
			descriptions = append(descriptions, arg)
			continue
		}

		switch strings.ToLower(filepath.Ext(arg)) {
		case ".ofx", ".qfx":
			f, err := os.Open(arg) // #nosec G304 - path is supplied by the operator
			if err != nil {
				return nil, fmt.Errorf("failed to open %s: %w", arg, err)
			}
			entries, err := ofx.NewParser().Parse(f)
			_ = f.Close()
			if err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", arg, err)
			}
			for _, entry := range entries {
				descriptions = append(descriptions, entry.Description)
			}
		default:
			descs, err := dataset.LoadDescriptions(arg)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", arg, err)
			}
			descriptions = append(descriptions, descs...)
		}
	}

	return descriptions, nil
}

// classifyAll runs the model over descriptions, with a progress bar for
// large batches.
func classifyAll(bundle *artifact.Bundle, descriptions []string) ([]model.Prediction, error) {
	if len(descriptions) < progressThreshold {
		return bundle.Classify(descriptions)
	}

	bar := progressbar.NewOptions(len(descriptions),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Classifying transactions..."),
	)

	predictions := make([]model.Prediction, 0, len(descriptions))
	for _, desc := range descriptions {
		pred, err := bundle.Classify([]string{desc})
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, pred...)
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	return predictions, nil
}

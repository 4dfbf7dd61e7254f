// Package pipeline wires the four training stages into one sequential run:
// data preparation, vectorization, classifier training, and evaluation. The
// whole pipeline is a single synchronous computation; a failure at any stage
// aborts the run before an artifact is written.
package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/sift-money/sift/internal/artifact"
	"github.com/sift-money/sift/internal/bayes"
	"github.com/sift-money/sift/internal/dataset"
	"github.com/sift-money/sift/internal/evaluate"
	"github.com/sift-money/sift/internal/model"
	"github.com/sift-money/sift/internal/vectorizer"
)

// Default file locations, used when the caller leaves Config fields empty.
const (
	DefaultDataPath  = "transactions.csv"
	DefaultModelPath = "sift-model.gob"
)

// Config controls a training run. The zero value is not usable directly;
// call Normalize or start from DefaultConfig.
type Config struct {
	DataPath     string  // labeled CSV input
	ModelPath    string  // artifact destination
	TestFraction float64 // held-out share of the cleaned records
	Seed         int64   // shuffle seed for the train/test split
	Alpha        float64 // additive smoothing constant for the classifier
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		DataPath:     DefaultDataPath,
		ModelPath:    DefaultModelPath,
		TestFraction: dataset.DefaultTestFraction,
		Seed:         dataset.DefaultSeed,
		Alpha:        bayes.DefaultAlpha,
	}
}

// Normalize fills unset fields with their defaults.
func (c Config) Normalize() Config {
	d := DefaultConfig()
	if c.DataPath == "" {
		c.DataPath = d.DataPath
	}
	if c.ModelPath == "" {
		c.ModelPath = d.ModelPath
	}
	if c.TestFraction <= 0 {
		c.TestFraction = d.TestFraction
	}
	if c.Seed == 0 {
		c.Seed = d.Seed
	}
	if c.Alpha <= 0 {
		c.Alpha = d.Alpha
	}
	return c
}

// Result carries the outcome of a successful run.
type Result struct {
	Bundle       *artifact.Bundle
	Report       *evaluate.Report
	RawRecords   int
	CleanRecords int
	TrainRecords int
	TestRecords  int
}

// Run executes the full pipeline and persists the trained bundle. The
// artifact is written only after evaluation succeeds, so a failed run never
// replaces a previous artifact on disk.
func Run(cfg Config) (*Result, error) {
	cfg = cfg.Normalize()

	raw, err := dataset.Load(cfg.DataPath)
	if err != nil {
		return nil, err
	}
	slog.Info("Loaded dataset", "path", cfg.DataPath, "records", len(raw))

	records, err := dataset.Prepare(raw)
	if err != nil {
		return nil, err
	}
	slog.Info("Prepared records", "kept", len(records), "dropped", len(raw)-len(records))

	train, test := dataset.Split(records, cfg.TestFraction, cfg.Seed)
	slog.Info("Split dataset", "train", len(train), "test", len(test), "seed", cfg.Seed)

	trainDocs, trainLabels := unzip(train)
	testDocs, testLabels := unzip(test)

	vec := vectorizer.New()
	vec.Fit(trainDocs)
	slog.Info("Fitted vectorizer", "vocabulary", len(vec.Vocabulary))

	trainFeatures, err := vec.Transform(trainDocs)
	if err != nil {
		return nil, fmt.Errorf("failed to vectorize training set: %w", err)
	}
	testFeatures, err := vec.Transform(testDocs)
	if err != nil {
		return nil, fmt.Errorf("failed to vectorize test set: %w", err)
	}

	clf, err := bayes.Train(trainFeatures, trainLabels, cfg.Alpha)
	if err != nil {
		return nil, err
	}
	slog.Info("Trained classifier", "categories", len(clf.Classes))

	report, err := evaluate.Evaluate(clf, testFeatures, testLabels)
	if err != nil {
		return nil, err
	}
	slog.Info("Evaluated model", "accuracy", report.Accuracy, "test_records", report.Total)

	bundle := &artifact.Bundle{Vectorizer: vec, Model: clf}
	if err := artifact.Save(cfg.ModelPath, bundle); err != nil {
		return nil, err
	}
	slog.Info("Saved model artifact", "path", cfg.ModelPath)

	return &Result{
		Bundle:       bundle,
		Report:       report,
		RawRecords:   len(raw),
		CleanRecords: len(records),
		TrainRecords: len(train),
		TestRecords:  len(test),
	}, nil
}

func unzip(records []model.Record) (docs, labels []string) {
	docs = make([]string, len(records))
	labels = make([]string, len(records))
	for i, rec := range records {
		docs[i] = rec.Description
		labels[i] = rec.Category
	}
	return docs, labels
}

// Package artifact persists and reloads the trained model bundle. The fitted
// vectorizer and the classifier are stored as one unit: the classifier's
// feature indices are meaningless without the exact vocabulary that produced
// them, so consumers must never separate the two halves.
package artifact

import (
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sift-money/sift/internal/bayes"
	"github.com/sift-money/sift/internal/common"
	"github.com/sift-money/sift/internal/model"
	"github.com/sift-money/sift/internal/vectorizer"
)

const (
	magic         = "sift-model"
	formatVersion = 1
)

// Bundle pairs a fitted vectorizer with the classifier trained on its output.
type Bundle struct {
	Vectorizer *vectorizer.Vectorizer
	Model      *bayes.Model
}

// envelope wraps the bundle with a format marker so a future loader can
// reject files that are not sift model artifacts.
type envelope struct {
	Magic   string
	Bundle  Bundle
	Version int
}

// Save writes the bundle to path. The write is atomic: the bundle is encoded
// to a temporary file in the same directory and renamed into place on
// success, so a crash mid-write never corrupts a previous artifact.
func Save(path string, b *Bundle) error {
	if b == nil || b.Vectorizer == nil || b.Model == nil {
		return fmt.Errorf("refusing to save incomplete bundle")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary artifact: %w", err)
	}
	tmpPath := tmp.Name()

	encodeErr := gob.NewEncoder(tmp).Encode(envelope{
		Magic:   magic,
		Version: formatVersion,
		Bundle:  *b,
	})
	closeErr := tmp.Close()

	if encodeErr != nil || closeErr != nil {
		if rmErr := os.Remove(tmpPath); rmErr != nil {
			slog.Warn("Failed to remove temporary artifact", "path", tmpPath, "error", rmErr)
		}
		if encodeErr != nil {
			return fmt.Errorf("failed to encode artifact: %w", encodeErr)
		}
		return fmt.Errorf("failed to write artifact: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		if rmErr := os.Remove(tmpPath); rmErr != nil {
			slog.Warn("Failed to remove temporary artifact", "path", tmpPath, "error", rmErr)
		}
		return fmt.Errorf("failed to move artifact into place: %w", err)
	}

	return nil
}

// Load reads a previously saved bundle from path.
func Load(path string) (*Bundle, error) {
	f, err := os.Open(path) // #nosec G304 - path is supplied by the operator
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("failed to open artifact: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close artifact file", "path", path, "error", closeErr)
		}
	}()

	var env envelope
	if err := gob.NewDecoder(f).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBadArtifact, err)
	}
	if env.Magic != magic {
		return nil, fmt.Errorf("%w: unexpected format marker %q", common.ErrBadArtifact, env.Magic)
	}
	if env.Version != formatVersion {
		return nil, fmt.Errorf("%w: unsupported format version %d", common.ErrBadArtifact, env.Version)
	}
	if env.Bundle.Vectorizer == nil || env.Bundle.Model == nil {
		return nil, fmt.Errorf("%w: bundle is incomplete", common.ErrBadArtifact)
	}

	return &env.Bundle, nil
}

// Classify categorizes free-text descriptions with the bundled vectorizer and
// model. Input is lowercased to match the normalization applied in training.
func (b *Bundle) Classify(descriptions []string) ([]model.Prediction, error) {
	docs := make([]string, len(descriptions))
	for i, d := range descriptions {
		docs[i] = strings.ToLower(d)
	}

	vectors, err := b.Vectorizer.Transform(docs)
	if err != nil {
		return nil, err
	}

	predictions := make([]model.Prediction, len(descriptions))
	for i, vec := range vectors {
		category, confidence := b.Model.Predict(vec)
		predictions[i] = model.Prediction{
			Description: descriptions[i],
			Category:    category,
			Confidence:  confidence,
		}
	}

	return predictions, nil
}

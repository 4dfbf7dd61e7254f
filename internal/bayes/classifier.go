// Package bayes implements a multinomial naive Bayes classifier over TF-IDF
// feature vectors. Training estimates per-class priors and Laplace-smoothed
// per-term likelihoods; prediction runs entirely in log space to avoid
// underflow from products of many small probabilities.
package bayes

import (
	"math"
	"sort"

	"github.com/sift-money/sift/internal/common"
	"github.com/sift-money/sift/internal/vectorizer"
)

// DefaultAlpha is the additive smoothing constant, matching the multinomial
// model's conventional default. It guarantees no term-class pair ever gets
// zero probability.
const DefaultAlpha = 1.0

// Model holds the learned classifier parameters. Immutable after training;
// fields are exported so the model can travel inside a gob-encoded bundle.
type Model struct {
	Classes        []string    // class labels, sorted for deterministic output
	LogPriors      []float64   // per class: ln(class count / total examples)
	LogLikelihoods [][]float64 // per class, per feature index
	Features       int         // feature dimensionality fixed by the vectorizer
}

// Train fits the classifier on training feature vectors and their labels.
// It fails when the label distribution is degenerate: classification is
// undefined with fewer than two distinct classes.
func Train(features []vectorizer.Vector, labels []string, alpha float64) (*Model, error) {
	if len(features) != len(labels) {
		return nil, common.NewTrainingError("feature/label count mismatch: %d features, %d labels", len(features), len(labels))
	}
	if len(features) == 0 {
		return nil, common.NewTrainingError("no training examples")
	}

	classIndex := make(map[string]int)
	var classes []string
	for _, label := range labels {
		if _, ok := classIndex[label]; !ok {
			classIndex[label] = 0
			classes = append(classes, label)
		}
	}
	if len(classes) < 2 {
		return nil, common.NewTrainingError("need at least 2 distinct categories, got %d", len(classes))
	}
	sort.Strings(classes)
	for i, c := range classes {
		classIndex[c] = i
	}

	featureCount := 0
	for _, vec := range features {
		for idx := range vec {
			if idx+1 > featureCount {
				featureCount = idx + 1
			}
		}
	}

	// Accumulate per-class example counts and per-term weight mass.
	classCounts := make([]float64, len(classes))
	termWeights := make([][]float64, len(classes))
	totalWeights := make([]float64, len(classes))
	for i := range termWeights {
		termWeights[i] = make([]float64, featureCount)
	}

	for i, vec := range features {
		c := classIndex[labels[i]]
		classCounts[c]++
		for idx, w := range vec {
			termWeights[c][idx] += w
			totalWeights[c] += w
		}
	}

	model := &Model{
		Classes:        classes,
		LogPriors:      make([]float64, len(classes)),
		LogLikelihoods: make([][]float64, len(classes)),
		Features:       featureCount,
	}

	total := float64(len(features))
	for c := range classes {
		model.LogPriors[c] = math.Log(classCounts[c] / total)

		denom := totalWeights[c] + alpha*float64(featureCount)
		model.LogLikelihoods[c] = make([]float64, featureCount)
		for idx := 0; idx < featureCount; idx++ {
			model.LogLikelihoods[c][idx] = math.Log((termWeights[c][idx] + alpha) / denom)
		}
	}

	return model, nil
}

// Predict returns the most likely class for a feature vector along with a
// normalized confidence in (0, 1]. Features beyond the trained dimensionality
// are ignored; they can only come from a mismatched vectorizer.
func (m *Model) Predict(vec vectorizer.Vector) (string, float64) {
	scores := m.scores(vec)

	best := 0
	for c := range scores {
		if scores[c] > scores[best] {
			best = c
		}
	}

	// Softmax over log scores, shifted by the max for numeric stability.
	var sum float64
	for c := range scores {
		sum += math.Exp(scores[c] - scores[best])
	}

	return m.Classes[best], 1.0 / sum
}

// PredictAll classifies a batch of feature vectors.
func (m *Model) PredictAll(vectors []vectorizer.Vector) []string {
	predictions := make([]string, len(vectors))
	for i, vec := range vectors {
		predictions[i], _ = m.Predict(vec)
	}
	return predictions
}

// scores computes the unnormalized log-posterior for each class.
func (m *Model) scores(vec vectorizer.Vector) []float64 {
	scores := make([]float64, len(m.Classes))
	for c := range m.Classes {
		score := m.LogPriors[c]
		for idx, w := range vec {
			if idx < m.Features {
				score += w * m.LogLikelihoods[c][idx]
			}
		}
		scores[c] = score
	}
	return scores
}

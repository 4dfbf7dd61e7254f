// Package evaluate scores a trained classifier against held-out records and
// produces accuracy metrics. The report is read-only output; nothing here
// feeds back into the model.
package evaluate

import (
	"fmt"
	"sort"

	"github.com/sift-money/sift/internal/bayes"
	"github.com/sift-money/sift/internal/vectorizer"
)

// ClassMetrics holds precision, recall, and F1 for one category.
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int // number of true instances in the test set
}

// Report summarizes classifier performance on a test set.
type Report struct {
	PerClass  map[string]ClassMetrics
	Classes   []string // union of true and predicted labels, sorted
	Confusion [][]int  // rows = true class, columns = predicted class
	Accuracy  float64
	Total     int
}

// Evaluate runs the model over test features and compares predictions with
// true labels. A category present in the test set but absent from training
// simply never gets predicted; its precision and recall are defined as zero
// rather than dividing by zero.
func Evaluate(model *bayes.Model, features []vectorizer.Vector, labels []string) (*Report, error) {
	if len(features) != len(labels) {
		return nil, fmt.Errorf("feature/label count mismatch: %d features, %d labels", len(features), len(labels))
	}

	predictions := model.PredictAll(features)

	classSet := make(map[string]bool)
	for _, label := range labels {
		classSet[label] = true
	}
	for _, pred := range predictions {
		classSet[pred] = true
	}
	classes := make([]string, 0, len(classSet))
	for c := range classSet {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	classIdx := make(map[string]int, len(classes))
	for i, c := range classes {
		classIdx[c] = i
	}

	confusion := make([][]int, len(classes))
	for i := range confusion {
		confusion[i] = make([]int, len(classes))
	}

	correct := 0
	for i, label := range labels {
		if predictions[i] == label {
			correct++
		}
		confusion[classIdx[label]][classIdx[predictions[i]]]++
	}

	report := &Report{
		Classes:   classes,
		Confusion: confusion,
		PerClass:  make(map[string]ClassMetrics, len(classes)),
		Total:     len(labels),
	}
	if len(labels) > 0 {
		report.Accuracy = float64(correct) / float64(len(labels))
	}

	for i, class := range classes {
		truePositive := confusion[i][i]

		predicted := 0
		for row := range classes {
			predicted += confusion[row][i]
		}
		actual := 0
		for col := range classes {
			actual += confusion[i][col]
		}

		m := ClassMetrics{Support: actual}
		if predicted > 0 {
			m.Precision = float64(truePositive) / float64(predicted)
		}
		if actual > 0 {
			m.Recall = float64(truePositive) / float64(actual)
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		report.PerClass[class] = m
	}

	return report, nil
}

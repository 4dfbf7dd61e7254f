// Package vectorizer converts transaction descriptions into sparse TF-IDF
// feature vectors. The vocabulary and IDF table are fixed at fit time on the
// training corpus and reused unchanged for all later transforms, so test-time
// text can never introduce a new feature dimension.
package vectorizer

import (
	"math"
	"regexp"

	"github.com/sift-money/sift/internal/common"
)

// tokenPattern matches word tokens in already-lowercased text.
var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// Vector is a sparse feature vector mapping vocabulary index to TF-IDF weight.
type Vector map[int]float64

// Vectorizer implements term-frequency × inverse-document-frequency weighting.
// Fields are exported so a fitted vectorizer can travel inside a gob-encoded
// model bundle.
type Vectorizer struct {
	Vocabulary map[string]int // term → feature index, assigned in first-seen order
	IDF        []float64      // feature index → ln(documents / document frequency)
	Documents  int            // size of the corpus the vectorizer was fitted on
}

// New creates an unfitted vectorizer.
func New() *Vectorizer {
	return &Vectorizer{
		Vocabulary: make(map[string]int),
	}
}

// Fitted reports whether Fit has been run.
func (v *Vectorizer) Fitted() bool {
	return v.Documents > 0
}

// Tokenize splits a description into word tokens with stop words removed.
func Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(text, -1)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if stopWords[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Fit builds the vocabulary and IDF table from the training corpus. Feature
// indices are assigned in order of first appearance, so the vocabulary is
// bit-identical across runs on the same input.
func (v *Vectorizer) Fit(docs []string) {
	docFreq := make([]int, 0)

	for _, doc := range docs {
		seenInDoc := make(map[int]bool)
		for _, tok := range Tokenize(doc) {
			idx, ok := v.Vocabulary[tok]
			if !ok {
				idx = len(v.Vocabulary)
				v.Vocabulary[tok] = idx
				docFreq = append(docFreq, 0)
			}
			if !seenInDoc[idx] {
				seenInDoc[idx] = true
				docFreq[idx]++
			}
		}
	}

	v.Documents = len(docs)
	v.IDF = make([]float64, len(docFreq))
	for idx, df := range docFreq {
		// df >= 1 by construction: a term only enters the vocabulary
		// when observed in at least one document.
		v.IDF[idx] = math.Log(float64(v.Documents) / float64(df))
	}
}

// Transform converts documents into sparse TF-IDF vectors using the fitted
// vocabulary. Tokens unseen at fit time carry no signal and are skipped.
// Calling Transform before Fit is a pipeline ordering bug and fails loudly.
func (v *Vectorizer) Transform(docs []string) ([]Vector, error) {
	if !v.Fitted() {
		return nil, common.ErrNotFitted
	}

	vectors := make([]Vector, len(docs))
	for i, doc := range docs {
		tokens := Tokenize(doc)

		counts := make(map[int]float64)
		for _, tok := range tokens {
			if idx, ok := v.Vocabulary[tok]; ok {
				counts[idx]++
			}
		}

		vec := make(Vector, len(counts))
		if len(tokens) > 0 {
			docLen := float64(len(tokens))
			for idx, count := range counts {
				vec[idx] = (count / docLen) * v.IDF[idx]
			}
		}
		vectors[i] = vec
	}

	return vectors, nil
}

package vectorizer

import (
	"errors"
	"math"
	"testing"

	"github.com/sift-money/sift/internal/common"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "splits on word boundaries",
			text: "starbucks coffee #4521",
			want: []string{"starbucks", "coffee", "4521"},
		},
		{
			name: "removes stop words",
			text: "payment to the gas station",
			want: []string{"payment", "gas", "station"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "only stop words",
			text: "to the and of",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTransformBeforeFit(t *testing.T) {
	v := New()

	_, err := v.Transform([]string{"starbucks coffee"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, common.ErrNotFitted) {
		t.Errorf("expected not-fitted error, got %v", err)
	}
}

func TestFitBuildsVocabulary(t *testing.T) {
	v := New()
	v.Fit([]string{
		"starbucks coffee",
		"shell gas",
		"starbucks downtown",
	})

	if !v.Fitted() {
		t.Fatal("vectorizer should report fitted")
	}
	if v.Documents != 3 {
		t.Errorf("Documents = %d, want 3", v.Documents)
	}

	// starbucks, coffee, shell, gas, downtown
	if len(v.Vocabulary) != 5 {
		t.Errorf("vocabulary size = %d, want 5", len(v.Vocabulary))
	}
	if len(v.IDF) != len(v.Vocabulary) {
		t.Errorf("IDF table size %d does not match vocabulary size %d", len(v.IDF), len(v.Vocabulary))
	}
}

func TestFitVocabularyIsDeterministic(t *testing.T) {
	docs := []string{
		"starbucks coffee",
		"shell gas station",
		"netflix subscription",
	}

	v1 := New()
	v1.Fit(docs)
	v2 := New()
	v2.Fit(docs)

	if len(v1.Vocabulary) != len(v2.Vocabulary) {
		t.Fatalf("vocabulary sizes differ: %d vs %d", len(v1.Vocabulary), len(v2.Vocabulary))
	}
	for term, idx := range v1.Vocabulary {
		if v2.Vocabulary[term] != idx {
			t.Errorf("term %q has index %d in one run and %d in another", term, idx, v2.Vocabulary[term])
		}
	}
	for i := range v1.IDF {
		if v1.IDF[i] != v2.IDF[i] {
			t.Errorf("IDF[%d] differs between identical runs", i)
		}
	}
}

func TestTransformWeights(t *testing.T) {
	v := New()
	v.Fit([]string{
		"starbucks coffee",
		"shell coffee",
	})

	vectors, err := v.Transform([]string{"starbucks coffee"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// "starbucks" appears in 1 of 2 documents: tf = 1/2, idf = ln(2/1).
	starbucksIdx := v.Vocabulary["starbucks"]
	wantStarbucks := 0.5 * math.Log(2.0)
	if got := vectors[0][starbucksIdx]; math.Abs(got-wantStarbucks) > 1e-12 {
		t.Errorf("starbucks weight = %v, want %v", got, wantStarbucks)
	}

	// "coffee" appears in both documents: idf = ln(2/2) = 0.
	coffeeIdx := v.Vocabulary["coffee"]
	if got := vectors[0][coffeeIdx]; got != 0 {
		t.Errorf("coffee weight = %v, want 0", got)
	}
}

func TestTransformIgnoresUnseenTokens(t *testing.T) {
	v := New()
	v.Fit([]string{"starbucks coffee", "shell gas"})
	vocabBefore := len(v.Vocabulary)

	vectors, err := v.Transform([]string{"starbucks quantum zebra"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(v.Vocabulary) != vocabBefore {
		t.Errorf("transform changed vocabulary size from %d to %d", vocabBefore, len(v.Vocabulary))
	}
	for idx := range vectors[0] {
		if idx >= vocabBefore {
			t.Errorf("transform produced out-of-vocabulary dimension %d", idx)
		}
	}
	if _, ok := vectors[0][v.Vocabulary["starbucks"]]; !ok {
		t.Error("known token should still contribute weight")
	}
}

func TestTransformEmptyDocument(t *testing.T) {
	v := New()
	v.Fit([]string{"starbucks coffee"})

	vectors, err := v.Transform([]string{""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vectors[0]) != 0 {
		t.Errorf("empty document should produce an empty vector, got %v", vectors[0])
	}
}

package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestDataError(t *testing.T) {
	err := NewDataError("missing required column %q", "category")

	if !IsDataError(err) {
		t.Error("IsDataError should recognize a DataError")
	}
	if got := err.Error(); got != `unusable training data: missing required column "category"` {
		t.Errorf("unexpected message: %s", got)
	}

	wrapped := fmt.Errorf("loading dataset: %w", err)
	if !IsDataError(wrapped) {
		t.Error("IsDataError should see through wrapping")
	}
	if IsTrainingError(err) {
		t.Error("a DataError is not a TrainingError")
	}
}

func TestTrainingError(t *testing.T) {
	err := NewTrainingError("need at least 2 distinct categories, got %d", 1)

	if !IsTrainingError(err) {
		t.Error("IsTrainingError should recognize a TrainingError")
	}
	if IsDataError(err) {
		t.Error("a TrainingError is not a DataError")
	}
}

func TestUserError(t *testing.T) {
	inner := errors.New("boom")
	err := NewUserError("something went wrong", inner)

	if !errors.Is(err, inner) {
		t.Error("UserError should unwrap to the inner error")
	}
	if got := err.Error(); got != "something went wrong: boom" {
		t.Errorf("unexpected message: %s", got)
	}
}

func TestSentinels(t *testing.T) {
	wrapped := fmt.Errorf("%w: transactions.csv", ErrInputNotFound)
	if !errors.Is(wrapped, ErrInputNotFound) {
		t.Error("wrapped sentinel should match")
	}
}

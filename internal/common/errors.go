// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Input errors.
	ErrInputNotFound = errors.New("input file not found")

	// Vectorizer errors.
	ErrNotFitted = errors.New("vectorizer is not fitted")

	// Artifact errors.
	ErrBadArtifact = errors.New("artifact is not a sift model bundle")
)

// DataError indicates the input dataset is unusable: a required column is
// missing, or cleaning left nothing to train on.
type DataError struct {
	Reason string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("unusable training data: %s", e.Reason)
}

// NewDataError creates a DataError with the given reason.
func NewDataError(format string, args ...any) error {
	return &DataError{Reason: fmt.Sprintf(format, args...)}
}

// IsDataError reports whether err is (or wraps) a DataError.
func IsDataError(err error) bool {
	var de *DataError
	return errors.As(err, &de)
}

// TrainingError indicates the training inputs are degenerate: fewer than two
// distinct labels, or features and labels of different lengths.
type TrainingError struct {
	Reason string
}

func (e *TrainingError) Error() string {
	return fmt.Sprintf("cannot train classifier: %s", e.Reason)
}

// NewTrainingError creates a TrainingError with the given reason.
func NewTrainingError(format string, args ...any) error {
	return &TrainingError{Reason: fmt.Sprintf(format, args...)}
}

// IsTrainingError reports whether err is (or wraps) a TrainingError.
func IsTrainingError(err error) bool {
	var te *TrainingError
	return errors.As(err, &te)
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

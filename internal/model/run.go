package model

import "time"

// TrainingRun records one completed training run for the history store.
type TrainingRun struct {
	CreatedAt    time.Time
	DataPath     string
	ModelPath    string
	ID           int64
	RawRecords   int
	TrainRecords int
	TestRecords  int
	Categories   int
	Accuracy     float64
}

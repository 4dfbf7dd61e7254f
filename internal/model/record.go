// Package model defines the core domain models used throughout the application.
package model

import "github.com/shopspring/decimal"

// Record is a single labeled transaction example.
type Record struct {
	Description string          // Raw transaction description, lowercased after preparation
	Category    string          // Spending category label
	Amount      decimal.Decimal // Optional transaction amount; zero when absent
	HasAmount   bool
}

// Key identifies a record for exact-duplicate detection.
func (r Record) Key() string {
	return r.Description + "\x1f" + r.Category
}

// Prediction is a categorized description produced by a trained model.
type Prediction struct {
	Description string
	Category    string
	Confidence  float64
}

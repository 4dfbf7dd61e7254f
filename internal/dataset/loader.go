// Package dataset loads, cleans, and partitions labeled transaction records.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sift-money/sift/internal/common"
	"github.com/sift-money/sift/internal/model"
)

// Column names recognized in the input header, matched case-insensitively.
const (
	ColumnDescription = "description"
	ColumnCategory    = "category"
	ColumnAmount      = "amount"
)

// Load reads labeled transaction records from a CSV file. The file must have
// a header row containing description and category columns; an amount column
// is optional and any other columns are ignored.
func Load(path string) ([]model.Record, error) {
	f, err := os.Open(path) // #nosec G304 - path is supplied by the operator
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close dataset file", "path", path, "error", closeErr)
		}
	}()

	return Read(f)
}

// Read parses CSV records from an open reader. Split out from Load so tests
// and future sources can feed data without touching the filesystem.
func Read(r io.Reader) ([]model.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are treated as missing fields
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, common.NewDataError("dataset is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset header: %w", err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var records []model.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset row: %w", err)
		}

		rec := model.Record{
			Description: field(row, cols.description),
			Category:    field(row, cols.category),
		}
		if cols.amount >= 0 {
			if raw := strings.TrimSpace(field(row, cols.amount)); raw != "" {
				amount, parseErr := decimal.NewFromString(raw)
				if parseErr != nil {
					slog.Warn("Skipping unparseable amount", "value", raw)
				} else {
					rec.Amount = amount
					rec.HasAmount = true
				}
			}
		}
		records = append(records, rec)
	}

	return records, nil
}

// columnIndexes holds the resolved position of each recognized column.
type columnIndexes struct {
	description int
	category    int
	amount      int
}

// resolveColumns maps the header row to column positions, failing fast when a
// required column is absent rather than erroring deep in the pipeline.
func resolveColumns(header []string) (columnIndexes, error) {
	cols := columnIndexes{description: -1, category: -1, amount: -1}

	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case ColumnDescription:
			cols.description = i
		case ColumnCategory:
			cols.category = i
		case ColumnAmount:
			cols.amount = i
		}
	}

	if cols.description < 0 {
		return cols, common.NewDataError("missing required column %q", ColumnDescription)
	}
	if cols.category < 0 {
		return cols, common.NewDataError("missing required column %q", ColumnCategory)
	}

	return cols, nil
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

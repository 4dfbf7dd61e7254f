package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sift-money/sift/internal/common"
)

// LoadDescriptions reads just the description column from a CSV file, for
// classifying unlabeled transactions. A category column, if present, is
// ignored.
func LoadDescriptions(path string) ([]string, error) {
	f, err := os.Open(path) // #nosec G304 - path is supplied by the operator
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close file", "path", path, "error", closeErr)
		}
	}()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, common.NewDataError("file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	descIdx := -1
	for i, name := range header {
		if strings.ToLower(strings.TrimSpace(name)) == ColumnDescription {
			descIdx = i
			break
		}
	}
	if descIdx < 0 {
		return nil, common.NewDataError("missing required column %q", ColumnDescription)
	}

	var descriptions []string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if desc := strings.TrimSpace(field(row, descIdx)); desc != "" {
			descriptions = append(descriptions, desc)
		}
	}

	return descriptions, nil
}

package dataset

import (
	"strings"

	"github.com/sift-money/sift/internal/common"
	"github.com/sift-money/sift/internal/model"
)

// Prepare turns raw records into a training-ready set:
//   - records missing a description or category are dropped (not imputable),
//   - descriptions are lowercased to reduce vocabulary fragmentation,
//   - exact duplicates collapse to their first occurrence.
//
// The input slice is not modified. Prepare fails when nothing usable remains.
func Prepare(raw []model.Record) ([]model.Record, error) {
	seen := make(map[string]bool, len(raw))
	cleaned := make([]model.Record, 0, len(raw))

	for _, rec := range raw {
		rec.Description = strings.ToLower(strings.TrimSpace(rec.Description))
		rec.Category = strings.TrimSpace(rec.Category)

		if rec.Description == "" || rec.Category == "" {
			continue
		}

		key := rec.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, rec)
	}

	if len(cleaned) == 0 {
		return nil, common.NewDataError("no usable records after cleaning")
	}

	return cleaned, nil
}

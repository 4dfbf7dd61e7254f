package dataset

import (
	"math"
	"math/rand"

	"github.com/sift-money/sift/internal/model"
)

// Default split parameters. The fixed seed keeps vocabularies and evaluation
// figures bit-identical across runs on the same input.
const (
	DefaultSeed         int64   = 42
	DefaultTestFraction float64 = 0.2
)

// Split partitions records into train and test sets. Every record lands in
// exactly one partition. The split is a plain shuffled cut, not stratified by
// category, so rare categories can end up entirely in one partition.
func Split(records []model.Record, testFraction float64, seed int64) (train, test []model.Record) {
	n := len(records)
	if n == 0 {
		return nil, nil
	}

	shuffled := make([]model.Record, n)
	copy(shuffled, records)

	rng := rand.New(rand.NewSource(seed)) // #nosec G404 - deterministic split, not crypto
	rng.Shuffle(n, func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	testSize := int(math.Ceil(float64(n) * testFraction))
	if testSize >= n {
		testSize = n - 1
	}
	if testSize < 0 {
		testSize = 0
	}

	return shuffled[testSize:], shuffled[:testSize]
}

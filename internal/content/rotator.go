package content

import (
	"math/rand/v2"
	"sync"
)

// DefaultOverrideProbability is the chance that Next returns a random
// category instead of the sequential one.
const DefaultOverrideProbability = 0.3

// Rotator walks a fixed category list so posts vary from day to day.
// Each call advances a cursor; with a configured probability the
// sequential pick is replaced by a uniformly random category. The cursor
// lives as long as the Rotator and is never persisted.
type Rotator struct {
	mu          sync.Mutex
	categories  []Category
	cursor      int
	probability float64
	rng         *rand.Rand
}

// RotatorOption configures a Rotator.
type RotatorOption func(*Rotator)

// WithOverrideProbability sets the random-override probability. Values
// at or below zero disable the override.
func WithOverrideProbability(p float64) RotatorOption {
	return func(r *Rotator) {
		r.probability = p
	}
}

// WithRand sets the random source, mainly for tests.
func WithRand(rng *rand.Rand) RotatorOption {
	return func(r *Rotator) {
		r.rng = rng
	}
}

// NewRotator creates a rotator over categories. An empty list rotates
// over the default category only. The first sequential pick is
// categories[0].
func NewRotator(categories []Category, opts ...RotatorOption) *Rotator {
	if len(categories) == 0 {
		categories = []Category{DefaultCategory}
	}

	r := &Rotator{
		categories:  append([]Category(nil), categories...),
		probability: DefaultOverrideProbability,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	r.cursor = len(r.categories) - 1

	return r
}

// Next advances the cursor and returns the category due now.
func (r *Rotator) Next() Category {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cursor = (r.cursor + 1) % len(r.categories)
	if r.probability > 0 && r.rng.Float64() < r.probability {
		return r.categories[r.rng.IntN(len(r.categories))]
	}

	return r.categories[r.cursor]
}

// Categories returns a copy of the rotation list.
func (r *Rotator) Categories() []Category {
	return append([]Category(nil), r.categories...)
}

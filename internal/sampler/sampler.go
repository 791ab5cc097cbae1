// Package sampler implements weighted random selection over item
// pools. It is pure: no state, no I/O, randomness injected by the
// caller.
package sampler

import (
	"fmt"
	"math/rand"

	"github.com/lootvault/lootvault/internal/domain"
)

// Entry is one weighted member of a pool.
type Entry[T any] struct {
	Weight float64
	Ref    T
}

// Sample draws n independent samples from the pool, each proportional
// to entry weight.
//
// Boundary rule: a draw value that lands exactly on a cumulative
// weight boundary selects the NEXT entry (strict < comparison). This
// keeps the rule deterministic instead of depending on floating-point
// comparison order.
//
// The pool must be non-empty with a positive total weight; otherwise
// domain.ErrInvalidPool is returned. Entries with zero weight are
// never selected.
func Sample[T any](rng *rand.Rand, pool []Entry[T], n int) ([]T, error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: empty pool", domain.ErrInvalidPool)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative sample count %d", domain.ErrInvalidPool, n)
	}

	var total float64
	for i, e := range pool {
		if e.Weight < 0 {
			return nil, fmt.Errorf("%w: negative weight at index %d", domain.ErrInvalidPool, i)
		}
		total += e.Weight
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: total weight is zero", domain.ErrInvalidPool)
	}

	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, pick(rng, pool, total))
	}
	return out, nil
}

func pick[T any](rng *rand.Rand, pool []Entry[T], total float64) T {
	v := rng.Float64() * total

	var cum float64
	for _, e := range pool {
		cum += e.Weight
		if v < cum {
			return e.Ref
		}
	}
	// Float accumulation can leave v a hair above the final cumulative
	// sum; the last positively weighted entry wins.
	for i := len(pool) - 1; i >= 0; i-- {
		if pool[i].Weight > 0 {
			return pool[i].Ref
		}
	}
	return pool[len(pool)-1].Ref
}

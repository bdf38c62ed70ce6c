package scheduler

import (
	"context"
	"math"
	"slices"
	"sync"
)

const cancelCheckEvery = 1024

// evaluateFunc scores one permutation. It must not keep perm.
type evaluateFunc func(rank int64, perm []int) int64

type searchBest struct {
	permutation []int
	score       int64
	rank        int64
	evaluated   int64
}

func (b *searchBest) isBetter(score, rank int64) bool {
	if b.permutation == nil {
		return true
	}

	if score != b.score {
		return score < b.score
	}

	return rank < b.rank
}

// runSearch evaluates all permutations of [0, n) on a worker pool, one subtree
// per leading element, and reduces to the lowest score, lowest rank on ties.
func runSearch(ctx context.Context, n, workers int, evaluate evaluateFunc) (*searchBest, error) {
	roots := make(chan int, n)

	for first := range n {
		roots <- first
	}

	close(roots)

	var (
		mu     sync.Mutex
		result = searchBest{
			score: math.MaxInt64,
		}

		wg sync.WaitGroup
	)

	for range min(workers, n) {
		wg.Add(1)

		go func() {
			defer wg.Done()

			local := searchBest{
				score: math.MaxInt64,
			}

		subtrees:
			for first := range roots {
				generator := newPermutationGenerator(n, first)

				for generator.next() {
					if local.evaluated%cancelCheckEvery == 0 && ctx.Err() != nil {
						break subtrees
					}

					perm := generator.permutation()
					score := evaluate(generator.rank, perm)
					local.evaluated++

					if local.isBetter(score, generator.rank) {
						local.permutation = slices.Clone(perm)
						local.score = score
						local.rank = generator.rank
					}
				}
			}

			mu.Lock()
			defer mu.Unlock()

			result.evaluated = result.evaluated + local.evaluated

			if local.permutation != nil && result.isBetter(local.score, local.rank) {
				result.permutation = local.permutation
				result.score = local.score
				result.rank = local.rank
			}
		}()
	}

	wg.Wait()

	if errCtx := ctx.Err(); errCtx != nil {
		return nil,
			errCtx
	}

	return &result,
		nil
}

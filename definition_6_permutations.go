package scheduler

import "fmt"

// permutationCount returns n! or ErrSearchSpaceTooLarge when n is above limit
// or above hardLimit.
func permutationCount(n, limit, hardLimit int, what string) (int64, error) {
	hardLimit = min(hardLimit, hardMaxPermutable)

	if n > limit || n > hardLimit {
		return 0,
			fmt.Errorf(
				"%w: %d %s, maximum %d",
				ErrSearchSpaceTooLarge,
				n,
				what,
				min(limit, hardLimit),
			)
	}

	return factorial(n),
		nil
}

func factorial(n int) int64 {
	result := int64(1)

	for i := 2; i <= n; i++ {
		result = result * int64(i)
	}

	return result
}

// permutationGenerator walks, in lexicographic order, the permutations of
// [0, n) that start with a fixed element.
type permutationGenerator struct {
	current []int
	rank    int64 // lexicographic rank among all n! permutations

	started bool
}

func newPermutationGenerator(n, first int) *permutationGenerator {
	current := make([]int, 0, n)
	current = append(current, first)

	for i := range n {
		if i != first {
			current = append(current, i)
		}
	}

	return &permutationGenerator{
		current: current,
		rank:    int64(first)*factorial(n-1) - 1,
	}
}

// next advances to the following permutation, false when the subtree is exhausted.
func (g *permutationGenerator) next() bool {
	g.rank++

	if !g.started {
		g.started = true

		return true
	}

	tail := g.current[1:]

	i := len(tail) - 2
	for i >= 0 && tail[i] >= tail[i+1] {
		i--
	}

	if i < 0 {
		return false
	}

	j := len(tail) - 1
	for tail[j] <= tail[i] {
		j--
	}

	tail[i], tail[j] = tail[j], tail[i]

	for l, r := i+1, len(tail)-1; l < r; l, r = l+1, r-1 {
		tail[l], tail[r] = tail[r], tail[l]
	}

	return true
}

// permutation is read only, valid until the next call to next.
func (g *permutationGenerator) permutation() []int {
	return g.current
}

package ga

import (
	"math/rand"
	"sort"
)

// rouletteWeights converts raw fitness values (lower is better) into
// selection weights (higher is better) by inverting against the worst
// value in the population, as original_source/optimization.py's
// roulette_wheel_selection does with max(fitnesses) - f + epsilon.
func rouletteWeights(fitness []float64) []float64 {
	worst := fitness[0]
	for _, f := range fitness {
		if f > worst {
			worst = f
		}
	}
	const epsilon = 1e-2
	weights := make([]float64, len(fitness))
	for i, f := range fitness {
		weights[i] = worst - f + epsilon
	}
	return weights
}

// prefixSum builds a cumulative-sum table of weights for binary-search
// sampling.
func prefixSum(weights []float64) []float64 {
	sums := make([]float64, len(weights))
	running := 0.0
	for i, w := range weights {
		running += w
		sums[i] = running
	}
	return sums
}

// RouletteSelect picks one individual index with probability proportional
// to its inverted fitness, using a prefix-sum table and binary search
// (spec.md §4.4's "roulette selection via prefix-sum + binary search").
func RouletteSelect(fitness []float64, rng *rand.Rand) int {
	weights := rouletteWeights(fitness)
	sums := prefixSum(weights)
	total := sums[len(sums)-1]
	target := rng.Float64() * total
	idx := sort.Search(len(sums), func(i int) bool { return sums[i] >= target })
	if idx >= len(sums) {
		idx = len(sums) - 1
	}
	return idx
}

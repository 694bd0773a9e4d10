package epidemic

import (
	"math"
	"math/rand"
)

// sampleState implements the competing-hazards rule of spec §4.5.
// options holds the possible successor states with the final entry
// meaning "no transition this tick"; weights holds one raw hazard per
// non-stay option, in the same order. Each w_i is preserved as the
// exact marginal probability of option i firing on this tick — the
// "stay" weight is reconstructed from the product of survivals rather
// than folded into a naively renormalized distribution (spec §9 design
// notes; pinned statistically by §8 scenario 6).
//
// rng is the Simulation's own generator (see SPEC_FULL.md §4 EXPANSION)
// rather than rv's process-global source, so that concurrently running
// Simulations never perturb each other's draws.
func sampleState(rng *rand.Rand, options []Kind, weights []float64) Kind {
	if len(options) != len(weights)+1 {
		panic("sampleState: options must hold exactly one more entry than weights")
	}

	lnStay := 0.0
	sumW := 0.0
	for _, w := range weights {
		lnStay += math.Log1p(-w)
		sumW += w
	}
	pStay := math.Exp(lnStay)

	var wStay float64
	if pStay < 1 {
		wStay = pStay * sumW / (1 - pStay)
	} else {
		wStay = pStay
	}

	full := make([]float64, len(weights)+1)
	copy(full, weights)
	full[len(full)-1] = wStay

	return options[categorical(rng, full)]
}

// categorical draws a single index proportional to an unnormalized
// non-negative weight list (spec §4.5 step 3). A zero-sum list selects
// the last index, matching sampleState's convention that the last
// option is always "stay" and is the correct fallback when every
// weight collapsed to zero.
func categorical(rng *rand.Rand, weights []float64) int {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		return len(weights) - 1
	}
	u := rng.Float64() * sum
	acc := 0.0
	for i, w := range weights {
		acc += w
		if u < acc {
			return i
		}
	}
	return len(weights) - 1
}

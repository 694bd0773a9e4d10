package epidemic

import (
	"math"
	"math/rand"
	"testing"
)

func TestSampleStateAllZeroWeightsStays(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	options := []Kind{Immune, Detected, Severe, Infected}
	weights := []float64{0, 0, 0}
	for i := 0; i < 100; i++ {
		if got := sampleState(rng, options, weights); got != Infected {
			t.Errorf(UnequalStringFieldError, "sampleState with all-zero weights", "Infected", got.String())
		}
	}
}

func TestSampleStateMandatoryTransition(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	options := []Kind{Immune, Infected}
	weights := []float64{1}
	for i := 0; i < 100; i++ {
		if got := sampleState(rng, options, weights); got != Immune {
			t.Errorf(UnequalStringFieldError, "sampleState with w=1", "Immune", got.String())
		}
	}
}

// TestSampleStateMarginals pins spec §8 scenario 6: with hazards
// (0.1, 0.1, 0.1) the empirical one-step outcome probabilities should
// match (0.1, 0.1, 0.1, 0.7) within statistical tolerance.
func TestSampleStateMarginals(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	options := []Kind{Immune, Detected, Severe, Infected}
	weights := []float64{0.1, 0.1, 0.1}

	const trials = 200000
	counts := map[Kind]int{}
	for i := 0; i < trials; i++ {
		counts[sampleState(rng, options, weights)]++
	}

	want := map[Kind]float64{Immune: 0.1, Detected: 0.1, Severe: 0.1, Infected: 0.7}
	for k, wantP := range want {
		gotP := float64(counts[k]) / float64(trials)
		if math.Abs(gotP-wantP) > 0.01 {
			t.Errorf("marginal for %s: want ~%.3f, got %.3f", k, wantP, gotP)
		}
	}
}

func TestCategoricalZeroSumPicksLast(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := categorical(rng, []float64{0, 0, 0}); got != 2 {
		t.Errorf(UnequalIntFieldError, "categorical zero-sum index", 2, got)
	}
}

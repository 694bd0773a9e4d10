package epidemic

// Profile is a finite, ordered hazard curve: the per-day probability of a
// specific transition, read by age-in-state. An empty profile is
// permitted and behaves as "always zero" (spec §7, configuration
// invalid).
type Profile []float64

// At returns v[i] when i is within range, and the last entry otherwise
// (satIndex, spec §4.1). A nil/empty profile yields 0 for every index.
func (v Profile) At(i int) float64 {
	if len(v) == 0 {
		return 0
	}
	if i < len(v) {
		return v[i]
	}
	return v[len(v)-1]
}

// satIndex is the free-function form used where a literal slice, rather
// than a named Profile, is more natural to read at the call site.
func satIndex(v []float64, i int) float64 {
	return Profile(v).At(i)
}

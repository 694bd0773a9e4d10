package epidemic

// Layer is an undirected graph over [0,N) stored split per node: for
// node i, left(i) = {j < i : i~j} and right(i) = {j > i : i~j} (spec
// §4.2). Edges are stored as slices, not sets: the population builder
// and NPI edits are responsible for never inserting the same edge
// twice, which keeps neighbor order deterministic across runs given the
// same seed — a set-backed graph would shuffle iteration order between
// runs and break reproducibility of the RNG-driven engine. The
// bounded, de-duplicated contact-tracing structure
// (ChainSet) is a distinct type that does need set semantics and is
// defined separately.
type Layer struct {
	left  [][]int
	right [][]int
}

// NewLayer creates an empty layer with no nodes.
func NewLayer() *Layer {
	return &Layer{}
}

// RegisterNode appends an empty adjacency and returns its id, which
// equals the prior size of the layer.
func (l *Layer) RegisterNode() int {
	id := len(l.left)
	l.left = append(l.left, nil)
	l.right = append(l.right, nil)
	return id
}

// Size returns the number of registered nodes.
func (l *Layer) Size() int {
	return len(l.left)
}

// AddLink inserts an undirected edge i~j. min(i,j) is appended to the
// left of max(i,j); max(i,j) is appended to the right of min(i,j).
// Callers must not add the same edge twice.
func (l *Layer) AddLink(i, j int) {
	if i == j {
		return
	}
	lo, hi := i, j
	if lo > hi {
		lo, hi = hi, lo
	}
	l.left[hi] = append(l.left[hi], lo)
	l.right[lo] = append(l.right[lo], hi)
}

// RemoveLink removes the undirected edge i~j if present. Only used by
// the world-connection-culling NPI (spec §4.7); other layers are
// static after construction.
func (l *Layer) RemoveLink(i, j int) {
	lo, hi := i, j
	if lo > hi {
		lo, hi = hi, lo
	}
	l.left[hi] = removeValue(l.left[hi], lo)
	l.right[lo] = removeValue(l.right[lo], hi)
}

func removeValue(s []int, v int) []int {
	for idx, x := range s {
		if x == v {
			s[idx] = s[len(s)-1]
			return s[:len(s)-1]
		}
	}
	return s
}

// Neighbors returns the full neighborhood of i: left(i) concatenated
// with right(i). The returned slice is a fresh copy safe to retain
// across the engine's read of current-tick state.
func (l *Layer) Neighbors(i int) []int {
	out := make([]int, 0, len(l.left[i])+len(l.right[i]))
	out = append(out, l.left[i]...)
	out = append(out, l.right[i]...)
	return out
}

// HasLink reports whether i~j exists.
func (l *Layer) HasLink(i, j int) bool {
	lo, hi := i, j
	if lo > hi {
		lo, hi = hi, lo
	}
	for _, x := range l.left[hi] {
		if x == lo {
			return true
		}
	}
	return false
}

// Edge is an undirected pair with lo < hi, as produced by Edges.
type Edge struct {
	Lo, Hi int
}

// Edges enumerates every edge exactly once, yielding (lo, hi) with
// lo < hi by construction. Used by the world-connection-culling NPI,
// which only needs to walk left_nodes (spec §9, Open Question):
// because the layer is symmetric, removing the lo/hi pair via
// RemoveLink is sufficient to remove both half-edges.
func (l *Layer) Edges() []Edge {
	var edges []Edge
	for hi, lows := range l.left {
		for _, lo := range lows {
			edges = append(edges, Edge{Lo: lo, Hi: hi})
		}
	}
	return edges
}

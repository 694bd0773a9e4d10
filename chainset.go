package epidemic

// cohort is one FIFO-ordered day bucket inside a ChainSet: membership
// checks are O(1) via the set, while order is preserved for
// deterministic front-to-back draining.
type cohort struct {
	order []int
	set   map[int]struct{}
}

func newCohort() *cohort {
	return &cohort{set: make(map[int]struct{})}
}

func (c *cohort) has(v int) bool {
	_, ok := c.set[v]
	return ok
}

func (c *cohort) add(v int) {
	if c.has(v) {
		return
	}
	c.order = append(c.order, v)
	c.set[v] = struct{}{}
}

func (c *cohort) remove(v int) {
	if !c.has(v) {
		return
	}
	delete(c.set, v)
	for i, x := range c.order {
		if x == v {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *cohort) popFront() (int, bool) {
	if len(c.order) == 0 {
		return 0, false
	}
	v := c.order[0]
	c.order = c.order[1:]
	delete(c.set, v)
	return v, true
}

func (c *cohort) len() int {
	return len(c.set)
}

// ChainSet is a deque of hash sets supporting cohort-wise expiry: a
// bounded, de-duplicated, age-layered set used for contact tracing
// (spec §4.6). Insertion always targets the back cohort; age-out drops
// the front cohort. Bounded daily throughput with FIFO expiry and
// constant-time containment checks, without re-hashing the whole
// structure on every drain (spec §4.6 design notes).
type ChainSet struct {
	layers []*cohort
}

// NewChainSet creates an empty ChainSet with no cohorts.
func NewChainSet() *ChainSet {
	return &ChainSet{}
}

// PushBack appends a new empty cohort, starting a new day's bucket.
func (c *ChainSet) PushBack() {
	c.layers = append(c.layers, newCohort())
}

// DropEmptyFront removes leading cohorts that are empty.
func (c *ChainSet) DropEmptyFront() {
	i := 0
	for i < len(c.layers) && c.layers[i].len() == 0 {
		i++
	}
	c.layers = c.layers[i:]
}

// DropFront unconditionally removes the oldest cohort, if any.
func (c *ChainSet) DropFront() {
	if len(c.layers) > 0 {
		c.layers = c.layers[1:]
	}
}

// Contains reports whether v is present in any cohort.
func (c *ChainSet) Contains(v int) bool {
	for _, l := range c.layers {
		if l.has(v) {
			return true
		}
	}
	return false
}

// Insert adds v to the back cohort, creating one first if none exists.
func (c *ChainSet) Insert(v int) {
	if len(c.layers) == 0 {
		c.PushBack()
	}
	c.layers[len(c.layers)-1].add(v)
}

// Remove deletes v from whichever cohort holds it, a no-op if absent.
func (c *ChainSet) Remove(v int) {
	for _, l := range c.layers {
		l.remove(v)
	}
}

// Len returns the total member count across all cohorts.
func (c *ChainSet) Len() int {
	n := 0
	for _, l := range c.layers {
		n += l.len()
	}
	return n
}

// EvictFront removes and returns the oldest member of the oldest
// nonempty cohort, used when a higher-priority insertion must make
// room under the bounded-capacity rule (spec §4.6).
func (c *ChainSet) EvictFront() (int, bool) {
	for _, l := range c.layers {
		if v, ok := l.popFront(); ok {
			return v, true
		}
	}
	return 0, false
}

// drainFunc is called once per member as a cohort drains, oldest
// cohort first, oldest member first. It returns true when the member
// should be charged against the tick's remaining budget.
type drainFunc func(v int) (charge bool)

// Drain processes cohorts oldest-first, removing and passing each
// member to fn, until budget reaches zero or every cohort empties.
// Returns the budget left over for the next priority layer.
func (c *ChainSet) Drain(budget int, fn drainFunc) int {
	for _, l := range c.layers {
		for budget > 0 {
			v, ok := l.popFront()
			if !ok {
				break
			}
			if fn(v) {
				budget--
			}
		}
		if budget <= 0 {
			break
		}
	}
	return budget
}

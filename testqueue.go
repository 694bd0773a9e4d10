package epidemic

// TestQueue is the bounded contact-tracing structure of spec §4.6:
// three priority layers (family outranks workplace outranks world),
// each a ChainSet, plus a fourth ChainSet of recently-tested agents
// that suppresses re-enqueuing. Total queued size is bounded by 3*D,
// where D is the daily contact-tracing cap.
type TestQueue struct {
	family         *ChainSet
	workplace      *ChainSet
	world          *ChainSet
	recentlyTested *ChainSet
	dailyCap       int
}

// NewTestQueue creates a TestQueue with tracing disabled (daily cap 0)
// until SetMaxContactTracing is called.
func NewTestQueue() *TestQueue {
	return &TestQueue{
		family:         NewChainSet(),
		workplace:      NewChainSet(),
		world:          NewChainSet(),
		recentlyTested: NewChainSet(),
	}
}

// SetMaxContactTracing sets the daily test cap D and, implicitly, the
// queue capacity 3D (spec §4.7).
func (q *TestQueue) SetMaxContactTracing(d int) {
	q.dailyCap = d
}

func (q *TestQueue) capacity() int {
	return 3 * q.dailyCap
}

func (q *TestQueue) size() int {
	return q.family.Len() + q.workplace.Len() + q.world.Len()
}

// InsertFamily enqueues v into the family layer, the highest priority.
func (q *TestQueue) InsertFamily(v int) {
	if q.recentlyTested.Contains(v) || q.family.Contains(v) {
		return
	}
	q.workplace.Remove(v)
	q.world.Remove(v)
	q.insert(q.family, v)
}

// InsertWorkplace enqueues v into the workplace layer, unless family
// already holds it (family is never displaced by workplace).
func (q *TestQueue) InsertWorkplace(v int) {
	if q.recentlyTested.Contains(v) || q.family.Contains(v) || q.workplace.Contains(v) {
		return
	}
	q.world.Remove(v)
	q.insert(q.workplace, v)
}

// InsertWorld enqueues v into the world layer, unless family or
// workplace already holds it (workplace is never displaced by world).
func (q *TestQueue) InsertWorld(v int) {
	if q.recentlyTested.Contains(v) || q.family.Contains(v) || q.workplace.Contains(v) || q.world.Contains(v) {
		return
	}
	q.insert(q.world, v)
}

// insert adds v to target's back cohort, then evicts from the lowest
// nonempty priority layer (world, then workplace, then family) until
// total size is back within capacity 3D.
func (q *TestQueue) insert(target *ChainSet, v int) {
	target.Insert(v)
	for q.size() > q.capacity() {
		if _, ok := q.world.EvictFront(); ok {
			continue
		}
		if _, ok := q.workplace.EvictFront(); ok {
			continue
		}
		if _, ok := q.family.EvictFront(); ok {
			continue
		}
		break
	}
}

// Tick ages the cohorts at the start of a day (spec §4.6): the oldest
// recently_tested cohort expires once time has advanced past the
// first day, empty front cohorts are dropped from every priority
// layer, and a fresh empty back cohort opens each layer's cohort for
// the day's new enqueues.
func (q *TestQueue) Tick(time int) {
	if time > 1 {
		q.recentlyTested.DropFront()
	}
	for _, l := range [...]*ChainSet{q.family, q.workplace, q.world} {
		l.DropEmptyFront()
		l.PushBack()
	}
}

// Drain processes up to n tests today, family first, then workplace,
// then world, oldest cohort first within each layer. An Infected
// member flips to Detected in newstates and its id is returned as a
// found positive; a Susceptible or Immune member is recorded into
// today's recently_tested cohort; anything else is skipped without
// charging the budget. Returns the ids flipped to Detected this drain.
func (q *TestQueue) Drain(n int, newstates []State, counter *Counter) []int {
	var found []int
	var testedToday []int
	process := func(v int) bool {
		switch newstates[v].Kind {
		case Infected:
			counter.Transit(Infected, Detected)
			newstates[v] = State{Kind: Detected, Age: newstates[v].Age}
			found = append(found, v)
			return true
		case Susceptible, Immune:
			testedToday = append(testedToday, v)
			return true
		default:
			return false
		}
	}
	budget := n
	budget = q.family.Drain(budget, process)
	budget = q.workplace.Drain(budget, process)
	q.world.Drain(budget, process)

	q.recentlyTested.PushBack()
	for _, v := range testedToday {
		q.recentlyTested.Insert(v)
	}
	return found
}

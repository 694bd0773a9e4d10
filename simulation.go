package epidemic

import (
	"math/rand"

	"github.com/segmentio/ksuid"
)

// layerCoef holds the undetected/detected contact coefficients for one
// layer, mutated in place by the multiplicative infectivity NPIs
// (spec §4.7).
type layerCoef struct {
	undetected float64
	detected   float64
}

func (c layerCoef) forKind(k Kind) float64 {
	if k == Detected {
		return c.detected
	}
	return c.undetected
}

// Simulation is the core façade of spec §6: New, Tick, Counts, Time,
// DailyR, DailySerialInterval, HospitalCapacity and the five NPI
// setters. It owns every graph, counter and queue for its lifetime;
// teardown is simply letting the value go out of scope (spec §5).
type Simulation struct {
	ID ksuid.KSUID

	cfg  *Config
	pop  *Population
	rng  *rand.Rand
	time int

	states []State

	counter  *Counter
	queue    *TestQueue
	infCause []int

	rAvg      Averager
	serialAvg Averager

	family    layerCoef
	workplace layerCoef
	world     layerCoef

	lastDisabledWorkplace int
	hospitalCapacity      int
}

// NewSimulation validates cfg, builds the population graph (drawing
// from randomvariate's process-global source, per SPEC_FULL.md §4) and
// returns a Simulation seeded with its own *rand.Rand for every
// per-tick stochastic decision, so that concurrently run Simulations
// never perturb each other's draws (SPEC_FULL.md §4 EXPANSION).
func NewSimulation(cfg *Config, seed int64) (*Simulation, error) {
	pop, states, err := BuildPopulation(cfg)
	if err != nil {
		return nil, err
	}

	queue := NewTestQueue()
	queue.SetMaxContactTracing(0)

	sim := &Simulation{
		ID:               ksuid.New(),
		cfg:              cfg,
		pop:              pop,
		rng:              rand.New(rand.NewSource(seed)),
		states:           states,
		counter:          NewCounterFromStates(states),
		queue:            queue,
		infCause:         make([]int, len(states)),
		hospitalCapacity: cfg.Simulation.HospitalCapacity,
		family: layerCoef{
			undetected: cfg.Contact.FamilyUndetected,
			detected:   cfg.Contact.FamilyDetected,
		},
		workplace: layerCoef{
			undetected: cfg.Contact.WorkplaceUndetected,
			detected:   cfg.Contact.WorkplaceDetected,
		},
		world: layerCoef{
			undetected: cfg.Contact.WorldUndetected,
			detected:   cfg.Contact.WorldDetected,
		},
		lastDisabledWorkplace: -1,
	}
	return sim, nil
}

// Time returns the number of days elapsed (spec §6).
func (s *Simulation) Time() int { return s.time }

// HospitalCapacity returns the configured bed count (spec §6).
func (s *Simulation) HospitalCapacity() int { return s.hospitalCapacity }

// Counts returns a snapshot of today's per-state census and inflows
// (spec §6, get_counter).
func (s *Simulation) Counts() map[string]Snapshot { return s.counter.Snapshot() }

// DailyR returns the streaming mean of infections_caused credited to
// agents that exited an infectious state this tick, reset every tick
// (spec §4.4, §4.8).
func (s *Simulation) DailyR() float64 { return s.rAvg.Get() }

// DailySerialInterval returns the streaming mean of serial-interval
// samples recorded this tick (spec §4.4).
func (s *Simulation) DailySerialInterval() float64 { return s.serialAvg.Get() }

// DisableFractionOfWorkplaces implements spec §4.7: agents whose
// workplace id falls below floor(f*W) skip the workplace layer
// entirely in both contagion and tracing enqueue.
func (s *Simulation) DisableFractionOfWorkplaces(f float64) {
	s.lastDisabledWorkplace = int(f * float64(s.pop.NumWorkplaces))
}

// MultiplyWorldInfectability scales the undetected world coefficient
// multiplicatively, cumulative across calls (spec §4.7).
func (s *Simulation) MultiplyWorldInfectability(c float64) {
	s.world.undetected *= c
}

// MultiplyWorkplaceInfectability scales the undetected workplace
// coefficient multiplicatively, cumulative across calls (spec §4.7).
func (s *Simulation) MultiplyWorkplaceInfectability(c float64) {
	s.workplace.undetected *= c
}

// DisableFractionOfWorldConnections permanently removes each world
// edge independently with probability f (spec §4.7). Only left_nodes
// need walking since the layer is symmetric (spec §9, Open Question).
func (s *Simulation) DisableFractionOfWorldConnections(f float64) {
	for _, e := range s.pop.World.Edges() {
		if s.rng.Float64() < f {
			s.pop.World.RemoveLink(e.Lo, e.Hi)
		}
	}
}

// SetMaxContactTracing sets the daily test cap D and queue capacity 3D
// (spec §4.6/§4.7).
func (s *Simulation) SetMaxContactTracing(d int) {
	s.queue.SetMaxContactTracing(d)
}

// Tick advances the simulation by one day (spec §4.4): resets the
// day counter and streaming averages, ages the test queue, computes
// every agent's successor into a shadow state vector without pushing
// infection onto neighbors, drains the test queue against the shadow
// vector, then swaps it in.
func (s *Simulation) Tick() {
	s.counter.ResetDay()
	s.rAvg.Reset()
	s.serialAvg.Reset()
	s.queue.Tick(s.time)

	newstates := make([]State, len(s.states))
	copy(newstates, s.states)

	for i := range s.states {
		s.stepAgent(i, newstates)
	}

	budget := s.queue.dailyCap
	found := s.queue.Drain(budget, newstates, s.counter)
	for _, v := range found {
		s.enqueueNeighbors(v)
	}

	s.states = newstates
	s.time++
}

// stepAgent computes agent i's successor state from the current
// (pre-tick) snapshot and writes it into newstates[i] (spec §4.4).
func (s *Simulation) stepAgent(i int, newstates []State) {
	cur := s.states[i]
	switch cur.Kind {
	case Susceptible:
		s.tryInfect(i, newstates)
	case Infected:
		s.stepInfectious(i, cur, newstates, true)
	case Detected:
		s.stepInfectious(i, cur, newstates, false)
	case Unattended:
		if s.counter.Abs(Severe) >= s.hospitalCapacity {
			s.transit(i, cur, State{Kind: Dead}, newstates)
		} else {
			s.transit(i, cur, State{Kind: Severe, Age: 1}, newstates)
		}
	case Severe:
		s.stepSevere(i, cur, newstates)
	case Immune:
		s.stepImmune(i, cur, newstates)
	case Dead:
		// absorbing
	}
}

// transit records a Kind-level transition through Counter.Transit and
// writes the new state into newstates[i].
func (s *Simulation) transit(i int, from, to State, newstates []State) {
	if from.Kind != to.Kind {
		s.counter.Transit(from.Kind, to.Kind)
	}
	newstates[i] = to
}

// tryInfect implements get_infected (spec §4.4): layers are tried in
// order family, workplace, world; the first successful draw wins and
// short-circuits the rest. Infection is pulled by the susceptible
// agent by reading the *current* tick's state vector, never pushed by
// the source during its own step, so no agent's successor depends on
// another agent's successor computed in the same scan.
func (s *Simulation) tryInfect(i int, newstates []State) {
	if s.tryInfectLayer(i, s.pop.Family, s.family, newstates) {
		return
	}
	if s.lastDisabledWorkplace < 0 || s.pop.WorkplaceOf[i] >= s.lastDisabledWorkplace {
		if s.tryInfectLayer(i, s.pop.Workplace, s.workplace, newstates) {
			return
		}
	}
	s.tryInfectLayer(i, s.pop.World, s.world, newstates)
}

func (s *Simulation) tryInfectLayer(i int, layer *Layer, coef layerCoef, newstates []State) bool {
	hp := s.cfg.Hazards.SusceptibleInfected
	for _, j := range layer.Neighbors(i) {
		src := s.states[j]
		if !src.IsInfectious() {
			continue
		}
		p := coef.forKind(src.Kind) * hp.At(src.Age)
		if s.rng.Float64() < p {
			s.transit(i, State{Kind: Susceptible}, State{Kind: Infected, Age: 0}, newstates)
			s.infCause[j]++
			s.serialAvg.Push(src.Age)
			return true
		}
	}
	return false
}

// stepInfectious handles both Infected(t) and Detected(t) (spec §4.4).
// undetected selects whether the infected->detected hazard applies
// (only true branches to Detected; Detected cannot re-detect).
func (s *Simulation) stepInfectious(i int, cur State, newstates []State, undetected bool) {
	t := cur.Age
	hImm := s.cfg.Hazards.InfectedImmune.At(t)
	hSev := s.cfg.Hazards.InfectedSevere.At(t)

	var options []Kind
	var weights []float64
	if undetected {
		hDet := s.cfg.Hazards.InfectedDetected.At(t)
		options = []Kind{Immune, Detected, Severe, cur.Kind}
		weights = []float64{hImm, hDet, hSev}
	} else {
		options = []Kind{Immune, Severe, cur.Kind}
		weights = []float64{hImm, hSev}
	}

	severeTarget := Severe
	if s.counter.Abs(Severe) >= s.hospitalCapacity {
		severeTarget = Unattended
	}
	for idx, k := range options {
		if k == Severe {
			options[idx] = severeTarget
		}
	}

	next := sampleState(s.rng, options, weights)
	if next == cur.Kind {
		s.transit(i, cur, cur.Aged(), newstates)
		return
	}

	switch next {
	case Immune:
		s.creditExit(i)
		s.transit(i, cur, State{Kind: Immune, Age: 0}, newstates)
	case Detected:
		s.transit(i, cur, State{Kind: Detected, Age: t}, newstates)
		s.enqueueNeighbors(i)
	case Severe:
		s.creditExit(i)
		s.transit(i, cur, State{Kind: Severe, Age: 0}, newstates)
	case Unattended:
		s.creditExit(i)
		s.transit(i, cur, State{Kind: Unattended}, newstates)
	}
}

// creditExit records infections_caused[i] into the daily R average
// and resets it, done whenever an agent leaves an infectious state
// (spec §4.4).
func (s *Simulation) creditExit(i int) {
	s.rAvg.Push(s.infCause[i])
	s.infCause[i] = 0
}

// stepSevere handles Severe(t): competing hazards over
// (severe_immune[t], severe_dead[t]) (spec §4.4).
func (s *Simulation) stepSevere(i int, cur State, newstates []State) {
	t := cur.Age
	hImm := s.cfg.Hazards.SevereImmune.At(t)
	hDead := s.cfg.Hazards.SevereDead.At(t)
	options := []Kind{Immune, Dead, Severe}
	weights := []float64{hImm, hDead}

	next := sampleState(s.rng, options, weights)
	switch next {
	case Immune:
		s.transit(i, cur, State{Kind: Immune, Age: 0}, newstates)
	case Dead:
		s.transit(i, cur, State{Kind: Dead}, newstates)
	default:
		s.transit(i, cur, cur.Aged(), newstates)
	}
}

// stepImmune handles Immune(t): a single hazard immune_susceptible[t]
// (spec §4.4).
func (s *Simulation) stepImmune(i int, cur State, newstates []State) {
	t := cur.Age
	h := s.cfg.Hazards.ImmuneSusceptible.At(t)
	options := []Kind{Susceptible, Immune}
	weights := []float64{h}

	next := sampleState(s.rng, options, weights)
	if next == Susceptible {
		s.transit(i, cur, State{Kind: Susceptible}, newstates)
	} else {
		s.transit(i, cur, cur.Aged(), newstates)
	}
}

// enqueueNeighbors enqueues agent v's family, workplace and world
// neighbors into the test queue (spec §4.4, §4.6), called both when a
// fresh Detected arises during the scan and for each found-positive
// agent surfaced by the drain. An agent whose workplace has been
// disabled by the workplace-closure NPI skips the workplace layer here
// too, the same way tryInfect skips it for contagion (spec §4.7: "skip
// the workplace layer in contagion and enqueue").
func (s *Simulation) enqueueNeighbors(v int) {
	for _, j := range s.pop.Family.Neighbors(v) {
		s.queue.InsertFamily(j)
	}
	if s.lastDisabledWorkplace < 0 || s.pop.WorkplaceOf[v] >= s.lastDisabledWorkplace {
		for _, j := range s.pop.Workplace.Neighbors(v) {
			s.queue.InsertWorkplace(j)
		}
	}
	for _, j := range s.pop.World.Neighbors(v) {
		s.queue.InsertWorld(j)
	}
}

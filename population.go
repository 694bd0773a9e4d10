package epidemic

import (
	"math/rand"

	rv "github.com/kentwait/randomvariate"
)

// Population is the static 3-layer contact graph of spec §4.2: every
// agent is a node in all three layers, with family the densest and
// world the sparsest. WorkplaceOf maps each agent to its workplace id,
// a separate enumeration space from the agent's graph node id, used by
// the workplace-closure NPI (spec §4.7).
type Population struct {
	Family        *Layer
	Workplace     *Layer
	World         *Layer
	WorkplaceOf   []int
	NumWorkplaces int
}

// BuildPopulation constructs the population graph and the initial
// state vector from cfg (spec §4.3). It draws exclusively from rv's
// process-global source, seeded once by the host at startup
// (`rand.Seed`, following `bin/contagion/main.go`) rather than from any
// per-Simulation generator: graph shape is not one of the quantities
// spec §8 scenario 6 pins to a reproducible per-instance trace.
func BuildPopulation(cfg *Config) (*Population, []State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	family := NewLayer()
	workplace := NewLayer()
	world := NewLayer()

	n := buildFamilies(family, cfg.Simulation.TotalPopulation, cfg.Simulation.FamilySizes, cfg.Simulation.FamilySizeWeights)
	for i := 0; i < n; i++ {
		workplace.RegisterNode()
		world.RegisterNode()
	}

	workplaceOf, numWorkplaces := buildWorkplaces(workplace, n, cfg.Simulation.AverageWorkplaceSize, cfg.Simulation.WorkplaceConnectivity)
	buildWorld(world, n, cfg.Simulation.AverageWorldConnections)

	states := seedOutbreak(n, cfg.Simulation.InitialOutbreakSize)

	pop := &Population{
		Family:        family,
		Workplace:     workplace,
		World:         world,
		WorkplaceOf:   workplaceOf,
		NumWorkplaces: numWorkplaces,
	}
	return pop, states, nil
}

// buildFamilies registers families contiguously (spec §4.3): while the
// layer's total registered node count is below target, sample a
// family size k from the weighted family_sizes table, register k
// brand-new agents, and link every pair of them into a clique.
// Families are never split or clipped to fit the remaining pool, so
// when target is reached mid-family the loop still finishes
// registering that whole family; the final population can therefore
// exceed target by up to max(sizes)-1, exactly as spec §4.3 documents
// ("the last family may over-fill slightly"). Returns the actual
// number of agents registered.
func buildFamilies(family *Layer, target int, sizes []int, weights []float64) int {
	for family.Size() < target {
		size := sizes[weightedIndex(weights)]
		if size < 1 {
			size = 1
		}
		clique := make([]int, size)
		for i := range clique {
			clique[i] = family.RegisterNode()
		}
		for i := 0; i < len(clique); i++ {
			for j := i + 1; j < len(clique); j++ {
				family.AddLink(clique[i], clique[j])
			}
		}
	}
	return family.Size()
}

// buildWorkplaces implements spec §4.3 steps 1-2: W =
// max(1, n/average_workplace_size), where n is the number of agents
// actually registered (so any family overfill counts; total_population
// itself is not used here); each agent g, in
// index order, is assigned a uniformly-picked workplace in [0,W), then
// linked to a Binomial(|S|, workplace_connectivity) count of distinct
// members already in that workplace (S), drawn without replacement,
// before g itself is appended to S. Grounded in the teacher's use of
// `rv.Binomial` for per-site draws (`spreader.go`).
func buildWorkplaces(workplace *Layer, n int, avgSize, connectivity float64) ([]int, int) {
	w := int(float64(n) / avgSize)
	if w < 1 {
		w = 1
	}

	workplaceOf := make([]int, n)
	members := make([][]int, w)

	for g := 0; g < n; g++ {
		wp := rand.Intn(w)
		workplaceOf[g] = wp

		s := members[wp]
		m := rv.Binomial(len(s), connectivity)
		for _, idx := range rand.Perm(len(s))[:m] {
			workplace.AddLink(g, s[idx])
		}
		members[wp] = append(s, g)
	}
	return workplaceOf, w
}

// buildWorld implements spec §4.3 step 3: p_world =
// min(1, average_world_connections/n), with n the number of agents
// actually registered rather than total_population; each agent g, in
// index order, links to a Binomial(g, p_world) count of distinct
// predecessors in [0,g), drawn without replacement.
func buildWorld(world *Layer, n int, avgConnections float64) {
	pWorld := avgConnections / float64(n)
	if pWorld > 1 {
		pWorld = 1
	}
	for g := 0; g < n; g++ {
		if g == 0 {
			continue
		}
		m := rv.Binomial(g, pWorld)
		for _, j := range rand.Perm(g)[:m] {
			world.AddLink(g, j)
		}
	}
}

// weightedIndex draws an index into weights proportional to its value,
// using rv's process-global source via a single multinomial trial.
func weightedIndex(weights []float64) int {
	counts := rv.Multinomial(1, normalize(weights))
	for i, c := range counts {
		if c > 0 {
			return i
		}
	}
	return len(weights) - 1
}

func normalize(weights []float64) []float64 {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	out := make([]float64, len(weights))
	for i, w := range weights {
		out[i] = w / sum
	}
	return out
}

// seedOutbreak returns the initial state vector: outbreakSize agents
// chosen uniformly without replacement start Infected at age 0, the
// rest start Susceptible (spec §4.3).
func seedOutbreak(n, outbreakSize int) []State {
	states := make([]State, n)
	for i := range states {
		states[i] = NewState(Susceptible)
	}
	if outbreakSize > n {
		outbreakSize = n
	}
	order := rand.Perm(n)
	for _, i := range order[:outbreakSize] {
		states[i] = NewState(Infected)
	}
	return states
}

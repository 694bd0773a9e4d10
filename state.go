package epidemic

// Kind tags which branch of the State sum type an agent currently
// occupies. Declared as a small int enum rather than an interface
// hierarchy so State stays a plain comparable value.
type Kind uint8

const (
	Susceptible Kind = iota
	Infected
	Detected
	Severe
	Unattended
	Immune
	Dead

	numKinds = int(Dead) + 1
)

// stateNames is indexed by Kind and used both for Counter slots and for
// the host-facing serialization names from spec §6.
var stateNames = [numKinds]string{
	Susceptible: "Susceptible",
	Infected:    "Infected (Undetected)",
	Detected:    "Infected (Detected)",
	Severe:      "Severe",
	Unattended:  "Unattended",
	Immune:      "Immune",
	Dead:        "Dead",
}

// String returns the host-facing serialization name for the Kind.
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= numKinds {
		return "Unknown"
	}
	return stateNames[k]
}

// State is a tagged variant over the seven disease states. Age (t) is
// meaningless for Unattended and Dead and is left at zero there.
//
// Invariants: Age is monotonically increasing within a state; any
// transition to a different Kind resets Age to 0, with two exceptions:
// Infected->Detected carries the Infected age over unchanged, and
// Unattended->Severe sets Age to 1 (spec §3).
type State struct {
	Kind Kind
	Age  int
}

// NewState constructs a State of the given kind at age 0.
func NewState(k Kind) State {
	return State{Kind: k}
}

// WithAge returns a copy of the state aged to t.
func (s State) WithAge(t int) State {
	s.Age = t
	return s
}

// Aged returns a copy of the state with Age incremented by one,
// preserving Kind. Used when a per-state successor function decides
// "no transition this tick".
func (s State) Aged() State {
	return State{Kind: s.Kind, Age: s.Age + 1}
}

// IsInfectious reports whether a neighbor in this state can transmit
// infection to a Susceptible neighbor (spec §4.4, get_infected).
func (s State) IsInfectious() bool {
	return s.Kind == Infected || s.Kind == Detected
}

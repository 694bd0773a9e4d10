package epidemic

import "github.com/BurntSushi/toml"

// Config is the enumerated record of effects that seeds a Simulation
// (spec §3). Field layout mirrors the teacher's table-per-concern TOML
// shape (`evoepi_config.go`'s `[simulation]`/`[logging]` tables), split
// into one table per concern instead of one flat struct.
type Config struct {
	Simulation SimulationParams `toml:"simulation"`
	Hazards    HazardParams     `toml:"hazards"`
	Contact    ContactParams    `toml:"contact"`
	Logging    LoggingParams    `toml:"logging"`
}

// SimulationParams controls population construction (spec §4.3).
type SimulationParams struct {
	TotalPopulation         int       `toml:"total_population"`
	InitialOutbreakSize     int       `toml:"initial_outbreak_size"`
	HospitalCapacity        int       `toml:"hospital_capacity"`
	AverageWorkplaceSize    float64   `toml:"average_workplace_size"`
	WorkplaceConnectivity   float64   `toml:"workplace_connectivity"`
	AverageWorldConnections float64   `toml:"average_world_connections"`
	FamilySizes             []int     `toml:"family_sizes"`
	FamilySizeWeights       []float64 `toml:"family_size_weights"`
}

// HazardParams holds the lazy per-day hazard profiles of spec §3,
// clamped by satIndex when read at an age beyond their length.
type HazardParams struct {
	SusceptibleInfected Profile `toml:"susceptible_infected"`
	InfectedDetected    Profile `toml:"infected_detected"`
	InfectedSevere      Profile `toml:"infected_severe"`
	InfectedImmune      Profile `toml:"infected_immune"`
	SevereImmune        Profile `toml:"severe_immune"`
	SevereDead          Profile `toml:"severe_dead"`
	ImmuneSusceptible   Profile `toml:"immune_susceptible"`
}

// ContactParams holds the per-layer contact coefficients for
// undetected versus detected sources (spec §3).
type ContactParams struct {
	FamilyUndetected    float64 `toml:"family_undetected"`
	FamilyDetected      float64 `toml:"family_detected"`
	WorkplaceUndetected float64 `toml:"workplace_undetected"`
	WorkplaceDetected   float64 `toml:"workplace_detected"`
	WorldUndetected     float64 `toml:"world_undetected"`
	WorldDetected       float64 `toml:"world_detected"`
}

// LoggingParams configures the optional DataLogger a host may attach;
// the core engine never reads these fields itself (SPEC_FULL.md §6).
type LoggingParams struct {
	Path string `toml:"path"`
	Freq int    `toml:"freq"`
}

// LoadConfig parses a TOML config file into a Config, following
// the teacher's LoadSingleHostConfig/LoadEvoEpiConfig shape
// (`evoepi_config_loader.go`).
func LoadConfig(path string) (*Config, error) {
	cfg := new(Config)
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants of spec §4.9/§7 before any agent is
// constructed. Zero-length hazard profiles are permitted (treated as
// "always zero"); the checks below catch the cases the spec marks
// fatal at construction.
func (c *Config) Validate() error {
	s := c.Simulation
	if s.TotalPopulation <= 0 {
		return configErrorf(InvalidIntFieldError, "total_population", s.TotalPopulation, "must be > 0")
	}
	if len(s.FamilySizes) == 0 {
		return configErrorf("invalid family_sizes, %s", "must not be empty")
	}
	if len(s.FamilySizes) != len(s.FamilySizeWeights) {
		return configErrorf("invalid family_size_weights, %s", "must have one weight per family size")
	}
	sumWeights := 0.0
	for _, w := range s.FamilySizeWeights {
		if w < 0 {
			return configErrorf(InvalidFloatFieldError, "family_size_weights", w, "must be >= 0")
		}
		sumWeights += w
	}
	if sumWeights <= 0 {
		return configErrorf("invalid family_size_weights, %s", "must have at least one positive weight")
	}
	if s.HospitalCapacity < 0 {
		return configErrorf(InvalidIntFieldError, "hospital_capacity", s.HospitalCapacity, "must be >= 0")
	}
	if s.WorkplaceConnectivity < 0 || s.WorkplaceConnectivity > 1 {
		return configErrorf(InvalidFloatFieldError, "workplace_connectivity", s.WorkplaceConnectivity, "must be in [0,1]")
	}
	for name, p := range map[string]Profile{
		"susceptible_infected": c.Hazards.SusceptibleInfected,
		"infected_detected":    c.Hazards.InfectedDetected,
		"infected_severe":      c.Hazards.InfectedSevere,
		"infected_immune":      c.Hazards.InfectedImmune,
		"severe_immune":        c.Hazards.SevereImmune,
		"severe_dead":          c.Hazards.SevereDead,
		"immune_susceptible":   c.Hazards.ImmuneSusceptible,
	} {
		for _, v := range p {
			if v < 0 || v > 1 {
				return configErrorf(InvalidFloatFieldError, name, v, "must be in [0,1]")
			}
		}
	}
	for name, v := range map[string]float64{
		"family_undetected":    c.Contact.FamilyUndetected,
		"family_detected":      c.Contact.FamilyDetected,
		"workplace_undetected": c.Contact.WorkplaceUndetected,
		"workplace_detected":   c.Contact.WorkplaceDetected,
		"world_undetected":     c.Contact.WorldUndetected,
		"world_detected":       c.Contact.WorldDetected,
	} {
		if v < 0 || v > 1 {
			return configErrorf(InvalidFloatFieldError, name, v, "must be in [0,1]")
		}
	}
	return nil
}

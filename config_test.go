package epidemic

import "testing"

func validConfig() *Config {
	return &Config{
		Simulation: SimulationParams{
			TotalPopulation:         100,
			InitialOutbreakSize:     5,
			HospitalCapacity:        10,
			AverageWorkplaceSize:    8,
			WorkplaceConnectivity:   0.3,
			AverageWorldConnections: 2,
			FamilySizes:             []int{1, 2, 3, 4},
			FamilySizeWeights:       []float64{0.1, 0.2, 0.3, 0.4},
		},
		Hazards: HazardParams{
			SusceptibleInfected: Profile{0.1},
			InfectedDetected:    Profile{0.1},
			InfectedSevere:      Profile{0.05},
			InfectedImmune:      Profile{0.1},
			SevereImmune:        Profile{0.1},
			SevereDead:          Profile{0.05},
			ImmuneSusceptible:   Profile{0.01},
		},
		Contact: ContactParams{
			FamilyUndetected: 0.5, FamilyDetected: 0.1,
			WorkplaceUndetected: 0.2, WorkplaceDetected: 0.05,
			WorldUndetected: 0.05, WorldDetected: 0.01,
		},
	}
}

func TestConfigValidateAcceptsWellFormedConfig(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf(UnexpectedErrorWhileError, "validating a well-formed config", err)
	}
}

func TestConfigValidateRejectsInvalidFields(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
	}{
		{"zero population", func(c *Config) { c.Simulation.TotalPopulation = 0 }},
		{"negative population", func(c *Config) { c.Simulation.TotalPopulation = -1 }},
		{"empty family sizes", func(c *Config) { c.Simulation.FamilySizes = nil }},
		{"mismatched family weights", func(c *Config) { c.Simulation.FamilySizeWeights = []float64{0.1} }},
		{"negative family weight", func(c *Config) { c.Simulation.FamilySizeWeights[0] = -1 }},
		{"all-zero family weights", func(c *Config) {
			for i := range c.Simulation.FamilySizeWeights {
				c.Simulation.FamilySizeWeights[i] = 0
			}
		}},
		{"negative hospital capacity", func(c *Config) { c.Simulation.HospitalCapacity = -1 }},
		{"workplace connectivity above 1", func(c *Config) { c.Simulation.WorkplaceConnectivity = 1.5 }},
		{"workplace connectivity below 0", func(c *Config) { c.Simulation.WorkplaceConnectivity = -0.1 }},
		{"hazard probability above 1", func(c *Config) { c.Hazards.SusceptibleInfected = Profile{1.5} }},
		{"hazard probability negative", func(c *Config) { c.Hazards.InfectedSevere = Profile{-0.1} }},
		{"contact coefficient above 1", func(c *Config) { c.Contact.FamilyUndetected = 1.2 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf(ExpectedErrorWhileError, "validating "+tc.name, "nil")
			}
		})
	}
}

func TestConfigValidateAllowsEmptyHazardProfiles(t *testing.T) {
	cfg := validConfig()
	cfg.Hazards.SusceptibleInfected = nil
	if err := cfg.Validate(); err != nil {
		t.Errorf(UnexpectedErrorWhileError, "validating a config with an empty hazard profile", err)
	}
}

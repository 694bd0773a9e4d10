// Command simulate is a local development/demo harness that plays the
// "host" role described in spec §1: it loads a config, builds a
// Simulation, ticks it, applies a scripted NPI schedule, and logs
// counters through a selected DataLogger. It is not the WASM bridge
// and does not attempt to be one (SPEC_FULL.md §1/§6 EXPANSION).
//
// Grounded in bin/contagion/main.go's flag/instance-loop shape.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	epidemic "github.com/zaharid/epidemicsim"
)

// npiCall is one entry in a JSON-encoded NPI schedule: at tick When,
// invoke the setter named Op with the given Arg.
type npiCall struct {
	When int     `json:"when"`
	Op   string  `json:"op"`
	Arg  float64 `json:"arg"`
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	ticks := flag.Int("ticks", 100, "number of ticks to run")
	loggerType := flag.String("logger", "csv", "data logger type (csv|sqlite)")
	logPath := flag.String("logpath", "simulation.log", "path for the selected logger's output")
	seed := flag.Int64("seed", time.Now().UTC().UnixNano(), "random seed for the per-instance generator")
	npiSchedulePath := flag.String("npi-schedule", "", "optional path to a JSON array of scheduled NPI calls")
	flag.Parse()

	if *configPath == "" {
		log.Fatal("missing -config")
	}

	cfg, err := epidemic.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("error loading config: %s", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %s", err)
	}

	// Population construction draws from rv/math/rand's process-global
	// source (population.go), so it must be seeded here exactly as the
	// teacher's bin/contagion/main.go seeds it before building hosts.
	rand.Seed(*seed)

	sim, err := epidemic.NewSimulation(cfg, *seed)
	if err != nil {
		log.Fatalf("error creating simulation: %s", err)
	}

	var logger epidemic.DataLogger
	switch *loggerType {
	case "csv":
		logger = epidemic.NewCSVLogger(*logPath)
	case "sqlite":
		logger = epidemic.NewSQLiteLogger(*logPath, sim.ID.String())
	default:
		log.Fatalf("%s is not a valid logger type (csv|sqlite)", *loggerType)
	}
	if err := logger.Init(); err != nil {
		log.Fatalf("error initializing logger: %s", err)
	}
	defer logger.Close()

	schedule := loadSchedule(*npiSchedulePath)

	start := time.Now()
	log.Printf("starting run %s\n", sim.ID)
	for t := 0; t < *ticks; t++ {
		applyScheduled(sim, schedule, t)
		sim.Tick()
		row := epidemic.CountsRow{
			RunID:             sim.ID.String(),
			Time:              sim.Time(),
			Counts:            sim.Counts(),
			DailyR:            sim.DailyR(),
			DailySerialInterv: sim.DailySerialInterval(),
		}
		if err := logger.Write(row); err != nil {
			log.Fatalf("error writing tick %d: %s", t, err)
		}
	}
	log.Printf("finished run %s in %s\n", sim.ID, time.Since(start))
}

// loadSchedule reads a JSON array of npiCall entries from path, or
// returns nil if path is empty.
func loadSchedule(path string) []npiCall {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("error opening npi schedule: %s", err)
	}
	defer f.Close()

	var schedule []npiCall
	if err := json.NewDecoder(f).Decode(&schedule); err != nil {
		log.Fatalf("error decoding npi schedule: %s", err)
	}
	return schedule
}

// applyScheduled invokes every scheduled NPI call whose When matches
// tick t.
func applyScheduled(sim *epidemic.Simulation, schedule []npiCall, t int) {
	for _, c := range schedule {
		if c.When != t {
			continue
		}
		switch c.Op {
		case "disable_fraction_of_workplaces":
			sim.DisableFractionOfWorkplaces(c.Arg)
		case "multiply_world_infectability":
			sim.MultiplyWorldInfectability(c.Arg)
		case "multiply_workplace_infectability":
			sim.MultiplyWorkplaceInfectability(c.Arg)
		case "disable_fraction_of_world_connections":
			sim.DisableFractionOfWorldConnections(c.Arg)
		case "set_max_contact_tracing":
			sim.SetMaxContactTracing(int(c.Arg))
		default:
			log.Fatalf("unknown NPI op %q in schedule", c.Op)
		}
	}
}

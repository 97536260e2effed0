// Package config holds RunConfig, the explicit, passed-through run
// parameters of spec.md §4.6. Per spec.md §9 ("Global mutable state"), no
// package-level flag variables are read outside of cmd/campusopt: every
// package below this one receives its configuration as an argument.
package config

import (
	"fmt"

	"campusopt/internal/timetable"
)

// RunConfig is every tunable parameter named in spec.md §4.6.
type RunConfig struct {
	// Population is N, the GA population size. Must be even (spec.md §3).
	Population int
	// Generations is the number of GA generations to run.
	Generations int
	// MutationRate is the per-individual mutation probability, in [0,1].
	MutationRate float64
	// SavingEvery is the checkpoint interval in generations; 0 disables
	// checkpointing.
	SavingEvery int
	// Workers bounds the fitness-evaluation worker pool (spec.md §5).
	Workers int
	// Seed is the GA's random seed (spec.md §5, reproducibility).
	Seed int64

	// CoursesFile is the merged course data JSON input (spec.md §6).
	CoursesFile string
	// RoomsFile is the class-type-to-rooms JSON input (spec.md §6).
	RoomsFile string
	// PreferencesFile is the optional teacher-preferences JSON input.
	PreferencesFile string
	// PopulationFile names an existing checkpoint's population file. No
	// command reads it and no flag sets it: ga.Run always generates a fresh
	// population.
	PopulationFile string

	// OutputDir is where checkpoints and reports are written (spec.md §6).
	OutputDir string

	Weights timetable.Weights

	// SolverTimeLimitSeconds bounds the exact backend's wall-clock budget
	// (spec.md §4.5); 0 means no limit.
	SolverTimeLimitSeconds float64
}

// Default returns the baseline RunConfig used when no flags or config file
// override a value: population 60, 200 generations, 10% mutation, an
// 8-worker pool, checkpoint every 20 generations, default fitness weights.
func Default() RunConfig {
	return RunConfig{
		Population:             60,
		Generations:            200,
		MutationRate:           0.10,
		SavingEvery:            20,
		Workers:                8,
		Seed:                   1,
		CoursesFile:            "courses.json",
		RoomsFile:              "rooms.json",
		OutputDir:              "out",
		Weights:                timetable.DefaultWeights(),
		SolverTimeLimitSeconds: 60,
	}
}

// Validate implements spec.md §7's class-1 input-shape checks that apply
// before the shape of the loaded index is even known: population parity,
// mutation-rate range, and required file paths. Shape errors are fatal and
// must abort before the main loop, per spec.md §7.
func (c RunConfig) Validate() error {
	if c.Population <= 0 || c.Population%2 != 0 {
		return fmt.Errorf("config: population must be a positive even number, got %d", c.Population)
	}
	if c.Generations < 0 {
		return fmt.Errorf("config: generations must be >= 0, got %d", c.Generations)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("config: mutation-rate must be in [0,1], got %f", c.MutationRate)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("config: workers must be >= 1, got %d", c.Workers)
	}
	if c.CoursesFile == "" {
		return fmt.Errorf("config: courses file is required")
	}
	if c.RoomsFile == "" {
		return fmt.Errorf("config: rooms file is required")
	}
	return nil
}

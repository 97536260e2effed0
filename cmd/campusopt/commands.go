package main

import (
	"compress/gzip"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"campusopt/internal/config"
	"campusopt/internal/domain"
	"campusopt/internal/exactsolver"
	"campusopt/internal/ga"
	"campusopt/internal/report"
	"campusopt/internal/timetable"
)

// newGenerateCommand builds the "generate" subcommand: run the genetic
// core of spec.md §4.4 to completion and persist its final outputs
// (spec.md §6), mirroring the teacher's cmdGen/cmdSchedule split in
// cli.go.
func newGenerateCommand() *cobra.Command {
	cfg := config.Default()
	v := viper.New()
	var configFile string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "run the genetic algorithm and persist the best timetable found",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfigFile(v, configFile); err != nil {
				return err
			}
			applyViperOverrides(v, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			ix, prefs, err := loadIndex(cfg)
			if err != nil {
				return err
			}

			outDir := runOutputDir(cfg.OutputDir)
			gaCfg := ga.Config{
				PopulationSize:  cfg.Population,
				Generations:     cfg.Generations,
				MutationRate:    cfg.MutationRate,
				Workers:         cfg.Workers,
				CheckpointEvery: cfg.SavingEvery,
				CheckpointDir:   outDir,
				Weights:         cfg.Weights,
				Seed:            cfg.Seed,
			}

			result, err := ga.Run(ix, prefs, gaCfg)
			if err != nil {
				return fmt.Errorf("campusopt: generate: %w", err)
			}

			if err := ga.SaveFinalOutputs(outDir, ix, result.FinalPopulation, result.Best, result.FitnessHistory, result.ComputingTimes); err != nil {
				log.Printf("campusopt: warning: failed to save final outputs: %v", err)
			}

			log.Printf("best fitness: %.3f (written to %s)", result.BestFitness, outDir)
			audit := report.Run(result.Best, ix, prefs, cfg.Weights)
			report.Print(cmd.OutOrStdout(), audit)
			return nil
		},
	}

	bindCommonFlags(cmd, v, &cfg)
	flags := cmd.Flags()
	flags.IntVar(&cfg.Population, "population", cfg.Population, "GA population size (must be even)")
	flags.IntVar(&cfg.Generations, "generations", cfg.Generations, "number of GA generations to run")
	flags.Float64Var(&cfg.MutationRate, "mutation-rate", cfg.MutationRate, "per-individual mutation probability")
	flags.IntVar(&cfg.SavingEvery, "saving-every", cfg.SavingEvery, "checkpoint interval in generations (0 disables)")
	flags.IntVar(&cfg.Workers, "workers", cfg.Workers, "fitness-evaluation worker pool size")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	flags.StringVar(&configFile, "config", "", "optional YAML/JSON config file")
	return cmd
}

// newSolveCommand builds the "solve" subcommand: run the exact
// branch-and-bound backend of spec.md §4.5 and persist results.json.
func newSolveCommand() *cobra.Command {
	cfg := config.Default()
	v := viper.New()
	var configFile string

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "run the exact branch-and-bound backend within a time budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfigFile(v, configFile); err != nil {
				return err
			}
			applyViperOverrides(v, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			ix, _, err := loadIndex(cfg)
			if err != nil {
				return err
			}

			timeLimit := time.Duration(cfg.SolverTimeLimitSeconds * float64(time.Second))
			result, err := exactsolver.Solve(ix, timeLimit)
			if err != nil {
				return fmt.Errorf("campusopt: solve: %w", err)
			}

			outDir := runOutputDir(cfg.OutputDir)
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("campusopt: create output dir %s: %w", outDir, err)
			}
			if err := writeSolveResults(outDir, result); err != nil {
				log.Printf("campusopt: warning: failed to save solve results: %v", err)
			}
			if result.Assignment != nil {
				if err := saveDenseGobGzip(filepath.Join(outDir, "best.gob.gz"), result.Assignment.Dense(ix)); err != nil {
					log.Printf("campusopt: warning: failed to save best assignment: %v", err)
				}
			}

			log.Printf("outcome: %s objective: %.3f time: %s (written to %s)",
				result.Outcome, result.ObjectiveValue, result.ComputingTime, outDir)
			return nil
		},
	}

	bindCommonFlags(cmd, v, &cfg)
	flags := cmd.Flags()
	flags.Float64Var(&cfg.SolverTimeLimitSeconds, "time-limit", cfg.SolverTimeLimitSeconds, "wall-clock budget in seconds (0 = no limit)")
	flags.StringVar(&configFile, "config", "", "optional YAML/JSON config file")
	return cmd
}

// newScoreCommand builds the "score" subcommand: load a persisted
// assignment and print its fitness-component breakdown (spec.md §4.6).
func newScoreCommand() *cobra.Command {
	cfg := config.Default()
	var assignmentFile string

	cmd := &cobra.Command{
		Use:   "score <assignment.gob.gz>",
		Short: "print the fitness breakdown of a persisted assignment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				assignmentFile = args[0]
			}
			if assignmentFile == "" {
				return fmt.Errorf("campusopt: score requires an assignment file")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ix, prefs, err := loadIndex(cfg)
			if err != nil {
				return err
			}
			a, err := loadDenseAssignment(assignmentFile, ix)
			if err != nil {
				return err
			}

			components := timetable.Measure(a, ix, prefs)
			fitness := timetable.Fitness(a, ix, prefs, cfg.Weights)
			fmt.Fprintf(cmd.OutOrStdout(), "teacher gaps:         %d\n", components.TeacherGaps)
			fmt.Fprintf(cmd.OutOrStdout(), "group gaps:           %d\n", components.GroupGaps)
			fmt.Fprintf(cmd.OutOrStdout(), "preference penalty:   %.3f\n", components.PreferencePenalty)
			fmt.Fprintf(cmd.OutOrStdout(), "teacher room changes: %d\n", components.TeacherRoomChanges)
			fmt.Fprintf(cmd.OutOrStdout(), "group room changes:   %d\n", components.GroupRoomChanges)
			fmt.Fprintf(cmd.OutOrStdout(), "fitness:              %.3f\n", fitness)
			return nil
		},
	}

	bindCommonFlags(cmd, viper.New(), &cfg)
	cmd.Flags().StringVar(&assignmentFile, "assignment", "", "persisted assignment file (best.gob.gz)")
	return cmd
}

// newAuditCommand builds the "audit" subcommand: run the full constraint
// audit of spec.md §4.2 against a persisted assignment (SUPPLEMENTED
// FEATURES: the original's print_constraints_values equivalent).
func newAuditCommand() *cobra.Command {
	cfg := config.Default()
	var assignmentFile string

	cmd := &cobra.Command{
		Use:   "audit <assignment.gob.gz>",
		Short: "run the full hard/soft constraint audit against a persisted assignment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				assignmentFile = args[0]
			}
			if assignmentFile == "" {
				return fmt.Errorf("campusopt: audit requires an assignment file")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ix, prefs, err := loadIndex(cfg)
			if err != nil {
				return err
			}
			a, err := loadDenseAssignment(assignmentFile, ix)
			if err != nil {
				return err
			}

			audit := report.Run(a, ix, prefs, cfg.Weights)
			report.Print(cmd.OutOrStdout(), audit)
			if !audit.Feasible() {
				return fmt.Errorf("campusopt: assignment is infeasible")
			}
			return nil
		},
	}

	bindCommonFlags(cmd, viper.New(), &cfg)
	cmd.Flags().StringVar(&assignmentFile, "assignment", "", "persisted assignment file (best.gob.gz)")
	return cmd
}

// applyViperOverrides copies the subset of RunConfig a config file may
// override into cfg, letting flags (already bound via BindPFlag) win when
// both a flag and a config key are set, per spec.md §4.6.
func applyViperOverrides(v *viper.Viper, cfg *config.RunConfig) {
	if v.IsSet("courses") {
		cfg.CoursesFile = v.GetString("courses")
	}
	if v.IsSet("rooms") {
		cfg.RoomsFile = v.GetString("rooms")
	}
	if v.IsSet("preferences") {
		cfg.PreferencesFile = v.GetString("preferences")
	}
	if v.IsSet("out") {
		cfg.OutputDir = v.GetString("out")
	}
}

func writeSolveResults(dir string, result exactsolver.Result) error {
	type resultsFile struct {
		ObjectiveValue       float64 `json:"objective_value"`
		ComputingTimeSeconds float64 `json:"computing_time_seconds"`
		Outcome              string  `json:"outcome"`
	}
	rf := resultsFile{
		ObjectiveValue:       result.ObjectiveValue,
		ComputingTimeSeconds: result.ComputingTime.Seconds(),
		Outcome:              result.Outcome.String(),
	}
	return saveJSONFile(filepath.Join(dir, "results.json"), rf)
}

func saveJSONFile(path string, v interface{}) error {
	fp, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("campusopt: create %s: %w", path, err)
	}
	defer fp.Close()

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("campusopt: encode %s: %w", path, err)
	}
	return nil
}

func saveDenseGobGzip(path string, dense []bool) error {
	fp, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("campusopt: create %s: %w", path, err)
	}
	defer fp.Close()

	gz := gzip.NewWriter(fp)
	defer gz.Close()

	if err := gob.NewEncoder(gz).Encode(dense); err != nil {
		return fmt.Errorf("campusopt: encode %s: %w", path, err)
	}
	return nil
}

func loadDenseAssignment(path string, ix *domain.Index) (*timetable.Assignment, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("campusopt: open %s: %w", path, err)
	}
	defer fp.Close()

	gz, err := gzip.NewReader(fp)
	if err != nil {
		return nil, fmt.Errorf("campusopt: ungzip %s: %w", path, err)
	}
	defer gz.Close()

	var dense []bool
	if err := gob.NewDecoder(gz).Decode(&dense); err != nil {
		return nil, fmt.Errorf("campusopt: decode %s: %w", path, err)
	}

	return timetable.FromDense(dense, ix)
}

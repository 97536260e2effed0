package ga

import (
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"campusopt/internal/domain"
	"campusopt/internal/generator"
	"campusopt/internal/timetable"
	"gonum.org/v1/gonum/stat"
)

// Config holds the tunable knobs of one GA run (spec.md §4.4, §4.6). The
// zero value is invalid; use NewConfig for sensible defaults.
type Config struct {
	PopulationSize  int
	Generations     int
	MutationRate    float64
	Workers         int
	CheckpointEvery int
	CheckpointDir   string
	Weights         timetable.Weights
	Seed            int64
}

// NewConfig returns a Config with the same defaults as config.Default:
// population 60, 200 generations, 10% mutation rate, an 8-worker fitness
// pool, and a checkpoint every 20 generations.
func NewConfig() Config {
	return Config{
		PopulationSize:  60,
		Generations:     200,
		MutationRate:    0.10,
		Workers:         DefaultWorkers,
		CheckpointEvery: 20,
		Weights:         timetable.DefaultWeights(),
		Seed:            1,
	}
}

// GenerationStat summarizes one generation's fitness distribution. It is
// returned in Result.History and not persisted; fitness_history.json holds
// Result.FitnessHistory instead.
type GenerationStat struct {
	Generation int     `json:"generation"`
	Best       float64 `json:"best"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"stddev"`
}

// Result is the outcome of a full Run.
type Result struct {
	Best        *timetable.Assignment
	BestFitness float64
	// History is a per-generation best/mean/stddev summary, holding the
	// same values the console progress log prints.
	History []GenerationStat
	// FitnessHistory is the literal persisted format of spec.md §6: one
	// inner slice per generation, holding every individual's raw fitness
	// value in population order.
	FitnessHistory [][]float64
	// ComputingTimes is the per-generation wall-time vector of spec.md §6,
	// in seconds.
	ComputingTimes []float64
	// FinalPopulation is the full population of PopulationSize individuals
	// held at the end of the last generation, persisted as the 5-D
	// population.* tensor of spec.md §6.
	FinalPopulation []*timetable.Assignment
}

// Run executes the generational loop of spec.md §4.4: build an initial
// feasible population, then repeatedly evaluate fitness concurrently,
// select parents by roulette, cross over with repair, mutate, and carry
// the best-ever individual forward outside the population (elitism),
// checkpointing every CheckpointEvery generations.
func Run(ix *domain.Index, prefs domain.Preferences, cfg Config) (*Result, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))

	population, err := generator.Population(ix, rng, cfg.PopulationSize, 50)
	if err != nil {
		return nil, err
	}

	if cfg.CheckpointDir != "" && cfg.CheckpointEvery > 0 {
		if err := os.MkdirAll(cfg.CheckpointDir, 0o755); err != nil {
			log.Printf("checkpoint directory %s not created: %v", cfg.CheckpointDir, err)
		}
	}

	var best *timetable.Assignment
	bestFitness := 0.0
	history := make([]GenerationStat, 0, cfg.Generations)
	fitnessHistory := make([][]float64, 0, cfg.Generations)
	computingTimes := make([]float64, 0, cfg.Generations)

	for gen := 0; gen < cfg.Generations; gen++ {
		genStart := time.Now()
		fitness := EvaluatePopulation(ix, prefs, population, cfg.Weights, cfg.Workers)

		genBestIdx := 0
		for i, f := range fitness {
			if f < fitness[genBestIdx] {
				genBestIdx = i
			}
		}
		if best == nil || fitness[genBestIdx] < bestFitness {
			best = population[genBestIdx].Clone()
			bestFitness = fitness[genBestIdx]
		}

		mean, stddev := stat.MeanStdDev(fitness, nil)
		history = append(history, GenerationStat{Generation: gen, Best: bestFitness, Mean: mean, StdDev: stddev})
		fitnessHistory = append(fitnessHistory, append([]float64(nil), fitness...))
		log.Printf("generation %d: best=%.3f mean=%.3f stddev=%.3f", gen, bestFitness, mean, stddev)

		if cfg.CheckpointDir != "" && cfg.CheckpointEvery > 0 && gen%cfg.CheckpointEvery == 0 {
			path := checkpointPath(cfg.CheckpointDir, gen)
			if err := SaveCheckpoint(path, ix, gen, population, best, bestFitness); err != nil {
				log.Printf("checkpoint failed at generation %d: %v", gen, err)
			}
		}

		population = nextGeneration(ix, population, fitness, cfg, rng)
		computingTimes = append(computingTimes, time.Since(genStart).Seconds())
	}

	return &Result{
		Best:            best,
		BestFitness:     bestFitness,
		History:         history,
		FitnessHistory:  fitnessHistory,
		ComputingTimes:  computingTimes,
		FinalPopulation: population,
	}, nil
}

// nextGeneration implements spec.md §4.4's select -> crossover -> repair ->
// mutate phases in full: draw N parents by roulette selection (in index
// order, per spec.md §5's ordering guarantee), pair them up adjacently
// after a uniform shuffle, and run each pair through CrossoverPair to
// produce two children. Elitism (spec.md §4.4) keeps the best-ever
// individual tracked separately in Run; it is NOT reinserted into the
// population here.
func nextGeneration(ix *domain.Index, population []*timetable.Assignment, fitness []float64, cfg Config, rng *rand.Rand) []*timetable.Assignment {
	n := len(population)

	parents := make([]*timetable.Assignment, n)
	for i := 0; i < n; i++ {
		parents[i] = population[RouletteSelect(fitness, rng)]
	}
	rng.Shuffle(n, func(i, j int) { parents[i], parents[j] = parents[j], parents[i] })

	next := make([]*timetable.Assignment, 0, n)
	for i := 0; i+1 < n; i += 2 {
		childA, childB := CrossoverPair(ix, parents[i], parents[i+1], rng)
		Repair(ix, childA, rng)
		Repair(ix, childB, rng)
		if rng.Float64() < cfg.MutationRate {
			Mutate(ix, childA, rng)
		}
		if rng.Float64() < cfg.MutationRate {
			Mutate(ix, childB, rng)
		}
		next = append(next, childA, childB)
	}
	if len(next) < n {
		// n was odd (should not happen once RunConfig validation rejects
		// an odd population size, per spec.md §4.6); fill the last slot
		// by cloning the final child rather than dropping an individual.
		next = append(next, next[len(next)-1].Clone())
	}
	return next
}

func checkpointPath(dir string, generation int) string {
	return dir + "/checkpoint-gen-" + strconv.Itoa(generation) + ".gob.gz"
}

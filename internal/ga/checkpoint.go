package ga

import (
	"compress/gzip"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"campusopt/internal/domain"
	"campusopt/internal/timetable"
)

// Checkpoint is the on-disk snapshot written every CheckpointEvery
// generations (spec.md §4.4, §6): the full population and the best
// individual found so far, stored as dense boolean tensors (the literal
// representation required for persistence) and gzip+gob compressed to
// keep the C*T*R*S tensors small on disk.
type Checkpoint struct {
	Generation  int
	Population  [][]bool
	Best        []bool
	BestFitness float64
}

// SaveCheckpoint writes population (as dense tensors) and the current best
// individual to path, gzip-compressed gob.
func SaveCheckpoint(path string, ix *domain.Index, generation int, population []*timetable.Assignment, best *timetable.Assignment, bestFitness float64) error {
	dense := make([][]bool, len(population))
	for i, a := range population {
		dense[i] = a.Dense(ix)
	}

	cp := Checkpoint{
		Generation:  generation,
		Population:  dense,
		Best:        best.Dense(ix),
		BestFitness: bestFitness,
	}

	fp, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ga: create checkpoint %s: %w", path, err)
	}
	defer fp.Close()

	gz := gzip.NewWriter(fp)
	defer gz.Close()

	if err := gob.NewEncoder(gz).Encode(cp); err != nil {
		return fmt.Errorf("ga: encode checkpoint %s: %w", path, err)
	}
	return nil
}

// LoadCheckpoint reads back a checkpoint written by SaveCheckpoint,
// reconstructing the sparse Assignment representation via
// timetable.FromDense.
func LoadCheckpoint(path string, ix *domain.Index) (generation int, population []*timetable.Assignment, best *timetable.Assignment, bestFitness float64, err error) {
	fp, err := os.Open(path)
	if err != nil {
		return 0, nil, nil, 0, fmt.Errorf("ga: open checkpoint %s: %w", path, err)
	}
	defer fp.Close()

	gz, err := gzip.NewReader(fp)
	if err != nil {
		return 0, nil, nil, 0, fmt.Errorf("ga: ungzip checkpoint %s: %w", path, err)
	}
	defer gz.Close()

	var cp Checkpoint
	if err := gob.NewDecoder(gz).Decode(&cp); err != nil {
		return 0, nil, nil, 0, fmt.Errorf("ga: decode checkpoint %s: %w", path, err)
	}

	population = make([]*timetable.Assignment, len(cp.Population))
	for i, dense := range cp.Population {
		a, err := timetable.FromDense(dense, ix)
		if err != nil {
			return 0, nil, nil, 0, fmt.Errorf("ga: checkpoint %s individual %d: %w", path, i, err)
		}
		population[i] = a
	}

	best, err = timetable.FromDense(cp.Best, ix)
	if err != nil {
		return 0, nil, nil, 0, fmt.Errorf("ga: checkpoint %s best individual: %w", path, err)
	}

	return cp.Generation, population, best, cp.BestFitness, nil
}

// SaveFinalOutputs persists the run's final result directory layout of
// spec.md §6: population.gob.gz (the 5-D tensor, one dense individual per
// population slot, gzip+gob compressed), best.gob.gz (the 4-D tensor of the
// best-ever individual), fitness_history.json (one array per generation),
// and computing_times.json (seconds per generation). A failure writing any
// one file is logged by the caller and does not lose the in-memory result
// (spec.md §7 class 4: I/O errors are non-fatal warnings).
func SaveFinalOutputs(dir string, ix *domain.Index, population []*timetable.Assignment, best *timetable.Assignment, fitnessHistory [][]float64, computingTimes []float64) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ga: create output dir %s: %w", dir, err)
	}

	dense := make([][]bool, len(population))
	for i, a := range population {
		dense[i] = a.Dense(ix)
	}
	if err := saveGobGzip(filepath.Join(dir, "population.gob.gz"), dense); err != nil {
		return err
	}
	if err := saveGobGzip(filepath.Join(dir, "best.gob.gz"), best.Dense(ix)); err != nil {
		return err
	}
	if err := saveJSON(filepath.Join(dir, "fitness_history.json"), fitnessHistory); err != nil {
		return err
	}
	if err := saveJSON(filepath.Join(dir, "computing_times.json"), computingTimes); err != nil {
		return err
	}
	return nil
}

func saveGobGzip(path string, v interface{}) error {
	fp, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ga: create %s: %w", path, err)
	}
	defer fp.Close()

	gz := gzip.NewWriter(fp)
	defer gz.Close()

	if err := gob.NewEncoder(gz).Encode(v); err != nil {
		return fmt.Errorf("ga: encode %s: %w", path, err)
	}
	return nil
}

func saveJSON(path string, v interface{}) error {
	fp, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ga: create %s: %w", path, err)
	}
	defer fp.Close()

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("ga: encode %s: %w", path, err)
	}
	return nil
}

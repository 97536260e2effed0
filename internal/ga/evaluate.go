// Package ga implements the genetic-algorithm search engine: concurrent
// fitness evaluation, roulette selection, structured crossover with
// repair, slot-swap mutation, elitism, and generational checkpointing.
//
// The worker-pool shape mirrors russross-schedule's main.go: a fixed
// number of goroutines pull work and report results over a channel,
// rather than spinning up one goroutine per task.
package ga

import (
	"sync"

	"campusopt/internal/domain"
	"campusopt/internal/timetable"
)

// DefaultWorkers is the parallel fitness-evaluation pool size.
const DefaultWorkers = 8

// EvaluatePopulation computes the fitness of every individual in pop
// concurrently across a fixed worker pool, returning a parallel slice of
// fitness values. Order is preserved: result[i] corresponds to pop[i].
func EvaluatePopulation(ix *domain.Index, prefs domain.Preferences, pop []*timetable.Assignment, w timetable.Weights, workers int) []float64 {
	if workers < 1 {
		workers = 1
	}
	fitness := make([]float64, len(pop))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				fitness[idx] = timetable.Fitness(pop[idx], ix, prefs, w)
			}
		}()
	}
	for i := range pop {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return fitness
}

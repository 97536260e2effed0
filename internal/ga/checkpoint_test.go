package ga

import (
	"math/rand"
	"path/filepath"
	"testing"

	"campusopt/internal/generator"
	"campusopt/internal/timetable"
	"github.com/stretchr/testify/require"
)

func TestCheckpointRoundTrip(t *testing.T) {
	ix := mediumIndex(t)
	rng := rand.New(rand.NewSource(5))
	pop, err := generator.Population(ix, rng, 4, 50)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "checkpoint.gob.gz")
	require.NoError(t, SaveCheckpoint(path, ix, 3, pop, pop[0], 42.5))

	gen, loaded, best, bestFitness, err := LoadCheckpoint(path, ix)
	require.NoError(t, err)
	require.Equal(t, 3, gen)
	require.Equal(t, 42.5, bestFitness)
	require.Len(t, loaded, len(pop))
	for i := range pop {
		require.Equal(t, pop[i].Teacher, loaded[i].Teacher)
		require.Equal(t, pop[i].Room, loaded[i].Room)
		require.Equal(t, pop[i].Slot, loaded[i].Slot)
	}
	require.True(t, timetable.Feasible(best, ix))
}

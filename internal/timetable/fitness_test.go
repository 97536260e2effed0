package timetable

import (
	"testing"

	"campusopt/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestDefaultWeightsMatchSpecFormula(t *testing.T) {
	w := DefaultWeights()
	require.Equal(t, 2.0, w.TeacherGaps)
	require.Equal(t, 2.0, w.GroupGaps)
	require.Equal(t, 1.0, w.PreferencePenalty)
	require.Equal(t, 1.0, w.TeacherRoomChanges)
	require.Equal(t, 0.3, w.GroupRoomChanges)
	require.Equal(t, 0.0, w.TeachingDays)
	require.Equal(t, 0.0, w.EarlyPenalty)
	require.Equal(t, 0.0, w.Infeasibility)
}

// TestFitnessMatchesHandComputedComponents pins the formula of spec.md
// §4.2 against a hand-worked example: course 0 and 2 share a room-starved
// teacher pairing that forces exactly one teacher_gap, one
// teacher_room_change, and one group_room_change, with group_gaps and
// preference_penalty both at zero.
func TestFitnessMatchesHandComputedComponents(t *testing.T) {
	ix := smallIndex(t)
	a := New(ix)
	a.Place(0, 0, 0, 0) // CS101: Ada, R1, slot 0
	a.Place(2, 1, 0, 1) // CS103: Alan, R1, slot 1
	a.Place(1, 0, 1, 2) // CS102: Ada, R2, slot 2
	prefs := domain.Preferences{}

	got := Fitness(a, ix, prefs, DefaultWeights())
	require.InDelta(t, 3.3, got, 1e-9)
}

func TestFitnessAccumulatesWeightedComponents(t *testing.T) {
	ix := smallIndex(t)
	a := New(ix)
	a.Place(0, 0, 0, 0)
	a.Place(1, 0, 1, 2) // gap at slot 1 for Ada + one room change
	prefs := domain.Preferences{}

	got := Fitness(a, ix, prefs, DefaultWeights())
	// both courses share one group, so teacher_gaps=1 and group_gaps=1
	// move together here: 1*2 (teacher_gaps) + 1*2 (group_gaps) +
	// 1*1 (teacher_room_changes) + 1*0.3 (group_room_changes) = 5.3
	require.InDelta(t, 5.3, got, 1e-9)
}

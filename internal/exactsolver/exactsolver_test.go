package exactsolver

import (
	"testing"
	"time"

	"campusopt/internal/domain"
	"campusopt/internal/timetable"
	"github.com/stretchr/testify/require"
)

func tinyIndex(t *testing.T) *domain.Index {
	t.Helper()
	courses := map[string]domain.CourseMeta{
		"CS101": {Name: "Intro", Field: "CS", Degree: "BSc", ClassType: domain.Lecture, Lecturers: []string{"Ada"}},
		"CS102": {Name: "Algo", Field: "CS", Degree: "BSc", ClassType: domain.Exercise, Lecturers: []string{"Ada", "Alan"}},
	}
	rooms := map[domain.RoomCategory][]string{
		domain.SmallLecture: {"R1"},
		domain.ExerciseRoom: {"R2"},
	}
	slots := domain.BuildSlotNames(domain.DefaultDayNames, domain.DefaultStartTimes)
	ix, err := domain.BuildIndex(courses, rooms, slots)
	require.NoError(t, err)
	return ix
}

func TestBuildConflictGraphConnectsCoursesSharingAGroup(t *testing.T) {
	ix := tinyIndex(t)
	g := buildConflictGraph(ix)

	// CS101 and CS102 are both CS-BSc, so they conflict (H4: no group may
	// attend two courses in the same slot).
	require.True(t, g.HasEdgeBetween(0, 1))
}

func TestCourseOrderIsDeterministic(t *testing.T) {
	ix := tinyIndex(t)
	g := buildConflictGraph(ix)

	order1 := courseOrder(ix, g)
	order2 := courseOrder(ix, g)
	require.Equal(t, order1, order2)
}

func TestSolveFindsFeasibleAssignmentWithinBudget(t *testing.T) {
	ix := tinyIndex(t)

	result, err := Solve(ix, 5*time.Second)
	require.NoError(t, err)
	require.Contains(t, []Outcome{Optimal, Feasible}, result.Outcome)
	require.NotNil(t, result.Assignment)
	require.True(t, timetable.Feasible(result.Assignment, ix))
}

func TestInfeasibleResultHasNoAssignment(t *testing.T) {
	// Solve is not run here: this checks a hand-built Infeasible Result's
	// string form and that it carries no Assignment.
	result := Result{Outcome: Infeasible}
	require.Equal(t, "INFEASIBLE", result.Outcome.String())
	require.Nil(t, result.Assignment)
}

func TestOutcomeStringCoversEveryValue(t *testing.T) {
	require.Equal(t, "OPTIMAL", Optimal.String())
	require.Equal(t, "FEASIBLE", Feasible.String())
	require.Equal(t, "UNKNOWN", Unknown.String())
	require.Equal(t, "INFEASIBLE", Infeasible.String())
}

package timetable

import (
	"testing"

	"campusopt/internal/domain"
	"github.com/stretchr/testify/require"
)

func smallIndex(t *testing.T) *domain.Index {
	t.Helper()
	courses := map[string]domain.CourseMeta{
		"CS101": {Name: "Intro", Field: "CS", Degree: "BSc", ClassType: domain.Lecture, Lecturers: []string{"Ada"}},
		"CS102": {Name: "Algo", Field: "CS", Degree: "BSc", ClassType: domain.Exercise, Lecturers: []string{"Ada", "Alan"}},
		"CS103": {Name: "OS", Field: "CS", Degree: "BSc", ClassType: domain.Lecture, Lecturers: []string{"Alan"}},
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

// TestFeasibleAssignmentHasZeroHardViolations covers spec.md §8 P4: a
// conflict-free assignment must score zero on all six hard kernels.
func TestFeasibleAssignmentHasZeroHardViolations(t *testing.T) {
	ix := smallIndex(t)
	a := New(ix)
	a.Place(0, 0, 0, 0) // CS101: Ada, R1, Mon 07:30
	a.Place(1, 1, 1, 2) // CS102: Alan, R2, Mon 11:15 (same group as CS101, so a different slot)
	a.Place(2, 1, 0, 1) // CS103: Alan, R1, Mon 09:15

	require.True(t, Feasible(a, ix))
	require.Equal(t, 0, RoomViolations(a, ix))
	require.Equal(t, 0, TeacherViolations(a, ix))
	require.Equal(t, 0, GroupViolations(a, ix))
	require.Equal(t, 0, AssignmentCountViolations(a, ix))
	require.Equal(t, 0, TeacherDomainViolations(a, ix))
	require.Equal(t, 0, RoomDomainViolations(a, ix))
}

func TestRoomViolationsDetectsDoubleBooking(t *testing.T) {
	ix := smallIndex(t)
	a := New(ix)
	a.Place(0, 0, 0, 0)
	a.Place(2, 1, 0, 0) // same room, same slot as course 0
	require.Equal(t, 1, RoomViolations(a, ix))
}

func TestTeacherViolationsDetectsDoubleBooking(t *testing.T) {
	ix := smallIndex(t)
	a := New(ix)
	a.Place(0, 0, 0, 0)
	a.Place(1, 0, 1, 0) // same teacher (Ada=0), same slot
	require.Equal(t, 1, TeacherViolations(a, ix))
}

func TestGroupViolationsDetectsSameGroupClash(t *testing.T) {
	ix := smallIndex(t)
	a := New(ix)
	// all three courses share group "CS-BSc"; two at the same slot clash.
	a.Place(0, 0, 0, 0)
	a.Place(2, 1, 0, 0)
	require.Equal(t, 1, GroupViolations(a, ix))
}

func TestAssignmentCountViolationsCountsUnplaced(t *testing.T) {
	ix := smallIndex(t)
	a := New(ix)
	a.Place(0, 0, 0, 0)
	require.Equal(t, 2, AssignmentCountViolations(a, ix))
}

func TestTeacherDomainViolationsRejectsIneligibleTeacher(t *testing.T) {
	ix := smallIndex(t)
	a := New(ix)
	a.Place(0, 1, 0, 0) // CS101 only allows teacher Ada (0), not Alan (1)
	require.Equal(t, 1, TeacherDomainViolations(a, ix))
}

func TestRoomDomainViolationsRejectsIneligibleRoom(t *testing.T) {
	ix := smallIndex(t)
	a := New(ix)
	a.Place(0, 0, 1, 0) // CS101 is a lecture, only room R1 (0) allowed
	require.Equal(t, 1, RoomDomainViolations(a, ix))
}

// TestTeacherGapsCountsHoles covers spec.md §8 scenario: a teacher with
// classes at slot 0 and slot 2 on the same day has exactly one gap.
func TestTeacherGapsCountsHoles(t *testing.T) {
	ix := smallIndex(t)
	a := New(ix)
	a.Place(0, 0, 0, 0) // Ada, Mon 07:30
	a.Place(1, 0, 1, 2) // Ada, Mon 11:15 (slot 2 within day)
	require.Equal(t, 1, TeacherGaps(a, ix))
}

func TestTeacherGapsZeroWhenConsecutive(t *testing.T) {
	ix := smallIndex(t)
	a := New(ix)
	a.Place(0, 0, 0, 0)
	a.Place(1, 0, 1, 1)
	require.Equal(t, 0, TeacherGaps(a, ix))
}

func TestTeacherRoomChangesCountsDistinctConsecutiveRooms(t *testing.T) {
	ix := smallIndex(t)
	a := New(ix)
	a.Place(0, 0, 0, 0) // Ada, R1, slot 0
	a.Place(1, 0, 1, 1) // Ada, R2, slot 1 -> one room change
	require.Equal(t, 1, TeacherRoomChanges(a, ix))
}

func TestPreferencePenaltyUsesSuppliedScoreOnly(t *testing.T) {
	ix := smallIndex(t)
	a := New(ix)
	a.Place(0, 0, 0, 0) // Ada at slot 0
	prefs, err := domain.LoadPreferences(map[string]map[string]int{"0": {"0": 5}}, ix)
	require.NoError(t, err)

	// score 5 -> penalty 1 - 5/5 = 0
	require.InDelta(t, 0.0, PreferencePenalty(a, ix, prefs), 1e-9)

	prefs2, err := domain.LoadPreferences(map[string]map[string]int{"0": {"0": 1}}, ix)
	require.NoError(t, err)
	// score 1 -> penalty 1 - 1/5 = 0.8
	require.InDelta(t, 0.8, PreferencePenalty(a, ix, prefs2), 1e-9)
}

func TestPreferencePenaltyAbsentEntryContributesZero(t *testing.T) {
	ix := smallIndex(t)
	a := New(ix)
	a.Place(0, 0, 0, 0)
	prefs := domain.Preferences{}
	require.InDelta(t, 0.0, PreferencePenalty(a, ix, prefs), 1e-9)
}

func TestSwapSlotsPreservesFeasibility(t *testing.T) {
	ix := smallIndex(t)
	a := New(ix)
	a.Place(0, 0, 0, 0)
	a.Place(1, 0, 1, 1)
	a.Place(2, 1, 0, 2)
	require.True(t, Feasible(a, ix))
	a.SwapSlots(0, 2)
	require.True(t, Feasible(a, ix))
	require.Equal(t, 2, a.Slot[0])
	require.Equal(t, 0, a.Slot[2])
}

func TestDenseRoundTrip(t *testing.T) {
	ix := smallIndex(t)
	a := New(ix)
	a.Place(0, 0, 0, 0)
	a.Place(1, 0, 1, 1)

	dense := a.Dense(ix)
	back, err := FromDense(dense, ix)
	require.NoError(t, err)
	require.Equal(t, a.Teacher, back.Teacher)
	require.Equal(t, a.Room, back.Room)
	require.Equal(t, a.Slot, back.Slot)
}

func TestFromDenseRejectsDoublePlacement(t *testing.T) {
	ix := smallIndex(t)
	c, tN, r, s := ix.NumCourses(), ix.NumTeachers(), ix.NumRooms(), ix.NumSlots()
	dense := make([]bool, c*tN*r*s)
	dense[0] = true                   // course 0, teacher 0, room 0, slot 0
	dense[(0*r+1)*s+1] = true         // course 0, teacher 0, room 1, slot 1 (second placement)
	_, err := FromDense(dense, ix)
	require.Error(t, err)
}

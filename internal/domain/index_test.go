package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleCourses() map[string]CourseMeta {
	return map[string]CourseMeta{
		"CS101": {Name: "Intro", Field: "CS", Degree: "BSc", ClassType: Lecture, Lecturers: []string{"Ada Lovelace"}},
		"CS102": {Name: "Algorithms", Field: "CS", Degree: "BSc", ClassType: Exercise, Lecturers: []string{"Ada Lovelace", "Alan Turing"}},
	}
}

func sampleRooms() map[RoomCategory][]string {
	return map[RoomCategory][]string{
		SmallLecture: {"101"},
		ExerciseRoom: {"102"},
	}
}

func TestBuildIndexDimensionsAndOrdering(t *testing.T) {
	slots := BuildSlotNames(DefaultDayNames, DefaultStartTimes)
	ix, err := BuildIndex(sampleCourses(), sampleRooms(), slots)
	require.NoError(t, err)

	require.Equal(t, []string{"CS101", "CS102"}, ix.Courses)
	require.Equal(t, []string{"Ada Lovelace", "Alan Turing"}, ix.Teachers)
	require.Equal(t, []string{"101", "102"}, ix.Rooms)
	require.Equal(t, 35, ix.NumSlots())
	require.Equal(t, 7, ix.SlotsPerDay())
}

func TestBuildIndexRejectsNonDivisibleSlotCount(t *testing.T) {
	_, err := BuildIndex(sampleCourses(), sampleRooms(), []string{"a", "b", "c"})
	require.Error(t, err)
}

func TestAllowedMappingsRespectClassType(t *testing.T) {
	slots := BuildSlotNames(DefaultDayNames, DefaultStartTimes)
	ix, err := BuildIndex(sampleCourses(), sampleRooms(), slots)
	require.NoError(t, err)

	// CS101 is a lecture -> only room 101 (SMALL_LECTURE).
	require.Equal(t, []int{0}, ix.AllowedRooms[0])
	// CS102 is an exercise -> only room 102 (EXERCISE).
	require.Equal(t, []int{1}, ix.AllowedRooms[1])

	require.Equal(t, []int{0}, ix.AllowedTeachers[0])
	require.Equal(t, []int{0, 1}, ix.AllowedTeachers[1])
}

func TestGroupDerivationUsesFieldDashDegree(t *testing.T) {
	slots := BuildSlotNames(DefaultDayNames, DefaultStartTimes)
	ix, err := BuildIndex(sampleCourses(), sampleRooms(), slots)
	require.NoError(t, err)

	require.Equal(t, []string{"CS-BSc"}, ix.Groups)
	require.Equal(t, []int{0, 1}, ix.CoursesOfGroup[0])
	require.Equal(t, []int{0}, ix.GroupsOfCourse[0])
}

func TestLoadPreferencesNeutralDefault(t *testing.T) {
	slots := BuildSlotNames(DefaultDayNames, DefaultStartTimes)
	ix, err := BuildIndex(sampleCourses(), sampleRooms(), slots)
	require.NoError(t, err)

	prefs, err := LoadPreferences(map[string]map[string]int{"0": {"5": 1}}, ix)
	require.NoError(t, err)

	require.Equal(t, 1, prefs.Score(0, 5))
	require.Equal(t, 4, prefs.Score(0, 6))
	require.Equal(t, 4, prefs.Score(1, 0))
}

func TestLoadPreferencesRejectsOutOfRangeIndex(t *testing.T) {
	slots := BuildSlotNames(DefaultDayNames, DefaultStartTimes)
	ix, err := BuildIndex(sampleCourses(), sampleRooms(), slots)
	require.NoError(t, err)

	_, err = LoadPreferences(map[string]map[string]int{"99": {"0": 3}}, ix)
	require.Error(t, err)
}

package inputs

import (
	"strings"
	"testing"

	"campusopt/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestDecodeCoursesParsesValidClassTypes(t *testing.T) {
	raw := `{
		"CS101": {"course_name": "Intro", "field": "CS", "degree": "BSc", "class_type": "lecture", "lecturers": ["Ada"]},
		"CS102": {"course_name": "Algo", "field": "CS", "degree": "BSc", "class_type": "exercise", "lecturers": ["Ada", "Alan"]}
	}`
	courses, err := decodeCourses(strings.NewReader(raw), "courses.json")
	require.NoError(t, err)
	require.Len(t, courses, 2)
	require.Equal(t, domain.Lecture, courses["CS101"].ClassType)
	require.Equal(t, domain.Exercise, courses["CS102"].ClassType)
	require.Equal(t, []string{"Ada", "Alan"}, courses["CS102"].Lecturers)
}

func TestDecodeCoursesRejectsUnknownClassType(t *testing.T) {
	raw := `{"CS101": {"course_name": "Intro", "field": "CS", "degree": "BSc", "class_type": "bogus", "lecturers": ["Ada"]}}`
	_, err := decodeCourses(strings.NewReader(raw), "courses.json")
	require.Error(t, err)
}

func TestLoadPreferencesEmptyPathReturnsNeutralDefault(t *testing.T) {
	prefs, err := LoadPreferences("", nil)
	require.NoError(t, err)
	require.Empty(t, prefs)
}

func TestLoadCoursesMissingFileErrors(t *testing.T) {
	_, err := LoadCourses("/nonexistent/courses.json")
	require.Error(t, err)
}

func TestLoadRoomsMissingFileErrors(t *testing.T) {
	_, err := LoadRooms("/nonexistent/rooms.json")
	require.Error(t, err)
}

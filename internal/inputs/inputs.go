// Package inputs reads the two required and one optional JSON input files
// of spec.md §6 (merged course data, class-type-to-rooms, teacher
// preferences) into the types internal/domain.BuildIndex expects. The
// decode-then-validate style follows the teacher repository's ReadJSON
// (json.go): a plain json.Decoder pass followed by explicit, hand-written
// validation errors rather than struct-tag based validation.
package inputs

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"campusopt/internal/domain"
)

// rawCourse mirrors one entry of the merged course data file (spec.md §6):
//
//	{"course_name": "...", "field": "...", "degree": "...",
//	 "class_type": "lecture", "lecturers": ["name", ...]}
type rawCourse struct {
	CourseName string   `json:"course_name"`
	Field      string   `json:"field"`
	Degree     string   `json:"degree"`
	ClassType  string   `json:"class_type"`
	Lecturers  []string `json:"lecturers"`
}

// LoadCourses reads the merged course data JSON file and converts it into
// the map BuildIndex consumes, validating the class_type enum along the
// way (an unrecognized class_type is a spec.md §7 class-1 input-shape
// error, since it would otherwise silently yield an empty allowed-rooms
// set for that course).
func LoadCourses(path string) (map[string]domain.CourseMeta, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("inputs: open courses file %s: %w", path, err)
	}
	defer fp.Close()
	return decodeCourses(fp, path)
}

func decodeCourses(r io.Reader, path string) (map[string]domain.CourseMeta, error) {
	var raw map[string]rawCourse
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("inputs: parse courses file %s: %w", path, err)
	}

	courses := make(map[string]domain.CourseMeta, len(raw))
	for code, rc := range raw {
		ct := domain.ClassType(rc.ClassType)
		switch ct {
		case domain.Lecture, domain.Exercise, domain.Lab, domain.Project, domain.Seminar:
		default:
			return nil, fmt.Errorf("inputs: course %q has unrecognized class_type %q", code, rc.ClassType)
		}
		courses[code] = domain.CourseMeta{
			Name:      rc.CourseName,
			Field:     rc.Field,
			Degree:    rc.Degree,
			ClassType: ct,
			Lecturers: rc.Lecturers,
		}
	}
	return courses, nil
}

// LoadRooms reads the class-type-to-rooms JSON file: a mapping from room
// category (spec.md §3's fixed SMALL_LECTURE/EXERCISE/SPEC_LAB/COMP_LAB/
// SEMINAR keys) to the list of room numbers in that category.
func LoadRooms(path string) (map[domain.RoomCategory][]string, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("inputs: open rooms file %s: %w", path, err)
	}
	defer fp.Close()

	var raw map[string][]string
	if err := json.NewDecoder(fp).Decode(&raw); err != nil {
		return nil, fmt.Errorf("inputs: parse rooms file %s: %w", path, err)
	}
	rooms := make(map[domain.RoomCategory][]string, len(raw))
	for cat, names := range raw {
		rooms[domain.RoomCategory(cat)] = names
	}
	return rooms, nil
}

// LoadPreferences reads the optional teacher-preferences JSON file
// (teacher-index -> slot-index -> score 1..5, all stringified keys per
// spec.md §6) and validates it against ix via domain.LoadPreferences. A
// missing path is not an error: absent preferences mean every score is the
// neutral value 4 (spec.md §3, §8).
func LoadPreferences(path string, ix *domain.Index) (domain.Preferences, error) {
	if path == "" {
		return domain.Preferences{}, nil
	}
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("inputs: open preferences file %s: %w", path, err)
	}
	defer fp.Close()

	var raw map[string]map[string]int
	if err := json.NewDecoder(fp).Decode(&raw); err != nil {
		return nil, fmt.Errorf("inputs: parse preferences file %s: %w", path, err)
	}
	return domain.LoadPreferences(raw, ix)
}

// Package domain builds the index tables (§4.1) that every other package in
// campusopt reads from: stable integer ids for courses, teachers, rooms,
// groups, and time-slots, plus the allowed-teacher/allowed-room/group
// mapping tables derived from the raw input files.
package domain

import (
	"fmt"
	"sort"
)

// ClassType is the opaque class-type enum from the merged course data.
type ClassType string

const (
	Lecture  ClassType = "lecture"
	Exercise ClassType = "exercise"
	Lab      ClassType = "lab"
	Project  ClassType = "project"
	Seminar  ClassType = "seminar"
)

// RoomCategory is a physical room category key, as used in the
// class-type-to-rooms input file.
type RoomCategory string

const (
	SmallLecture RoomCategory = "SMALL_LECTURE"
	ExerciseRoom RoomCategory = "EXERCISE"
	SpecLab      RoomCategory = "SPEC_LAB"
	CompLab      RoomCategory = "COMP_LAB"
	SeminarRoom  RoomCategory = "SEMINAR"
)

// classTypeToRoomCategories is the fixed table from spec.md §3.
var classTypeToRoomCategories = map[ClassType][]RoomCategory{
	Lecture:  {SmallLecture},
	Exercise: {ExerciseRoom},
	Lab:      {SpecLab, CompLab},
	Project:  {SpecLab, CompLab, ExerciseRoom},
	Seminar:  {SeminarRoom, SmallLecture},
}

// CourseMeta is one entry of the merged course data input file.
type CourseMeta struct {
	Name      string
	Field     string
	Degree    string
	ClassType ClassType
	Lecturers []string
}

// DaysPerWeek and the default daily start times fix the 35-slot schema of
// spec.md §6.
const DaysPerWeek = 5

var DefaultDayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}
var DefaultStartTimes = []string{"07:30", "09:15", "11:15", "13:15", "15:15", "17:05", "18:45"}

// BuildSlotNames returns the "<day> <hh:mm>" labels for the given day names
// and daily start times, in slot-index order (day-major).
func BuildSlotNames(days, starts []string) []string {
	slots := make([]string, 0, len(days)*len(starts))
	for _, d := range days {
		for _, s := range starts {
			slots = append(slots, d+" "+s)
		}
	}
	return slots
}

// Index is the immutable, read-only-after-construction set of mapping
// tables shared by reference across the generator, GA, and exact solver.
type Index struct {
	Courses []string // course code, sorted
	Teachers []string // teacher name, sorted
	Rooms    []string // room number, sorted
	Groups   []string // "<field>-<degree>", sorted
	Slots    []string // "<day> <hh:mm>", in schema order

	// AllowedTeachers[c] is the sorted list of teacher indices eligible
	// to teach course c (H5).
	AllowedTeachers [][]int
	// AllowedRooms[c] is the sorted list of room indices eligible to
	// host course c, derived from its class-type (H6).
	AllowedRooms [][]int
	// GroupsOfCourse[c] lists the group indices course c belongs to.
	// The derivation in spec.md §9 ("field-degree") always yields
	// exactly one group per course, but the type stays a slice to match
	// the many-to-many relation documented in spec.md §3.
	GroupsOfCourse [][]int
	// CoursesOfGroup[g] is the inverse of GroupsOfCourse.
	CoursesOfGroup [][]int
}

// NumCourses, NumTeachers, NumRooms, NumGroups, NumSlots are convenience
// dimension accessors.
func (ix *Index) NumCourses() int  { return len(ix.Courses) }
func (ix *Index) NumTeachers() int { return len(ix.Teachers) }
func (ix *Index) NumRooms() int    { return len(ix.Rooms) }
func (ix *Index) NumGroups() int   { return len(ix.Groups) }
func (ix *Index) NumSlots() int    { return len(ix.Slots) }

// SlotsPerDay is |S|/5.
func (ix *Index) SlotsPerDay() int { return len(ix.Slots) / DaysPerWeek }

// Day returns the day index (0-based) for a slot index.
func (ix *Index) Day(slot int) int { return slot / ix.SlotsPerDay() }

// WithinDay returns the within-day index for a slot index.
func (ix *Index) WithinDay(slot int) int { return slot % ix.SlotsPerDay() }

// BuildIndex constructs an Index from the raw merged course data and the
// class-type-to-rooms mapping, per spec.md §4.1. Courses are sorted by
// code, teachers and rooms lexicographically, to guarantee reproducible
// index assignment given identical input files.
func BuildIndex(courses map[string]CourseMeta, roomsByCategory map[RoomCategory][]string, slotNames []string) (*Index, error) {
	if len(slotNames)%DaysPerWeek != 0 {
		return nil, fmt.Errorf("domain: %d time slots is not divisible by %d", len(slotNames), DaysPerWeek)
	}

	courseCodes := make([]string, 0, len(courses))
	for code := range courses {
		courseCodes = append(courseCodes, code)
	}
	sort.Strings(courseCodes)

	teacherSet := map[string]struct{}{}
	for _, c := range courses {
		for _, t := range c.Lecturers {
			teacherSet[t] = struct{}{}
		}
	}
	teachers := setToSortedSlice(teacherSet)

	roomSet := map[string]struct{}{}
	for _, rooms := range roomsByCategory {
		for _, r := range rooms {
			roomSet[r] = struct{}{}
		}
	}
	rooms := setToSortedSlice(roomSet)

	teacherIdx := indexOf(teachers)
	roomIdx := indexOf(rooms)

	// Expand the class-type -> room-category -> room-number chain into a
	// room-category -> room-index table, once.
	categoryRooms := map[RoomCategory][]int{}
	for cat, names := range roomsByCategory {
		ids := make([]int, 0, len(names))
		for _, n := range names {
			idx, ok := roomIdx[n]
			if !ok {
				return nil, fmt.Errorf("domain: room category %q references unknown room %q", cat, n)
			}
			ids = append(ids, idx)
		}
		sort.Ints(ids)
		categoryRooms[cat] = ids
	}

	groupSet := map[string]struct{}{}
	groupOfCourse := make([]string, len(courseCodes))
	for i, code := range courseCodes {
		meta := courses[code]
		group := meta.Field + "-" + meta.Degree
		groupOfCourse[i] = group
		groupSet[group] = struct{}{}
	}
	groups := setToSortedSlice(groupSet)
	groupIdx := indexOf(groups)

	allowedTeachers := make([][]int, len(courseCodes))
	allowedRooms := make([][]int, len(courseCodes))
	groupsOfCourse := make([][]int, len(courseCodes))
	coursesOfGroup := make([][]int, len(groups))

	for i, code := range courseCodes {
		meta := courses[code]

		ts := make([]int, 0, len(meta.Lecturers))
		for _, name := range meta.Lecturers {
			idx, ok := teacherIdx[name]
			if !ok {
				return nil, fmt.Errorf("domain: course %q references unknown teacher %q", code, name)
			}
			ts = append(ts, idx)
		}
		sort.Ints(ts)
		allowedTeachers[i] = ts

		var roomIDs []int
		for _, cat := range classTypeToRoomCategories[meta.ClassType] {
			roomIDs = append(roomIDs, categoryRooms[cat]...)
		}
		sort.Ints(roomIDs)
		allowedRooms[i] = dedupSortedInts(roomIDs)

		g := groupIdx[groupOfCourse[i]]
		groupsOfCourse[i] = []int{g}
		coursesOfGroup[g] = append(coursesOfGroup[g], i)
	}

	return &Index{
		Courses:         courseCodes,
		Teachers:        teachers,
		Rooms:           rooms,
		Groups:          groups,
		Slots:           slotNames,
		AllowedTeachers: allowedTeachers,
		AllowedRooms:    allowedRooms,
		GroupsOfCourse:  groupsOfCourse,
		CoursesOfGroup:  coursesOfGroup,
	}, nil
}

// Preferences is the sparse teacher->slot->score(1..5) table of spec.md §3.
// Score reports an absent entry as neutral (score 4); the preference
// penalty kernel skips absent entries, so they contribute 0.
type Preferences map[int]map[int]int

// LoadPreferences validates a parsed {teacherIdx: {slotIdx: score}} table
// against the index dimensions, returning a fatal error (spec.md §7 class 1)
// if any index is out of range.
func LoadPreferences(raw map[string]map[string]int, ix *Index) (Preferences, error) {
	prefs := make(Preferences, len(raw))
	for tStr, slots := range raw {
		t, err := parseIndex(tStr)
		if err != nil || t < 0 || t >= ix.NumTeachers() {
			return nil, fmt.Errorf("domain: preferences reference unknown teacher index %q", tStr)
		}
		scores := make(map[int]int, len(slots))
		for sStr, score := range slots {
			s, err := parseIndex(sStr)
			if err != nil || s < 0 || s >= ix.NumSlots() {
				return nil, fmt.Errorf("domain: preferences reference unknown slot index %q", sStr)
			}
			if score < 1 || score > 5 {
				return nil, fmt.Errorf("domain: preference score %d for teacher %d slot %d out of range 1..5", score, t, s)
			}
			scores[s] = score
		}
		prefs[t] = scores
	}
	return prefs, nil
}

// Score returns the preference score for (teacher, slot), or the neutral
// value 4 if absent, per spec.md §3.
func (p Preferences) Score(teacher, slot int) int {
	if slots, ok := p[teacher]; ok {
		if score, ok := slots[slot]; ok {
			return score
		}
	}
	return 4
}

func setToSortedSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func indexOf(sorted []string) map[string]int {
	m := make(map[string]int, len(sorted))
	for i, v := range sorted {
		m[v] = i
	}
	return m
}

func dedupSortedInts(in []int) []int {
	if len(in) == 0 {
		return in
	}
	out := in[:1]
	for _, v := range in[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

func parseIndex(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}

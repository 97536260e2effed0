package timetable

import "campusopt/internal/domain"

// RoomViolations implements H2: for every (r,s), at most one course may
// occupy the room. Returns sum_{r,s} max(0, count-1).
func RoomViolations(a *Assignment, ix *domain.Index) int {
	counts := make(map[[2]int]int, len(a.Teacher))
	for c := range a.Teacher {
		if !a.IsPlaced(c) {
			continue
		}
		counts[[2]int{a.Room[c], a.Slot[c]}]++
	}
	total := 0
	for _, n := range counts {
		if n > 1 {
			total += n - 1
		}
	}
	return total
}

// TeacherViolations implements H3.
func TeacherViolations(a *Assignment, ix *domain.Index) int {
	counts := make(map[[2]int]int, len(a.Teacher))
	for c := range a.Teacher {
		if !a.IsPlaced(c) {
			continue
		}
		counts[[2]int{a.Teacher[c], a.Slot[c]}]++
	}
	total := 0
	for _, n := range counts {
		if n > 1 {
			total += n - 1
		}
	}
	return total
}

// GroupViolations implements H4: for every group g and slot s, at most
// one course belonging to g may be taught.
func GroupViolations(a *Assignment, ix *domain.Index) int {
	total := 0
	for g, courses := range ix.CoursesOfGroup {
		_ = g
		counts := make(map[int]int)
		for _, c := range courses {
			if a.IsPlaced(c) {
				counts[a.Slot[c]]++
			}
		}
		for _, n := range counts {
			if n > 1 {
				total += n - 1
			}
		}
	}
	return total
}

// AssignmentCountViolations implements H1: every course must be assigned
// exactly once. Under the sparse representation a course is assigned 0 or
// 1 times by construction, so this reduces to a count of unplaced courses.
func AssignmentCountViolations(a *Assignment, ix *domain.Index) int {
	total := 0
	for c := range a.Teacher {
		if !a.IsPlaced(c) {
			total++
		}
	}
	return total
}

// TeacherDomainViolations implements H5.
func TeacherDomainViolations(a *Assignment, ix *domain.Index) int {
	total := 0
	for c := range a.Teacher {
		if !a.IsPlaced(c) {
			continue
		}
		if !containsInt(ix.AllowedTeachers[c], a.Teacher[c]) {
			total++
		}
	}
	return total
}

// RoomDomainViolations implements H6.
func RoomDomainViolations(a *Assignment, ix *domain.Index) int {
	total := 0
	for c := range a.Teacher {
		if !a.IsPlaced(c) {
			continue
		}
		if !containsInt(ix.AllowedRooms[c], a.Room[c]) {
			total++
		}
	}
	return total
}

// Feasible reports whether all six hard-constraint kernels are
// simultaneously zero (spec.md §8, P4).
func Feasible(a *Assignment, ix *domain.Index) bool {
	return RoomViolations(a, ix) == 0 &&
		TeacherViolations(a, ix) == 0 &&
		GroupViolations(a, ix) == 0 &&
		AssignmentCountViolations(a, ix) == 0 &&
		TeacherDomainViolations(a, ix) == 0 &&
		RoomDomainViolations(a, ix) == 0
}

// teacherOccupancy returns, for one teacher, a boolean vector over all
// slots indicating whether the teacher is teaching that slot, and a
// parallel vector of which room (only meaningful where occupied).
func teacherOccupancy(a *Assignment, ix *domain.Index, teacher int) (occupied []bool, room []int) {
	occupied = make([]bool, ix.NumSlots())
	room = make([]int, ix.NumSlots())
	for c := range a.Teacher {
		if a.IsPlaced(c) && a.Teacher[c] == teacher {
			occupied[a.Slot[c]] = true
			room[a.Slot[c]] = a.Room[c]
		}
	}
	return
}

// groupOccupancy is the same as teacherOccupancy but reduced over all
// courses belonging to a group (summed across teachers and rooms, per
// spec.md §4.2's group_gaps definition).
func groupOccupancy(a *Assignment, ix *domain.Index, group int) (occupied []bool, room []int) {
	occupied = make([]bool, ix.NumSlots())
	room = make([]int, ix.NumSlots())
	for _, c := range ix.CoursesOfGroup[group] {
		if a.IsPlaced(c) {
			occupied[a.Slot[c]] = true
			room[a.Slot[c]] = a.Room[c]
		}
	}
	return
}

// gapsInDay counts unoccupied slots strictly between the first and last
// occupied slot of a day, for a single day's occupancy slice.
func gapsInDay(daily []bool) int {
	first, last := -1, -1
	for i, v := range daily {
		if v {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	if first == -1 {
		return 0
	}
	gaps := 0
	for i := first; i <= last; i++ {
		if !daily[i] {
			gaps++
		}
	}
	return gaps
}

// roomChangesInDay counts transitions between consecutive occupied slots
// (in slot order) where the room differs, skipping unoccupied slots.
func roomChangesInDay(occupied []bool, room []int) int {
	changes := 0
	prevRoom := -1
	havePrev := false
	for i, occ := range occupied {
		if !occ {
			continue
		}
		if havePrev && room[i] != prevRoom {
			changes++
		}
		prevRoom = room[i]
		havePrev = true
	}
	return changes
}

// TeacherGaps implements spec.md §4.2's teacher_gaps(A).
func TeacherGaps(a *Assignment, ix *domain.Index) int {
	perDay := ix.SlotsPerDay()
	total := 0
	for t := 0; t < ix.NumTeachers(); t++ {
		occ, _ := teacherOccupancy(a, ix, t)
		for d := 0; d < domain.DaysPerWeek; d++ {
			total += gapsInDay(occ[d*perDay : (d+1)*perDay])
		}
	}
	return total
}

// GroupGaps implements spec.md §4.2's group_gaps(A).
func GroupGaps(a *Assignment, ix *domain.Index) int {
	perDay := ix.SlotsPerDay()
	total := 0
	for g := 0; g < ix.NumGroups(); g++ {
		occ, _ := groupOccupancy(a, ix, g)
		for d := 0; d < domain.DaysPerWeek; d++ {
			total += gapsInDay(occ[d*perDay : (d+1)*perDay])
		}
	}
	return total
}

// TeacherRoomChanges implements spec.md §4.2's teacher_room_changes(A).
func TeacherRoomChanges(a *Assignment, ix *domain.Index) int {
	perDay := ix.SlotsPerDay()
	total := 0
	for t := 0; t < ix.NumTeachers(); t++ {
		occ, room := teacherOccupancy(a, ix, t)
		for d := 0; d < domain.DaysPerWeek; d++ {
			lo, hi := d*perDay, (d+1)*perDay
			total += roomChangesInDay(occ[lo:hi], room[lo:hi])
		}
	}
	return total
}

// GroupRoomChanges implements spec.md §4.2's group_room_changes(A).
func GroupRoomChanges(a *Assignment, ix *domain.Index) int {
	perDay := ix.SlotsPerDay()
	total := 0
	for g := 0; g < ix.NumGroups(); g++ {
		occ, room := groupOccupancy(a, ix, g)
		for d := 0; d < domain.DaysPerWeek; d++ {
			lo, hi := d*perDay, (d+1)*perDay
			total += roomChangesInDay(occ[lo:hi], room[lo:hi])
		}
	}
	return total
}

// PreferencePenalty implements spec.md §4.2's preference_penalty(A).
// Missing entries contribute 0 because Preferences.Score returns the
// neutral value 4 for them, and 1 - 4/5 is NOT the right behavior for a
// truly-absent entry (spec.md §9 says absent contributes 0, not 0.2) —
// so this walks only the entries actually present in prefs.
func PreferencePenalty(a *Assignment, ix *domain.Index, prefs domain.Preferences) float64 {
	total := 0.0
	for c := range a.Teacher {
		if !a.IsPlaced(c) {
			continue
		}
		t, s := a.Teacher[c], a.Slot[c]
		if slots, ok := prefs[t]; ok {
			if score, ok := slots[s]; ok {
				total += 1.0 - float64(score)/5.0
			}
		}
	}
	return total
}

// TeachingDays counts, across all teachers and days, the number of
// teacher-days with at least one teaching slot. This is a supplemented,
// zero-weight-by-default component (see SPEC_FULL.md, SUPPLEMENTED
// FEATURES), grounded in original_source/optimization.py's
// count_teaching_days.
func TeachingDays(a *Assignment, ix *domain.Index) int {
	perDay := ix.SlotsPerDay()
	total := 0
	for t := 0; t < ix.NumTeachers(); t++ {
		occ, _ := teacherOccupancy(a, ix, t)
		for d := 0; d < domain.DaysPerWeek; d++ {
			daily := occ[d*perDay : (d+1)*perDay]
			for _, v := range daily {
				if v {
					total++
					break
				}
			}
		}
	}
	return total
}

// EarlyPenalty penalizes classes scheduled in the first two slots of a
// day (full penalty for the first, half for the second). Supplemented,
// zero-weight-by-default component grounded in
// original_source/optimization.py's count_early_assignments.
func EarlyPenalty(a *Assignment, ix *domain.Index) float64 {
	perDay := ix.SlotsPerDay()
	total := 0.0
	for t := 0; t < ix.NumTeachers(); t++ {
		occ, _ := teacherOccupancy(a, ix, t)
		for d := 0; d < domain.DaysPerWeek; d++ {
			start := d * perDay
			if occ[start] {
				total += 1.0
			}
			if perDay > 1 && occ[start+1] {
				total += 0.5
			}
		}
	}
	return total
}

func containsInt(haystack []int, needle int) bool {
	// AllowedTeachers/AllowedRooms are kept sorted by domain.BuildIndex.
	lo, hi := 0, len(haystack)
	for lo < hi {
		mid := (lo + hi) / 2
		if haystack[mid] < needle {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo < len(haystack) && haystack[lo] == needle
}

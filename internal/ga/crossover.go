package ga

import (
	"math/rand"

	"campusopt/internal/domain"
	"campusopt/internal/timetable"
)

// occupancy tracks, for one child under construction, which (teacher,slot),
// (room,slot), and (group,slot) pairs are already taken: the same
// bitmap-style bookkeeping internal/generator uses for the initial
// population, kept as its own type here because crossover builds two
// children per pair with independent occupancy state.
type occupancy struct {
	teacherSlot map[[2]int]bool
	roomSlot    map[[2]int]bool
	groupSlot   map[[2]int]bool
}

func newOccupancy() *occupancy {
	return &occupancy{
		teacherSlot: make(map[[2]int]bool),
		roomSlot:    make(map[[2]int]bool),
		groupSlot:   make(map[[2]int]bool),
	}
}

func (o *occupancy) free(ix *domain.Index, c, t, r, s int) bool {
	if o.teacherSlot[[2]int{t, s}] || o.roomSlot[[2]int{r, s}] {
		return false
	}
	for _, g := range ix.GroupsOfCourse[c] {
		if o.groupSlot[[2]int{g, s}] {
			return false
		}
	}
	return true
}

func (o *occupancy) occupy(ix *domain.Index, c, t, r, s int) {
	o.teacherSlot[[2]int{t, s}] = true
	o.roomSlot[[2]int{r, s}] = true
	for _, g := range ix.GroupsOfCourse[c] {
		o.groupSlot[[2]int{g, s}] = true
	}
}

// placeRandom enumerates course c's currently-free (teacher,room,slot)
// candidates and places it at one chosen uniformly at random: the
// single-course random-placement routine of spec.md §4.3, reused by
// crossover (final fallback) and Repair. Returns false if no candidate is
// free, leaving c unplaced (an H1 dead end, per spec.md §7 class 2).
func placeRandom(ix *domain.Index, child *timetable.Assignment, occ *occupancy, c int, rng *rand.Rand) bool {
	type candidate struct{ t, r, s int }
	var candidates []candidate
	for _, t := range ix.AllowedTeachers[c] {
		for _, r := range ix.AllowedRooms[c] {
			for s := 0; s < ix.NumSlots(); s++ {
				if occ.free(ix, c, t, r, s) {
					candidates = append(candidates, candidate{t, r, s})
				}
			}
		}
	}
	if len(candidates) == 0 {
		return false
	}
	pick := candidates[rng.Intn(len(candidates))]
	child.Place(c, pick.t, pick.r, pick.s)
	occ.occupy(ix, c, pick.t, pick.r, pick.s)
	return true
}

// tryParentPlacement places course c exactly as src placed it, if src
// placed it at all and the slot is still free under occ.
func tryParentPlacement(ix *domain.Index, child *timetable.Assignment, occ *occupancy, src *timetable.Assignment, c int) bool {
	if !src.IsPlaced(c) {
		return false
	}
	t, r, s := src.Teacher[c], src.Room[c], src.Slot[c]
	if !occ.free(ix, c, t, r, s) {
		return false
	}
	child.Place(c, t, r, s)
	occ.occupy(ix, c, t, r, s)
	return true
}

// buildChild implements one child of spec.md §4.4's structured crossover:
// iterate courses in index order; per course, randomize which parent goes
// first, accept its placement if it still fits the child built so far,
// else the other parent's, else fall back to placeRandom. Built this way
// the child is feasible on H2-H6 by construction; only H1 (a course with
// no candidate left at all) can remain, which Repair addresses afterward.
func buildChild(ix *domain.Index, parentA, parentB *timetable.Assignment, rng *rand.Rand) *timetable.Assignment {
	child := timetable.New(ix)
	occ := newOccupancy()
	for c := 0; c < ix.NumCourses(); c++ {
		p1, p2 := parentA, parentB
		if rng.Intn(2) == 1 {
			p1, p2 = p2, p1
		}
		if tryParentPlacement(ix, child, occ, p1, c) {
			continue
		}
		if tryParentPlacement(ix, child, occ, p2, c) {
			continue
		}
		placeRandom(ix, child, occ, c, rng)
	}
	return child
}

// CrossoverPair implements spec.md §4.4's crossover operator: one pair of
// parents produces two children, each built independently by buildChild.
// Both children are feasible on H2-H6 by construction; call Repair on each
// to resolve any remaining H1 (unplaced-course) violations.
func CrossoverPair(ix *domain.Index, parentA, parentB *timetable.Assignment, rng *rand.Rand) (childA, childB *timetable.Assignment) {
	childA = buildChild(ix, parentA, parentB, rng)
	childB = buildChild(ix, parentA, parentB, rng)
	return childA, childB
}

// Crossover returns the first of CrossoverPair's two children, for callers
// that only need one (e.g. filling an odd leftover slot).
func Crossover(ix *domain.Index, parentA, parentB *timetable.Assignment, rng *rand.Rand) *timetable.Assignment {
	child, _ := CrossoverPair(ix, parentA, parentB, rng)
	return child
}

// Repair scans an assignment for unplaced courses (H1 violations) left by
// buildChild's random-placement fallback hitting a dead end, and retries
// placeRandom against the assignment's own current occupancy. A no-op if
// every course is already placed.
func Repair(ix *domain.Index, a *timetable.Assignment, rng *rand.Rand) {
	occ := newOccupancy()
	for c := 0; c < a.NumCourses(); c++ {
		if a.IsPlaced(c) {
			occ.occupy(ix, c, a.Teacher[c], a.Room[c], a.Slot[c])
		}
	}
	for c := 0; c < a.NumCourses(); c++ {
		if !a.IsPlaced(c) {
			placeRandom(ix, a, occ, c, rng)
		}
	}
}

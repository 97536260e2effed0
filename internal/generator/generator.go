// Package generator builds feasible starting assignments by greedy random
// placement, in the same style as russross-schedule's SearchState.Solve:
// courses are placed one at a time against occupancy bitmaps that rule out
// already-taken (teacher,slot) and (room,slot) pairs, with a dead end
// reported rather than silently retried forever.
package generator

import (
	"fmt"
	"math/rand"

	"campusopt/internal/domain"
	"campusopt/internal/timetable"
)

// DeadEnd is returned when a course has no remaining candidate
// (teacher, room, slot) triple given the current occupancy state.
type DeadEnd struct {
	Course int
}

func (e *DeadEnd) Error() string {
	return fmt.Sprintf("generator: no remaining candidate placement for course %d", e.Course)
}

// occupancy tracks, per teacher and per room, which slots are already taken.
// These are the "bitmaps" of spec.md §4.3; []bool is the idiomatic Go stand-in.
type occupancy struct {
	teacherSlot [][]bool // teacherSlot[t][s]
	roomSlot    [][]bool // roomSlot[r][s]
	groupSlot   [][]bool // groupSlot[g][s], derived from H4
}

func newOccupancy(ix *domain.Index) *occupancy {
	o := &occupancy{
		teacherSlot: make([][]bool, ix.NumTeachers()),
		roomSlot:    make([][]bool, ix.NumRooms()),
		groupSlot:   make([][]bool, ix.NumGroups()),
	}
	for t := range o.teacherSlot {
		o.teacherSlot[t] = make([]bool, ix.NumSlots())
	}
	for r := range o.roomSlot {
		o.roomSlot[r] = make([]bool, ix.NumSlots())
	}
	for g := range o.groupSlot {
		o.groupSlot[g] = make([]bool, ix.NumSlots())
	}
	return o
}

func (o *occupancy) free(ix *domain.Index, course, teacher, room, slot int) bool {
	if o.teacherSlot[teacher][slot] || o.roomSlot[room][slot] {
		return false
	}
	for _, g := range ix.GroupsOfCourse[course] {
		if o.groupSlot[g][slot] {
			return false
		}
	}
	return true
}

func (o *occupancy) occupy(ix *domain.Index, course, teacher, room, slot int) {
	o.teacherSlot[teacher][slot] = true
	o.roomSlot[room][slot] = true
	for _, g := range ix.GroupsOfCourse[course] {
		o.groupSlot[g][slot] = true
	}
}

// candidate is one viable (teacher, room, slot) triple for a course.
type candidate struct {
	teacher, room, slot int
}

// Generate produces one feasible Assignment by visiting courses in a random
// order and, for each, picking uniformly among its currently-free candidate
// triples. It returns a *DeadEnd if some course runs out of candidates; the
// caller (the GA's population-seeding loop) is expected to retry with a
// fresh random order rather than treat this as fatal.
func Generate(ix *domain.Index, rng *rand.Rand) (*timetable.Assignment, error) {
	a := timetable.New(ix)
	occ := newOccupancy(ix)

	order := rng.Perm(ix.NumCourses())
	for _, c := range order {
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
			return nil, &DeadEnd{Course: c}
		}
		pick := candidates[rng.Intn(len(candidates))]
		a.Place(c, pick.teacher, pick.room, pick.slot)
		occ.occupy(ix, c, pick.teacher, pick.room, pick.slot)
	}
	return a, nil
}

// GenerateWithRetries calls Generate up to maxAttempts times, returning the
// first success. If every attempt dead-ends, it returns the last DeadEnd
// encountered so callers can log which course is the bottleneck.
func GenerateWithRetries(ix *domain.Index, rng *rand.Rand, maxAttempts int) (*timetable.Assignment, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		a, err := Generate(ix, rng)
		if err == nil {
			return a, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("generator: %d attempts exhausted: %w", maxAttempts, lastErr)
}

// Population builds n feasible assignments, each independently generated.
func Population(ix *domain.Index, rng *rand.Rand, n, maxAttemptsPerIndividual int) ([]*timetable.Assignment, error) {
	pop := make([]*timetable.Assignment, 0, n)
	for i := 0; i < n; i++ {
		a, err := GenerateWithRetries(ix, rng, maxAttemptsPerIndividual)
		if err != nil {
			return nil, fmt.Errorf("generator: individual %d: %w", i, err)
		}
		pop = append(pop, a)
	}
	return pop, nil
}

// Package timetable implements the Assignment representation and the
// constraint/objective kernels of spec.md §3–§4.2.
package timetable

import (
	"campusopt/internal/domain"
	"fmt"
)

// Assignment is the optimized, sparse representation of spec.md §9: rather
// than a dense (C,T,R,S) boolean tensor, each course stores at most one
// (teacher, room, slot) triple. The kernels below are defined so they
// produce identical results to the dense formulation of §3.
type Assignment struct {
	Teacher []int // Teacher[c] == -1 means course c is unplaced
	Room    []int
	Slot    []int
}

const Unplaced = -1

// New returns an Assignment for ix.NumCourses() courses, all unplaced.
func New(ix *domain.Index) *Assignment {
	n := ix.NumCourses()
	a := &Assignment{
		Teacher: make([]int, n),
		Room:    make([]int, n),
		Slot:    make([]int, n),
	}
	for i := 0; i < n; i++ {
		a.Teacher[i], a.Room[i], a.Slot[i] = Unplaced, Unplaced, Unplaced
	}
	return a
}

// IsPlaced reports whether course c has a placement.
func (a *Assignment) IsPlaced(c int) bool { return a.Teacher[c] != Unplaced }

// Place assigns course c to (teacher, room, slot).
func (a *Assignment) Place(c, teacher, room, slot int) {
	a.Teacher[c], a.Room[c], a.Slot[c] = teacher, room, slot
}

// Unplace clears course c's placement.
func (a *Assignment) Unplace(c int) {
	a.Teacher[c], a.Room[c], a.Slot[c] = Unplaced, Unplaced, Unplaced
}

// Clone returns a deep copy, used for elitism (best-ever tracking) and
// checkpointing.
func (a *Assignment) Clone() *Assignment {
	n := len(a.Teacher)
	clone := &Assignment{
		Teacher: make([]int, n),
		Room:    make([]int, n),
		Slot:    make([]int, n),
	}
	copy(clone.Teacher, a.Teacher)
	copy(clone.Room, a.Room)
	copy(clone.Slot, a.Slot)
	return clone
}

// NumCourses returns the number of courses this assignment covers.
func (a *Assignment) NumCourses() int { return len(a.Teacher) }

// SwapSlots exchanges the slot assignments of every course currently at
// slot s1 with every course at slot s2 (the mutation operator of §4.4 —
// "swap the slabs A[:,:,:,s1] <-> A[:,:,:,s2]" under the sparse
// representation this amounts to swapping the Slot field wherever it
// equals s1 or s2).
func (a *Assignment) SwapSlots(s1, s2 int) {
	if s1 == s2 {
		return
	}
	for c, s := range a.Slot {
		switch s {
		case s1:
			a.Slot[c] = s2
		case s2:
			a.Slot[c] = s1
		}
	}
}

// Dense materializes the full (C,T,R,S) boolean tensor described in
// spec.md §3, flattened row-major as [c][t][r][s], for persistence (§6).
func (a *Assignment) Dense(ix *domain.Index) []bool {
	c, t, r, s := ix.NumCourses(), ix.NumTeachers(), ix.NumRooms(), ix.NumSlots()
	dense := make([]bool, c*t*r*s)
	for course := 0; course < c; course++ {
		if !a.IsPlaced(course) {
			continue
		}
		idx := ((course*t+a.Teacher[course])*r+a.Room[course])*s + a.Slot[course]
		dense[idx] = true
	}
	return dense
}

// FromDense reconstructs a sparse Assignment from a dense tensor of the
// shape produced by Dense. Returns an error if the tensor has the wrong
// length or if any course has more than one true cell (which the sparse
// representation cannot express, and which would itself be an
// assignment_count_violation, see spec.md §4.2).
func FromDense(data []bool, ix *domain.Index) (*Assignment, error) {
	c, t, r, s := ix.NumCourses(), ix.NumTeachers(), ix.NumRooms(), ix.NumSlots()
	if len(data) != c*t*r*s {
		return nil, fmt.Errorf("timetable: dense tensor has %d cells, want %d", len(data), c*t*r*s)
	}
	a := New(ix)
	for course := 0; course < c; course++ {
		base := course * t * r * s
		for ti := 0; ti < t; ti++ {
			for ri := 0; ri < r; ri++ {
				for si := 0; si < s; si++ {
					if data[base+(ti*r+ri)*s+si] {
						if a.IsPlaced(course) {
							return nil, fmt.Errorf("timetable: course %d has more than one placement in dense tensor", course)
						}
						a.Place(course, ti, ri, si)
					}
				}
			}
		}
	}
	return a, nil
}

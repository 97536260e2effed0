package ga

import (
	"math/rand"

	"campusopt/internal/domain"
	"campusopt/internal/timetable"
)

// Mutate applies the time-slot-swap operator of spec.md §4.4: two distinct
// slots are chosen uniformly at random and every course occupying either
// one has its slot exchanged. Because the swap is a pure relabeling of an
// already-valid assignment, it cannot introduce a new H2/H3/H4 conflict:
// whatever was mutually exclusive at s1 remains mutually exclusive at s2
// and vice versa.
func Mutate(ix *domain.Index, a *timetable.Assignment, rng *rand.Rand) {
	if ix.NumSlots() < 2 {
		return
	}
	s1 := rng.Intn(ix.NumSlots())
	s2 := rng.Intn(ix.NumSlots() - 1)
	if s2 >= s1 {
		s2++
	}
	a.SwapSlots(s1, s2)
}

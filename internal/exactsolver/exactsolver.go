// Package exactsolver implements the equivalent constraint model of
// spec.md §4.5: one decision variable triple (teacher, room, slot) per
// course, domain-restricted by H5/H6, with pairwise distinctness
// constraints standing in for H2-H4 and a gap-minimizing objective.
//
// No Go CP-SAT or MILP binding with a verifiable public API turned up in
// the retrieved pack (the one candidate, an other_examples fragment of
// jjhbw/GoMILP, ships only its unexported branch-and-bound internals in
// the retrieved excerpt — see DESIGN.md). The solver below is therefore a
// from-scratch branch-and-bound search, grounded on that same
// enumeration-tree shape (a search frontier of partial assignments,
// expanded by the most-constrained course first) and on
// luccasniccolas177-timetabling-udp's internal/graph conflict-graph +
// degree-based branching idiom. The conflict graph itself is built with
// gonum.org/v1/gonum/graph/simple, the same gonum module the rest of this
// repository already depends on for its statistics.
package exactsolver

import (
	"context"
	"time"

	"campusopt/internal/domain"
	"campusopt/internal/timetable"
	"gonum.org/v1/gonum/graph/simple"
)

// Outcome is the solver verdict of spec.md §4.5/§7 class 3.
type Outcome int

const (
	Optimal Outcome = iota
	Feasible
	Unknown
	Infeasible
)

func (o Outcome) String() string {
	switch o {
	case Optimal:
		return "OPTIMAL"
	case Feasible:
		return "FEASIBLE"
	case Unknown:
		return "UNKNOWN"
	case Infeasible:
		return "INFEASIBLE"
	default:
		return "INVALID"
	}
}

// Result is the outcome of one Solve call. Assignment is nil unless
// Outcome is Optimal or Feasible (spec.md §4.5: "only OPTIMAL and FEASIBLE
// persist an assignment").
type Result struct {
	Outcome        Outcome
	Assignment     *timetable.Assignment
	ObjectiveValue float64
	ComputingTime  time.Duration
}

// buildConflictGraph constructs the conflict graph of spec.md's DOMAIN
// STACK section: one node per course, one edge between two courses that
// share a group (and therefore can never share a slot, by H4). Vertex
// degree then drives the most-constrained-variable branching order below,
// the same way the teacher pack's graph-coloring solvers order by degree.
func buildConflictGraph(ix *domain.Index) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for c := 0; c < ix.NumCourses(); c++ {
		g.AddNode(simple.Node(c))
	}
	for _, courses := range ix.CoursesOfGroup {
		for i := 0; i < len(courses); i++ {
			for j := i + 1; j < len(courses); j++ {
				a, b := courses[i], courses[j]
				if !g.HasEdgeBetween(simple.Node(a).ID(), simple.Node(b).ID()) {
					g.SetEdge(simple.Edge{F: simple.Node(a), T: simple.Node(b)})
				}
			}
		}
	}
	return g
}

// courseOrder returns course indices most-constrained first: highest
// conflict-graph degree (most group-sharing rivals) first, smallest
// allowed-teacher/allowed-room domain next, course index last as a
// deterministic tiebreaker (spec.md §5's reproducibility requirement).
func courseOrder(ix *domain.Index, g *simple.UndirectedGraph) []int {
	order := make([]int, ix.NumCourses())
	for i := range order {
		order[i] = i
	}
	degree := func(c int) int {
		it := g.From(int64(c))
		n := 0
		for it.Next() {
			n++
		}
		return n
	}
	domainSize := func(c int) int {
		return len(ix.AllowedTeachers[c]) * len(ix.AllowedRooms[c])
	}
	sortByMostConstrained(order, func(a, b int) bool {
		if da, db := degree(a), degree(b); da != db {
			return da > db
		}
		if sa, sb := domainSize(a), domainSize(b); sa != sb {
			return sa < sb
		}
		return a < b
	})
	return order
}

func sortByMostConstrained(order []int, less func(a, b int) bool) {
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && less(order[j], order[j-1]); j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
}

// state is the mutable search frontier: the partial assignment under
// construction plus the occupancy sets it implies, mirroring the
// generator/crossover packages' occupancy tracking.
type state struct {
	ix          *domain.Index
	order       []int
	a           *timetable.Assignment
	teacherSlot map[[2]int]bool
	roomSlot    map[[2]int]bool
	groupSlot   map[[2]int]bool
}

func newState(ix *domain.Index, order []int) *state {
	return &state{
		ix:          ix,
		order:       order,
		a:           timetable.New(ix),
		teacherSlot: make(map[[2]int]bool),
		roomSlot:    make(map[[2]int]bool),
		groupSlot:   make(map[[2]int]bool),
	}
}

func (s *state) free(c, t, r, slot int) bool {
	if s.teacherSlot[[2]int{t, slot}] || s.roomSlot[[2]int{r, slot}] {
		return false
	}
	for _, g := range s.ix.GroupsOfCourse[c] {
		if s.groupSlot[[2]int{g, slot}] {
			return false
		}
	}
	return true
}

func (s *state) place(c, t, r, slot int) {
	s.a.Place(c, t, r, slot)
	s.teacherSlot[[2]int{t, slot}] = true
	s.roomSlot[[2]int{r, slot}] = true
	for _, g := range s.ix.GroupsOfCourse[c] {
		s.groupSlot[[2]int{g, slot}] = true
	}
}

func (s *state) unplace(c, t, r, slot int) {
	s.a.Unplace(c)
	delete(s.teacherSlot, [2]int{t, slot})
	delete(s.roomSlot, [2]int{r, slot})
	for _, g := range s.ix.GroupsOfCourse[c] {
		delete(s.groupSlot, [2]int{g, slot})
	}
}

// search is the branch-and-bound recursion: depth is the index into
// s.order (how many courses are already placed). It enumerates every
// (teacher, room, slot) candidate for the next most-constrained course,
// recursing on each, and keeps the lowest-objective complete assignment
// seen in incumbent. Returns true if the deadline was hit before the
// subtree under depth was fully explored (so the caller cannot claim
// OPTIMAL).
func (s *state) search(ctx context.Context, depth int, incumbent **timetable.Assignment, incumbentObj *float64) (timedOut bool) {
	if ctx.Err() != nil {
		return true
	}
	if depth == len(s.order) {
		obj := timetable.TeacherGaps(s.a, s.ix)
		objF := float64(obj)
		if *incumbent == nil || objF < *incumbentObj {
			*incumbent = s.a.Clone()
			*incumbentObj = objF
		}
		return false
	}

	c := s.order[depth]
	for _, t := range s.ix.AllowedTeachers[c] {
		for _, r := range s.ix.AllowedRooms[c] {
			for slotIdx := 0; slotIdx < s.ix.NumSlots(); slotIdx++ {
				if ctx.Err() != nil {
					return true
				}
				if !s.free(c, t, r, slotIdx) {
					continue
				}
				s.place(c, t, r, slotIdx)
				if s.search(ctx, depth+1, incumbent, incumbentObj) {
					s.unplace(c, t, r, slotIdx)
					return true
				}
				s.unplace(c, t, r, slotIdx)
			}
		}
	}
	return false
}

// Solve runs the branch-and-bound search of spec.md §4.5 with a single
// worker (spec.md §5: "the exact solver is single-worker to keep results
// reproducible") and a wall-clock budget. On expiry it returns the best
// feasible solution found so far, per spec.md §4.5/§7.
func Solve(ix *domain.Index, timeLimit time.Duration) (Result, error) {
	start := time.Now()
	ctx := context.Background()
	var cancel context.CancelFunc
	if timeLimit > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeLimit)
		defer cancel()
	}

	g := buildConflictGraph(ix)
	order := courseOrder(ix, g)
	st := newState(ix, order)

	var incumbent *timetable.Assignment
	var incumbentObj float64
	timedOut := st.search(ctx, 0, &incumbent, &incumbentObj)

	elapsed := time.Since(start)
	switch {
	case incumbent == nil && timedOut:
		return Result{Outcome: Unknown, ComputingTime: elapsed}, nil
	case incumbent == nil && !timedOut:
		return Result{Outcome: Infeasible, ComputingTime: elapsed}, nil
	case incumbent != nil && timedOut:
		return Result{Outcome: Feasible, Assignment: incumbent, ObjectiveValue: incumbentObj, ComputingTime: elapsed}, nil
	default:
		return Result{Outcome: Optimal, Assignment: incumbent, ObjectiveValue: incumbentObj, ComputingTime: elapsed}, nil
	}
}

// Package report implements the run controller's reporting surface of
// spec.md §4.6: the final constraint audit (a per-kernel violation
// breakdown, the Go equivalent of the original implementation's
// print_constraints_values, see SPEC_FULL.md's SUPPLEMENTED FEATURES) and
// the fitness-component summary printed by the "generate" and "audit" CLI
// subcommands ("score" prints its own breakdown).
package report

import (
	"fmt"
	"io"

	"campusopt/internal/domain"
	"campusopt/internal/timetable"
)

// Audit is the full per-kernel violation breakdown of spec.md §4.2/§8 P4
// for one assignment.
type Audit struct {
	RoomViolations            int
	TeacherViolations         int
	GroupViolations           int
	AssignmentCountViolations int
	TeacherDomainViolations   int
	RoomDomainViolations      int
	Components                timetable.Components
	Fitness                   float64
}

// Feasible reports whether every hard-constraint kernel is zero (spec.md
// §8 P4).
func (a Audit) Feasible() bool {
	return a.RoomViolations == 0 &&
		a.TeacherViolations == 0 &&
		a.GroupViolations == 0 &&
		a.AssignmentCountViolations == 0 &&
		a.TeacherDomainViolations == 0 &&
		a.RoomDomainViolations == 0
}

// Run computes the full audit of an assignment: the six hard kernels, the
// five objective components, and the weighted fitness.
func Run(a *timetable.Assignment, ix *domain.Index, prefs domain.Preferences, w timetable.Weights) Audit {
	return Audit{
		RoomViolations:            timetable.RoomViolations(a, ix),
		TeacherViolations:         timetable.TeacherViolations(a, ix),
		GroupViolations:           timetable.GroupViolations(a, ix),
		AssignmentCountViolations: timetable.AssignmentCountViolations(a, ix),
		TeacherDomainViolations:   timetable.TeacherDomainViolations(a, ix),
		RoomDomainViolations:      timetable.RoomDomainViolations(a, ix),
		Components:                timetable.Measure(a, ix, prefs),
		Fitness:                   timetable.Fitness(a, ix, prefs, w),
	}
}

// Print writes a human-readable breakdown, one line per kernel/component,
// in the teacher's plain fmt.Fprintf reporting style (see search.go's
// Complain/report helpers).
func Print(w io.Writer, a Audit) {
	fmt.Fprintf(w, "hard constraints:\n")
	fmt.Fprintf(w, "  room violations:             %d\n", a.RoomViolations)
	fmt.Fprintf(w, "  teacher violations:          %d\n", a.TeacherViolations)
	fmt.Fprintf(w, "  group violations:            %d\n", a.GroupViolations)
	fmt.Fprintf(w, "  assignment-count violations: %d\n", a.AssignmentCountViolations)
	fmt.Fprintf(w, "  teacher-domain violations:   %d\n", a.TeacherDomainViolations)
	fmt.Fprintf(w, "  room-domain violations:      %d\n", a.RoomDomainViolations)
	if a.Feasible() {
		fmt.Fprintf(w, "  -> feasible\n")
	} else {
		fmt.Fprintf(w, "  -> INFEASIBLE\n")
	}
	fmt.Fprintf(w, "soft objective:\n")
	fmt.Fprintf(w, "  teacher gaps:          %d\n", a.Components.TeacherGaps)
	fmt.Fprintf(w, "  group gaps:            %d\n", a.Components.GroupGaps)
	fmt.Fprintf(w, "  preference penalty:    %.3f\n", a.Components.PreferencePenalty)
	fmt.Fprintf(w, "  teacher room changes:  %d\n", a.Components.TeacherRoomChanges)
	fmt.Fprintf(w, "  group room changes:    %d\n", a.Components.GroupRoomChanges)
	fmt.Fprintf(w, "  fitness:               %.3f\n", a.Fitness)
}

package timetable

import "campusopt/internal/domain"

// Weights holds the per-component multipliers of the fitness formula in
// spec.md §4.2. The zero value is invalid; use DefaultWeights.
type Weights struct {
	TeacherGaps        float64
	GroupGaps          float64
	PreferencePenalty  float64
	TeacherRoomChanges float64
	GroupRoomChanges   float64

	// TeachingDays and EarlyPenalty are supplemented components (see
	// SPEC_FULL.md) carried over from original_source/optimization.py's
	// count_teaching_days/count_early_assignments. Both default to 0 so
	// the default fitness formula matches spec.md §4.2 exactly.
	TeachingDays float64
	EarlyPenalty float64

	// Infeasibility is the optional guardrail weight for H1
	// (assignment-count) violations. spec.md §9 resolves the open
	// question of whether H1 belongs in the default fitness as "no" —
	// so this defaults to 0 and only applies when a caller opts in.
	Infeasibility float64
}

// DefaultWeights implements spec.md §4.2's literal formula:
//
//	F(A) = 2*teacher_gaps + 2*group_gaps + 1*preference_penalty
//	     + 1*teacher_room_changes + 0.3*group_room_changes
func DefaultWeights() Weights {
	return Weights{
		TeacherGaps:        2.0,
		GroupGaps:          2.0,
		PreferencePenalty:  1.0,
		TeacherRoomChanges: 1.0,
		GroupRoomChanges:   0.3,
	}
}

// Fitness computes the weighted objective of spec.md §4.2 for a single
// assignment. Lower is better; a perfectly conflict-free, gap-free,
// preference-satisfying schedule scores 0.
func Fitness(a *Assignment, ix *domain.Index, prefs domain.Preferences, w Weights) float64 {
	f := 0.0
	if w.TeacherGaps != 0 {
		f += w.TeacherGaps * float64(TeacherGaps(a, ix))
	}
	if w.GroupGaps != 0 {
		f += w.GroupGaps * float64(GroupGaps(a, ix))
	}
	if w.PreferencePenalty != 0 {
		f += w.PreferencePenalty * PreferencePenalty(a, ix, prefs)
	}
	if w.TeacherRoomChanges != 0 {
		f += w.TeacherRoomChanges * float64(TeacherRoomChanges(a, ix))
	}
	if w.GroupRoomChanges != 0 {
		f += w.GroupRoomChanges * float64(GroupRoomChanges(a, ix))
	}
	if w.TeachingDays != 0 {
		f += w.TeachingDays * float64(TeachingDays(a, ix))
	}
	if w.EarlyPenalty != 0 {
		f += w.EarlyPenalty * EarlyPenalty(a, ix)
	}
	if w.Infeasibility != 0 {
		f += w.Infeasibility * float64(AssignmentCountViolations(a, ix))
	}
	return f
}

// Components reports the five headline values that make up the default
// fitness formula, independent of weighting, for audit/report output.
type Components struct {
	TeacherGaps        int
	GroupGaps          int
	PreferencePenalty  float64
	TeacherRoomChanges int
	GroupRoomChanges   int
}

// Measure computes the raw (unweighted) Components for a.
func Measure(a *Assignment, ix *domain.Index, prefs domain.Preferences) Components {
	return Components{
		TeacherGaps:        TeacherGaps(a, ix),
		GroupGaps:          GroupGaps(a, ix),
		PreferencePenalty:  PreferencePenalty(a, ix, prefs),
		TeacherRoomChanges: TeacherRoomChanges(a, ix),
		GroupRoomChanges:   GroupRoomChanges(a, ix),
	}
}

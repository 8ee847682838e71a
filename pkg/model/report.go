package model

import "time"

// Status reports the outcome of a solve attempt.
type Status string

const (
	// StatusOptimal means the engine proved the returned assignment has
	// minimum objective value.
	StatusOptimal Status = "OPTIMAL"
	// StatusFeasible means the time budget expired while a feasible,
	// possibly suboptimal assignment was in hand.
	StatusFeasible Status = "FEASIBLE"
	// StatusInfeasible means the hard constraints admit no assignment.
	StatusInfeasible Status = "INFEASIBLE"
	// StatusUnknown means the budget expired before any assignment was
	// found. It is not an error: the caller simply has no answer.
	StatusUnknown Status = "UNKNOWN"
	// StatusModelInvalid means the model handed to the engine was
	// malformed (for instance, empty).
	StatusModelInvalid Status = "MODEL_INVALID"
)

// HasAssignment reports whether a concrete assignment exists and the
// reporting step may run.
func (s Status) HasAssignment() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// ScheduleRow is the per-unit slice of a schedule: the category assigned
// to one unit at every slot, in slot order.
type ScheduleRow struct {
	Unit     string   `json:"unit"`
	Assigned []string `json:"assigned"`
}

// Schedule is the decoded assignment for every unit across all slots.
type Schedule struct {
	Slots []string      `json:"slots"`
	Rows  []ScheduleRow `json:"rows"`
}

// Violation records one active cost term: a soft rule that was violated
// (positive penalty) or a preference that was fulfilled (negative
// penalty). Amount is the magnitude, e.g. how far a run length strayed
// from its soft band.
type Violation struct {
	Rule    string `json:"rule"`
	Unit    string `json:"unit"`
	Context string `json:"context"`
	Amount  int    `json:"amount"`
	Penalty int    `json:"penalty"`
}

// SolveStats carries the engine's solve statistics.
type SolveStats struct {
	Status    Status        `json:"status"`
	Objective int           `json:"objective"`
	WallTime  time.Duration `json:"wall_time"`
	Solutions int           `json:"solutions"`
	Conflicts int           `json:"conflicts"`
	Decisions int           `json:"decisions"`
	Restarts  int           `json:"restarts"`
}

// Report is the structured outcome of a solve: statistics plus every
// active soft constraint. Rendering is left to the caller.
type Report struct {
	Stats      SolveStats  `json:"stats"`
	Violations []Violation `json:"violations"`
}

// TotalPenalty sums the signed penalties of all recorded violations.
func (r *Report) TotalPenalty() int {
	total := 0
	for _, v := range r.Violations {
		total += v.Penalty
	}
	return total
}

package model

import "fmt"

// DaysPerWeek is the roster planning granularity: cover demands and
// weekly sum constraints repeat on a seven-day cycle.
const DaysPerWeek = 7

// FixedAssignment pins an employee to a shift on a given day.
type FixedAssignment struct {
	Employee int `json:"employee" yaml:"employee"`
	Shift    int `json:"shift" yaml:"shift"`
	Day      int `json:"day" yaml:"day"`
}

// Request is a direct preference of an employee for (or against) working
// a shift on a day. A negative weight is a reward for granting the
// request; a positive weight penalizes granting it.
type Request struct {
	Employee int `json:"employee" yaml:"employee"`
	Shift    int `json:"shift" yaml:"shift"`
	Day      int `json:"day" yaml:"day"`
	Weight   int `json:"weight" yaml:"weight"`
}

// RequestRule generates requests from a JavaScript expression evaluated
// once per (employee, week, day, shift) with those fields in scope. The
// expression must return an integer weight; zero emits nothing.
type RequestRule struct {
	Name string `json:"name" yaml:"name"`
	Expr string `json:"expr" yaml:"expr"`
}

// SequenceConstraint bounds the length of consecutive runs of one shift
// type in an employee's schedule.
type SequenceConstraint struct {
	Shift int       `json:"shift" yaml:"shift"`
	Spec  BoundSpec `json:"spec" yaml:"spec"`
}

// SumConstraint bounds how many times one shift type may appear in an
// employee's week.
type SumConstraint struct {
	Shift int       `json:"shift" yaml:"shift"`
	Spec  BoundSpec `json:"spec" yaml:"spec"`
}

// Transition describes an ordered pair of shifts on consecutive days for
// the same employee. Cost zero forbids the pair outright; a positive
// cost charges it each time it occurs.
type Transition struct {
	Prev int `json:"prev" yaml:"prev"`
	Next int `json:"next" yaml:"next"`
	Cost int `json:"cost" yaml:"cost"`
}

// RosterProblem is a fully resolved shift scheduling instance.
//
// Shifts[0] must be the off shift; it takes part in one-hot, sequence
// and sum constraints but never in cover demands.
type RosterProblem struct {
	Employees int      `json:"employees" yaml:"employees"`
	Weeks     int      `json:"weeks" yaml:"weeks"`
	Shifts    []string `json:"shifts" yaml:"shifts"`

	FixedAssignments []FixedAssignment    `json:"fixed_assignments,omitempty" yaml:"fixed_assignments,omitempty"`
	Requests         []Request            `json:"requests,omitempty" yaml:"requests,omitempty"`
	ShiftConstraints []SequenceConstraint `json:"shift_constraints,omitempty" yaml:"shift_constraints,omitempty"`
	WeeklySums       []SumConstraint      `json:"weekly_sums,omitempty" yaml:"weekly_sums,omitempty"`
	Transitions      []Transition         `json:"transitions,omitempty" yaml:"transitions,omitempty"`

	// WeeklyCoverDemands[d][s] is the minimum number of employees that
	// must work shift s+1 on weekday d. CoverPenalties[s] charges each
	// employee above that minimum.
	WeeklyCoverDemands [][]int `json:"weekly_cover_demands,omitempty" yaml:"weekly_cover_demands,omitempty"`
	CoverPenalties     []int   `json:"cover_penalties,omitempty" yaml:"cover_penalties,omitempty"`
}

// Days returns the total number of scheduled days.
func (p *RosterProblem) Days() int { return p.Weeks * DaysPerWeek }

// Validate fails fast on instances no model should be built for.
func (p *RosterProblem) Validate() error {
	if p.Employees <= 0 {
		return fmt.Errorf("roster: employees must be positive, got %d", p.Employees)
	}
	if p.Weeks <= 0 {
		return fmt.Errorf("roster: weeks must be positive, got %d", p.Weeks)
	}
	if len(p.Shifts) < 2 {
		return fmt.Errorf("roster: need the off shift plus at least one work shift, got %d shifts", len(p.Shifts))
	}
	for _, fa := range p.FixedAssignments {
		if err := p.checkRef("fixed assignment", fa.Employee, fa.Shift, fa.Day); err != nil {
			return err
		}
	}
	for _, r := range p.Requests {
		if err := p.checkRef("request", r.Employee, r.Shift, r.Day); err != nil {
			return err
		}
	}
	for _, c := range p.ShiftConstraints {
		if c.Shift < 0 || c.Shift >= len(p.Shifts) {
			return fmt.Errorf("roster: shift constraint references unknown shift %d", c.Shift)
		}
		if err := c.Spec.Validate(); err != nil {
			return fmt.Errorf("roster: shift constraint %q: %w", p.Shifts[c.Shift], err)
		}
	}
	for _, c := range p.WeeklySums {
		if c.Shift < 0 || c.Shift >= len(p.Shifts) {
			return fmt.Errorf("roster: weekly sum references unknown shift %d", c.Shift)
		}
		if err := c.Spec.Validate(); err != nil {
			return fmt.Errorf("roster: weekly sum %q: %w", p.Shifts[c.Shift], err)
		}
		if c.Spec.HardMax > DaysPerWeek {
			return fmt.Errorf("roster: weekly sum %q hard_max %d exceeds %d days", p.Shifts[c.Shift], c.Spec.HardMax, DaysPerWeek)
		}
	}
	for _, t := range p.Transitions {
		if t.Prev < 0 || t.Prev >= len(p.Shifts) || t.Next < 0 || t.Next >= len(p.Shifts) {
			return fmt.Errorf("roster: transition references unknown shift pair (%d, %d)", t.Prev, t.Next)
		}
		if t.Cost < 0 {
			return fmt.Errorf("roster: transition cost must be non-negative, got %d", t.Cost)
		}
	}
	if len(p.WeeklyCoverDemands) > 0 {
		if len(p.WeeklyCoverDemands) != DaysPerWeek {
			return fmt.Errorf("roster: cover demands must list %d weekdays, got %d", DaysPerWeek, len(p.WeeklyCoverDemands))
		}
		for d, row := range p.WeeklyCoverDemands {
			if len(row) != len(p.Shifts)-1 {
				return fmt.Errorf("roster: cover demands for weekday %d must list %d work shifts, got %d", d, len(p.Shifts)-1, len(row))
			}
			for s, min := range row {
				if min < 0 {
					return fmt.Errorf("roster: negative cover demand for weekday %d shift %q", d, p.Shifts[s+1])
				}
				if min > p.Employees {
					return fmt.Errorf("roster: cover demand %d for weekday %d shift %q exceeds %d employees", min, d, p.Shifts[s+1], p.Employees)
				}
			}
		}
		if len(p.CoverPenalties) != len(p.Shifts)-1 {
			return fmt.Errorf("roster: cover penalties must list %d work shifts, got %d", len(p.Shifts)-1, len(p.CoverPenalties))
		}
		for s, c := range p.CoverPenalties {
			if c < 0 {
				return fmt.Errorf("roster: negative cover penalty for shift %q", p.Shifts[s+1])
			}
		}
	}
	return nil
}

func (p *RosterProblem) checkRef(what string, employee, shift, day int) error {
	if employee < 0 || employee >= p.Employees {
		return fmt.Errorf("roster: %s references unknown employee %d", what, employee)
	}
	if shift < 0 || shift >= len(p.Shifts) {
		return fmt.Errorf("roster: %s references unknown shift %d", what, shift)
	}
	if day < 0 || day >= p.Days() {
		return fmt.Errorf("roster: %s references day %d outside horizon of %d days", what, day, p.Days())
	}
	return nil
}

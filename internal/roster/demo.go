package roster

import "github.com/me/rota/pkg/model"

// DemoProblem returns the built-in example instance: 8 employees over 3
// weeks choosing between Off, Morning, Afternoon and Night shifts, with
// a realistic mix of fixed days, requests, run and sum bands, penalized
// transitions and cover demands.
func DemoProblem() *model.RosterProblem {
	return &model.RosterProblem{
		Employees: 8,
		Weeks:     3,
		Shifts:    []string{"Off", "Morning", "Afternoon", "Night"},

		FixedAssignments: []model.FixedAssignment{
			{Employee: 0, Shift: 0, Day: 0},
			{Employee: 1, Shift: 0, Day: 0},
			{Employee: 2, Shift: 1, Day: 0},
			{Employee: 3, Shift: 1, Day: 0},
			{Employee: 4, Shift: 2, Day: 0},
			{Employee: 5, Shift: 2, Day: 0},
			{Employee: 6, Shift: 2, Day: 3},
			{Employee: 7, Shift: 3, Day: 0},
			{Employee: 0, Shift: 1, Day: 1},
			{Employee: 1, Shift: 1, Day: 1},
			{Employee: 2, Shift: 2, Day: 1},
			{Employee: 3, Shift: 2, Day: 1},
			{Employee: 4, Shift: 2, Day: 1},
			{Employee: 5, Shift: 0, Day: 1},
			{Employee: 6, Shift: 0, Day: 1},
			{Employee: 7, Shift: 3, Day: 1},
		},

		// Negative weights reward granting the request.
		Requests: []model.Request{
			{Employee: 3, Shift: 0, Day: 5, Weight: -2},
			{Employee: 5, Shift: 0, Day: 10, Weight: -2},
			{Employee: 2, Shift: 3, Day: 4, Weight: 4},
		},

		ShiftConstraints: []model.SequenceConstraint{
			// One or two consecutive days off.
			{Shift: 0, Spec: model.BoundSpec{HardMin: 1, SoftMin: 1, MinCost: 0, SoftMax: 2, MaxCost: 0, HardMax: 2}},
			// Night runs of 2-3 preferred, 1-4 tolerated.
			{Shift: 3, Spec: model.BoundSpec{HardMin: 1, SoftMin: 2, MinCost: 20, SoftMax: 3, MaxCost: 5, HardMax: 4}},
		},

		WeeklySums: []model.SumConstraint{
			// One to three days off per week, ideally two.
			{Shift: 0, Spec: model.BoundSpec{HardMin: 1, SoftMin: 2, MinCost: 7, SoftMax: 2, MaxCost: 4, HardMax: 3}},
			// At most four nights per week, ideally at least one.
			{Shift: 3, Spec: model.BoundSpec{HardMin: 0, SoftMin: 1, MinCost: 3, SoftMax: 4, MaxCost: 0, HardMax: 4}},
		},

		Transitions: []model.Transition{
			// Afternoon straight into night costs 4.
			{Prev: 2, Next: 3, Cost: 4},
			// Night straight into morning is forbidden.
			{Prev: 3, Next: 1, Cost: 0},
		},

		WeeklyCoverDemands: [][]int{
			{2, 3, 1}, // Mon
			{2, 3, 1}, // Tue
			{2, 2, 2}, // Wed
			{2, 3, 1}, // Thu
			{2, 2, 2}, // Fri
			{1, 2, 3}, // Sat
			{1, 3, 1}, // Sun
		},
		CoverPenalties: []int{2, 2, 5},
	}
}

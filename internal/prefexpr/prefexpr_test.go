package prefexpr

import (
	"testing"

	"github.com/me/rota/pkg/model"
)

func twoWeekProblem() *model.RosterProblem {
	return &model.RosterProblem{
		Employees: 2,
		Weeks:     2,
		Shifts:    []string{"Off", "Day", "Night"},
	}
}

func TestExpandConstantZeroEmitsNothing(t *testing.T) {
	out, err := Expand(twoWeekProblem(), []model.RequestRule{{Name: "noop", Expr: "0"}})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("requests = %d, want 0", len(out))
	}
}

func TestExpandWeekendOffReward(t *testing.T) {
	// Reward Off on Saturday and Sunday for everybody.
	rule := model.RequestRule{
		Name: "weekend off",
		Expr: `shift === "Off" && weekday >= 5 ? -2 : 0`,
	}
	out, err := Expand(twoWeekProblem(), []model.RequestRule{rule})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	// 2 employees x 2 weeks x 2 weekend days.
	if len(out) != 8 {
		t.Fatalf("requests = %d, want 8", len(out))
	}
	for _, r := range out {
		if r.Shift != 0 || r.Weight != -2 {
			t.Fatalf("request = %+v", r)
		}
		if wd := r.Day % model.DaysPerWeek; wd != 5 && wd != 6 {
			t.Fatalf("request on weekday %d", wd)
		}
	}
}

func TestExpandScopeBindings(t *testing.T) {
	// Penalize employee 1 working Night in week 1 only.
	rule := model.RequestRule{
		Name: "night guard",
		Expr: `employee === 1 && week === 1 && shift === "Night" ? 6 : 0`,
	}
	out, err := Expand(twoWeekProblem(), []model.RequestRule{rule})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(out) != model.DaysPerWeek {
		t.Fatalf("requests = %d, want %d", len(out), model.DaysPerWeek)
	}
	for _, r := range out {
		if r.Employee != 1 || r.Shift != 2 || r.Weight != 6 || r.Day < model.DaysPerWeek {
			t.Fatalf("request = %+v", r)
		}
	}
}

func TestExpandCompileError(t *testing.T) {
	_, err := Expand(twoWeekProblem(), []model.RequestRule{{Name: "broken", Expr: "???"}})
	if err == nil {
		t.Fatal("expected compile error")
	}
}

func TestExpandUndefinedResultIsZero(t *testing.T) {
	out, err := Expand(twoWeekProblem(), []model.RequestRule{{Name: "undef", Expr: "undefined"}})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("requests = %d, want 0", len(out))
	}
}

func TestExpandMultipleRules(t *testing.T) {
	rules := []model.RequestRule{
		{Name: "a", Expr: `employee === 0 && day === 0 && shift === "Day" ? 1 : 0`},
		{Name: "b", Expr: `employee === 1 && day === 1 && shift === "Night" ? -1 : 0`},
	}
	out, err := Expand(twoWeekProblem(), rules)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("requests = %d, want 2", len(out))
	}
	if out[0].Weight != 1 || out[1].Weight != -1 {
		t.Fatalf("requests = %+v", out)
	}
}

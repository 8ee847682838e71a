// Package prefexpr expands request rules written as JavaScript
// expressions into concrete per-slot requests. Each rule is evaluated
// once for every (employee, week, weekday, shift) combination with
// those fields bound in scope; a non-zero integer result becomes a
// request with that weight.
package prefexpr

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/me/rota/pkg/model"
)

// Expand evaluates every rule across the whole problem horizon and
// returns the generated requests. Expression errors are configuration
// errors: expansion stops at the first one.
func Expand(p *model.RosterProblem, rules []model.RequestRule) ([]model.Request, error) {
	var out []model.Request
	for _, rule := range rules {
		prog, err := goja.Compile(rule.Name, rule.Expr, true)
		if err != nil {
			return nil, fmt.Errorf("rule %q: compile: %w", rule.Name, err)
		}
		vm := goja.New()
		for e := 0; e < p.Employees; e++ {
			for day := 0; day < p.Days(); day++ {
				for sh, shiftName := range p.Shifts {
					weight, err := eval(vm, prog, map[string]any{
						"employee": e,
						"week":     day / model.DaysPerWeek,
						"weekday":  day % model.DaysPerWeek,
						"day":      day,
						"shift":    shiftName,
					})
					if err != nil {
						return nil, fmt.Errorf("rule %q: %w", rule.Name, err)
					}
					if weight != 0 {
						out = append(out, model.Request{Employee: e, Shift: sh, Day: day, Weight: weight})
					}
				}
			}
		}
	}
	return out, nil
}

func eval(vm *goja.Runtime, prog *goja.Program, scope map[string]any) (int, error) {
	for name, value := range scope {
		if err := vm.Set(name, value); err != nil {
			return 0, fmt.Errorf("set %s: %w", name, err)
		}
	}
	v, err := vm.RunProgram(prog)
	if err != nil {
		return 0, err
	}
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return 0, nil
	}
	return int(v.ToInteger()), nil
}

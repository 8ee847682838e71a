package encode

import (
	"fmt"

	"github.com/me/rota/internal/engine"
)

// Cube is the dense decision variable fabric: one boolean per
// (unit, category, slot) triple, meaning "unit is assigned category at
// slot". Variables are allocated once and never mutated; compilers and
// the engine only reference them.
type Cube struct {
	m          *engine.Model
	units      int
	categories int
	slots      int
	vars       []engine.Var
}

// NewCube allocates the full variable cube on m. Names follow the
// pattern "<prefix>_u<unit>_c<category>_t<slot>".
func NewCube(m *engine.Model, prefix string, units, categories, slots int) *Cube {
	if units <= 0 || categories <= 0 || slots <= 0 {
		panic(fmt.Sprintf("encode: invalid cube dimensions %dx%dx%d", units, categories, slots))
	}
	c := &Cube{
		m:          m,
		units:      units,
		categories: categories,
		slots:      slots,
		vars:       make([]engine.Var, units*categories*slots),
	}
	for u := 0; u < units; u++ {
		for cat := 0; cat < categories; cat++ {
			for t := 0; t < slots; t++ {
				c.vars[c.index(u, cat, t)] = m.NewVar(fmt.Sprintf("%s_u%d_c%d_t%d", prefix, u, cat, t))
			}
		}
	}
	return c
}

// Units returns the unit dimension.
func (c *Cube) Units() int { return c.units }

// Categories returns the category dimension.
func (c *Cube) Categories() int { return c.categories }

// Slots returns the slot dimension.
func (c *Cube) Slots() int { return c.slots }

func (c *Cube) index(unit, category, slot int) int {
	if unit < 0 || unit >= c.units || category < 0 || category >= c.categories || slot < 0 || slot >= c.slots {
		panic(fmt.Sprintf("encode: cube index (%d, %d, %d) out of bounds %dx%dx%d",
			unit, category, slot, c.units, c.categories, c.slots))
	}
	return (unit*c.categories+category)*c.slots + slot
}

// Var returns the decision variable for (unit, category, slot).
func (c *Cube) Var(unit, category, slot int) engine.Var {
	return c.vars[c.index(unit, category, slot)]
}

// Row returns one unit's boolean sequence for a category across all
// slots, in slot order.
func (c *Cube) Row(unit, category int) []engine.Var {
	row := make([]engine.Var, c.slots)
	for t := 0; t < c.slots; t++ {
		row[t] = c.Var(unit, category, t)
	}
	return row
}

// Column returns the booleans of one (category, slot) across all units.
func (c *Cube) Column(category, slot int) []engine.Var {
	col := make([]engine.Var, c.units)
	for u := 0; u < c.units; u++ {
		col[u] = c.Var(u, category, slot)
	}
	return col
}

// EnforceOneHot posts an exactly-one constraint per (unit, slot): every
// unit holds exactly one category at every slot.
func (c *Cube) EnforceOneHot() {
	for u := 0; u < c.units; u++ {
		for t := 0; t < c.slots; t++ {
			vars := make([]engine.Var, c.categories)
			for cat := 0; cat < c.categories; cat++ {
				vars[cat] = c.Var(u, cat, t)
			}
			c.m.AddExactlyOne(vars...)
		}
	}
}

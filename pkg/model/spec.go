package model

import "fmt"

// BoundSpec describes a soft constraint band inside hard bounds.
//
// Values inside [SoftMin, SoftMax] are free. Values in [HardMin, SoftMin)
// cost MinCost per unit of shortfall, values in (SoftMax, HardMax] cost
// MaxCost per unit of surplus. Values outside [HardMin, HardMax] are
// infeasible. A zero cost disables the corresponding soft band, leaving
// only the hard bound.
type BoundSpec struct {
	HardMin int `json:"hard_min" yaml:"hard_min"`
	SoftMin int `json:"soft_min" yaml:"soft_min"`
	MinCost int `json:"min_cost" yaml:"min_cost"`
	SoftMax int `json:"soft_max" yaml:"soft_max"`
	MaxCost int `json:"max_cost" yaml:"max_cost"`
	HardMax int `json:"hard_max" yaml:"hard_max"`
}

// Validate checks the band ordering and cost signs.
func (b BoundSpec) Validate() error {
	if b.HardMin > b.SoftMin || b.SoftMin > b.SoftMax || b.SoftMax > b.HardMax {
		return fmt.Errorf("bound spec out of order: hard_min=%d soft_min=%d soft_max=%d hard_max=%d",
			b.HardMin, b.SoftMin, b.SoftMax, b.HardMax)
	}
	if b.MinCost < 0 || b.MaxCost < 0 {
		return fmt.Errorf("bound spec costs must be non-negative: min_cost=%d max_cost=%d", b.MinCost, b.MaxCost)
	}
	if b.HardMin < 0 {
		return fmt.Errorf("bound spec hard_min must be non-negative: %d", b.HardMin)
	}
	return nil
}

// Hard returns a spec with the same hard bounds and no soft band.
func (b BoundSpec) Hard() BoundSpec {
	return BoundSpec{HardMin: b.HardMin, SoftMin: b.HardMin, SoftMax: b.HardMax, HardMax: b.HardMax}
}

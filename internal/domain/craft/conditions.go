package craft

type ConditionFamily string

const (
	ConditionNone          ConditionFamily = ""
	ConditionControl       ConditionFamily = "control"
	ConditionIntensity     ConditionFamily = "intensity"
	ConditionBalance       ConditionFamily = "balance"
	ConditionPoolCost      ConditionFamily = "pool_cost"
	ConditionStabilityCost ConditionFamily = "stability_cost"
	ConditionSuccess       ConditionFamily = "success"
)

// Condition is the ambient modifier rolled for a crafting session.
// Percent is signed; its magnitude is clamped into the 25 to 100 band.
// The balance family touches control and intensity at once, the cost
// families scale the respective action costs and the success family
// shifts the hit chance by flat percentage points.
type Condition struct {
	Family  ConditionFamily `json:"family,omitempty"`
	Percent float64         `json:"percent,omitempty"`
}

// Normalized clamps the percent magnitude into the legal band while
// preserving its sign. A zero percent stays zero and leaves the
// condition inert.
func (c Condition) Normalized() Condition {
	if c.Family == ConditionNone || c.Percent == 0 {
		return Condition{Family: c.Family}
	}
	p := c.Percent
	neg := p < 0
	if neg {
		p = -p
	}
	if p < ConditionMinPct {
		p = ConditionMinPct
	}
	if p > ConditionMaxPct {
		p = ConditionMaxPct
	}
	if neg {
		p = -p
	}
	return Condition{Family: c.Family, Percent: p}
}

func (c Condition) ControlMult() float64 {
	if c.Family == ConditionControl || c.Family == ConditionBalance {
		return 1 + c.Percent/100
	}
	return 1
}

func (c Condition) IntensityMult() float64 {
	if c.Family == ConditionIntensity || c.Family == ConditionBalance {
		return 1 + c.Percent/100
	}
	return 1
}

func (c Condition) PoolCostMult() float64 {
	if c.Family == ConditionPoolCost {
		return costMult(c.Percent)
	}
	return 1
}

func (c Condition) StabilityCostMult() float64 {
	if c.Family == ConditionStabilityCost {
		return costMult(c.Percent)
	}
	return 1
}

func (c Condition) SuccessDelta() float64 {
	if c.Family == ConditionSuccess {
		return c.Percent
	}
	return 0
}

func costMult(pct float64) float64 {
	m := 1 + pct/100
	if m < 0 {
		return 0
	}
	return m
}

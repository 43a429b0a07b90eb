// Package harmony implements the per-recipe resonance sub-systems that
// accompany a craft: furnace heat, combo windows, fixed patterns and
// action streaks. Exactly one variant is active per craft, selected by
// the recipe. The package is deliberately unaware of the crafting state
// machine; callers feed it action categories and read back modifier
// percentages and one-time effects.
package harmony

type Kind string

const (
	KindNone    Kind = ""
	KindHeat    Kind = "heat"
	KindCombo   Kind = "combo"
	KindPattern Kind = "pattern"
	KindStreak  Kind = "streak"
)

// State is a tagged union over the four variants. Only the fields of
// the active Kind are meaningful; the rest stay at their zero values.
type State struct {
	Kind Kind `json:"kind,omitempty"`

	// KindHeat
	Heat       int  `json:"heat,omitempty"`
	Overheated bool `json:"overheated,omitempty"`

	// KindCombo
	Window     []string `json:"window,omitempty"`
	SurgeTurns int      `json:"surge_turns,omitempty"`

	// KindPattern
	Cycle    []string `json:"cycle,omitempty"`
	CyclePos int      `json:"cycle_pos,omitempty"`
	Stacks   int      `json:"stacks,omitempty"`

	// KindStreak
	LastCategory    string `json:"last_category,omitempty"`
	Strength        int    `json:"strength,omitempty"`
	SwitchPenalized bool   `json:"switch_penalized,omitempty"`
}

// StepInput carries the slice of an executed action that the harmony
// layer cares about.
type StepInput struct {
	Category  string
	HeatDelta int
}

// Effects are one-time deltas produced by a step transition. Negative
// values are penalties. CapPenalty adds to the accumulated stability
// cap penalty of the craft.
type Effects struct {
	Completion float64
	Perfection float64
	Stability  float64
	Pool       float64
	CapPenalty float64
	Events     []string
}

// Mods are standing percentage modifiers derived from the current
// sub-state. They stay in force for as long as the sub-state holds the
// shape that produced them.
type Mods struct {
	IntensityPct  float64
	ControlPct    float64
	CritChancePct float64
	SuccessPct    float64
}

// Step advances the sub-state after a primary action resolved and
// returns the one-time effects of the transition.
func Step(st State, in StepInput) (State, Effects) {
	switch st.Kind {
	case KindHeat:
		return stepHeat(st, in)
	case KindCombo:
		return stepCombo(st, in)
	case KindPattern:
		return stepPattern(st, in)
	case KindStreak:
		return stepStreak(st, in)
	default:
		return st, Effects{}
	}
}

// Modifiers reports the standing modifiers of the current sub-state.
// Callers use it while computing gains for the action about to run,
// before Step transitions the state.
func Modifiers(st State) Mods {
	switch st.Kind {
	case KindHeat:
		return heatMods(st)
	case KindCombo:
		return comboMods(st)
	case KindPattern:
		return patternMods(st)
	case KindStreak:
		return streakMods(st)
	default:
		return Mods{}
	}
}

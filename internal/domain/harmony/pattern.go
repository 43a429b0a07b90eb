package harmony

import "math"

// stepPattern tracks progress through the recipe's fixed category
// cycle. Each correct continuation adds a stack; an off-cycle action
// halves the stacks and applies break penalties. A break is only
// charged when there was progress to lose.
func stepPattern(st State, in StepInput) (State, Effects) {
	next := st
	if len(next.Cycle) == 0 {
		return next, Effects{}
	}

	if in.Category == next.Cycle[next.CyclePos] {
		next.CyclePos = (next.CyclePos + 1) % len(next.Cycle)
		if next.Stacks < PatternMaxStacks {
			next.Stacks++
		}
		return next, Effects{}
	}

	hadProgress := next.Stacks > 0 || next.CyclePos > 0
	next.Stacks /= 2
	next.CyclePos = 0
	if in.Category == next.Cycle[0] {
		next.CyclePos = 1 % len(next.Cycle)
	}
	if !hadProgress {
		return next, Effects{}
	}
	return next, Effects{
		Completion: -PatternBreakCompletionLoss,
		Pool:       -PatternBreakPoolLoss,
		CapPenalty: PatternBreakCapPenalty,
		Events:     []string{"pattern_broken"},
	}
}

func patternMods(st State) Mods {
	if st.Stacks <= 0 {
		return Mods{}
	}
	pct := (math.Pow(1+PatternStackPct/100.0, float64(st.Stacks)) - 1) * 100
	return Mods{IntensityPct: pct, ControlPct: pct}
}

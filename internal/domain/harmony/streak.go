package harmony

// stepStreak grows a strength counter while the crafter repeats one
// category. Switching sheds one point of strength and, the first time
// only, charges a switch penalty.
func stepStreak(st State, in StepInput) (State, Effects) {
	next := st
	if next.LastCategory == "" {
		next.LastCategory = in.Category
		next.Strength = 1
		return next, Effects{}
	}
	if in.Category == next.LastCategory {
		if next.Strength < StreakMaxStrength {
			next.Strength++
		}
		return next, Effects{}
	}

	next.LastCategory = in.Category
	if next.Strength > 0 {
		next.Strength--
	}
	if next.SwitchPenalized {
		return next, Effects{}
	}
	next.SwitchPenalized = true
	return next, Effects{
		Completion: -StreakSwitchCompletionLoss,
		Stability:  -StreakSwitchStabilityLoss,
		Events:     []string{"streak_broken"},
	}
}

func streakMods(st State) Mods {
	if st.Strength <= 0 {
		return Mods{}
	}
	return Mods{
		CritChancePct: float64(st.Strength * StreakCritPctPerPoint),
		SuccessPct:    float64(st.Strength * StreakSuccessPctPerPoint),
	}
}

package harmony

// stepCombo maintains a rolling window of the last three action
// categories. Completing a recognized triple pays a flat progress
// bonus, clears the window and arms a one-turn intensity surge.
func stepCombo(st State, in StepInput) (State, Effects) {
	next := st
	if next.SurgeTurns > 0 {
		next.SurgeTurns--
	}

	window := make([]string, 0, ComboWindowLen)
	window = append(window, st.Window...)
	window = append(window, in.Category)
	if len(window) > ComboWindowLen {
		window = window[len(window)-ComboWindowLen:]
	}

	var fx Effects
	if len(window) == ComboWindowLen && matchTriple(window) {
		fx.Completion += ComboCompletionBonus
		fx.Perfection += ComboPerfectionBonus
		fx.Events = append(fx.Events, "combo_completed")
		next.SurgeTurns = 1
		window = window[:0]
	}
	next.Window = window
	return next, fx
}

func comboMods(st State) Mods {
	if st.SurgeTurns > 0 {
		return Mods{IntensityPct: ComboSurgeIntensityPct}
	}
	return Mods{}
}

func matchTriple(window []string) bool {
	for _, triple := range comboTriples {
		if window[0] == triple[0] && window[1] == triple[1] && window[2] == triple[2] {
			return true
		}
	}
	return false
}

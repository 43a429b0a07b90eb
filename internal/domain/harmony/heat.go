package harmony

// stepHeat moves the furnace gauge by the action's heat delta. The
// gauge clamps to [0, HeatMax]. Sitting in the mid band pays a small
// flat perfection bonus each turn; pinning the gauge at the maximum
// fires a severe penalty exactly once per craft.
func stepHeat(st State, in StepInput) (State, Effects) {
	next := st
	next.Heat += in.HeatDelta
	if next.Heat < 0 {
		next.Heat = 0
	}
	if next.Heat > HeatMax {
		next.Heat = HeatMax
	}

	var fx Effects
	if next.Heat >= HeatBandLow && next.Heat <= HeatBandHigh {
		fx.Perfection += HeatBandPerfectionBonus
	}
	if next.Heat == HeatMax && !next.Overheated {
		next.Overheated = true
		fx.Completion -= HeatMaxCompletionLoss
		fx.Perfection -= HeatMaxPerfectionLoss
		fx.Events = append(fx.Events, "overheated")
	}
	return next, fx
}

func heatMods(st State) Mods {
	switch {
	case st.Heat == HeatMax:
		return Mods{IntensityPct: HeatMaxIntensityPct}
	case st.Heat >= HeatBandLow && st.Heat <= HeatBandHigh:
		return Mods{IntensityPct: HeatBandIntensityPct}
	case st.Heat > HeatBandHigh:
		return Mods{IntensityPct: HeatHighIntensityPct}
	default:
		return Mods{}
	}
}

package planner

import (
	"pillforge/internal/domain/craft"
	"pillforge/internal/domain/harmony"
)

const (
	lowStabilityShare = 0.35
	lowPoolShare      = 0.30
)

// reasonsFor derives short machine-readable tags explaining the pick.
// Tags are appended in a fixed order so identical searches narrate
// identically.
func reasonsFor(rc *craft.Recipe, st *craft.State, a *craft.Action, out craft.Outcome, best *node, exhausted bool) []string {
	var tags []string

	if out.Next.Finished(rc) {
		tags = append(tags, "finisher")
	} else if best.state.Finished(rc) {
		tags = append(tags, "secures_target")
	}

	if out.Stability > 0 && st.StabilityCap() > 0 && st.Stability < lowStabilityShare*st.StabilityCap() {
		tags = append(tags, "stabilizes")
	}
	if out.Pool > 0 && st.PoolCap > 0 && st.Pool < lowPoolShare*st.PoolCap {
		tags = append(tags, "restores_pool")
	}

	if out.Completion > 0 && out.Completion >= out.Perfection {
		tags = append(tags, "advances_completion")
	} else if out.Perfection > 0 {
		tags = append(tags, "quality_push")
	}

	switch st.Harmony.Kind {
	case harmony.KindHeat:
		if a.HeatDelta < 0 && st.Harmony.Heat > harmony.HeatBandHigh {
			tags = append(tags, "vents_heat")
		} else if a.HeatDelta > 0 && st.Harmony.Heat < harmony.HeatBandLow {
			tags = append(tags, "builds_heat")
		}
	case harmony.KindStreak:
		if st.Harmony.LastCategory == string(a.Category) {
			tags = append(tags, "keeps_streak")
		}
	case harmony.KindPattern:
		if len(st.Harmony.Cycle) > 0 && st.Harmony.Cycle[st.Harmony.CyclePos] == string(a.Category) {
			tags = append(tags, "extends_pattern")
		}
	case harmony.KindCombo:
		for _, ev := range out.Events {
			if ev == "combo_completed" {
				tags = append(tags, "combo_payoff")
				break
			}
		}
	}

	if exhausted {
		tags = append(tags, "partial_search")
	}
	return tags
}

package craft

import "pillforge/internal/domain/harmony"

// Normalize fills derivable defaults so a sparse snapshot becomes a
// simulatable one: caps grow to cover current values, the neutral
// crit multiplier is 100 and the harmony sub-state is seeded from the
// recipe when the host dump did not carry one.
func (sn *Snapshot) Normalize() {
	st := &sn.State
	rc := &sn.Recipe

	if st.PoolCap < st.Pool {
		st.PoolCap = st.Pool
	}
	if st.StabilityCapBase <= 0 {
		st.StabilityCapBase = st.Stability + st.StabilityPenalty
	}
	if c := st.StabilityCap(); st.Stability > c {
		st.Stability = c
	}
	if st.CritMult <= 0 {
		st.CritMult = NeutralCritMult
	}
	clampNonNegative(&st.Pool, &st.Stability, &st.Completion, &st.Perfection, &st.Toxicity)

	if st.Harmony.Kind == "" && rc.Harmony != "" {
		st.Harmony = harmony.State{Kind: rc.Harmony}
	}
	if st.Harmony.Kind == harmony.KindPattern && len(st.Harmony.Cycle) == 0 {
		cycle := make([]string, 0, len(rc.HarmonyCycle))
		for _, c := range rc.HarmonyCycle {
			cycle = append(cycle, string(c))
		}
		st.Harmony.Cycle = cycle
	}

	rc.Condition = rc.Condition.Normalized()
}

// Validate rejects snapshots the engine cannot plan over. It returns
// an error unwrapping to ErrInvalidSnapshot.
func (sn *Snapshot) Validate() error {
	rc := &sn.Recipe
	if rc.CompletionTarget <= 0 {
		return invalid("recipe.completion_target", "must be positive")
	}
	if rc.Control <= 0 {
		return invalid("recipe.control", "must be positive")
	}
	if rc.Intensity <= 0 {
		return invalid("recipe.intensity", "must be positive")
	}
	if len(rc.Actions) == 0 {
		return invalid("recipe.actions", "at least one action required")
	}
	seen := make(map[string]struct{}, len(rc.Actions))
	for i := range rc.Actions {
		a := &rc.Actions[i]
		if a.ID == "" {
			return invalid("recipe.actions", "action id required")
		}
		if _, dup := seen[a.ID]; dup {
			return invalid("recipe.actions", "duplicate action id "+a.ID)
		}
		seen[a.ID] = struct{}{}
		switch a.Category {
		case CategoryFusion, CategoryRefine, CategoryStabilize, CategorySupport:
		default:
			return invalid("recipe.actions", "unknown category for action "+a.ID)
		}
	}
	if sn.State.StabilityCapBase <= 0 {
		return invalid("state.stability_cap_base", "must be positive")
	}
	if sn.State.Harmony.Kind == harmony.KindPattern && len(sn.State.Harmony.Cycle) == 0 {
		return invalid("state.harmony", "pattern variant requires a cycle")
	}
	return nil
}

func clampNonNegative(vals ...*float64) {
	for _, v := range vals {
		if *v < 0 {
			*v = 0
		}
	}
}

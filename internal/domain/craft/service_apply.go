package craft

import "pillforge/internal/domain/harmony"

// Service settles crafting actions over value-typed state. The zero
// value is not usable; construct with NewService so the expression
// cache is shared across settlements.
type Service struct {
	eval *Evaluator
}

func NewService() Service {
	return Service{eval: NewEvaluator()}
}

// derived carries the effective numbers for one settlement: the stat
// environment plus the aggregated crit, success and cost modifiers.
type derived struct {
	env          Env
	critChance   float64
	critMult     float64
	successBonus float64
	poolCostPct  float64
	stabCostPct  float64
}

type trace struct {
	chance float64
	events []string
}

// Apply settles one action and returns the successor state. The input
// state is never mutated. Inadmissible actions return an error
// unwrapping to ErrInadmissible.
func (s Service) Apply(rc *Recipe, st State, a *Action) (State, error) {
	next, _, err := s.settle(rc, st, a)
	return next, err
}

// Preview settles one action without committing and reports the
// per-track deltas alongside the successor state.
func (s Service) Preview(rc *Recipe, st State, a *Action) (Outcome, error) {
	next, tr, err := s.settle(rc, st, a)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Next:          next,
		Completion:    next.Completion - st.Completion,
		Perfection:    next.Perfection - st.Perfection,
		Stability:     next.Stability - st.Stability,
		Pool:          next.Pool - st.Pool,
		Toxicity:      next.Toxicity - st.Toxicity,
		SuccessChance: tr.chance,
		Events:        tr.events,
	}, nil
}

func (s Service) settle(rc *Recipe, st State, a *Action) (State, trace, error) {
	if st.OnCooldown(a.ID) {
		return State{}, trace{}, inadmissible(a.ID, ReasonCooldown)
	}
	if a.UsesItem != "" && st.Items[a.UsesItem] <= 0 {
		return State{}, trace{}, inadmissible(a.ID, ReasonNoItem)
	}

	d := s.derive(rc, &st)

	poolCost := resolveCost(a.PoolCost, rc.Condition.PoolCostMult(), d.poolCostPct, rc.PoolCostCut)
	stabCost := resolveCost(a.StabilityCost, rc.Condition.StabilityCostMult(), d.stabCostPct, rc.StabilityCostCut)
	if poolCost > st.Pool {
		return State{}, trace{}, inadmissible(a.ID, ReasonPool)
	}
	if stabCost > st.Stability {
		return State{}, trace{}, inadmissible(a.ID, ReasonStability)
	}
	if a.Toxicity > 0 && st.ToxicityCap > 0 && st.Toxicity+a.Toxicity > st.ToxicityCap {
		return State{}, trace{}, inadmissible(a.ID, ReasonToxicity)
	}

	tr := trace{chance: effectiveChance(a, d)}
	p := tr.chance / 100

	next := st.Clone()

	next.Pool -= poolCost
	next.Stability -= stabCost
	next.Toxicity += a.Toxicity
	if a.UsesItem != "" {
		next.ConsumeItem(a.UsesItem)
	}

	// Primary gains settle as expected values under the success roll.
	next.Completion += s.gain(a.Completion, d, p, a.CanCrit)
	next.Perfection += s.gain(a.Perfection, d, p, a.CanCrit)
	if g := s.gain(a.StabilityGain, d, p, a.CanCrit); g != 0 {
		next.Stability = clampRange(next.Stability+g, 0, next.StabilityCap())
	}
	if g := s.gain(a.PoolGain, d, p, a.CanCrit); g != 0 {
		next.Pool = clampRange(next.Pool+g, 0, next.PoolCap)
	}

	hs, fx := harmony.Step(next.Harmony, harmony.StepInput{
		Category:  string(a.Category),
		HeatDelta: a.HeatDelta,
	})
	next.Harmony = hs
	applyHarmonyEffects(&next, fx)
	tr.events = append(tr.events, fx.Events...)

	// Buff blocks run against the post-action environment, category
	// matches first, then the general per-turn blocks. Names iterate
	// sorted so float accumulation stays deterministic.
	blockEnv := s.derive(rc, &next).env
	names := sortedKeys(next.Buffs)
	for _, name := range names {
		def, ok := rc.Buffs[name]
		if !ok || def.OnCategory == nil || def.Category != a.Category {
			continue
		}
		if next.Buffs[name] <= 0 {
			continue
		}
		s.runEffect(&next, def.OnCategory, name, def.MaxStacks, blockEnv)
	}
	for _, name := range names {
		def, ok := rc.Buffs[name]
		if !ok || def.PerTurn == nil {
			continue
		}
		if next.Buffs[name] <= 0 {
			continue
		}
		s.runEffect(&next, def.PerTurn, name, def.MaxStacks, blockEnv)
	}

	// End of turn: cooldowns tick, the cap decays, timed buffs burn a
	// stack. Grants and the fresh cooldown land after the tick so a
	// granted buff keeps its full duration for the following turns.
	for id, left := range next.Cooldowns {
		if left <= 1 {
			delete(next.Cooldowns, id)
			continue
		}
		next.Cooldowns[id] = left - 1
	}
	if !a.PreserveCap && rc.StabilityDecay > 0 {
		next.StabilityPenalty += rc.StabilityDecay
	}
	if c := next.StabilityCap(); next.Stability > c {
		next.Stability = c
	}
	for _, name := range names {
		def, ok := rc.Buffs[name]
		if !ok || !def.TickDown {
			continue
		}
		if next.Buffs[name] > 0 {
			next.AdjustBuff(name, -1, def.MaxStacks)
		}
	}
	if a.GrantBuff != "" {
		stacks := a.GrantStacks
		if stacks <= 0 {
			stacks = 1
		}
		maxStacks := 0
		if def, ok := rc.Buffs[a.GrantBuff]; ok {
			maxStacks = def.MaxStacks
		}
		next.AddBuff(a.GrantBuff, stacks, maxStacks)
	}
	if a.CooldownTurns > 0 {
		if next.Cooldowns == nil {
			next.Cooldowns = map[string]int{}
		}
		next.Cooldowns[a.ID] = a.CooldownTurns
	}

	if n := completionStacks(next.Completion); n > next.CompletionBonusStacks {
		next.CompletionBonusStacks = n
	}
	next.StepIndex++
	next.History = append(next.History, a.ID)
	return next, tr, nil
}

func (s Service) derive(rc *Recipe, st *State) derived {
	mods := harmony.Modifiers(st.Harmony)
	d := derived{
		critChance:   st.CritChance + mods.CritChancePct,
		critMult:     st.CritMult,
		successBonus: st.SuccessBonus + mods.SuccessPct + rc.Condition.SuccessDelta(),
		poolCostPct:  st.PoolCostFactor,
		stabCostPct:  st.StabilityCostFactor,
	}
	var ctrlPct, intenPct float64
	for _, name := range sortedKeys(st.Buffs) {
		def, ok := rc.Buffs[name]
		if !ok {
			continue
		}
		scale := float64(st.Buffs[name])
		if def.TickDown {
			scale = 1
		}
		ctrlPct += def.ControlPct * scale
		intenPct += def.IntensityPct * scale
		d.critChance += def.CritChancePct * scale
		d.critMult += def.CritMultPct * scale
		d.successBonus += def.SuccessPct * scale
		d.poolCostPct += def.PoolCostPct * scale
		d.stabCostPct += def.StabilityCostPct * scale
	}
	if d.critMult < NeutralCritMult {
		d.critMult = NeutralCritMult
	}

	control := rc.Control * (1 + ctrlPct/100) *
		(1 + float64(st.CompletionBonusStacks)*CompletionBonusControlPct/100) *
		(1 + mods.ControlPct/100) * rc.Condition.ControlMult()
	intensity := rc.Intensity * (1 + intenPct/100) *
		(1 + mods.IntensityPct/100) * rc.Condition.IntensityMult()

	d.env = Env{
		Total: map[string]float64{
			"control":       control,
			"intensity":     intensity,
			"pool":          st.Pool,
			"pool_cap":      st.PoolCap,
			"stability":     st.Stability,
			"stability_cap": st.StabilityCap(),
			"completion":    st.Completion,
			"perfection":    st.Perfection,
			"toxicity":      st.Toxicity,
			"step":          float64(st.StepIndex),
		},
		Pure: map[string]float64{
			"control":       rc.Control,
			"intensity":     rc.Intensity,
			"pool":          st.Pool,
			"pool_cap":      st.PoolCap,
			"stability":     st.Stability,
			"stability_cap": st.StabilityCap(),
			"completion":    st.Completion,
			"perfection":    st.Perfection,
			"toxicity":      st.Toxicity,
			"step":          float64(st.StepIndex),
		},
	}
	return d
}

func (s Service) gain(e *Expr, d derived, p float64, canCrit bool) float64 {
	if e == nil {
		return 0
	}
	g := s.eval.Eval(e, d.env)
	if canCrit {
		g = expectedCrit(g, d.critChance, d.critMult)
	}
	return g * p
}

func (s Service) runEffect(st *State, ef *Effect, owner string, maxStacks int, env Env) {
	benv := env.with("stacks", float64(st.Buffs[owner]))
	if ef.Completion != nil {
		st.Completion = maxFloat(st.Completion+s.eval.Eval(ef.Completion, benv), 0)
	}
	if ef.Perfection != nil {
		st.Perfection = maxFloat(st.Perfection+s.eval.Eval(ef.Perfection, benv), 0)
	}
	if ef.Stability != nil {
		st.Stability = clampRange(st.Stability+s.eval.Eval(ef.Stability, benv), 0, st.StabilityCap())
	}
	if ef.Pool != nil {
		st.Pool = clampRange(st.Pool+s.eval.Eval(ef.Pool, benv), 0, st.PoolCap)
	}
	if ef.Toxicity != nil {
		st.Toxicity = maxFloat(st.Toxicity+s.eval.Eval(ef.Toxicity, benv), 0)
	}
	if ef.SelfStacks != 0 {
		st.AdjustBuff(owner, ef.SelfStacks, maxStacks)
	}
}

func applyHarmonyEffects(st *State, fx harmony.Effects) {
	st.Completion = maxFloat(st.Completion+fx.Completion, 0)
	st.Perfection = maxFloat(st.Perfection+fx.Perfection, 0)
	st.StabilityPenalty += fx.CapPenalty
	st.Stability = clampRange(st.Stability+fx.Stability, 0, st.StabilityCap())
	st.Pool = clampRange(st.Pool+fx.Pool, 0, st.PoolCap)
}

func effectiveChance(a *Action, d derived) float64 {
	if a.SuccessChance <= 0 {
		return GuaranteedChance
	}
	return clampRange(a.SuccessChance+d.successBonus, 0, 100)
}

// expectedCrit folds the critical roll into an expected multiplier.
// Chance beyond 100 converts into extra multiplier points at the
// overflow ratio. Only positive gains scale.
func expectedCrit(g, chance, mult float64) float64 {
	if g <= 0 {
		return g
	}
	c, m := chance, mult
	if c > 100 {
		m += (c - 100) * CritOverflowRatio
		c = 100
	}
	if c < 0 {
		c = 0
	}
	if m < NeutralCritMult {
		m = NeutralCritMult
	}
	return g * (1 + c/100*(m/100-1))
}

// resolveCost applies the condition multiplier, the aggregated
// percentage factor and the flat mastery cut, in that order, clamping
// at zero.
func resolveCost(base, condMult, factorPct, cut float64) float64 {
	if base <= 0 {
		return 0
	}
	c := base*condMult*(1+factorPct/100) - cut
	if c < 0 {
		return 0
	}
	return c
}

// completionStacks counts crossed bonus thresholds. Thresholds grow
// geometrically from the base; the epsilon absorbs float drift so an
// exact threshold value counts as crossed.
func completionStacks(completion float64) int {
	const eps = 1e-9
	n := 0
	threshold := CompletionBonusBase
	for completion >= threshold-eps && n < CompletionBonusMaxStacks {
		n++
		threshold *= CompletionBonusGrowth
	}
	return n
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

package intake

import (
	"github.com/tidwall/gjson"

	"pillforge/internal/domain/craft"
	"pillforge/internal/domain/harmony"
)

// The scraper walks a raw host dump with gjson and tolerates every
// field being absent. Hosts restyle their key casing between patches,
// so each field is probed under its known spellings.

func pick(v gjson.Result, keys ...string) gjson.Result {
	for _, key := range keys {
		if got := v.Get(key); got.Exists() {
			return got
		}
	}
	return gjson.Result{}
}

func num(v gjson.Result, keys ...string) float64 {
	return pick(v, keys...).Float()
}

func whole(v gjson.Result, keys ...string) int {
	return int(pick(v, keys...).Int())
}

func boolean(v gjson.Result, keys ...string) bool {
	return pick(v, keys...).Bool()
}

func str(v gjson.Result, keys ...string) string {
	return pick(v, keys...).String()
}

// scrapeExpr accepts either a plain number or a structured scaling
// record.
func scrapeExpr(v gjson.Result) *craft.Expr {
	if !v.Exists() {
		return nil
	}
	if v.Type == gjson.Number {
		return &craft.Expr{Value: v.Float()}
	}
	if !v.IsObject() {
		return nil
	}
	e := &craft.Expr{
		Value:    num(v, "value", "base"),
		Stat:     str(v, "stat"),
		Scaling:  str(v, "scaling"),
		Equation: str(v, "equation", "formula"),
	}
	if add := pick(v, "add"); add.Exists() {
		e.Add = scrapeExpr(add)
	}
	if clamp := pick(v, "max", "cap"); clamp.Exists() {
		e.Max = scrapeExpr(clamp)
	}
	return e
}

func scrapeCondition(v gjson.Result) craft.Condition {
	if !v.Exists() {
		return craft.Condition{}
	}
	return craft.Condition{
		Family:  craft.ConditionFamily(str(v, "family", "type")),
		Percent: num(v, "percent", "value", "strength"),
	}
}

func scrapeAction(v gjson.Result) craft.Action {
	return craft.Action{
		ID:            str(v, "id", "action_id", "actionId", "name"),
		Name:          str(v, "name", "label"),
		Category:      craft.Category(str(v, "category", "type")),
		PoolCost:      num(v, "pool_cost", "poolCost", "cost"),
		StabilityCost: num(v, "stability_cost", "stabilityCost", "durability_cost"),
		Toxicity:      num(v, "toxicity"),
		SuccessChance: num(v, "success_chance", "successChance"),
		CanCrit:       boolean(v, "can_crit", "canCrit"),
		CooldownTurns: whole(v, "cooldown_turns", "cooldown"),
		HeatDelta:     whole(v, "heat_delta", "heatDelta", "heat"),
		PreserveCap:   boolean(v, "preserve_cap", "preserveCap", "no_decay"),
		UsesItem:      str(v, "uses_item", "usesItem", "item"),
		Completion:    scrapeExpr(pick(v, "completion", "completion_gain", "progress")),
		Perfection:    scrapeExpr(pick(v, "perfection", "perfection_gain", "quality")),
		StabilityGain: scrapeExpr(pick(v, "stability_gain", "stabilityGain", "restore")),
		PoolGain:      scrapeExpr(pick(v, "pool_gain", "poolGain", "regen")),
		GrantBuff:     str(v, "grant_buff", "grantBuff", "grants"),
		GrantStacks:   whole(v, "grant_stacks", "grantStacks"),
	}
}

func scrapeEffect(v gjson.Result) *craft.Effect {
	if !v.Exists() || !v.IsObject() {
		return nil
	}
	return &craft.Effect{
		Completion: scrapeExpr(pick(v, "completion", "progress")),
		Perfection: scrapeExpr(pick(v, "perfection", "quality")),
		Stability:  scrapeExpr(pick(v, "stability")),
		Pool:       scrapeExpr(pick(v, "pool")),
		Toxicity:   scrapeExpr(pick(v, "toxicity")),
		SelfStacks: whole(v, "self_stacks", "selfStacks"),
	}
}

func scrapeBuff(name string, v gjson.Result) craft.Buff {
	b := craft.Buff{
		Name:             name,
		MaxStacks:        whole(v, "max_stacks", "maxStacks"),
		TickDown:         boolean(v, "tick_down", "tickDown", "timed"),
		ControlPct:       num(v, "control_pct", "controlPct"),
		IntensityPct:     num(v, "intensity_pct", "intensityPct"),
		CritChancePct:    num(v, "crit_chance_pct", "critChancePct"),
		CritMultPct:      num(v, "crit_mult_pct", "critMultPct"),
		SuccessPct:       num(v, "success_pct", "successPct"),
		PoolCostPct:      num(v, "pool_cost_pct", "poolCostPct"),
		StabilityCostPct: num(v, "stability_cost_pct", "stabilityCostPct"),
		Category:         craft.Category(str(v, "category", "on")),
	}
	b.OnCategory = scrapeEffect(pick(v, "on_category", "onCategory", "category_block"))
	b.PerTurn = scrapeEffect(pick(v, "per_turn", "perTurn", "each_turn"))
	return b
}

func scrapeHarmonyState(v gjson.Result) harmony.State {
	if !v.Exists() {
		return harmony.State{}
	}
	return harmony.State{
		Kind:            harmony.Kind(str(v, "kind", "variant")),
		Heat:            whole(v, "heat", "level"),
		Overheated:      boolean(v, "overheated"),
		Window:          scrapeStrings(pick(v, "window", "recent")),
		SurgeTurns:      whole(v, "surge_turns", "surgeTurns"),
		Cycle:           scrapeStrings(pick(v, "cycle")),
		CyclePos:        whole(v, "cycle_pos", "cyclePos", "position"),
		Stacks:          whole(v, "stacks"),
		LastCategory:    str(v, "last_category", "lastCategory"),
		Strength:        whole(v, "strength"),
		SwitchPenalized: boolean(v, "switch_penalized", "switchPenalized"),
	}
}

func scrapeIntMap(v gjson.Result) map[string]int {
	if !v.Exists() || !v.IsObject() {
		return nil
	}
	out := map[string]int{}
	v.ForEach(func(key, val gjson.Result) bool {
		out[key.String()] = int(val.Int())
		return true
	})
	if len(out) == 0 {
		return nil
	}
	return out
}

func scrapeStrings(v gjson.Result) []string {
	if !v.Exists() || !v.IsArray() {
		return nil
	}
	var out []string
	v.ForEach(func(_, item gjson.Result) bool {
		out = append(out, item.String())
		return true
	})
	return out
}

// scrapeBuffInstances reads the live buff map. Values are either a
// bare stack count or an object carrying the count plus an inline
// definition, which the dump may ship in place of a catalog entry.
func scrapeBuffInstances(v gjson.Result) (map[string]int, map[string]craft.Buff) {
	if !v.Exists() || !v.IsObject() {
		return nil, nil
	}
	stacks := map[string]int{}
	defs := map[string]craft.Buff{}
	v.ForEach(func(key, val gjson.Result) bool {
		name := key.String()
		if val.IsObject() {
			n := whole(val, "stacks", "count")
			if n == 0 {
				n = 1
			}
			stacks[name] = n
			defs[name] = scrapeBuff(name, val)
			return true
		}
		stacks[name] = int(val.Int())
		return true
	})
	if len(stacks) == 0 {
		return nil, nil
	}
	if len(defs) == 0 {
		defs = nil
	}
	return stacks, defs
}

package intake

import (
	"bytes"
	"context"
	"errors"
	"sort"

	"github.com/tidwall/gjson"

	"pillforge/internal/app/ports"
	"pillforge/internal/domain/craft"
	"pillforge/internal/domain/harmony"
)

var (
	ErrInvalidRequest = errors.New("invalid intake request")
	ErrMalformedDump  = errors.New("malformed host dump")
)

// UseCase turns a raw host state-store dump into a normalized craft
// snapshot. Scraping is tolerant: absent fields become zero values,
// bare names are completed from the catalog, and identifiers are
// fuzzy-matched so a host-side rename does not break detection.
type UseCase struct {
	Catalog ports.CatalogProvider
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if len(bytes.TrimSpace(req.Dump)) == 0 {
		return Response{}, ErrInvalidRequest
	}
	if !gjson.ValidBytes(req.Dump) {
		return Response{}, ErrMalformedDump
	}
	root := gjson.ParseBytes(req.Dump)
	recipeNode := pick(root, "recipe", "craft.recipe", "minigame.recipe")
	stateNode := pick(root, "state", "craft.state", "minigame.state")
	if !recipeNode.Exists() && !stateNode.Exists() {
		return Response{}, ErrMalformedDump
	}

	var unmatched []string
	note := func(raw string) {
		for _, seen := range unmatched {
			if seen == raw {
				return
			}
		}
		unmatched = append(unmatched, raw)
	}

	catalogActions, catalogBuffs := u.vocabulary(ctx)
	categories := newMatcher([]string{
		string(craft.CategoryFusion),
		string(craft.CategoryRefine),
		string(craft.CategoryStabilize),
		string(craft.CategorySupport),
	})

	rc := u.buildRecipe(ctx, recipeNode, catalogActions, catalogBuffs, categories, note)

	localActions := matcherFor(actionIDs(rc.Actions))
	localBuffs := matcherFor(unionNames(rc.Buffs, catalogBuffNames(ctx, u.Catalog)))

	st, inlineDefs := buildState(stateNode, localActions, localBuffs, categories, note)

	// Inline definitions shipped with live buffs fill catalog gaps.
	for name, def := range inlineDefs {
		if _, ok := rc.Buffs[name]; ok {
			continue
		}
		if rc.Buffs == nil {
			rc.Buffs = map[string]craft.Buff{}
		}
		rc.Buffs[name] = def
	}
	u.fillBuffDefs(ctx, &rc, st, note)

	snap := craft.Snapshot{Recipe: rc, State: st}
	snap.Normalize()
	sort.Strings(unmatched)
	return Response{Snapshot: snap, Unmatched: unmatched}, nil
}

func (u UseCase) buildRecipe(ctx context.Context, v gjson.Result, catalogActions, catalogBuffs, categories *matcher, note func(string)) craft.Recipe {
	rc := craft.Recipe{
		Name:             str(v, "name", "recipe", "id"),
		CompletionTarget: num(v, "completion_target", "completionTarget", "target"),
		PerfectionTarget: num(v, "perfection_target", "perfectionTarget", "quality_target"),
		Control:          num(v, "control", "base_control", "baseControl"),
		Intensity:        num(v, "intensity", "base_intensity", "baseIntensity"),
		StabilityDecay:   num(v, "stability_decay", "stabilityDecay", "cap_decay"),
		PoolCostCut:      num(v, "pool_cost_cut", "poolCostCut"),
		StabilityCostCut: num(v, "stability_cost_cut", "stabilityCostCut"),
		Condition:        scrapeCondition(pick(v, "condition")),
		Harmony:          harmony.Kind(str(v, "harmony", "harmony_kind", "harmonyKind", "variant")),
	}
	for _, raw := range scrapeStrings(pick(v, "harmony_cycle", "harmonyCycle", "cycle")) {
		rc.HarmonyCycle = append(rc.HarmonyCycle, craft.Category(resolveCategory(raw, categories, note)))
	}

	pick(v, "actions", "moves", "techniques").ForEach(func(_, item gjson.Result) bool {
		if item.Type == gjson.String {
			rc.Actions = append(rc.Actions, u.catalogAction(ctx, item.String(), catalogActions, note))
			return true
		}
		a := scrapeAction(item)
		a.Category = craft.Category(resolveCategory(string(a.Category), categories, note))
		if a.GrantBuff != "" {
			if hit, _ := catalogBuffs.resolve(a.GrantBuff); hit != "" {
				a.GrantBuff = hit
			}
		}
		if bare(a) {
			a = u.catalogAction(ctx, a.ID, catalogActions, note)
		}
		rc.Actions = append(rc.Actions, a)
		return true
	})

	if defs := pick(v, "buffs"); defs.IsObject() {
		rc.Buffs = map[string]craft.Buff{}
		defs.ForEach(func(key, val gjson.Result) bool {
			name := key.String()
			if hit, _ := catalogBuffs.resolve(name); hit != "" {
				name = hit
			}
			def := scrapeBuff(name, val)
			def.Category = craft.Category(resolveCategory(string(def.Category), categories, note))
			rc.Buffs[name] = def
			return true
		})
	}
	return rc
}

// catalogAction completes a bare action reference from the catalog.
// An unresolvable bare reference stays as scraped and is reported.
func (u UseCase) catalogAction(ctx context.Context, raw string, catalogActions *matcher, note func(string)) craft.Action {
	if raw == "" {
		return craft.Action{}
	}
	id := raw
	if hit, _ := catalogActions.resolve(raw); hit != "" {
		id = hit
	}
	if u.Catalog != nil {
		if def, err := u.Catalog.Action(ctx, id); err == nil {
			return def
		}
	}
	note(raw)
	return craft.Action{ID: id}
}

func buildState(v gjson.Result, localActions, localBuffs, categories *matcher, note func(string)) (craft.State, map[string]craft.Buff) {
	st := craft.State{
		Pool:                  num(v, "pool", "resource_pool", "resourcePool"),
		PoolCap:               num(v, "pool_cap", "poolCap", "resource_cap", "resourceCap"),
		Stability:             num(v, "stability"),
		StabilityCapBase:      num(v, "stability_cap_base", "stabilityCapBase", "initial_stability_cap", "initialStabilityCap"),
		StabilityPenalty:      num(v, "stability_penalty", "stabilityPenalty"),
		Completion:            num(v, "completion", "progress"),
		Perfection:            num(v, "perfection", "quality"),
		CritChance:            num(v, "crit_chance", "critical_chance", "criticalChance"),
		CritMult:              num(v, "crit_mult", "critical_multiplier", "criticalMultiplier"),
		SuccessBonus:          num(v, "success_bonus", "success_chance_bonus", "successChanceBonus"),
		PoolCostFactor:        num(v, "pool_cost_factor", "poolCostFactor"),
		StabilityCostFactor:   num(v, "stability_cost_factor", "stabilityCostFactor"),
		Toxicity:              num(v, "toxicity"),
		ToxicityCap:           num(v, "toxicity_cap", "toxicityCap"),
		Items:                 scrapeIntMap(pick(v, "items", "craft_items", "craftItems")),
		CompletionBonusStacks: whole(v, "completion_bonus_stacks", "completionBonusStacks"),
		StepIndex:             whole(v, "step_index", "stepIndex", "turn"),
		History:               scrapeStrings(pick(v, "history")),
	}

	if raw := scrapeIntMap(pick(v, "cooldowns")); len(raw) > 0 {
		st.Cooldowns = map[string]int{}
		for key, turns := range raw {
			id := key
			if hit, _ := localActions.resolve(key); hit != "" {
				id = hit
			} else {
				note(key)
			}
			st.Cooldowns[id] = turns
		}
	}

	stacks, defs := scrapeBuffInstances(pick(v, "buffs"))
	if len(stacks) > 0 {
		st.Buffs = map[string]int{}
		for key, n := range stacks {
			name := key
			if hit, _ := localBuffs.resolve(key); hit != "" {
				name = hit
			}
			st.Buffs[name] = n
			if def, ok := defs[key]; ok && name != key {
				def.Name = name
				delete(defs, key)
				defs[name] = def
			}
		}
	}

	st.Harmony = scrapeHarmonyState(pick(v, "harmony"))
	for i, raw := range st.Harmony.Window {
		st.Harmony.Window[i] = resolveCategory(raw, categories, note)
	}
	for i, raw := range st.Harmony.Cycle {
		st.Harmony.Cycle[i] = resolveCategory(raw, categories, note)
	}
	if st.Harmony.LastCategory != "" {
		st.Harmony.LastCategory = resolveCategory(st.Harmony.LastCategory, categories, note)
	}
	return st, defs
}

// fillBuffDefs pulls catalog definitions for live or granted buffs the
// recipe does not define. A buff without any definition still tracks
// stacks; it just modifies nothing.
func (u UseCase) fillBuffDefs(ctx context.Context, rc *craft.Recipe, st craft.State, note func(string)) {
	want := map[string]bool{}
	for name := range st.Buffs {
		want[name] = true
	}
	for i := range rc.Actions {
		if rc.Actions[i].GrantBuff != "" {
			want[rc.Actions[i].GrantBuff] = true
		}
	}
	for name := range want {
		if _, ok := rc.Buffs[name]; ok {
			continue
		}
		if u.Catalog != nil {
			if def, err := u.Catalog.Buff(ctx, name); err == nil {
				if rc.Buffs == nil {
					rc.Buffs = map[string]craft.Buff{}
				}
				rc.Buffs[name] = def
				continue
			}
		}
		note(name)
	}
}

func (u UseCase) vocabulary(ctx context.Context) (*matcher, *matcher) {
	if u.Catalog == nil {
		return nil, nil
	}
	var actions, buffs *matcher
	if ids, err := u.Catalog.ActionIDs(ctx); err == nil && len(ids) > 0 {
		actions = newMatcher(ids)
	}
	if names, err := u.Catalog.BuffNames(ctx); err == nil && len(names) > 0 {
		buffs = newMatcher(names)
	}
	return actions, buffs
}

func resolveCategory(raw string, categories *matcher, note func(string)) string {
	if raw == "" {
		return ""
	}
	if hit, _ := categories.resolve(raw); hit != "" {
		return hit
	}
	note(raw)
	return raw
}

func bare(a craft.Action) bool {
	return a.Category == "" && a.PoolCost == 0 && a.StabilityCost == 0 &&
		a.Completion == nil && a.Perfection == nil && a.StabilityGain == nil && a.PoolGain == nil
}

func actionIDs(actions []craft.Action) []string {
	out := make([]string, 0, len(actions))
	for i := range actions {
		if actions[i].ID != "" {
			out = append(out, actions[i].ID)
		}
	}
	return out
}

func unionNames(defs map[string]craft.Buff, catalog []string) []string {
	seen := map[string]bool{}
	var out []string
	for name := range defs {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, name := range catalog {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

func catalogBuffNames(ctx context.Context, c ports.CatalogProvider) []string {
	if c == nil {
		return nil
	}
	names, err := c.BuffNames(ctx)
	if err != nil {
		return nil
	}
	return names
}

func matcherFor(names []string) *matcher {
	if len(names) == 0 {
		return nil
	}
	return newMatcher(names)
}

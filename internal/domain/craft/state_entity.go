package craft

import "sort"

// StabilityCap is the effective ceiling after the accumulated per-turn
// penalty. It never goes below zero.
func (s *State) StabilityCap() float64 {
	c := s.StabilityCapBase - s.StabilityPenalty
	if c < 0 {
		return 0
	}
	return c
}

func (s *State) OnCooldown(actionID string) bool {
	return s.Cooldowns[actionID] > 0
}

func (s *State) BuffStacks(name string) int {
	return s.Buffs[name]
}

// AddBuff raises the stack count, clamped by maxStacks when positive.
func (s *State) AddBuff(name string, stacks, maxStacks int) {
	if name == "" || stacks <= 0 {
		return
	}
	if s.Buffs == nil {
		s.Buffs = map[string]int{}
	}
	total := s.Buffs[name] + stacks
	if maxStacks > 0 && total > maxStacks {
		total = maxStacks
	}
	s.Buffs[name] = total
}

// AdjustBuff applies a signed stack delta and removes the buff when it
// drops to zero or below.
func (s *State) AdjustBuff(name string, delta, maxStacks int) {
	if name == "" || delta == 0 || s.Buffs == nil {
		return
	}
	total := s.Buffs[name] + delta
	if maxStacks > 0 && total > maxStacks {
		total = maxStacks
	}
	if total <= 0 {
		delete(s.Buffs, name)
		return
	}
	s.Buffs[name] = total
}

func (s *State) ConsumeItem(name string) bool {
	if name == "" || s.Items == nil || s.Items[name] <= 0 {
		return false
	}
	s.Items[name]--
	if s.Items[name] == 0 {
		delete(s.Items, name)
	}
	return true
}

// Finished reports whether the craft reached its completion target.
func (s *State) Finished(rc *Recipe) bool {
	return rc.CompletionTarget > 0 && s.Completion >= rc.CompletionTarget
}

// Broken reports a failed craft: stability exhausted short of the
// target.
func (s *State) Broken(rc *Recipe) bool {
	return s.Stability <= 0 && !s.Finished(rc)
}

// Terminal reports whether no further actions are worth simulating.
func (s *State) Terminal(rc *Recipe) bool {
	return s.Finished(rc) || s.Stability <= 0
}

// Clone deep-copies the state so settlements never alias the caller's
// maps or slices.
func (s State) Clone() State {
	next := s
	next.Cooldowns = cloneIntMap(s.Cooldowns)
	next.Items = cloneIntMap(s.Items)
	next.Buffs = cloneIntMap(s.Buffs)
	if len(s.History) > 0 {
		next.History = append(make([]string, 0, len(s.History)+1), s.History...)
	}
	if len(s.Harmony.Window) > 0 {
		next.Harmony.Window = append([]string(nil), s.Harmony.Window...)
	}
	if len(s.Harmony.Cycle) > 0 {
		next.Harmony.Cycle = append([]string(nil), s.Harmony.Cycle...)
	}
	return next
}

func cloneIntMap(in map[string]int) map[string]int {
	if in == nil {
		return nil
	}
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func sortedKeys(in map[string]int) []string {
	if len(in) == 0 {
		return nil
	}
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ActionByID looks an action up in the recipe catalog.
func (rc *Recipe) ActionByID(id string) (*Action, bool) {
	for i := range rc.Actions {
		if rc.Actions[i].ID == id {
			return &rc.Actions[i], true
		}
	}
	return nil, false
}

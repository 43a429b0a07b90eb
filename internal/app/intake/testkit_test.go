package intake

import (
	"context"
	"sort"

	"pillforge/internal/app/ports"
	"pillforge/internal/domain/craft"
)

type stubCatalog struct {
	actions map[string]craft.Action
	buffs   map[string]craft.Buff
}

func (c *stubCatalog) Action(_ context.Context, id string) (craft.Action, error) {
	a, ok := c.actions[id]
	if !ok {
		return craft.Action{}, ports.ErrNotFound
	}
	return a, nil
}

func (c *stubCatalog) Buff(_ context.Context, name string) (craft.Buff, error) {
	b, ok := c.buffs[name]
	if !ok {
		return craft.Buff{}, ports.ErrNotFound
	}
	return b, nil
}

func (c *stubCatalog) ActionIDs(_ context.Context) ([]string, error) {
	return sortedNames(len(c.actions), func(add func(string)) {
		for id := range c.actions {
			add(id)
		}
	}), nil
}

func (c *stubCatalog) BuffNames(_ context.Context) ([]string, error) {
	return sortedNames(len(c.buffs), func(add func(string)) {
		for name := range c.buffs {
			add(name)
		}
	}), nil
}

func sortedNames(n int, fill func(add func(string))) []string {
	out := make([]string, 0, n)
	fill(func(s string) { out = append(out, s) })
	sort.Strings(out)
	return out
}

func fixtureCatalog() *stubCatalog {
	return &stubCatalog{
		actions: map[string]craft.Action{
			"infuse": {
				ID:            "infuse",
				Category:      craft.CategoryFusion,
				PoolCost:      10,
				StabilityCost: 4,
				HeatDelta:     1,
				Completion:    &craft.Expr{Value: 1, Stat: "intensity"},
			},
			"temper": {
				ID:            "temper",
				Category:      craft.CategoryRefine,
				PoolCost:      8,
				StabilityCost: 3,
				Perfection:    &craft.Expr{Value: 1, Stat: "control"},
			},
			"steady": {
				ID:            "steady",
				Category:      craft.CategoryStabilize,
				PoolCost:      5,
				StabilityGain: &craft.Expr{Value: 20},
			},
		},
		buffs: map[string]craft.Buff{
			"qi_infusion": {
				Name:         "qi_infusion",
				MaxStacks:    5,
				IntensityPct: 4,
			},
		},
	}
}

package sqlitecatalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"pillforge/internal/domain/craft"
)

// Bundle is the import file layout: an actions list plus buff
// definitions keyed by name.
type Bundle struct {
	Actions []craft.Action        `json:"actions"`
	Buffs   map[string]craft.Buff `json:"buffs,omitempty"`
}

// Seed upserts the given definitions. Existing rows with the same id
// are replaced, everything else is left alone.
func (s *Store) Seed(ctx context.Context, actions []craft.Action, buffs []craft.Buff) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, a := range actions {
		doc, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("encode action %s: %w", a.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO actions (id, category, doc) VALUES (?, ?, ?)",
			a.ID, string(a.Category), string(doc),
		); err != nil {
			return fmt.Errorf("insert action %s: %w", a.ID, err)
		}
	}

	for _, b := range buffs {
		doc, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("encode buff %s: %w", b.Name, err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO buffs (name, doc) VALUES (?, ?)",
			b.Name, string(doc),
		); err != nil {
			return fmt.Errorf("insert buff %s: %w", b.Name, err)
		}
	}

	return tx.Commit()
}

// ImportJSON seeds the store from a bundle document.
func (s *Store) ImportJSON(ctx context.Context, data []byte) error {
	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return fmt.Errorf("decode catalog bundle: %w", err)
	}
	buffs := make([]craft.Buff, 0, len(bundle.Buffs))
	for name, b := range bundle.Buffs {
		if b.Name == "" {
			b.Name = name
		}
		buffs = append(buffs, b)
	}
	return s.Seed(ctx, bundle.Actions, buffs)
}

// ImportFile seeds the store from a bundle file on disk.
func (s *Store) ImportFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog file: %w", err)
	}
	return s.ImportJSON(ctx, data)
}

// SeedDefaults installs the built-in catalog when the store is empty.
// A store that already holds any action is left untouched, so operator
// edits survive restarts.
func (s *Store) SeedDefaults(ctx context.Context) error {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM actions"); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return s.Seed(ctx, DefaultActions(), DefaultBuffs())
}

// DefaultActions is the built-in move set. It covers one cheap and one
// expensive builder per track plus recovery and setup moves, enough to
// run the engine end to end without an imported catalog.
func DefaultActions() []craft.Action {
	return []craft.Action{
		{
			ID:         "infuse",
			Name:       "Qi Infusion",
			Category:   craft.CategoryFusion,
			PoolCost:   18,
			Toxicity:   2,
			CanCrit:    true,
			HeatDelta:  1,
			Completion: &craft.Expr{Value: 24, Stat: "intensity", Scaling: craft.ScalingTotal},
		},
		{
			ID:            "condense",
			Name:          "Pill Condensation",
			Category:      craft.CategoryFusion,
			PoolCost:      34,
			StabilityCost: 10,
			Toxicity:      4,
			SuccessChance: 85,
			CanCrit:       true,
			CooldownTurns: 4,
			HeatDelta:     2,
			Completion:    &craft.Expr{Value: 46, Stat: "intensity", Scaling: craft.ScalingTotal},
		},
		{
			ID:            "temper",
			Name:          "Flame Tempering",
			Category:      craft.CategoryRefine,
			PoolCost:      22,
			StabilityCost: 6,
			CanCrit:       true,
			HeatDelta:     1,
			Perfection:    &craft.Expr{Value: 20, Stat: "control", Scaling: craft.ScalingTotal},
		},
		{
			ID:          "polish",
			Name:        "Spirit Polish",
			Category:    craft.CategoryRefine,
			PoolCost:    12,
			CanCrit:     true,
			Perfection:  &craft.Expr{Value: 10, Stat: "control", Scaling: craft.ScalingPure},
			GrantBuff:   "qi_infusion",
			GrantStacks: 1,
		},
		{
			ID:            "steady",
			Name:          "Steady Cauldron",
			Category:      craft.CategoryStabilize,
			PoolCost:      8,
			HeatDelta:     -1,
			StabilityGain: &craft.Expr{Value: 16},
		},
		{
			ID:            "breathe",
			Name:          "Breath Cycling",
			Category:      craft.CategorySupport,
			CooldownTurns: 3,
			HeatDelta:     -1,
			PoolGain:      &craft.Expr{Value: 30},
		},
		{
			ID:            "focus",
			Name:          "Inner Focus",
			Category:      craft.CategorySupport,
			PoolCost:      10,
			CooldownTurns: 2,
			GrantBuff:     "inner_focus",
			GrantStacks:   2,
		},
	}
}

// DefaultBuffs pairs with DefaultActions.
func DefaultBuffs() []craft.Buff {
	return []craft.Buff{
		{
			Name:         "qi_infusion",
			MaxStacks:    5,
			IntensityPct: 4,
		},
		{
			Name:       "inner_focus",
			MaxStacks:  4,
			ControlPct: 5,
		},
		{
			Name:             "heat_sink",
			MaxStacks:        3,
			TickDown:         true,
			StabilityCostPct: -20,
			Category:         craft.CategoryStabilize,
			OnCategory: &craft.Effect{
				Stability: &craft.Expr{Value: 4},
			},
		},
	}
}

package sqlitecatalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"pillforge/internal/app/ports"
	"pillforge/internal/domain/craft"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSeedDefaultsAndLookup(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.SeedDefaults(ctx); err != nil {
		t.Fatalf("seed defaults: %v", err)
	}

	a, err := s.Action(ctx, "infuse")
	if err != nil {
		t.Fatalf("action: %v", err)
	}
	if a.Category != craft.CategoryFusion {
		t.Fatalf("expected fusion category, got %s", a.Category)
	}
	if a.Completion == nil || a.Completion.Value != 24 {
		t.Fatalf("expected completion expr to survive, got %+v", a.Completion)
	}

	b, err := s.Buff(ctx, "inner_focus")
	if err != nil {
		t.Fatalf("buff: %v", err)
	}
	if b.ControlPct != 5 || b.MaxStacks != 4 {
		t.Fatalf("unexpected buff %+v", b)
	}

	if _, err := s.Action(ctx, "transmute"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected not found for unknown action, got %v", err)
	}
	if _, err := s.Buff(ctx, "ghost"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected not found for unknown buff, got %v", err)
	}
}

func TestActionIDsAndBuffNamesSorted(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.SeedDefaults(ctx); err != nil {
		t.Fatalf("seed defaults: %v", err)
	}

	ids, err := s.ActionIDs(ctx)
	if err != nil {
		t.Fatalf("action ids: %v", err)
	}
	if len(ids) != len(DefaultActions()) {
		t.Fatalf("expected %d ids, got %d", len(DefaultActions()), len(ids))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("ids not sorted: %v", ids)
		}
	}

	names, err := s.BuffNames(ctx)
	if err != nil {
		t.Fatalf("buff names: %v", err)
	}
	if len(names) != len(DefaultBuffs()) {
		t.Fatalf("expected %d names, got %d", len(DefaultBuffs()), len(names))
	}
}

func TestImportJSONUpsertsAndSticks(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.SeedDefaults(ctx); err != nil {
		t.Fatalf("seed defaults: %v", err)
	}

	bundle := []byte(`{
		"actions": [
			{"id": "infuse", "category": "fusion", "pool_cost": 25, "completion": {"value": 30, "stat": "intensity", "scaling": "total"}}
		],
		"buffs": {
			"cauldron_spirit": {"max_stacks": 2, "crit_chance_pct": 3}
		}
	}`)
	if err := s.ImportJSON(ctx, bundle); err != nil {
		t.Fatalf("import: %v", err)
	}

	a, err := s.Action(ctx, "infuse")
	if err != nil {
		t.Fatalf("action: %v", err)
	}
	if a.PoolCost != 25 || a.Completion.Value != 30 {
		t.Fatalf("expected imported override, got %+v", a)
	}

	b, err := s.Buff(ctx, "cauldron_spirit")
	if err != nil {
		t.Fatalf("buff: %v", err)
	}
	if b.Name != "cauldron_spirit" || b.CritChancePct != 3 {
		t.Fatalf("expected name filled from key, got %+v", b)
	}

	// A second default seed must not clobber operator edits.
	if err := s.SeedDefaults(ctx); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	a, err = s.Action(ctx, "infuse")
	if err != nil {
		t.Fatalf("action after reseed: %v", err)
	}
	if a.PoolCost != 25 {
		t.Fatalf("expected override to survive reseed, got %+v", a)
	}
}

func TestImportJSONRejectsGarbage(t *testing.T) {
	s := openTestStore(t)
	if err := s.ImportJSON(context.Background(), []byte("{not json")); err == nil {
		t.Fatalf("expected decode error")
	}
}

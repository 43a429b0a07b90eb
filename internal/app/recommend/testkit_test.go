package recommend

import (
	"context"
	"sort"

	"pillforge/internal/app/ports"
	"pillforge/internal/domain/craft"
	"pillforge/internal/domain/planner"
)

type stubProfileRepo struct {
	byName map[string]ports.EngineProfileRecord
}

func (r *stubProfileRepo) GetByName(_ context.Context, name string) (ports.EngineProfileRecord, error) {
	prof, ok := r.byName[name]
	if !ok {
		return ports.EngineProfileRecord{}, ports.ErrNotFound
	}
	return prof, nil
}

func (r *stubProfileRepo) SaveWithVersion(_ context.Context, profile ports.EngineProfileRecord, expectedVersion int64) error {
	current, ok := r.byName[profile.Name]
	if ok && current.Version != expectedVersion {
		return ports.ErrConflict
	}
	if !ok && expectedVersion != 0 {
		return ports.ErrConflict
	}
	r.byName[profile.Name] = profile
	return nil
}

func (r *stubProfileRepo) List(_ context.Context) ([]ports.EngineProfileRecord, error) {
	out := make([]ports.EngineProfileRecord, 0, len(r.byName))
	for _, prof := range r.byName {
		out = append(out, prof)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type stubLogRepo struct {
	records []ports.RecommendationRecord
}

func (r *stubLogRepo) Append(_ context.Context, record ports.RecommendationRecord) error {
	r.records = append(r.records, record)
	return nil
}

func (r *stubLogRepo) ListBySession(_ context.Context, sessionKey string, limit int) ([]ports.RecommendationRecord, error) {
	var out []ports.RecommendationRecord
	for _, record := range r.records {
		if record.SessionKey == sessionKey {
			out = append(out, record)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type errorLogRepo struct {
	err error
}

func (r *errorLogRepo) Append(_ context.Context, _ ports.RecommendationRecord) error {
	return r.err
}

func (r *errorLogRepo) ListBySession(_ context.Context, _ string, _ int) ([]ports.RecommendationRecord, error) {
	return nil, r.err
}

type stubMetrics struct {
	searches int
	rejected int
	failures int
	last     planner.SearchStats
}

func (m *stubMetrics) RecordSearch(stats planner.SearchStats) {
	m.searches++
	m.last = stats
}

func (m *stubMetrics) RecordRejected() { m.rejected++ }
func (m *stubMetrics) RecordFailure() { m.failures++ }

func fixtureSnapshot() craft.Snapshot {
	return craft.Snapshot{
		Recipe: craft.Recipe{
			Name:             "clarity-pill",
			CompletionTarget: 100,
			PerfectionTarget: 60,
			Control:          10,
			Intensity:        10,
			Actions: []craft.Action{
				{ID: "infuse", Category: craft.CategoryFusion, PoolCost: 10, StabilityCost: 4, Completion: &craft.Expr{Value: 1, Stat: "intensity"}},
				{ID: "temper", Category: craft.CategoryRefine, PoolCost: 8, StabilityCost: 3, Perfection: &craft.Expr{Value: 1, Stat: "control"}},
				{ID: "steady", Category: craft.CategoryStabilize, PoolCost: 5, StabilityGain: &craft.Expr{Value: 20}},
				{ID: "breathe", Category: craft.CategorySupport, PoolGain: &craft.Expr{Value: 15}},
			},
		},
		State: craft.State{
			Pool:             120,
			PoolCap:          120,
			Stability:        60,
			StabilityCapBase: 60,
		},
	}
}

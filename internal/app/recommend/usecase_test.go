package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"pillforge/internal/app/ports"
	"pillforge/internal/domain/craft"
	"pillforge/internal/domain/planner"
)

func newUseCase(log ports.RecommendationLogRepository, profiles ports.ProfileRepository, metrics ports.SearchMetrics) UseCase {
	return UseCase{
		Planner:  planner.New(craft.NewService()),
		Profiles: profiles,
		Log:      log,
		Metrics:  metrics,
		Now:      func() time.Time { return time.Unix(1700000000, 0) },
		NewID:    func() string { return "rec-1" },
	}
}

func TestExecuteRecommendsAndLogs(t *testing.T) {
	log := &stubLogRepo{}
	metrics := &stubMetrics{}
	u := newUseCase(log, nil, metrics)

	resp, err := u.Execute(context.Background(), Request{
		SessionKey: "session-7",
		Snapshot:   fixtureSnapshot(),
		Config:     planner.Config{Depth: 3},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if resp.Best.ActionID == "" {
		t.Fatalf("expected a recommendation")
	}
	if resp.RecordID != "rec-1" {
		t.Fatalf("expected record id rec-1, got %q", resp.RecordID)
	}
	if len(log.records) != 1 {
		t.Fatalf("expected one history row, got %d", len(log.records))
	}
	record := log.records[0]
	if record.SessionKey != "session-7" || record.RecipeName != "clarity-pill" {
		t.Fatalf("unexpected record %+v", record)
	}
	if record.ActionID != resp.Best.ActionID {
		t.Fatalf("expected record to mirror the pick")
	}
	if metrics.searches != 1 || metrics.last.Nodes == 0 {
		t.Fatalf("expected one recorded search with node count, got %+v", metrics)
	}
}

func TestExecuteRequiresSessionKey(t *testing.T) {
	u := newUseCase(&stubLogRepo{}, nil, nil)

	_, err := u.Execute(context.Background(), Request{SessionKey: "   ", Snapshot: fixtureSnapshot()})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestExecuteRejectsInvalidSnapshot(t *testing.T) {
	metrics := &stubMetrics{}
	u := newUseCase(&stubLogRepo{}, nil, metrics)

	snap := fixtureSnapshot()
	snap.Recipe.Actions = nil

	_, err := u.Execute(context.Background(), Request{SessionKey: "session-7", Snapshot: snap})
	if !errors.Is(err, craft.ErrInvalidSnapshot) {
		t.Fatalf("expected snapshot rejection, got %v", err)
	}
	if metrics.rejected != 1 {
		t.Fatalf("expected one rejection recorded, got %d", metrics.rejected)
	}
}

func TestExecuteOverlaysProfileConfig(t *testing.T) {
	profiles := &stubProfileRepo{byName: map[string]ports.EngineProfileRecord{
		"steady": {Name: "steady", Config: planner.Config{Depth: 2, Training: true}, Version: 1},
	}}
	u := newUseCase(&stubLogRepo{}, profiles, nil)

	resp, err := u.Execute(context.Background(), Request{
		SessionKey: "session-7",
		Profile:    "steady",
		Snapshot:   fixtureSnapshot(),
		Config:     planner.Config{BeamWidth: 4},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if resp.Stats.DepthReached != 2 {
		t.Fatalf("expected the profile depth to cap the search, got %d", resp.Stats.DepthReached)
	}
}

func TestExecuteUnknownProfile(t *testing.T) {
	metrics := &stubMetrics{}
	u := newUseCase(&stubLogRepo{}, &stubProfileRepo{byName: map[string]ports.EngineProfileRecord{}}, metrics)

	_, err := u.Execute(context.Background(), Request{SessionKey: "session-7", Profile: "ghost", Snapshot: fixtureSnapshot()})
	if !errors.Is(err, ErrUnknownProfile) {
		t.Fatalf("expected unknown profile, got %v", err)
	}
	if metrics.rejected != 1 {
		t.Fatalf("expected one rejection recorded, got %d", metrics.rejected)
	}
}

func TestExecutePropagatesLogFailure(t *testing.T) {
	boom := errors.New("log down")
	metrics := &stubMetrics{}
	u := newUseCase(&errorLogRepo{err: boom}, nil, metrics)

	_, err := u.Execute(context.Background(), Request{SessionKey: "session-7", Snapshot: fixtureSnapshot()})
	if !errors.Is(err, boom) {
		t.Fatalf("expected log failure, got %v", err)
	}
	if metrics.failures != 1 {
		t.Fatalf("expected one failure recorded, got %d", metrics.failures)
	}
}

func TestExecuteWithoutLogSkipsHistory(t *testing.T) {
	u := newUseCase(nil, nil, nil)

	resp, err := u.Execute(context.Background(), Request{SessionKey: "session-7", Snapshot: fixtureSnapshot()})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if resp.RecordID != "" {
		t.Fatalf("expected no record id without a log, got %q", resp.RecordID)
	}
}

func TestExecuteNoAdmissibleAction(t *testing.T) {
	metrics := &stubMetrics{}
	u := newUseCase(&stubLogRepo{}, nil, metrics)

	snap := fixtureSnapshot()
	snap.State.Cooldowns = map[string]int{"infuse": 3, "temper": 3, "steady": 3, "breathe": 3}

	_, err := u.Execute(context.Background(), Request{SessionKey: "session-7", Snapshot: snap})
	if !errors.Is(err, planner.ErrNoAdmissibleAction) {
		t.Fatalf("expected no admissible action, got %v", err)
	}
	if metrics.failures != 1 {
		t.Fatalf("expected one failure recorded, got %d", metrics.failures)
	}
}

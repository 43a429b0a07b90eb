package profiles

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"pillforge/internal/app/ports"
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

type stubTxManager struct {
	calls int
}

func (t *stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

func newUseCase(repo ports.ProfileRepository) UseCase {
	return UseCase{Repo: repo, Now: func() time.Time { return time.Unix(1700000000, 0) }}
}

func TestPutCreatesAndGetsProfile(t *testing.T) {
	repo := &stubProfileRepo{byName: map[string]ports.EngineProfileRecord{}}
	u := newUseCase(repo)

	put, err := u.Put(context.Background(), PutRequest{Name: "steady", Config: planner.Config{Depth: 4, Training: true}})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if put.Profile.Version != 1 {
		t.Fatalf("expected first version, got %d", put.Profile.Version)
	}
	if put.Profile.Config.Depth != 4 || !put.Profile.Config.Training {
		t.Fatalf("unexpected stored config %+v", put.Profile.Config)
	}

	got, err := u.Get(context.Background(), GetRequest{Name: "steady"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Profile.Config != put.Profile.Config {
		t.Fatalf("expected stored config back, got %+v", got.Profile.Config)
	}
}

func TestPutClampsConfig(t *testing.T) {
	repo := &stubProfileRepo{byName: map[string]ports.EngineProfileRecord{}}
	u := newUseCase(repo)

	put, err := u.Put(context.Background(), PutRequest{Name: "wild", Config: planner.Config{Depth: 99, BeamWidth: -5}})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if put.Profile.Config.Depth != 12 {
		t.Fatalf("expected depth clamped to ceiling, got %d", put.Profile.Config.Depth)
	}
	if put.Profile.Config.BeamWidth != 1 {
		t.Fatalf("expected beam width clamped to floor, got %d", put.Profile.Config.BeamWidth)
	}
	if put.Profile.Config.TimeBudgetMs != planner.DefaultTimeBudgetMs {
		t.Fatalf("expected zero budget to take default, got %d", put.Profile.Config.TimeBudgetMs)
	}
}

func TestPutBumpsVersion(t *testing.T) {
	repo := &stubProfileRepo{byName: map[string]ports.EngineProfileRecord{}}
	u := newUseCase(repo)

	if _, err := u.Put(context.Background(), PutRequest{Name: "steady", Config: planner.Config{Depth: 4}}); err != nil {
		t.Fatalf("first put: %v", err)
	}
	second, err := u.Put(context.Background(), PutRequest{Name: "steady", Config: planner.Config{Depth: 6}})
	if err != nil {
		t.Fatalf("second put: %v", err)
	}
	if second.Profile.Version != 2 {
		t.Fatalf("expected version bump, got %d", second.Profile.Version)
	}
	if second.Profile.Config.Depth != 6 {
		t.Fatalf("expected config replaced, got %+v", second.Profile.Config)
	}
}

func TestPutRunsInTransaction(t *testing.T) {
	repo := &stubProfileRepo{byName: map[string]ports.EngineProfileRecord{}}
	tx := &stubTxManager{}
	u := UseCase{Tx: tx, Repo: repo, Now: func() time.Time { return time.Unix(1700000000, 0) }}

	if _, err := u.Put(context.Background(), PutRequest{Name: "steady", Config: planner.Config{Depth: 4}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if tx.calls != 1 {
		t.Fatalf("expected one transaction, got %d", tx.calls)
	}
}

func TestGetUnknownProfile(t *testing.T) {
	u := newUseCase(&stubProfileRepo{byName: map[string]ports.EngineProfileRecord{}})

	_, err := u.Get(context.Background(), GetRequest{Name: "ghost"})
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBlankNameRejected(t *testing.T) {
	u := newUseCase(&stubProfileRepo{byName: map[string]ports.EngineProfileRecord{}})

	if _, err := u.Get(context.Background(), GetRequest{Name: "  "}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected invalid get, got %v", err)
	}
	if _, err := u.Put(context.Background(), PutRequest{Name: ""}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected invalid put, got %v", err)
	}
}

func TestListReturnsAllProfiles(t *testing.T) {
	repo := &stubProfileRepo{byName: map[string]ports.EngineProfileRecord{}}
	u := newUseCase(repo)

	for _, name := range []string{"b-profile", "a-profile"} {
		if _, err := u.Put(context.Background(), PutRequest{Name: name, Config: planner.Config{Depth: 3}}); err != nil {
			t.Fatalf("put %s: %v", name, err)
		}
	}
	list, err := u.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Profiles) != 2 || list.Profiles[0].Name != "a-profile" {
		t.Fatalf("unexpected listing %+v", list.Profiles)
	}
}

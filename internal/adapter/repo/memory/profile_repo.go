package memory

import (
	"context"
	"sort"

	"pillforge/internal/app/ports"
)

type ProfileRepo struct {
	store *Store
}

func NewProfileRepo(store *Store) ProfileRepo {
	return ProfileRepo{store: store}
}

func (r ProfileRepo) GetByName(_ context.Context, name string) (ports.EngineProfileRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	prof, ok := r.store.profiles[name]
	if !ok {
		return ports.EngineProfileRecord{}, ports.ErrNotFound
	}
	return prof, nil
}

func (r ProfileRepo) SaveWithVersion(_ context.Context, profile ports.EngineProfileRecord, expectedVersion int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.profiles[profile.Name]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.profiles[profile.Name] = profile
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.profiles[profile.Name] = profile
	return nil
}

func (r ProfileRepo) List(_ context.Context) ([]ports.EngineProfileRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]ports.EngineProfileRecord, 0, len(r.store.profiles))
	for _, prof := range r.store.profiles {
		out = append(out, prof)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

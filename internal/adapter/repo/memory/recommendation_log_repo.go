package memory

import (
	"context"

	"pillforge/internal/app/ports"
)

type RecommendationLogRepo struct {
	store *Store
}

func NewRecommendationLogRepo(store *Store) RecommendationLogRepo {
	return RecommendationLogRepo{store: store}
}

func (r RecommendationLogRepo) Append(_ context.Context, record ports.RecommendationRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.log[record.SessionKey] = append(r.store.log[record.SessionKey], record)
	return nil
}

func (r RecommendationLogRepo) ListBySession(_ context.Context, sessionKey string, limit int) ([]ports.RecommendationRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	records := r.store.log[sessionKey]
	if len(records) == 0 {
		return nil, nil
	}
	if limit <= 0 || limit > len(records) {
		limit = len(records)
	}
	out := make([]ports.RecommendationRecord, 0, limit)
	for i := len(records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, records[i])
	}
	return out, nil
}

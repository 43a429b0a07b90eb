package memory

import (
	"sync"

	"pillforge/internal/app/ports"
)

// Store backs the in-process repositories used by the bench CLI, the
// lambda surface and tests. Repositories lock per operation; the tx
// manager serializes whole read-modify-write sections on a separate
// mutex so transactions compose with plain calls without deadlocking.
type Store struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	profiles map[string]ports.EngineProfileRecord
	log      map[string][]ports.RecommendationRecord
}

func NewStore() *Store {
	return &Store{
		profiles: make(map[string]ports.EngineProfileRecord),
		log:      make(map[string][]ports.RecommendationRecord),
	}
}

// SeedProfile installs a preset without version checking.
func (s *Store) SeedProfile(profile ports.EngineProfileRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.Name] = profile
}

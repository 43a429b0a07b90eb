package ports

import (
	"context"
	"time"

	"pillforge/internal/domain/planner"
)

// EngineProfileRecord is a named, persisted search-config preset.
type EngineProfileRecord struct {
	Name      string
	Config    planner.Config
	Version   int64
	UpdatedAt time.Time
}

type ProfileRepository interface {
	GetByName(ctx context.Context, name string) (EngineProfileRecord, error)
	SaveWithVersion(ctx context.Context, profile EngineProfileRecord, expectedVersion int64) error
	List(ctx context.Context) ([]EngineProfileRecord, error)
}

// RecommendationRecord is one appended history row: what the engine
// advised for one step of one craft session.
type RecommendationRecord struct {
	ID         string
	SessionKey string
	RecipeName string
	StepIndex  int
	ActionID   string
	Score      float64
	Reasons    []string
	Rotation   []string
	Stats      planner.SearchStats
	CreatedAt  time.Time
}

type RecommendationLogRepository interface {
	Append(ctx context.Context, record RecommendationRecord) error
	// ListBySession returns the session's records newest first.
	ListBySession(ctx context.Context, sessionKey string, limit int) ([]RecommendationRecord, error)
}

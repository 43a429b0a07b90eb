package history

import (
	"time"

	"pillforge/internal/app/ports"
	"pillforge/internal/domain/planner"
)

type Request struct {
	SessionKey string
	Limit      int
}

// RecordView is the wire shape of one logged recommendation.
type RecordView struct {
	ID         string              `json:"id"`
	SessionKey string              `json:"session_key"`
	RecipeName string              `json:"recipe_name,omitempty"`
	StepIndex  int                 `json:"step_index"`
	ActionID   string              `json:"action_id"`
	Score      float64             `json:"score"`
	Reasons    []string            `json:"reasons,omitempty"`
	Rotation   []string            `json:"rotation,omitempty"`
	Stats      planner.SearchStats `json:"stats"`
	CreatedAt  time.Time           `json:"created_at"`
}

type Response struct {
	Records []RecordView `json:"records"`
}

func viewOf(rec ports.RecommendationRecord) RecordView {
	return RecordView{
		ID:         rec.ID,
		SessionKey: rec.SessionKey,
		RecipeName: rec.RecipeName,
		StepIndex:  rec.StepIndex,
		ActionID:   rec.ActionID,
		Score:      rec.Score,
		Reasons:    rec.Reasons,
		Rotation:   rec.Rotation,
		Stats:      rec.Stats,
		CreatedAt:  rec.CreatedAt,
	}
}

package gormrepo

import (
	"context"
	"encoding/json"

	"pillforge/internal/adapter/repo/gorm/model"
	"pillforge/internal/app/ports"
	"pillforge/internal/domain/planner"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecommendationLogRepo struct {
	db *gorm.DB
}

func NewRecommendationLogRepo(db *gorm.DB) RecommendationLogRepo {
	return RecommendationLogRepo{db: db}
}

func (r RecommendationLogRepo) Append(ctx context.Context, rec ports.RecommendationRecord) error {
	reasons, _ := json.Marshal(rec.Reasons)
	rotation, _ := json.Marshal(rec.Rotation)
	stats, _ := json.Marshal(rec.Stats)
	m := model.RecommendationLog{
		ID:         rec.ID,
		SessionKey: rec.SessionKey,
		RecipeName: rec.RecipeName,
		StepIndex:  int32(rec.StepIndex),
		ActionID:   rec.ActionID,
		Score:      rec.Score,
		Reasons:    reasons,
		Rotation:   rotation,
		Stats:      stats,
		CreatedAt:  rec.CreatedAt,
	}
	return getDBFromCtx(ctx, r.db).Create(&m).Error
}

func (r RecommendationLogRepo) ListBySession(ctx context.Context, sessionKey string, limit int) ([]ports.RecommendationRecord, error) {
	rows := []model.RecommendationLog{}
	query := getDBFromCtx(ctx, r.db).
		Where("session_key = ?", sessionKey).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "created_at"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]ports.RecommendationRecord, 0, len(rows))
	for _, row := range rows {
		rec := ports.RecommendationRecord{
			ID:         row.ID,
			SessionKey: row.SessionKey,
			RecipeName: row.RecipeName,
			StepIndex:  int(row.StepIndex),
			ActionID:   row.ActionID,
			Score:      row.Score,
			CreatedAt:  row.CreatedAt,
		}
		if len(row.Reasons) > 0 {
			_ = json.Unmarshal(row.Reasons, &rec.Reasons)
		}
		if len(row.Rotation) > 0 {
			_ = json.Unmarshal(row.Rotation, &rec.Rotation)
		}
		if len(row.Stats) > 0 {
			var stats planner.SearchStats
			_ = json.Unmarshal(row.Stats, &stats)
			rec.Stats = stats
		}
		out = append(out, rec)
	}
	return out, nil
}

package gormrepo

import (
	"context"
	"errors"

	"pillforge/internal/adapter/repo/gorm/model"
	"pillforge/internal/app/ports"
	"pillforge/internal/domain/planner"

	"gorm.io/gorm"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepo {
	return ProfileRepo{db: db}
}

func (r ProfileRepo) GetByName(ctx context.Context, name string) (ports.EngineProfileRecord, error) {
	var m model.EngineProfile
	if err := getDBFromCtx(ctx, r.db).Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.EngineProfileRecord{}, ports.ErrNotFound
		}
		return ports.EngineProfileRecord{}, err
	}
	return profileFromModel(m), nil
}

func (r ProfileRepo) SaveWithVersion(ctx context.Context, profile ports.EngineProfileRecord, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	if expectedVersion == 0 {
		m := model.EngineProfile{
			Name:         profile.Name,
			Depth:        int32(profile.Config.Depth),
			TimeBudgetMs: int32(profile.Config.TimeBudgetMs),
			MaxNodes:     int64(profile.Config.MaxNodes),
			BeamWidth:    int32(profile.Config.BeamWidth),
			Training:     profile.Config.Training,
			Version:      profile.Version,
			UpdatedAt:    profile.UpdatedAt,
		}
		if err := db.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	updates := map[string]any{
		"depth":          int32(profile.Config.Depth),
		"time_budget_ms": int32(profile.Config.TimeBudgetMs),
		"max_nodes":      int64(profile.Config.MaxNodes),
		"beam_width":     int32(profile.Config.BeamWidth),
		"training":       profile.Config.Training,
		"version":        profile.Version,
		"updated_at":     profile.UpdatedAt,
	}

	res := db.Model(&model.EngineProfile{}).
		Where("name = ? AND version = ?", profile.Name, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r ProfileRepo) List(ctx context.Context) ([]ports.EngineProfileRecord, error) {
	rows := []model.EngineProfile{}
	if err := getDBFromCtx(ctx, r.db).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ports.EngineProfileRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, profileFromModel(row))
	}
	return out, nil
}

func profileFromModel(m model.EngineProfile) ports.EngineProfileRecord {
	return ports.EngineProfileRecord{
		Name: m.Name,
		Config: planner.Config{
			Depth:        int(m.Depth),
			TimeBudgetMs: int(m.TimeBudgetMs),
			MaxNodes:     int(m.MaxNodes),
			BeamWidth:    int(m.BeamWidth),
			Training:     m.Training,
		},
		Version:   m.Version,
		UpdatedAt: m.UpdatedAt,
	}
}

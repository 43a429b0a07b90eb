package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pillforge/internal/app/ports"
	"pillforge/internal/domain/planner"
)

var (
	ErrInvalidRequest = errors.New("invalid recommend request")
	ErrUnknownProfile = errors.New("unknown engine profile")
)

type UseCase struct {
	Planner  *planner.Planner
	Profiles ports.ProfileRepository
	Log      ports.RecommendationLogRepository
	Metrics  ports.SearchMetrics
	Now      func() time.Time
	NewID    func() string
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.SessionKey = strings.TrimSpace(req.SessionKey)
	req.Profile = strings.TrimSpace(req.Profile)
	if req.SessionKey == "" {
		return Response{}, ErrInvalidRequest
	}

	snap := req.Snapshot
	snap.Normalize()
	if err := snap.Validate(); err != nil {
		if u.Metrics != nil {
			u.Metrics.RecordRejected()
		}
		return Response{}, err
	}

	cfg, err := u.resolveConfig(ctx, req)
	if err != nil {
		if u.Metrics != nil {
			u.Metrics.RecordRejected()
		}
		return Response{}, err
	}

	result, err := u.Planner.Recommend(snap, cfg)
	if err != nil {
		if u.Metrics != nil {
			u.Metrics.RecordFailure()
		}
		return Response{}, err
	}

	out := Response{
		Best:         result.Best,
		Alternatives: result.Alternatives,
		Rotation:     result.Rotation,
		Reasons:      result.Reasons,
		Projected:    result.Projected,
		Stats:        result.Stats,
	}

	if u.Log != nil {
		nowFn := u.Now
		if nowFn == nil {
			nowFn = time.Now
		}
		idFn := u.NewID
		if idFn == nil {
			idFn = uuid.NewString
		}
		record := ports.RecommendationRecord{
			ID:         idFn(),
			SessionKey: req.SessionKey,
			RecipeName: snap.Recipe.Name,
			StepIndex:  snap.State.StepIndex,
			ActionID:   result.Best.ActionID,
			Score:      result.Best.Score,
			Reasons:    result.Reasons,
			Rotation:   result.Rotation,
			Stats:      result.Stats,
			CreatedAt:  nowFn(),
		}
		if err := u.Log.Append(ctx, record); err != nil {
			if u.Metrics != nil {
				u.Metrics.RecordFailure()
			}
			return Response{}, err
		}
		out.RecordID = record.ID
	}

	if u.Metrics != nil {
		u.Metrics.RecordSearch(result.Stats)
	}
	return out, nil
}

// resolveConfig overlays the request knobs on the named profile, when
// one is asked for. Zero request fields defer to the profile; the
// planner clamps whatever comes out.
func (u UseCase) resolveConfig(ctx context.Context, req Request) (planner.Config, error) {
	if req.Profile == "" {
		return req.Config, nil
	}
	if u.Profiles == nil {
		return planner.Config{}, fmt.Errorf("%w: %s", ErrUnknownProfile, req.Profile)
	}
	prof, err := u.Profiles.GetByName(ctx, req.Profile)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return planner.Config{}, fmt.Errorf("%w: %s", ErrUnknownProfile, req.Profile)
		}
		return planner.Config{}, err
	}
	cfg := prof.Config
	if req.Config.Depth != 0 {
		cfg.Depth = req.Config.Depth
	}
	if req.Config.TimeBudgetMs != 0 {
		cfg.TimeBudgetMs = req.Config.TimeBudgetMs
	}
	if req.Config.MaxNodes != 0 {
		cfg.MaxNodes = req.Config.MaxNodes
	}
	if req.Config.BeamWidth != 0 {
		cfg.BeamWidth = req.Config.BeamWidth
	}
	if req.Config.Training {
		cfg.Training = true
	}
	return cfg, nil
}

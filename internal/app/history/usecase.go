package history

import (
	"context"
	"errors"
	"strings"

	"pillforge/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid history request")

const (
	defaultLimit = 20
	maxLimit     = 100
)

type UseCase struct {
	Log ports.RecommendationLogRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	key := strings.TrimSpace(req.SessionKey)
	if key == "" {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	records, err := u.Log.ListBySession(ctx, key, limit)
	if err != nil {
		return Response{}, err
	}
	out := Response{Records: make([]RecordView, 0, len(records))}
	for _, rec := range records {
		out.Records = append(out.Records, viewOf(rec))
	}
	return out, nil
}

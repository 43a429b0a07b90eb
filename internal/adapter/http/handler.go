package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"pillforge/internal/app/history"
	"pillforge/internal/app/intake"
	"pillforge/internal/app/ports"
	"pillforge/internal/app/profiles"
	"pillforge/internal/app/recommend"
	"pillforge/internal/domain/craft"
	"pillforge/internal/domain/planner"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	RecommendUC recommend.UseCase
	IntakeUC    intake.UseCase
	ProfilesUC  profiles.UseCase
	HistoryUC   history.UseCase
	KPI         kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	api := s.Group("/api/craft")
	api.POST("/recommend", h.recommend)
	api.POST("/recommend/raw", h.recommendRaw)
	api.GET("/history", h.history)
	api.GET("/profiles", h.listProfiles)
	api.GET("/profiles/:name", h.getProfile)
	api.PUT("/profiles/:name", h.putProfile)

	s.GET("/ops/kpi", h.kpi)
}

type recommendRequest struct {
	SessionKey string         `json:"session_key"`
	Profile    string         `json:"profile,omitempty"`
	Snapshot   craft.Snapshot `json:"snapshot"`
	Config     planner.Config `json:"config,omitempty"`
}

type rawRecommendRequest struct {
	SessionKey string          `json:"session_key"`
	Profile    string          `json:"profile,omitempty"`
	Dump       json.RawMessage `json:"dump"`
	Config     planner.Config  `json:"config,omitempty"`
}

type rawRecommendResponse struct {
	recommend.Response
	Unmatched []string `json:"unmatched,omitempty"`
}

type putProfileRequest struct {
	Config planner.Config `json:"config"`
}

func (h Handler) recommend(c context.Context, ctx *app.RequestContext) {
	var body recommendRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.RecommendUC.Execute(c, recommend.Request{
		SessionKey: body.SessionKey,
		Profile:    body.Profile,
		Snapshot:   body.Snapshot,
		Config:     body.Config,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) recommendRaw(c context.Context, ctx *app.RequestContext) {
	var body rawRecommendRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	scraped, err := h.IntakeUC.Execute(c, intake.Request{Dump: body.Dump})
	if err != nil {
		writeError(ctx, err)
		return
	}

	resp, err := h.RecommendUC.Execute(c, recommend.Request{
		SessionKey: body.SessionKey,
		Profile:    body.Profile,
		Snapshot:   scraped.Snapshot,
		Config:     body.Config,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, rawRecommendResponse{
		Response:  resp,
		Unmatched: scraped.Unmatched,
	})
}

func (h Handler) history(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	resp, err := h.HistoryUC.Execute(c, history.Request{
		SessionKey: string(ctx.Query("session_key")),
		Limit:      limit,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) listProfiles(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ProfilesUC.List(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) getProfile(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ProfilesUC.Get(c, profiles.GetRequest{Name: string(ctx.Param("name"))})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) putProfile(c context.Context, ctx *app.RequestContext) {
	var body putProfileRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ProfilesUC.Put(c, profiles.PutRequest{
		Name:   string(ctx.Param("name")),
		Config: body.Config,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, intake.ErrMalformedDump):
		writeErrorBody(ctx, consts.StatusBadRequest, "malformed_dump", err.Error())
	case errors.Is(err, craft.ErrInvalidSnapshot):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_snapshot", err.Error())
	case errors.Is(err, recommend.ErrUnknownProfile):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_profile", err.Error())
	case errors.Is(err, planner.ErrNoAdmissibleAction):
		writeErrorBody(ctx, consts.StatusUnprocessableEntity, "no_admissible_action", err.Error())
	case errors.Is(err, recommend.ErrInvalidRequest),
		errors.Is(err, intake.ErrInvalidRequest),
		errors.Is(err, profiles.ErrInvalidRequest),
		errors.Is(err, history.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

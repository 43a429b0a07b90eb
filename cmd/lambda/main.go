// Command lambda serves single-shot recommendations behind an AWS
// Lambda function URL. It carries no database: the engine profile and
// the recommendation log live in process memory for the lifetime of
// the execution environment. Build with GOOS=linux GOARCH=arm64 and
// ship the binary as bootstrap.
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"pillforge/internal/adapter/repo/memory"
	"pillforge/internal/app/intake"
	"pillforge/internal/app/ports"
	"pillforge/internal/app/recommend"
	"pillforge/internal/domain/craft"
	"pillforge/internal/domain/planner"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

type recommendRequest struct {
	SessionKey string          `json:"session_key"`
	Profile    string          `json:"profile,omitempty"`
	Snapshot   *craft.Snapshot `json:"snapshot,omitempty"`
	Dump       json.RawMessage `json:"dump,omitempty"`
	Config     planner.Config  `json:"config,omitempty"`
}

type recommendResponse struct {
	recommend.Response
	Unmatched []string `json:"unmatched,omitempty"`
}

type service struct {
	recommendUC recommend.UseCase
	intakeUC    intake.UseCase
}

func newService() service {
	store := memory.NewStore()
	store.SeedProfile(ports.EngineProfileRecord{
		Name:      "default",
		Config:    planner.Config{}.Clamped(),
		Version:   1,
		UpdatedAt: time.Now().UTC(),
	})
	return service{
		recommendUC: recommend.UseCase{
			Planner:  planner.New(craft.NewService()),
			Profiles: memory.NewProfileRepo(store),
			Log:      memory.NewRecommendationLogRepo(store),
		},
		intakeUC: intake.UseCase{},
	}
}

func (s service) handle(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return errResp(400, "invalid_body", "invalid base64 body")
		}
		body = decoded
	}

	var req recommendRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return errResp(400, "invalid_json", "invalid json")
	}

	var snap craft.Snapshot
	var unmatched []string
	switch {
	case len(req.Dump) > 0:
		scraped, err := s.intakeUC.Execute(ctx, intake.Request{Dump: req.Dump})
		if err != nil {
			return errorFor(err)
		}
		snap = scraped.Snapshot
		unmatched = scraped.Unmatched
	case req.Snapshot != nil:
		snap = *req.Snapshot
	default:
		return errResp(400, "bad_request", "snapshot or dump required")
	}

	resp, err := s.recommendUC.Execute(ctx, recommend.Request{
		SessionKey: req.SessionKey,
		Profile:    req.Profile,
		Snapshot:   snap,
		Config:     req.Config,
	})
	if err != nil {
		return errorFor(err)
	}

	out, _ := json.Marshal(recommendResponse{Response: resp, Unmatched: unmatched})
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(out)}, nil
}

// errorFor maps domain sentinels onto the same codes the HTTP adapter
// serves, so clients can switch transports without relearning errors.
func errorFor(err error) (events.LambdaFunctionURLResponse, error) {
	switch {
	case errors.Is(err, intake.ErrMalformedDump):
		return errResp(400, "malformed_dump", err.Error())
	case errors.Is(err, craft.ErrInvalidSnapshot):
		return errResp(400, "invalid_snapshot", err.Error())
	case errors.Is(err, recommend.ErrUnknownProfile):
		return errResp(400, "unknown_profile", err.Error())
	case errors.Is(err, planner.ErrNoAdmissibleAction):
		return errResp(422, "no_admissible_action", err.Error())
	case errors.Is(err, recommend.ErrInvalidRequest), errors.Is(err, intake.ErrInvalidRequest):
		return errResp(400, "bad_request", err.Error())
	default:
		return errResp(500, "internal_error", "internal error")
	}
}

func errResp(status int, code, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]any{
		"error": map[string]string{"code": code, "message": msg},
	})
	return events.LambdaFunctionURLResponse{StatusCode: status, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	svc := newService()
	lambda.Start(svc.handle)
}

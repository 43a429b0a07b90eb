package profiles

import (
	"time"

	"pillforge/internal/app/ports"
	"pillforge/internal/domain/planner"
)

type GetRequest struct {
	Name string
}

type PutRequest struct {
	Name   string
	Config planner.Config
}

// ProfileView is the wire shape of a stored preset.
type ProfileView struct {
	Name      string         `json:"name"`
	Config    planner.Config `json:"config"`
	Version   int64          `json:"version"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type GetResponse struct {
	Profile ProfileView `json:"profile"`
}

type PutResponse struct {
	Profile ProfileView `json:"profile"`
}

type ListResponse struct {
	Profiles []ProfileView `json:"profiles"`
}

func viewOf(rec ports.EngineProfileRecord) ProfileView {
	return ProfileView{
		Name:      rec.Name,
		Config:    rec.Config,
		Version:   rec.Version,
		UpdatedAt: rec.UpdatedAt,
	}
}

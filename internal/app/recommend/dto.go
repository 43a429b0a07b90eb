package recommend

import (
	"pillforge/internal/domain/craft"
	"pillforge/internal/domain/planner"
)

type Request struct {
	SessionKey string
	Profile    string
	Snapshot   craft.Snapshot
	Config     planner.Config
}

type Response struct {
	RecordID     string              `json:"record_id,omitempty"`
	Best         planner.Choice      `json:"best"`
	Alternatives []planner.Choice    `json:"alternatives,omitempty"`
	Rotation     []string            `json:"rotation"`
	Reasons      []string            `json:"reasons,omitempty"`
	Projected    craft.State         `json:"projected_end_state"`
	Stats        planner.SearchStats `json:"stats"`
}

package ports

import (
	"context"

	"pillforge/internal/domain/craft"
)

// CatalogProvider serves the static action and buff definitions the
// intake path falls back to when a snapshot arrives with bare names.
type CatalogProvider interface {
	Action(ctx context.Context, id string) (craft.Action, error)
	Buff(ctx context.Context, name string) (craft.Buff, error)
	ActionIDs(ctx context.Context) ([]string, error)
	BuffNames(ctx context.Context) ([]string, error)
}

package profiles

import (
	"context"
	"errors"
	"strings"
	"time"

	"pillforge/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid profile request")

// UseCase manages named engine presets. Put clamps the config before
// storing so a stored preset can never smuggle out-of-band knobs into
// a later search.
type UseCase struct {
	Tx   ports.TxManager
	Repo ports.ProfileRepository
	Now  func() time.Time
}

func (u UseCase) Get(ctx context.Context, req GetRequest) (GetResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return GetResponse{}, ErrInvalidRequest
	}
	prof, err := u.Repo.GetByName(ctx, name)
	if err != nil {
		return GetResponse{}, err
	}
	return GetResponse{Profile: viewOf(prof)}, nil
}

func (u UseCase) Put(ctx context.Context, req PutRequest) (PutResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return PutResponse{}, ErrInvalidRequest
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var prof ports.EngineProfileRecord
	err := u.runInTx(ctx, func(txCtx context.Context) error {
		var expected int64
		current, err := u.Repo.GetByName(txCtx, name)
		switch {
		case err == nil:
			expected = current.Version
		case errors.Is(err, ports.ErrNotFound):
			expected = 0
		default:
			return err
		}

		prof = ports.EngineProfileRecord{
			Name:      name,
			Config:    req.Config.Clamped(),
			Version:   expected + 1,
			UpdatedAt: nowFn(),
		}
		return u.Repo.SaveWithVersion(txCtx, prof, expected)
	})
	if err != nil {
		return PutResponse{}, err
	}
	return PutResponse{Profile: viewOf(prof)}, nil
}

func (u UseCase) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if u.Tx == nil {
		return fn(ctx)
	}
	return u.Tx.RunInTx(ctx, fn)
}

func (u UseCase) List(ctx context.Context) (ListResponse, error) {
	profs, err := u.Repo.List(ctx)
	if err != nil {
		return ListResponse{}, err
	}
	out := ListResponse{Profiles: make([]ProfileView, 0, len(profs))}
	for _, prof := range profs {
		out.Profiles = append(out.Profiles, viewOf(prof))
	}
	return out, nil
}

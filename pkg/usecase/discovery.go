package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/waterlens/tapcheck/pkg/domain/interfaces"
	"github.com/waterlens/tapcheck/pkg/domain/model"
	"github.com/waterlens/tapcheck/pkg/domain/types"
)

// Discovery finds the water systems serving a zip code
type Discovery struct {
	provider interfaces.Provider
}

// NewDiscovery creates a new Discovery
func NewDiscovery(provider interfaces.Provider) *Discovery {
	return &Discovery{provider: provider}
}

// Discover returns the primary system and alternates for zip. An empty
// zip is rejected without contacting the provider, and an empty result is
// reported as model.ErrNoSystemsFound.
func (d *Discovery) Discover(ctx context.Context, zip types.ZipCode) (*model.Systems, error) {
	if err := zip.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid zip code", goerr.T(model.ErrTagMissingInput))
	}

	resp, err := d.provider.FetchSystems(ctx, zip)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch water systems",
			goerr.V("zip", zip),
			goerr.T(model.ErrTagUpstream))
	}
	if !resp.OK() {
		return nil, goerr.New("water systems request returned error status",
			goerr.V("zip", zip),
			goerr.V("status", resp.StatusCode),
			goerr.T(model.ErrTagUpstream))
	}

	systems, err := model.ParseSystems(zip, resp.Body)
	if err != nil {
		if errors.Is(err, model.ErrNoSystemsFound) {
			return nil, err
		}
		return nil, goerr.Wrap(err, "failed to decode water systems", goerr.T(model.ErrTagUpstream))
	}

	ctxlog.From(ctx).Debug("Discovered water systems",
		"zip", zip,
		"primary", systems.Primary.ID,
		"alternates", len(systems.Alternates),
	)
	return systems, nil
}

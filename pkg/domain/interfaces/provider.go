package interfaces

//go:generate moq -out mocks/provider_mock.go -pkg mocks . Provider

import (
	"context"

	"github.com/waterlens/tapcheck/pkg/domain/model"
	"github.com/waterlens/tapcheck/pkg/domain/types"
)

// Provider fetches raw payloads from the upstream water-data providers.
// Implementations return an error only when no response was received;
// non-success statuses come back as responses.
type Provider interface {
	// FetchSystems looks up the water systems serving a zip code
	FetchSystems(ctx context.Context, zip types.ZipCode) (*model.UpstreamResponse, error)

	// FetchContaminants looks up contaminant information for a water system
	FetchContaminants(ctx context.Context, pwsid types.PWSID) (*model.UpstreamResponse, error)

	// FetchFacility looks up facility records for a water system
	FetchFacility(ctx context.Context, pwsid types.PWSID) (*model.UpstreamResponse, error)
}

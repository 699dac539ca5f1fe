package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/waterlens/tapcheck/pkg/domain/interfaces"
	"github.com/waterlens/tapcheck/pkg/domain/model"
	"github.com/waterlens/tapcheck/pkg/domain/types"
	"github.com/waterlens/tapcheck/pkg/utils/metrics"
)

// Enrichment resolves facility data for a water system. It never fails:
// any problem with the facility provider yields model.DefaultFacility.
type Enrichment struct {
	provider interfaces.Provider
	metrics  *metrics.Metrics
}

// NewEnrichment creates a new Enrichment
func NewEnrichment(provider interfaces.Provider, m *metrics.Metrics) *Enrichment {
	return &Enrichment{provider: provider, metrics: m}
}

// Enrich returns the population served and source water type for pwsid
func (e *Enrichment) Enrich(ctx context.Context, pwsid types.PWSID) model.Facility {
	logger := ctxlog.From(ctx).With("pwsid", pwsid)

	resp, err := e.provider.FetchFacility(ctx, pwsid)
	if err != nil {
		logger.Warn("Facility lookup failed, using defaults", "error", err)
		e.metrics.IncEnrichmentFallback()
		return model.DefaultFacility()
	}
	if !resp.OK() {
		logger.Warn("Facility lookup returned error status, using defaults",
			"status", resp.StatusCode)
		e.metrics.IncEnrichmentFallback()
		return model.DefaultFacility()
	}

	facility, ok := model.DecodeFacility(resp.Body)
	if !ok {
		logger.Warn("Facility payload has no usable record, using defaults",
			"bytes", len(resp.Body))
		e.metrics.IncEnrichmentFallback()
	}
	return facility
}

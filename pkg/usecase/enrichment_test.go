package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/waterlens/tapcheck/pkg/domain/model"
	"github.com/waterlens/tapcheck/pkg/domain/types"
	"github.com/waterlens/tapcheck/pkg/usecase"
	"github.com/waterlens/tapcheck/pkg/utils/metrics"
)

func TestEnrich(t *testing.T) {
	ctx := context.Background()
	pwsid := types.PWSID("CA1910067")

	t.Run("decodes first record", func(t *testing.T) {
		m := metrics.New()
		e := usecase.NewEnrichment(newProvider("", "", beverlyHillsFacility), m)
		f := e.Enrich(ctx, pwsid)
		gt.Equal(t, f.PopulationServed, "44,000")
		gt.Equal(t, f.SourceWaterType, "Surface Water")
		gt.Equal(t, testutil.ToFloat64(m.EnrichmentFallbacks), 0.0)
	})

	t.Run("record without fields is not a fallback", func(t *testing.T) {
		m := metrics.New()
		f := usecase.NewEnrichment(newProvider("", "", `[{"pwsid":"CA1910067"}]`), m).Enrich(ctx, pwsid)
		gt.Equal(t, f, model.DefaultFacility())
		gt.Equal(t, testutil.ToFloat64(m.EnrichmentFallbacks), 0.0)
	})

	testCases := map[string]func(ctx context.Context, pwsid types.PWSID) (*model.UpstreamResponse, error){
		"transport failure": func(ctx context.Context, pwsid types.PWSID) (*model.UpstreamResponse, error) {
			return nil, errTransport
		},
		"error status": func(ctx context.Context, pwsid types.PWSID) (*model.UpstreamResponse, error) {
			return status(http.StatusInternalServerError), nil
		},
	}

	for name, fetch := range testCases {
		t.Run(name+" falls back to defaults", func(t *testing.T) {
			provider := newProvider("", "", "")
			provider.FetchFacilityFunc = fetch
			m := metrics.New()

			f := usecase.NewEnrichment(provider, m).Enrich(ctx, pwsid)
			gt.Equal(t, f, model.DefaultFacility())
			gt.Equal(t, testutil.ToFloat64(m.EnrichmentFallbacks), 1.0)
		})
	}

	for name, body := range map[string]string{
		"empty array": `[]`,
		"object":      `{"population_served_count":"10"}`,
		"not json":    `<error/>`,
	} {
		t.Run(name+" yields defaults", func(t *testing.T) {
			m := metrics.New()
			f := usecase.NewEnrichment(newProvider("", "", body), m).Enrich(ctx, pwsid)
			gt.Equal(t, f, model.DefaultFacility())
			gt.Equal(t, testutil.ToFloat64(m.EnrichmentFallbacks), 1.0)
		})
	}
}

package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/waterlens/tapcheck/pkg/domain/interfaces"
	"github.com/waterlens/tapcheck/pkg/domain/model"
	"github.com/waterlens/tapcheck/pkg/domain/types"
	"github.com/waterlens/tapcheck/pkg/utils/async"
	"github.com/waterlens/tapcheck/pkg/utils/metrics"
)

// ReportOption is a functional option for configuring Report
type ReportOption func(*Report)

// WithMetrics records pipeline metrics
func WithMetrics(m *metrics.Metrics) ReportOption {
	return func(r *Report) {
		r.metrics = m
	}
}

// Report runs the report pipeline: discovery, enrichment and contaminant
// lookup, classification and assembly.
type Report struct {
	provider   interfaces.Provider
	discovery  *Discovery
	enrichment *Enrichment
	metrics    *metrics.Metrics
}

// NewReport creates a new Report use case
func NewReport(provider interfaces.Provider, opts ...ReportOption) *Report {
	r := &Report{provider: provider}
	for _, opt := range opts {
		opt(r)
	}
	r.discovery = NewDiscovery(provider)
	r.enrichment = NewEnrichment(provider, r.metrics)
	return r
}

// ForZip builds the report for the system serving zip. When pwsid is set
// it selects that system among those serving zip, otherwise the primary
// one is used.
func (r *Report) ForZip(ctx context.Context, zip types.ZipCode, pwsid types.PWSID) (*model.ZipReport, error) {
	systems, err := r.discovery.Discover(ctx, zip)
	if err != nil {
		return nil, err
	}

	selected := systems.Primary
	if pwsid != "" {
		found, ok := systems.Find(pwsid)
		if !ok {
			return nil, goerr.New("water system does not serve zip code",
				goerr.V("zip", zip),
				goerr.V("pwsid", pwsid),
				goerr.T(model.ErrTagUnknownSystem))
		}
		selected = found
	}

	report, err := r.Load(ctx, selected)
	if err != nil {
		return nil, err
	}

	return &model.ZipReport{Systems: systems, Report: report}, nil
}

// LoadByID builds a report for a PWSID without a zip lookup. The system
// name is unknown in that case and falls back to the ID.
func (r *Report) LoadByID(ctx context.Context, pwsid types.PWSID) (*model.Report, error) {
	if err := pwsid.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid PWSID", goerr.T(model.ErrTagMissingInput))
	}
	return r.Load(ctx, model.NewWaterSystem(pwsid, ""))
}

// Load enriches system and fetches its contaminants concurrently, then
// classifies and assembles the report. Enrichment never fails the load;
// a contaminant lookup failure does.
func (r *Report) Load(ctx context.Context, system model.WaterSystem) (*model.Report, error) {
	var (
		facility model.Facility
		lists    *model.ContaminantLists
	)

	err := async.Join(ctx,
		func(ctx context.Context) error {
			facility = r.enrichment.Enrich(ctx, system.ID)
			return nil
		},
		func(ctx context.Context) error {
			var err error
			lists, err = r.fetchContaminants(ctx, system.ID)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	classified := model.Classify(lists.Exceeds, lists.Others)
	r.metrics.ObserveClassification(len(classified.Exceeding), len(classified.Others))

	report := model.NewReport(system.WithFacility(facility), classified)
	ctxlog.From(ctx).Info("Report assembled",
		"pwsid", system.ID,
		"exceeding", report.ExceedingCount,
		"total", report.TotalCount,
	)
	return report, nil
}

// SelectAsync loads the report for system in the background and commits
// it to view. Only the latest selection is ever rendered by view.
func (r *Report) SelectAsync(ctx context.Context, view *ReportView, system model.WaterSystem) types.ReportToken {
	token := view.Begin()

	async.Dispatch(ctx, func(ctx context.Context) (err error) {
		var report *model.Report
		defer func() {
			view.Commit(ctx, token, report, err)
		}()

		report, err = r.Load(ctx, system)
		return err
	})

	return token
}

func (r *Report) fetchContaminants(ctx context.Context, pwsid types.PWSID) (*model.ContaminantLists, error) {
	resp, err := r.provider.FetchContaminants(ctx, pwsid)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch contaminants",
			goerr.V("pwsid", pwsid),
			goerr.T(model.ErrTagUpstream))
	}
	if !resp.OK() {
		return nil, goerr.New("contaminants request returned error status",
			goerr.V("pwsid", pwsid),
			goerr.V("status", resp.StatusCode),
			goerr.T(model.ErrTagUpstream))
	}

	lists, err := model.ParseContaminantLists(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode contaminants",
			goerr.V("pwsid", pwsid),
			goerr.T(model.ErrTagUpstream))
	}
	return lists, nil
}

package usecase

import (
	"context"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/waterlens/tapcheck/pkg/domain/model"
	"github.com/waterlens/tapcheck/pkg/domain/types"
	"github.com/waterlens/tapcheck/pkg/utils/metrics"
)

// RenderFunc displays a committed result. It is called with the view
// locked, so renders never interleave.
type RenderFunc func(ctx context.Context, report *model.Report, err error)

// ReportView holds the report currently on display. Selections are
// numbered by Begin and a result is accepted only for the latest one, so
// a slow response for an earlier selection can never replace a newer one.
type ReportView struct {
	mu        sync.Mutex
	latest    types.ReportToken
	committed types.ReportToken
	done      chan struct{}
	report    *model.Report
	err       error
	render    RenderFunc
	metrics   *metrics.Metrics
}

// ViewOption is a functional option for configuring ReportView
type ViewOption func(*ReportView)

// WithRender sets the callback invoked for every accepted result
func WithRender(fn RenderFunc) ViewOption {
	return func(v *ReportView) {
		v.render = fn
	}
}

// WithViewMetrics counts discarded results
func WithViewMetrics(m *metrics.Metrics) ViewOption {
	return func(v *ReportView) {
		v.metrics = m
	}
}

// NewReportView creates an empty view
func NewReportView(opts ...ViewOption) *ReportView {
	done := make(chan struct{})
	close(done)

	v := &ReportView{done: done}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Begin issues the token for a new selection, superseding all earlier ones
func (v *ReportView) Begin() types.ReportToken {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.latest++
	v.done = make(chan struct{})
	return v.latest
}

// Commit stores the result of the selection identified by token. It
// returns false and drops the result when a newer selection exists.
func (v *ReportView) Commit(ctx context.Context, token types.ReportToken, report *model.Report, err error) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if token != v.latest || token == v.committed {
		ctxlog.From(ctx).Debug("Discarding stale report",
			"token", token,
			"latest", v.latest,
		)
		v.metrics.IncStaleReport()
		return false
	}

	v.committed = token
	v.report, v.err = report, err
	if v.render != nil {
		v.render(ctx, report, err)
	}
	close(v.done)
	return true
}

// Current returns the last accepted result
func (v *ReportView) Current() (*model.Report, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.report, v.err
}

// Wait blocks until the latest selection has been committed
func (v *ReportView) Wait(ctx context.Context) error {
	v.mu.Lock()
	done := v.done
	v.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

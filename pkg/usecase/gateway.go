package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/waterlens/tapcheck/pkg/domain/interfaces"
	"github.com/waterlens/tapcheck/pkg/domain/model"
	"github.com/waterlens/tapcheck/pkg/domain/types"
)

// Pass-through error messages returned to API clients
const (
	MessageZipRequired         = "Zip code is required"
	MessagePWSIDRequired       = "PWSID is required"
	MessageSystemsFailed       = "Failed to fetch EWG systems data"
	MessageContaminantsFailed  = "Failed to fetch EWG contaminants data"
	MessageFacilityFailed      = "Failed to fetch EPA Envirofacts data"
	messageFacilityStatusError = "Failed to fetch EPA data: %s"
)

// Gateway relays provider responses verbatim. It adds no retries and
// no caching; it only validates input and normalizes failures.
type Gateway struct {
	provider interfaces.Provider
}

// NewGateway creates a new Gateway
func NewGateway(provider interfaces.Provider) *Gateway {
	return &Gateway{provider: provider}
}

// Systems relays the system list for a zip code
func (g *Gateway) Systems(ctx context.Context, zip types.ZipCode) (json.RawMessage, error) {
	if err := zip.Validate(); err != nil {
		return nil, model.NewPassthroughError(http.StatusBadRequest, MessageZipRequired, err)
	}

	resp, err := g.provider.FetchSystems(ctx, zip)
	return relay(ctx, resp, err, MessageSystemsFailed, goerr.V("zip", zip))
}

// Contaminants relays contaminant information for a water system
func (g *Gateway) Contaminants(ctx context.Context, pwsid types.PWSID) (json.RawMessage, error) {
	if err := pwsid.Validate(); err != nil {
		return nil, model.NewPassthroughError(http.StatusBadRequest, MessagePWSIDRequired, err)
	}

	resp, err := g.provider.FetchContaminants(ctx, pwsid)
	return relay(ctx, resp, err, MessageContaminantsFailed, goerr.V("pwsid", pwsid))
}

// Facility relays facility records for a water system. Unlike the EWG
// endpoints, an upstream error status is passed through to the client.
func (g *Gateway) Facility(ctx context.Context, pwsid types.PWSID) (json.RawMessage, error) {
	if err := pwsid.Validate(); err != nil {
		return nil, model.NewPassthroughError(http.StatusBadRequest, MessagePWSIDRequired, err)
	}

	resp, err := g.provider.FetchFacility(ctx, pwsid)
	if err == nil && !resp.OK() {
		return nil, model.NewPassthroughError(resp.StatusCode,
			fmt.Sprintf(messageFacilityStatusError, resp.StatusText()),
			goerr.New("facility request returned error status",
				goerr.V("pwsid", pwsid),
				goerr.V("status", resp.StatusCode),
				goerr.T(model.ErrTagUpstream)))
	}
	return relay(ctx, resp, err, MessageFacilityFailed, goerr.V("pwsid", pwsid))
}

func relay(ctx context.Context, resp *model.UpstreamResponse, err error, message string, opts ...goerr.Option) (json.RawMessage, error) {
	fail := func(cause error) error {
		return model.NewPassthroughError(http.StatusInternalServerError, message, cause)
	}

	if err != nil {
		return nil, fail(err)
	}
	if !resp.OK() {
		return nil, fail(goerr.New("upstream returned error status",
			append(opts, goerr.V("status", resp.StatusCode), goerr.T(model.ErrTagUpstream))...))
	}
	if !json.Valid(resp.Body) {
		return nil, fail(goerr.New("upstream returned invalid JSON",
			append(opts, goerr.V("body_size", len(resp.Body)), goerr.T(model.ErrTagUpstream))...))
	}

	ctxlog.From(ctx).Debug("Relaying upstream response", "bytes", len(resp.Body))
	return json.RawMessage(resp.Body), nil
}

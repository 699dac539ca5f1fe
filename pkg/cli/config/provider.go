package config

import (
	"log/slog"
	"net/url"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/waterlens/tapcheck/pkg/service/provider"
	"github.com/waterlens/tapcheck/pkg/utils/metrics"
)

// Provider holds upstream provider configuration
type Provider struct {
	EWGBaseURL string
	EPABaseURL string
	Timeout    time.Duration
}

// Flags returns CLI flags for Provider configuration
func (p *Provider) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "ewg-base-url",
			Usage:       "Base URL of the EWG (Waterdrop) API",
			Category:    "Provider",
			Value:       provider.DefaultEWGBaseURL,
			Sources:     cli.EnvVars("TAPCHECK_EWG_BASE_URL"),
			Destination: &p.EWGBaseURL,
		},
		&cli.StringFlag{
			Name:        "epa-base-url",
			Usage:       "Base URL of the EPA Envirofacts API",
			Category:    "Provider",
			Value:       provider.DefaultEPABaseURL,
			Sources:     cli.EnvVars("TAPCHECK_EPA_BASE_URL"),
			Destination: &p.EPABaseURL,
		},
		&cli.DurationFlag{
			Name:        "upstream-timeout",
			Usage:       "Timeout for each upstream request",
			Category:    "Provider",
			Value:       provider.DefaultTimeout,
			Sources:     cli.EnvVars("TAPCHECK_UPSTREAM_TIMEOUT"),
			Destination: &p.Timeout,
		},
	}
}

// Validate validates the provider configuration
func (p *Provider) Validate() error {
	for name, raw := range map[string]string{
		"ewg-base-url": p.EWGBaseURL,
		"epa-base-url": p.EPABaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return goerr.New("invalid base URL", goerr.V("flag", name), goerr.V("url", raw))
		}
	}
	if p.Timeout <= 0 {
		return goerr.New("upstream timeout must be positive", goerr.V("timeout", p.Timeout))
	}
	return nil
}

// Configure creates the upstream provider client
func (p *Provider) Configure(m *metrics.Metrics) (*provider.Client, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return provider.New(
		provider.WithEWGBaseURL(p.EWGBaseURL),
		provider.WithEPABaseURL(p.EPABaseURL),
		provider.WithTimeout(p.Timeout),
		provider.WithMetrics(m),
	), nil
}

// LogValue returns structured log value
func (p Provider) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("ewg_base_url", p.EWGBaseURL),
		slog.String("epa_base_url", p.EPABaseURL),
		slog.Duration("timeout", p.Timeout),
	)
}

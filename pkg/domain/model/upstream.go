package model

import "net/http"

// UpstreamResponse is a raw provider response. Non-success statuses are
// returned as responses, not errors, so callers can decide how to surface them.
type UpstreamResponse struct {
	StatusCode int
	Status     string
	Body       []byte
}

// OK reports whether the provider answered with a 2xx status
func (r *UpstreamResponse) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// StatusText returns the reason phrase of the response status
func (r *UpstreamResponse) StatusText() string {
	if r == nil {
		return ""
	}
	if text := http.StatusText(r.StatusCode); text != "" {
		return text
	}
	return r.Status
}

package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
	"github.com/prometheus/client_golang/prometheus/testutil"
	controller "github.com/waterlens/tapcheck/pkg/controller/http"
	"github.com/waterlens/tapcheck/pkg/domain/interfaces/mocks"
	"github.com/waterlens/tapcheck/pkg/domain/model"
	"github.com/waterlens/tapcheck/pkg/domain/types"
	"github.com/waterlens/tapcheck/pkg/service/render"
	"github.com/waterlens/tapcheck/pkg/usecase"
	"github.com/waterlens/tapcheck/pkg/utils/metrics"
)

const (
	systemsBody     = `{"systemList":[{"PWS":"CA1910067","SystemName":"Beverly Hills MWD"},{"PWS":"CA1910068","SystemName":"Los Angeles DWP"}]}`
	informationBody = `{"information":{
		"exceedsList":[{"ContaminantName":"Arsenic","ContaminantDisplayUnits":"ppb","SystemAverage":12,"ContaminantHGValue":0.004,"ContaminantMCLValue":10}],
		"othersList":[{"ContaminantName":"Chlorine","SystemAverage":0.5,"ContaminantHGValue":4}]
	}}`
	facilityBody = `[{"population_served_count":44000,"primary_source_code":"SW"}]`
)

func respond(code int, body string) *model.UpstreamResponse {
	return &model.UpstreamResponse{StatusCode: code, Status: http.StatusText(code), Body: []byte(body)}
}

func newProvider() *mocks.ProviderMock {
	return &mocks.ProviderMock{
		FetchSystemsFunc: func(ctx context.Context, zip types.ZipCode) (*model.UpstreamResponse, error) {
			if zip == "00000" {
				return respond(http.StatusOK, `{"systemList":[]}`), nil
			}
			return respond(http.StatusOK, systemsBody), nil
		},
		FetchContaminantsFunc: func(ctx context.Context, pwsid types.PWSID) (*model.UpstreamResponse, error) {
			return respond(http.StatusOK, informationBody), nil
		},
		FetchFacilityFunc: func(ctx context.Context, pwsid types.PWSID) (*model.UpstreamResponse, error) {
			return respond(http.StatusOK, facilityBody), nil
		},
	}
}

type testServer struct {
	*httptest.Server
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T, provider *mocks.ProviderMock) *testServer {
	t.Helper()
	ctx := ctxlog.With(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	m := metrics.New()
	renderer, err := render.New()
	gt.NoError(t, err).Required()

	server, err := controller.NewServer(ctx, ":0", &controller.UseCases{
		Gateway: usecase.NewGateway(provider),
		Report:  usecase.NewReport(provider, usecase.WithMetrics(m)),
	}, renderer, m)
	gt.NoError(t, err).Required()

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)
	return &testServer{Server: ts, metrics: m}
}

func get(t *testing.T, ts *testServer, path string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	gt.NoError(t, err).Required()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	gt.NoError(t, err).Required()
	return resp, string(body)
}

func errorMessage(t *testing.T, body string) string {
	t.Helper()
	var v map[string]string
	gt.NoError(t, json.Unmarshal([]byte(body), &v)).Required()
	return v["error"]
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, newProvider())
	resp, body := get(t, ts, "/health")
	gt.Equal(t, resp.StatusCode, http.StatusOK)
	gt.Equal(t, resp.Header.Get("Content-Type"), "application/json")

	var v map[string]string
	gt.NoError(t, json.Unmarshal([]byte(body), &v))
	gt.Equal(t, v["status"], "healthy")
	gt.Equal(t, v["service"], "tapcheck")
}

func TestPassthroughRoutes(t *testing.T) {
	ts := newTestServer(t, newProvider())

	t.Run("systems", func(t *testing.T) {
		for _, path := range []string{"/api/systems?zip=90210", "/get-systems?zip=90210"} {
			resp, body := get(t, ts, path)
			gt.Equal(t, resp.StatusCode, http.StatusOK)
			gt.Equal(t, body, systemsBody)
			gt.Equal(t, resp.Header.Get("Access-Control-Allow-Origin"), "*")
		}
	})

	t.Run("contaminants", func(t *testing.T) {
		for _, path := range []string{"/api/contaminants?pwsid=CA1910067", "/get-contaminants?pwsid=CA1910067"} {
			resp, body := get(t, ts, path)
			gt.Equal(t, resp.StatusCode, http.StatusOK)
			gt.Equal(t, body, informationBody)
		}
	})

	t.Run("facility", func(t *testing.T) {
		for _, path := range []string{"/api/facility?pwsid=CA1910067", "/get-epa-data?pwsid=CA1910067"} {
			resp, body := get(t, ts, path)
			gt.Equal(t, resp.StatusCode, http.StatusOK)
			gt.Equal(t, body, facilityBody)
		}
	})

	t.Run("missing parameters", func(t *testing.T) {
		testCases := map[string]string{
			"/api/systems":      "Zip code is required",
			"/api/contaminants": "PWSID is required",
			"/get-epa-data":     "PWSID is required",
		}
		for path, want := range testCases {
			resp, body := get(t, ts, path)
			gt.Equal(t, resp.StatusCode, http.StatusBadRequest)
			gt.Equal(t, errorMessage(t, body), want)
		}
	})
}

func TestPassthroughUpstreamFailures(t *testing.T) {
	provider := newProvider()
	provider.FetchSystemsFunc = func(ctx context.Context, zip types.ZipCode) (*model.UpstreamResponse, error) {
		return respond(http.StatusNotFound, `{}`), nil
	}
	provider.FetchFacilityFunc = func(ctx context.Context, pwsid types.PWSID) (*model.UpstreamResponse, error) {
		return respond(http.StatusServiceUnavailable, `{}`), nil
	}
	ts := newTestServer(t, provider)

	t.Run("EWG error status becomes 500", func(t *testing.T) {
		resp, body := get(t, ts, "/api/systems?zip=90210")
		gt.Equal(t, resp.StatusCode, http.StatusInternalServerError)
		gt.Equal(t, errorMessage(t, body), "Failed to fetch EWG systems data")
	})

	t.Run("EPA error status is passed through", func(t *testing.T) {
		resp, body := get(t, ts, "/api/facility?pwsid=CA1910067")
		gt.Equal(t, resp.StatusCode, http.StatusServiceUnavailable)
		gt.Equal(t, errorMessage(t, body), "Failed to fetch EPA data: Service Unavailable")
	})
}

func TestReportAPI(t *testing.T) {
	ts := newTestServer(t, newProvider())

	t.Run("Beverly Hills", func(t *testing.T) {
		resp, body := get(t, ts, "/api/report?zip=90210")
		gt.Equal(t, resp.StatusCode, http.StatusOK)

		var result struct {
			Systems struct {
				Alternates []struct {
					ID string `json:"id"`
				} `json:"alternates"`
			} `json:"systems"`
			Report struct {
				System struct {
					Name             string `json:"name"`
					PopulationServed string `json:"populationServed"`
				} `json:"system"`
				ExceedingCount int `json:"exceedingCount"`
				TotalCount     int `json:"totalCount"`
				Exceeding      []struct {
					Name       string  `json:"name"`
					Multiplier float64 `json:"multiplier"`
				} `json:"exceeding"`
			} `json:"report"`
		}
		gt.NoError(t, json.Unmarshal([]byte(body), &result)).Required()
		gt.Equal(t, result.Report.System.Name, "Beverly Hills MWD")
		gt.Equal(t, result.Report.System.PopulationServed, "44,000")
		gt.Equal(t, result.Report.ExceedingCount, 1)
		gt.Equal(t, result.Report.TotalCount, 2)
		gt.Equal(t, result.Report.Exceeding[0].Multiplier, 3000.0)
		gt.Equal(t, result.Systems.Alternates[0].ID, "CA1910068")
	})

	t.Run("errors", func(t *testing.T) {
		testCases := map[string]struct {
			status  int
			message string
		}{
			"/api/report":                          {http.StatusBadRequest, model.MessageMissingZip},
			"/api/report?zip=00000":                {http.StatusNotFound, "No water systems found for zip code 00000. Please check the zip code and try again."},
			"/api/report?zip=90210&pwsid=XX000001": {http.StatusBadRequest, "The selected water system does not serve zip code 90210."},
		}
		for path, tc := range testCases {
			resp, body := get(t, ts, path)
			gt.Equal(t, resp.StatusCode, tc.status)
			gt.Equal(t, errorMessage(t, body), tc.message)
		}
	})

	t.Run("upstream failure", func(t *testing.T) {
		provider := newProvider()
		provider.FetchContaminantsFunc = func(ctx context.Context, pwsid types.PWSID) (*model.UpstreamResponse, error) {
			return respond(http.StatusInternalServerError, `{}`), nil
		}
		ts := newTestServer(t, provider)

		resp, body := get(t, ts, "/api/report?zip=90210")
		gt.Equal(t, resp.StatusCode, http.StatusBadGateway)
		gt.Equal(t, errorMessage(t, body), model.MessageGenericFailure)
	})

	t.Run("infinite average encodes as null", func(t *testing.T) {
		provider := newProvider()
		provider.FetchContaminantsFunc = func(ctx context.Context, pwsid types.PWSID) (*model.UpstreamResponse, error) {
			return respond(http.StatusOK, `{"information":{"exceedsList":[
				{"ContaminantName":"Radium","SystemAverage":"Infinity","ContaminantHGValue":1}
			],"othersList":[]}}`), nil
		}
		ts := newTestServer(t, provider)

		resp, body := get(t, ts, "/api/report?zip=90210")
		gt.Equal(t, resp.StatusCode, http.StatusOK)

		var result struct {
			Report struct {
				ExceedingCount int `json:"exceedingCount"`
				Exceeding      []struct {
					Name          string   `json:"name"`
					SystemAverage *float64 `json:"systemAverage"`
					Multiplier    *float64 `json:"multiplier"`
				} `json:"exceeding"`
			} `json:"report"`
		}
		gt.NoError(t, json.Unmarshal([]byte(body), &result)).Required()
		gt.Equal(t, result.Report.ExceedingCount, 1)
		gt.Equal(t, result.Report.Exceeding[0].Name, "Radium")
		gt.Nil(t, result.Report.Exceeding[0].SystemAverage)
		gt.Nil(t, result.Report.Exceeding[0].Multiplier)
	})
}

func TestPages(t *testing.T) {
	ts := newTestServer(t, newProvider())

	t.Run("index", func(t *testing.T) {
		resp, body := get(t, ts, "/")
		gt.Equal(t, resp.StatusCode, http.StatusOK)
		gt.Equal(t, resp.Header.Get("Content-Type"), "text/html; charset=utf-8")
		gt.S(t, body).Contains(`id="zip-form"`)
	})

	t.Run("report for an alternate", func(t *testing.T) {
		resp, body := get(t, ts, "/report?zip=90210&pwsid=CA1910068&view=others")
		gt.Equal(t, resp.StatusCode, http.StatusOK)

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
		gt.NoError(t, err).Required()
		gt.Equal(t, strings.TrimSpace(doc.Find(".system-name").Text()), "Los Angeles DWP")
		gt.True(t, doc.Find(".other-system-item").Eq(1).HasClass("selected"))
		_, checked := doc.Find("#view-others").Attr("checked")
		gt.True(t, checked)
	})

	t.Run("no systems", func(t *testing.T) {
		resp, body := get(t, ts, "/report?zip=00000")
		gt.Equal(t, resp.StatusCode, http.StatusNotFound)
		gt.S(t, body).Contains("No water systems found for zip code 00000.")
	})

	t.Run("static assets", func(t *testing.T) {
		resp, body := get(t, ts, "/static/style.css")
		gt.Equal(t, resp.StatusCode, http.StatusOK)
		gt.Equal(t, resp.Header.Get("Content-Type"), "text/css; charset=utf-8")
		gt.S(t, body).Contains(".contaminant-card")

		resp, _ = get(t, ts, "/static/missing.css")
		gt.Equal(t, resp.StatusCode, http.StatusNotFound)
	})
}

func TestMetrics(t *testing.T) {
	ts := newTestServer(t, newProvider())
	get(t, ts, "/api/systems?zip=90210")
	get(t, ts, "/api/systems")

	gt.Equal(t, testutil.ToFloat64(ts.metrics.HTTPRequests.WithLabelValues("/api/systems", "200")), 1.0)
	gt.Equal(t, testutil.ToFloat64(ts.metrics.HTTPRequests.WithLabelValues("/api/systems", "400")), 1.0)

	resp, body := get(t, ts, "/metrics")
	gt.Equal(t, resp.StatusCode, http.StatusOK)
	gt.S(t, body).Contains("tapcheck_http_requests_total")
}

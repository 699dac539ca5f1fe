package usecase_test

import (
	"context"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/waterlens/tapcheck/pkg/domain/interfaces/mocks"
	"github.com/waterlens/tapcheck/pkg/domain/model"
	"github.com/waterlens/tapcheck/pkg/domain/types"
)

const (
	beverlyHillsSystems = `{"systemList":[
		{"PWS":"CA1910067","SystemName":"Beverly Hills MWD"},
		{"PWS":"CA1910068","SystemName":"Los Angeles DWP"}
	]}`
	beverlyHillsContaminants = `{"information":{
		"exceedsList":[{"ContaminantName":"Arsenic","ContaminantEffect":"cancer","ContaminantDisplayUnits":"ppb","SystemAverage":12,"ContaminantHGValue":0.004,"ContaminantMCLValue":10}],
		"othersList":[{"ContaminantName":"Chlorine","SystemAverage":"0.5","ContaminantHGValue":"4"}]
	}}`
	beverlyHillsFacility = `[{"population_served_count":"44000","primary_source_code":"SW"}]`
	emptyInformation     = `{"information":{"exceedsList":[],"othersList":[]}}`
)

func ok(body string) *model.UpstreamResponse {
	return &model.UpstreamResponse{StatusCode: http.StatusOK, Status: "200 OK", Body: []byte(body)}
}

func status(code int) *model.UpstreamResponse {
	return &model.UpstreamResponse{
		StatusCode: code,
		Status:     http.StatusText(code),
		Body:       []byte(`{"message":"failure"}`),
	}
}

var errTransport = goerr.New("connection refused")

// newProvider returns a mock answering every request with the given bodies
func newProvider(systems, contaminants, facility string) *mocks.ProviderMock {
	return &mocks.ProviderMock{
		FetchSystemsFunc: func(ctx context.Context, zip types.ZipCode) (*model.UpstreamResponse, error) {
			return ok(systems), nil
		},
		FetchContaminantsFunc: func(ctx context.Context, pwsid types.PWSID) (*model.UpstreamResponse, error) {
			return ok(contaminants), nil
		},
		FetchFacilityFunc: func(ctx context.Context, pwsid types.PWSID) (*model.UpstreamResponse, error) {
			return ok(facility), nil
		},
	}
}

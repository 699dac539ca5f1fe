package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/waterlens/tapcheck/pkg/domain/model"
)

func TestParseFacility(t *testing.T) {
	t.Run("First record is used", func(t *testing.T) {
		facility := model.ParseFacility([]byte(`[
			{"pwsid":"CA1910067","population_served_count":34109,"primary_source_code":"SW"},
			{"pwsid":"CA1910067","population_served_count":1,"primary_source_code":"GW"}
		]`))

		gt.Equal(t, facility.PopulationServed, "34,109")
		gt.Equal(t, facility.SourceWaterType, "Surface Water")
	})

	t.Run("Population as string", func(t *testing.T) {
		facility := model.ParseFacility([]byte(`[{"population_served_count":"3900000","primary_source_code":"GU"}]`))

		gt.Equal(t, facility.PopulationServed, "3,900,000")
		gt.Equal(t, facility.SourceWaterType, "Groundwater Under Direct Influence of Surface Water")
	})

	t.Run("Population beyond int64 is N/A", func(t *testing.T) {
		for _, body := range []string{`[{"population_served_count":1e20}]`, `[{"population_served_count":-1e20}]`} {
			gt.Equal(t, model.ParseFacility([]byte(body)).PopulationServed, "N/A")
		}
	})

	t.Run("Fractional population keeps integer part", func(t *testing.T) {
		facility := model.ParseFacility([]byte(`[{"population_served_count":1234.9}]`))
		gt.Equal(t, facility.PopulationServed, "1,234")
	})

	t.Run("Missing fields", func(t *testing.T) {
		facility := model.ParseFacility([]byte(`[{"pwsid":"X"}]`))
		gt.Equal(t, facility, model.DefaultFacility())
	})

	t.Run("Non numeric population", func(t *testing.T) {
		facility := model.ParseFacility([]byte(`[{"population_served_count":"unknown","primary_source_code":"C"}]`))
		gt.Equal(t, facility.PopulationServed, "N/A")
		gt.Equal(t, facility.SourceWaterType, "Consecutive Connection")
	})

	t.Run("Unknown source code passes through", func(t *testing.T) {
		facility := model.ParseFacility([]byte(`[{"primary_source_code":"GWP"}]`))
		gt.Equal(t, facility.SourceWaterType, "GWP")
	})

	t.Run("Unexpected shapes yield defaults", func(t *testing.T) {
		for _, body := range []string{`[]`, `{}`, `{"error":"not found"}`, `null`, `not json`, ``} {
			gt.Equal(t, model.ParseFacility([]byte(body)), model.DefaultFacility())

			_, ok := model.DecodeFacility([]byte(body))
			gt.False(t, ok)
		}
	})

	t.Run("Record without fields is still a record", func(t *testing.T) {
		facility, ok := model.DecodeFacility([]byte(`[{"pwsid":"CA1910067"}]`))
		gt.True(t, ok)
		gt.Equal(t, facility, model.DefaultFacility())
	})
}

func TestSourceWaterType(t *testing.T) {
	gt.Equal(t, model.SourceWaterType("GW"), "Groundwater")
	gt.Equal(t, model.SourceWaterType("SW"), "Surface Water")
	gt.Equal(t, model.SourceWaterType(""), "N/A")
	gt.Equal(t, model.SourceWaterType("XX"), "XX")
}

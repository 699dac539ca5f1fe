package model

import (
	"encoding/json"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Facility holds the human-readable fields extracted from a facility record
type Facility struct {
	PopulationServed string `json:"populationServed" yaml:"populationServed"`
	SourceWaterType  string `json:"sourceWaterType" yaml:"sourceWaterType"`
}

// DefaultFacility is used whenever facility data cannot be obtained
func DefaultFacility() Facility {
	return Facility{
		PopulationServed: NotAvailable,
		SourceWaterType:  NotAvailable,
	}
}

var sourceWaterTypes = map[string]string{
	"GW": "Groundwater",
	"SW": "Surface Water",
	"GU": "Groundwater Under Direct Influence of Surface Water",
	"C":  "Consecutive Connection",
}

// SourceWaterType decodes a primary source code. Unknown codes are returned
// verbatim and an empty code is N/A.
func SourceWaterType(code string) string {
	if code == "" {
		return NotAvailable
	}
	if name, ok := sourceWaterTypes[code]; ok {
		return name
	}
	return code
}

var populationPrinter = message.NewPrinter(language.English)

// FormatPopulation renders the integer part of a population count with
// thousands grouping, or N/A when it is absent or not numeric.
func FormatPopulation(n Numeric) string {
	v, ok := n.Float()
	if !ok || !isFinite(v) {
		return NotAvailable
	}
	v = math.Trunc(v)
	if v < math.MinInt64 || v >= math.MaxInt64 {
		return NotAvailable
	}
	return populationPrinter.Sprintf("%d", int64(v))
}

// ParseFacility extracts facility fields from a facility-records payload.
// Only the first record of a non-empty array is used; any other shape
// yields DefaultFacility.
func ParseFacility(body []byte) Facility {
	facility, _ := DecodeFacility(body)
	return facility
}

// DecodeFacility is ParseFacility that also reports whether the payload held
// a facility record at all
func DecodeFacility(body []byte) (Facility, bool) {
	var records []map[string]json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil || len(records) == 0 {
		return DefaultFacility(), false
	}

	record := records[0]
	return Facility{
		PopulationServed: FormatPopulation(Numeric{raw: record["population_served_count"]}),
		SourceWaterType:  SourceWaterType(textField(record["primary_source_code"])),
	}, true
}

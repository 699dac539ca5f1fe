package model

import (
	"bytes"
	"encoding/json"
)

// Contaminant is one detected contaminant for a water system. The provider's
// own exceeds/others placement is not kept; only the numeric fields matter.
type Contaminant struct {
	Name            string  `json:"name" yaml:"name"`
	Effect          string  `json:"effect" yaml:"effect"`
	DisplayUnits    string  `json:"displayUnits" yaml:"displayUnits"`
	SystemAverage   Numeric `json:"systemAverage" yaml:"systemAverage"`
	HealthGuideline Numeric `json:"healthGuideline" yaml:"healthGuideline"`
	LegalLimit      Numeric `json:"legalLimit" yaml:"legalLimit"`
}

// EffectOrDefault returns the health effect description or N/A
func (c Contaminant) EffectOrDefault() string {
	if c.Effect == "" {
		return NotAvailable
	}
	return c.Effect
}

// upstreamContaminant decodes one entry of the provider's contaminant lists.
// Entries that are not objects keep their slot with empty fields so nothing
// is dropped from the report.
type upstreamContaminant Contaminant

func (u *upstreamContaminant) UnmarshalJSON(data []byte) error {
	*u = upstreamContaminant{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	u.Name = textField(fields["ContaminantName"])
	u.Effect = textField(fields["ContaminantEffect"])
	u.DisplayUnits = textField(fields["ContaminantDisplayUnits"])
	u.SystemAverage = Numeric{raw: fields["SystemAverage"]}
	u.HealthGuideline = Numeric{raw: fields["ContaminantHGValue"]}
	u.LegalLimit = Numeric{raw: fields["ContaminantMCLValue"]}
	return nil
}

// textField returns a JSON string unquoted, other scalars as their literal
// text and empty for null or missing fields.
func textField(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s
	}
	return string(trimmed)
}

package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/waterlens/tapcheck/pkg/domain/types"
)

// WaterSystem is a public water utility, optionally enriched with facility data
type WaterSystem struct {
	ID               types.PWSID `json:"id" yaml:"id"`
	Name             string      `json:"name" yaml:"name"`
	PopulationServed string      `json:"populationServed" yaml:"populationServed"`
	SourceWaterType  string      `json:"sourceWaterType" yaml:"sourceWaterType"`
}

// NewWaterSystem creates a WaterSystem without facility data
func NewWaterSystem(id types.PWSID, name string) WaterSystem {
	if name == "" {
		name = id.String()
	}
	return WaterSystem{
		ID:               id,
		Name:             name,
		PopulationServed: NotAvailable,
		SourceWaterType:  NotAvailable,
	}
}

// WithFacility returns a copy of the system merged with facility data
func (s WaterSystem) WithFacility(f Facility) WaterSystem {
	s.PopulationServed = f.PopulationServed
	s.SourceWaterType = f.SourceWaterType
	return s
}

// Systems is the result of a zip code lookup. The first system returned by
// the provider is the primary one; the rest are offered as alternates.
type Systems struct {
	Zip        types.ZipCode `json:"zip" yaml:"zip"`
	Primary    WaterSystem   `json:"primary" yaml:"primary"`
	Alternates []WaterSystem `json:"alternates" yaml:"alternates"`
}

// Find returns the system with the given ID, primary included
func (s *Systems) Find(id types.PWSID) (WaterSystem, bool) {
	if s.Primary.ID == id {
		return s.Primary, true
	}
	for _, alt := range s.Alternates {
		if alt.ID == id {
			return alt, true
		}
	}
	return WaterSystem{}, false
}

// All returns the primary system followed by the alternates
func (s *Systems) All() []WaterSystem {
	return append([]WaterSystem{s.Primary}, s.Alternates...)
}

// ParseSystems decodes a zip lookup payload. An empty or missing system list
// yields ErrNoSystemsFound, which callers must keep distinct from transport
// failures.
func ParseSystems(zip types.ZipCode, body []byte) (*Systems, error) {
	var payload struct {
		SystemList json.RawMessage `json:"systemList"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		if !json.Valid(body) {
			return nil, goerr.Wrap(err, "system list payload is not JSON", goerr.V("zip", zip))
		}
		return nil, goerr.Wrap(ErrNoSystemsFound, "unexpected system list payload", goerr.V("zip", zip))
	}

	var entries []struct {
		PWS        json.RawMessage `json:"PWS"`
		SystemName json.RawMessage `json:"SystemName"`
	}
	if err := json.Unmarshal(payload.SystemList, &entries); err != nil || len(entries) == 0 {
		return nil, goerr.Wrap(ErrNoSystemsFound, "empty system list", goerr.V("zip", zip))
	}

	systems := make([]WaterSystem, 0, len(entries))
	for _, entry := range entries {
		id := types.PWSID(textField(entry.PWS))
		systems = append(systems, NewWaterSystem(id, textField(entry.SystemName)))
	}

	return &Systems{
		Zip:        zip,
		Primary:    systems[0],
		Alternates: systems[1:],
	}, nil
}

package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// ContaminantLists is the provider's own split of contaminants
type ContaminantLists struct {
	Exceeds []Contaminant
	Others  []Contaminant
}

// ParseContaminantLists decodes a contaminant-information payload. A payload
// without usable "information" lists is a valid empty result; only a body
// that is not JSON at all is an error.
func ParseContaminantLists(body []byte) (*ContaminantLists, error) {
	var payload struct {
		Information json.RawMessage `json:"information"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		if !json.Valid(body) {
			return nil, goerr.Wrap(err, "contaminant payload is not JSON")
		}
		return &ContaminantLists{}, nil
	}

	var info struct {
		ExceedsList json.RawMessage `json:"exceedsList"`
		OthersList  json.RawMessage `json:"othersList"`
	}
	if err := json.Unmarshal(payload.Information, &info); err != nil {
		return &ContaminantLists{}, nil
	}

	return &ContaminantLists{
		Exceeds: decodeContaminantList(info.ExceedsList),
		Others:  decodeContaminantList(info.OthersList),
	}, nil
}

func decodeContaminantList(raw json.RawMessage) []Contaminant {
	var entries []upstreamContaminant
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	result := make([]Contaminant, len(entries))
	for i, entry := range entries {
		result[i] = Contaminant(entry)
	}
	return result
}

package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ZipCode represents a user-supplied zip code. Format is not validated here;
// the upstream provider is authoritative on validity.
type ZipCode string

// String returns the string representation
func (z ZipCode) String() string {
	return string(z)
}

// Validate checks that the zip code is present
func (z ZipCode) Validate() error {
	if strings.TrimSpace(string(z)) == "" {
		return goerr.New("zip code is required")
	}
	return nil
}

// PWSID represents a Public Water System Identifier assigned by the upstream provider
type PWSID string

// String returns the string representation
func (id PWSID) String() string {
	return string(id)
}

// Validate checks that the identifier is present
func (id PWSID) Validate() error {
	if strings.TrimSpace(string(id)) == "" {
		return goerr.New("PWSID is required")
	}
	return nil
}

// ReportToken orders report loads for a single view. A larger token always
// belongs to a more recent selection.
type ReportToken uint64

package interfaces

import (
	"context"
	"encoding/json"

	"github.com/waterlens/tapcheck/pkg/domain/model"
	"github.com/waterlens/tapcheck/pkg/domain/types"
)

// Gateway relays raw provider payloads to API clients
type Gateway interface {
	Systems(ctx context.Context, zip types.ZipCode) (json.RawMessage, error)
	Contaminants(ctx context.Context, pwsid types.PWSID) (json.RawMessage, error)
	Facility(ctx context.Context, pwsid types.PWSID) (json.RawMessage, error)
}

// Report builds assembled water quality reports
type Report interface {
	// ForZip reports on the primary system serving zip, or on pwsid when set
	ForZip(ctx context.Context, zip types.ZipCode, pwsid types.PWSID) (*model.ZipReport, error)

	// LoadByID reports on a single system without a zip lookup
	LoadByID(ctx context.Context, pwsid types.PWSID) (*model.Report, error)
}

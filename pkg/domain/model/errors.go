package model

import (
	"errors"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
)

// Error tags for the report pipeline
var (
	// ErrTagMissingInput marks requests rejected before any upstream call
	ErrTagMissingInput = goerr.NewTag("missing_input")
	// ErrTagUnknownSystem marks a selected PWSID that does not serve the zip code
	ErrTagUnknownSystem = goerr.NewTag("unknown_system")
	// ErrTagUpstream marks transport failures and non-success upstream responses
	ErrTagUpstream = goerr.NewTag("upstream_unavailable")
)

// Sentinel errors for domain operations
var (
	ErrNoSystemsFound = goerr.New("no water systems found")
)

// User-visible messages
const (
	MessageMissingZip     = "Please enter a valid zip code."
	MessageNoSystems      = "No water systems found for zip code %s. Please check the zip code and try again."
	MessageUnknownSystem  = "The selected water system does not serve zip code %s."
	MessageGenericFailure = "An error occurred while fetching the report. Please try again later."
	MessageNoContaminants = "No contaminant data found for %s. This may mean the water is clean, or data is unavailable."
)

// UserMessage reduces a pipeline error to the message shown to the user.
// Anything that is not an input problem or an empty search collapses into
// the generic failure message.
func UserMessage(err error, zip string) string {
	switch {
	case err == nil:
		return ""
	case goerr.HasTag(err, ErrTagMissingInput):
		return MessageMissingZip
	case goerr.HasTag(err, ErrTagUnknownSystem):
		return fmt.Sprintf(MessageUnknownSystem, zip)
	case errors.Is(err, ErrNoSystemsFound):
		return fmt.Sprintf(MessageNoSystems, zip)
	default:
		return MessageGenericFailure
	}
}

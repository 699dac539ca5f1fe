package apperr

import (
	"context"
	"errors"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/waterlens/tapcheck/pkg/domain/model"
)

// Handle logs an error once at the boundary where it is reported to the
// user. Problems caused by the user's input are logged as warnings.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	logger := ctxlog.From(ctx)
	if isUserError(err) {
		logger.Warn("request rejected", "error", err)
		return
	}
	logger.Error("application error", "error", err)
}

func isUserError(err error) bool {
	var pe *model.PassthroughError
	if errors.As(err, &pe) && pe.StatusCode < 500 {
		return true
	}
	return goerr.HasTag(err, model.ErrTagMissingInput) ||
		goerr.HasTag(err, model.ErrTagUnknownSystem) ||
		errors.Is(err, model.ErrNoSystemsFound)
}

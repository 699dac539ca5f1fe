package apperr_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/waterlens/tapcheck/pkg/domain/model"
	"github.com/waterlens/tapcheck/pkg/utils/apperr"
)

func handle(err error) string {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	apperr.Handle(ctxlog.With(context.Background(), logger), err)
	return buf.String()
}

func TestHandle(t *testing.T) {
	t.Run("input errors are warnings", func(t *testing.T) {
		out := handle(goerr.New("empty zip", goerr.T(model.ErrTagMissingInput)))
		gt.S(t, out).Contains(`"level":"WARN"`)
	})

	t.Run("no systems found is a warning", func(t *testing.T) {
		out := handle(goerr.Wrap(model.ErrNoSystemsFound, "empty list"))
		gt.S(t, out).Contains(`"level":"WARN"`)
	})

	t.Run("client-side passthrough failures are warnings", func(t *testing.T) {
		out := handle(model.NewPassthroughError(http.StatusBadRequest, "Zip code is required", nil))
		gt.S(t, out).Contains(`"level":"WARN"`)
	})

	t.Run("upstream errors are errors", func(t *testing.T) {
		out := handle(goerr.New("timeout", goerr.T(model.ErrTagUpstream)))
		gt.S(t, out).Contains(`"level":"ERROR"`)
	})

	t.Run("nil is ignored", func(t *testing.T) {
		gt.Equal(t, handle(nil), "")
	})
}

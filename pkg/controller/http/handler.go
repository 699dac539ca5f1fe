package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/waterlens/tapcheck/pkg/domain/model"
	"github.com/waterlens/tapcheck/pkg/domain/types"
	"github.com/waterlens/tapcheck/pkg/service/render"
	"github.com/waterlens/tapcheck/pkg/utils/apperr"
)

func queryParam(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

func (s *Server) handleSystems(w http.ResponseWriter, r *http.Request) {
	body, err := s.useCases.Gateway.Systems(r.Context(), types.ZipCode(queryParam(r, "zip")))
	s.relay(w, r, body, err)
}

func (s *Server) handleContaminants(w http.ResponseWriter, r *http.Request) {
	body, err := s.useCases.Gateway.Contaminants(r.Context(), types.PWSID(queryParam(r, "pwsid")))
	s.relay(w, r, body, err)
}

func (s *Server) handleFacility(w http.ResponseWriter, r *http.Request) {
	body, err := s.useCases.Gateway.Facility(r.Context(), types.PWSID(queryParam(r, "pwsid")))
	s.relay(w, r, body, err)
}

func (s *Server) relay(w http.ResponseWriter, r *http.Request, body json.RawMessage, err error) {
	if err == nil {
		writeRaw(w, r, body)
		return
	}

	apperr.Handle(r.Context(), err)

	var pe *model.PassthroughError
	if !errors.As(err, &pe) {
		writeError(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	writeError(w, r, pe.StatusCode, pe.Message)
}

func (s *Server) handleReportAPI(w http.ResponseWriter, r *http.Request) {
	zip := queryParam(r, "zip")
	result, err := s.useCases.Report.ForZip(r.Context(), types.ZipCode(zip), types.PWSID(queryParam(r, "pwsid")))
	if err != nil {
		apperr.Handle(r.Context(), err)
		writeError(w, r, statusFor(err), model.UserMessage(err, zip))
		return
	}

	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return s.renderer.Index(buf, render.Page{})
	})
}

func (s *Server) handleReportPage(w http.ResponseWriter, r *http.Request) {
	page := render.Page{
		Zip:  queryParam(r, "zip"),
		View: queryParam(r, "view"),
	}

	status := http.StatusOK
	result, err := s.useCases.Report.ForZip(r.Context(), types.ZipCode(page.Zip), types.PWSID(queryParam(r, "pwsid")))
	if err != nil {
		apperr.Handle(r.Context(), err)
		status = statusFor(err)
		page.Error = model.UserMessage(err, page.Zip)
	} else {
		page.Result = result
	}

	s.writePage(w, r, status, func(buf *bytes.Buffer) error {
		return s.renderer.Report(buf, page)
	})
}

// writePage renders into a buffer first so a template failure never
// leaves a half-written page behind.
func (s *Server) writePage(w http.ResponseWriter, r *http.Request, status int, fn func(buf *bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		apperr.Handle(r.Context(), err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write page", "error", err)
	}
}

// statusFor maps a report pipeline error to an HTTP status
func statusFor(err error) int {
	switch {
	case goerr.HasTag(err, model.ErrTagMissingInput), goerr.HasTag(err, model.ErrTagUnknownSystem):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNoSystemsFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"superstore/internal/core"
	"superstore/internal/log"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady succeeds once the dataset is loaded and holds rows.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	opts, err := s.api.Options(r.Context())
	if err != nil || len(opts.Categories) == 0 {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// handleOptions lists the distinct categories and segments. A missing
// source is reported in the body, not as a failure.
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.api.Options(r.Context())
	switch {
	case err == nil:
		render.JSON(w, r, s.presenter.options(opts, ""))
	case errors.Is(err, core.ErrSourceNotFound):
		render.JSON(w, r, s.presenter.options(opts, NoticeSourceNotFound))
	default:
		s.renderError(w, r, log.OpOptions, err)
	}
}

// handleDashboard runs the pipeline for the selection in the query string.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params, err := ParseSelectionParams(r.URL.Query())
	if err != nil {
		render.Render(w, r, newAPIError(r, http.StatusBadRequest, CodeInvalidParameter, err.Error()))
		return
	}

	opts, err := s.api.Options(ctx)
	if errors.Is(err, core.ErrSourceNotFound) {
		render.JSON(w, r, s.presenter.emptyDashboard(params.Resolve(nil, nil), false, NoticeSourceNotFound))
		return
	}
	if err != nil {
		s.renderError(w, r, log.OpBuild, err)
		return
	}

	sel := params.Resolve(opts.Categories, opts.Segments)
	d, err := s.api.Build(ctx, sel)
	switch {
	case err == nil:
		render.JSON(w, r, s.presenter.dashboard(sel, d))
	case errors.Is(err, core.ErrEmptyFilterResult):
		render.JSON(w, r, s.presenter.emptyDashboard(sel, true, NoticeEmptyFilter))
	default:
		s.renderError(w, r, log.OpBuild, err)
	}
}

// renderError maps pipeline errors to status codes.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var apiErr *APIError
	switch {
	case errors.Is(err, core.ErrMalformedSource):
		apiErr = newAPIError(r, http.StatusInternalServerError, CodeMalformedSource, "the data source could not be read: "+err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		apiErr = newAPIError(r, http.StatusGatewayTimeout, CodeTimeout, "request timed out")
	default:
		apiErr = newAPIError(r, http.StatusInternalServerError, CodeInternal, "internal error")
	}

	log.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
		log.NewFields().WithOperation(op).WithError(err).ToSlice()...)
	render.Render(w, r, apiErr)
}

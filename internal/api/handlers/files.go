package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ilkin0/mediagw/internal/logger"
	"github.com/ilkin0/mediagw/internal/service"
	"github.com/ilkin0/mediagw/internal/upstream"
	"github.com/ilkin0/mediagw/internal/utils"
)

const (
	msgFetchFailed     = "Failed to fetch from external API"
	msgUploadFailed    = "Failed to upload to external API"
	msgDeleteFailed    = "Failed to delete from external API"
	msgFilenameMissing = "Filename required"
)

type FilesHandler struct {
	proxyService *service.ProxyService
}

func NewFilesHandler(proxyService *service.ProxyService) *FilesHandler {
	return &FilesHandler{
		proxyService: proxyService,
	}
}

func (h *FilesHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	segments := routeSegments(r)
	params := upstream.ParseQuery(r.URL.RawQuery)

	res, err := h.proxyService.List(r.Context(), segments, params)
	if err != nil {
		log.Error("proxy GET failed",
			slog.String("error", err.Error()),
			slog.String("upstream_url", h.proxyService.Upstream().URL(segments, params)),
		)
		utils.Error(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	utils.RawJSON(w, res.Status, res.Body)
}

func (h *FilesHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	params := upstream.ParseQuery(r.URL.RawQuery)

	res, err := h.proxyService.Create(r.Context(), params, r.Header.Get("Content-Type"), r.Body, r.ContentLength)
	if err != nil {
		log.Error("proxy POST failed",
			slog.String("error", err.Error()),
		)
		utils.Error(w, http.StatusInternalServerError, msgUploadFailed)
		return
	}

	utils.RawJSON(w, res.Status, res.Body)
}

func (h *FilesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	segments := routeSegments(r)

	res, err := h.proxyService.Delete(r.Context(), segments)
	if err != nil {
		if errors.Is(err, service.ErrFilenameRequired) {
			utils.Error(w, http.StatusBadRequest, msgFilenameMissing)
			return
		}
		log.Error("proxy DELETE failed",
			slog.String("error", err.Error()),
		)
		utils.Error(w, http.StatusInternalServerError, msgDeleteFailed)
		return
	}

	if res.Body == nil {
		utils.NoContent(w)
		return
	}
	utils.RawJSON(w, res.Status, res.Body)
}

// routeSegments splits the wildcard remainder. chi matches on RawPath when
// the request has one, so the value is escaped only in that case.
func routeSegments(r *http.Request) []string {
	return upstream.SplitPath(chi.URLParam(r, "*"), r.URL.RawPath != "")
}

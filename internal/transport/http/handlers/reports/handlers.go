package reportshandler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"evalx/internal/domain/reports"
	"evalx/internal/transport/http/api"
	"evalx/internal/transport/http/middleware"
)

type Handler struct {
	Store *reports.Store
}

func NewHandler(store *reports.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/kpis", h.handleKPIs)
		r.Get("/leaderboard", h.handleLeaderboard)
		r.With(middleware.RequireManager).Post("/export", h.handleExport)
	})
}

type exportRequest struct {
	Format string `json:"format"`
}

func (h *Handler) handleKPIs(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	kpis, err := h.Store.ListKPIs(r.Context())
	if err != nil {
		slog.Error("kpi fetch failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "Server error fetching KPIs", requestID)
		return
	}
	api.Success(w, kpis, requestID)
}

func (h *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	entries, err := h.Store.ListLeaderboard(r.Context())
	if err != nil {
		slog.Error("leaderboard fetch failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "Server error fetching leaderboard", requestID)
		return
	}
	api.Success(w, entries, requestID)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload exportRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload.", requestID)
		return
	}

	format := strings.ToLower(strings.TrimSpace(payload.Format))
	if format == "" {
		format = reports.FormatPDF
	}
	if format != reports.FormatPDF && format != reports.FormatXLSX {
		api.Fail(w, http.StatusBadRequest, "Unsupported export format", requestID)
		return
	}

	export, err := h.Store.BuildExport(r.Context())
	if err != nil {
		slog.Error("export snapshot failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "Server error exporting report", requestID)
		return
	}

	now := time.Now()
	var body []byte
	var contentType, filename string
	switch format {
	case reports.FormatPDF:
		body, err = reports.RenderPDF(export, now)
		contentType = "application/pdf"
		filename = fmt.Sprintf("performance-report-%s.pdf", now.UTC().Format("2006-01-02"))
	case reports.FormatXLSX:
		body, err = reports.RenderXLSX(export, now)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = fmt.Sprintf("performance-report-%s.xlsx", now.UTC().Format("2006-01-02"))
	}
	if err != nil {
		slog.Error("export render failed", "format", format, "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "Server error exporting report", requestID)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		slog.Error("export write failed", "err", err, "requestId", requestID)
	}
}

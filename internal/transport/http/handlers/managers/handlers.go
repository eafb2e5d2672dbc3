package managershandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"evalx/internal/domain/evaluation"
	"evalx/internal/domain/identity"
	"evalx/internal/domain/manager"
	"evalx/internal/domain/reports"
	"evalx/internal/transport/http/api"
	"evalx/internal/transport/http/middleware"
	"evalx/internal/transport/http/shared"
)

const topEmployeeLimit = 5

type Handler struct {
	Identity *identity.Store
	Team     *manager.Store
	Writer   *evaluation.Writer
	Reports  *reports.Store
}

func NewHandler(identityStore *identity.Store, teamStore *manager.Store, writer *evaluation.Writer, reportsStore *reports.Store) *Handler {
	return &Handler{Identity: identityStore, Team: teamStore, Writer: writer, Reports: reportsStore}
}

// RegisterRoutes mounts the manager dashboard surface. Reads require any
// authenticated identity; mutations additionally require the manager role.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/managers", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Get("/{managerID}/evaluations", h.handleTeam)
		r.With(middleware.RequireManager).Post("/{managerID}/evaluations", h.handleCreateEvaluation)
		r.Get("/{managerID}/charts", h.handleCharts)
		r.Get("/{managerID}/goals", h.handleTeamGoals)
		r.Get("/{managerID}/feedback", h.handleRecentFeedback)
		r.Get("/{managerID}/reports", h.handleReports)
		r.Get("/{managerID}/top-employees", h.handleTopEmployees)
		r.With(middleware.RequireManager).Post("/feedback", h.handleSubmitFeedback)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	managers, err := h.Identity.ListManagers(r.Context())
	if err != nil {
		slog.Error("manager list failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "Server error fetching managers", requestID)
		return
	}
	api.Success(w, managers, requestID)
}

func (h *Handler) handleTeam(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	managerID := chi.URLParam(r, "managerID")
	if !shared.ValidID(managerID) {
		api.Fail(w, http.StatusBadRequest, "Invalid manager id", requestID)
		return
	}

	team, err := h.Team.ListTeam(r.Context(), managerID)
	if err != nil {
		slog.Error("team list failed", "managerId", managerID, "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "Server error fetching evaluations", requestID)
		return
	}
	api.Success(w, team, requestID)
}

func (h *Handler) handleCreateEvaluation(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	managerID := chi.URLParam(r, "managerID")
	if !shared.ValidID(managerID) {
		api.Fail(w, http.StatusBadRequest, "Invalid manager id", requestID)
		return
	}

	var payload evaluation.EvaluationInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload.", requestID)
		return
	}
	payload.ManagerID = managerID
	if payload.EmployeeID == "" {
		api.Fail(w, http.StatusBadRequest, "Missing evaluation payload", requestID)
		return
	}
	if !shared.ValidID(payload.EmployeeID) {
		api.Fail(w, http.StatusBadRequest, "Invalid employee id", requestID)
		return
	}

	id, err := h.Writer.Create(r.Context(), payload)
	if err != nil {
		if errors.Is(err, evaluation.ErrEmployeeNotFound) {
			api.Fail(w, http.StatusNotFound, "Employee not found", requestID)
			return
		}
		slog.Error("evaluation create failed", "managerId", managerID, "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "Server error submitting evaluation", requestID)
		return
	}

	api.Created(w, "", map[string]string{"id": id}, requestID)
}

func (h *Handler) handleCharts(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	managerID := chi.URLParam(r, "managerID")
	if !shared.ValidID(managerID) {
		api.Fail(w, http.StatusBadRequest, "Invalid manager id", requestID)
		return
	}

	charts, err := h.Team.GetCharts(r.Context(), managerID)
	if err != nil {
		slog.Error("charts fetch failed", "managerId", managerID, "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "Server error fetching charts", requestID)
		return
	}
	api.Success(w, charts, requestID)
}

func (h *Handler) handleTeamGoals(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	managerID := chi.URLParam(r, "managerID")
	if !shared.ValidID(managerID) {
		api.Fail(w, http.StatusBadRequest, "Invalid manager id", requestID)
		return
	}

	goals, err := h.Team.ListTeamGoals(r.Context(), managerID)
	if err != nil {
		slog.Error("team goals failed", "managerId", managerID, "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "Server error fetching goals", requestID)
		return
	}
	api.Success(w, goals, requestID)
}

func (h *Handler) handleRecentFeedback(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	managerID := chi.URLParam(r, "managerID")
	if !shared.ValidID(managerID) {
		api.Fail(w, http.StatusBadRequest, "Invalid manager id", requestID)
		return
	}

	feedback, err := h.Team.ListRecentFeedback(r.Context(), managerID)
	if err != nil {
		slog.Error("feedback fetch failed", "managerId", managerID, "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "Server error fetching feedback", requestID)
		return
	}
	api.Success(w, feedback, requestID)
}

func (h *Handler) handleReports(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	kpis, err := h.Reports.ListKPIs(r.Context())
	if err != nil {
		slog.Error("kpi fetch failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "Server error fetching reports", requestID)
		return
	}
	api.Success(w, kpis, requestID)
}

func (h *Handler) handleTopEmployees(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	managerID := chi.URLParam(r, "managerID")
	if !shared.ValidID(managerID) {
		api.Fail(w, http.StatusBadRequest, "Invalid manager id", requestID)
		return
	}

	top, err := h.Team.TopEmployees(r.Context(), managerID, topEmployeeLimit)
	if err != nil {
		slog.Error("top employees failed", "managerId", managerID, "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "Server error fetching top employees", requestID)
		return
	}
	api.Success(w, top, requestID)
}

func (h *Handler) handleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload evaluation.FeedbackInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload.", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employeeId is required")
	v.Required("managerId", payload.ManagerID, "managerId is required")
	v.Required("period", payload.Period, "period is required")
	v.Required("summary", payload.Summary, "summary is required")
	if payload.Score == nil {
		v.Add("score", "score is required")
	} else {
		v.Range("score", *payload.Score, 0, 100, "score must be between 0 and 100")
	}
	if v.Reject(w, requestID) {
		return
	}
	if !shared.ValidID(payload.EmployeeID) {
		api.Fail(w, http.StatusBadRequest, "Invalid employee id", requestID)
		return
	}
	if !shared.ValidID(payload.ManagerID) {
		api.Fail(w, http.StatusBadRequest, "Invalid manager id", requestID)
		return
	}

	result, err := h.Writer.SubmitFeedback(r.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, evaluation.ErrEmployeeNotFound):
			api.Fail(w, http.StatusNotFound, "Employee not found", requestID)
		case errors.Is(err, evaluation.ErrManagerNotFound):
			api.Fail(w, http.StatusNotFound, "Manager not found", requestID)
		default:
			slog.Error("feedback submit failed", "employeeId", payload.EmployeeID, "err", err, "requestId", requestID)
			api.Fail(w, http.StatusInternalServerError, "Server error submitting feedback", requestID)
		}
		return
	}

	api.Created(w, "Feedback submitted successfully", result, requestID)
}

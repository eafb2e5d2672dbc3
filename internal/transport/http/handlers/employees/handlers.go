package employeeshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"evalx/internal/domain/employee"
	"evalx/internal/transport/http/api"
	"evalx/internal/transport/http/middleware"
	"evalx/internal/transport/http/shared"
)

type Handler struct {
	Store *employee.Store
}

func NewHandler(store *employee.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.With(middleware.RequireManager).Post("/", h.handleCreate)
		r.Get("/{employeeID}", h.handleDetails)
		r.Get("/{employeeID}/overview", h.handleOverview)
		r.With(middleware.RequireManager).Patch("/{employeeID}", h.handleUpdate)
		r.With(middleware.RequireManager).Delete("/{employeeID}", h.handleDelete)
		r.Post("/{employeeID}/tasks", h.handleCreateTask)
		r.Patch("/{employeeID}/tasks/{taskID}", h.handleUpdateTask)
	})
}

type employeeRequest struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone"`
	Title         string  `json:"title"`
	Department    *string `json:"department"`
	Address       *string `json:"address"`
	WorkingStatus *bool   `json:"workingStatus"`
	ManagerID     *string `json:"managerId"`
}

type taskCreateRequest struct {
	Description string `json:"description"`
}

type taskUpdateRequest struct {
	Completed *bool `json:"completed"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	employees, err := h.Store.List(r.Context())
	if err != nil {
		slog.Error("employee list failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "Server error fetching employees", requestID)
		return
	}
	api.Success(w, employees, requestID)
}

func (h *Handler) handleDetails(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !shared.ValidID(employeeID) {
		api.Fail(w, http.StatusBadRequest, "Invalid employee id", requestID)
		return
	}

	details, err := h.Store.GetDetails(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "Employee not found", requestID)
			return
		}
		slog.Error("employee details failed", "employeeId", employeeID, "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "Server error fetching employee details", requestID)
		return
	}
	api.Success(w, details, requestID)
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !shared.ValidID(employeeID) {
		api.Fail(w, http.StatusBadRequest, "Invalid employee id", requestID)
		return
	}

	overview, err := h.Store.GetOverview(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "Employee not found", requestID)
			return
		}
		slog.Error("employee overview failed", "employeeId", employeeID, "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "Server error fetching overview", requestID)
		return
	}
	api.Success(w, overview, requestID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload.", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("email", payload.Email, "email is required")
	if v.Reject(w, requestID) {
		return
	}
	if payload.ManagerID != nil && !shared.ValidID(*payload.ManagerID) {
		api.Fail(w, http.StatusBadRequest, "Invalid manager id", requestID)
		return
	}

	title := payload.Title
	if strings.TrimSpace(title) == "" {
		title = "Employee"
	}

	id, err := h.Store.Create(r.Context(), employee.CreateInput{
		Name:          payload.Name,
		Email:         payload.Email,
		Phone:         payload.Phone,
		Title:         title,
		Department:    payload.Department,
		Address:       payload.Address,
		WorkingStatus: payload.WorkingStatus == nil || *payload.WorkingStatus,
		ManagerID:     payload.ManagerID,
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmailTaken) {
			api.Fail(w, http.StatusConflict, "Email already exists", requestID)
			return
		}
		slog.Error("employee create failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "Server error creating employee", requestID)
		return
	}

	api.Created(w, "Employee created successfully", map[string]string{"id": id}, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !shared.ValidID(employeeID) {
		api.Fail(w, http.StatusBadRequest, "Invalid employee id", requestID)
		return
	}

	var payload employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload.", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("email", payload.Email, "email is required")
	if v.Reject(w, requestID) {
		return
	}

	err := h.Store.Update(r.Context(), employeeID, employee.UpdateInput{
		Name:          payload.Name,
		Email:         payload.Email,
		Phone:         payload.Phone,
		Title:         payload.Title,
		Department:    payload.Department,
		Address:       payload.Address,
		WorkingStatus: payload.WorkingStatus == nil || *payload.WorkingStatus,
	})
	if err != nil {
		switch {
		case errors.Is(err, employee.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "Employee not found", requestID)
		case errors.Is(err, employee.ErrEmailTaken):
			api.Fail(w, http.StatusConflict, "Email already exists", requestID)
		default:
			slog.Error("employee update failed", "employeeId", employeeID, "err", err, "requestId", requestID)
			api.Fail(w, http.StatusInternalServerError, "Server error updating employee", requestID)
		}
		return
	}

	api.SuccessMessage(w, "Employee updated successfully", nil, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !shared.ValidID(employeeID) {
		api.Fail(w, http.StatusBadRequest, "Invalid employee id", requestID)
		return
	}

	if err := h.Store.Delete(r.Context(), employeeID); err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "Employee not found", requestID)
			return
		}
		slog.Error("employee delete failed", "employeeId", employeeID, "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "Server error deleting employee", requestID)
		return
	}

	api.SuccessMessage(w, "Employee deleted successfully", nil, requestID)
}

func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !shared.ValidID(employeeID) {
		api.Fail(w, http.StatusBadRequest, "Invalid employee id", requestID)
		return
	}

	var payload taskCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload.", requestID)
		return
	}
	description := strings.TrimSpace(payload.Description)
	if description == "" {
		api.Fail(w, http.StatusBadRequest, "Task description required", requestID)
		return
	}

	task, err := h.Store.CreateTask(r.Context(), employeeID, description)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "Employee not found", requestID)
			return
		}
		slog.Error("task create failed", "employeeId", employeeID, "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "Server error creating task", requestID)
		return
	}

	api.Created(w, "", task, requestID)
}

func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	taskID := chi.URLParam(r, "taskID")
	if !shared.ValidID(employeeID) {
		api.Fail(w, http.StatusBadRequest, "Invalid employee id", requestID)
		return
	}
	if !shared.ValidID(taskID) {
		api.Fail(w, http.StatusBadRequest, "Invalid task id", requestID)
		return
	}

	var payload taskUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload.", requestID)
		return
	}
	if payload.Completed == nil {
		api.Fail(w, http.StatusBadRequest, "Invalid task request", requestID)
		return
	}

	if err := h.Store.SetTaskCompleted(r.Context(), employeeID, taskID, *payload.Completed); err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "Task not found", requestID)
			return
		}
		slog.Error("task update failed", "employeeId", employeeID, "taskId", taskID, "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "Server error updating task", requestID)
		return
	}

	api.Success(w, map[string]any{"id": taskID, "completed": *payload.Completed}, requestID)
}

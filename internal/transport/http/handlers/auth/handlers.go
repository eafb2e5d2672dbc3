package authhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"evalx/internal/domain/auth"
	"evalx/internal/domain/identity"
	"evalx/internal/transport/http/api"
	"evalx/internal/transport/http/middleware"
	"evalx/internal/transport/http/shared"
)

type Handler struct {
	Store  *identity.Store
	Secret string
}

func NewHandler(store *identity.Store, secret string) *Handler {
	return &Handler{Store: store, Secret: secret}
}

// RegisterRoutes mounts the public auth surface. Verify relies on the
// gateway having already parsed the bearer token.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.handleLogin)
		r.Post("/register", h.handleRegister)
		r.Get("/verify", h.handleVerify)
		r.Get("/managers", h.handleListManagers)
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type registerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Title      string `json:"title"`
	Department string `json:"department"`
	Avatar     string `json:"avatar"`
	ManagerID  string `json:"managerId"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload.", requestID)
		return
	}
	if payload.Username == "" || payload.Password == "" || payload.Role == "" {
		api.Fail(w, http.StatusBadRequest, "Please provide username, password, and role.", requestID)
		return
	}
	if !auth.ValidRole(payload.Role) {
		api.Fail(w, http.StatusBadRequest, "Invalid role specified.", requestID)
		return
	}

	credential, err := h.Store.FindCredential(r.Context(), payload.Username, payload.Role)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			slog.Error("login lookup failed", "err", err, "requestId", requestID)
			api.Fail(w, http.StatusInternalServerError, "Server error during login.", requestID)
			return
		}
		api.Fail(w, http.StatusUnauthorized, "Invalid credentials.", requestID)
		return
	}
	if err := auth.CheckPassword(credential.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "Invalid credentials.", requestID)
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		UserID: credential.ID,
		Email:  credential.Email,
		Role:   credential.Role,
	}, auth.TokenTTL)
	if err != nil {
		slog.Error("token generation failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "Server error during login.", requestID)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.Envelope{
		Success:   true,
		Message:   "Login successful",
		Token:     token,
		User:      credential.Account,
		RequestID: requestID,
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload.", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("email", payload.Email, "email is required")
	v.Required("password", payload.Password, "password is required")
	v.Required("role", payload.Role, "role is required")
	v.Required("title", payload.Title, "title is required")
	if v.Reject(w, requestID) {
		return
	}
	if !auth.ValidRole(payload.Role) {
		api.Fail(w, http.StatusBadRequest, "Invalid role specified.", requestID)
		return
	}
	if err := auth.ValidatePassword(payload.Password); err != nil {
		api.Fail(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	var userID string
	var err error
	switch payload.Role {
	case auth.RoleManager:
		if payload.Department == "" {
			api.Fail(w, http.StatusBadRequest, "Department is required for managers.", requestID)
			return
		}
		userID, err = h.Store.RegisterManager(r.Context(), identity.RegisterManagerInput{
			Name:       payload.Name,
			Email:      payload.Email,
			Password:   payload.Password,
			Title:      payload.Title,
			Department: payload.Department,
			Avatar:     payload.Avatar,
		})
	case auth.RoleEmployee:
		if payload.ManagerID == "" {
			api.Fail(w, http.StatusBadRequest, "Manager selection is required for employees.", requestID)
			return
		}
		if !shared.ValidID(payload.ManagerID) {
			api.Fail(w, http.StatusBadRequest, "Selected manager does not exist.", requestID)
			return
		}
		userID, err = h.Store.RegisterEmployee(r.Context(), identity.RegisterEmployeeInput{
			Name:      payload.Name,
			Email:     payload.Email,
			Password:  payload.Password,
			Title:     payload.Title,
			Avatar:    payload.Avatar,
			ManagerID: payload.ManagerID,
		})
	}
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrEmailTaken):
			api.Fail(w, http.StatusConflict, "User with this email already exists in the system.", requestID)
		case errors.Is(err, identity.ErrManagerNotFound):
			api.Fail(w, http.StatusBadRequest, "Selected manager does not exist.", requestID)
		default:
			slog.Error("registration failed", "err", err, "requestId", requestID)
			api.Fail(w, http.StatusInternalServerError, "Server error during registration.", requestID)
		}
		return
	}

	api.Created(w, "Account created successfully! Please login.", map[string]string{"userId": userID}, requestID)
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "Invalid or expired token", requestID)
		return
	}

	account, err := h.Store.GetAccount(r.Context(), ident.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.Fail(w, http.StatusUnauthorized, "User not found", requestID)
			return
		}
		slog.Error("verify lookup failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "Server error verifying token.", requestID)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.Envelope{Success: true, User: account, RequestID: requestID})
}

func (h *Handler) handleListManagers(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	managers, err := h.Store.ListManagers(r.Context())
	if err != nil {
		slog.Error("manager list failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "Server error fetching managers.", requestID)
		return
	}
	api.Success(w, managers, requestID)
}

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the uniform response shape: successes carry data (login
// also carries token and user), failures carry a human-readable message.
type Envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Data      any    `json:"data,omitempty"`
	Token     string `json:"token,omitempty"`
	User      any    `json:"user,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func SuccessMessage(w http.ResponseWriter, message string, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, message string, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, message, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Message: message, RequestID: requestID})
}

func FailWithDetails(w http.ResponseWriter, status int, message string, details any, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Message: message, Details: details, RequestID: requestID})
}

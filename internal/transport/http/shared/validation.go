package shared

import (
	"net/http"
	"sort"
	"strings"

	"github.com/google/uuid"

	"evalx/internal/transport/http/api"
)

// ValidID reports whether s is a well-formed record id. Route params and
// payload references are checked before they reach the database, so a
// malformed id is a 400 rather than a failed uuid cast.
func ValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type Validator struct {
	issues []ValidationIssue
}

func NewValidator() *Validator {
	return &Validator{issues: make([]ValidationIssue, 0, 4)}
}

func (v *Validator) Add(field, reason string) {
	if v == nil {
		return
	}
	field = strings.TrimSpace(field)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return
	}
	v.issues = append(v.issues, ValidationIssue{Field: field, Reason: reason})
}

func (v *Validator) Required(field, value, reason string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, reason)
	}
}

func (v *Validator) Range(field string, value, lo, hi int, reason string) {
	if value < lo || value > hi {
		v.Add(field, reason)
	}
}

func (v *Validator) HasIssues() bool {
	return v != nil && len(v.issues) > 0
}

func (v *Validator) Issues() []ValidationIssue {
	if v == nil || len(v.issues) == 0 {
		return nil
	}
	out := make([]ValidationIssue, len(v.issues))
	copy(out, v.issues)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Field == out[j].Field {
			return out[i].Reason < out[j].Reason
		}
		return out[i].Field < out[j].Field
	})
	return out
}

// Reject writes a 400 with the collected issues and reports whether it
// did so; handlers bail out when it returns true.
func (v *Validator) Reject(w http.ResponseWriter, requestID string) bool {
	if !v.HasIssues() {
		return false
	}
	api.FailWithDetails(w, http.StatusBadRequest, "Please provide all required fields.", map[string]any{"fields": v.Issues()}, requestID)
	return true
}

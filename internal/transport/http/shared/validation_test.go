package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValidID(t *testing.T) {
	cases := []struct {
		name string
		id   string
		want bool
	}{
		{"canonical uuid", "0d4e9a0e-9f1e-4f09-8c53-2a85f9c1a111", true},
		{"uppercase uuid", "0D4E9A0E-9F1E-4F09-8C53-2A85F9C1A111", true},
		{"empty", "", false},
		{"word", "not-a-uuid", false},
		{"numeric id", "42", false},
		{"truncated", "0d4e9a0e-9f1e-4f09-8c53", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidID(tc.id); got != tc.want {
				t.Fatalf("ValidID(%q) = %v, want %v", tc.id, got, tc.want)
			}
		})
	}
}

func TestValidatorCollectsAndSortsIssues(t *testing.T) {
	v := NewValidator()
	v.Required("name", "  ", "name is required")
	v.Required("email", "a@example.com", "email is required")
	v.Range("score", 120, 0, 100, "score must be between 0 and 100")
	v.Add("address", "address is malformed")

	if !v.HasIssues() {
		t.Fatal("expected issues")
	}

	issues := v.Issues()
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(issues))
	}
	if issues[0].Field != "address" || issues[1].Field != "name" || issues[2].Field != "score" {
		t.Fatalf("expected sorted fields, got %+v", issues)
	}
}

func TestValidatorRejectWritesBadRequest(t *testing.T) {
	v := NewValidator()
	v.Required("period", "", "period is required")

	rec := httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("expected Reject to report true")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Details struct {
			Fields []ValidationIssue `json:"fields"`
		} `json:"details"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body.Success {
		t.Fatal("expected success false")
	}
	if len(body.Details.Fields) != 1 || body.Details.Fields[0].Field != "period" {
		t.Fatalf("unexpected details: %+v", body.Details)
	}
}

func TestValidatorRejectNoopWhenClean(t *testing.T) {
	v := NewValidator()
	v.Required("name", "ok", "name is required")
	v.Range("score", 50, 0, 100, "score must be between 0 and 100")

	rec := httptest.NewRecorder()
	if v.Reject(rec, "req-2") {
		t.Fatal("expected Reject to report false")
	}
	if rec.Body.Len() != 0 {
		t.Fatal("expected nothing written")
	}
}

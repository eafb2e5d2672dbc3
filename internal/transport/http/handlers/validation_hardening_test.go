package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"evalx/internal/app/server"
)

func TestRequestValidationHardening(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	token, managerID := login(t, client, ts.URL, cfg.SeedManagerEmail, cfg.SeedManagerPassword, "manager")

	cases := []struct {
		name    string
		method  string
		path    string
		token   string
		payload map[string]any
		want    int
	}{
		{
			name:    "login without role",
			method:  http.MethodPost,
			path:    "/api/auth/login",
			payload: map[string]any{"username": "a@example.com", "password": "x"},
			want:    http.StatusBadRequest,
		},
		{
			name:    "login with unknown role",
			method:  http.MethodPost,
			path:    "/api/auth/login",
			payload: map[string]any{"username": "a@example.com", "password": "x", "role": "admin"},
			want:    http.StatusBadRequest,
		},
		{
			name:   "register with weak password",
			method: http.MethodPost,
			path:   "/api/auth/register",
			payload: map[string]any{
				"name": "Weak", "email": "weak@example.com", "password": "password",
				"role": "manager", "title": "Manager", "department": "Sales",
			},
			want: http.StatusBadRequest,
		},
		{
			name:    "feedback without required fields",
			method:  http.MethodPost,
			path:    "/api/managers/feedback",
			token:   token,
			payload: map[string]any{"employeeId": managerID},
			want:    http.StatusBadRequest,
		},
		{
			name:    "feedback with out of range score",
			method:  http.MethodPost,
			path:    "/api/managers/feedback",
			token:   token,
			payload: map[string]any{"employeeId": managerID, "managerId": managerID, "period": "Q1", "summary": "s", "score": 150},
			want:    http.StatusBadRequest,
		},
		{
			name:   "employee lookup with malformed id",
			method: http.MethodGet,
			path:   "/api/employees/not-a-uuid",
			token:  token,
			want:   http.StatusBadRequest,
		},
		{
			name:   "team lookup with malformed manager id",
			method: http.MethodGet,
			path:   "/api/managers/not-a-uuid/top-employees",
			token:  token,
			want:   http.StatusBadRequest,
		},
		{
			name:    "export with unsupported format",
			method:  http.MethodPost,
			path:    "/api/reports/export",
			token:   token,
			payload: map[string]any{"format": "csv"},
			want:    http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, client, tc.method, ts.URL+tc.path, tc.token, tc.payload)
			defer resp.Body.Close()
			if resp.StatusCode != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, resp.StatusCode)
			}
			var env envelope
			if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if env.Success {
				t.Fatal("expected success false")
			}
			if env.Message == "" {
				t.Fatal("expected failure message")
			}
		})
	}
}

func TestReportExportDownload(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	token, _ := login(t, client, ts.URL, cfg.SeedManagerEmail, cfg.SeedManagerPassword, "manager")

	resp := doRequest(t, client, http.MethodPost, ts.URL+"/api/reports/export", token, map[string]any{"format": "pdf"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected export 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected pdf content type, got %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd == "" {
		t.Fatal("expected attachment disposition")
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read export body: %v", err)
	}
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Fatal("expected PDF magic bytes")
	}
}

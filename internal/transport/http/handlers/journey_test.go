package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"evalx/internal/app/server"
	"evalx/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Token   string          `json:"token"`
	User    json.RawMessage `json:"user"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		DatabaseURL:         dbURL,
		JWTSecret:           "test-secret",
		FrontendDir:         "frontend",
		MigrationsDir:       "../../../../migrations",
		Environment:         "test",
		SeedManagerName:     "Test Manager",
		SeedManagerEmail:    "manager@test.local",
		SeedManagerPassword: "ChangeMe1!",
		SeedManagerDept:     "Engineering",
		RunMigrations:       true,
		RunSeed:             true,
		MaxBodyBytes:        1048576,
		RateLimitPerMinute:  1000,
		MetricsEnabled:      true,
	}
}

func TestFeedbackJourney(t *testing.T) {
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

	verifyResp := doRequest(t, client, http.MethodGet, ts.URL+"/api/auth/verify", token, nil)
	if verifyResp.StatusCode != http.StatusOK {
		t.Fatalf("expected verify 200, got %d", verifyResp.StatusCode)
	}
	verifyResp.Body.Close()

	employeeEmail := fmt.Sprintf("journey-%d@example.com", time.Now().UnixNano())
	employeeID := register(t, client, ts.URL, map[string]any{
		"name":      "Journey Employee",
		"email":     employeeEmail,
		"password":  "Str0ngpass!",
		"role":      "employee",
		"title":     "Engineer",
		"managerId": managerID,
	})

	dupResp := doRequest(t, client, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]any{
		"name":      "Duplicate",
		"email":     employeeEmail,
		"password":  "Str0ngpass!",
		"role":      "employee",
		"title":     "Engineer",
		"managerId": managerID,
	})
	if dupResp.StatusCode != http.StatusConflict {
		t.Fatalf("expected duplicate email 409, got %d", dupResp.StatusCode)
	}
	dupResp.Body.Close()

	crossRoleResp := doRequest(t, client, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]any{
		"name":       "Cross Role",
		"email":      employeeEmail,
		"password":   "Str0ngpass!",
		"role":       "manager",
		"title":      "Manager",
		"department": "Engineering",
	})
	if crossRoleResp.StatusCode != http.StatusConflict {
		t.Fatalf("expected cross-role duplicate email 409, got %d", crossRoleResp.StatusCode)
	}
	crossRoleResp.Body.Close()

	feedbackResp := doRequest(t, client, http.MethodPost, ts.URL+"/api/managers/feedback", token, map[string]any{
		"employeeId":   employeeID,
		"managerId":    managerID,
		"period":       "Q3 2026",
		"score":        88,
		"summary":      "Strong quarter across the board",
		"highlights":   []string{"Shipped the reporting revamp"},
		"productivity": 90,
	})
	if feedbackResp.StatusCode != http.StatusCreated {
		t.Fatalf("expected feedback 201, got %d", feedbackResp.StatusCode)
	}
	var feedbackEnv envelope
	if err := json.NewDecoder(feedbackResp.Body).Decode(&feedbackEnv); err != nil {
		t.Fatalf("decode feedback response: %v", err)
	}
	feedbackResp.Body.Close()
	var feedbackResult struct {
		ReviewID     string `json:"reviewId"`
		EvaluationID string `json:"evaluationId"`
	}
	if err := json.Unmarshal(feedbackEnv.Data, &feedbackResult); err != nil {
		t.Fatalf("decode feedback data: %v", err)
	}
	if feedbackResult.ReviewID == "" || feedbackResult.EvaluationID == "" {
		t.Fatal("expected review and evaluation ids")
	}

	details := fetchDetails(t, client, ts.URL, token, employeeID)
	if details.Profile.AverageRating != 88 {
		t.Fatalf("expected average rating 88, got %d", details.Profile.AverageRating)
	}
	if details.Profile.Productivity != 90 {
		t.Fatalf("expected productivity 90, got %d", details.Profile.Productivity)
	}
	if details.Profile.Teamwork != 0 {
		t.Fatalf("expected omitted teamwork to stay 0, got %d", details.Profile.Teamwork)
	}
	if len(details.Reviews) != 1 || details.Reviews[0].Reviewer != "Test Manager" {
		t.Fatalf("expected one review by Test Manager, got %+v", details.Reviews)
	}

	topResp := doRequest(t, client, http.MethodGet, ts.URL+"/api/managers/"+managerID+"/top-employees", token, nil)
	if topResp.StatusCode != http.StatusOK {
		t.Fatalf("expected top employees 200, got %d", topResp.StatusCode)
	}
	var topEnv envelope
	if err := json.NewDecoder(topResp.Body).Decode(&topEnv); err != nil {
		t.Fatalf("decode top employees: %v", err)
	}
	topResp.Body.Close()
	var ranked []struct {
		ID              string `json:"id"`
		CalculatedScore int    `json:"calculatedScore"`
	}
	if err := json.Unmarshal(topEnv.Data, &ranked); err != nil {
		t.Fatalf("decode ranked list: %v", err)
	}
	found := false
	for _, entry := range ranked {
		if entry.ID == employeeID {
			found = true
		}
	}
	if !found {
		t.Fatal("expected the reviewed employee in the top list")
	}

	employeeToken, _ := login(t, client, ts.URL, employeeEmail, "Str0ngpass!", "employee")
	forbidden := doRequest(t, client, http.MethodPost, ts.URL+"/api/managers/feedback", employeeToken, map[string]any{
		"employeeId": employeeID,
		"managerId":  managerID,
		"period":     "Q3 2026",
		"score":      10,
		"summary":    "should not land",
	})
	if forbidden.StatusCode != http.StatusForbidden {
		t.Fatalf("expected employee feedback attempt 403, got %d", forbidden.StatusCode)
	}
	forbidden.Body.Close()

	deleteResp := doRequest(t, client, http.MethodDelete, ts.URL+"/api/employees/"+employeeID, token, nil)
	if deleteResp.StatusCode != http.StatusOK {
		t.Fatalf("expected delete 200, got %d", deleteResp.StatusCode)
	}
	deleteResp.Body.Close()

	goneResp := doRequest(t, client, http.MethodGet, ts.URL+"/api/employees/"+employeeID, token, nil)
	if goneResp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected deleted employee 404, got %d", goneResp.StatusCode)
	}
	goneResp.Body.Close()
}

func TestAnonymousAccessRejected(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	app, err := server.New(context.Background(), testConfig(dbURL))
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	resp := doRequest(t, client, http.MethodGet, ts.URL+"/api/employees", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected anonymous list 401, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doRequest(t, client, http.MethodGet, ts.URL+"/api/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected health 200, got %d", resp.StatusCode)
	}
	var health map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("decode health response: %v", err)
	}
	resp.Body.Close()
	if health["status"] != "ok" {
		t.Fatalf("expected bare status ok, got %+v", health)
	}
	if _, wrapped := health["success"]; wrapped {
		t.Fatal("health payload must not be enveloped")
	}
	if timestamp, _ := health["timestamp"].(string); timestamp == "" {
		t.Fatal("expected health timestamp")
	}
}

func TestTaskLifecycle(t *testing.T) {
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

	employeeEmail := fmt.Sprintf("tasks-%d@example.com", time.Now().UnixNano())
	createResp := doRequest(t, client, http.MethodPost, ts.URL+"/api/employees", token, map[string]any{
		"name":  "Task Owner",
		"email": employeeEmail,
	})
	if createResp.StatusCode != http.StatusCreated {
		t.Fatalf("expected employee create 201, got %d", createResp.StatusCode)
	}
	var createEnv envelope
	if err := json.NewDecoder(createResp.Body).Decode(&createEnv); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	createResp.Body.Close()
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(createEnv.Data, &created); err != nil {
		t.Fatalf("decode created id: %v", err)
	}

	taskResp := doRequest(t, client, http.MethodPost, ts.URL+"/api/employees/"+created.ID+"/tasks", token, map[string]any{
		"description": "Prepare quarterly summary",
	})
	if taskResp.StatusCode != http.StatusCreated {
		t.Fatalf("expected task create 201, got %d", taskResp.StatusCode)
	}
	var taskEnv envelope
	if err := json.NewDecoder(taskResp.Body).Decode(&taskEnv); err != nil {
		t.Fatalf("decode task response: %v", err)
	}
	taskResp.Body.Close()
	var task struct {
		ID        string `json:"id"`
		Completed bool   `json:"completed"`
	}
	if err := json.Unmarshal(taskEnv.Data, &task); err != nil {
		t.Fatalf("decode task: %v", err)
	}
	if task.Completed {
		t.Fatal("expected new task to start incomplete")
	}

	doneResp := doRequest(t, client, http.MethodPatch, ts.URL+"/api/employees/"+created.ID+"/tasks/"+task.ID, token, map[string]any{
		"completed": true,
	})
	if doneResp.StatusCode != http.StatusOK {
		t.Fatalf("expected task update 200, got %d", doneResp.StatusCode)
	}
	doneResp.Body.Close()

	missingResp := doRequest(t, client, http.MethodPatch, ts.URL+"/api/employees/"+created.ID+"/tasks/"+task.ID, token, map[string]any{})
	if missingResp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected missing completed flag 400, got %d", missingResp.StatusCode)
	}
	missingResp.Body.Close()
}

func login(t *testing.T, client *http.Client, baseURL, email, password, role string) (string, string) {
	t.Helper()

	resp := doRequest(t, client, http.MethodPost, baseURL+"/api/auth/login", "", map[string]any{
		"username": email,
		"password": password,
		"role":     role,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected login 200, got %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if env.Token == "" {
		t.Fatal("expected login token")
	}
	var user struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.User, &user); err != nil {
		t.Fatalf("decode login user: %v", err)
	}
	return env.Token, user.ID
}

func register(t *testing.T, client *http.Client, baseURL string, payload map[string]any) string {
	t.Helper()

	resp := doRequest(t, client, http.MethodPost, baseURL+"/api/auth/register", "", payload)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected register 201, got %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	var data struct {
		UserID string `json:"userId"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode register data: %v", err)
	}
	if data.UserID == "" {
		t.Fatal("expected registered user id")
	}
	return data.UserID
}

type detailsPayload struct {
	Profile struct {
		AverageRating int `json:"averageRating"`
		Productivity  int `json:"productivity"`
		Teamwork      int `json:"teamwork"`
	} `json:"profile"`
	Reviews []struct {
		Reviewer string `json:"reviewer"`
		Score    int    `json:"score"`
	} `json:"reviews"`
}

func fetchDetails(t *testing.T, client *http.Client, baseURL, token, employeeID string) detailsPayload {
	t.Helper()

	resp := doRequest(t, client, http.MethodGet, baseURL+"/api/employees/"+employeeID, token, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected details 200, got %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode details response: %v", err)
	}
	var details detailsPayload
	if err := json.Unmarshal(env.Data, &details); err != nil {
		t.Fatalf("decode details data: %v", err)
	}
	return details
}

func doRequest(t *testing.T, client *http.Client, method, url, token string, payload any) *http.Response {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(encoded)
	} else {
		body = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

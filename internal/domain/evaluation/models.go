package evaluation

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrManagerNotFound  = errors.New("manager not found")
)

// FeedbackInput is the full feedback submission: the periodic review plus
// the fine-grained evaluation record. The pointer fields carry
// "replace if provided, else keep" semantics for the rolling metrics.
type FeedbackInput struct {
	EmployeeID   string   `json:"employeeId"`
	ManagerID    string   `json:"managerId"`
	Period       string   `json:"period"`
	Score        *int     `json:"score"`
	Summary      string   `json:"summary"`
	Highlights   []string `json:"highlights"`
	Productivity *int     `json:"productivity"`
	Teamwork     *int     `json:"teamwork"`
	Creativity   *int     `json:"creativity"`
	Accuracy     *int     `json:"accuracy"`
	Notes        *string  `json:"notes"`
}

type FeedbackResult struct {
	ReviewID     string `json:"reviewId"`
	EvaluationID string `json:"evaluationId"`
}

// EvaluationInput records a standalone evaluation without a review or any
// metric update.
type EvaluationInput struct {
	EmployeeID   string  `json:"employeeId"`
	ManagerID    string  `json:"managerId"`
	Category     string  `json:"category"`
	Productivity *int    `json:"productivity"`
	Teamwork     *int    `json:"teamwork"`
	Creativity   *int    `json:"creativity"`
	Accuracy     *int    `json:"accuracy"`
	Notes        *string `json:"notes"`
}

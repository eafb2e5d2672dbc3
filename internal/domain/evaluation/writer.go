package evaluation

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Writer struct {
	DB *pgxpool.Pool
}

func NewWriter(db *pgxpool.Pool) *Writer {
	return &Writer{DB: db}
}

// SubmitFeedback performs the three-step feedback write atomically:
// insert the review, insert the evaluation, then fold the provided
// metrics into the employee row. The reviewer name is captured at insert
// time; renaming a manager later does not rewrite past reviews.
//
// The COALESCE update keeps existing productivity/teamwork/creativity
// values when the submission omits them, while average_rating is always
// overwritten with the review score. Concurrent submissions for the same
// employee resolve last-write-wins.
func (w *Writer) SubmitFeedback(ctx context.Context, input FeedbackInput) (FeedbackResult, error) {
	highlights := input.Highlights
	if highlights == nil {
		highlights = []string{}
	}
	highlightsJSON, err := json.Marshal(highlights)
	if err != nil {
		return FeedbackResult{}, err
	}

	tx, err := w.DB.Begin(ctx)
	if err != nil {
		return FeedbackResult{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var reviewerName string
	err = tx.QueryRow(ctx, "SELECT name FROM users WHERE id = $1 AND role = 'manager'", input.ManagerID).Scan(&reviewerName)
	if errors.Is(err, pgx.ErrNoRows) {
		return FeedbackResult{}, ErrManagerNotFound
	}
	if err != nil {
		return FeedbackResult{}, err
	}

	var result FeedbackResult
	if err := tx.QueryRow(ctx, `
    INSERT INTO reviews (employee_id, period, score, reviewer, summary, highlights)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id
  `, input.EmployeeID, input.Period, *input.Score, reviewerName, input.Summary, highlightsJSON).Scan(&result.ReviewID); err != nil {
		return FeedbackResult{}, mapForeignKey(err)
	}

	if err := tx.QueryRow(ctx, `
    INSERT INTO evaluations (employee_id, manager_id, category, productivity, teamwork, creativity, accuracy, notes)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING id
  `, input.EmployeeID, input.ManagerID, input.Period, input.Productivity, input.Teamwork,
		input.Creativity, input.Accuracy, input.Notes).Scan(&result.EvaluationID); err != nil {
		return FeedbackResult{}, mapForeignKey(err)
	}

	tag, err := tx.Exec(ctx, `
    UPDATE employees
    SET productivity = COALESCE($1, productivity),
        teamwork = COALESCE($2, teamwork),
        creativity = COALESCE($3, creativity),
        average_rating = $4
    WHERE user_id = $5
  `, input.Productivity, input.Teamwork, input.Creativity, *input.Score, input.EmployeeID)
	if err != nil {
		return FeedbackResult{}, err
	}
	if tag.RowsAffected() == 0 {
		return FeedbackResult{}, ErrEmployeeNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return FeedbackResult{}, err
	}
	return result, nil
}

// Create inserts a lone evaluation row; no review, no metric update.
func (w *Writer) Create(ctx context.Context, input EvaluationInput) (string, error) {
	category := input.Category
	if category == "" {
		category = "General"
	}

	var id string
	err := w.DB.QueryRow(ctx, `
    INSERT INTO evaluations (employee_id, manager_id, category, productivity, teamwork, creativity, accuracy, notes)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING id
  `, input.EmployeeID, input.ManagerID, category, input.Productivity, input.Teamwork,
		input.Creativity, input.Accuracy, input.Notes).Scan(&id)
	if err != nil {
		return "", mapForeignKey(err)
	}
	return id, nil
}

func mapForeignKey(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return ErrEmployeeNotFound
	}
	return err
}

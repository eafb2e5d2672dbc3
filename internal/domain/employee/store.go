package employee

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"evalx/internal/domain/identity"
)

var (
	ErrNotFound   = errors.New("employee not found")
	ErrEmailTaken = identity.ErrEmailTaken
)

// defaultPasswordHash is the bcrypt hash of the well-known starter
// password handed to employees created by a manager; they are expected to
// change it on first login.
const defaultPasswordHash = "$2b$10$UjfwjjB6E0Jh3lBhfvAvXuumy48eLTMu8qsKIwSTqBuLtMM597G9."

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT u.id, u.name, u.email, e.phone, u.title, u.department, e.address, e.working_status,
           e.productivity, e.teamwork, e.creativity, u.avatar
    FROM users u
    JOIN employees e ON e.user_id = u.id
    ORDER BY u.name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []Summary{}
	for rows.Next() {
		var emp Summary
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Email, &emp.Phone, &emp.Title, &emp.Department,
			&emp.Address, &emp.WorkingStatus, &emp.Productivity, &emp.Teamwork, &emp.Creativity, &emp.Avatar); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *Store) GetProfile(ctx context.Context, employeeID string) (Profile, error) {
	var profile Profile
	err := s.DB.QueryRow(ctx, `
    SELECT u.id, u.name, u.title, u.email, e.phone, e.address, u.department, e.working_status, u.avatar,
           e.years_experience, e.projects_completed, e.average_rating,
           e.productivity, e.teamwork, e.creativity,
           m.name AS manager_name
    FROM users u
    JOIN employees e ON e.user_id = u.id
    LEFT JOIN users m ON m.id = e.manager_id
    WHERE u.id = $1
  `, employeeID).Scan(&profile.ID, &profile.Name, &profile.Title, &profile.Email, &profile.Phone,
		&profile.Address, &profile.Department, &profile.WorkingStatus, &profile.Avatar,
		&profile.YearsExperience, &profile.ProjectsCompleted, &profile.AverageRating,
		&profile.Productivity, &profile.Teamwork, &profile.Creativity, &profile.ManagerName)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return profile, err
}

// GetDetails assembles the full dashboard aggregate for one employee.
func (s *Store) GetDetails(ctx context.Context, employeeID string) (Details, error) {
	profile, err := s.GetProfile(ctx, employeeID)
	if err != nil {
		return Details{}, err
	}

	details := Details{Profile: profile}
	if details.Achievements, err = s.listAchievements(ctx, employeeID); err != nil {
		return Details{}, err
	}
	if details.Skills, err = s.listSkills(ctx, employeeID); err != nil {
		return Details{}, err
	}
	if details.Goals, err = s.listGoals(ctx, employeeID); err != nil {
		return Details{}, err
	}
	if details.Reviews, err = s.listReviews(ctx, employeeID); err != nil {
		return Details{}, err
	}
	if details.Tasks, err = s.listTasks(ctx, employeeID, 0); err != nil {
		return Details{}, err
	}
	if details.Notifications, err = s.listNotifications(ctx, employeeID); err != nil {
		return Details{}, err
	}
	return details, nil
}

func (s *Store) GetOverview(ctx context.Context, employeeID string) (Overview, error) {
	var overview Overview
	err := s.DB.QueryRow(ctx, `
    SELECT u.id, u.name, u.title, u.avatar, e.productivity, e.teamwork, e.creativity
    FROM users u
    JOIN employees e ON e.user_id = u.id
    WHERE u.id = $1
  `, employeeID).Scan(&overview.Profile.ID, &overview.Profile.Name, &overview.Profile.Title,
		&overview.Profile.Avatar, &overview.Profile.Productivity, &overview.Profile.Teamwork, &overview.Profile.Creativity)
	if errors.Is(err, pgx.ErrNoRows) {
		return Overview{}, ErrNotFound
	}
	if err != nil {
		return Overview{}, err
	}

	tasks, err := s.listTasks(ctx, employeeID, 5)
	if err != nil {
		return Overview{}, err
	}
	overview.RecentTasks = make([]OverviewTask, 0, len(tasks))
	for _, task := range tasks {
		overview.RecentTasks = append(overview.RecentTasks, OverviewTask{ID: task.ID, Description: task.Description, Completed: task.Completed})
	}

	var latest OverviewReview
	err = s.DB.QueryRow(ctx, `
    SELECT id, score, period
    FROM reviews
    WHERE employee_id = $1
    ORDER BY created_at DESC
    LIMIT 1
  `, employeeID).Scan(&latest.ID, &latest.Score, &latest.Period)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		overview.LatestReview = nil
	case err != nil:
		return Overview{}, err
	default:
		overview.LatestReview = &latest
	}
	return overview, nil
}

// Create provisions an account-backed employee with zeroed metrics and the
// shared starter password.
func (s *Store) Create(ctx context.Context, input CreateInput) (string, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id string
	if err := tx.QueryRow(ctx, `
    INSERT INTO users (name, email, password_hash, role, title, avatar, department)
    VALUES ($1, $2, $3, 'employee', $4, $5, $6)
    RETURNING id
  `, input.Name, input.Email, defaultPasswordHash, input.Title, identity.DefaultAvatar, input.Department).Scan(&id); err != nil {
		return "", mapUniqueViolation(err)
	}

	if _, err := tx.Exec(ctx, `
    INSERT INTO employees (user_id, manager_id, phone, address, working_status,
                           years_experience, projects_completed, average_rating, productivity, teamwork, creativity)
    VALUES ($1, $2, $3, $4, $5, 0, 0, 0, 0, 0, 0)
  `, id, input.ManagerID, input.Phone, input.Address, input.WorkingStatus); err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, employeeID string, input UpdateInput) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
    UPDATE users
    SET name = $1, email = $2, title = $3, department = $4
    WHERE id = $5 AND role = 'employee'
  `, input.Name, input.Email, input.Title, input.Department, employeeID)
	if err != nil {
		return mapUniqueViolation(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `
    UPDATE employees
    SET phone = $1, address = $2, working_status = $3
    WHERE user_id = $4
  `, input.Phone, input.Address, input.WorkingStatus, employeeID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Delete removes the employee and every row scoped to it. The cleanup is
// an explicit statement sequence inside one transaction rather than a
// DB-level cascade.
func (s *Store) Delete(ctx context.Context, employeeID string) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	childTables := []string{"tasks", "notifications", "reviews", "goals", "skills", "achievements", "evaluations"}
	for _, table := range childTables {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table+" WHERE employee_id = $1", employeeID); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, "DELETE FROM employees WHERE user_id = $1", employeeID); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, "DELETE FROM users WHERE id = $1 AND role = 'employee'", employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

func (s *Store) CreateTask(ctx context.Context, employeeID, description string) (Task, error) {
	var task Task
	err := s.DB.QueryRow(ctx, `
    INSERT INTO tasks (employee_id, description)
    VALUES ($1, $2)
    RETURNING id, description, completed, created_at
  `, employeeID, description).Scan(&task.ID, &task.Description, &task.Completed, &task.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return task, nil
}

func (s *Store) SetTaskCompleted(ctx context.Context, employeeID, taskID string, completed bool) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE tasks SET completed = $1 WHERE id = $2 AND employee_id = $3
  `, completed, taskID, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) listAchievements(ctx context.Context, employeeID string) ([]Achievement, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, title, description, badge_type, icon
    FROM achievements
    WHERE employee_id = $1
    ORDER BY created_at
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	achievements := []Achievement{}
	for rows.Next() {
		var item Achievement
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.BadgeType, &item.Icon); err != nil {
			return nil, err
		}
		achievements = append(achievements, item)
	}
	return achievements, rows.Err()
}

func (s *Store) listSkills(ctx context.Context, employeeID string) ([]Skill, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, skill, proficiency
    FROM skills
    WHERE employee_id = $1
    ORDER BY proficiency DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := []Skill{}
	for rows.Next() {
		var item Skill
		if err := rows.Scan(&item.ID, &item.Skill, &item.Proficiency); err != nil {
			return nil, err
		}
		skills = append(skills, item)
	}
	return skills, rows.Err()
}

func (s *Store) listGoals(ctx context.Context, employeeID string) ([]Goal, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, title, description, status, progress, deadline, completed_on
    FROM goals
    WHERE employee_id = $1
    ORDER BY deadline
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []Goal{}
	for rows.Next() {
		var item Goal
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Status, &item.Progress, &item.Deadline, &item.CompletedOn); err != nil {
			return nil, err
		}
		goals = append(goals, item)
	}
	return goals, rows.Err()
}

func (s *Store) listReviews(ctx context.Context, employeeID string) ([]Review, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, period, reviewer, score, summary, highlights
    FROM reviews
    WHERE employee_id = $1
    ORDER BY created_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var item Review
		var highlightsJSON []byte
		if err := rows.Scan(&item.ID, &item.Period, &item.Reviewer, &item.Score, &item.Summary, &highlightsJSON); err != nil {
			return nil, err
		}
		item.Highlights = []string{}
		if len(highlightsJSON) > 0 {
			if err := json.Unmarshal(highlightsJSON, &item.Highlights); err != nil {
				item.Highlights = []string{}
			}
		}
		reviews = append(reviews, item)
	}
	return reviews, rows.Err()
}

func (s *Store) listTasks(ctx context.Context, employeeID string, limit int) ([]Task, error) {
	query := `
    SELECT id, description, completed, created_at
    FROM tasks
    WHERE employee_id = $1
    ORDER BY created_at DESC
  `
	args := []any{employeeID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		var item Task
		if err := rows.Scan(&item.ID, &item.Description, &item.Completed, &item.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, item)
	}
	return tasks, rows.Err()
}

func (s *Store) listNotifications(ctx context.Context, employeeID string) ([]Notification, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, title, body, icon, created_at
    FROM notifications
    WHERE employee_id = $1
    ORDER BY created_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []Notification{}
	for rows.Next() {
		var item Notification
		if err := rows.Scan(&item.ID, &item.Title, &item.Body, &item.Icon, &item.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, item)
	}
	return notifications, rows.Err()
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrEmailTaken
	}
	return err
}

package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"evalx/internal/domain/auth"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// FindCredential looks up a login candidate by email and role. Role is a
// column on the single users table, so one query covers both account kinds.
func (s *Store) FindCredential(ctx context.Context, email, role string) (Credential, error) {
	var out Credential
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, email, role, title, avatar, department, password_hash
    FROM users
    WHERE email = $1 AND role = $2
  `, email, role).Scan(&out.ID, &out.Name, &out.Email, &out.Role, &out.Title, &out.Avatar, &out.Department, &out.PasswordHash)
	return out, err
}

// GetAccount re-reads fresh profile data for an already-verified token.
func (s *Store) GetAccount(ctx context.Context, userID string) (Account, error) {
	var out Account
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, email, role, title, avatar, department
    FROM users
    WHERE id = $1
  `, userID).Scan(&out.ID, &out.Name, &out.Email, &out.Role, &out.Title, &out.Avatar, &out.Department)
	return out, err
}

func (s *Store) ListManagers(ctx context.Context) ([]ManagerRef, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT u.id, u.name, m.department
    FROM users u
    JOIN managers m ON m.user_id = u.id
    ORDER BY u.name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	managers := []ManagerRef{}
	for rows.Next() {
		var ref ManagerRef
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Department); err != nil {
			return nil, err
		}
		managers = append(managers, ref)
	}
	return managers, rows.Err()
}

// RegisterManager creates the users row plus the manager extension row in
// one transaction. The unique index on users.email enforces global email
// uniqueness; a violation surfaces as ErrEmailTaken.
func (s *Store) RegisterManager(ctx context.Context, input RegisterManagerInput) (string, error) {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return "", err
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id string
	if err := tx.QueryRow(ctx, `
    INSERT INTO users (name, email, password_hash, role, title, avatar, department)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING id
  `, input.Name, input.Email, hash, auth.RoleManager, input.Title, avatarOrDefault(input.Avatar), input.Department).Scan(&id); err != nil {
		return "", mapUniqueViolation(err)
	}

	if _, err := tx.Exec(ctx, "INSERT INTO managers (user_id, department) VALUES ($1, $2)", id, input.Department); err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

// RegisterEmployee mirrors RegisterManager and additionally verifies the
// referenced manager exists before writing anything.
func (s *Store) RegisterEmployee(ctx context.Context, input RegisterEmployeeInput) (string, error) {
	exists, err := s.managerExists(ctx, input.ManagerID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrManagerNotFound
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return "", err
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id string
	if err := tx.QueryRow(ctx, `
    INSERT INTO users (name, email, password_hash, role, title, avatar)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id
  `, input.Name, input.Email, hash, auth.RoleEmployee, input.Title, avatarOrDefault(input.Avatar)).Scan(&id); err != nil {
		return "", mapUniqueViolation(err)
	}

	if _, err := tx.Exec(ctx, `
    INSERT INTO employees (user_id, manager_id, years_experience, projects_completed, average_rating, productivity, teamwork, creativity)
    VALUES ($1, $2, 0, 0, 0, 0, 0, 0)
  `, id, input.ManagerID); err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) managerExists(ctx context.Context, managerID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM managers WHERE user_id = $1", managerID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func avatarOrDefault(avatar string) string {
	if avatar == "" {
		return DefaultAvatar
	}
	return avatar
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrEmailTaken
	}
	return err
}

// IsNotFound reports whether err is the driver's empty-result sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

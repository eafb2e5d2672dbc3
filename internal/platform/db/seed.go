package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"evalx/internal/domain/auth"
	"evalx/internal/platform/config"
)

// Seed provisions the demo manager account and baseline KPI rows. Every
// step is idempotent so repeated startups leave the data untouched.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedManagerEmail != "" && cfg.SeedManagerPassword != "" {
		if err := ensureManager(ctx, pool, cfg.SeedManagerName, cfg.SeedManagerEmail, cfg.SeedManagerPassword, cfg.SeedManagerDept); err != nil {
			return err
		}
	}
	return ensureKPIs(ctx, pool)
}

func ensureManager(ctx context.Context, pool *pgxpool.Pool, name, email, password, department string) error {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	if err := pool.QueryRow(ctx, `
    INSERT INTO users (name, email, password_hash, role, title, department)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id
  `, name, email, hash, auth.RoleManager, "Engineering Manager", department).Scan(&id); err != nil {
		return err
	}

	_, err = pool.Exec(ctx, "INSERT INTO managers (user_id, department) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING", id, department)
	return err
}

func ensureKPIs(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM kpis").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	kpis := []struct {
		metric string
		value  string
	}{
		{"Team Productivity", "0%"},
		{"Reviews Completed", "0"},
		{"Goals On Track", "0"},
		{"Average Rating", "0"},
	}
	for _, kpi := range kpis {
		if _, err := pool.Exec(ctx, "INSERT INTO kpis (metric, value) VALUES ($1, $2)", kpi.metric, kpi.value); err != nil {
			return err
		}
	}
	return nil
}

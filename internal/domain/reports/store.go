package reports

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListKPIs(ctx context.Context) ([]KPI, error) {
	rows, err := s.DB.Query(ctx, "SELECT metric, value FROM kpis ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	kpis := []KPI{}
	for rows.Next() {
		var kpi KPI
		if err := rows.Scan(&kpi.Metric, &kpi.Value); err != nil {
			return nil, err
		}
		kpis = append(kpis, kpi)
	}
	return kpis, rows.Err()
}

func (s *Store) ListLeaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT employee_name, rank_label
    FROM leaderboard
    ORDER BY rank_position ASC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []LeaderboardEntry{}
	for rows.Next() {
		var entry LeaderboardEntry
		if err := rows.Scan(&entry.Name, &entry.RankLabel); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// BuildExport loads the snapshot backing a report download.
func (s *Store) BuildExport(ctx context.Context) (Export, error) {
	kpis, err := s.ListKPIs(ctx)
	if err != nil {
		return Export{}, err
	}
	leaderboard, err := s.ListLeaderboard(ctx)
	if err != nil {
		return Export{}, err
	}
	return Export{KPIs: kpis, Leaderboard: leaderboard}, nil
}

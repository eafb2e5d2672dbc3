package manager

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

func (s *Store) ListTeam(ctx context.Context, managerID string) ([]TeamMember, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT u.id, u.name, u.title, u.avatar, e.productivity, e.teamwork, e.creativity
    FROM users u
    JOIN employees e ON e.user_id = u.id
    WHERE e.manager_id = $1
    ORDER BY u.name
  `, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	team := []TeamMember{}
	for rows.Next() {
		var member TeamMember
		if err := rows.Scan(&member.ID, &member.Name, &member.Title, &member.Avatar,
			&member.Productivity, &member.Teamwork, &member.Creativity); err != nil {
			return nil, err
		}
		team = append(team, member)
	}
	return team, rows.Err()
}

func (s *Store) GetCharts(ctx context.Context, managerID string) (Charts, error) {
	charts := Charts{
		TeamScores:        []TeamScore{},
		SkillDistribution: []ChartPoint{},
		RadarMetrics:      []ChartPoint{},
	}

	rows, err := s.DB.Query(ctx, `
    SELECT employee_name, score FROM team_scores WHERE manager_id = $1 ORDER BY score DESC
  `, managerID)
	if err != nil {
		return Charts{}, err
	}
	for rows.Next() {
		var score TeamScore
		if err := rows.Scan(&score.Label, &score.Score); err != nil {
			rows.Close()
			return Charts{}, err
		}
		charts.TeamScores = append(charts.TeamScores, score)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Charts{}, err
	}

	if charts.SkillDistribution, err = s.chartPoints(ctx, "SELECT label, value FROM skill_distribution WHERE manager_id = $1", managerID); err != nil {
		return Charts{}, err
	}
	if charts.RadarMetrics, err = s.chartPoints(ctx, "SELECT metric, value FROM radar_metrics WHERE manager_id = $1", managerID); err != nil {
		return Charts{}, err
	}
	return charts, nil
}

func (s *Store) chartPoints(ctx context.Context, query, managerID string) ([]ChartPoint, error) {
	rows, err := s.DB.Query(ctx, query, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := []ChartPoint{}
	for rows.Next() {
		var point ChartPoint
		if err := rows.Scan(&point.Label, &point.Value); err != nil {
			return nil, err
		}
		points = append(points, point)
	}
	return points, rows.Err()
}

func (s *Store) ListTeamGoals(ctx context.Context, managerID string) ([]TeamGoal, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT g.id, g.title, g.description, g.status, g.progress, g.deadline, u.name
    FROM goals g
    JOIN employees e ON e.user_id = g.employee_id
    JOIN users u ON u.id = g.employee_id
    WHERE e.manager_id = $1
    ORDER BY g.deadline ASC
  `, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []TeamGoal{}
	for rows.Next() {
		var goal TeamGoal
		if err := rows.Scan(&goal.ID, &goal.Title, &goal.Description, &goal.Status, &goal.Progress, &goal.Deadline, &goal.EmployeeName); err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// ListRecentFeedback returns the latest ten reviews across the team.
func (s *Store) ListRecentFeedback(ctx context.Context, managerID string) ([]FeedbackItem, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT r.id, r.score, r.summary, u.name
    FROM reviews r
    JOIN employees e ON e.user_id = r.employee_id
    JOIN users u ON u.id = r.employee_id
    WHERE e.manager_id = $1
    ORDER BY r.created_at DESC
    LIMIT 10
  `, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feedback := []FeedbackItem{}
	for rows.Next() {
		var item FeedbackItem
		if err := rows.Scan(&item.ID, &item.Score, &item.Summary, &item.EmployeeName); err != nil {
			return nil, err
		}
		feedback = append(feedback, item)
	}
	return feedback, rows.Err()
}

// TopEmployees loads the team with rating fields and ranks it in code so
// the fallback-score rule lives in one testable place.
func (s *Store) TopEmployees(ctx context.Context, managerID string, limit int) ([]RankedEmployee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT u.id, u.name, u.title, u.avatar, e.average_rating, e.productivity, e.teamwork, e.creativity
    FROM users u
    JOIN employees e ON e.user_id = u.id
    WHERE e.manager_id = $1
  `, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []RankedEmployee{}
	for rows.Next() {
		var member RankedEmployee
		if err := rows.Scan(&member.ID, &member.Name, &member.Title, &member.Avatar,
			&member.AverageRating, &member.Productivity, &member.Teamwork, &member.Creativity); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return RankTopEmployees(members, limit), nil
}

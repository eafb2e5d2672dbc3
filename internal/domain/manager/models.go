package manager

import "time"

type TeamMember struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Title        string `json:"title"`
	Avatar       string `json:"avatar"`
	Productivity int    `json:"productivity"`
	Teamwork     int    `json:"teamwork"`
	Creativity   int    `json:"creativity"`
}

type ChartPoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

type TeamScore struct {
	Label string `json:"label"`
	Score int    `json:"score"`
}

type Charts struct {
	TeamScores        []TeamScore  `json:"teamScores"`
	SkillDistribution []ChartPoint `json:"skillDistribution"`
	RadarMetrics      []ChartPoint `json:"radarMetrics"`
}

type TeamGoal struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	Progress     int        `json:"progress"`
	Deadline     *time.Time `json:"deadline"`
	EmployeeName string     `json:"employeeName"`
}

type FeedbackItem struct {
	ID           string `json:"id"`
	Score        int    `json:"score"`
	Summary      string `json:"summary"`
	EmployeeName string `json:"employeeName"`
}

// RankedEmployee is a team member with the effective dashboard score:
// the stored average rating when present, otherwise the calculated
// fallback over the three rolling metrics.
type RankedEmployee struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Title           string `json:"title"`
	Avatar          string `json:"avatar"`
	Score           int    `json:"score"`
	Productivity    int    `json:"productivity"`
	Teamwork        int    `json:"teamwork"`
	Creativity      int    `json:"creativity"`
	AverageRating   int    `json:"-"`
	CalculatedScore int    `json:"calculatedScore"`
}

package employee

import "time"

type Summary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone"`
	Title         string  `json:"title"`
	Department    *string `json:"department"`
	Address       *string `json:"address"`
	WorkingStatus bool    `json:"workingStatus"`
	Productivity  int     `json:"productivity"`
	Teamwork      int     `json:"teamwork"`
	Creativity    int     `json:"creativity"`
	Avatar        string  `json:"avatar"`
}

type Profile struct {
	Summary
	YearsExperience   int     `json:"yearsExperience"`
	ProjectsCompleted int     `json:"projectsCompleted"`
	AverageRating     int     `json:"averageRating"`
	ManagerName       *string `json:"managerName"`
}

type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	BadgeType   string `json:"badgeType"`
	Icon        string `json:"icon"`
}

type Skill struct {
	ID          string `json:"id"`
	Skill       string `json:"skill"`
	Proficiency int    `json:"proficiency"`
}

type Goal struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	Deadline    *time.Time `json:"deadline"`
	CompletedOn *time.Time `json:"completedOn"`
}

type Review struct {
	ID         string   `json:"id"`
	Period     string   `json:"period"`
	Reviewer   string   `json:"reviewer"`
	Score      int      `json:"score"`
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
}

type Task struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
}

// Details is the full employee dashboard aggregate.
type Details struct {
	Profile       Profile        `json:"profile"`
	Achievements  []Achievement  `json:"achievements"`
	Skills        []Skill        `json:"skills"`
	Goals         []Goal         `json:"goals"`
	Reviews       []Review       `json:"reviews"`
	Tasks         []Task         `json:"tasks"`
	Notifications []Notification `json:"notifications"`
}

type OverviewProfile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Title        string `json:"title"`
	Avatar       string `json:"avatar"`
	Productivity int    `json:"productivity"`
	Teamwork     int    `json:"teamwork"`
	Creativity   int    `json:"creativity"`
}

type OverviewTask struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

type OverviewReview struct {
	ID     string `json:"id"`
	Score  int    `json:"score"`
	Period string `json:"period"`
}

type Overview struct {
	Profile      OverviewProfile `json:"profile"`
	RecentTasks  []OverviewTask  `json:"recentTasks"`
	LatestReview *OverviewReview `json:"latestReview"`
}

type CreateInput struct {
	Name          string
	Email         string
	Phone         *string
	Title         string
	Department    *string
	Address       *string
	WorkingStatus bool
	ManagerID     *string
}

type UpdateInput struct {
	Name          string
	Email         string
	Phone         *string
	Title         string
	Department    *string
	Address       *string
	WorkingStatus bool
}

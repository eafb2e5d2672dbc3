package reports

type KPI struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
}

type LeaderboardEntry struct {
	Name      string `json:"name"`
	RankLabel string `json:"rankLabel"`
}

const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// Export is the data snapshot rendered into a downloadable report.
type Export struct {
	KPIs        []KPI
	Leaderboard []LeaderboardEntry
}

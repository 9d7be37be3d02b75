package entities

// HealthMetric is one tracked value on the dashboard.
type HealthMetric struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
	Trend  string  `json:"trend"` // up, down, stable
	Target float64 `json:"target"`
}

// DashboardSnapshot is the mock per-user dashboard payload.
type DashboardSnapshot struct {
	UserID    string         `json:"user_id"`
	Metrics   []HealthMetric `json:"metrics"`
	Streak    int            `json:"streak_days"`
	NextSteps []string       `json:"next_steps"`
}

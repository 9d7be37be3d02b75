package services

import (
	"hash/fnv"

	"github.com/careloop/backend/internal/domain/entities"
)

// DashboardService produces the mock per-user health dashboard. Values are
// derived from the user ID so the same user sees stable numbers across
// requests without any persisted tracking data.
type DashboardService struct{}

// NewDashboardService creates a dashboard service.
func NewDashboardService() *DashboardService {
	return &DashboardService{}
}

// Snapshot builds the dashboard payload for one user.
func (s *DashboardService) Snapshot(userID string) *entities.DashboardSnapshot {
	seed := hashUserID(userID)

	return &entities.DashboardSnapshot{
		UserID: userID,
		Metrics: []entities.HealthMetric{
			{Name: "Steps", Value: float64(4000 + seed%6000), Unit: "steps", Trend: trendFor(seed), Target: 8000},
			{Name: "Sleep", Value: 5.5 + float64(seed%7)*0.5, Unit: "hours", Trend: trendFor(seed >> 2), Target: 8},
			{Name: "Water", Value: float64(3 + seed%6), Unit: "glasses", Trend: trendFor(seed >> 4), Target: 8},
			{Name: "Heart Rate", Value: float64(62 + seed%20), Unit: "bpm", Trend: "stable", Target: 70},
		},
		Streak: int(1 + seed%14),
		NextSteps: []string{
			"Log today's water intake",
			"Take a 10-minute walk after lunch",
			"Check in on your sleep schedule tonight",
		},
	}
}

func trendFor(seed uint32) string {
	switch seed % 3 {
	case 0:
		return "up"
	case 1:
		return "down"
	default:
		return "stable"
	}
}

func hashUserID(id string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return h.Sum32()
}

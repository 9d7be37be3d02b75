package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_SnapshotIsStablePerUser(t *testing.T) {
	svc := NewDashboardService()

	first := svc.Snapshot("user-1")
	second := svc.Snapshot("user-1")

	assert.Equal(t, first, second)
	assert.Equal(t, "user-1", first.UserID)
	require.NotEmpty(t, first.Metrics)
	assert.NotEmpty(t, first.NextSteps)
	assert.Greater(t, first.Streak, 0)
}

func TestDashboardService_MetricsAreWellFormed(t *testing.T) {
	svc := NewDashboardService()

	snapshot := svc.Snapshot("user-2")

	for _, m := range snapshot.Metrics {
		assert.NotEmpty(t, m.Name)
		assert.NotEmpty(t, m.Unit)
		assert.Contains(t, []string{"up", "down", "stable"}, m.Trend)
		assert.Greater(t, m.Target, 0.0)
	}
}

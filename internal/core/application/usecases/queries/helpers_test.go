package queries_test

import (
	"testing"

	"dropoff/internal/adapters/out/postgres/towerrepo"
	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/core/domain/model/tower"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ string, _ any) {
	// No-op for query tests
}

func ptr[T any](v T) *T {
	return &v
}

func seedTower(t *testing.T, db *gorm.DB, name string, lat, lng float64, endpoint string, racks int) {
	t.Helper()
	location, err := kernel.NewCoordinates(lat, lng)
	require.NoError(t, err)
	tw, err := tower.NewTower(name, location, endpoint, racks)
	require.NoError(t, err)
	require.NoError(t, towerrepo.NewGormTowerRepository(db, &mockAggregateTracker{}).Add(t.Context(), tw))
}

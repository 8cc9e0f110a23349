package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/flashdeck/internal/models"
)

// MockStatsStore is a mock implementation of session.StatsStore
type MockStatsStore struct {
	mock.Mock
}

func (m *MockStatsStore) Load(ctx context.Context) (models.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Stats), args.Error(1)
}

func (m *MockStatsStore) Save(ctx context.Context, snapshot models.Stats) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

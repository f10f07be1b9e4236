package testmocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/BaronguyenVinasu/riftcounter/internal/cache"
	"github.com/BaronguyenVinasu/riftcounter/internal/models"
	"github.com/BaronguyenVinasu/riftcounter/internal/services"
)

// MockAnalyzer implements handlers.Analyzer for testing
type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.AnalysisResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockRefresher implements handlers.Refresher for testing
type MockRefresher struct {
	mock.Mock
}

func (m *MockRefresher) Refresh(ctx context.Context, trigger string) (*services.RefreshResult, error) {
	args := m.Called(ctx, trigger)
	if res := args.Get(0); res != nil {
		return res.(*services.RefreshResult), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCacheStore implements handlers.CacheStore for testing
type MockCacheStore struct {
	mock.Mock
}

func (m *MockCacheStore) Stats(ctx context.Context) cache.Stats {
	args := m.Called(ctx)
	return args.Get(0).(cache.Stats)
}

func (m *MockCacheStore) InvalidateAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockHealthChecker implements handlers.HealthChecker for testing
type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

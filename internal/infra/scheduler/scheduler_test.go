package scheduler

import (
	"log/slog"
	"testing"

	"marketplace/config"
	mockUC "marketplace/internal/mocks/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

type nopLifecycle struct{}

func (nopLifecycle) Append(fx.Hook) {}

func newParams(t *testing.T, cfg *config.Config) Params {
	t.Helper()

	return Params{
		Lc:                  nopLifecycle{},
		Config:              cfg,
		SubscriptionUsecase: mockUC.NewMockSubscriptionUsecase(t),
		Logger:              slog.Default(),
	}
}

func TestNew_DisabledConfig(t *testing.T) {
	s, err := New(newParams(t, &config.Config{}))

	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestNew_RegistersSweep(t *testing.T) {
	cfg := &config.Config{
		Scheduler: &config.SchedulerConfig{Enabled: true, SubscriptionSweepSchedule: "@every 5m"},
	}

	s, err := New(newParams(t, cfg))

	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Len(t, s.sched.Entries(), 1)
}

func TestNew_BadScheduleFails(t *testing.T) {
	cfg := &config.Config{
		Scheduler: &config.SchedulerConfig{Enabled: true, SubscriptionSweepSchedule: "not a schedule"},
	}

	_, err := New(newParams(t, cfg))

	require.Error(t, err)
}

func TestNew_EmptyScheduleFallsBack(t *testing.T) {
	cfg := &config.Config{
		Scheduler: &config.SchedulerConfig{Enabled: true},
	}

	s, err := New(newParams(t, cfg))

	require.NoError(t, err)
	assert.Len(t, s.sched.Entries(), 1)
}

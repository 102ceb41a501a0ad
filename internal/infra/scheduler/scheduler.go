// Package scheduler runs the platform's periodic background jobs.
package scheduler

import (
	"context"
	"log/slog"

	"marketplace/config"
	"marketplace/internal/usecase"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

const defaultSweepSchedule = "@hourly"

// Scheduler owns the cron runner. Jobs are registered at construction and
// started/stopped through the fx lifecycle.
type Scheduler struct {
	sched  *cron.Cron
	logger *slog.Logger
}

// Params holds dependencies for the Scheduler, injected by Fx.
type Params struct {
	fx.In

	Lc                  fx.Lifecycle
	Config              *config.Config
	SubscriptionUsecase usecase.SubscriptionUsecase
	Logger              *slog.Logger
}

// New builds the scheduler and registers the subscription expiry sweep.
// When scheduling is disabled in config it returns a scheduler that never
// starts, so the rest of the graph stays unchanged.
func New(params Params) (*Scheduler, error) {
	s := &Scheduler{
		sched:  cron.New(cron.WithParser(cronParser)),
		logger: params.Logger,
	}

	enabled := params.Config.Scheduler != nil && params.Config.Scheduler.Enabled
	if !enabled {
		params.Logger.Info("Scheduler disabled")

		return s, nil
	}

	schedule := params.Config.Scheduler.SubscriptionSweepSchedule
	if schedule == "" {
		schedule = defaultSweepSchedule
	}

	_, err := s.sched.AddFunc(schedule, func() {
		s.runSubscriptionSweep(params.SubscriptionUsecase)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to register subscription sweep")
	}

	params.Lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			s.sched.Start()
			s.logger.Info("Scheduler started", slog.String("subscription_sweep", schedule))

			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopCtx := s.sched.Stop()
			select {
			case <-stopCtx.Done():
			case <-ctx.Done():
			}

			return nil
		},
	})

	return s, nil
}

func (s *Scheduler) runSubscriptionSweep(subscriptions usecase.SubscriptionUsecase) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Subscription sweep panicked", slog.Any("panic", r))
		}
	}()

	swept, err := subscriptions.SweepExpired(context.Background())
	if err != nil {
		s.logger.Error("Subscription sweep failed", slog.Any("error", err))

		return
	}

	s.logger.Debug("Subscription sweep finished", slog.Int64("deactivated", swept))
}

// Module provides the scheduler to the fx graph.
var Module = fx.Options(
	fx.Provide(New),
)

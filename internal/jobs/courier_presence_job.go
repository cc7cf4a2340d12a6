package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"foodorder/internal/core/application/usecases/commands"
)

// DefaultPresenceSchedule runs the presence sweep every minute.
const DefaultPresenceSchedule = "0 * * * * *"

const presenceRunTimeout = 30 * time.Second

// StaleCourierReleaser takes couriers offline when they stop reporting.
type StaleCourierReleaser interface {
	Handle(ctx context.Context, cmd commands.ReleaseStaleCouriersCommand) (int, error)
}

// CourierPresenceJob marks idle couriers unavailable once their last location
// report is older than the window. Couriers holding an order are left alone.
type CourierPresenceJob struct {
	handler  StaleCourierReleaser
	window   time.Duration
	schedule string
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewCourierPresenceJob creates the job. An empty schedule selects
// DefaultPresenceSchedule; schedules use the six-field form with seconds.
func NewCourierPresenceJob(
	handler StaleCourierReleaser,
	window time.Duration,
	schedule string,
	logger *slog.Logger,
) *CourierPresenceJob {
	if schedule == "" {
		schedule = DefaultPresenceSchedule
	}
	return &CourierPresenceJob{
		handler:  handler,
		window:   window,
		schedule: schedule,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "courier_presence_job"),
	}
}

// Start schedules the sweep.
func (j *CourierPresenceJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), presenceRunTimeout)
		defer cancel()
		j.Run(ctx)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Courier presence job started",
		slog.String("schedule", j.schedule), slog.Duration("window", j.window))
	return nil
}

// Run performs a single sweep.
func (j *CourierPresenceJob) Run(ctx context.Context) {
	cmd, err := commands.NewReleaseStaleCouriersCommand(j.now().Add(-j.window))
	if err != nil {
		j.logger.ErrorContext(ctx, "Courier presence job failed", "error", err)
		return
	}

	released, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Courier presence job failed", "error", err)
		return
	}
	if released > 0 {
		j.logger.InfoContext(ctx, "Stale couriers marked unavailable", slog.Int("count", released))
	}
}

// Stop stops the schedule and waits for a running sweep to finish.
func (j *CourierPresenceJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Courier presence job stopped")
}

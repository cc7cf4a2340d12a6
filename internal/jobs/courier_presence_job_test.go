package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foodorder/internal/core/application/usecases/commands"
)

type MockReleaser struct {
	mock.Mock
}

func (m *MockReleaser) Handle(ctx context.Context, cmd commands.ReleaseStaleCouriersCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCourierPresenceJob_RunUsesWindowCutoff(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	releaser := &MockReleaser{}
	releaser.On("Handle", ctx, mock.MatchedBy(func(cmd commands.ReleaseStaleCouriersCommand) bool {
		return cmd.Cutoff().Equal(now.Add(-15 * time.Minute))
	})).Return(2, nil).Once()

	job := NewCourierPresenceJob(releaser, 15*time.Minute, "", discardLogger())
	job.now = func() time.Time { return now }

	job.Run(ctx)

	releaser.AssertExpectations(t)
	assert.Equal(t, DefaultPresenceSchedule, job.schedule)
}

func TestCourierPresenceJob_RunSurvivesHandlerError(t *testing.T) {
	releaser := &MockReleaser{}
	releaser.On("Handle", mock.Anything, mock.Anything).Return(0, errors.New("db down")).Once()

	job := NewCourierPresenceJob(releaser, time.Minute, "", discardLogger())

	assert.NotPanics(t, func() { job.Run(context.Background()) })
	releaser.AssertExpectations(t)
}

func TestCourierPresenceJob_StartRejectsBadSchedule(t *testing.T) {
	job := NewCourierPresenceJob(&MockReleaser{}, time.Minute, "every minute", discardLogger())

	require.Error(t, job.Start())
}

func TestJobManager_ZeroWindowDisablesPresenceJob(t *testing.T) {
	releaser := &MockReleaser{}
	jm := NewJobManager(releaser, PresenceConfig{}, discardLogger())

	require.NoError(t, jm.StartAll())
	jm.StopAll()

	assert.Nil(t, jm.courierPresenceJob)
	releaser.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestJobManager_StartsAndStopsPresenceJob(t *testing.T) {
	jm := NewJobManager(&MockReleaser{}, PresenceConfig{Window: time.Minute, Schedule: "0 0 * * * *"}, discardLogger())

	require.NoError(t, jm.StartAll())
	require.NotNil(t, jm.courierPresenceJob)
	assert.Len(t, jm.courierPresenceJob.cron.Entries(), 1)
	jm.StopAll()
}

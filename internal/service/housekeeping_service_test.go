package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lesson-calendar-api/pkg/jobs"
)

func TestHousekeepingCutoff(t *testing.T) {
	queue := jobs.NewQueue("test", jobs.QueueConfig{})
	svc, err := NewHousekeepingService(newFakeAdjustmentRepo(), queue, HousekeepingConfig{Schedule: "0 3 * * *", RetentionDays: 30, Location: rome(t)}, nil, nil)
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Date(2025, 10, 13, 1, 0, 0, 0, rome(t)) }

	assert.Equal(t, "2025-09-13", svc.Cutoff())
}

func TestHousekeepingRejectsBadConfig(t *testing.T) {
	queue := jobs.NewQueue("test", jobs.QueueConfig{})
	_, err := NewHousekeepingService(newFakeAdjustmentRepo(), queue, HousekeepingConfig{Schedule: "every night", RetentionDays: 30}, nil, nil)
	assert.Error(t, err)
	_, err = NewHousekeepingService(newFakeAdjustmentRepo(), queue, HousekeepingConfig{Schedule: "0 3 * * *"}, nil, nil)
	assert.Error(t, err)
}

func TestHousekeepingTriggerRunsPurgeOnQueue(t *testing.T) {
	repo := newFakeAdjustmentRepo()
	metrics := NewMetricsService()
	queue := jobs.NewQueue("housekeeping", jobs.QueueConfig{Workers: 1, RetryDelay: time.Millisecond})
	svc, err := NewHousekeepingService(repo, queue, HousekeepingConfig{Schedule: "@daily", RetentionDays: 7}, metrics, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	queue.Start(ctx)
	defer queue.Stop()

	require.NoError(t, svc.Trigger())
	require.Eventually(t, func() bool { return queue.Stats().Succeeded == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{svc.Cutoff()}, repo.purged)
}

func TestHousekeepingStartStop(t *testing.T) {
	queue := jobs.NewQueue("housekeeping", jobs.QueueConfig{})
	svc, err := NewHousekeepingService(newFakeAdjustmentRepo(), queue, HousekeepingConfig{Schedule: "0 3 * * *", RetentionDays: 7}, nil, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Start())
	svc.Stop()
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/noah-isme/lesson-calendar-api/internal/models"
	"github.com/noah-isme/lesson-calendar-api/pkg/jobs"
)

// JobPurgeAdjustments is the queue job type removing expired adjustments.
const JobPurgeAdjustments = "adjustments.purge"

type adjustmentPurger interface {
	PurgeBefore(ctx context.Context, cutoff string) (models.PurgeResult, error)
}

// HousekeepingConfig schedules adjustment purges.
type HousekeepingConfig struct {
	Schedule      string
	RetentionDays int
	Location      *time.Location
}

// HousekeepingService periodically enqueues purges of adjustments older than
// the retention window and runs them on a job queue.
type HousekeepingService struct {
	repo      adjustmentPurger
	queue     *jobs.Queue
	scheduler *cron.Cron
	schedule  string
	retention int
	location  *time.Location
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewHousekeepingService validates the schedule and registers the purge job
// on queue.
func NewHousekeepingService(repo adjustmentPurger, queue *jobs.Queue, cfg HousekeepingConfig, metrics *MetricsService, logger *zap.Logger) (*HousekeepingService, error) {
	if cfg.RetentionDays <= 0 {
		return nil, fmt.Errorf("retention days must be positive, got %d", cfg.RetentionDays)
	}
	if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
		return nil, fmt.Errorf("parse housekeeping schedule %q: %w", cfg.Schedule, err)
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &HousekeepingService{
		repo:      repo,
		queue:     queue,
		scheduler: cron.New(cron.WithLocation(cfg.Location)),
		schedule:  cfg.Schedule,
		retention: cfg.RetentionDays,
		location:  cfg.Location,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
	queue.Register(JobPurgeAdjustments, s.handlePurge)
	return s, nil
}

// Start arms the cron schedule. The queue must already be running.
func (s *HousekeepingService) Start() error {
	if _, err := s.scheduler.AddFunc(s.schedule, func() {
		if err := s.Trigger(); err != nil {
			s.logger.Warn("failed to enqueue adjustment purge", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("schedule housekeeping: %w", err)
	}
	s.scheduler.Start()
	s.logger.Info("housekeeping scheduled", zap.String("schedule", s.schedule), zap.Int("retention_days", s.retention))
	return nil
}

// Stop halts the schedule and waits for a running trigger to finish.
func (s *HousekeepingService) Stop() {
	<-s.scheduler.Stop().Done()
}

// Trigger enqueues one purge run.
func (s *HousekeepingService) Trigger() error {
	return s.queue.Enqueue(jobs.Job{ID: uuid.NewString(), Type: JobPurgeAdjustments, Payload: s.Cutoff()})
}

// Cutoff is the first date kept: adjustments dated before it are purged.
func (s *HousekeepingService) Cutoff() string {
	now := s.now().In(s.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
	return today.AddDate(0, 0, -s.retention).Format(models.DateLayout)
}

// Purge deletes adjustments dated before cutoff.
func (s *HousekeepingService) Purge(ctx context.Context, cutoff string) (models.PurgeResult, error) {
	result, err := s.repo.PurgeBefore(ctx, cutoff)
	if err != nil {
		return result, err
	}
	s.metrics.RecordPurge(result.Absences, result.Makeups, result.ClassroomChanges)
	s.logger.Info("adjustments purged",
		zap.String("cutoff", cutoff),
		zap.Int64("absences", result.Absences),
		zap.Int64("makeups", result.Makeups),
		zap.Int64("classroom_changes", result.ClassroomChanges),
	)
	return result, nil
}

func (s *HousekeepingService) handlePurge(ctx context.Context, job jobs.Job) error {
	cutoff, ok := job.Payload.(string)
	if !ok || cutoff == "" {
		cutoff = s.Cutoff()
	}
	_, err := s.Purge(ctx, cutoff)
	return err
}

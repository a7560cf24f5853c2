package scheduler

import (
	"context"
	"time"

	"github.com/cobraflex/printercare/internal/domain/awards"
	"github.com/cobraflex/printercare/internal/domain/maintenance"
	"github.com/cobraflex/printercare/pkg/logger"
	"go.uber.org/zap"
)

type Scheduler struct {
	maintenanceService maintenance.Service
	awardsService      awards.Service
	logger             *logger.Logger
}

func NewScheduler(maintenanceService maintenance.Service, awardsService awards.Service, logger *logger.Logger) *Scheduler {
	return &Scheduler{
		maintenanceService: maintenanceService,
		awardsService:      awardsService,
		logger:             logger,
	}
}

func (s *Scheduler) Start() {
	// Run immediately at startup to catch cycles that elapsed while the server was down
	s.runResetTasks()

	// Calculate time until next midnight
	now := time.Now()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	timeUntilMidnight := nextMidnight.Sub(now)

	s.logger.Info("Maintenance scheduler initialized",
		zap.Time("current_time", now),
		zap.Time("next_run", nextMidnight),
		zap.Duration("time_until_next_run", timeUntilMidnight),
	)

	// Start the scheduler
	go s.runLoop(timeUntilMidnight, 24*time.Hour)
}

// runLoop sleeps until the first run is due, runs the sweep, then repeats at
// the given interval.
func (s *Scheduler) runLoop(initialDelay, interval time.Duration) {
	time.Sleep(initialDelay)
	s.runResetTasks()

	ticker := time.NewTicker(interval)
	for range ticker.C {
		s.runResetTasks()
	}
}

func (s *Scheduler) runResetTasks() {
	ctx := context.Background()
	startTime := time.Now()

	s.logger.Info("Starting daily maintenance reset tasks", zap.Time("start_time", startTime))

	// Reset completion flags for tasks whose maintenance cycle has elapsed
	resetCount, err := s.maintenanceService.ResetElapsedCycles(ctx)
	if err != nil {
		s.logger.Error("Failed to reset elapsed maintenance cycles",
			zap.Error(err),
		)
	} else {
		s.logger.Info("Successfully reset elapsed maintenance cycles",
			zap.Int64("reset_count", resetCount),
			zap.String("reset_criteria", "Tasks whose next due date has passed"),
		)
	}

	// Then zero out streaks for users who skipped a day
	streakResetCount, err := s.awardsService.ResetBrokenStreaks(ctx)
	if err != nil {
		s.logger.Error("Failed to reset broken streaks",
			zap.Error(err),
		)
	} else {
		s.logger.Info("Successfully processed broken streaks",
			zap.Int64("streak_reset_count", streakResetCount),
			zap.String("reset_criteria", "Users with no completions since yesterday"),
		)
	}

	s.logger.Info("Completed daily maintenance reset tasks",
		zap.Time("end_time", time.Now()),
		zap.Duration("duration", time.Since(startTime)),
	)
}

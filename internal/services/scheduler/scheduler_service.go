package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/moneyfornothin/taxchat/internal/services/summary"
)

// Service runs the periodic corpus summary refresh on a cron schedule.
type Service struct {
	summaryService *summary.Service
	cron           *cron.Cron
	logger         arbor.ILogger

	mu      sync.Mutex
	running bool
}

// NewService creates a scheduler driving the given summary service.
func NewService(summaryService *summary.Service, logger arbor.ILogger) *Service {
	return &Service{
		summaryService: summaryService,
		cron:           cron.New(),
		logger:         logger,
	}
}

// Start registers the summary refresh on the given cron expression and
// begins the scheduler. An empty expression defaults to every 30
// minutes.
func (s *Service) Start(cronExpr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if cronExpr == "" {
		cronExpr = "*/30 * * * *"
	}

	if _, err := s.cron.AddFunc(cronExpr, s.refreshSummary); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info().
		Str("cron_expr", cronExpr).
		Msg("Scheduler started")
	return nil
}

// Stop halts the scheduler, waiting for a running refresh to finish.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false

	s.logger.Info().Msg("Scheduler stopped")
}

func (s *Service) refreshSummary() {
	if err := s.summaryService.GenerateSummaryChunk(context.Background()); err != nil {
		s.logger.Warn().Err(err).Msg("Scheduled summary refresh failed")
		return
	}
	s.logger.Debug().Msg("Scheduled summary refresh completed")
}

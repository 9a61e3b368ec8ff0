// Package scheduler runs the in-process recurring invoice generation loop.
package scheduler

import (
	"context"
	"sync"
	"time"

	appfinance "github.com/bizkit/backend/internal/application/finance"
	"github.com/bizkit/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// InvoiceGenerator is the slice of the recurring invoice service the
// scheduler needs
type InvoiceGenerator interface {
	GenerateDueInvoices(ctx context.Context) (*appfinance.GenerationResult, error)
}

// RecurringInvoiceScheduler periodically runs the recurring invoice batch.
// Runs are serialized: when a tick fires while the previous run is still
// executing, the tick is skipped.
type RecurringInvoiceScheduler struct {
	generator InvoiceGenerator
	logger    *zap.Logger
	config    config.SchedulerConfig

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	runActive bool
}

// NewRecurringInvoiceScheduler creates a new scheduler
func NewRecurringInvoiceScheduler(
	generator InvoiceGenerator,
	logger *zap.Logger,
	cfg config.SchedulerConfig,
) *RecurringInvoiceScheduler {
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = time.Hour
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 10 * time.Minute
	}
	return &RecurringInvoiceScheduler{
		generator: generator,
		logger:    logger,
		config:    cfg,
	}
}

// Start starts the generation loop
func (s *RecurringInvoiceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("Recurring invoice scheduler is disabled")
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Recurring invoice scheduler started",
		zap.Duration("check_interval", s.config.CheckInterval),
		zap.Duration("run_timeout", s.config.RunTimeout),
	)

	return nil
}

// Stop gracefully stops the scheduler, waiting for an in-flight run to
// finish until ctx expires
func (s *RecurringInvoiceScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Recurring invoice scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Recurring invoice scheduler stop timed out")
		return ctx.Err()
	}
}

// TriggerImmediateRun runs one generation batch outside the ticker, used by
// the admin trigger endpoint. Returns ErrRunAlreadyInProgress when a run is
// already executing.
func (s *RecurringInvoiceScheduler) TriggerImmediateRun(ctx context.Context) (*appfinance.GenerationResult, error) {
	return s.executeRun(ctx)
}

// IsRunning returns whether the scheduler loop is active
func (s *RecurringInvoiceScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

func (s *RecurringInvoiceScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Recurring invoice loop stopping")
			return
		case <-ticker.C:
			if _, err := s.executeRun(ctx); err != nil && err != ErrRunAlreadyInProgress {
				s.logger.Error("Recurring invoice run failed", zap.Error(err))
			}
		}
	}
}

// executeRun performs one batch under the configured timeout. The runActive
// guard keeps a slow run from overlapping with the next tick.
func (s *RecurringInvoiceScheduler) executeRun(ctx context.Context) (*appfinance.GenerationResult, error) {
	s.mu.Lock()
	if s.runActive {
		s.mu.Unlock()
		s.logger.Warn("Skipping recurring invoice tick, previous run still active")
		return nil, ErrRunAlreadyInProgress
	}
	s.runActive = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.runActive = false
		s.mu.Unlock()
	}()

	runCtx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
	defer cancel()

	startTime := time.Now()
	result, err := s.generator.GenerateDueInvoices(runCtx)
	duration := time.Since(startTime)

	if err != nil {
		s.logger.Error("Recurring invoice generation failed",
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("Recurring invoice generation completed",
		zap.Duration("duration", duration),
		zap.Int("generated", result.Generated),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

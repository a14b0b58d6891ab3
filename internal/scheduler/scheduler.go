package scheduler

import (
	"context"
	"log/slog"
	"time"

	"repscan/internal/domain"
)

// Scanner defines the scan entry point consumed by the scheduler.
type Scanner interface {
	RunScan(ctx context.Context, accountID, purpose, customContext string) (*domain.ScanReport, error)
}

// QuotaGate is consulted before each scheduled scan. The scan pipeline
// itself never enforces quota.
type QuotaGate interface {
	HasQuota(ctx context.Context, accountID, tier string) (bool, error)
}

// Target is one monitored (account, purpose) pair to rescan periodically.
type Target struct {
	AccountID     string
	Purpose       string
	CustomContext string
	Tier          string
}

type Scheduler struct {
	scanner  Scanner
	quota    QuotaGate
	targets  []Target
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
}

func NewScheduler(scanner Scanner, quota QuotaGate, targets []Target, interval, timeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		scanner:  scanner,
		quota:    quota,
		targets:  targets,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval, "targets", len(s.targets))

	s.runAll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runAll(ctx)
		}
	}
}

func (s *Scheduler) runAll(ctx context.Context) {
	for _, target := range s.targets {
		if ctx.Err() != nil {
			return
		}
		s.runOne(ctx, target)
	}
}

func (s *Scheduler) runOne(ctx context.Context, target Target) {
	ok, err := s.quota.HasQuota(ctx, target.AccountID, target.Tier)
	if err != nil {
		s.logger.Error("quota check failed", "account_id", target.AccountID, "error", err)
		return
	}
	if !ok {
		s.logger.Warn("quota exhausted, skipping scan",
			"account_id", target.AccountID,
			"tier", target.Tier,
		)
		return
	}

	scanCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.scanner.RunScan(scanCtx, target.AccountID, target.Purpose, target.CustomContext); err != nil {
		s.logger.Error("scheduled scan failed",
			"account_id", target.AccountID,
			"purpose", target.Purpose,
			"error", err,
		)
	}
}

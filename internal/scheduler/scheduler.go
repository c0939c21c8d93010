// Package scheduler runs the engine's periodic jobs on cron schedules.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/segyhp/microfinance-engine/internal/config"
	"github.com/segyhp/microfinance-engine/internal/domain"
	customError "github.com/segyhp/microfinance-engine/pkg/errors"
)

// Portfolio is what the jobs read from.
type Portfolio interface {
	GetStats(ctx context.Context, asOf time.Time) (domain.DashboardStats, error)
	AgentSummaries(ctx context.Context) ([]domain.AgentSummary, error)
	ListLoans(ctx context.Context) ([]*domain.Loan, error)
	Reconcile(ctx context.Context, loanID uuid.UUID) (*domain.ReconciliationReport, error)
}

type Scheduler struct {
	cron      *cron.Cron
	portfolio Portfolio
	logger    *logrus.Logger
	location  *time.Location
	now       func() time.Time
}

func New(cfg *config.Config, portfolio Portfolio, logger *logrus.Logger) (*Scheduler, error) {
	location := cfg.GetLocation()

	s := &Scheduler{
		cron:      cron.New(cron.WithSeconds(), cron.WithLocation(location)),
		portfolio: portfolio,
		logger:    logger,
		location:  location,
		now:       time.Now,
	}

	if _, err := s.cron.AddFunc(cfg.Scheduler.StatsCron, func() {
		if err := s.ReportStats(context.Background()); err != nil {
			s.logger.WithError(err).Error("stats snapshot failed")
		}
	}); err != nil {
		return nil, err
	}

	if _, err := s.cron.AddFunc(cfg.Scheduler.AuditCron, func() {
		if _, err := s.AuditLedger(context.Background()); err != nil {
			s.logger.WithError(err).Error("ledger audit failed")
		}
	}); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"stats_cron": cfg.Scheduler.StatsCron,
		"audit_cron": cfg.Scheduler.AuditCron,
		"timezone":   location.String(),
	}).Info("cron jobs scheduled")

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop halts the cron and returns a context that is done once running jobs
// have finished.
func (s *Scheduler) Stop() context.Context {
	ctx := s.cron.Stop()
	s.logger.Info("scheduler stopped")
	return ctx
}

// ReportStats logs the dashboard snapshot and per-agent figures for the
// current day in the scheduler's timezone.
func (s *Scheduler) ReportStats(ctx context.Context) error {
	asOf := s.now().In(s.location)

	stats, err := s.portfolio.GetStats(ctx, asOf)
	if err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"as_of":                asOf.Format(time.DateOnly),
		"total_borrowers":      stats.TotalBorrowers,
		"active_loans":         stats.ActiveLoans,
		"total_disbursed":      stats.TotalDisbursed.StringFixed(2),
		"total_collected":      stats.TotalCollected.StringFixed(2),
		"today_collection":     stats.TodayCollection.StringFixed(2),
		"overdue_amount":       stats.OverdueAmount.StringFixed(2),
		"collection_rate":      stats.CollectionRate.StringFixed(2),
		"pending_installments": stats.PendingInstallments,
	}).Info("portfolio snapshot")

	summaries, err := s.portfolio.AgentSummaries(ctx)
	if err != nil {
		return err
	}
	for _, summary := range summaries {
		s.logger.WithFields(logrus.Fields{
			"agent":           summary.AgentName,
			"assigned_loans":  summary.AssignedLoansCount,
			"total_collected": summary.TotalCollected.StringFixed(2),
		}).Debug("agent snapshot")
	}

	return nil
}

// AuditLedger reconciles every loan and returns the numbers of the loans
// whose cached balance disagrees with their collections.
func (s *Scheduler) AuditLedger(ctx context.Context) ([]string, error) {
	loans, err := s.portfolio.ListLoans(ctx)
	if err != nil {
		return nil, err
	}

	var mismatched []string
	for _, loan := range loans {
		_, err := s.portfolio.Reconcile(ctx, loan.ID)
		switch {
		case err == nil:
		case errors.Is(err, customError.ErrLedgerMismatch):
			mismatched = append(mismatched, loan.LoanNumber)
		default:
			return mismatched, err
		}
	}

	entry := s.logger.WithFields(logrus.Fields{
		"loans_checked": len(loans),
		"mismatched":    len(mismatched),
	})
	if len(mismatched) > 0 {
		entry.WithField("loan_numbers", mismatched).Warn("ledger audit found mismatches")
	} else {
		entry.Info("ledger audit clean")
	}

	return mismatched, nil
}

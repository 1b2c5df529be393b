package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/yakshop/internal/config"
	"github.com/mamadbah2/yakshop/internal/domain/models"
)

const jobTimeout = 2 * time.Minute

// StockRefresher recomputes the stock ledger.
type StockRefresher interface {
	RefreshStock(ctx context.Context) (models.StockSnapshot, error)
}

// DailyReporter builds and stores the daily revenue report.
type DailyReporter interface {
	GenerateDailyReport(ctx context.Context, day time.Time) (models.DailyRevenueReport, error)
	Summary(report models.DailyRevenueReport) string
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	stock    StockRefresher
	reporter DailyReporter
	cfg      config.ReportingConfig
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a new scheduler instance running in the configured timezone.
func NewScheduler(cfg config.ReportingConfig, stock StockRefresher, reporter DailyReporter, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load scheduler timezone: %w", err)
	}

	// Standard 5-field cron expressions (min, hour, dom, month, dow).
	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:     c,
		stock:    stock,
		reporter: reporter,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler",
		zap.String("stock_refresh", s.cfg.StockRefreshCron),
		zap.String("daily_report", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.StockRefreshCron, s.refreshStock); err != nil {
		return fmt.Errorf("schedule stock refresh: %w", err)
	}
	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.sendDailyReport); err != nil {
		return fmt.Errorf("schedule daily report: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) refreshStock() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.stock.RefreshStock(ctx); err != nil {
		s.logger.Error("scheduled stock refresh failed", zap.Error(err))
	}
}

func (s *Scheduler) sendDailyReport() {
	s.logger.Info("generating daily revenue report")
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	report, err := s.reporter.GenerateDailyReport(ctx, s.now())
	if err != nil {
		s.logger.Error("failed to generate daily report", zap.Error(err))
		return
	}

	s.logger.Info("daily revenue report stored",
		zap.String("date", report.Date),
		zap.String("summary", s.reporter.Summary(report)))
}

package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	cfg          config.ReportingConfig
	now          func() time.Time
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. Schedules use the standard
// five field cron syntax evaluated in the reporting timezone.
func NewScheduler(cfg config.ReportingConfig, reportingSvc *reporting.Service, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		reportingSvc: reportingSvc,
		cfg:          cfg,
		now:          time.Now,
		logger:       logger,
	}, nil
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler")

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.exportReport); err != nil {
		return fmt.Errorf("schedule report export %q: %w", s.cfg.CronSchedule, err)
	}
	if _, err := s.cron.AddFunc(s.cfg.LowStockCronSchedule, s.sweepLowStock); err != nil {
		return fmt.Errorf("schedule low stock sweep %q: %w", s.cfg.LowStockCronSchedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) exportReport() {
	s.logger.Info("exporting report snapshot")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if _, err := s.reportingSvc.Export(ctx, s.now()); err != nil {
		s.logger.Error("failed to export report snapshot", zap.Error(err))
	}
}

func (s *Scheduler) sweepLowStock() {
	alerts := s.reportingSvc.LowStockAlerts()
	if len(alerts) == 0 {
		s.logger.Info("low stock sweep: all items above threshold")
		return
	}

	for _, item := range alerts {
		s.logger.Warn("low stock",
			zap.String("item_id", item.ID),
			zap.String("sku", item.SKU),
			zap.String("name", item.Name),
			zap.Int("quantity", item.Quantity),
			zap.Int("reorder_level", item.ReorderLevel),
			zap.Int("reorder_quantity", item.ReorderQuantity))
	}
	s.logger.Info("low stock sweep completed", zap.Int("items", len(alerts)))
}

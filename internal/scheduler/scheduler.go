package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/harvest-tracker/internal/config"
	"github.com/mamadbah2/harvest-tracker/internal/service/reporting"
	"github.com/mamadbah2/harvest-tracker/pkg/clients/harvestapi"
)

const runTimeout = 5 * time.Minute

// Result counts the outcome of one recalculation sweep.
type Result struct {
	Seasons   int
	Refreshed int
	Exported  int
	Failed    int
}

// Scheduler periodically recalculates and exports the active seasons of one account.
type Scheduler struct {
	cron         *cron.Cron
	schedule     string
	client       *harvestapi.Client
	reportingSvc *reporting.Service
	logger       *zap.Logger
}

// NewScheduler creates a scheduler acting with client, which must carry a token.
func NewScheduler(cfg config.ReportingConfig, client *harvestapi.Client, reportingSvc *reporting.Service, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour, dom, month, dow).
	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:         c,
		schedule:     cfg.CronSchedule,
		client:       client,
		reportingSvc: reportingSvc,
		logger:       logger,
	}, nil
}

// Start registers the sweep and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.runScheduled); err != nil {
		return fmt.Errorf("schedule recalculation %q: %w", s.schedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running sweep.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	res, err := s.RunOnce(ctx)
	if err != nil {
		s.logger.Error("recalculation sweep failed", zap.Error(err))
		return
	}
	s.logger.Info("recalculation sweep finished",
		zap.Int("seasons", res.Seasons),
		zap.Int("refreshed", res.Refreshed),
		zap.Int("exported", res.Exported),
		zap.Int("failed", res.Failed))
}

// RunOnce recalculates every active season, snapshots the refreshed report
// and exports it when export is configured. A failing season is logged and
// skipped.
func (s *Scheduler) RunOnce(ctx context.Context) (Result, error) {
	var res Result

	seasons, err := s.client.HarvestSeasons().List(ctx)
	if err != nil {
		return res, fmt.Errorf("list seasons: %w", err)
	}

	for _, season := range seasons {
		if !season.IsActive {
			continue
		}
		res.Seasons++
		log := s.logger.With(zap.Int64("season_id", season.ID), zap.String("season", season.BusinessName))

		report, err := s.reportingSvc.Recalculate(ctx, s.client, season.ID)
		if err != nil {
			res.Failed++
			log.Warn("season recalculation failed", zap.Error(err))
			continue
		}
		res.Refreshed++

		if err := s.reportingSvc.Snapshot(ctx, *report); err != nil {
			log.Warn("season snapshot failed", zap.Error(err))
		}

		if !s.reportingSvc.ExportEnabled() {
			continue
		}
		if err := s.reportingSvc.Export(ctx, *report); err != nil {
			res.Failed++
			log.Warn("season export failed", zap.Error(err))
			continue
		}
		res.Exported++
	}

	return res, nil
}

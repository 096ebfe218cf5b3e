package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	"github.com/mamadbah2/harvest-tracker/internal/config"
	"github.com/mamadbah2/harvest-tracker/internal/repository/mongodb"
	"github.com/mamadbah2/harvest-tracker/internal/repository/sheets"
	"github.com/mamadbah2/harvest-tracker/internal/scheduler"
	"github.com/mamadbah2/harvest-tracker/internal/server/handlers"
	"github.com/mamadbah2/harvest-tracker/internal/server/router"
	dashboardsvc "github.com/mamadbah2/harvest-tracker/internal/service/dashboard"
	reportingsvc "github.com/mamadbah2/harvest-tracker/internal/service/reporting"
	"github.com/mamadbah2/harvest-tracker/internal/service/session"
	"github.com/mamadbah2/harvest-tracker/pkg/clients/harvestapi"
	"github.com/mamadbah2/harvest-tracker/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	api := harvestapi.NewClient(cfg.API, logger.Named(baseLogger, "client.harvestapi"))

	var (
		sessionStore session.Store
		snapshots    reportingsvc.SnapshotStore
	)
	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewRepository(context.Background(), cfg.MongoDB)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		sessionStore = mongoRepo.Sessions()
		snapshots = mongoRepo.Snapshots()
		baseLogger.Info("mongodb session and snapshot storage enabled")
	} else {
		baseLogger.Warn("MONGODB_URI missing, sessions are kept in memory and report snapshots are disabled")
	}

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		repo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetsRepo = repo
		baseLogger.Info("google sheets report export enabled")
	}

	sessions := session.NewManager(api, sessionStore, cfg.Session.TTL, logger.Named(baseLogger, "svc.session"))
	reportingSvc := reportingsvc.NewService(sheetsRepo, snapshots, logger.Named(baseLogger, "svc.reporting"))
	dashboardSvc := dashboardsvc.NewService(logger.Named(baseLogger, "svc.dashboard"))

	templates, err := handlers.LoadTemplates()
	if err != nil {
		baseLogger.Fatal("failed to parse templates", zap.Error(err))
	}

	engine := router.New(router.Deps{
		Sessions:     sessions,
		Dashboard:    dashboardSvc,
		Reports:      reportingSvc,
		Templates:    templates,
		CookieSecure: cfg.Session.CookieSecure,
	}, logger.Named(baseLogger, "router"))

	if cfg.Reporting.APIToken != "" {
		sched, err := scheduler.NewScheduler(cfg.Reporting, api.WithToken(cfg.Reporting.APIToken), reportingSvc, logger.Named(baseLogger, "scheduler"))
		if err != nil {
			baseLogger.Fatal("failed to init scheduler", zap.Error(err))
		}
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	} else {
		baseLogger.Info("RECALC_API_TOKEN missing, scheduled recalculation disabled")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.API.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

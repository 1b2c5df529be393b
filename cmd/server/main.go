package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mamadbah2/yakshop/internal/config"
	"github.com/mamadbah2/yakshop/internal/repository/memory"
	"github.com/mamadbah2/yakshop/internal/repository/mongodb"
	"github.com/mamadbah2/yakshop/internal/repository/redisstore"
	"github.com/mamadbah2/yakshop/internal/repository/sheets"
	"github.com/mamadbah2/yakshop/internal/scheduler"
	"github.com/mamadbah2/yakshop/internal/server/handlers"
	"github.com/mamadbah2/yakshop/internal/server/router"
	herdsvc "github.com/mamadbah2/yakshop/internal/service/herd"
	ordersvc "github.com/mamadbah2/yakshop/internal/service/orders"
	reportingsvc "github.com/mamadbah2/yakshop/internal/service/reporting"
	"github.com/mamadbah2/yakshop/pkg/clients/yakshop"
	"github.com/mamadbah2/yakshop/pkg/logger"
)

type ledgerStore interface {
	herdsvc.LedgerWriter
	ordersvc.LedgerStore
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	upstream := yakshop.NewClient(cfg.YakShop)

	var ledger ledgerStore = memory.NewLedger()
	if cfg.Storage.LedgerBackend == config.LedgerBackendRedis {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = rdb.Close() }()

		if err := rdb.Ping(ctx).Err(); err != nil {
			baseLogger.Fatal("failed to reach redis", zap.Error(err), zap.String("addr", cfg.Redis.Addr))
		}
		ledger = redisstore.NewLedger(rdb, "")
		baseLogger.Info("redis stock ledger enabled", zap.String("addr", cfg.Redis.Addr))
	}

	var mongoRepo *mongodb.MongoDBRepository
	if cfg.MongoDB.URI != "" {
		mongoRepo, err = mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		if err := mongoRepo.EnsureIndexes(ctx); err != nil {
			baseLogger.Fatal("failed to create mongodb indexes", zap.Error(err))
		}
	}

	var orderStore ordersvc.OrderStore
	switch cfg.Storage.OrderBackend {
	case config.OrderBackendMongoDB:
		orderStore = mongoRepo
	case config.OrderBackendMemory:
		orderStore = memory.NewOrderStore()
	default:
		orderStore = upstream
	}

	var reportStore reportingsvc.ReportStore = memory.NewReportStore()
	if mongoRepo != nil {
		reportStore = mongoRepo
	}

	var exporter reportingsvc.ReportExporter
	if cfg.Sheets.Enabled() {
		spreadsheet, err := sheets.NewSpreadsheet(ctx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		exporter = sheets.NewReportExporter(spreadsheet)
		baseLogger.Info("google sheets export enabled")
	} else {
		baseLogger.Warn("google sheets export disabled, GOOGLE_SHEET_DATABASE_ID missing")
	}

	loc, err := cfg.Reporting.Location()
	if err != nil {
		baseLogger.Fatal("failed to load timezone", zap.Error(err))
	}

	pricing := ordersvc.Pricing{
		MilkPerLiter:  cfg.Pricing.MilkPricePerLiter,
		WoolPerSkin:   cfg.Pricing.WoolPricePerSkin,
		MaxOrderUnits: cfg.Pricing.MaxOrderUnits,
	}

	herdService := herdsvc.NewService(upstream, ledger, cfg.YakShop.StockSource == config.StockSourceRemote, baseLogger.Named("svc.herd"))
	orderService := ordersvc.NewService(herdService, ledger, orderStore, pricing, baseLogger.Named("svc.orders"))
	reportingService := reportingsvc.NewService(orderService, herdService, reportStore, exporter, loc, baseLogger.Named("svc.reporting"))

	if _, err := herdService.RefreshStock(ctx); err != nil {
		baseLogger.Warn("initial stock refresh failed, will retry on first request", zap.Error(err))
	}

	engine := router.New(router.Handlers{
		Herd:    handlers.NewHerdHandler(herdService, baseLogger.Named("handlers.herd")),
		Orders:  handlers.NewOrderHandler(orderService, baseLogger.Named("handlers.orders")),
		Revenue: handlers.NewRevenueHandler(reportingService, baseLogger.Named("handlers.revenue")),
	}, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(cfg.Reporting, herdService, reportingService, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

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

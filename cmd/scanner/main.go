package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tradethrust/internal/cache"
	"tradethrust/internal/collector"
	"tradethrust/internal/config"
	"tradethrust/internal/engine"
	"tradethrust/internal/notifier"
	"tradethrust/internal/recorder"
	"tradethrust/internal/scan"
	"tradethrust/internal/scheduler"
	"tradethrust/internal/server"
	"tradethrust/internal/watchlist"
)

func main() {
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	logger.Info("tradethrust scanner starting")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("config validation", zap.Error(err))
	}

	// Analysis engine
	engineCfg, err := cfg.EngineConfig()
	if err != nil {
		logger.Fatal("resolve analysis preset", zap.Error(err))
	}
	eng, err := engine.New(engineCfg)
	if err != nil {
		logger.Fatal("init engine", zap.Error(err))
	}

	// Data sources, best first
	var fetchers []collector.Fetcher
	if cfg.Data.DemoMode {
		fetchers = append(fetchers, &collector.MockFetcher{})
	} else {
		if cfg.Data.AlpacaKey != "" {
			fetchers = append(fetchers, collector.NewAlpacaFetcher(cfg.Data.AlpacaKey, cfg.Data.AlpacaSecret))
		}
		fetchers = append(fetchers, collector.NewYahooFetcher(cfg.Proxy))
	}
	sources := collector.NewMultiSource(logger, fetchers...)
	col := collector.NewCollector(sources, cfg.Data.Benchmark, cfg.Data.HistoryDays, logger)

	// Watchlist
	wl, err := watchlist.NewManager(cfg.Watchlist.File, cfg.Watchlist.Seed)
	if err != nil {
		logger.Fatal("init watchlist", zap.Error(err))
	}

	// Recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.Warn("init sqlite recorder failed, using noop", zap.Error(err))
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Scan service
	svc := &scan.Service{
		Collector: col,
		Engine:    eng,
		Cache:     cache.NewMemory(time.Duration(cfg.Analysis.CacheTTLMin) * time.Minute),
		Recorder:  rec,
		Logger:    logger,
		Workers:   cfg.Analysis.Workers,
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telegram notifier is optional
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logger)
	}

	// Scheduler
	sched := scheduler.NewScheduler(ctx, svc, wl, tn, logger)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron); err != nil {
		logger.Fatal("register cron tasks", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		logger.Info("telegram polling started")
	}

	// API server
	srv := server.New(svc, wl, cfg.Server.Listen, cfg.Server.Debug, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("api server", zap.Error(err))
		}
	}()

	if os.Getenv("RUN_ON_START") == "true" {
		logger.Info("RUN_ON_START enabled, scanning now")
		go sched.RunScanNow()
	}

	logger.Info("tradethrust scanner is running")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received, stopping")
	cancel()
}

func newLogger() (*zap.Logger, error) {
	if os.Getenv("LOG_LEVEL") == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

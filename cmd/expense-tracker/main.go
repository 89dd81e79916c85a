package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"expensetracker/internal/backend"
	"expensetracker/internal/cache"
	"expensetracker/internal/cli"
	"expensetracker/internal/config"
	"expensetracker/internal/core"
	apphttp "expensetracker/internal/http"
	"expensetracker/internal/log"
	"expensetracker/internal/notify"
	"expensetracker/internal/sample"
	"expensetracker/internal/services"
	"expensetracker/internal/settings"
	"expensetracker/internal/store"
)

func main() {
	cfg, logger := cli.MustSetup(log.ComponentApp)

	if err := run(cfg, logger); err != nil {
		cli.Fatal(logger, "Expense tracker stopped with error", err, log.ErrorTypeInternal)
	}
	logger.Info("Server stopped gracefully")
}

func run(cfg *config.Config, logger *log.Logger) error {
	ctx, stop := cli.SignalContext()
	defer stop()

	// Settings persistence
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return err
	}
	defer func() {
		if res.Cleanup == nil {
			return
		}
		if err := res.Cleanup(); err != nil {
			logger.Error("Failed to close settings backend", log.FieldError, err.Error())
		}
	}()

	defaults, err := cfg.DefaultSettings()
	if err != nil {
		return err
	}
	settingsStore := settings.New(res.KV, defaults)
	if found, err := settingsStore.Load(ctx); err != nil {
		logger.Warn("Failed to load saved settings, using defaults",
			log.NewFields().WithOperation(log.OpLoad).WithError(err).ToSlice()...)
	} else {
		logger.Info("Settings loaded",
			log.NewFields().WithOperation(log.OpLoad).WithSettings(settingsStore.Current()).ToSlice()...,
		)
		if !found {
			logger.Debug("No saved settings found")
		}
	}

	// Notifications
	notifiers := notify.Multi{notify.NewLogNotifier(logger)}
	if cfg.AMQPURL != "" {
		publisher, err := notify.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey, logger)
		if err != nil {
			logger.Warn("AMQP publishing disabled",
				log.NewFields().WithError(err).WithErrorType(log.ErrorTypeNetwork).ToSlice()...)
		} else {
			defer publisher.Close()
			notifiers = append(notifiers, publisher)
			logger.Info("AMQP publishing enabled", "exchange", cfg.AMQPExchange)
		}
	}

	// Summary cache
	summaries := cache.NewLRU[services.SummaryKey, core.Summary](cfg.CacheSize, cfg.CacheTTL)
	cacheManager := cache.NewManager(cfg.CacheSweepInterval, logger)
	cacheManager.Register("summaries", summaries)

	expenseStore := store.New()
	expenses := services.NewExpenseService(expenseStore, settingsStore, notifiers, logger)
	dashboard := services.NewDashboard(expenseStore, settingsStore, summaries, logger)

	srv := apphttp.NewServer(":"+cfg.Port, expenses, dashboard, apphttp.Options{
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Logger:             logger,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting expense tracker",
			"port", cfg.Port,
			log.FieldBackend, backendCfg.Type.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return cacheManager.Run(gctx)
	})

	g.Go(func() error {
		if cfg.SeedSample {
			n, err := expenses.Seed(gctx, sample.NewSource(cfg.MockLatency))
			if err != nil {
				if gctx.Err() != nil {
					return nil
				}
				return err
			}
			logger.Info("Sample expenses loaded", log.FieldCount, n)
		}
		srv.SetReady(true)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received", log.FieldOperation, log.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"pen/internal/access"
	"pen/internal/api"
	"pen/internal/api/handler/v1handler"
	"pen/internal/assistant"
	"pen/internal/catalog"
	"pen/internal/config"
	"pen/internal/feed"
	"pen/internal/risk"
	"pen/internal/scanner"
	"pen/internal/session"
	"pen/internal/subscription"
	"pen/internal/threats"
	"pen/internal/worker"
	"pen/pkg/logger"
	"pen/pkg/metrics"
	"pen/pkg/urlscanner"
	"pen/pkg/urlscanner/urlscanio"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// urlscanHTTPTimeout bounds a single call to urlscan.io.
const urlscanHTTPTimeout = 10 * time.Second

func setupServer(ctx context.Context, deps api.Deps, cfg *config.Config) func(ctx context.Context) {
	server := api.NewServer(deps, api.NewOptions(cfg))

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func setupMetrics(ctx context.Context) (*prometheus.Registry, *metrics.Recorder, func(ctx context.Context)) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	mp, err := metrics.NewMeterProvider(reg)
	if err != nil {
		logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
	}
	recorder, err := metrics.NewRecorder(mp)
	if err != nil {
		logger.Fatal(ctx, "could not create metrics recorder", zap.Error(err))
	}

	return reg, recorder, func(ctx context.Context) {
		if err := mp.Shutdown(ctx); err != nil {
			logger.Warn(ctx, "could not stop meter provider", zap.Error(err))
		}
	}
}

func newEvaluator(ctx context.Context, cfg *config.Config) risk.Evaluator {
	var client urlscanner.Client
	if cfg.Scanner.Evaluator == risk.KindRemote {
		client = urlscanio.New(
			&http.Client{Timeout: urlscanHTTPTimeout},
			cfg.Scanner.URLScanBaseURL,
			cfg.Scanner.URLScanToken,
		)
	}

	evaluator, err := risk.New(risk.NewOptions(cfg), client)
	if err != nil {
		logger.Fatal(ctx, "could not create risk evaluator", zap.Error(err))
	}

	return evaluator
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and background workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			rds, closeRedis := getRedis(ctx, cfg)
			defer closeRedis()

			reg, recorder, stopMetrics := setupMetrics(ctx)

			controller := access.New(access.NewOptions(cfg))

			sessions, err := session.New(session.NewOptions(cfg), strg, rds.Revocations(), controller)
			if err != nil {
				logger.Fatal(ctx, "could not create session store", zap.Error(err))
			}

			subscriptions := subscription.New(subscription.NewOptions(cfg), strg)

			bot, err := assistant.New(assistant.NewOptions(cfg), nil)
			if err != nil {
				logger.Fatal(ctx, "could not load assistant script", zap.Error(err))
			}

			alerts, err := feed.New()
			if err != nil {
				logger.Fatal(ctx, "could not load alerts", zap.Error(err))
			}

			// the workers outlive the signal context until Stop drains them
			riverClient, err := worker.Start(context.WithoutCancel(ctx), strg.Pool, worker.Deps{
				Subscriptions: subscriptions,
				Metrics:       recorder,
			}, worker.NewOptions(cfg))
			if err != nil {
				logger.Fatal(ctx, "could not start workers", zap.Error(err))
			}

			stopWebserver := setupServer(ctx, api.Deps{
				Deps: v1handler.Deps{
					Sessions:      sessions,
					Access:        controller,
					Catalog:       catalog.New(strg, subscriptions, controller, recorder),
					Scanner:       scanner.New(scanner.NewOptions(cfg), newEvaluator(ctx, cfg), rds.History(), recorder),
					Subscriptions: subscriptions,
					Threats:       threats.New(strg),
					Feed:          alerts,
					Assistant:     bot,
					Metrics:       recorder,
				},
				Gatherer: reg,
			}, cfg)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)

			logger.Info(shutdownCtx, "stopping workers...")
			if err := riverClient.Stop(shutdownCtx); err != nil {
				logger.Error(shutdownCtx, "could not stop workers", zap.Error(err))
			}

			stopMetrics(shutdownCtx)
		},
	}

	return cmd
}

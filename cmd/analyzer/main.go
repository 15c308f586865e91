// cmd/analyzer/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"keyword-insights/internal/analysis"
	"keyword-insights/internal/analysis/benchmark"
	"keyword-insights/internal/common/aws"
	"keyword-insights/internal/common/config"
	"keyword-insights/internal/common/database"
	"keyword-insights/internal/common/logger"
	"keyword-insights/internal/common/observability"
	"keyword-insights/internal/gsc"
	"keyword-insights/internal/service/analyzer"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrap := logger.New("info", "console")
		bootstrap.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting keyword analyzer...",
		zap.String("environment", cfg.App.Environment),
		zap.Strings("channels", cfg.Analysis.Channels),
	)

	obs := observability.New("keyword-insights")
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Benchmark curve ---
	curve := benchmark.Default()
	if path := cfg.Analysis.BenchmarkRegistryPath; path != "" {
		curve, err = benchmark.Load(path)
		if err != nil {
			zapLog.Fatal("benchmark registry load failed", zap.Error(err), zap.String("path", path))
		}
		zapLog.Info("benchmark registry loaded", zap.String("path", path))
	}

	// --- Init Redis with retry (GSC response cache) ---
	var redis *database.RedisClient
	if cfg.Database.Redis.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		zapLog.Info("Redis connected successfully")
	}

	// --- Init PostgreSQL with retry (run store) ---
	var store analyzer.RunStore
	if cfg.Database.Postgres.Enabled {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")
		store = analyzer.NewPostgresStore(pg.GetDB(), log)
	}

	// --- Init Elasticsearch with retry (dashboard index) ---
	var indexer analyzer.RunIndexer
	if cfg.Database.Elasticsearch.Enabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
		indexer = analyzer.NewESIndexer(esClient.Client, cfg.Database.Elasticsearch.IndexPrefix, log)
	}

	// --- Notification transports ---
	var notifier analyzer.RunNotifier
	if cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled {
		var email analyzer.EmailSender
		var sms analyzer.SMSPublisher

		if cfg.Notifications.Email.Enabled {
			sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
			if err != nil {
				zapLog.Fatal("ses client failed", zap.Error(err))
			}
			email = sesClient
		}
		if cfg.Notifications.SMS.Enabled {
			snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
			if err != nil {
				zapLog.Fatal("sns client failed", zap.Error(err))
			}
			sms = snsClient
		}
		notifier = analyzer.NewNotifier(cfg.Notifications, email, sms, log)
		zapLog.Info("Notification transports initialized")
	}

	// --- CSV export ---
	var exporter analyzer.Exporter
	if cfg.Export.Enabled {
		exporter = analyzer.CSVExporter{Directory: cfg.Export.Directory}
	}

	// --- Search Console client ---
	fetcher, err := gsc.NewClient(cfg.GSC, redis, log)
	if err != nil {
		zapLog.Fatal("search console client failed", zap.Error(err))
	}

	// --- Scoring engine + service ---
	engine, err := analysis.NewEngine(cfg.Scoring, curve, cfg.Analysis.Workers, log)
	if err != nil {
		zapLog.Fatal("engine init failed", zap.Error(err))
	}
	svc := analyzer.NewService(engine, fetcher, store, indexer, notifier, exporter, obs, cfg.Analysis, log)

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf(":%d", cfg.App.MetricsPort)
		zapLog.Info("Health/Metrics server listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Analysis loop ---
	interval := config.GetDuration(cfg.Analysis.Interval)

	runCycle := func() {
		results, err := svc.RunAll(ctx)
		if err != nil {
			zapLog.Error("analysis cycle failed", zap.Error(err))
			return
		}
		for _, res := range results {
			zapLog.Info("channel analyzed",
				zap.String("runId", res.RunID),
				zap.String("channel", string(res.Channel)),
				zap.Int("opportunities", res.Report.Summary.TotalOpportunities),
				zap.String("export", res.ExportPath),
			)
		}
	}

	runCycle()

	if interval <= 0 {
		zapLog.Info("single-run mode, exiting")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	zapLog.Info("scheduled mode", zap.Duration("interval", interval))
	for {
		select {
		case <-ticker.C:
			runCycle()
		case <-ctx.Done():
			zapLog.Info("Shutdown signal received, stopping analyzer...")
			return
		}
	}
}

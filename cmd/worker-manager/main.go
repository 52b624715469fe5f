// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"garment-workers/internal/common/aws"
	"garment-workers/internal/common/camunda"
	"garment-workers/internal/common/config"
	"garment-workers/internal/common/database"
	commonhttp "garment-workers/internal/common/http"
	"garment-workers/internal/common/logger"
	"garment-workers/internal/common/observability"
	"garment-workers/internal/garment"
	"garment-workers/internal/workers/design/imageinput"
	"garment-workers/internal/workers/design/jobs"
	"garment-workers/pkg/registry"

	cm "garment-workers/internal/workers/design/check-measurements"
	cdr "garment-workers/internal/workers/design/create-design-record"
	dg "garment-workers/internal/workers/design/design-garment"
	ega "garment-workers/internal/workers/design/extract-garment-attributes"
	ogp "garment-workers/internal/workers/design/optimize-garment-parameters"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})
	zapLog.Info("starting worker manager", zap.String("environment", cfg.App.Environment))

	obs := observability.New(cfg.App.Name, log)
	defer obs.Shutdown(context.Background())
	jobs.UseObservability(obs)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Zeebe ---
	zeebe, err := camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: cfg.Camunda.Plaintext,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
	}, log)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebe.Close()
	zapLog.Info("zeebe client connected", zap.String("gateway", cfg.Camunda.BrokerAddress))

	// --- PostgreSQL ---
	var pg *database.PostgresClient
	err = camunda.Retry(ctx, camunda.DefaultRetryConfig, log, "postgres connection", func(ctx context.Context) error {
		var err error
		if pg == nil {
			if pg, err = database.NewPostgres(cfg.Database.Postgres); err != nil {
				return err
			}
		}
		return pg.Ping(ctx)
	})
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	if err := pg.EnsureSchema(ctx); err != nil {
		zapLog.Fatal("postgres schema setup failed", zap.Error(err))
	}
	zapLog.Info("postgres connected")

	// --- Redis ---
	rdb := database.NewRedis(cfg.Database.Redis)
	err = camunda.Retry(ctx, camunda.DefaultRetryConfig, log, "redis connection", rdb.Ping)
	if err != nil {
		// The extraction cache is optional; run without it.
		zapLog.Warn("redis unavailable, extraction cache disabled", zap.Error(err))
	}
	defer rdb.Close()

	checks := map[string]readinessCheck{
		"zeebe":    zeebe.HealthCheck,
		"postgres": pg.Ping,
		"redis":    rdb.Ping,
	}

	// --- Optional sinks ---
	deps := workerDeps{pg: pg, rdb: rdb, obs: obs}
	if esCfg := cfg.Database.Elasticsearch; esCfg.Enabled() {
		es, err := database.NewElasticsearch(esCfg)
		if err == nil {
			err = camunda.Retry(ctx, camunda.DefaultRetryConfig, log, "elasticsearch connection", es.EnsureIndex)
		}
		if err != nil {
			zapLog.Warn("elasticsearch unavailable, design index disabled", zap.Error(err))
		} else {
			deps.index = es
			checks["elasticsearch"] = es.Ping
			zapLog.Info("elasticsearch connected", zap.String("index", esCfg.Index))
		}
	}
	if cfg.Events.DesignTopicARN != "" {
		events, err := aws.NewSNSClient(ctx, cfg.Events.Region, cfg.Events.DesignTopicARN)
		if err != nil {
			zapLog.Warn("sns unavailable, design events disabled", zap.Error(err))
		} else {
			deps.events = events
			zapLog.Info("design events enabled", zap.String("topic", cfg.Events.DesignTopicARN))
		}
	}

	// --- Workers ---
	regs, err := registrations(cfg, deps, log)
	if err != nil {
		zapLog.Fatal("worker setup failed", zap.Error(err))
	}
	checkRegistry(cfg.Registry.Path, regs, log)

	pool := camunda.NewWorkerPool(zeebe.GetClient(), log)
	for _, reg := range regs {
		pool.Start(cfg, reg)
	}
	zapLog.Info("workers registered", zap.Strings("active", pool.Active()))

	// --- Health & Metrics Server ---
	srv := &http.Server{
		Addr: cfg.Server.Address,
		Handler:           newServerMux(checks),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("health/metrics server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("health/metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	zapLog.Info("shutdown signal received, stopping workers")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	pool.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("error stopping health server", zap.Error(err))
	}

	zapLog.Info("worker manager stopped gracefully")
}

// workerDeps are the connections shared by the design workers. index and
// events may be nil.
type workerDeps struct {
	pg     *database.PostgresClient
	rdb    *database.RedisClient
	index  *database.ElasticsearchClient
	events *aws.SNSClient
	obs    *observability.Observability
}

// registrations builds the handlers for every design task type.
func registrations(cfg *config.Config, deps workerDeps, log logger.Logger) ([]camunda.Registration, error) {
	g := cfg.Garment
	extractorCfg := garment.Config{
		AspectRatioThreshold: g.AspectRatioThreshold,
		ColorGrid:            g.ColorGrid,
		MaxImagePixels:       g.MaxImagePixels,
	}
	images := imageinput.NewLoader(commonhttp.NewClient(g.ImageFetchTimeoutDuration(), g.MaxImageBytes), g.MaxImageBytes)
	timeout := func(taskType string) time.Duration {
		return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
	}

	extractCfg := ega.LoadConfig()
	extractCfg.Timeout = timeout(ega.TaskType)
	extractCfg.Extractor = extractorCfg

	optimizeCfg := ogp.LoadConfig()
	optimizeCfg.Timeout = timeout(ogp.TaskType)
	if g.DefaultMode != "" {
		optimizeCfg.DefaultMode = g.DefaultMode
	}

	checkCfg := cm.LoadConfig()
	checkCfg.Timeout = timeout(cm.TaskType)

	designCfg := dg.LoadConfig()
	designCfg.Timeout = timeout(dg.TaskType)
	designCfg.Extractor = extractorCfg
	designCfg.DefaultMode = optimizeCfg.DefaultMode
	designCfg.CacheTTL = g.CacheTTLDuration()

	recordCfg := cdr.LoadConfig()
	recordCfg.Timeout = timeout(cdr.TaskType)
	recordCfg.ContractSchemaPath = g.ContractSchemaPath
	record, err := cdr.NewHandler(recordCfg, deps.pg.GetDB(), deps.obs, log)
	if err != nil {
		return nil, fmt.Errorf("create-design-record: %w", err)
	}
	if deps.index != nil {
		record.WithIndexer(deps.index)
	}
	if deps.events != nil {
		record.WithPublisher(deps.events)
	}

	return []camunda.Registration{
		{TaskType: ega.TaskType, Handler: ega.NewHandler(extractCfg, images, log).Handle},
		{TaskType: ogp.TaskType, Handler: ogp.NewHandler(optimizeCfg, log).Handle},
		{TaskType: cm.TaskType, Handler: cm.NewHandler(checkCfg, log).Handle},
		{TaskType: dg.TaskType, Handler: dg.NewHandler(designCfg, images, deps.rdb.GetClient(), deps.obs, log).Handle},
		{TaskType: cdr.TaskType, Handler: record.Handle},
	}, nil
}

// checkRegistry warns about task types missing from the activity registry or
// not yet marked implemented there.
// A missing registry file is not fatal.
func checkRegistry(path string, regs []camunda.Registration, log logger.Logger) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		log.Warn("activity registry not loaded", map[string]interface{}{
			"path":  path,
			"error": err,
		})
		return
	}

	taskTypes := make([]string, 0, len(regs))
	for _, r := range regs {
		taskTypes = append(taskTypes, r.TaskType)
		if a, ok := reg.Find(r.TaskType); ok && !a.Implemented() {
			log.Warn("activity registered but not marked implemented", map[string]interface{}{
				"taskType": r.TaskType,
				"status":   a.ImplementationStatus,
			})
		}
	}
	if missing := reg.Missing(taskTypes); len(missing) > 0 {
		log.Warn("task types missing from activity registry", map[string]interface{}{
			"path":      path,
			"taskTypes": missing,
		})
	}
}

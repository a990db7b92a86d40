package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/veioenza/seqr/internal/handlers"
	"github.com/veioenza/seqr/internal/metrics"
	"github.com/veioenza/seqr/internal/migrations"
	"github.com/veioenza/seqr/internal/repository"
	"github.com/veioenza/seqr/internal/service"
	"github.com/veioenza/seqr/internal/storage"
	"github.com/veioenza/seqr/internal/worker"
	"github.com/veioenza/seqr/pkg/redis"
)

func newServeCmd(a *app) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context(), migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply pending migrations before serving")
	return cmd
}

// connectCache returns nil when Redis is disabled or unreachable; the API
// then runs uncached.
func (a *app) connectCache() *goredis.Client {
	if !a.cfg.Redis.Enabled {
		a.log.Info("redis disabled")
		return nil
	}

	client, err := redis.Connect(redis.Config{
		Host:     a.cfg.Redis.Host,
		Port:     a.cfg.Redis.Port,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	}, a.log)
	if err != nil {
		a.log.Warn("redis unavailable, running without cache", zap.Error(err))
		return nil
	}
	return client
}

func (a *app) reportStore(ctx context.Context) (storage.ReportStore, error) {
	switch a.cfg.Export.Store {
	case storage.DriverLocal, "":
		return storage.NewLocal(a.cfg.Export.OutputDir), nil
	case storage.DriverS3:
		s3 := a.cfg.Export.S3
		return storage.NewS3(ctx, storage.S3Config{
			Bucket:    s3.Bucket,
			Region:    s3.Region,
			Endpoint:  s3.Endpoint,
			PathStyle: s3.PathStyle,
			Prefix:    s3.Prefix,
		})
	default:
		return nil, fmt.Errorf("unsupported export store: %s", a.cfg.Export.Store)
	}
}

func (a *app) serve(ctx context.Context, migrate bool) error {
	cfg := a.cfg
	log := a.log

	log.Info("seqr backend starting", zap.String("driver", cfg.DB.Driver), zap.Bool("debug", cfg.App.Debug))

	db, err := a.openDB()
	if err != nil {
		return err
	}
	defer closeDB(db)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	if migrate {
		migrator, err := migrations.New(db, cfg.DB.Driver, log, m)
		if err != nil {
			return err
		}
		if err := migrator.Up(ctx); err != nil {
			return err
		}
	}

	var (
		cache repository.CacheRepository
		stats handlers.StatsFunc
	)
	if client := a.connectCache(); client != nil {
		defer client.Close()
		cache = repository.NewCacheRepository(client, "seqr:")
		stats = func(ctx context.Context) (map[string]string, error) {
			return redis.GetStats(ctx, client)
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	individualRepo := repository.NewIndividualRepository(db)
	sampleRepo := repository.NewSampleRepository(db)
	variantRepo := repository.NewVariantRepository(db)
	locusListRepo := repository.NewLocusListRepository(db)
	geneRepo := repository.NewGeneRepository(db)

	// Services
	userService := service.NewUserService(userRepo, log)
	projectService := service.NewProjectService(projectRepo, familyRepo, individualRepo, sampleRepo, log)
	caseReviewService := service.NewCaseReviewService(projectRepo, individualRepo, m, log)
	variantService := service.NewVariantService(familyRepo, variantRepo, locusListRepo, log)
	locusListService := service.NewLocusListService(locusListRepo, log)
	geneService := service.NewGeneService(geneRepo, cache, cfg.Redis.GeneTTL, m, log)

	scheduler := worker.NewScheduler(log)
	if cfg.Workers.ReportEnabled {
		store, err := a.reportStore(ctx)
		if err != nil {
			return err
		}
		scheduler.AddWorker(worker.NewCaseReviewReportWorker(caseReviewService, store, cfg.Workers.ReportInterval, log))
		log.Info("case review report worker enabled",
			zap.Duration("interval", cfg.Workers.ReportInterval),
			zap.String("store", cfg.Export.Store))
	}
	go scheduler.Start()
	defer scheduler.Stop()

	if cfg.App.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	routerCfg := handlers.RouterConfig{
		Log:              log,
		Metrics:          m,
		Gatherer:         reg,
		RemoteUserHeader: cfg.App.RemoteUserHeader,
		AllowOrigins:     []string{"http://localhost:3000", cfg.App.FrontendURL},
		Auth:             userService,
		Projects:         projectService,
		CaseReview:       caseReviewService,
		Variants:         variantService,
		LocusLists:       locusListService,
		Genes:            geneService,
		Health:           handlers.NewHealthHandler(sqlDB, stats),
	}
	if !cfg.App.Debug {
		routerCfg.RateLimit = rate.Limit(cfg.RateLimit.RequestsPerSecond)
		routerCfg.Burst = cfg.RateLimit.Burst
		routerCfg.GlobalLimit = rate.Limit(cfg.RateLimit.GlobalRPS)
		log.Info("rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
			zap.Int("global_rps", cfg.RateLimit.GlobalRPS))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      handlers.NewRouter(routerCfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server exited")
	return nil
}

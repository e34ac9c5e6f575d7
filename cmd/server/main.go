package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/cache"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/config"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/handlers"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/instagram"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/kafka"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/observability"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/outbox"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/repository"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/roast"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/router"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/service"
)

func main() {
	cfg := config.Load()

	// Observability
	observability.InitLogger(cfg.ServiceName, cfg.Environment)
	log := observability.Log
	defer log.Sync()

	if err := cfg.RequireDatabase(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	if cfg.TracingEnabled {
		tp, err := observability.InitTracer(cfg.ServiceName, cfg.JaegerURL)
		if err != nil {
			log.Fatal("failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Error("failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	startCtx, startCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer startCancel()

	db, err := repository.NewDB(startCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}
	defer db.Close()

	if err := repository.InitSchema(startCtx, db); err != nil {
		log.Fatal("schema init failed", zap.Error(err))
	}

	profileCache := newProfileCache(startCtx, cfg, log)

	checks := []observability.ReadinessCheck{{Name: "db", Check: db.PingContext}}
	if rc, ok := profileCache.(*cache.Redis); ok {
		defer rc.R.Close()
		checks = append(checks, observability.ReadinessCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return rc.R.Ping(ctx).Err() },
		})
	}

	// HTTP Server for Observability (Metrics & Health)
	obsMux := http.NewServeMux()
	if cfg.MetricsEnabled {
		obsMux.Handle("/metrics", promhttp.Handler())
	}
	obsMux.Handle("/health/live", http.HandlerFunc(observability.HealthLiveHandler))
	obsMux.Handle("/health/ready", observability.HealthReadyHandler(checks...))

	obsSrv := &http.Server{Addr: cfg.ObsHTTPAddr, Handler: obsMux}
	go func() {
		log.Info("HTTP observability server started", zap.String("addr", cfg.ObsHTTPAddr))
		if err := obsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP observability server failed", zap.Error(err))
		}
	}()

	client, err := instagram.NewHTTPClient(cfg.ProxyURL)
	if err != nil {
		log.Fatal("invalid proxy url", zap.Error(err))
	}

	sources := []instagram.Source{
		&instagram.ScrapeDoSource{Client: client, Token: cfg.ScrapeDoToken},
		&instagram.WebProfileSource{Client: client, AppID: cfg.InstagramAppID},
		&instagram.ScrapingBotSource{Client: client, Username: cfg.ScrapingBotUser, APIKey: cfg.ScrapingBotAPIKey},
		&instagram.HTMLSource{Client: client},
	}

	fetcher := instagram.NewFetcher(profileCache, sources, nil, instagram.FetcherConfig{
		SourceTimeout: cfg.FetchTimeout,
		ImageProxyURL: cfg.ImageProxyURL,
	})

	store := repository.NewStore(db, cfg.EventsEnabled())

	roastSvc := &service.RoastService{
		Fetcher: fetcher,
		Roaster: roast.NewGenerator(),
		Store:   store,
	}
	scrapeSvc := &service.ScrapeService{
		Fetcher:      fetcher,
		MaxBatch:     cfg.BatchMaxUsernames,
		DefaultDelay: cfg.BatchDefaultDelay,
		MaxDelay:     cfg.BatchMaxDelay,
	}

	// Cancellable context for background workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var producer *kafka.Producer
	if cfg.EventsEnabled() {
		producer = kafka.NewProducer(cfg.KafkaBrokers)
		worker := outbox.NewWorker(db, producer, cfg.KafkaTopic, 100, 2*time.Second)
		go worker.Start(ctx)
	}

	roastH := handlers.NewRoastHandler(roastSvc)
	igH := handlers.NewInstagramHandler(scrapeSvc, handlers.ScraperLimits{
		MaxUsernamesPerRequest: cfg.BatchMaxUsernames,
		DefaultDelay:           cfg.BatchDefaultDelay,
		MaxDelay:               cfg.BatchMaxDelay,
	})

	r := router.NewRouter(roastH, igH, cfg)

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           r,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	go func() {
		log.Info("roast api started",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.Strings("sources", fetcher.SourceNames()),
			zap.Bool("events", cfg.EventsEnabled()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("api shutdown failed", zap.Error(err))
	}
	if err := obsSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("observability shutdown failed", zap.Error(err))
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("kafka producer close failed", zap.Error(err))
		}
	}

	log.Info("shutdown complete")
}

// newProfileCache prefers Redis when configured and reachable, else an in-process cache.
func newProfileCache(ctx context.Context, cfg *config.Config, log *zap.Logger) cache.ProfileCache {
	if cfg.RedisAddr != "" {
		rdb := cache.NewRedisClient(cfg.RedisAddr)
		err := rdb.Ping(ctx).Err()
		if err == nil {
			log.Info("using redis profile cache", zap.String("addr", cfg.RedisAddr))
			return &cache.Redis{R: rdb, TTL: cfg.CacheTTL}
		}
		log.Warn("redis unavailable, using in-memory profile cache", zap.Error(err))
		_ = rdb.Close()
	}
	return cache.NewMemory(cfg.CacheTTL, cfg.CacheMaxEntries)
}

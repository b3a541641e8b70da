// Package app wires the pipeline together and runs it: config, store,
// source registry, fetcher, parser, classifier, image resolver,
// ingestion scheduler, feed service, and the HTTP surface.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/cache"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/classify"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/config"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/discover"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/fetch"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/images"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/ingest"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/logger"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/parser"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/rank"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/registry"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/store"
)

// App holds the assembled pipeline.
type App struct {
	cfg       *config.Config
	store     *store.Postgres
	cache     *cache.Cache
	pipeline  *ingest.Pipeline
	scheduler *ingest.Scheduler
	snapshot  *discover.Snapshot
	server    *http.Server
}

// New builds the full dependency graph from configuration.
func New(cfg *config.Config) (*App, error) {
	st, err := store.New(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	reg := registry.New(st)
	if cfg.SourcesConfigPath != "" {
		if err := reg.LoadConfig(cfg.SourcesConfigPath); err != nil {
			// Extra sources are optional; the built-in table carries
			// the product on its own.
			logger.Warn("sources config not loaded", "path", cfg.SourcesConfigPath, "error", err)
		}
	}

	fetcher := fetch.New(cfg.ProxyURLs)
	p := parser.New(images.DefaultUpgrades(), cfg.MaxArticlesPerSource, cfg.MaxArticlesGaming)
	classifier := classify.New()

	c := cache.New(10 * time.Minute)
	resolver := images.NewResolver(fetcher, c, images.ResolverConfig{
		BatchSize:  cfg.ImageBatchSize,
		BatchDelay: cfg.ImageBatchDelay,
		CacheTTL:   cfg.ImageCacheTTL,
		Timeout:    cfg.ArticleFetchTimeout,
	})

	pipeline := ingest.New(reg, fetcher, p, classifier, st, resolver, cfg.FetchTimeout)
	scheduler := ingest.NewScheduler(pipeline, st, cfg.RefreshInterval)

	ranker := rank.NewRanker(cfg.RecencyHorizon)
	feed := discover.New(st, ranker, discover.Options{
		PageSize:        cfg.PageSize,
		OverfetchFactor: cfg.OverfetchFactor,
		MaxPoolSize:     cfg.MaxPoolSize,
	})
	snapshot := discover.NewSnapshot(feed, c, cfg.SnapshotTTL)

	app := &App{
		cfg:       cfg,
		store:     st,
		cache:     c,
		pipeline:  pipeline,
		scheduler: scheduler,
		snapshot:  snapshot,
	}
	app.server = &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           app.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return app, nil
}

// Run starts the scheduler and the HTTP server and blocks until a
// shutdown signal or a server failure.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go a.scheduler.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}

	a.cache.Close()
	return a.store.Close()
}

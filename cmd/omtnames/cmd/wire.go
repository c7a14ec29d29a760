package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"omtnames/internal/application"
	"omtnames/internal/config"
	"omtnames/internal/infrastructure/i18n"
	"omtnames/internal/infrastructure/metrics"
	"omtnames/internal/infrastructure/script"
	"omtnames/internal/infrastructure/wikidata"
	"omtnames/internal/ports/output"
)

// runtime holds the collaborators shared by the subcommands.
type runtime struct {
	cfg          *config.Config
	logger       *slog.Logger
	metrics      *metrics.Metrics
	translations *i18n.Translations
	resolver     *application.NameResolver
	closers      []func() error
}

func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			rt.logger.Warn("close failed", "error", err)
		}
	}
}

// newRuntime loads the configuration and wires output adapters -> application.
func newRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	rt := &runtime{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.New(prometheus.DefaultRegisterer),
	}

	table := i18n.NewWikidataTable()
	if cfg.WikidataStore != config.StoreNone {
		store, err := openWikidataStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, store.Close)
		n, err := table.Load(ctx, store)
		if err != nil {
			rt.Close()
			return nil, err
		}
		logger.Info("wikidata translations loaded", "store", cfg.WikidataStore, "entries", n)
	}

	rt.translations, err = i18n.NewTranslations(
		cfg.Languages,
		cfg.Transliterate,
		i18n.TagSource{},
		table,
		i18n.NewCatalog(logger, cfg.CatalogFiles...),
	)
	if err != nil {
		rt.Close()
		return nil, err
	}

	rt.resolver = application.NewNameResolver(
		script.NewLatinClassifier(),
		script.NewUnidecoder(),
		application.WithTranslations(rt.translations),
		application.WithObserver(rt.metrics),
		application.WithLogger(logger),
	)

	if cfg.MetricsAddr != "" {
		rt.serveMetrics(cfg.MetricsAddr)
	}
	return rt, nil
}

func openWikidataStore(ctx context.Context, cfg *config.Config) (output.WikidataStore, error) {
	switch cfg.WikidataStore {
	case config.StoreBbolt:
		return wikidata.NewBoltStore(cfg.WikidataBboltPath)
	case config.StoreRedis:
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("could not parse Redis URL: %w", err)
		}
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("could not connect to Redis: %w", err)
		}
		return wikidata.NewRedisStore(client), nil
	default:
		return nil, fmt.Errorf("no wikidata store configured (WIKIDATA_STORE=%s)", cfg.WikidataStore)
	}
}

func (rt *runtime) serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(prometheus.DefaultGatherer))
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		rt.logger.Info("serving metrics", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			rt.logger.Error("metrics server failed", "error", err)
		}
	}()
	rt.closers = append(rt.closers, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	})
}

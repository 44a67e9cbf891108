package main

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/popslsls21/CServices/internal/domain/diagnosis"
	"github.com/popslsls21/CServices/internal/domain/telemetry"
	"github.com/popslsls21/CServices/internal/infra/catalogrepo"
	"github.com/popslsls21/CServices/internal/infra/config"
	"github.com/popslsls21/CServices/internal/infra/diagstore"
	"github.com/popslsls21/CServices/internal/infra/llm/gemini"
)

func provideDiagnosisConfig(cfg *config.Config) diagnosis.Config {
	return diagnosis.Config{
		CacheTTL:    cfg.Cache.TTL,
		TopTrending: cfg.Cache.Trending,
		Detailed:    cfg.Diagnosis.Detailed,
	}
}

// provideGeminiClient returns a nil ProviderClient when no API key is set.
// The adapter treats nil as "no provider" and the service degrades to the
// rule-based paths.
func provideGeminiClient(cfg *config.Config, logger *slog.Logger) diagnosis.ProviderClient {
	client, err := gemini.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Temperature, cfg.LLM.Timeout)
	if err != nil {
		logger.Warn("gemini client unavailable, rule-based diagnostics only", "error", err)
		return nil
	}
	return client
}

func provideAdapter(client diagnosis.ProviderClient, cfg *config.Config, logger *slog.Logger) *diagnosis.Adapter {
	return diagnosis.NewAdapter(client, cfg.LLM.Models, logger)
}

func provideCatalogRepository(cfg *config.Config, logger *slog.Logger) diagnosis.CatalogRepository {
	fallback := func() diagnosis.CatalogRepository {
		repo, err := catalogrepo.NewMemoryRepository(cfg.Catalog.Path)
		if err != nil {
			logger.Error("catalogue file unreadable, using built-in seed only", "error", err)
			repo, _ = catalogrepo.NewMemoryRepository("")
		}
		return repo
	}
	dsn := strings.TrimSpace(cfg.Catalog.Postgres.DSN)
	if dsn == "" {
		logger.Info("catalogue postgres dsn not set, using memory repository")
		return fallback()
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback()
	}
	if cfg.Catalog.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Catalog.Postgres.MaxConns
	}
	if cfg.Catalog.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Catalog.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback()
	}
	logger.Info("catalogue postgres repository enabled")
	return catalogrepo.NewPostgresRepository(pool)
}

func provideReportStore(cfg *config.Config, logger *slog.Logger) diagnosis.ReportStore {
	if cfg.Cache.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return diagstore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return diagstore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
		} else {
			logger.Info("valkey report store enabled", "addr", cfg.Cache.Addr)
			return diagstore.NewValkeyStore(client, "diag")
		}
	}
	return diagstore.NewMemoryStore()
}

func provideMatcher(repo diagnosis.CatalogRepository) *diagnosis.Matcher {
	return diagnosis.NewMatcher(repo)
}

func provideDiagnosisService(cfg diagnosis.Config, matcher *diagnosis.Matcher, adapter *diagnosis.Adapter, store diagnosis.ReportStore, logger *slog.Logger) diagnosis.Service {
	return diagnosis.NewService(cfg, matcher, adapter, store, nil, logger)
}

func provideSynthesizer() *telemetry.Synthesizer {
	return telemetry.NewSynthesizer(rand.New(rand.NewSource(time.Now().UnixNano())))
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Cache.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Cache.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Cache.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

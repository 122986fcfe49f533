package main

import (
	"context"
	"fmt"

	"github.com/liliang-cn/partchat/internal/compose"
	"github.com/liliang-cn/partchat/internal/config"
	"github.com/liliang-cn/partchat/internal/intent"
	"github.com/liliang-cn/partchat/internal/llm"
	"github.com/liliang-cn/partchat/internal/llm/resilience"
	"github.com/liliang-cn/partchat/internal/logger"
	"github.com/liliang-cn/partchat/internal/repository"
	"github.com/liliang-cn/partchat/internal/service"
	"github.com/liliang-cn/partchat/internal/session"
	"go.uber.org/zap"
)

const (
	strategyRules = "rules"
	strategyLLM   = "llm"
)

// app holds the wired services shared by the subcommands.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *repository.DB
	sessions session.Store

	chat    *service.ChatService
	catalog *service.CatalogService
	admin   *service.AdminService
}

// newApp loads configuration and wires every component.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := repository.NewDB(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if cfg.Database.Seed {
		if err := repository.Seed(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	sessions, err := session.New(cfg, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	catalogRepo := repository.NewCatalogRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	var (
		classifier intent.Classifier
		composer   compose.Composer
		breaker    *resilience.CircuitBreaker
		strategy   = strategyRules
	)
	if cfg.UseLLM() {
		client, err := llm.NewClient(&llm.Config{
			BaseURL: cfg.AI.BaseURL,
			APIKey:  cfg.AI.APIKey,
			Model:   cfg.AI.Model,
			Timeout: cfg.AI.Timeout,
		})
		if err != nil {
			sessions.Close()
			db.Close()
			return nil, fmt.Errorf("failed to create llm client: %w", err)
		}

		retry := resilience.DefaultRetryConfig()
		retry.MaxAttempts = cfg.AI.MaxRetries + 1
		provider := resilience.NewProvider(client, cfg.AI.Timeout, retry, nil, log)

		classifier = intent.NewLLMClassifier(provider, log)
		composer = compose.NewLLMComposer(provider, cfg.AI.HistoryTurns, log)
		breaker = provider.CircuitBreaker()
		strategy = strategyLLM
	} else {
		if !cfg.AI.UseMock {
			log.Warn("ai.use_mock is false but no api key is configured, using rule-based strategies")
		}
		classifier = intent.NewRuleClassifier()
		composer = compose.NewTemplateComposer(log)
	}

	log.Info("Strategies selected",
		zap.String("strategy", strategy),
		zap.String("model", cfg.AI.Model),
		zap.String("session_backend", cfg.Session.Backend),
	)

	assembler := service.NewContextAssembler(catalogRepo, cfg.Database.QueryTimeout, log)

	return &app{
		cfg:      cfg,
		logger:   log,
		db:       db,
		sessions: sessions,
		chat:     service.NewChatService(classifier, assembler, composer, sessions, historyRepo, log),
		catalog:  service.NewCatalogService(catalogRepo),
		admin:    service.NewAdminService(catalogRepo, historyRepo, sessions, strategy, breaker),
	}, nil
}

// Close releases the session store and database.
func (a *app) Close() {
	if err := a.sessions.Close(); err != nil {
		a.logger.Warn("Failed to close session store", zap.Error(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("Failed to close database", zap.Error(err))
	}
	_ = a.logger.Sync()
}

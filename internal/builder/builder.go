package builder

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/api"
	adminapi "github.com/ModawnAI/samsung-geo-tool-sub004/internal/api/admin"
	generateapi "github.com/ModawnAI/samsung-geo-tool-sub004/internal/api/generate"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/config"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/configstore"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/integration/callback"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/integration/llm"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/integration/rag"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/integration/search"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/pipeline/composer"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/pipeline/grounding"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/pipeline/playbook"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/pipeline/refine"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/pkg/formatter"
	pkglogger "github.com/ModawnAI/samsung-geo-tool-sub004/internal/pkg/logger"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/pkg/validator"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/repository"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/usecase/generate"
	"github.com/jackc/pgx/v5/pgxpool"
)

// connectors holds the external services the pipeline talks to. A nil field
// means the service is not configured.
type connectors struct {
	searcher grounding.Searcher
	index    playbook.Index
	llm      generate.LLMConnector
}

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := pkglogger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// The prompt store is optional; without it the built-in defaults are served
	var db *pgxpool.Pool
	var promptRepo configstore.PromptRepository
	if cfg.DatabaseURL != "" {
		db, err = setupDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("setup database: %w", err)
		}

		logger.Info("Running database migrations")
		if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
			db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("Database migrations completed successfully")

		promptRepo = repository.NewPromptPostgres(db)
	} else {
		logger.Warn("DATABASE_URL is empty, serving the default prompt configuration")
	}

	store := configstore.NewStore(promptRepo, cfg.ConfigCacheTTL)

	vocab, err := loadVocabulary(cfg.VocabularyPath)
	if err != nil {
		closeDB(db)
		return nil, err
	}

	conns := buildConnectors(cfg, logger)

	// Pipeline components
	fetcher := grounding.NewFetcher(conns.searcher, vocab, cfg.PipelineCfg)
	retriever := playbook.NewRetriever(conns.index, cfg.PipelineCfg)
	promptComposer := composer.NewComposer(cfg.PipelineCfg)

	var client *generate.Client
	var loop *refine.Loop
	if conns.llm != nil {
		client = generate.NewClient(conns.llm, cfg.LLMConnectorCfg.Timeout)
		loop = refine.NewLoop(conns.llm, cfg.PipelineCfg)
	} else {
		logger.Warn("No completion service configured, generation runs in mock mode")
	}

	callbackConnector := callback.NewConnector(cfg.CallbackConnectorCfg, logger)

	generateUC := generate.NewUsecase(
		fetcher,
		retriever,
		promptComposer,
		client,
		refinerOrNil(loop),
		store,
		callbackConnector,
		validator.NewValidator(),
		logger,
	)
	logger.Info("Use cases initialized")

	generateHandler := generateapi.NewHandler(generateUC, formatter.NewFactory())
	adminHandler := adminapi.NewHandler(store)

	router := api.SetupRouter(generateHandler, adminHandler, cfg.RequestTimeout, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
		zap.Bool("mock_mode", client == nil),
		zap.Bool("prompt_store", db != nil),
	)

	return &App{
		server:          server,
		background:      generateUC,
		db:              db,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}, nil
}

// buildConnectors picks real or mock connectors. Interface fields are only
// assigned concrete values, never typed nils.
func buildConnectors(cfg *config.Config, logger *zap.Logger) connectors {
	var c connectors

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		c.searcher = search.NewMockConnector(logger)
		c.index = rag.NewMockConnector(logger)
		c.llm = llm.NewMockConnector(logger)
		return c
	}

	logger.Info("Using real connectors for external services")
	if cfg.SearchConnectorCfg.Enabled() {
		c.searcher = search.NewConnector(cfg.SearchConnectorCfg, logger)
	} else {
		logger.Warn("Web search is not configured, grounding signals will be empty")
	}

	if cfg.RAGConnectorCfg.Enabled {
		c.index = rag.NewConnector(cfg.RAGConnectorCfg, logger)
	} else {
		logger.Warn("Playbook index is not configured, brand guidelines will be empty")
	}

	if cfg.LLMConnectorCfg.Enabled() {
		c.llm = llm.NewConnector(cfg.LLMConnectorCfg, logger)
	}

	return c
}

func refinerOrNil(loop *refine.Loop) generate.RefinementLoop {
	if loop == nil {
		return nil
	}
	return loop
}

func loadVocabulary(path string) (*grounding.Vocabulary, error) {
	if path == "" {
		return grounding.DefaultVocabulary(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary %s: %w", path, err)
	}

	vocab, err := grounding.LoadVocabulary(data)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary %s: %w", path, err)
	}
	return vocab, nil
}

func closeDB(db *pgxpool.Pool) {
	if db != nil {
		db.Close()
	}
}

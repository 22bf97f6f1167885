package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/moneyfornothin/taxchat/internal/common"
	"github.com/moneyfornothin/taxchat/internal/handlers"
	"github.com/moneyfornothin/taxchat/internal/interfaces"
	"github.com/moneyfornothin/taxchat/internal/services/chat"
	"github.com/moneyfornothin/taxchat/internal/services/eval"
	"github.com/moneyfornothin/taxchat/internal/services/llm"
	"github.com/moneyfornothin/taxchat/internal/services/scheduler"
	"github.com/moneyfornothin/taxchat/internal/services/summary"
	badgerstorage "github.com/moneyfornothin/taxchat/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Core pipeline services
	CompletionService interfaces.CompletionService
	ChatService       interfaces.ChatService
	Evaluator         interfaces.Evaluator

	// Maintenance services
	SummaryService   *summary.Service
	SchedulerService *scheduler.Service

	// HTTP handlers
	APIHandler    *handlers.APIHandler
	ChatHandler   *handlers.ChatHandler
	CorpusHandler *handlers.CorpusHandler
	EvalHandler   *handlers.EvalHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initStorage(); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	if cfg.Summary.Enabled {
		if err := app.SchedulerService.Start(cfg.Summary.Schedule); err != nil {
			return nil, fmt.Errorf("failed to start scheduler: %w", err)
		}
	}

	return app, nil
}

func (a *App) initStorage() error {
	manager, err := badgerstorage.NewManager(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return err
	}
	a.StorageManager = manager

	if a.Config.Corpus.Dir != "" {
		loaded, err := badgerstorage.LoadCorpusFromFiles(manager.ChunkStorage(), a.Config.Corpus.Dir, a.Logger)
		if err != nil {
			return fmt.Errorf("failed to load corpus: %w", err)
		}
		a.Logger.Info().
			Int("chunks", loaded).
			Str("dir", a.Config.Corpus.Dir).
			Msg("Corpus loaded")
	}

	return nil
}

func (a *App) initServices() error {
	completion, err := llm.NewCompletionService(a.Config, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to create completion service: %w", err)
	}
	a.CompletionService = completion

	if a.Config.Evaluation.Enabled {
		a.Evaluator = eval.NewRecorder(a.StorageManager.EvalStorage(), a.Logger)
	}

	a.ChatService = chat.NewService(
		a.CompletionService,
		a.StorageManager.ChunkStorage(),
		a.Evaluator,
		a.Config,
		a.Logger,
	)

	a.SummaryService = summary.NewService(a.StorageManager.ChunkStorage(), a.Logger)
	a.SchedulerService = scheduler.NewService(a.SummaryService, a.Logger)

	if a.Config.Summary.Enabled {
		// Startup refresh keeps the summary consistent with a corpus that
		// changed while the service was down.
		if err := a.SummaryService.GenerateSummaryChunk(context.Background()); err != nil {
			a.Logger.Warn().Err(err).Msg("Initial corpus summary generation failed")
		}
	}

	return nil
}

func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler()
	a.ChatHandler = handlers.NewChatHandler(a.ChatService, a.Logger)
	a.CorpusHandler = handlers.NewCorpusHandler(a.StorageManager.ChunkStorage(), a.Logger)
	a.EvalHandler = handlers.NewEvalHandler(a.StorageManager.EvalStorage(), a.Logger)
}

// Close shuts down all application components in reverse dependency order
func (a *App) Close() error {
	if a.SchedulerService != nil {
		a.SchedulerService.Stop()
	}

	if a.CompletionService != nil {
		if err := a.CompletionService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close completion service")
		}
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
	}

	a.Logger.Info().Msg("Application closed")
	return nil
}

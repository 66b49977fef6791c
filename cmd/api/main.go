package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/codenuga/ledger-api/internal/api/handlers"
	"github.com/codenuga/ledger-api/internal/api/middleware"
	"github.com/codenuga/ledger-api/internal/config"
	"github.com/codenuga/ledger-api/internal/ledger"
	"github.com/codenuga/ledger-api/internal/logger"
	"github.com/codenuga/ledger-api/internal/notify"
	"github.com/codenuga/ledger-api/internal/notion"
)

func main() {
	// Missing .env is fine, the environment may be set directly.
	_ = godotenv.Load()

	cfg := config.Load()

	// Parse command-line flags
	var (
		port       = flag.String("port", cfg.Port, "HTTP server port")
		ledgerPath = flag.String("config", cfg.LedgerConfigPath, "path to the ledger YAML file")
	)
	flag.Parse()
	cfg.Port = *port
	cfg.LedgerConfigPath = *ledgerPath

	// Initialize logger
	log := logger.NewWithLevel(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ledgerCfg, err := config.LoadLedger(cfg.LedgerConfigPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.LedgerConfigPath).Msg("Failed to load ledger config")
	}
	if err := ledgerCfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid ledger config")
	}

	// Wire the domain against the Notion store
	store := notion.NewClient(cfg.NotionAPIKey)
	directory := ledger.NewDirectory(ledgerCfg.Payment)
	periods := ledger.NewPeriodResolver(store, ledgerCfg.Database.MonthlyExpense.ID)
	engine := ledger.NewStatusEngine(directory, store)
	budget := ledger.NewBudgetReporter(store, periods, ledgerCfg.Database.Expense.ID)

	// Notification sinks
	var sinks []notify.Sink
	if ledgerCfg.Page.ExpenseAlert.ID != "" {
		sinks = append(sinks, notify.NewNotionCommentSink(store, ledgerCfg.Page.ExpenseAlert.ID))
	} else {
		log.Warn().Msg("No expense alert page configured - Notion comments disabled")
	}
	if cfg.TelegramBotToken != "" {
		telegram, err := notify.NewTelegramSink(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect Telegram bot")
		}
		sinks = append(sinks, telegram)
	}

	dispatcherCtx, cancelDispatcher := context.WithCancel(context.Background())
	defer cancelDispatcher()

	var notifier ledger.ExpenseNotifier
	var dispatcher *notify.Dispatcher
	if len(sinks) > 0 {
		dispatcher = notify.NewDispatcher(notify.NewComposer(budget), sinks, cfg.NotifyQueueSize, log)
		dispatcher.Start(dispatcherCtx)
		notifier = dispatcher
	} else {
		log.Warn().Msg("No notification sinks configured - expense notifications disabled")
	}

	recorder := ledger.NewRecorder(store, directory, periods, ledgerCfg.Database.Expense.ID, notifier)

	// Initialize handlers
	ledgerHandler := handlers.NewLedgerHandler(engine, recorder, periods, cfg.NotionWorkspace, log)
	pagesHandler := handlers.NewPagesHandler(store, log)

	// Create router: authenticated API routes plus an open health check
	api := http.NewServeMux()
	ledgerHandler.Register(api)
	pagesHandler.Register(api)

	mux := http.NewServeMux()
	mux.Handle("/financial/", middleware.Auth(cfg.APIKey)(api))
	mux.Handle("/notion/", middleware.Auth(cfg.APIKey)(api))
	mux.HandleFunc("/healthz", handlers.Health)

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.RequestID(
			middleware.Logger(log)(
				middleware.SecurityHeaders(
					middleware.CORS(mux),
				),
			),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting ledger API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Drain queued notifications before exit
	if dispatcher != nil {
		if err := dispatcher.Stop(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error stopping notification dispatcher")
		}
	}
	cancelDispatcher()

	log.Info().Msg("Server exited")
}

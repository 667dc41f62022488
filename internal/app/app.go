package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"merlin/backend/internal/api"
	"merlin/backend/internal/config"
	"merlin/backend/internal/database"
	"merlin/backend/internal/extract"
	"merlin/backend/internal/llm"
	"merlin/backend/internal/places"
	"merlin/backend/internal/repository"
	"merlin/backend/internal/service"
)

// App holds the process-wide resources built from configuration. External
// client handles (completion API, places lookup) are constructed once here
// and injected; nothing reaches for global state.
type App struct {
	DB     *sql.DB
	Server *http.Server
}

// NewApp wires the full dependency graph: database, repository, external
// providers, services, handlers, router.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	slog.Info("Successfully connected to SQLite database.")

	repo := repository.NewSQLiteRepository(db)

	completionProvider := llm.NewOpenAIProvider(cfg.OpenAIAPIKey)

	var finder places.Finder
	if cfg.GoogleMapsAPIKey == "" {
		slog.Warn("GOOGLE_MAPS_API_KEY not set. Location features will be limited.")
		finder = places.NewDisabledFinder()
	} else {
		finder, err = places.NewGoogleFinder(cfg.GoogleMapsAPIKey)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create places client: %w", err)
		}
	}

	userService := service.NewUserService(repo)
	chatService := service.NewChatService(repo, completionProvider, finder, cfg.OpenAIModel, cfg.GoogleMapsAPIKey)
	documentService := service.NewDocumentService(repo, extract.NewPDFExtractor())

	if err := userService.EnsureAdminUser(context.Background(), cfg.AdminPassword); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to seed admin user: %w", err)
	}

	authHandler := api.NewAuthHandler(userService)
	chatHandler := api.NewChatHandler(chatService, documentService, cfg.MaxUploadBytes)
	router := api.NewRouter(authHandler, chatHandler, userService, cfg.AllowedOrigin)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &App{DB: db, Server: server}, nil
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to build application", "error", err)
		return 1
	}
	defer func() {
		if err := app.DB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	slog.Info("Starting server", "port", cfg.AppPort)
	if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		return 1
	}

	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

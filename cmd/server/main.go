package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"chat-arena/api"
	"chat-arena/auth"
	"chat-arena/internal"
	"chat-arena/moderation"
	"chat-arena/observability"
	"chat-arena/realtime"
	"chat-arena/repositories"
	"chat-arena/services"
	"chat-arena/transport/ws"
)

// Exit codes to provide meaningful status to the operating system or service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// main is a thin wrapper: run() does the work, main handles the exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting, so deferred cleanup always executes.
func run() (int, error) {
	// 1. Configuration & logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}

	logger := internal.GetLoggerFromString(config.LogLevel)

	// 2. Persistent store (SQLite)
	store, err := repositories.Open(config.SQLitePath, logger)
	if err != nil {
		return exitRuntime, fmt.Errorf("store opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing store...")
		_ = store.Close()
	}()

	userRepository := repositories.NewUserRepository(store)
	messageRepository := repositories.NewMessageRepository(store)
	blockRepository := repositories.NewBlockRepository(store)
	gameRepository := repositories.NewGameRepository(store)

	// 3. Moderation
	var moderator *moderation.Moderator
	if words := config.CensoredWordList(); len(words) > 0 {
		moderator, err = moderation.NewModerator(words, charReplacement)
		if err != nil {
			return exitConfig, fmt.Errorf("moderator init failed: %w", err)
		}
		logger.Info("Moderation enabled", "words", len(words))
	}

	// 4. Delivery core
	registry := realtime.NewRegistry()
	presence := realtime.NewPresence(logger, userRepository)
	router := realtime.NewRouter(logger, registry, presence, messageRepository, blockRepository, moderator)
	broadcaster := realtime.NewBroadcaster(logger, registry)

	// 5. Services & API
	tokens := auth.NewTokenIssuer(config.JWTSecret, config.AuthTokenDuration)
	authService := services.NewAuthService(userRepository, tokens, presence)
	gameService := services.NewGameService(gameRepository, userRepository, blockRepository, broadcaster)
	monitor := observability.NewMonitor(logger, registry)

	wsServer := ws.NewServer(config, logger, router)
	handler := api.NewHandler(logger, authService, gameService,
		userRepository, messageRepository, blockRepository, monitor)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	handler.RegisterRoutes(e)
	e.GET("/ws", wsServer.HandleWebSocket)

	// 6. Context & signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	go func() {
		logger.Info("Starting server", "address", address)
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	// 7. Wait for stop or error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		return exitRuntime, err
	}

	// 8. Graceful shutdown
	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "err", err)
	}
	logger.Info("Server stopped cleanly")

	return exitOK, nil
}

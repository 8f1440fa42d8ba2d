package main

import (
	"context"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/salona-bot/internal/config"
	"github.com/kahvecikaan/salona-bot/internal/domain"
	"github.com/kahvecikaan/salona-bot/internal/events"
	"github.com/kahvecikaan/salona-bot/internal/llm"
	"github.com/kahvecikaan/salona-bot/internal/repository"
	"github.com/kahvecikaan/salona-bot/internal/service"
	"github.com/kahvecikaan/salona-bot/internal/storage"
	httpTransport "github.com/kahvecikaan/salona-bot/internal/transport/http"
	websocketTransport "github.com/kahvecikaan/salona-bot/internal/transport/websocket"
	"github.com/redis/go-redis/v9"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	cfg, dotenv, err := config.Load()
	if err != nil {
		hclog.Default().Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize the logger
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "salona-bot",
		Level: hclog.LevelFromString(cfg.LogLevel),
	})
	if !dotenv {
		logger.Debug("No .env file found, using the process environment")
	}

	// Create a standard logger for the HTTP server
	standardLogger := logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true})

	// Initialize the event bus - shared by the chat service and the websocket stream
	eventBus := events.NewEventBus[any]()

	// The catalog is opened lazily so the server starts before the seeder has run
	catalog := storage.NewCatalog(cfg.Catalog, logger.Named("catalog"))
	defer catalog.Close()

	prodRep := repository.NewSQLProductRepository(catalog, catalog.Driver())

	if cfg.Cache.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			logger.Warn("Redis is not reachable, searches will run uncached until it is", "addr", cfg.Cache.Addr, "error", err)
		}
		cancel()

		prodRep = repository.NewCachedProductRepository(prodRep, redisClient, cfg.Cache.TTL, logger.Named("search-cache"))
	}

	// Initialize the LLM client with its retry policy
	llmClient := llm.NewClient(
		cfg.LLM,
		llm.NewGeminiGenerator(cfg.LLM, nil),
		logger.Named("llm"),
	)

	cs := service.NewChatService(
		prodRep,
		llmClient,
		eventBus,
		logger.Named("chat-service"),
		cfg.Catalog.SearchLimit,
	)

	// Initialize the validator
	validator := domain.NewValidation()

	// Initialize HTTP handlers
	ch := httpTransport.NewChatHandler(cs, catalog.Location(), logger.Named("http-handler"))

	// Initialize the WebSocket handler with the event bus
	wh := websocketTransport.NewHandler(
		logger.Named("websocket-handler"),
		eventBus,
	)

	corsConfig := httpTransport.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.CORSOrigins

	// Initialize the router
	router := httpTransport.NewRouter(ch, validator, logger, wh, corsConfig)

	// Create the HTTP Server. WriteTimeout leaves room for every LLM attempt
	// plus the backoff between them.
	server := &http.Server{
		Addr:         cfg.BindAddress,
		Handler:      router,
		ErrorLog:     standardLogger,
		IdleTimeout:  120 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: writeTimeout(cfg.LLM),
	}

	// Start the server in a new goroutine
	go func() {
		logger.Info("Starting server", "bind_address", cfg.BindAddress, "catalog", catalog.Location())
		for _, u := range localURLs(cfg.BindAddress) {
			logger.Info("Listening", "url", u)
		}
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Error starting server", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info("Shutting down server")

	// Context for graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down server", "error", err)
	}
}

// writeTimeout is the per-attempt budget of the generator plus the worst case backoff
func writeTimeout(cfg config.LLM) time.Duration {
	timeout := 10 * time.Second
	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		timeout += 60 * time.Second
		if attempt < cfg.MaxRetries {
			timeout += llm.Backoff(attempt, cfg.BackoffUnit)
		}
	}
	return timeout
}

// localURLs lists the addresses a browser on this machine or the LAN can use
func localURLs(bindAddress string) []string {
	host, port, err := net.SplitHostPort(bindAddress)
	if err != nil {
		return nil
	}

	if host != "" && host != "0.0.0.0" && host != "::" {
		return []string{"http://" + net.JoinHostPort(host, port) + "/docs"}
	}

	urls := []string{"http://" + net.JoinHostPort("localhost", port) + "/docs"}
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return urls
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() || ipNet.IP.To4() == nil {
			continue
		}
		urls = append(urls, "http://"+net.JoinHostPort(ipNet.IP.String(), port)+"/docs")
	}
	return urls
}

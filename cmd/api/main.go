package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	apphttp "readinglist/internal/http"
	"readinglist/internal/httpx"
	"readinglist/internal/logger"
	"readinglist/internal/platform/openlibrary"
	"readinglist/internal/store"
)

func main() {
	_ = godotenv.Load(".env.local")

	serverAddress := getEnv("APP_ADDR", ":8080")
	storeBackend := getEnv("STORE_BACKEND", "badger")
	corsOrigins := strings.Split(getEnv("CORS_ORIGINS", "*"), ",")
	rateLimitRPS := getEnvFloat("RATE_LIMIT_RPS", 10)
	rateLimitBurst := getEnvInt("RATE_LIMIT_BURST", 20)

	appLogger := logger.New(logger.Config{
		Format: getEnv("LOG_FORMAT", "text"),
		Level:  logger.ParseLevel(getEnv("LOG_LEVEL", "info")),
	})

	st, err := store.New(storeBackend, store.Config{
		BadgerPath:    getEnv("BADGER_PATH", "data/readinglist"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		DataFile:      getEnv("DATA_FILE", "data/readinglist.json"),
		FlushInterval: 60 * time.Second,
		Logger:        appLogger,
	})
	if err != nil {
		log.Fatalf("cannot open %s store: %v", storeBackend, err)
	}

	openLibraryClient := openlibrary.NewClient(
		getEnv("OPENLIBRARY_USER_AGENT", "readinglist/1.0"), 2, 3)

	listHandler := apphttp.NewReadingListHandler(st, appLogger)
	bookHandler := apphttp.NewBookHandler(st, appLogger)
	searchHandler := apphttp.NewSearchHandler(openLibraryClient, appLogger)

	router := apphttp.NewRouter(st, listHandler, bookHandler, searchHandler)

	rateLimiter := httpx.NewRateLimitMiddleware(rateLimitRPS, rateLimitBurst)

	var handler http.Handler = router
	handler = rateLimiter.Middleware(handler)
	handler = httpx.RequestSizeLimitMiddleware(1 << 20)(handler)
	handler = httpx.CORSMiddleware(corsOrigins)(handler)
	handler = httpx.SecurityHeadersMiddleware(handler)
	handler = httpx.RecoveryMiddleware(appLogger)(handler)
	handler = httpx.AccessLogMiddleware(appLogger)(handler)
	handler = httpx.RequestIDMiddleware(handler)

	httpServer := &http.Server{
		Addr:         serverAddress,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("starting server", "addr", serverAddress, "backend", storeBackend)
		serverErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	case <-ctx.Done():
		appLogger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("shutdown failed", "error", err)
		}
	}

	if err := st.Close(); err != nil {
		appLogger.Error("closing store", "error", err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return f
}

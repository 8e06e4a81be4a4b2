package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hanseo-labs/postfind/internal/config"
	dbRedis "github.com/hanseo-labs/postfind/internal/db/redis"
	"github.com/hanseo-labs/postfind/internal/domain"
	logpkg "github.com/hanseo-labs/postfind/internal/logger"
	"github.com/hanseo-labs/postfind/internal/metrics"
	"github.com/hanseo-labs/postfind/internal/repository/embcache"
	"github.com/hanseo-labs/postfind/internal/repository/postgres"
	chiTransport "github.com/hanseo-labs/postfind/internal/transport/chi"
	openaiEmb "github.com/hanseo-labs/postfind/internal/transport/openai"
	healthuc "github.com/hanseo-labs/postfind/internal/usecase/health"
	searchuc "github.com/hanseo-labs/postfind/internal/usecase/search"
	"github.com/hanseo-labs/postfind/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	sourceNames := make([]string, 0, len(cfg.Search.LexicalSources))
	for _, src := range cfg.Search.LexicalSources {
		sourceNames = append(sourceNames, src.Name)
	}
	logger.Info("Starting postfind API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("lexical_sources", sourceNames),
	)

	// Retrieval store
	sqlDB, err := postgres.Open(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() { _ = sqlDB.Close() }()

	repo := postgres.New(sqlDB, cfg.Search.LexicalSources, cfg.Search.SemanticMatchThreshold)

	ctx := context.Background()
	pingCtx, cancelPing := context.WithTimeout(ctx, 10*time.Second)
	defer cancelPing()
	if err := repo.Ping(pingCtx); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register embedding metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()

	// Embedding cache is optional; without it the provider is called directly.
	var cache *dbRedis.Store
	if len(cfg.Cache.Addrs) > 0 {
		cache, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create embedding cache", zap.Error(err))
		}
		defer cache.Close()
		logger.Info("Embedding cache enabled", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	embedder := buildEmbedder(&cfg, cache, logger)
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	// Use case services
	searchSvc := searchuc.New(repo, repo, embedder).
		WithFusion(searchuc.Weights{
			Lexical:  cfg.Search.LexicalWeight,
			Semantic: cfg.Search.SemanticWeight,
		}, cfg.Search.RRFK).
		WithEmbedTimeout(time.Duration(cfg.Embedding.TimeoutMS) * time.Millisecond)

	var cachePinger healthuc.CachePinger
	if cache != nil {
		cachePinger = cache
	}
	healthSvc := healthuc.New(repo, newEmbeddingHealthChecker(embedder), cachePinger)

	server := chiTransport.NewServer(searchSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached.
func buildEmbedder(cfg *config.Config, cache *dbRedis.Store, logger *zap.Logger) domain.Embedder {
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})

	if cache == nil {
		return base
	}
	ttl := time.Duration(cfg.Cache.TTLSec) * time.Second
	return embcache.New(base, cache, ttl, metrics.EmbeddingCacheTotal, logger)
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"status":  "error",
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

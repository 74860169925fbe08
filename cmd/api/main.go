package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"navprep/internal/adapter"
	"navprep/internal/adapter/llmclient"
	"navprep/internal/cache"
	"navprep/internal/config"
	"navprep/internal/diversity"
	"navprep/internal/domain"
	"navprep/internal/handler"
	"navprep/internal/logger"
	"navprep/internal/middleware"
	"navprep/internal/service"
	"navprep/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Result cache: Redis when configured, otherwise the in-process
	// LRU cache so a single-binary deployment still memoizes results.
	var resultCache domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		resultCache = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Using Redis result cache", zap.String("address", cfg.Redis.Address))
	} else {
		resultCache = adapter.NewMemoryCacheAdapter(cfg.Cache.Capacity)
		appLogger.Info("Using in-memory result cache", zap.Int("capacity", cfg.Cache.Capacity))
	}

	generator, err := llmclient.New(cfg.LLM, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	generationClient := service.NewGenerationClient(generator, cfg.Generation, cfg.LLM.MaxTokens, appLogger)
	pipeline := service.NewPipelineService(generationClient, diversity.NewSelector(), cfg.Generation, appLogger)
	queue := service.NewQueueService(pipeline, resultCache, cfg.Cache.TTL, appLogger)
	defer queue.Close()

	validator := validation.NewValidator(validation.Limits{
		MaterialMinLength: cfg.Generation.MaterialMinLength,
		MaterialMaxLength: cfg.Generation.MaterialMaxLength,
	})
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute)

	generationHandler := handler.NewGenerationHandler(queue, pipeline, resultCache, validator)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
		BodyLimit:    1 << 20,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(requestLogger())

	api := app.Group("/api")
	api.Get("/health", generationHandler.Health)
	api.Post("/generate", middleware.RateLimit(limiter), generationHandler.Generate)
	api.Post("/navadmin/format", middleware.RateLimit(limiter), generationHandler.FormatNavadmin)
	api.Post("/summarize", middleware.RateLimit(limiter), generationHandler.Summarize)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		appLogger.Info("Starting server", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown failed", zap.Error(err))
	}
}

package service

import (
	"context"
	"time"

	"navprep/internal/config"
	"navprep/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	baseTemperature  = 0.7
	floorTemperature = 0.3
	temperatureStep  = 0.2

	backoffBase = time.Second
	backoffCap  = 8 * time.Second
)

// GenerationClient drives single generation calls against the upstream
// model with retry, capped exponential backoff, temperature adaptation, and
// a courtesy minimum spacing between consecutive calls. It owns no request
// state; one instance serves the whole process.
type GenerationClient struct {
	generator      domain.TextGenerator
	spacing        *rate.Limiter
	maxRetries     int
	attemptTimeout time.Duration
	maxTokens      int
	logger         *zap.Logger
}

// NewGenerationClient creates a client wrapping the given generator.
func NewGenerationClient(generator domain.TextGenerator, cfg config.GenerationConfig, maxTokens int, logger *zap.Logger) *GenerationClient {
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	minInterval := cfg.MinInterval
	if minInterval <= 0 {
		minInterval = 500 * time.Millisecond
	}
	attemptTimeout := cfg.AttemptTimeout
	if attemptTimeout <= 0 {
		attemptTimeout = 60 * time.Second
	}
	return &GenerationClient{
		generator:      generator,
		spacing:        rate.NewLimiter(rate.Every(minInterval), 1),
		maxRetries:     maxRetries,
		attemptTimeout: attemptTimeout,
		maxTokens:      maxTokens,
		logger:         logger,
	}
}

// Generate issues one logical generation request, retrying transport and
// shape failures up to the configured bound. Temperature starts at 0.7 and
// steps down toward 0.3 on retries to reduce variance; retries also prepend
// a fixed guidance preamble asking the model to simplify and strictly
// format its answer. The returned error embeds the last underlying failure.
func (c *GenerationClient) Generate(ctx context.Context, systemPrompt, userContent string) (string, error) {
	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := backoffBase << (attempt - 1)
			if backoff > backoffCap {
				backoff = backoffCap
			}
			c.logger.Warn("Generation attempt failed, backing off",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(lastErr))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", domain.NewGenerationError(ctx.Err())
			}
		}

		// Courtesy spacing toward the upstream API, not a hard limit.
		if err := c.spacing.Wait(ctx); err != nil {
			return "", domain.NewGenerationError(err)
		}

		prompt := userContent
		if attempt > 0 {
			prompt = retryGuidance + userContent
		}

		opts := domain.GenerationOptions{
			Temperature: temperatureForAttempt(attempt),
			MaxTokens:   c.maxTokens,
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
		text, err := c.generator.GenerateText(attemptCtx, systemPrompt, prompt, opts)
		cancel()
		if err == nil {
			return text, nil
		}
		lastErr = err
	}

	c.logger.Error("Generation retries exhausted",
		zap.Int("max_retries", c.maxRetries),
		zap.Error(lastErr))
	return "", domain.NewGenerationError(lastErr)
}

// temperatureForAttempt lowers temperature on each retry: 0.7, 0.5, 0.3
// with a floor of 0.3.
func temperatureForAttempt(attempt int) float64 {
	t := baseTemperature - temperatureStep*float64(attempt)
	if t < floorTemperature {
		return floorTemperature
	}
	return t
}

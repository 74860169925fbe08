package llmclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"navprep/internal/config"
	"navprep/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// LangchainTextGenerator implements the domain.TextGenerator interface on top
// of a langchaingo llms.Model. It performs a single completion call per
// invocation and validates the response shape; retry policy belongs to the
// caller.
type LangchainTextGenerator struct {
	model     llms.Model
	modelName string
	maxTokens int
	logger    *zap.Logger
}

// New creates a text generator for the configured provider.
func New(cfg config.LLMConfig, logger *zap.Logger) (*LangchainTextGenerator, error) {
	var model llms.Model
	var err error

	switch cfg.Provider {
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai API key cannot be empty")
		}
		model, err = openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		)
	case "ollama":
		if cfg.ServerURL == "" {
			return nil, fmt.Errorf("ollama server URL cannot be empty")
		}
		httpClient := &http.Client{
			Timeout: 120 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     10 * time.Second,
			},
		}
		model, err = ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
		)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	logger.Info("Initialized LLM client",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model))

	return &LangchainTextGenerator{
		model:     model,
		modelName: cfg.Model,
		maxTokens: cfg.MaxTokens,
		logger:    logger,
	}, nil
}

// GenerateText performs one completion call and returns the first text
// choice. A response with no choices or empty content is structurally
// unrecognized and mapped to a GENERATION_FAILED error so the caller can
// retry it.
func (g *LangchainTextGenerator) GenerateText(ctx context.Context, systemPrompt, userPrompt string, opts domain.GenerationOptions) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, userPrompt),
	}

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = g.maxTokens
	}

	resp, err := g.model.GenerateContent(ctx, messages,
		llms.WithTemperature(opts.Temperature),
		llms.WithMaxTokens(maxTokens),
	)
	if err != nil {
		return "", domain.NewGenerationError(fmt.Errorf("model call failed: %w", err))
	}

	text, err := firstTextChoice(resp)
	if err != nil {
		return "", domain.NewGenerationError(err)
	}
	return text, nil
}

// firstTextChoice extracts the first textual completion from a content
// response, rejecting unrecognized shapes explicitly.
func firstTextChoice(resp *llms.ContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("model returned nil response")
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no content choices")
	}
	choice := resp.Choices[0]
	if choice == nil {
		return "", fmt.Errorf("model returned a nil first choice")
	}
	if choice.Content == "" {
		return "", fmt.Errorf("model returned an empty text choice")
	}
	return choice.Content, nil
}

var _ domain.TextGenerator = (*LangchainTextGenerator)(nil)

package llmclient

import (
	"context"
	"errors"
	"testing"

	"navprep/internal/config"
	"navprep/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

type fakeModel struct {
	resp     *llms.ContentResponse
	err      error
	messages []llms.MessageContent
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	return f.resp, f.err
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return "", errors.New("not implemented")
}

func textResponse(content string) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: content}},
	}
}

func newTestGenerator(model llms.Model) *LangchainTextGenerator {
	return &LangchainTextGenerator{
		model:     model,
		modelName: "test-model",
		maxTokens: 1024,
		logger:    zap.NewNop(),
	}
}

func TestGenerateText(t *testing.T) {
	model := &fakeModel{resp: textResponse("generated output")}
	gen := newTestGenerator(model)

	out, err := gen.GenerateText(context.Background(), "system", "user",
		domain.GenerationOptions{Temperature: 0.7})

	require.NoError(t, err)
	assert.Equal(t, "generated output", out)

	require.Len(t, model.messages, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, model.messages[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[1].Role)
}

func TestGenerateTextModelError(t *testing.T) {
	model := &fakeModel{err: errors.New("connection refused")}
	gen := newTestGenerator(model)

	_, err := gen.GenerateText(context.Background(), "system", "user", domain.GenerationOptions{})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrGenerationFailed, domainErr.Code)
}

func TestGenerateTextRejectsMalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		resp *llms.ContentResponse
	}{
		{"nil response", nil},
		{"no choices", &llms.ContentResponse{}},
		{"nil first choice", &llms.ContentResponse{Choices: []*llms.ContentChoice{nil}}},
		{"empty content", textResponse("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := newTestGenerator(&fakeModel{resp: tt.resp})

			_, err := gen.GenerateText(context.Background(), "system", "user", domain.GenerationOptions{})

			var domainErr *domain.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domain.ErrGenerationFailed, domainErr.Code)
		})
	}
}

func TestNewRejectsMissingCredentials(t *testing.T) {
	logger := zap.NewNop()

	_, err := New(config.LLMConfig{Provider: "openai"}, logger)
	assert.Error(t, err)

	_, err = New(config.LLMConfig{Provider: "ollama"}, logger)
	assert.Error(t, err)

	_, err = New(config.LLMConfig{Provider: "bedrock"}, logger)
	assert.Error(t, err)
}

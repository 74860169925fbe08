package service

import (
	"context"
	"encoding/json"
	"strings"

	"navprep/internal/config"
	"navprep/internal/diversity"
	"navprep/internal/domain"
	"navprep/internal/parser"
	"navprep/internal/textproc"

	"go.uber.org/zap"
)

// PipelineService composes the chunking pipeline: preprocess, chunk,
// per-chunk generate and parse, aggregate, deduplicate, diversify. Chunks
// are processed strictly in index order and one at a time; continuation
// prompts reference earlier chunks, and sequencing keeps the upstream API
// from seeing bursts.
type PipelineService struct {
	client      *GenerationClient
	selector    *diversity.Selector
	chunkTokens int
	maxItems    int
	logger      *zap.Logger
}

func NewPipelineService(client *GenerationClient, selector *diversity.Selector, cfg config.GenerationConfig, logger *zap.Logger) *PipelineService {
	chunkTokens := cfg.ChunkTokens
	if chunkTokens <= 0 {
		chunkTokens = 2000
	}
	maxItems := cfg.MaxItems
	if maxItems <= 0 {
		maxItems = 10
	}
	return &PipelineService{
		client:      client,
		selector:    selector,
		chunkTokens: chunkTokens,
		maxItems:    maxItems,
		logger:      logger,
	}
}

// GenerateRecords runs the full pipeline for a quiz or flashcard request
// and returns the final record set as a JSON-encoded array. For multi-chunk
// requests a failing chunk contributes zero records instead of failing the
// batch; the error only propagates when every chunk failed or the request
// had a single chunk.
func (p *PipelineService) GenerateRecords(ctx context.Context, content domain.RawContent, count int) (string, error) {
	if count <= 0 || count > p.maxItems*5 {
		count = p.maxItems
	}

	material := textproc.Preprocess(content.Material)
	chunks := textproc.SplitChunks(material, p.chunkTokens)
	if len(chunks) == 0 {
		return "", domain.NewInvalidInputError("Material is empty after preprocessing")
	}

	switch content.Type {
	case domain.ContentTypeQuiz:
		return p.generateQuiz(ctx, content, chunks, count)
	case domain.ContentTypeFlashcards:
		return p.generateFlashcards(ctx, content, chunks, count)
	default:
		return "", domain.NewInvalidInputError("Unsupported content type: " + string(content.Type))
	}
}

func (p *PipelineService) generateQuiz(ctx context.Context, content domain.RawContent, chunks []domain.Chunk, count int) (string, error) {
	var all []domain.QuizQuestion
	var lastErr error

	for _, chunk := range chunks {
		questions, err := p.quizChunk(ctx, content, chunk, count)
		if err != nil {
			lastErr = err
			if len(chunks) == 1 {
				return "", err
			}
			// Partial-failure tolerance: a bad chunk contributes zero
			// records, siblings still count.
			p.logger.Warn("Chunk processing failed, continuing with remaining chunks",
				zap.Int("chunk_index", chunk.Index),
				zap.Error(err))
			continue
		}
		all = append(all, questions...)
	}

	if len(all) == 0 && lastErr != nil {
		return "", lastErr
	}

	all = dedupeQuestions(all)
	selected := diversity.SelectDiverse(p.selector, all, count, func(q domain.QuizQuestion) diversity.ItemInfo {
		return diversity.ItemInfo{Text: q.Question}
	})

	return marshalRecords(selected)
}

func (p *PipelineService) quizChunk(ctx context.Context, content domain.RawContent, chunk domain.Chunk, count int) ([]domain.QuizQuestion, error) {
	raw, err := p.client.Generate(ctx, quizSystemPrompt, buildQuizUserPrompt(content, chunk, count))
	if err != nil {
		return nil, err
	}
	result, err := parser.ParseQuizQuestions(raw)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("Parsed quiz chunk",
		zap.Int("chunk_index", chunk.Index),
		zap.Int("original_count", result.OriginalCount),
		zap.Int("valid_count", result.ValidCount))
	return result.Questions, nil
}

func (p *PipelineService) generateFlashcards(ctx context.Context, content domain.RawContent, chunks []domain.Chunk, count int) (string, error) {
	var all []domain.Flashcard
	var lastErr error

	for _, chunk := range chunks {
		raw, err := p.client.Generate(ctx, flashcardSystemPrompt, buildFlashcardUserPrompt(content, chunk, count))
		if err != nil {
			lastErr = err
			if len(chunks) == 1 {
				return "", err
			}
			p.logger.Warn("Chunk processing failed, continuing with remaining chunks",
				zap.Int("chunk_index", chunk.Index),
				zap.Error(err))
			continue
		}
		cards := parser.ParseFlashcards(raw)
		if len(cards) == 0 {
			p.logger.Warn("Chunk produced no valid flashcards",
				zap.Int("chunk_index", chunk.Index))
		}
		all = append(all, cards...)
	}

	if len(all) == 0 {
		if lastErr != nil {
			return "", lastErr
		}
		if len(chunks) == 1 {
			return "", domain.NewParseError(nil)
		}
	}

	all = dedupeFlashcards(all)
	selected := diversity.SelectDiverse(p.selector, all, count, func(f domain.Flashcard) diversity.ItemInfo {
		return diversity.ItemInfo{Difficulty: f.Difficulty, Text: f.Front}
	})

	return marshalRecords(selected)
}

// FormatNavadmin rewrites free text as a NAVADMIN-structured message.
// Chunk outputs are concatenated in order; there is nothing to diversify.
func (p *PipelineService) FormatNavadmin(ctx context.Context, text string) (string, error) {
	return p.generateText(ctx, navadminSystemPrompt, text, buildNavadminUserPrompt, nil)
}

// Summarize condenses material into study notes. With more than one chunk
// the per-chunk summaries run through a final combine pass.
func (p *PipelineService) Summarize(ctx context.Context, text string) (string, error) {
	return p.generateText(ctx, summarySystemPrompt, text, buildSummaryUserPrompt,
		func(ctx context.Context, joined string) (string, error) {
			return p.client.Generate(ctx, summarySystemPrompt, buildCombinePrompt(joined))
		})
}

func (p *PipelineService) generateText(
	ctx context.Context,
	systemPrompt, text string,
	buildPrompt func(domain.Chunk, int) string,
	combine func(context.Context, string) (string, error),
) (string, error) {
	material := textproc.Preprocess(text)
	chunks := textproc.SplitChunks(material, p.chunkTokens)
	if len(chunks) == 0 {
		return "", domain.NewInvalidInputError("Material is empty after preprocessing")
	}

	var parts []string
	var lastErr error
	for _, chunk := range chunks {
		out, err := p.client.Generate(ctx, systemPrompt, buildPrompt(chunk, len(chunks)))
		if err != nil {
			lastErr = err
			if len(chunks) == 1 {
				return "", err
			}
			p.logger.Warn("Chunk processing failed, continuing with remaining chunks",
				zap.Int("chunk_index", chunk.Index),
				zap.Error(err))
			continue
		}
		parts = append(parts, strings.TrimSpace(out))
	}
	if len(parts) == 0 {
		return "", lastErr
	}

	joined := strings.Join(parts, "\n\n")
	if combine != nil && len(parts) > 1 {
		combined, err := combine(ctx, joined)
		if err != nil {
			// The joined per-chunk output is still usable.
			p.logger.Warn("Combine pass failed, returning joined chunk output", zap.Error(err))
			return joined, nil
		}
		return strings.TrimSpace(combined), nil
	}
	return joined, nil
}

func dedupeQuestions(questions []domain.QuizQuestion) []domain.QuizQuestion {
	seen := map[string]bool{}
	var out []domain.QuizQuestion
	for _, q := range questions {
		key := normalizeKey(q.Question)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, q)
	}
	return out
}

func dedupeFlashcards(cards []domain.Flashcard) []domain.Flashcard {
	seen := map[string]bool{}
	var out []domain.Flashcard
	for _, f := range cards {
		key := normalizeKey(f.Front)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}

func normalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func marshalRecords(records any) (string, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return "", domain.NewInternalError("Failed to encode generated records", err)
	}
	if string(data) == "null" {
		return "[]", nil
	}
	return string(data), nil
}

package textproc

import (
	"strings"

	"navprep/internal/domain"
)

// charsPerToken is a fixed approximation of the upstream tokenizer: roughly
// four characters per token for English prose. It is deliberately not a real
// tokenizer; chunk bounds only need to be near the model's context limit,
// not exact.
const charsPerToken = 4

const topicsHeaderPrefix = "TOPICS:"

// EstimateTokens approximates the token count of a string.
func EstimateTokens(text string) int {
	return len(text) / charsPerToken
}

// SplitChunks splits preprocessed text into chunks of at most maxTokens
// (approximate) along paragraph boundaries. A leading "TOPICS: <label>"
// header followed by a blank line is extracted and re-prefixed onto every
// chunk so topic context carries across chunk boundaries. A single paragraph
// larger than the limit is not split further; it becomes its own oversized
// chunk. Concatenating the chunk bodies in order, headers stripped,
// reconstructs the original paragraph sequence.
func SplitChunks(text string, maxTokens int) []domain.Chunk {
	if maxTokens <= 0 {
		maxTokens = 2000
	}

	topics, body := extractTopicsHeader(text)
	if strings.TrimSpace(body) == "" {
		return nil
	}

	paragraphs := strings.Split(body, "\n\n")

	var chunks []domain.Chunk
	var current []string
	currentTokens := 0

	seal := func() {
		if len(current) == 0 {
			return
		}
		chunkText := strings.Join(current, "\n\n")
		if topics != "" {
			chunkText = topicsHeaderPrefix + " " + topics + "\n\n" + chunkText
		}
		chunks = append(chunks, domain.Chunk{
			Text:   chunkText,
			Topics: topics,
			Index:  len(chunks),
		})
		current = nil
		currentTokens = 0
	}

	for _, para := range paragraphs {
		paraTokens := EstimateTokens(para)
		if len(current) > 0 && currentTokens+paraTokens > maxTokens {
			seal()
		}
		current = append(current, para)
		currentTokens += paraTokens
	}
	seal()

	return chunks
}

// StripTopicsHeader removes a re-attached topics header from a chunk body.
func StripTopicsHeader(chunkText string) string {
	_, body := extractTopicsHeader(chunkText)
	return body
}

func extractTopicsHeader(text string) (topics, body string) {
	trimmed := strings.TrimLeft(text, "\n")
	if !strings.HasPrefix(trimmed, topicsHeaderPrefix) {
		return "", text
	}
	newline := strings.Index(trimmed, "\n")
	if newline == -1 {
		// Header with no body at all.
		return strings.TrimSpace(trimmed[len(topicsHeaderPrefix):]), ""
	}
	headerLine := trimmed[:newline]
	rest := trimmed[newline+1:]
	if !strings.HasPrefix(rest, "\n") && strings.TrimSpace(rest) != "" {
		// No blank line after the header; treat it as ordinary text.
		return "", text
	}
	topics = strings.TrimSpace(strings.TrimPrefix(headerLine, topicsHeaderPrefix))
	body = strings.TrimLeft(rest, "\n")
	return topics, body
}

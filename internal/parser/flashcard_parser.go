package parser

import (
	"regexp"
	"strings"

	"navprep/internal/domain"

	"gopkg.in/yaml.v3"
)

var fencedBlock = regexp.MustCompile("(?s)```[a-zA-Z]*\n(.*?)```")

// ParseFlashcards recovers flashcards from a raw model response. A
// structured YAML parse is attempted first; when the parsed value is not a
// list, or parsing fails outright, a line-oriented scan takes over. Models
// are noticeably less reliable at indentation-sensitive markup than at
// loose "key: value" lines, so the fallback recovers most malformed output.
func ParseFlashcards(raw string) []domain.Flashcard {
	text := stripCodeFence(raw)

	if cards, ok := parseStructured(text); ok {
		return cards
	}
	return parseLines(text)
}

func stripCodeFence(s string) string {
	if m := fencedBlock.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return strings.TrimSpace(s)
}

type rawFlashcard struct {
	Type       string    `yaml:"type"`
	Front      string    `yaml:"front"`
	Question   string    `yaml:"question"`
	Back       string    `yaml:"back"`
	Answer     string    `yaml:"answer"`
	Topic      string    `yaml:"topic"`
	Subject    string    `yaml:"subject"`
	Difficulty string    `yaml:"difficulty"`
	Tags       yaml.Node `yaml:"tags"`
}

func parseStructured(text string) ([]domain.Flashcard, bool) {
	var rawCards []rawFlashcard
	if err := yaml.Unmarshal([]byte(text), &rawCards); err != nil {
		return nil, false
	}
	if len(rawCards) == 0 {
		return nil, false
	}

	var cards []domain.Flashcard
	for _, rc := range rawCards {
		card := domain.Flashcard{
			Type:       normalizeCardType(rc.Type),
			Front:      strings.TrimSpace(firstNonEmpty(rc.Front, rc.Question)),
			Back:       strings.TrimSpace(firstNonEmpty(rc.Back, rc.Answer)),
			Topic:      strings.TrimSpace(firstNonEmpty(rc.Topic, rc.Subject)),
			Difficulty: strings.TrimSpace(rc.Difficulty),
			Tags:       decodeTags(rc.Tags),
		}
		if card.Valid() {
			cards = append(cards, card)
		}
	}
	return cards, len(cards) > 0
}

// decodeTags accepts either a YAML sequence or a comma-separated scalar.
func decodeTags(node yaml.Node) []string {
	switch node.Kind {
	case yaml.SequenceNode:
		var tags []string
		if err := node.Decode(&tags); err != nil {
			return nil
		}
		return trimAll(tags)
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil || s == "" {
			return nil
		}
		return trimAll(strings.Split(s, ","))
	default:
		return nil
	}
}

// parseLines is the fallback scanner: a line starting with "-" seals the
// current card and starts a new one, and "key: value" lines populate
// recognized fields.
func parseLines(text string) []domain.Flashcard {
	var cards []domain.Flashcard
	var current *domain.Flashcard

	seal := func() {
		if current != nil && current.Valid() {
			cards = append(cards, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "-") {
			seal()
			current = &domain.Flashcard{}
			line = strings.TrimSpace(strings.TrimPrefix(line, "-"))
			if line == "" {
				continue
			}
		}
		if current == nil {
			current = &domain.Flashcard{}
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		populateField(current, strings.ToLower(strings.TrimSpace(key)), unquote(strings.TrimSpace(value)))
	}
	seal()

	return cards
}

func populateField(card *domain.Flashcard, key, value string) {
	switch key {
	case "type":
		card.Type = normalizeCardType(value)
	case "front", "question":
		card.Front = value
	case "back", "answer":
		card.Back = value
	case "topic", "subject":
		card.Topic = value
	case "difficulty":
		card.Difficulty = value
	case "tags":
		card.Tags = trimAll(strings.Split(strings.Trim(value, "[]"), ","))
	}
}

func normalizeCardType(s string) domain.FlashcardType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cloze":
		return domain.FlashcardCloze
	case "definition":
		return domain.FlashcardDefinition
	case "scenario":
		return domain.FlashcardScenario
	case "":
		return ""
	default:
		return domain.FlashcardBasic
	}
}

func unquote(s string) string {
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

func trimAll(parts []string) []string {
	var out []string
	for _, p := range parts {
		p = unquote(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

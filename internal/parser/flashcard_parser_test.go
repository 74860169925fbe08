package parser

import (
	"testing"

	"navprep/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlashcardsStructuredYAML(t *testing.T) {
	raw := `- type: basic
  front: What is a NAVADMIN?
  back: A Navy-wide administrative message released by the CNO.
  topic: Communications
  difficulty: Basic
  tags:
    - messages
    - admin
- type: definition
  front: ORM
  back: Operational Risk Management.
`

	cards := ParseFlashcards(raw)
	require.Len(t, cards, 2)

	assert.Equal(t, domain.FlashcardBasic, cards[0].Type)
	assert.Equal(t, "What is a NAVADMIN?", cards[0].Front)
	assert.Equal(t, "Communications", cards[0].Topic)
	assert.Equal(t, "Basic", cards[0].Difficulty)
	assert.Equal(t, []string{"messages", "admin"}, cards[0].Tags)

	assert.Equal(t, domain.FlashcardDefinition, cards[1].Type)
}

func TestParseFlashcardsFencedCodeBlock(t *testing.T) {
	raw := "Here are your flashcards:\n```yaml\n- type: basic\n  front: Q\n  back: A\n```\nHope that helps!"

	cards := ParseFlashcards(raw)
	require.Len(t, cards, 1)
	assert.Equal(t, "Q", cards[0].Front)
	assert.Equal(t, "A", cards[0].Back)
}

func TestParseFlashcardsLineFallback(t *testing.T) {
	// Broken indentation that structured YAML refuses; the line scanner
	// still recovers every card.
	raw := `- type: basic
front: "What year was the Navy founded?"
 back: '1775'
   topic: Heritage And History
- type: scenario
front: A fire breaks out in the galley. First action?
back: Sound the alarm and report the fire.
tags: damage control, firefighting`

	cards := ParseFlashcards(raw)
	require.Len(t, cards, 2)

	assert.Equal(t, "What year was the Navy founded?", cards[0].Front)
	assert.Equal(t, "1775", cards[0].Back)
	assert.Equal(t, "Heritage And History", cards[0].Topic)

	assert.Equal(t, domain.FlashcardScenario, cards[1].Type)
	assert.Equal(t, []string{"damage control", "firefighting"}, cards[1].Tags)
}

func TestParseFlashcardsAlternateKeyNames(t *testing.T) {
	raw := `- type: basic
  question: What does PRT stand for?
  answer: Physical Readiness Test.
  subject: Physical Readiness`

	cards := ParseFlashcards(raw)
	require.Len(t, cards, 1)
	assert.Equal(t, "What does PRT stand for?", cards[0].Front)
	assert.Equal(t, "Physical Readiness Test.", cards[0].Back)
	assert.Equal(t, "Physical Readiness", cards[0].Topic)
}

func TestParseFlashcardsDropsIncompleteCards(t *testing.T) {
	raw := `- type: basic
  front: Complete card
  back: Has everything.
- type: basic
  front: Missing back
- front: Missing type
  back: Also dropped? No, type defaults are not applied here.`

	cards := ParseFlashcards(raw)
	require.Len(t, cards, 1)
	assert.Equal(t, "Complete card", cards[0].Front)
}

func TestParseFlashcardsUnknownTypeNormalizedToBasic(t *testing.T) {
	raw := `- type: multiple-choice
  front: Q
  back: A`

	cards := ParseFlashcards(raw)
	require.Len(t, cards, 1)
	assert.Equal(t, domain.FlashcardBasic, cards[0].Type)
}

func TestParseFlashcardsGarbage(t *testing.T) {
	assert.Empty(t, ParseFlashcards("no structure here at all"))
	assert.Empty(t, ParseFlashcards(""))
}

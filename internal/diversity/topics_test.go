package diversity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTopic(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "damage control keywords",
			text:     "Damage control and firefighting are every sailor's responsibility. Repair locker assignments matter.",
			expected: "Damage Control",
		},
		{
			name:     "navigation keywords",
			text:     "Plot a fix using bearing lines from the gyro compass while piloting in restricted waters.",
			expected: "Navigation",
		},
		{
			name:     "no match falls back to General",
			text:     "completely unrelated prose about gardening and cooking pasta",
			expected: DefaultTopic,
		},
		{
			name:     "empty text",
			text:     "",
			expected: DefaultTopic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractTopic(tt.text))
		})
	}
}

func TestExtractTopicDeterministicTieBreak(t *testing.T) {
	// One keyword hit for each of two categories; the alphabetically first
	// category must win, consistently.
	text := "the anchor and the boiler"
	first := ExtractTopic(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ExtractTopic(text))
	}
	assert.Equal(t, "Deck Seamanship", first)
}

func TestExtractTopicFromContext(t *testing.T) {
	t.Run("rating code in title wins", func(t *testing.T) {
		got := ExtractTopicFromContext("HM Advancement Study Guide", "some paragraph about medicine")
		assert.Equal(t, "Hospital Corpsman", got)
	})

	t.Run("rating code in first paragraph", func(t *testing.T) {
		got := ExtractTopicFromContext("Study Guide", "Material for BM candidates covering mooring.")
		assert.Equal(t, "Boatswain's Mate", got)
	})

	t.Run("falls back to keyword scoring", func(t *testing.T) {
		got := ExtractTopicFromContext("Study Guide", "radar and sonar circuit card maintenance")
		assert.Equal(t, "Electronics", got)
	})

	t.Run("lowercase tokens are not rating codes", func(t *testing.T) {
		got := ExtractTopicFromContext("it is what it is", "nothing here")
		assert.Equal(t, DefaultTopic, got)
	})
}

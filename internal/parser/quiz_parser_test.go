package parser

import (
	"encoding/json"
	"errors"
	"testing"

	"navprep/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuestion(n string) domain.QuizQuestion {
	return domain.QuizQuestion{
		ID:            "Q" + n,
		Question:      "Question " + n + "?",
		Options:       []string{"right " + n, "wrong a", "wrong b", "wrong c"},
		CorrectAnswer: "right " + n,
		Explanation:   "Because of reason " + n + ".",
	}
}

func TestParseQuizQuestionsValidJSON(t *testing.T) {
	// Record text deliberately overlaps with what the repair regexes target:
	// literal casing, whitespace runs, and bracketed spans inside strings
	// must all survive a well-formed response untouched.
	input := []domain.QuizQuestion{
		validQuestion("1"),
		{
			ID:            "Q2",
			Question:      "True or false: the anchor watch is set while moored?",
			Options:       []string{"True", "False", "Only underway", "Only in port"},
			CorrectAnswer: "True",
			Explanation:   "The anchor watch is a moored or anchored watch.",
		},
		{
			ID:            "Q3",
			Question:      "Which reference covers  double  spaced text, see [1] [2]?",
			Options:       []string{"NULL returns and None values", "False leads", "TRUE stories", "{braces}"},
			CorrectAnswer: "NULL returns and None values",
			Explanation:   "Content with  runs of spaces and [brackets] stays as written.",
		},
	}
	data, err := json.Marshal(input)
	require.NoError(t, err)

	result, err := ParseQuizQuestions(string(data))
	require.NoError(t, err)

	assert.Equal(t, len(input), result.OriginalCount)
	assert.Equal(t, len(input), result.ValidCount)
	assert.Equal(t, input, result.Questions)
}

func TestParseQuizQuestionsWithSurroundingProse(t *testing.T) {
	data, _ := json.Marshal([]domain.QuizQuestion{validQuestion("1")})
	raw := "Here are your questions:\n\n" + string(data) + "\n\nLet me know if you need more!"

	result, err := ParseQuizQuestions(raw)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ValidCount)
}

func TestParseQuizQuestionsTrailingCommas(t *testing.T) {
	raw := `[
		{"question": "Q1?", "options": ["a", "b", "c", "d",], "correctAnswer": "a", "explanation": "E1",},
		{"question": "Q2?", "options": ["w", "x", "y", "z"], "correctAnswer": "w", "explanation": "E2"},
	]`

	result, err := ParseQuizQuestions(raw)
	require.NoError(t, err)
	assert.Equal(t, 2, result.ValidCount)
}

func TestParseQuizQuestionsMissingCommasBetweenObjects(t *testing.T) {
	raw := `[
		{"question": "Q1?", "options": ["a", "b", "c", "d"], "correctAnswer": "a", "explanation": "E1"}
		{"question": "Q2?", "options": ["w", "x", "y", "z"], "correctAnswer": "w", "explanation": "E2"}
	]`

	result, err := ParseQuizQuestions(raw)
	require.NoError(t, err)
	assert.Equal(t, 2, result.ValidCount)
}

func TestParseQuizQuestionsUnescapedInnerQuotes(t *testing.T) {
	raw := `[{"question": "What does "NAVADMIN" mean?", "options": ["a", "b", "c", "d"], "correctAnswer": "a", "explanation": "It is a message type."}]`

	result, err := ParseQuizQuestions(raw)
	require.NoError(t, err)
	require.Equal(t, 1, result.ValidCount)
	assert.Equal(t, `What does "NAVADMIN" mean?`, result.Questions[0].Question)
}

func TestParseQuizQuestionsDropsInvalidRecords(t *testing.T) {
	records := []map[string]any{
		{"question": "valid?", "options": []string{"a", "b", "c", "d"}, "correctAnswer": "a", "explanation": "yes"},
		// correctAnswer does not match options[0]: dropped, not reordered
		{"question": "wrong answer slot?", "options": []string{"a", "b", "c", "d"}, "correctAnswer": "b", "explanation": "e"},
		// only three options
		{"question": "short?", "options": []string{"a", "b", "c"}, "correctAnswer": "a", "explanation": "e"},
		// empty explanation
		{"question": "no why?", "options": []string{"a", "b", "c", "d"}, "correctAnswer": "a", "explanation": ""},
	}
	data, _ := json.Marshal(records)

	result, err := ParseQuizQuestions(string(data))
	require.NoError(t, err)
	assert.Equal(t, 4, result.OriginalCount)
	assert.Equal(t, 1, result.ValidCount)
	assert.Equal(t, "valid?", result.Questions[0].Question)
}

func TestParseQuizQuestionsNumericScalars(t *testing.T) {
	raw := `[{"id": 7, "question": "Q?", "options": ["a", "b", "c", "d"], "correctAnswer": "a", "explanation": "E"}]`

	result, err := ParseQuizQuestions(raw)
	require.NoError(t, err)
	require.Equal(t, 1, result.ValidCount)
	assert.Equal(t, "7", result.Questions[0].ID)
}

func TestParseQuizQuestionsAssignsIDs(t *testing.T) {
	raw := `[{"question": "Q?", "options": ["a", "b", "c", "d"], "correctAnswer": "a", "explanation": "E"}]`

	result, err := ParseQuizQuestions(raw)
	require.NoError(t, err)
	require.Equal(t, 1, result.ValidCount)
	assert.NotEmpty(t, result.Questions[0].ID)
}

func TestParseQuizQuestionsFragmentRecovery(t *testing.T) {
	data, _ := json.Marshal([]domain.QuizQuestion{validQuestion("1")})
	// Broken leading fragment followed by a well-formed array.
	raw := "[{{{ not json ]" + string(data)

	result, err := ParseQuizQuestions(raw)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ValidCount)
}

func TestParseQuizQuestionsGarbage(t *testing.T) {
	_, err := ParseQuizQuestions("complete garbage with no structure at all")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrParseFailed, domainErr.Code)
}

func TestParseQuizQuestionsEmptyArray(t *testing.T) {
	result, err := ParseQuizQuestions("[]")
	require.NoError(t, err)
	assert.Equal(t, 0, result.OriginalCount)
	assert.Equal(t, 0, result.ValidCount)
}

func TestParseQuizQuestionsDropsEmptyObjects(t *testing.T) {
	// Well-formed input parses directly, so empty objects arrive as records
	// and fall to validation rather than being stripped by cleanup.
	raw := `[{}, {"question": "Q?", "options": ["a", "b", "c", "d"], "correctAnswer": "a", "explanation": "E"}, {}]`
	result, err := ParseQuizQuestions(raw)
	require.NoError(t, err)
	assert.Equal(t, 3, result.OriginalCount)
	assert.Equal(t, 1, result.ValidCount)

	// On the repair path the cleanup stage still removes them outright.
	broken := `[{}, {"question": "Q?", "options": ["a", "b", "c", "d",], "correctAnswer": "a", "explanation": "E"}, {}]`
	result, err = ParseQuizQuestions(broken)
	require.NoError(t, err)
	assert.Equal(t, 1, result.OriginalCount)
	assert.Equal(t, 1, result.ValidCount)
}

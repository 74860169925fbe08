package domain

// ContentType identifies what kind of study records a generation request
// should produce.
type ContentType string

const (
	ContentTypeQuiz       ContentType = "quiz"
	ContentTypeFlashcards ContentType = "flashcards"
)

// IsValid reports whether the content type is one of the supported variants.
func (t ContentType) IsValid() bool {
	return t == ContentTypeQuiz || t == ContentTypeFlashcards
}

// RawContent is the transient per-request input to the generation pipeline.
// It is never persisted by this subsystem.
type RawContent struct {
	Title       string
	Description string
	Material    string
	Type        ContentType
}

// Chunk is a bounded slice of preprocessed source text. The topics label is
// carried over from the source header so later chunks keep their context.
// Chunks must be processed in Index order.
type Chunk struct {
	Text   string
	Topics string
	Index  int
}

// QuizQuestion is a multiple-choice question generated by the model.
// Invariant: exactly 4 non-empty options, CorrectAnswer equals Options[0]
// verbatim, non-empty Explanation.
type QuizQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Valid reports whether the question satisfies the record invariant.
func (q QuizQuestion) Valid() bool {
	if q.Question == "" || q.Explanation == "" {
		return false
	}
	if len(q.Options) != 4 {
		return false
	}
	for _, opt := range q.Options {
		if opt == "" {
			return false
		}
	}
	return q.CorrectAnswer != "" && q.CorrectAnswer == q.Options[0]
}

// FlashcardType is a bounded enum of supported card styles.
type FlashcardType string

const (
	FlashcardBasic      FlashcardType = "basic"
	FlashcardCloze      FlashcardType = "cloze"
	FlashcardDefinition FlashcardType = "definition"
	FlashcardScenario   FlashcardType = "scenario"
)

// Flashcard is a front/back study card generated by the model.
type Flashcard struct {
	Type       FlashcardType `json:"type"`
	Front      string        `json:"front"`
	Back       string        `json:"back"`
	Topic      string        `json:"topic,omitempty"`
	Difficulty string        `json:"difficulty,omitempty"`
	Tags       []string      `json:"tags,omitempty"`
}

// Valid reports whether the card has the required fields.
func (f Flashcard) Valid() bool {
	return f.Type != "" && f.Front != "" && f.Back != ""
}

package service

import (
	"fmt"
	"strings"

	"navprep/internal/domain"
)

// retryGuidance is prepended to the user content on retry attempts. Lower
// temperature plus an explicit simplification request reduces the chance of
// a second malformed response.
const retryGuidance = `IMPORTANT: Your previous response could not be parsed. ` +
	`Simplify your answer, follow the requested output format exactly, and ` +
	`return nothing except the formatted output.

`

const quizSystemPrompt = `You are a study-prep assistant for United States Navy advancement exams.
You write multiple-choice quiz questions from source material supplied by the user.
Respond with ONLY a JSON array. Each element must be an object with exactly these fields:
"question" (string), "options" (array of exactly 4 strings), "correctAnswer" (string), "explanation" (string).
The correct answer MUST be the first element of "options" and "correctAnswer" must repeat it verbatim.
Do not add markdown, commentary, or any text outside of the JSON array.`

const flashcardSystemPrompt = `You are a study-prep assistant for United States Navy advancement exams.
You write flashcards from source material supplied by the user.
Respond with ONLY a YAML list. Each entry must have these keys:
type (one of: basic, cloze, definition, scenario), front, back,
and optionally topic, difficulty (Basic, Intermediate, or Advanced), and tags (comma separated).
Do not add markdown fences, commentary, or any text outside of the YAML list.`

const navadminSystemPrompt = `You are a Navy administrative message formatter.
Rewrite the supplied text as a properly structured NAVADMIN message:
all uppercase, numbered paragraphs (1., 1.A., 2., ...), standard header and
closing sections (SUBJ, RMKS, released-by line). Preserve every substantive
fact from the source text. Respond with only the formatted message.`

const summarySystemPrompt = `You are a study-prep assistant for United States Navy personnel.
Summarize the supplied material into concise study notes: key facts,
definitions, procedures, and numbers a sailor would be tested on.
Respond with only the summary text.`

// buildQuizUserPrompt renders the per-chunk user prompt for quiz generation.
// Chunks after the first reference the preceding material so the model keeps
// continuity without repeating questions.
func buildQuizUserPrompt(content domain.RawContent, chunk domain.Chunk, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create %d quiz questions from the following material.\n", count)
	fmt.Fprintf(&b, "Title: %s\n", content.Title)
	if content.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", content.Description)
	}
	if chunk.Index > 0 {
		fmt.Fprintf(&b, "This is a continuation of material from previous chunks (part %d); do not repeat earlier questions.\n", chunk.Index+1)
	}
	b.WriteString("\nMaterial:\n")
	b.WriteString(chunk.Text)
	return b.String()
}

func buildFlashcardUserPrompt(content domain.RawContent, chunk domain.Chunk, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create %d flashcards from the following material.\n", count)
	fmt.Fprintf(&b, "Title: %s\n", content.Title)
	if content.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", content.Description)
	}
	if chunk.Index > 0 {
		fmt.Fprintf(&b, "This is a continuation of material from previous chunks (part %d); do not repeat earlier cards.\n", chunk.Index+1)
	}
	b.WriteString("\nMaterial:\n")
	b.WriteString(chunk.Text)
	return b.String()
}

func buildNavadminUserPrompt(chunk domain.Chunk, totalChunks int) string {
	var b strings.Builder
	if totalChunks > 1 {
		fmt.Fprintf(&b, "Format part %d of %d of the message text below. Continue the paragraph numbering from earlier parts.\n\n", chunk.Index+1, totalChunks)
	} else {
		b.WriteString("Format the message text below.\n\n")
	}
	b.WriteString(chunk.Text)
	return b.String()
}

func buildSummaryUserPrompt(chunk domain.Chunk, totalChunks int) string {
	var b strings.Builder
	if totalChunks > 1 {
		fmt.Fprintf(&b, "Summarize part %d of %d of the material below.\n\n", chunk.Index+1, totalChunks)
	} else {
		b.WriteString("Summarize the material below.\n\n")
	}
	b.WriteString(chunk.Text)
	return b.String()
}

// buildCombinePrompt condenses the joined per-chunk summaries into one.
func buildCombinePrompt(joined string) string {
	return "The following are summaries of consecutive parts of one document. " +
		"Combine them into a single coherent summary without losing key facts.\n\n" + joined
}

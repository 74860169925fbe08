// Package parser recovers structured study records from model output that is
// not guaranteed to be well-formed JSON or YAML. Repair is best-effort and
// bounded to a small number of named stages; records that survive parsing but
// violate their validity invariant are dropped, never corrected.
package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"navprep/internal/domain"
)

// ParseResult carries the validated questions plus counts describing how
// much of the raw response survived validation.
type ParseResult struct {
	Questions     []domain.QuizQuestion
	OriginalCount int
	ValidCount    int
}

var (
	whitespaceRuns    = regexp.MustCompile(`\s+`)
	trailingCommas    = regexp.MustCompile(`,\s*([}\]])`)
	emptyObjects      = regexp.MustCompile(`\{\s*\}\s*,?`)
	emptyArrays       = regexp.MustCompile(`\[\s*\]\s*,?`)
	missingCommas     = regexp.MustCompile(`(["\d\]}]|\btrue\b|\bfalse\b|\bnull\b)\s*([{\[])`)
	doubledCommas     = regexp.MustCompile(`,\s*,+`)
	literalCase       = regexp.MustCompile(`\b(True|TRUE|False|FALSE|Null|NULL|None)\b`)
	disallowedChars   = regexp.MustCompile(`[^a-zA-Z0-9\s.,:;?!'"\[\]{}\-_()/%=+*&$#@]`)
	commaBeforeCloser = regexp.MustCompile(`,\s*$`)
)

// ParseQuizQuestions recovers a list of quiz questions from a raw model
// response. The bracket-sliced text is parsed as-is first: a well-formed
// response must come back byte-identical, and the repair regexes cannot
// distinguish string content from structure. Only when that parse fails does
// the fallback chain run: structural cleanup, a reparse, bracketed-fragment
// extraction, then an aggressive character-strip pass. If every stage fails
// the error references the first parse failure. Invalid records are dropped
// and counted, not fixed: reordering options to force the correct answer
// into first place would break answer-explanation coherence.
func ParseQuizQuestions(raw string) (ParseResult, error) {
	records, parseErr := parseRecordArray(sliceToArray(strings.TrimSpace(raw)))
	if parseErr != nil {
		cleaned := cleanStructure(raw)
		if cleaned == "" {
			// Empty-entry removal can consume a bare "[]" response entirely.
			cleaned = "[]"
		}

		var repairErr error
		records, repairErr = parseRecordArray(cleaned)
		if repairErr != nil {
			records = parseFragments(cleaned)
			if records == nil {
				records = parseAggressive(cleaned)
			}
			if records == nil {
				return ParseResult{}, domain.NewParseError(parseErr)
			}
		}
	}

	result := ParseResult{OriginalCount: len(records)}
	for _, rec := range records {
		q, ok := decodeQuestion(rec)
		if !ok || !q.Valid() {
			continue
		}
		result.Questions = append(result.Questions, q)
	}
	result.ValidCount = len(result.Questions)
	return result, nil
}

// cleanStructure is the first repair stage: bracket slicing, whitespace
// collapse, quote repair, trailing-comma and empty-entry removal, missing
// comma insertion, and literal normalization. Pure function over strings.
func cleanStructure(raw string) string {
	s := strings.TrimSpace(raw)
	s = sliceToArray(s)
	s = whitespaceRuns.ReplaceAllString(s, " ")
	s = collapseDoubledQuotes(s)
	s = escapeInnerQuotes(s)
	s = literalCase.ReplaceAllStringFunc(s, func(m string) string {
		switch strings.ToLower(m) {
		case "true":
			return "true"
		case "false":
			return "false"
		default:
			return "null"
		}
	})
	s = emptyObjects.ReplaceAllString(s, "")
	s = emptyArrays.ReplaceAllString(s, "")
	s = missingCommas.ReplaceAllString(s, "$1,$2")
	s = doubledCommas.ReplaceAllString(s, ",")
	s = trailingCommas.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}

// sliceToArray cuts the response down to the span between the first '[' and
// the last ']'. Model output frequently wraps the array in prose or a fenced
// code block. When no bracket exists at all the whole string is wrapped so
// a single bare object still has a chance to parse.
func sliceToArray(s string) string {
	start := strings.Index(s, "[")
	if start == -1 {
		return "[" + s + "]"
	}
	end := strings.LastIndex(s, "]")
	if end <= start {
		return s[start:] + "]"
	}
	return s[start : end+1]
}

// collapseDoubledQuotes undoes two common model mistakes: doubled quotes
// ("" used instead of ") and over-escaped quotes (\\" sequences).
func collapseDoubledQuotes(s string) string {
	s = strings.ReplaceAll(s, `\\"`, `\"`)
	// A doubled quote inside a token position is an empty string literal
	// only when it sits next to a structural character; elsewhere it is
	// noise from the model quoting its own quotes.
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '"' && i+1 < len(s) && s[i+1] == '"' {
			next := nextNonSpace(s, i+2)
			prev := prevNonSpace(s, i-1)
			structural := func(c byte) bool {
				return c == ',' || c == ':' || c == '{' || c == '}' || c == '[' || c == ']' || c == 0
			}
			if !structural(next) || !structural(prev) {
				b.WriteByte('"')
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// escapeInnerQuotes walks the string tracking whether we are inside a JSON
// string literal. A quote met inside a literal only terminates it when the
// next non-space character is structural; otherwise it is an unescaped inner
// quote and gets escaped.
func escapeInnerQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 16)
	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			b.WriteByte(c)
			b.WriteByte(s[i+1])
			i++
			continue
		}
		if c != '"' {
			b.WriteByte(c)
			continue
		}
		if !inString {
			inString = true
			b.WriteByte(c)
			continue
		}
		next := nextNonSpace(s, i+1)
		if next == ',' || next == ':' || next == '}' || next == ']' || next == 0 {
			inString = false
			b.WriteByte(c)
			continue
		}
		b.WriteString(`\"`)
	}
	return b.String()
}

func nextNonSpace(s string, i int) byte {
	for ; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' && s[i] != '\n' {
			return s[i]
		}
	}
	return 0
}

func prevNonSpace(s string, i int) byte {
	for ; i >= 0; i-- {
		if s[i] != ' ' && s[i] != '\t' && s[i] != '\n' {
			return s[i]
		}
	}
	return 0
}

// parseRecordArray attempts a direct JSON parse of the cleaned string. On a
// syntax error the diagnostic shows roughly 100 characters around the
// reported offset.
func parseRecordArray(s string) ([]json.RawMessage, error) {
	var records []json.RawMessage
	if err := json.Unmarshal([]byte(s), &records); err != nil {
		if syntaxErr, ok := err.(*json.SyntaxError); ok {
			return nil, fmt.Errorf("%w near %q", err, errorWindow(s, int(syntaxErr.Offset)))
		}
		return nil, err
	}
	return records, nil
}

func errorWindow(s string, offset int) string {
	start := offset - 50
	if start < 0 {
		start = 0
	}
	end := offset + 50
	if end > len(s) {
		end = len(s)
	}
	return s[start:end]
}

// parseFragments extracts every top-level balanced bracketed substring and
// parses each individually, keeping the first that succeeds.
func parseFragments(s string) []json.RawMessage {
	for _, fragment := range balancedArrays(s) {
		if records, err := parseRecordArray(fragment); err == nil {
			return records
		}
	}
	return nil
}

// balancedArrays returns every top-level [...] span in s, by bracket depth.
func balancedArrays(s string) []string {
	var spans []string
	depth := 0
	start := -1
	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && inString {
			i++
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch c {
		case '[':
			if depth == 0 {
				start = i
			}
			depth++
		case ']':
			if depth > 0 {
				depth--
				if depth == 0 && start != -1 {
					spans = append(spans, s[start:i+1])
					start = -1
				}
			}
		}
	}
	return spans
}

// parseAggressive is the last repair stage: strip characters outside a
// conservative allowed set, convert single quotes to double quotes, strip
// trailing commas again, and retry once.
func parseAggressive(s string) []json.RawMessage {
	s = disallowedChars.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "'", `"`)
	s = trailingCommas.ReplaceAllString(s, "$1")
	s = commaBeforeCloser.ReplaceAllString(s, "")
	records, err := parseRecordArray(s)
	if err != nil {
		return nil
	}
	return records
}

package parser

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"navprep/internal/domain"
	"navprep/internal/util"
)

// flexString decodes a JSON scalar of any type into its string form. Models
// occasionally emit numbers for id fields or booleans for text fields; a
// typed decoding failure here drops the record instead of silently
// defaulting fields to empty strings.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexString(strconv.FormatFloat(n, 'f', -1, 64))
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = flexString(strconv.FormatBool(b))
		return nil
	}
	if strings.TrimSpace(string(data)) == "null" {
		*f = ""
		return nil
	}
	return fmt.Errorf("cannot decode %s as a scalar field", string(data))
}

type rawQuestion struct {
	ID            flexString   `json:"id"`
	Question      flexString   `json:"question"`
	Options       []flexString `json:"options"`
	CorrectAnswer flexString   `json:"correctAnswer"`
	Explanation   flexString   `json:"explanation"`
}

// decodeQuestion parses a single raw record into a typed QuizQuestion.
// Validation of the record invariant happens separately; this only rejects
// records whose shape cannot be decoded at all.
func decodeQuestion(rec json.RawMessage) (domain.QuizQuestion, bool) {
	var rq rawQuestion
	if err := json.Unmarshal(rec, &rq); err != nil {
		return domain.QuizQuestion{}, false
	}

	q := domain.QuizQuestion{
		ID:            strings.TrimSpace(string(rq.ID)),
		Question:      strings.TrimSpace(string(rq.Question)),
		CorrectAnswer: strings.TrimSpace(string(rq.CorrectAnswer)),
		Explanation:   strings.TrimSpace(string(rq.Explanation)),
	}
	for _, opt := range rq.Options {
		q.Options = append(q.Options, strings.TrimSpace(string(opt)))
	}
	if q.ID == "" {
		q.ID = util.NewULID()
	}
	return q, true
}

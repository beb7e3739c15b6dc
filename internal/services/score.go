package services

import (
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// TotalScore sums the scores of the captured answers. Unanswered
// questions have no entry and contribute nothing.
func TotalScore(answers []Answer) int {
	total := 0
	for _, a := range answers {
		total += a.Score
	}
	return total
}

// AnswerSheet captures answers for one template during an active audit
// session. State is in-memory only; nothing is persisted until the
// session submits. A question has at most one live answer at a time:
// re-recording overwrites the prior entry (last write wins).
type AnswerSheet struct {
	questions map[string]*Question
	answers   map[string]Answer
	order     []string
}

func NewAnswerSheet(t *FormTemplate) *AnswerSheet {
	sheet := &AnswerSheet{
		questions: map[string]*Question{},
		answers:   map[string]Answer{},
	}
	if t == nil {
		return sheet
	}
	for ci := range t.Categories {
		for qi := range t.Categories[ci].Questions {
			q := &t.Categories[ci].Questions[qi]
			sheet.questions[q.QuestionID] = q
		}
	}
	return sheet
}

// Record captures a raw response for the given question. The answer
// value and score are derived from the question type:
//
//   - multiple-choice: raw must match an option text; the option's
//     score is captured.
//   - text: the raw string is captured, score 0.
//   - number: raw must parse as a number, score 0.
//   - date / time: raw must parse in "2006-01-02" / "15:04" form,
//     score 0.
func (s *AnswerSheet) Record(questionID, raw string) error {
	q, ok := s.questions[questionID]
	if !ok {
		return NewNotFoundError("question not found")
	}

	ans := Answer{QuestionID: questionID}
	switch q.Type {
	case QuestionMultipleChoice:
		opt := findOption(q.Options, raw)
		if opt == nil {
			return NewInvalidError("option does not belong to question")
		}
		ans.Answer = opt.Text
		ans.Score = opt.Score
	case QuestionText:
		ans.Answer = raw
	case QuestionNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return NewInvalidError("numeric answer expected")
		}
		ans.Answer = n
	case QuestionDate:
		if _, err := time.Parse(dateLayout, strings.TrimSpace(raw)); err != nil {
			return NewInvalidError("date answer expected as " + dateLayout)
		}
		ans.Answer = strings.TrimSpace(raw)
	case QuestionTime:
		if _, err := time.Parse(timeLayout, strings.TrimSpace(raw)); err != nil {
			return NewInvalidError("time answer expected as " + timeLayout)
		}
		ans.Answer = strings.TrimSpace(raw)
	default:
		return NewInvalidError("unsupported question type: " + string(q.Type))
	}

	if _, exists := s.answers[questionID]; !exists {
		s.order = append(s.order, questionID)
	}
	s.answers[questionID] = ans
	return nil
}

// Answers returns a snapshot of the captured answers in first-capture
// order.
func (s *AnswerSheet) Answers() []Answer {
	out := make([]Answer, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.answers[id])
	}
	return out
}

// Total recomputes the aggregate score from the current captures. It is
// never cached.
func (s *AnswerSheet) Total() int {
	return TotalScore(s.Answers())
}

func findOption(opts []Option, text string) *Option {
	for i := range opts {
		if opts[i].Text == text {
			return &opts[i]
		}
	}
	return nil
}

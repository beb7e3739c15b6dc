package services

import "testing"

func scoringTemplate() *FormTemplate {
	return &FormTemplate{
		ID:    "T1",
		Title: "Hygiene Walkthrough",
		Categories: []Category{
			{
				CategoryID: "C1",
				Name:       "Storefront",
				Order:      1,
				Questions: []Question{
					{
						QuestionID: "q1",
						Text:       "Is the window display clean?",
						Type:       QuestionMultipleChoice,
						Order:      1,
						Options:    []Option{{Text: "A", Score: 5}, {Text: "B", Score: 2}},
					},
					{QuestionID: "q2", Text: "Notes", Type: QuestionText, Order: 2},
					{QuestionID: "q3", Text: "Fridge temperature", Type: QuestionNumber, Order: 3},
					{QuestionID: "q4", Text: "Delivery date", Type: QuestionDate, Order: 4},
					{QuestionID: "q5", Text: "Opening time", Type: QuestionTime, Order: 5},
				},
			},
		},
	}
}

func TestRecordMultipleChoiceAndText(t *testing.T) {
	sheet := NewAnswerSheet(scoringTemplate())

	if err := sheet.Record("q1", "A"); err != nil {
		t.Fatalf("record q1: %v", err)
	}
	if err := sheet.Record("q2", "note"); err != nil {
		t.Fatalf("record q2: %v", err)
	}

	answers := sheet.Answers()
	if len(answers) != 2 {
		t.Fatalf("answers = %d, want 2", len(answers))
	}
	if answers[0].QuestionID != "q1" || answers[0].Answer != "A" || answers[0].Score != 5 {
		t.Fatalf("q1 answer = %+v, want {q1 A 5}", answers[0])
	}
	if answers[1].QuestionID != "q2" || answers[1].Answer != "note" || answers[1].Score != 0 {
		t.Fatalf("q2 answer = %+v, want {q2 note 0}", answers[1])
	}
	if got := sheet.Total(); got != 5 {
		t.Fatalf("total = %d, want 5", got)
	}
}

func TestReselectionLastWriteWins(t *testing.T) {
	sheet := NewAnswerSheet(scoringTemplate())

	if err := sheet.Record("q1", "A"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := sheet.Record("q1", "B"); err != nil {
		t.Fatalf("re-record: %v", err)
	}
	if got := len(sheet.Answers()); got != 1 {
		t.Fatalf("answers = %d, want 1 (replace, not add)", got)
	}
	if got := sheet.Total(); got != 2 {
		t.Fatalf("total after overwrite = %d, want 2", got)
	}

	// Selecting the same option twice yields the same total as once.
	if err := sheet.Record("q1", "B"); err != nil {
		t.Fatalf("idempotent re-record: %v", err)
	}
	if got := sheet.Total(); got != 2 {
		t.Fatalf("total after idempotent re-select = %d, want 2", got)
	}
}

func TestRecordRejectsUnknownOptionAndQuestion(t *testing.T) {
	sheet := NewAnswerSheet(scoringTemplate())

	if err := sheet.Record("q1", "C"); err == nil {
		t.Fatalf("expected error for option not on the question")
	}
	if err := sheet.Record("missing", "A"); err == nil {
		t.Fatalf("expected error for unknown question")
	}
	if got := len(sheet.Answers()); got != 0 {
		t.Fatalf("rejected records must not capture answers, got %d", got)
	}
}

func TestRecordTypedValues(t *testing.T) {
	sheet := NewAnswerSheet(scoringTemplate())

	if err := sheet.Record("q3", "4.5"); err != nil {
		t.Fatalf("number: %v", err)
	}
	if err := sheet.Record("q3", "cold"); err == nil {
		t.Fatalf("expected error for non-numeric answer")
	}
	if err := sheet.Record("q4", "2026-08-31"); err != nil {
		t.Fatalf("date: %v", err)
	}
	if err := sheet.Record("q4", "31/08/2026"); err == nil {
		t.Fatalf("expected error for malformed date")
	}
	if err := sheet.Record("q5", "09:30"); err != nil {
		t.Fatalf("time: %v", err)
	}
	if err := sheet.Record("q5", "late"); err == nil {
		t.Fatalf("expected error for malformed time")
	}

	// None of the typed captures carry a score.
	if got := sheet.Total(); got != 0 {
		t.Fatalf("total = %d, want 0 for non-scored types", got)
	}
}

func TestTotalScoreEmpty(t *testing.T) {
	if got := TotalScore(nil); got != 0 {
		t.Fatalf("TotalScore(nil) = %d, want 0", got)
	}
	if got := NewAnswerSheet(scoringTemplate()).Total(); got != 0 {
		t.Fatalf("empty sheet total = %d, want 0", got)
	}
}

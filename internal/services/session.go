package services

import (
	"errors"
	"fmt"
	"time"
)

// SessionStore abstracts the lookups and the single write performed by
// an audit session.
type SessionStore interface {
	GetTemplate(id string) (*FormTemplate, error)
	GetStore(id string) (*Store, error)
	AddAudit(a *Audit) error
}

// SessionState tracks the lifecycle of one audit session.
type SessionState string

const (
	SessionLoading          SessionState = "loading"
	SessionReady            SessionState = "ready"
	SessionLoadError        SessionState = "load_error"
	SessionSubmitting       SessionState = "submitting"
	SessionSubmitted        SessionState = "submitted"
	SessionSubmissionFailed SessionState = "submission_failed"
)

var (
	// ErrMissingContext is returned when the template id, store id or
	// auditor identity is absent before any lookup is attempted.
	ErrMissingContext = errors.New("missing audit context")
	// ErrTemplateNotFound is returned when the selected template does not resolve.
	ErrTemplateNotFound = errors.New("form template not found")
	// ErrStoreNotFound is returned when the selected store does not resolve.
	ErrStoreNotFound = errors.New("store not found")
	// ErrSubmissionFailed wraps a rejected audit write. Captured answers
	// stay intact so the session can be retried.
	ErrSubmissionFailed = errors.New("audit submission failed")
)

// AuditSession drives a single auditor through the answering step of
// the workflow: load the (template, store) context, capture answers,
// and submit one immutable audit record.
//
// States: Loading -> Ready -> Submitting -> {Submitted |
// SubmissionFailed}; SubmissionFailed is retryable back to Ready.
// Loading -> LoadError is terminal.
type AuditSession struct {
	store SessionStore
	now   func() time.Time
	idGen func() string

	state     SessionState
	auditorID string

	template *FormTemplate
	storeRec *Store
	sheet    *AnswerSheet
}

func NewAuditSession(store SessionStore) *AuditSession {
	return &AuditSession{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return shortID(12) },
		state: SessionLoading,
	}
}

func (s *AuditSession) State() SessionState { return s.state }

// Template returns the loaded template with categories and questions
// sorted for rendering. Nil until the session is ready.
func (s *AuditSession) Template() *FormTemplate { return s.template }

// Store returns the loaded store record. Nil until the session is ready.
func (s *AuditSession) Store() *Store { return s.storeRec }

// Load enters the answering step. It requires both ids and a resolved
// auditor before any fetch is attempted, then performs the two
// independent lookups. Any failure is terminal for the session: no
// partial context is ever exposed.
func (s *AuditSession) Load(templateID, storeID, auditorID string) error {
	if s.state != SessionLoading {
		return NewInvalidError(fmt.Sprintf("session already %s", s.state))
	}
	if templateID == "" || storeID == "" || auditorID == "" {
		s.state = SessionLoadError
		return ErrMissingContext
	}

	tpl, err := s.store.GetTemplate(templateID)
	if err != nil {
		s.state = SessionLoadError
		return err
	}
	if tpl == nil {
		s.state = SessionLoadError
		return ErrTemplateNotFound
	}
	st, err := s.store.GetStore(storeID)
	if err != nil {
		s.state = SessionLoadError
		return err
	}
	if st == nil {
		s.state = SessionLoadError
		return ErrStoreNotFound
	}

	s.auditorID = auditorID
	s.template = SortTemplate(tpl)
	s.storeRec = st
	s.sheet = NewAnswerSheet(s.template)
	s.state = SessionReady
	return nil
}

// Record captures one raw answer. Only valid while the session is ready.
func (s *AuditSession) Record(questionID, raw string) error {
	if s.state != SessionReady {
		return NewInvalidError(fmt.Sprintf("cannot record answers while session is %s", s.state))
	}
	return s.sheet.Record(questionID, raw)
}

// Answers returns the current captured snapshot.
func (s *AuditSession) Answers() []Answer {
	if s.sheet == nil {
		return nil
	}
	return s.sheet.Answers()
}

// Submit recomputes the total score, builds the audit record and
// persists it as a single new document. Zero answered questions is a
// valid submission. Both timestamps are set to the submission instant;
// the workflow does not capture a true start time.
func (s *AuditSession) Submit() (*Audit, error) {
	if s.state != SessionReady {
		return nil, NewInvalidError(fmt.Sprintf("cannot submit while session is %s", s.state))
	}
	s.state = SessionSubmitting

	answers := s.sheet.Answers()
	at := s.now()
	audit := &Audit{
		ID:             s.idGen(),
		FormTemplateID: s.template.ID,
		StoreID:        s.storeRec.ID,
		AuditorID:      s.auditorID,
		Status:         AuditStatusCompleted,
		StartedAt:      at,
		CompletedAt:    at,
		TotalScore:     TotalScore(answers),
		Answers:        answers,
	}
	if err := s.store.AddAudit(audit); err != nil {
		s.state = SessionSubmissionFailed
		return nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	s.state = SessionSubmitted
	return audit, nil
}

// Retry returns a failed submission to the ready state with all
// captured answers intact.
func (s *AuditSession) Retry() error {
	if s.state != SessionSubmissionFailed {
		return NewInvalidError(fmt.Sprintf("cannot retry while session is %s", s.state))
	}
	s.state = SessionReady
	return nil
}

package services

import "time"

// Role assigned to a user profile. Anything else is treated as unauthorized.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleAuditor Role = "Auditor"
)

// UserProfile is the resolved identity of an authenticated principal.
type UserProfile struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL,omitempty"`
	Role        Role   `json:"role"`
}

// Store is a physical location that can be audited.
type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// QuestionType enumerates the answer shapes a question accepts.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionText           QuestionType = "text"
	QuestionNumber         QuestionType = "number"
	QuestionDate           QuestionType = "date"
	QuestionTime           QuestionType = "time"
)

// Option is one selectable answer of a multiple-choice question.
// Its score feeds the audit total when selected.
type Option struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// Question belongs to a category. Order values need only be comparable,
// not contiguous.
type Question struct {
	QuestionID string       `json:"questionId"`
	Text       string       `json:"text"`
	Type       QuestionType `json:"type"`
	Options    []Option     `json:"options,omitempty"`
	Order      int          `json:"order"`
}

// Category groups questions inside a template.
type Category struct {
	CategoryID string     `json:"categoryId"`
	Name       string     `json:"name"`
	Order      int        `json:"order"`
	Questions  []Question `json:"questions"`
}

// FormTemplate is an ordered tree of categories and questions defining
// an audit form.
type FormTemplate struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	IsActive    bool       `json:"isActive"`
	Categories  []Category `json:"categories"`
}

// Answer is a captured response for a single question. Score is 0 for
// every non-scored question type.
type Answer struct {
	QuestionID string `json:"questionId"`
	Answer     any    `json:"answer"`
	Score      int    `json:"score"`
}

// AuditStatusCompleted is the only status ever written; there is no
// persisted in-progress state.
const AuditStatusCompleted = "completed"

// Audit is one completed execution of a template against a store.
// Created exactly once at submission and immutable thereafter.
type Audit struct {
	ID             string    `json:"id"`
	FormTemplateID string    `json:"formTemplateId"`
	StoreID        string    `json:"storeId"`
	AuditorID      string    `json:"auditorId"`
	Status         string    `json:"status"`
	StartedAt      time.Time `json:"startedAt"`
	CompletedAt    time.Time `json:"completedAt"`
	TotalScore     int       `json:"totalScore"`
	Answers        []Answer  `json:"answers"`
}

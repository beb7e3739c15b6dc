package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ErrorCode string

const (
	ErrorInvalid      ErrorCode = "invalid"
	ErrorForbidden    ErrorCode = "forbidden"
	ErrorNotFound     ErrorCode = "not_found"
	ErrorConflict     ErrorCode = "conflict"
	ErrorUnauthorized ErrorCode = "unauthorized"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func NewInvalidError(msg string) error   { return &ServiceError{Code: ErrorInvalid, Message: msg} }
func NewForbiddenError(msg string) error { return &ServiceError{Code: ErrorForbidden, Message: msg} }
func NewNotFoundError(msg string) error  { return &ServiceError{Code: ErrorNotFound, Message: msg} }
func NewConflictError(msg string) error  { return &ServiceError{Code: ErrorConflict, Message: msg} }
func NewUnauthorizedError(msg string) error {
	return &ServiceError{Code: ErrorUnauthorized, Message: msg}
}

func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// TemplateStore abstracts persistence operations required by TemplateService.
type TemplateStore interface {
	InsertTemplate(t *FormTemplate) (*FormTemplate, error)
	GetTemplate(id string) (*FormTemplate, error)
	UpdateTemplate(t *FormTemplate) error
	DeleteTemplate(id string) error
	ListTemplates() ([]*FormTemplate, error)
}

// TemplateService hosts the admin CRUD surface for audit form templates.
type TemplateService struct {
	store TemplateStore
	now   func() time.Time
}

func NewTemplateService(store TemplateStore) *TemplateService {
	return &TemplateService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *TemplateService) CreateTemplate(t *FormTemplate) (*FormTemplate, error) {
	if t == nil {
		return nil, NewInvalidError("template required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return nil, NewInvalidError("template title required")
	}
	if t.ID == "" {
		t.ID = shortID(8)
	}
	for ci := range t.Categories {
		if t.Categories[ci].CategoryID == "" {
			t.Categories[ci].CategoryID = shortID(8)
		}
		for qi := range t.Categories[ci].Questions {
			if t.Categories[ci].Questions[qi].QuestionID == "" {
				t.Categories[ci].Questions[qi].QuestionID = shortID(8)
			}
		}
	}
	created, err := s.store.InsertTemplate(t)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return t, nil
	}
	return created, nil
}

func (s *TemplateService) UpdateTemplate(t *FormTemplate) error {
	if t == nil {
		return NewInvalidError("template required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return NewInvalidError("template title required")
	}
	old, err := s.store.GetTemplate(t.ID)
	if err != nil {
		return err
	}
	if old == nil {
		return NewNotFoundError("template not found")
	}
	return s.store.UpdateTemplate(t)
}

// DeleteTemplate removes the template only. Audits referencing it keep
// their id and fall back to a sentinel label at read time.
func (s *TemplateService) DeleteTemplate(id string) error {
	return s.store.DeleteTemplate(id)
}

func (s *TemplateService) GetTemplate(id string) (*FormTemplate, error) {
	t, err := s.store.GetTemplate(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, NewNotFoundError("template not found")
	}
	return SortTemplate(t), nil
}

func (s *TemplateService) ListTemplates() ([]*FormTemplate, error) {
	return s.store.ListTemplates()
}

// SortTemplate returns a copy of t with categories and their questions
// ordered ascending by Order. Order values are comparable but not
// necessarily contiguous.
func SortTemplate(t *FormTemplate) *FormTemplate {
	if t == nil {
		return nil
	}
	out := *t
	out.Categories = append([]Category(nil), t.Categories...)
	sort.SliceStable(out.Categories, func(i, j int) bool {
		return out.Categories[i].Order < out.Categories[j].Order
	})
	for ci := range out.Categories {
		qs := append([]Question(nil), out.Categories[ci].Questions...)
		sort.SliceStable(qs, func(i, j int) bool { return qs[i].Order < qs[j].Order })
		out.Categories[ci].Questions = qs
	}
	return &out
}

func shortID(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}

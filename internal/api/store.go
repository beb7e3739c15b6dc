package api

import (
	"strings"
	"sync"
	"time"
)

type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	PassHash    []byte    `json:"-"`
	DisplayName string    `json:"displayName"`
	PhotoURL    string    `json:"photoURL,omitempty"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type Option struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

type Question struct {
	QuestionID string   `json:"questionId"`
	Text       string   `json:"text"`
	Type       string   `json:"type"`
	Options    []Option `json:"options,omitempty"`
	Order      int      `json:"order"`
}

type Category struct {
	CategoryID string     `json:"categoryId"`
	Name       string     `json:"name"`
	Order      int        `json:"order"`
	Questions  []Question `json:"questions"`
}

type FormTemplate struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	IsActive    bool       `json:"isActive"`
	Categories  []Category `json:"categories"`
}

type Answer struct {
	QuestionID string `json:"questionId"`
	Answer     any    `json:"answer"`
	Score      int    `json:"score"`
}

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

type memoryStore struct {
	mu           sync.RWMutex
	users        map[string]*User
	usersByEmail map[string]*User
	stores       map[string]*Store
	templates    map[string]*FormTemplate
	audits       []*Audit
}

func NewMemoryStore() Datastore { return newMemoryStore() }

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:        map[string]*User{},
		usersByEmail: map[string]*User{},
		stores:       map[string]*Store{},
		templates:    map[string]*FormTemplate{},
		audits:       []*Audit{},
	}
}

func (s *memoryStore) AddUser(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	s.usersByEmail[strings.ToLower(u.Email)] = u
}

func (s *memoryStore) GetUser(id string) *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users[id]
}

func (s *memoryStore) FindUserByEmail(email string) *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usersByEmail[strings.ToLower(email)]
}

func (s *memoryStore) AddStore(st *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stores[st.ID] = st
}

func (s *memoryStore) UpdateStore(st *Store) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stores[st.ID]; !ok {
		return false
	}
	s.stores[st.ID] = st
	return true
}

func (s *memoryStore) DeleteStore(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stores[id]; !ok {
		return false
	}
	delete(s.stores, id)
	return true
}

func (s *memoryStore) GetStore(id string) *Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stores[id]
}

func (s *memoryStore) ListStores() []*Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Store, 0, len(s.stores))
	for _, st := range s.stores {
		out = append(out, st)
	}
	return out
}

func (s *memoryStore) ListActiveStores() []*Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*Store{}
	for _, st := range s.stores {
		if st.IsActive {
			out = append(out, st)
		}
	}
	return out
}

func (s *memoryStore) AddTemplate(t *FormTemplate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[t.ID] = t
}

func (s *memoryStore) UpdateTemplate(t *FormTemplate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.templates[t.ID]; !ok {
		return false
	}
	s.templates[t.ID] = t
	return true
}

func (s *memoryStore) DeleteTemplate(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.templates[id]; !ok {
		return false
	}
	delete(s.templates, id)
	return true
}

func (s *memoryStore) GetTemplate(id string) *FormTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.templates[id]
}

func (s *memoryStore) ListTemplates() []*FormTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*FormTemplate, 0, len(s.templates))
	for _, t := range s.templates {
		out = append(out, t)
	}
	return out
}

func (s *memoryStore) ListActiveTemplates() []*FormTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*FormTemplate{}
	for _, t := range s.templates {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return out
}

func (s *memoryStore) AddAudit(a *Audit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audits = append(s.audits, a)
	return nil
}

func (s *memoryStore) GetAudit(id string) *Audit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.audits {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (s *memoryStore) ListAudits() []*Audit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Audit(nil), s.audits...)
}

func (s *memoryStore) ListAuditsByAuditor(auditorID string) []*Audit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*Audit{}
	for _, a := range s.audits {
		if a.AuditorID == auditorID {
			out = append(out, a)
		}
	}
	return out
}

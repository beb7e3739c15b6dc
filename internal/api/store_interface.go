package api

// Datastore is the document-store surface the application is built on:
// one collection each for users, stores, form templates and audits.
// Reads are full-collection, equality-filtered, or by-id; writes are
// single independent documents with last-write-wins semantics.
type Datastore interface {
	AddUser(u *User)
	GetUser(id string) *User
	FindUserByEmail(email string) *User

	AddStore(st *Store)
	UpdateStore(st *Store) bool
	DeleteStore(id string) bool
	GetStore(id string) *Store
	ListStores() []*Store
	ListActiveStores() []*Store

	AddTemplate(t *FormTemplate)
	UpdateTemplate(t *FormTemplate) bool
	DeleteTemplate(id string) bool
	GetTemplate(id string) *FormTemplate
	ListTemplates() []*FormTemplate
	ListActiveTemplates() []*FormTemplate

	AddAudit(a *Audit) error
	GetAudit(id string) *Audit
	ListAudits() []*Audit
	ListAuditsByAuditor(auditorID string) []*Audit
}

var _ Datastore = (*memoryStore)(nil)

package services

// CatalogStore exposes the equality-filtered reads used when an
// auditor initiates a new audit.
type CatalogStore interface {
	ListActiveStores() ([]*Store, error)
	ListActiveTemplates() ([]*FormTemplate, error)
}

// CatalogService serves the audit-initiation listings: only active
// stores and active templates are offered. No pagination; collections
// are assumed small enough for a single full fetch, and ordering is
// whatever the backend returns.
type CatalogService struct {
	store CatalogStore
}

func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) ActiveStores() ([]*Store, error) {
	return s.store.ListActiveStores()
}

func (s *CatalogService) ActiveTemplates() ([]*FormTemplate, error) {
	return s.store.ListActiveTemplates()
}

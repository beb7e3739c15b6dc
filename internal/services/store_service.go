package services

import (
	"strings"
	"time"
)

// StoreAdminStore abstracts persistence operations required by StoreService.
type StoreAdminStore interface {
	InsertStore(st *Store) (*Store, error)
	GetStore(id string) (*Store, error)
	UpdateStore(st *Store) error
	DeleteStore(id string) error
	ListStores() ([]*Store, error)
}

// StoreService hosts the admin CRUD surface for stores.
type StoreService struct {
	store StoreAdminStore
	now   func() time.Time
}

func NewStoreService(store StoreAdminStore) *StoreService {
	return &StoreService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *StoreService) CreateStore(name, address string, isActive bool) (*Store, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewInvalidError("store name required")
	}
	st := &Store{
		ID:        shortID(8),
		Name:      name,
		Address:   address,
		IsActive:  isActive,
		CreatedAt: s.now(),
	}
	created, err := s.store.InsertStore(st)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return st, nil
	}
	return created, nil
}

func (s *StoreService) UpdateStore(st *Store) error {
	if st == nil {
		return NewInvalidError("store required")
	}
	if strings.TrimSpace(st.Name) == "" {
		return NewInvalidError("store name required")
	}
	old, err := s.store.GetStore(st.ID)
	if err != nil {
		return err
	}
	if old == nil {
		return NewNotFoundError("store not found")
	}
	if st.CreatedAt.IsZero() {
		st.CreatedAt = old.CreatedAt
	}
	return s.store.UpdateStore(st)
}

// DeleteStore removes the store document only. No cascade: historical
// audits keep the dangling id and display the sentinel label.
func (s *StoreService) DeleteStore(id string) error {
	return s.store.DeleteStore(id)
}

func (s *StoreService) ListStores() ([]*Store, error) {
	return s.store.ListStores()
}

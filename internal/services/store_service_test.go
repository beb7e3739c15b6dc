package services

import (
	"testing"
	"time"
)

type stubStoreAdminStore struct {
	stores map[string]*Store
}

func newStubStoreAdminStore() *stubStoreAdminStore {
	return &stubStoreAdminStore{stores: map[string]*Store{}}
}

func (s *stubStoreAdminStore) InsertStore(st *Store) (*Store, error) {
	cp := *st
	s.stores[st.ID] = &cp
	return &cp, nil
}

func (s *stubStoreAdminStore) GetStore(id string) (*Store, error) { return s.stores[id], nil }

func (s *stubStoreAdminStore) UpdateStore(st *Store) error {
	if _, ok := s.stores[st.ID]; !ok {
		return NewNotFoundError("store not found")
	}
	cp := *st
	s.stores[st.ID] = &cp
	return nil
}

func (s *stubStoreAdminStore) DeleteStore(id string) error {
	delete(s.stores, id)
	return nil
}

func (s *stubStoreAdminStore) ListStores() ([]*Store, error) {
	out := []*Store{}
	for _, st := range s.stores {
		out = append(out, st)
	}
	return out, nil
}

func TestCreateStoreRequiresName(t *testing.T) {
	svc := NewStoreService(newStubStoreAdminStore())
	if _, err := svc.CreateStore("   ", "Somewhere 5", true); err == nil {
		t.Fatalf("blank name must be rejected")
	}
}

func TestCreateStoreStampsCreatedAt(t *testing.T) {
	store := newStubStoreAdminStore()
	svc := NewStoreService(store)
	created := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return created }

	st, err := svc.CreateStore("Kadikoy Branch", "Bahariye Cd. 12", true)
	if err != nil {
		t.Fatalf("CreateStore: %v", err)
	}
	if st.ID == "" {
		t.Fatalf("expected generated id")
	}
	if !st.CreatedAt.Equal(created) {
		t.Fatalf("createdAt = %v, want %v", st.CreatedAt, created)
	}
	if !st.IsActive {
		t.Fatalf("isActive not preserved")
	}
}

func TestUpdateStoreValidates(t *testing.T) {
	store := newStubStoreAdminStore()
	svc := NewStoreService(store)
	st, err := svc.CreateStore("Kadikoy Branch", "Bahariye Cd. 12", true)
	if err != nil {
		t.Fatalf("CreateStore: %v", err)
	}

	if err := svc.UpdateStore(&Store{ID: st.ID, Name: "", Address: "x"}); err == nil {
		t.Fatalf("blank name must be rejected on update")
	}
	if err := svc.UpdateStore(&Store{ID: "missing", Name: "X"}); err == nil {
		t.Fatalf("updating a missing store must fail")
	}

	st.IsActive = false
	if err := svc.UpdateStore(st); err != nil {
		t.Fatalf("UpdateStore: %v", err)
	}
	got, _ := store.GetStore(st.ID)
	if got.IsActive {
		t.Fatalf("isActive not updated")
	}
}

func TestDeleteStoreIsNotCascading(t *testing.T) {
	store := newStubStoreAdminStore()
	svc := NewStoreService(store)
	st, err := svc.CreateStore("Kadikoy Branch", "", true)
	if err != nil {
		t.Fatalf("CreateStore: %v", err)
	}
	if err := svc.DeleteStore(st.ID); err != nil {
		t.Fatalf("DeleteStore: %v", err)
	}
	if got, _ := store.GetStore(st.ID); got != nil {
		t.Fatalf("store not deleted")
	}
}

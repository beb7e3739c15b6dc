package services

import "testing"

type stubCatalogStore struct {
	stores    []*Store
	templates []*FormTemplate
}

func (s *stubCatalogStore) ListActiveStores() ([]*Store, error) {
	out := []*Store{}
	for _, st := range s.stores {
		if st.IsActive {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *stubCatalogStore) ListActiveTemplates() ([]*FormTemplate, error) {
	out := []*FormTemplate{}
	for _, t := range s.templates {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return out, nil
}

func TestCatalogListsOnlyActive(t *testing.T) {
	svc := NewCatalogService(&stubCatalogStore{
		stores: []*Store{
			{ID: "S1", Name: "Kadikoy Branch", IsActive: true},
			{ID: "S2", Name: "Closed Branch", IsActive: false},
		},
		templates: []*FormTemplate{
			{ID: "T1", Title: "Hygiene Walkthrough", IsActive: true},
			{ID: "T2", Title: "Retired Form", IsActive: false},
		},
	})

	stores, err := svc.ActiveStores()
	if err != nil {
		t.Fatalf("ActiveStores: %v", err)
	}
	if len(stores) != 1 || stores[0].ID != "S1" {
		t.Fatalf("stores = %+v, want only S1", stores)
	}

	templates, err := svc.ActiveTemplates()
	if err != nil {
		t.Fatalf("ActiveTemplates: %v", err)
	}
	if len(templates) != 1 || templates[0].ID != "T1" {
		t.Fatalf("templates = %+v, want only T1", templates)
	}
}

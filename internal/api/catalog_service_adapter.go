package api

import "github.com/mkarahan/storeaudit/internal/services"

type catalogStoreAdapter struct {
	store Datastore
}

func newCatalogStoreAdapter(store Datastore) services.CatalogStore {
	return &catalogStoreAdapter{store: store}
}

func (a *catalogStoreAdapter) ListActiveStores() ([]*services.Store, error) {
	stores := a.store.ListActiveStores()
	out := make([]*services.Store, 0, len(stores))
	for _, st := range stores {
		out = append(out, convertAPIStore(st))
	}
	return out, nil
}

func (a *catalogStoreAdapter) ListActiveTemplates() ([]*services.FormTemplate, error) {
	templates := a.store.ListActiveTemplates()
	out := make([]*services.FormTemplate, 0, len(templates))
	for _, t := range templates {
		out = append(out, convertAPITemplate(t))
	}
	return out, nil
}

var _ services.CatalogStore = (*catalogStoreAdapter)(nil)

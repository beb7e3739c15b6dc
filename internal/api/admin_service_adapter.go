package api

import "github.com/mkarahan/storeaudit/internal/services"

type storeAdminAdapter struct {
	store Datastore
}

func newStoreAdminAdapter(store Datastore) services.StoreAdminStore {
	return &storeAdminAdapter{store: store}
}

func (a *storeAdminAdapter) InsertStore(st *services.Store) (*services.Store, error) {
	apiStore := convertServiceStore(st)
	a.store.AddStore(apiStore)
	return convertAPIStore(a.store.GetStore(apiStore.ID)), nil
}

func (a *storeAdminAdapter) GetStore(id string) (*services.Store, error) {
	return convertAPIStore(a.store.GetStore(id)), nil
}

func (a *storeAdminAdapter) UpdateStore(st *services.Store) error {
	if st == nil {
		return services.NewInvalidError("store required")
	}
	if ok := a.store.UpdateStore(convertServiceStore(st)); !ok {
		return services.NewNotFoundError("store not found")
	}
	return nil
}

func (a *storeAdminAdapter) DeleteStore(id string) error {
	if ok := a.store.DeleteStore(id); !ok {
		return services.NewNotFoundError("store not found")
	}
	return nil
}

func (a *storeAdminAdapter) ListStores() ([]*services.Store, error) {
	stores := a.store.ListStores()
	out := make([]*services.Store, 0, len(stores))
	for _, st := range stores {
		out = append(out, convertAPIStore(st))
	}
	return out, nil
}

var _ services.StoreAdminStore = (*storeAdminAdapter)(nil)

type templateStoreAdapter struct {
	store Datastore
}

func newTemplateStoreAdapter(store Datastore) services.TemplateStore {
	return &templateStoreAdapter{store: store}
}

func (a *templateStoreAdapter) InsertTemplate(t *services.FormTemplate) (*services.FormTemplate, error) {
	apiTemplate := convertServiceTemplate(t)
	a.store.AddTemplate(apiTemplate)
	return convertAPITemplate(a.store.GetTemplate(apiTemplate.ID)), nil
}

func (a *templateStoreAdapter) GetTemplate(id string) (*services.FormTemplate, error) {
	return convertAPITemplate(a.store.GetTemplate(id)), nil
}

func (a *templateStoreAdapter) UpdateTemplate(t *services.FormTemplate) error {
	if t == nil {
		return services.NewInvalidError("template required")
	}
	if ok := a.store.UpdateTemplate(convertServiceTemplate(t)); !ok {
		return services.NewNotFoundError("template not found")
	}
	return nil
}

func (a *templateStoreAdapter) DeleteTemplate(id string) error {
	if ok := a.store.DeleteTemplate(id); !ok {
		return services.NewNotFoundError("template not found")
	}
	return nil
}

func (a *templateStoreAdapter) ListTemplates() ([]*services.FormTemplate, error) {
	templates := a.store.ListTemplates()
	out := make([]*services.FormTemplate, 0, len(templates))
	for _, t := range templates {
		out = append(out, convertAPITemplate(t))
	}
	return out, nil
}

var _ services.TemplateStore = (*templateStoreAdapter)(nil)

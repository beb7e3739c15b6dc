package api

import "github.com/mkarahan/storeaudit/internal/services"

type sessionStoreAdapter struct {
	store Datastore
}

func newSessionStoreAdapter(store Datastore) services.SessionStore {
	return &sessionStoreAdapter{store: store}
}

func (a *sessionStoreAdapter) GetTemplate(id string) (*services.FormTemplate, error) {
	return convertAPITemplate(a.store.GetTemplate(id)), nil
}

func (a *sessionStoreAdapter) GetStore(id string) (*services.Store, error) {
	return convertAPIStore(a.store.GetStore(id)), nil
}

func (a *sessionStoreAdapter) AddAudit(audit *services.Audit) error {
	if audit == nil {
		return services.NewInvalidError("audit required")
	}
	return a.store.AddAudit(convertServiceAudit(audit))
}

var _ services.SessionStore = (*sessionStoreAdapter)(nil)

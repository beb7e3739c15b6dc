package api

import "github.com/mkarahan/storeaudit/internal/services"

type reportStoreAdapter struct {
	store Datastore
}

func newReportStoreAdapter(store Datastore) services.ReportStore {
	return &reportStoreAdapter{store: store}
}

func (a *reportStoreAdapter) ListAudits() ([]*services.Audit, error) {
	audits := a.store.ListAudits()
	out := make([]*services.Audit, 0, len(audits))
	for _, audit := range audits {
		out = append(out, convertAPIAudit(audit))
	}
	return out, nil
}

func (a *reportStoreAdapter) ListAuditsByAuditor(auditorID string) ([]*services.Audit, error) {
	audits := a.store.ListAuditsByAuditor(auditorID)
	out := make([]*services.Audit, 0, len(audits))
	for _, audit := range audits {
		out = append(out, convertAPIAudit(audit))
	}
	return out, nil
}

func (a *reportStoreAdapter) GetTemplate(id string) (*services.FormTemplate, error) {
	return convertAPITemplate(a.store.GetTemplate(id)), nil
}

func (a *reportStoreAdapter) GetStore(id string) (*services.Store, error) {
	return convertAPIStore(a.store.GetStore(id)), nil
}

func (a *reportStoreAdapter) GetUser(id string) (*services.UserProfile, error) {
	return convertAPIUser(a.store.GetUser(id)), nil
}

var _ services.ReportStore = (*reportStoreAdapter)(nil)

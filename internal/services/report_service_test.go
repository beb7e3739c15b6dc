package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubReportStore struct {
	audits    []*Audit
	stores    map[string]*Store
	templates map[string]*FormTemplate
	users     map[string]*UserProfile

	storeErr error
}

func (s *stubReportStore) ListAudits() ([]*Audit, error) { return s.audits, nil }

func (s *stubReportStore) ListAuditsByAuditor(auditorID string) ([]*Audit, error) {
	out := []*Audit{}
	for _, a := range s.audits {
		if a.AuditorID == auditorID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubReportStore) GetTemplate(id string) (*FormTemplate, error) {
	return s.templates[id], nil
}

func (s *stubReportStore) GetStore(id string) (*Store, error) {
	if s.storeErr != nil {
		return nil, s.storeErr
	}
	return s.stores[id], nil
}

func (s *stubReportStore) GetUser(id string) (*UserProfile, error) {
	return s.users[id], nil
}

func reportFixture() *stubReportStore {
	at := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	return &stubReportStore{
		audits: []*Audit{
			{ID: "A1", StoreID: "S1", FormTemplateID: "T1", AuditorID: "u1", CompletedAt: at, TotalScore: 80},
			{ID: "A2", StoreID: "S1", FormTemplateID: "T1", AuditorID: "u2", CompletedAt: at, TotalScore: 65},
			{ID: "A3", StoreID: "S2", FormTemplateID: "T2", AuditorID: "u1", CompletedAt: at, TotalScore: 90},
		},
		stores: map[string]*Store{
			"S2": {ID: "S2", Name: "Moda Branch"},
		},
		templates: map[string]*FormTemplate{
			"T1": {ID: "T1", Title: "Hygiene Walkthrough"},
			"T2": {ID: "T2", Title: "Safety Checklist"},
		},
		users: map[string]*UserProfile{
			"u1": {UID: "u1", DisplayName: "Ayse Demir", Role: RoleAuditor},
		},
	}
}

func TestAllAuditsJoinsWithSentinels(t *testing.T) {
	// S1 was deleted after two audits referenced it; u2 no longer resolves.
	svc := NewReportService(reportFixture())
	rows, err := svc.AllAudits(context.Background(), "")
	if err != nil {
		t.Fatalf("AllAudits: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3 (dangling references still list)", len(rows))
	}
	byID := map[string]AuditRow{}
	for _, r := range rows {
		byID[r.ID] = r
	}
	if got := byID["A1"].StoreName; got != UnknownStoreLabel {
		t.Fatalf("A1 store name = %q, want sentinel", got)
	}
	if got := byID["A2"].StoreName; got != UnknownStoreLabel {
		t.Fatalf("A2 store name = %q, want sentinel", got)
	}
	if got := byID["A2"].AuditorName; got != UnknownAuditorLabel {
		t.Fatalf("A2 auditor name = %q, want sentinel", got)
	}
	if got := byID["A3"].StoreName; got != "Moda Branch" {
		t.Fatalf("A3 store name = %q", got)
	}
	if got := byID["A1"].FormTitle; got != "Hygiene Walkthrough" {
		t.Fatalf("A1 form title = %q", got)
	}
	if got := byID["A1"].AuditorName; got != "Ayse Demir" {
		t.Fatalf("A1 auditor name = %q", got)
	}
}

func TestAllAuditsFreeTextFilter(t *testing.T) {
	svc := NewReportService(reportFixture())

	rows, err := svc.AllAudits(context.Background(), "MODA")
	if err != nil {
		t.Fatalf("AllAudits: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "A3" {
		t.Fatalf("filter by store name: rows = %+v, want only A3", rows)
	}

	rows, err = svc.AllAudits(context.Background(), "ayse")
	if err != nil {
		t.Fatalf("AllAudits: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("filter by auditor name: rows = %d, want 2", len(rows))
	}

	rows, err = svc.AllAudits(context.Background(), "hygiene")
	if err != nil {
		t.Fatalf("AllAudits: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("filter by form title: rows = %d, want 2", len(rows))
	}

	rows, err = svc.AllAudits(context.Background(), "no such thing")
	if err != nil {
		t.Fatalf("AllAudits: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("non-matching filter: rows = %d, want 0", len(rows))
	}
}

func TestMyAuditsScopedToAuditor(t *testing.T) {
	svc := NewReportService(reportFixture())
	rows, err := svc.MyAudits(context.Background(), "u1")
	if err != nil {
		t.Fatalf("MyAudits: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	for _, r := range rows {
		if r.AuditorID != "u1" {
			t.Fatalf("row %s belongs to %s", r.ID, r.AuditorID)
		}
		if r.AuditorName != "" {
			t.Fatalf("mine variant must not join auditor names, got %q", r.AuditorName)
		}
	}

	if _, err := svc.MyAudits(context.Background(), ""); err == nil {
		t.Fatalf("missing auditor identity must fail")
	}
}

func TestJoinFailsWhenALookupRejects(t *testing.T) {
	store := reportFixture()
	store.storeErr = errors.New("backend unavailable")
	svc := NewReportService(store)
	if _, err := svc.AllAudits(context.Background(), ""); err == nil {
		t.Fatalf("a rejected lookup must fail the whole view")
	}
}

package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Sentinel labels shown when an audit references a document that no
// longer resolves.
const (
	UnknownStoreLabel   = "Unknown Store"
	UnknownFormLabel    = "Unknown Form"
	UnknownAuditorLabel = "Unknown Auditor"
)

// ReportStore abstracts the reads behind the audit history views.
type ReportStore interface {
	ListAudits() ([]*Audit, error)
	ListAuditsByAuditor(auditorID string) ([]*Audit, error)
	GetTemplate(id string) (*FormTemplate, error)
	GetStore(id string) (*Store, error)
	GetUser(id string) (*UserProfile, error)
}

// AuditRow is one history row enriched with display names joined at
// read time.
type AuditRow struct {
	ID          string    `json:"id"`
	StoreID     string    `json:"storeId"`
	StoreName   string    `json:"storeName"`
	FormID      string    `json:"formTemplateId"`
	FormTitle   string    `json:"formTitle"`
	AuditorID   string    `json:"auditorId"`
	AuditorName string    `json:"auditorName,omitempty"`
	CompletedAt time.Time `json:"completedAt"`
	TotalScore  int       `json:"totalScore"`
}

// ReportService serves the audit history listings. Referenced stores,
// templates and auditors are fetched as deduplicated id sets with the
// lookups issued concurrently; if any lookup errors the whole view
// fails. A reference that merely does not resolve falls back to its
// sentinel label instead.
type ReportService struct {
	store ReportStore
}

func NewReportService(store ReportStore) *ReportService {
	return &ReportService{store: store}
}

// MyAudits lists the audits submitted by one auditor, joined with store
// and template names.
func (s *ReportService) MyAudits(ctx context.Context, auditorID string) ([]AuditRow, error) {
	if strings.TrimSpace(auditorID) == "" {
		return nil, NewUnauthorizedError("auditor identity required")
	}
	audits, err := s.store.ListAuditsByAuditor(auditorID)
	if err != nil {
		return nil, err
	}
	joined, err := s.join(ctx, audits, false)
	if err != nil {
		return nil, err
	}
	return joined, nil
}

// AllAudits lists every audit joined with store, template and auditor
// names, optionally narrowed by a case-insensitive free-text filter
// over those three display fields. Filtering happens over the
// already-fetched in-memory set.
func (s *ReportService) AllAudits(ctx context.Context, filter string) ([]AuditRow, error) {
	audits, err := s.store.ListAudits()
	if err != nil {
		return nil, err
	}
	rows, err := s.join(ctx, audits, true)
	if err != nil {
		return nil, err
	}
	return FilterRows(rows, filter), nil
}

// FilterRows matches the filter case-insensitively against store name,
// auditor name, or form title. An empty filter keeps everything.
func FilterRows(rows []AuditRow, filter string) []AuditRow {
	needle := strings.ToLower(strings.TrimSpace(filter))
	if needle == "" {
		return rows
	}
	out := make([]AuditRow, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.StoreName), needle) ||
			strings.Contains(strings.ToLower(row.AuditorName), needle) ||
			strings.Contains(strings.ToLower(row.FormTitle), needle) {
			out = append(out, row)
		}
	}
	return out
}

func (s *ReportService) join(ctx context.Context, audits []*Audit, withAuditors bool) ([]AuditRow, error) {
	storeIDs := map[string]struct{}{}
	templateIDs := map[string]struct{}{}
	auditorIDs := map[string]struct{}{}
	for _, a := range audits {
		storeIDs[a.StoreID] = struct{}{}
		templateIDs[a.FormTemplateID] = struct{}{}
		if withAuditors {
			auditorIDs[a.AuditorID] = struct{}{}
		}
	}

	var mu sync.Mutex
	storeNames := map[string]string{}
	formTitles := map[string]string{}
	auditorNames := map[string]string{}

	g, ctx := errgroup.WithContext(ctx)
	for id := range storeIDs {
		id := id
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			st, err := s.store.GetStore(id)
			if err != nil {
				return err
			}
			if st != nil {
				mu.Lock()
				storeNames[id] = st.Name
				mu.Unlock()
			}
			return nil
		})
	}
	for id := range templateIDs {
		id := id
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tpl, err := s.store.GetTemplate(id)
			if err != nil {
				return err
			}
			if tpl != nil {
				mu.Lock()
				formTitles[id] = tpl.Title
				mu.Unlock()
			}
			return nil
		})
	}
	for id := range auditorIDs {
		id := id
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			u, err := s.store.GetUser(id)
			if err != nil {
				return err
			}
			if u != nil {
				mu.Lock()
				auditorNames[id] = u.DisplayName
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([]AuditRow, 0, len(audits))
	for _, a := range audits {
		row := AuditRow{
			ID:          a.ID,
			StoreID:     a.StoreID,
			StoreName:   labelOr(storeNames[a.StoreID], UnknownStoreLabel),
			FormID:      a.FormTemplateID,
			FormTitle:   labelOr(formTitles[a.FormTemplateID], UnknownFormLabel),
			AuditorID:   a.AuditorID,
			CompletedAt: a.CompletedAt,
			TotalScore:  a.TotalScore,
		}
		if withAuditors {
			row.AuditorName = labelOr(auditorNames[a.AuditorID], UnknownAuditorLabel)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func labelOr(name, fallback string) string {
	if strings.TrimSpace(name) == "" {
		return fallback
	}
	return name
}

package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mkarahan/storeaudit/internal/api"
)

// SQLiteStore implements api.Datastore on a single SQLite database.
// Template categories and audit answers are stored as JSON documents;
// everything the application filters or joins on lives in real columns.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func NewStore(db *sql.DB) (api.Datastore, error) {
	return NewSQLiteStore(db)
}

func (s *SQLiteStore) logErr(prefix string, err error) {
	if err != nil {
		log.Printf("sqlite store: %s: %v", prefix, err)
	}
}

func boolToInt64(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

func int64ToBool(v int64) bool { return v != 0 }

func encodeJSON(v any) sql.NullString {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("sqlite store: encode json: %v", err)
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}

func decodeCategories(ns sql.NullString) []api.Category {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return nil
	}
	var out []api.Category
	if err := json.Unmarshal([]byte(ns.String), &out); err != nil {
		log.Printf("sqlite store: decode categories: %v", err)
		return nil
	}
	return out
}

func decodeAnswers(ns sql.NullString) []api.Answer {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return []api.Answer{}
	}
	var out []api.Answer
	if err := json.Unmarshal([]byte(ns.String), &out); err != nil {
		log.Printf("sqlite store: decode answers: %v", err)
		return []api.Answer{}
	}
	return out
}

// --- users ---

func (s *SQLiteStore) AddUser(u *api.User) {
	if u == nil {
		return
	}
	_, err := s.db.Exec(
		`INSERT INTO users (id, email, pass_hash, display_name, photo_url, role, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, strings.ToLower(u.Email), u.PassHash, u.DisplayName, u.PhotoURL, u.Role, u.CreatedAt,
	)
	s.logErr("add user", err)
}

func (s *SQLiteStore) GetUser(id string) *api.User {
	return s.scanUser(s.db.QueryRow(
		`SELECT id, email, pass_hash, display_name, photo_url, role, created_at FROM users WHERE id = ?`, id))
}

func (s *SQLiteStore) FindUserByEmail(email string) *api.User {
	return s.scanUser(s.db.QueryRow(
		`SELECT id, email, pass_hash, display_name, photo_url, role, created_at FROM users WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email))))
}

func (s *SQLiteStore) scanUser(row *sql.Row) *api.User {
	var u api.User
	err := row.Scan(&u.ID, &u.Email, &u.PassHash, &u.DisplayName, &u.PhotoURL, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		s.logErr("scan user", err)
		return nil
	}
	return &u
}

// --- stores ---

func (s *SQLiteStore) AddStore(st *api.Store) {
	if st == nil {
		return
	}
	_, err := s.db.Exec(
		`INSERT INTO stores (id, name, address, is_active, created_at) VALUES (?, ?, ?, ?, ?)`,
		st.ID, st.Name, st.Address, boolToInt64(st.IsActive), st.CreatedAt,
	)
	s.logErr("add store", err)
}

func (s *SQLiteStore) UpdateStore(st *api.Store) bool {
	if st == nil {
		return false
	}
	res, err := s.db.Exec(
		`UPDATE stores SET name = ?, address = ?, is_active = ? WHERE id = ?`,
		st.Name, st.Address, boolToInt64(st.IsActive), st.ID,
	)
	if err != nil {
		s.logErr("update store", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

func (s *SQLiteStore) DeleteStore(id string) bool {
	res, err := s.db.Exec(`DELETE FROM stores WHERE id = ?`, id)
	if err != nil {
		s.logErr("delete store", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

func (s *SQLiteStore) GetStore(id string) *api.Store {
	row := s.db.QueryRow(`SELECT id, name, address, is_active, created_at FROM stores WHERE id = ?`, id)
	return s.scanStore(row)
}

func (s *SQLiteStore) scanStore(row *sql.Row) *api.Store {
	var st api.Store
	var active int64
	err := row.Scan(&st.ID, &st.Name, &st.Address, &active, &st.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		s.logErr("scan store", err)
		return nil
	}
	st.IsActive = int64ToBool(active)
	return &st
}

func (s *SQLiteStore) ListStores() []*api.Store {
	return s.queryStores(`SELECT id, name, address, is_active, created_at FROM stores ORDER BY name`)
}

func (s *SQLiteStore) ListActiveStores() []*api.Store {
	return s.queryStores(`SELECT id, name, address, is_active, created_at FROM stores WHERE is_active = 1 ORDER BY name`)
}

func (s *SQLiteStore) queryStores(query string) []*api.Store {
	rows, err := s.db.Query(query)
	if err != nil {
		s.logErr("list stores", err)
		return nil
	}
	defer func() { _ = rows.Close() }()
	var out []*api.Store
	for rows.Next() {
		var st api.Store
		var active int64
		if err := rows.Scan(&st.ID, &st.Name, &st.Address, &active, &st.CreatedAt); err != nil {
			s.logErr("scan store row", err)
			continue
		}
		st.IsActive = int64ToBool(active)
		out = append(out, &st)
	}
	s.logErr("iterate stores", rows.Err())
	return out
}

// --- form templates ---

func (s *SQLiteStore) AddTemplate(t *api.FormTemplate) {
	if t == nil {
		return
	}
	_, err := s.db.Exec(
		`INSERT INTO form_templates (id, title, description, is_active, categories_json) VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, boolToInt64(t.IsActive), encodeJSON(t.Categories),
	)
	s.logErr("add template", err)
}

func (s *SQLiteStore) UpdateTemplate(t *api.FormTemplate) bool {
	if t == nil {
		return false
	}
	res, err := s.db.Exec(
		`UPDATE form_templates SET title = ?, description = ?, is_active = ?, categories_json = ? WHERE id = ?`,
		t.Title, t.Description, boolToInt64(t.IsActive), encodeJSON(t.Categories), t.ID,
	)
	if err != nil {
		s.logErr("update template", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

func (s *SQLiteStore) DeleteTemplate(id string) bool {
	res, err := s.db.Exec(`DELETE FROM form_templates WHERE id = ?`, id)
	if err != nil {
		s.logErr("delete template", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

func (s *SQLiteStore) GetTemplate(id string) *api.FormTemplate {
	row := s.db.QueryRow(
		`SELECT id, title, description, is_active, categories_json FROM form_templates WHERE id = ?`, id)
	var t api.FormTemplate
	var active int64
	var categories sql.NullString
	err := row.Scan(&t.ID, &t.Title, &t.Description, &active, &categories)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		s.logErr("scan template", err)
		return nil
	}
	t.IsActive = int64ToBool(active)
	t.Categories = decodeCategories(categories)
	return &t
}

func (s *SQLiteStore) ListTemplates() []*api.FormTemplate {
	return s.queryTemplates(`SELECT id, title, description, is_active, categories_json FROM form_templates ORDER BY title`)
}

func (s *SQLiteStore) ListActiveTemplates() []*api.FormTemplate {
	return s.queryTemplates(`SELECT id, title, description, is_active, categories_json FROM form_templates WHERE is_active = 1 ORDER BY title`)
}

func (s *SQLiteStore) queryTemplates(query string) []*api.FormTemplate {
	rows, err := s.db.Query(query)
	if err != nil {
		s.logErr("list templates", err)
		return nil
	}
	defer func() { _ = rows.Close() }()
	var out []*api.FormTemplate
	for rows.Next() {
		var t api.FormTemplate
		var active int64
		var categories sql.NullString
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &active, &categories); err != nil {
			s.logErr("scan template row", err)
			continue
		}
		t.IsActive = int64ToBool(active)
		t.Categories = decodeCategories(categories)
		out = append(out, &t)
	}
	s.logErr("iterate templates", rows.Err())
	return out
}

// --- audits ---

func (s *SQLiteStore) AddAudit(a *api.Audit) error {
	if a == nil {
		return errors.New("nil audit")
	}
	_, err := s.db.Exec(
		`INSERT INTO audits (id, form_template_id, store_id, auditor_id, status, started_at, completed_at, total_score, answers_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.FormTemplateID, a.StoreID, a.AuditorID, a.Status,
		a.StartedAt, a.CompletedAt, a.TotalScore, encodeJSON(a.Answers),
	)
	if err != nil {
		return fmt.Errorf("insert audit: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetAudit(id string) *api.Audit {
	row := s.db.QueryRow(
		`SELECT id, form_template_id, store_id, auditor_id, status, started_at, completed_at, total_score, answers_json
		 FROM audits WHERE id = ?`, id)
	var a api.Audit
	var answers sql.NullString
	err := row.Scan(&a.ID, &a.FormTemplateID, &a.StoreID, &a.AuditorID, &a.Status,
		&a.StartedAt, &a.CompletedAt, &a.TotalScore, &answers)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		s.logErr("scan audit", err)
		return nil
	}
	a.Answers = decodeAnswers(answers)
	return &a
}

func (s *SQLiteStore) ListAudits() []*api.Audit {
	return s.queryAudits(
		`SELECT id, form_template_id, store_id, auditor_id, status, started_at, completed_at, total_score, answers_json
		 FROM audits ORDER BY completed_at DESC`)
}

func (s *SQLiteStore) ListAuditsByAuditor(auditorID string) []*api.Audit {
	return s.queryAudits(
		`SELECT id, form_template_id, store_id, auditor_id, status, started_at, completed_at, total_score, answers_json
		 FROM audits WHERE auditor_id = ? ORDER BY completed_at DESC`, auditorID)
}

func (s *SQLiteStore) queryAudits(query string, args ...any) []*api.Audit {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		s.logErr("list audits", err)
		return nil
	}
	defer func() { _ = rows.Close() }()
	var out []*api.Audit
	for rows.Next() {
		var a api.Audit
		var answers sql.NullString
		if err := rows.Scan(&a.ID, &a.FormTemplateID, &a.StoreID, &a.AuditorID, &a.Status,
			&a.StartedAt, &a.CompletedAt, &a.TotalScore, &answers); err != nil {
			s.logErr("scan audit row", err)
			continue
		}
		a.Answers = decodeAnswers(answers)
		out = append(out, &a)
	}
	s.logErr("iterate audits", rows.Err())
	return out
}

var _ api.Datastore = (*SQLiteStore)(nil)

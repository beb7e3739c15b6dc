package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mkarahan/storeaudit/internal/middleware"
	"github.com/mkarahan/storeaudit/internal/services"
)

const (
	roleAdmin   = string(services.RoleAdmin)
	roleAuditor = string(services.RoleAuditor)
)

type Router struct {
	store     Datastore
	auth      *services.AuthService
	catalog   *services.CatalogService
	reports   *services.ReportService
	stores    *services.StoreService
	templates *services.TemplateService
}

func NewRouter(store Datastore) *Router {
	return &Router{
		store:     store,
		auth:      services.NewAuthService(newAuthStoreAdapter(store), middleware.SignToken),
		catalog:   services.NewCatalogService(newCatalogStoreAdapter(store)),
		reports:   services.NewReportService(newReportStoreAdapter(store)),
		stores:    services.NewStoreService(newStoreAdminAdapter(store)),
		templates: services.NewTemplateService(newTemplateStoreAdapter(store)),
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/auth/register", rt.handleRegister)                                        // POST
	mux.HandleFunc("/api/auth/login", rt.handleLogin)                                              // POST
	mux.HandleFunc("/api/me", rt.handleMe)                                                         // GET
	mux.HandleFunc("/api/audit/new/select-form", rt.requireRole(roleAuditor, rt.handleSelectForm)) // GET
	mux.HandleFunc("/api/audit/new/select-store", rt.requireRole(roleAuditor, rt.handleSelectStore))
	mux.HandleFunc("/api/audit/start", rt.requireRole(roleAuditor, rt.handleAuditStart)) // GET
	mux.HandleFunc("/api/audits", rt.requireRole(roleAuditor, rt.handleSubmitAudit))     // POST
	mux.HandleFunc("/api/my-audits", rt.requireRole(roleAuditor, rt.handleMyAudits))     // GET
	mux.HandleFunc("/api/admin/stores", rt.requireRole(roleAdmin, rt.handleAdminStores))
	mux.HandleFunc("/api/admin/stores/", rt.requireRole(roleAdmin, rt.handleAdminStoreScoped))
	mux.HandleFunc("/api/admin/templates", rt.requireRole(roleAdmin, rt.handleAdminTemplates))
	mux.HandleFunc("/api/admin/templates/", rt.requireRole(roleAdmin, rt.handleAdminTemplateScoped))
	mux.HandleFunc("/api/admin/audits", rt.requireRole(roleAdmin, rt.handleAllAudits)) // GET
}

// requireRole gates a handler on the caller's resolved profile role.
// Unauthenticated callers are redirected to the login route; callers
// whose profile is missing, has no resolvable role, or carries a
// different role are redirected to the neutral landing route.
func (rt *Router) requireRole(role string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		u := rt.store.GetUser(c.UID)
		if u == nil || u.Role != role {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrMissingContext):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, services.ErrTemplateNotFound), errors.Is(err, services.ErrStoreNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, services.ErrSubmissionFailed):
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if se, ok := services.AsServiceError(err); ok {
		status := http.StatusInternalServerError
		switch se.Code {
		case services.ErrorInvalid:
			status = http.StatusBadRequest
		case services.ErrorForbidden:
			status = http.StatusForbidden
		case services.ErrorNotFound:
			status = http.StatusNotFound
		case services.ErrorConflict:
			status = http.StatusConflict
		case services.ErrorUnauthorized:
			status = http.StatusUnauthorized
		}
		http.Error(w, se.Message, status)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// POST /api/auth/register — public registration always creates auditors.
func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"displayName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.auth.Register(req.Email, req.Password, req.DisplayName, services.RoleAuditor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": res.Token, "user_id": res.UserID, "role": res.Role})
}

// POST /api/auth/login
func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.auth.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": res.Token, "user_id": res.UserID, "role": res.Role})
}

// GET /api/me — resolved profile for the bearer token.
func (rt *Router) handleMe(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UIDFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	profile, err := rt.auth.Profile(uid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// GET /api/audit/new/select-form — step 1: active templates.
func (rt *Router) handleSelectForm(w http.ResponseWriter, r *http.Request) {
	templates, err := rt.catalog.ActiveTemplates()
	if err != nil {
		writeError(w, err)
		return
	}
	type summary struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description,omitempty"`
	}
	out := make([]summary, 0, len(templates))
	for _, t := range templates {
		out = append(out, summary{ID: t.ID, Title: t.Title, Description: t.Description})
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": out})
}

// GET /api/audit/new/select-store?formTemplateId= — step 2: active stores.
// Fails closed back to step 1 when the template selection is absent.
func (rt *Router) handleSelectStore(w http.ResponseWriter, r *http.Request) {
	formTemplateID := r.URL.Query().Get("formTemplateId")
	if formTemplateID == "" {
		http.Redirect(w, r, "/audit/new/select-form?warning=template-required", http.StatusSeeOther)
		return
	}
	stores, err := rt.catalog.ActiveStores()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"formTemplateId": formTemplateID, "stores": stores})
}

// GET /api/audit/start?formTemplateId=...&storeId=...
func (rt *Router) handleAuditStart(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UIDFromContext(r.Context())
	sess := services.NewAuditSession(newSessionStoreAdapter(rt.store))
	err := sess.Load(r.URL.Query().Get("formTemplateId"), r.URL.Query().Get("storeId"), uid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"state":    sess.State(),
		"template": sess.Template(),
		"store":    sess.Store(),
	})
}

// POST /api/audits
// { formTemplateId, storeId, answers: [{questionId, answer}] }
func (rt *Router) handleSubmitAudit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	uid, _ := middleware.UIDFromContext(r.Context())
	var req struct {
		FormTemplateID string `json:"formTemplateId"`
		StoreID        string `json:"storeId"`
		Answers        []struct {
			QuestionID string          `json:"questionId"`
			Answer     json.RawMessage `json:"answer"`
		} `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess := services.NewAuditSession(newSessionStoreAdapter(rt.store))
	if err := sess.Load(req.FormTemplateID, req.StoreID, uid); err != nil {
		writeError(w, err)
		return
	}
	for _, ans := range req.Answers {
		if ans.QuestionID == "" {
			continue
		}
		if err := sess.Record(ans.QuestionID, rawAnswerString(ans.Answer)); err != nil {
			writeError(w, err)
			return
		}
	}
	audit, err := sess.Submit()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"ok":          true,
		"id":          audit.ID,
		"status":      audit.Status,
		"total_score": audit.TotalScore,
	})
}

// GET /api/my-audits
func (rt *Router) handleMyAudits(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UIDFromContext(r.Context())
	rows, err := rt.reports.MyAudits(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"audits": rows})
}

// GET /api/admin/audits?filter=
func (rt *Router) handleAllAudits(w http.ResponseWriter, r *http.Request) {
	rows, err := rt.reports.AllAudits(r.Context(), r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"audits": rows})
}

// GET|POST /api/admin/stores
func (rt *Router) handleAdminStores(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		stores, err := rt.stores.ListStores()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"stores": stores})
	case http.MethodPost:
		var req struct {
			Name     string `json:"name"`
			Address  string `json:"address"`
			IsActive bool   `json:"isActive"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		st, err := rt.stores.CreateStore(req.Name, req.Address, req.IsActive)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, st)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// PUT|DELETE /api/admin/stores/{id}
func (rt *Router) handleAdminStoreScoped(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/admin/stores/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodPut:
		var st services.Store
		if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		st.ID = id
		if err := rt.stores.UpdateStore(&st); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	case http.MethodDelete:
		if err := rt.stores.DeleteStore(id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// GET|POST /api/admin/templates
func (rt *Router) handleAdminTemplates(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		templates, err := rt.templates.ListTemplates()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"templates": templates})
	case http.MethodPost:
		var tpl services.FormTemplate
		if err := json.NewDecoder(r.Body).Decode(&tpl); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		created, err := rt.templates.CreateTemplate(&tpl)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// GET|PUT|DELETE /api/admin/templates/{id}
func (rt *Router) handleAdminTemplateScoped(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/admin/templates/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		tpl, err := rt.templates.GetTemplate(id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tpl)
	case http.MethodPut:
		var tpl services.FormTemplate
		if err := json.NewDecoder(r.Body).Decode(&tpl); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		tpl.ID = id
		if err := rt.templates.UpdateTemplate(&tpl); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	case http.MethodDelete:
		if err := rt.templates.DeleteTemplate(id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// rawAnswerString normalizes an inbound answer payload: JSON strings
// are unquoted, anything else is kept as its literal text.
func rawAnswerString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

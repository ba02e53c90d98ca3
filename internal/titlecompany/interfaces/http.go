package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"profee-cloud/internal/audit"
	"profee-cloud/internal/auth"

	companyapp "profee-cloud/internal/titlecompany/application"
	titlecompany "profee-cloud/internal/titlecompany/domain"
)

// CompanyHandler handles title company APIs.
type CompanyHandler struct {
	service     *companyapp.CompanyService
	auditLogger audit.Logger
}

// NewCompanyHandler constructs a handler.
func NewCompanyHandler(service *companyapp.CompanyService, auditLogger audit.Logger) (*CompanyHandler, error) {
	if service == nil {
		return nil, errors.New("titlecompany handler: nil service")
	}
	return &CompanyHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP handles routes under /api/v1/title-companies.
func (h *CompanyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/api/v1/title-companies" {
		switch r.Method {
		case http.MethodGet:
			h.handleList(w, r)
			return
		case http.MethodPost:
			h.handleSave(w, r)
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if strings.HasPrefix(path, "/api/v1/title-companies/selection/") {
		rest := strings.TrimPrefix(path, "/api/v1/title-companies/selection/")
		h.handleSelection(w, r, rest)
		return
	}
	if strings.HasPrefix(path, "/api/v1/title-companies/") {
		id := strings.TrimPrefix(path, "/api/v1/title-companies/")
		if id != "" && !strings.Contains(id, "/") && r.Method == http.MethodDelete {
			h.handleDelete(w, r, id)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *CompanyHandler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		respondCompanyError(w, err)
		return
	}
	if list == nil {
		list = []titlecompany.Company{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

func (h *CompanyHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	var company titlecompany.Company
	if err := json.NewDecoder(r.Body).Decode(&company); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	saved, err := h.service.Save(r.Context(), company)
	if err != nil {
		respondCompanyError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(saved)
	h.logAudit(r, saved.ID, "titlecompany.save", map[string]any{"name": saved.Name})
}

func (h *CompanyHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondCompanyError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	h.logAudit(r, id, "titlecompany.delete", nil)
}

func (h *CompanyHandler) handleSelection(w http.ResponseWriter, r *http.Request, rest string) {
	parts := strings.Split(rest, "/")
	statementID := parts[0]
	if statementID == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if len(parts) == 1 && r.Method == http.MethodPut {
		var company titlecompany.Company
		if err := json.NewDecoder(r.Body).Decode(&company); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := h.service.Stage(r.Context(), statementID, company); err != nil {
			respondCompanyError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if len(parts) == 2 && parts[1] == "consume" && r.Method == http.MethodPost {
		company, err := h.service.Consume(r.Context(), statementID)
		if err != nil {
			respondCompanyError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(company)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *CompanyHandler) logAudit(r *http.Request, companyID, action string, meta map[string]any) {
	if h.auditLogger == nil {
		return
	}
	payload, _ := json.Marshal(meta)
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		AgentID:      auth.AgentIDFromContext(r.Context()),
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: "title_company",
		ResourceID:   companyID,
		Metadata:     payload,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}

func respondCompanyError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, auth.ErrAgentMismatch) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if errors.Is(err, titlecompany.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

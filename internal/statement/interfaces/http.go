package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"profee-cloud/internal/audit"
	"profee-cloud/internal/auth"
	"profee-cloud/internal/export"
	"profee-cloud/internal/observability/metrics"
	statementapp "profee-cloud/internal/statement/application"
	statement "profee-cloud/internal/statement/domain"
)

// StatementHandler handles statement APIs.
type StatementHandler struct {
	service     *statementapp.StatementService
	branding    export.Branding
	auditLogger audit.Logger
}

// NewStatementHandler constructs a handler.
func NewStatementHandler(service *statementapp.StatementService, branding export.Branding, auditLogger audit.Logger) (*StatementHandler, error) {
	if service == nil {
		return nil, errors.New("statement handler: nil service")
	}
	return &StatementHandler{service: service, branding: branding, auditLogger: auditLogger}, nil
}

// ServeHTTP handles statement routes under /api/v1/statements.
func (h *StatementHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/api/v1/statements" {
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
	if path == "/api/v1/statements/latest" && r.Method == http.MethodGet {
		h.handleLatest(w, r)
		return
	}
	if strings.HasPrefix(path, "/api/v1/statements/") {
		rest := strings.TrimPrefix(path, "/api/v1/statements/")
		h.handleByID(w, r, rest)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *StatementHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	var stmt statement.Statement
	if err := json.NewDecoder(r.Body).Decode(&stmt); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	saved, err := h.service.Save(r.Context(), stmt)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(saved)
	h.logAudit(r, saved.ID, "statement.save", map[string]any{
		"propertyAddress": saved.PropertyAddress,
	})
}

func (h *StatementHandler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if list == nil {
		list = []statement.Statement{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

func (h *StatementHandler) handleLatest(w http.ResponseWriter, r *http.Request) {
	stmt, err := h.service.Latest(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stmt)
}

func (h *StatementHandler) handleByID(w http.ResponseWriter, r *http.Request, rest string) {
	if rest == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	parts := strings.Split(rest, "/")
	id := parts[0]
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.handleGet(w, r, id)
			return
		case http.MethodDelete:
			h.handleDelete(w, r, id)
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if len(parts) == 2 && r.Method == http.MethodGet {
		switch parts[1] {
		case "summary":
			h.handleSummary(w, r, id)
			return
		case "validation":
			h.handleValidation(w, r, id)
			return
		case "export.pdf":
			h.handleExportPDF(w, r, id)
			return
		case "export.xlsx":
			h.handleExportXLSX(w, r, id)
			return
		case "export.txt":
			h.handleExportText(w, r, id)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *StatementHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	stmt, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stmt)
}

func (h *StatementHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	h.logAudit(r, id, "statement.delete", nil)
}

func (h *StatementHandler) handleSummary(w http.ResponseWriter, r *http.Request, id string) {
	stmt, summary, err := h.service.Summary(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	resp := struct {
		Statement *statement.Statement `json:"statement"`
		Summary   statement.Summary    `json:"summary"`
	}{Statement: stmt, Summary: summary}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *StatementHandler) handleValidation(w http.ResponseWriter, r *http.Request, id string) {
	errs, err := h.service.Validation(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if errs == nil {
		errs = []statement.FieldError{}
	}
	resp := struct {
		Valid  bool                   `json:"valid"`
		Errors []statement.FieldError `json:"errors"`
	}{Valid: len(errs) == 0, Errors: errs}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *StatementHandler) handleExportPDF(w http.ResponseWriter, r *http.Request, id string) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveStatementExport("pdf", result, time.Since(start))
	}()

	stmt, err := h.service.Get(r.Context(), id)
	if err != nil {
		result = metrics.ResultError
		respondServiceError(w, err)
		return
	}
	data, err := BuildStatementPDF(*stmt, h.branding)
	if err != nil {
		result = metrics.ResultError
		http.Error(w, "export pdf error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	h.logAudit(r, stmt.ID, "statement.export", map[string]any{"format": "pdf"})
}

func (h *StatementHandler) handleExportXLSX(w http.ResponseWriter, r *http.Request, id string) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveStatementExport("xlsx", result, time.Since(start))
	}()

	stmt, err := h.service.Get(r.Context(), id)
	if err != nil {
		result = metrics.ResultError
		respondServiceError(w, err)
		return
	}
	data, err := BuildStatementXLSX(*stmt, h.branding)
	if err != nil {
		result = metrics.ResultError
		http.Error(w, "export xlsx error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	h.logAudit(r, stmt.ID, "statement.export", map[string]any{"format": "xlsx"})
}

func (h *StatementHandler) handleExportText(w http.ResponseWriter, r *http.Request, id string) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveStatementExport("txt", result, time.Since(start))
	}()

	stmt, err := h.service.Get(r.Context(), id)
	if err != nil {
		result = metrics.ResultError
		respondServiceError(w, err)
		return
	}
	text := BuildStatementText(*stmt, h.branding)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
	h.logAudit(r, stmt.ID, "statement.export", map[string]any{"format": "txt"})
}

func (h *StatementHandler) logAudit(r *http.Request, statementID, action string, meta map[string]any) {
	if h.auditLogger == nil {
		return
	}
	payload, _ := json.Marshal(meta)
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		AgentID:      auth.AgentIDFromContext(r.Context()),
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: "statement",
		ResourceID:   statementID,
		Metadata:     payload,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}

func respondServiceError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	var vErr *statementapp.ValidationFailedError
	if errors.As(err, &vErr) {
		resp := struct {
			Errors []statement.FieldError `json:"errors"`
		}{Errors: vErr.Errors}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(resp)
		return
	}
	if errors.Is(err, auth.ErrAgentMismatch) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if errors.Is(err, statement.ErrNotFound) || errors.Is(err, auth.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

package maintenance

import (
	"encoding/json"
	"errors"
	"net/http"

	"profee-cloud/internal/audit"
	"profee-cloud/internal/auth"
	"profee-cloud/internal/observability/metrics"
	statement "profee-cloud/internal/statement/domain"
)

// Handler exposes admin maintenance operations.
type Handler struct {
	statements  statement.Repository
	auditLogger audit.Logger
}

// NewHandler constructs a handler.
func NewHandler(statements statement.Repository, auditLogger audit.Logger) (*Handler, error) {
	if statements == nil {
		return nil, errors.New("maintenance handler: nil statement repo")
	}
	return &Handler{statements: statements, auditLogger: auditLogger}, nil
}

// ServeHTTP handles routes under /api/v1/maintenance. Role enforcement
// happens in the auth middleware; these routes require admin.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/v1/maintenance/purge-history" && r.Method == http.MethodPost {
		h.handlePurge(w, r)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *Handler) handlePurge(w http.ResponseWriter, r *http.Request) {
	purged, err := h.statements.PurgeAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if purged > 0 {
		metrics.IncHistoryPurge()
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"purged": purged})

	if h.auditLogger != nil {
		payload, _ := json.Marshal(map[string]any{"purged": purged})
		_ = h.auditLogger.Log(r.Context(), audit.Entry{
			AgentID:      auth.AgentIDFromContext(r.Context()),
			Actor:        auth.SubjectFromContext(r.Context()),
			Role:         string(auth.RoleFromContext(r.Context())),
			Action:       "maintenance.purge_history",
			ResourceType: "statement",
			Metadata:     payload,
			IP:           audit.ClientIP(r),
			UserAgent:    r.UserAgent(),
		})
	}
}

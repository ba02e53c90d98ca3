package interfaces

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"profee-cloud/internal/audit"
	"profee-cloud/internal/auth"
	"profee-cloud/internal/export"
	"profee-cloud/internal/observability/metrics"

	fuelapp "profee-cloud/internal/fuel/application"
	fuel "profee-cloud/internal/fuel/domain"
)

// FuelHandler handles fuel proration APIs.
type FuelHandler struct {
	service     *fuelapp.FuelService
	branding    export.Branding
	auditLogger audit.Logger
}

// NewFuelHandler constructs a handler.
func NewFuelHandler(service *fuelapp.FuelService, branding export.Branding, auditLogger audit.Logger) (*FuelHandler, error) {
	if service == nil {
		return nil, errors.New("fuel handler: nil service")
	}
	return &FuelHandler{service: service, branding: branding, auditLogger: auditLogger}, nil
}

// ServeHTTP handles fuel routes under /api/v1/fuel.
func (h *FuelHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/v1/fuel/proration":
		if r.Method == http.MethodPost {
			h.handleProration(w, r)
			return
		}
	case "/api/v1/fuel/session":
		switch r.Method {
		case http.MethodGet:
			h.handleGetSession(w, r)
			return
		case http.MethodPut:
			h.handlePutSession(w, r)
			return
		}
	case "/api/v1/fuel/export.pdf":
		if r.Method == http.MethodPost {
			h.handleExport(w, r, "pdf")
			return
		}
	case "/api/v1/fuel/export.txt":
		if r.Method == http.MethodPost {
			h.handleExport(w, r, "txt")
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *FuelHandler) handleProration(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tanks []fuel.Tank `json:"tanks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	result := h.service.Prorate(r.Context(), req.Tanks)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

func (h *FuelHandler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.GetSession(r.Context())
	if err != nil {
		respondFuelError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(session)
}

func (h *FuelHandler) handlePutSession(w http.ResponseWriter, r *http.Request) {
	var session fuel.Session
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	saved, err := h.service.SaveSession(r.Context(), session)
	if err != nil {
		respondFuelError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(saved)
	h.logAudit(r, "fuel.session.save", map[string]any{
		"includeInStatement": saved.IncludeInStatement,
		"creditTo":           saved.CreditTo,
	})
}

// sessionOverride is the posted part of an export request. Set fields win
// over the stored session.
type sessionOverride struct {
	TotalCredit   *float64 `json:"totalCredit"`
	TotalPercent  *float64 `json:"totalPercent"`
	CreditTo      *string  `json:"creditTo"`
	FuelType      *string  `json:"fuelType"`
	FuelCompany   *string  `json:"fuelCompany"`
	TankOwnership *string  `json:"tankOwnership"`
}

func (o sessionOverride) apply(session fuel.Session) fuel.Session {
	if o.TotalCredit != nil {
		session.TotalCredit = *o.TotalCredit
	}
	if o.TotalPercent != nil {
		session.TotalPercent = *o.TotalPercent
	}
	if o.CreditTo != nil {
		session.CreditTo = *o.CreditTo
	}
	if o.FuelType != nil {
		session.FuelType = *o.FuelType
	}
	if o.FuelCompany != nil {
		session.FuelCompany = *o.FuelCompany
	}
	if o.TankOwnership != nil {
		session.TankOwnership = *o.TankOwnership
	}
	return session.Normalize()
}

func (h *FuelHandler) handleExport(w http.ResponseWriter, r *http.Request, format string) {
	result := metrics.ResultSuccess
	defer func() {
		metrics.IncFuelExport(format, result)
	}()

	var override sessionOverride
	if err := json.NewDecoder(r.Body).Decode(&override); err != nil && !errors.Is(err, io.EOF) {
		result = metrics.ResultError
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	session, err := h.service.GetSession(r.Context())
	if err != nil {
		result = metrics.ResultError
		respondFuelError(w, err)
		return
	}
	session = override.apply(session)

	switch format {
	case "pdf":
		data, err := BuildFuelProrationPDF(session, h.branding)
		if err != nil {
			result = metrics.ResultError
			http.Error(w, "export pdf error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	case "txt":
		text := BuildFuelProrationText(session, h.branding)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(text))
	}
	h.logAudit(r, "fuel.export", map[string]any{"format": format})
}

func (h *FuelHandler) logAudit(r *http.Request, action string, meta map[string]any) {
	if h.auditLogger == nil {
		return
	}
	payload, _ := json.Marshal(meta)
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		AgentID:      auth.AgentIDFromContext(r.Context()),
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: "fuel_session",
		Metadata:     payload,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}

func respondFuelError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, fuel.ErrEmptyAgentID) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

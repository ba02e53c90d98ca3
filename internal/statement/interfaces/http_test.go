package interfaces

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"profee-cloud/internal/auth"
	"profee-cloud/internal/export"
	statementapp "profee-cloud/internal/statement/application"
	"profee-cloud/internal/statement/infrastructure/memory"

	statement "profee-cloud/internal/statement/domain"
)

func newHandler(t *testing.T) (*StatementHandler, *memory.StatementRepository) {
	t.Helper()
	repo := memory.NewStatementRepository()
	svc, err := statementapp.NewStatementService(repo)
	if err != nil {
		t.Fatalf("NewStatementService: %v", err)
	}
	h, err := NewStatementHandler(svc, export.DefaultBranding(), nil)
	if err != nil {
		t.Fatalf("NewStatementHandler: %v", err)
	}
	return h, repo
}

func doRequest(h http.Handler, method, target, agentID string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req = req.WithContext(auth.WithIdentity(req.Context(), agentID, auth.RoleAgent, agentID+"@test"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	h, _ := newHandler(t)

	body := []byte(`{"propertyAddress":"12 Oak Ln","salePrice":200000,"listingCommissionPct":3,"buyerCommissionPct":3}`)
	rec := doRequest(h, http.MethodPost, "/api/v1/statements", "agent-1", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("save status = %d, body %s", rec.Code, rec.Body.String())
	}
	var saved statement.Statement
	if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected assigned id")
	}

	rec = doRequest(h, http.MethodGet, "/api/v1/statements/"+saved.ID, "agent-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
}

func TestSaveInvalidReturns422WithErrors(t *testing.T) {
	h, _ := newHandler(t)

	body := []byte(`{"propertyAddress":"12 Oak Ln","salePrice":0,"listingCommissionPct":3,"buyerCommissionPct":3}`)
	rec := doRequest(h, http.MethodPost, "/api/v1/statements", "agent-1", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Errors []statement.FieldError `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Field != "salePrice" {
		t.Fatalf("unexpected errors: %+v", resp.Errors)
	}
}

func TestSaveResolvesLegacyReferralSpelling(t *testing.T) {
	h, _ := newHandler(t)

	body := []byte(`{"propertyAddress":"12 Oak Ln","salePrice":200000,"listingCommissionPct":3,"buyerCommissionPct":3,"referralFeePct":10,"referralFeePercent":25}`)
	rec := doRequest(h, http.MethodPost, "/api/v1/statements", "agent-1", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var saved statement.Statement
	if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if saved.ReferralFeePct == nil || *saved.ReferralFeePct != 25 {
		t.Fatalf("referral pct = %v, want 25", saved.ReferralFeePct)
	}
}

func TestGetForeignStatementForbidden(t *testing.T) {
	h, _ := newHandler(t)

	body := []byte(`{"propertyAddress":"12 Oak Ln","salePrice":200000,"listingCommissionPct":3,"buyerCommissionPct":3}`)
	rec := doRequest(h, http.MethodPost, "/api/v1/statements", "agent-1", body)
	var saved statement.Statement
	if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = doRequest(h, http.MethodGet, "/api/v1/statements/"+saved.ID, "agent-2", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGetMissingReturns404(t *testing.T) {
	h, _ := newHandler(t)
	rec := doRequest(h, http.MethodGet, "/api/v1/statements/stmt-missing", "agent-1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestLatestEmptyReturns404(t *testing.T) {
	h, _ := newHandler(t)
	rec := doRequest(h, http.MethodGet, "/api/v1/statements/latest", "agent-1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestListReturnsEmptyArray(t *testing.T) {
	h, _ := newHandler(t)
	rec := doRequest(h, http.MethodGet, "/api/v1/statements", "agent-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("body = %q", got)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	h, _ := newHandler(t)

	body := []byte(`{"propertyAddress":"12 Oak Ln","salePrice":200000,"listingCommissionPct":3,"buyerCommissionPct":3,"referralFeePct":25}`)
	rec := doRequest(h, http.MethodPost, "/api/v1/statements", "agent-1", body)
	var saved statement.Statement
	if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = doRequest(h, http.MethodGet, "/api/v1/statements/"+saved.ID+"/summary", "agent-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Summary statement.Summary `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Summary.NetCommissionAmount != 9000 {
		t.Fatalf("net = %v", resp.Summary.NetCommissionAmount)
	}
}

func TestValidationEndpointReportsViolations(t *testing.T) {
	h, repo := newHandler(t)

	stmt := sampleStatement()
	stmt.SalePrice = f64(-1)
	if err := repo.Upsert(httptest.NewRequest(http.MethodGet, "/", nil).Context(), stmt); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	rec := doRequest(h, http.MethodGet, "/api/v1/statements/"+stmt.ID+"/validation", "agent-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Valid  bool                   `json:"valid"`
		Errors []statement.FieldError `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Valid || len(resp.Errors) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestExportEndpointsContentTypes(t *testing.T) {
	h, _ := newHandler(t)

	body := []byte(`{"propertyAddress":"12 Oak Ln","salePrice":200000,"listingCommissionPct":3,"buyerCommissionPct":3}`)
	rec := doRequest(h, http.MethodPost, "/api/v1/statements", "agent-1", body)
	var saved statement.Statement
	if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode: %v", err)
	}

	cases := []struct {
		suffix      string
		contentType string
	}{
		{"export.pdf", "application/pdf"},
		{"export.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{"export.txt", "text/plain; charset=utf-8"},
	}
	for _, tc := range cases {
		rec := doRequest(h, http.MethodGet, "/api/v1/statements/"+saved.ID+"/"+tc.suffix, "agent-1", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d", tc.suffix, rec.Code)
		}
		if got := rec.Header().Get("Content-Type"); got != tc.contentType {
			t.Fatalf("%s content type = %q", tc.suffix, got)
		}
		if rec.Body.Len() == 0 {
			t.Fatalf("%s empty body", tc.suffix)
		}
	}
}

func TestDeleteReturnsNoContent(t *testing.T) {
	h, _ := newHandler(t)

	body := []byte(`{"propertyAddress":"12 Oak Ln","salePrice":200000,"listingCommissionPct":3,"buyerCommissionPct":3}`)
	rec := doRequest(h, http.MethodPost, "/api/v1/statements", "agent-1", body)
	var saved statement.Statement
	if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = doRequest(h, http.MethodDelete, "/api/v1/statements/"+saved.ID, "agent-1", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
}

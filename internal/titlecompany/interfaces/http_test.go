package interfaces

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"profee-cloud/internal/auth"

	companyapp "profee-cloud/internal/titlecompany/application"
	titlecompany "profee-cloud/internal/titlecompany/domain"
	"profee-cloud/internal/titlecompany/infrastructure/memory"
)

func newHandler(t *testing.T) *CompanyHandler {
	t.Helper()
	svc, err := companyapp.NewCompanyService(memory.NewCompanyRepository())
	if err != nil {
		t.Fatalf("NewCompanyService: %v", err)
	}
	h, err := NewCompanyHandler(svc, nil)
	if err != nil {
		t.Fatalf("NewCompanyHandler: %v", err)
	}
	return h
}

func doRequest(h http.Handler, method, target, agentID string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req = req.WithContext(auth.WithIdentity(req.Context(), agentID, auth.RoleAgent, agentID+"@test"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSaveListDelete(t *testing.T) {
	h := newHandler(t)

	body := []byte(`{"name":"First Title","contactName":"Pat","email":"closing@firsttitle.test"}`)
	rec := doRequest(h, http.MethodPost, "/api/v1/title-companies", "agent-1", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("save status = %d, body %s", rec.Code, rec.Body.String())
	}
	var saved titlecompany.Company
	if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if saved.ID == "" || saved.AgentID != "agent-1" {
		t.Fatalf("unexpected company: %+v", saved)
	}

	rec = doRequest(h, http.MethodGet, "/api/v1/title-companies", "agent-1", nil)
	var list []titlecompany.Company
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].Name != "First Title" {
		t.Fatalf("unexpected list: %+v", list)
	}

	rec = doRequest(h, http.MethodDelete, "/api/v1/title-companies/"+saved.ID, "agent-1", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doRequest(h, http.MethodGet, "/api/v1/title-companies", "agent-1", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %+v", list)
	}
}

func TestSaveRequiresName(t *testing.T) {
	h := newHandler(t)
	rec := doRequest(h, http.MethodPost, "/api/v1/title-companies", "agent-1", []byte(`{"name":"  "}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestListScopedToAgent(t *testing.T) {
	h := newHandler(t)

	doRequest(h, http.MethodPost, "/api/v1/title-companies", "agent-1", []byte(`{"name":"First Title"}`))
	doRequest(h, http.MethodPost, "/api/v1/title-companies", "agent-2", []byte(`{"name":"Second Title"}`))

	rec := doRequest(h, http.MethodGet, "/api/v1/title-companies", "agent-2", nil)
	var list []titlecompany.Company
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Second Title" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestDeleteForeignCompanyForbidden(t *testing.T) {
	h := newHandler(t)

	rec := doRequest(h, http.MethodPost, "/api/v1/title-companies", "agent-1", []byte(`{"name":"First Title"}`))
	var saved titlecompany.Company
	if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = doRequest(h, http.MethodDelete, "/api/v1/title-companies/"+saved.ID, "agent-2", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSelectionConsumeOnce(t *testing.T) {
	h := newHandler(t)

	body := []byte(`{"id":"tc-1","name":"First Title","email":"closing@firsttitle.test"}`)
	rec := doRequest(h, http.MethodPut, "/api/v1/title-companies/selection/stmt-1", "agent-1", body)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("stage status = %d", rec.Code)
	}

	rec = doRequest(h, http.MethodPost, "/api/v1/title-companies/selection/stmt-1/consume", "agent-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("consume status = %d", rec.Code)
	}
	var company titlecompany.Company
	if err := json.Unmarshal(rec.Body.Bytes(), &company); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if company.Name != "First Title" {
		t.Fatalf("unexpected company: %+v", company)
	}

	rec = doRequest(h, http.MethodPost, "/api/v1/title-companies/selection/stmt-1/consume", "agent-1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second consume status = %d", rec.Code)
	}
}

func TestStageReplacesPriorSelection(t *testing.T) {
	h := newHandler(t)

	doRequest(h, http.MethodPut, "/api/v1/title-companies/selection/stmt-1", "agent-1", []byte(`{"name":"First Title"}`))
	doRequest(h, http.MethodPut, "/api/v1/title-companies/selection/stmt-1", "agent-1", []byte(`{"name":"Replacement Title"}`))

	rec := doRequest(h, http.MethodPost, "/api/v1/title-companies/selection/stmt-1/consume", "agent-1", nil)
	var company titlecompany.Company
	if err := json.Unmarshal(rec.Body.Bytes(), &company); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if company.Name != "Replacement Title" {
		t.Fatalf("unexpected company: %+v", company)
	}
}

func TestConsumeWithoutSelection404(t *testing.T) {
	h := newHandler(t)
	rec := doRequest(h, http.MethodPost, "/api/v1/title-companies/selection/stmt-none/consume", "agent-1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

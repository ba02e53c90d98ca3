package memory

import (
	"context"
	"sort"
	"sync"

	titlecompany "profee-cloud/internal/titlecompany/domain"
)

// CompanyRepository is an in-memory company store used by tests and local
// development.
type CompanyRepository struct {
	mu   sync.RWMutex
	data map[string]titlecompany.Company
}

// NewCompanyRepository constructs a repository.
func NewCompanyRepository() *CompanyRepository {
	return &CompanyRepository{data: make(map[string]titlecompany.Company)}
}

// ListByAgent returns the agent's companies, newest first.
func (r *CompanyRepository) ListByAgent(ctx context.Context, agentID string) ([]titlecompany.Company, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []titlecompany.Company
	for _, company := range r.data {
		if agentID != "" && company.AgentID != agentID {
			continue
		}
		result = append(result, company)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// GetByID loads one company.
func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*titlecompany.Company, error) {
	_ = ctx
	if id == "" {
		return nil, titlecompany.ErrEmptyID
	}
	r.mu.RLock()
	company, ok := r.data[id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return &company, nil
}

// Upsert inserts or replaces a company.
func (r *CompanyRepository) Upsert(ctx context.Context, company titlecompany.Company) error {
	_ = ctx
	if company.ID == "" {
		return titlecompany.ErrEmptyID
	}
	r.mu.Lock()
	r.data[company.ID] = company
	r.mu.Unlock()
	return nil
}

// Delete removes a company; deleting a missing id is a no-op.
func (r *CompanyRepository) Delete(ctx context.Context, id string) error {
	_ = ctx
	if id == "" {
		return titlecompany.ErrEmptyID
	}
	r.mu.Lock()
	delete(r.data, id)
	r.mu.Unlock()
	return nil
}

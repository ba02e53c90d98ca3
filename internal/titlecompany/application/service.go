package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"profee-cloud/internal/auth"

	titlecompany "profee-cloud/internal/titlecompany/domain"
)

// CompanyService handles the title company address book plus the
// consume-once selection handoff between the company picker and the
// statement editor. Selections are transient by design: they only bridge
// two screens within one editing flow, so they live in memory and do not
// survive a restart.
type CompanyService struct {
	repo titlecompany.Repository

	mu         sync.Mutex
	selections map[string]titlecompany.Company
}

// NewCompanyService constructs a service.
func NewCompanyService(repo titlecompany.Repository) (*CompanyService, error) {
	if repo == nil {
		return nil, errors.New("titlecompany service: nil repo")
	}
	return &CompanyService{
		repo:       repo,
		selections: make(map[string]titlecompany.Company),
	}, nil
}

// Save validates and stores a company. New companies get a server assigned
// id and creation time; the authenticated agent becomes the owner.
func (s *CompanyService) Save(ctx context.Context, company titlecompany.Company) (*titlecompany.Company, error) {
	if strings.TrimSpace(company.Name) == "" {
		return nil, titlecompany.ErrEmptyName
	}
	agentID := auth.AgentIDFromContext(ctx)
	role := auth.RoleFromContext(ctx)

	if company.ID == "" {
		company.ID = "tc-" + uuid.NewString()
		company.CreatedAt = time.Now().UTC()
		if company.AgentID == "" {
			company.AgentID = agentID
		}
	} else {
		existing, err := s.repo.GetByID(ctx, company.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if err := auth.EnsureOwner(agentID, role, existing.AgentID); err != nil {
				return nil, err
			}
			company.CreatedAt = existing.CreatedAt
			company.AgentID = existing.AgentID
		} else {
			if company.CreatedAt.IsZero() {
				company.CreatedAt = time.Now().UTC()
			}
			if company.AgentID == "" {
				company.AgentID = agentID
			}
		}
	}

	if err := s.repo.Upsert(ctx, company); err != nil {
		return nil, err
	}
	return &company, nil
}

// List returns the caller's companies, newest first.
func (s *CompanyService) List(ctx context.Context) ([]titlecompany.Company, error) {
	return s.repo.ListByAgent(ctx, auth.AgentIDFromContext(ctx))
}

// Delete removes a company after an ownership check.
func (s *CompanyService) Delete(ctx context.Context, id string) error {
	company, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if company == nil {
		return titlecompany.ErrNotFound
	}
	if err := auth.EnsureOwner(auth.AgentIDFromContext(ctx), auth.RoleFromContext(ctx), company.AgentID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Stage records a company pick for a statement. A later pick for the same
// statement replaces the earlier one.
func (s *CompanyService) Stage(ctx context.Context, statementID string, company titlecompany.Company) error {
	_ = ctx
	if statementID == "" {
		return titlecompany.ErrEmptyID
	}
	if strings.TrimSpace(company.Name) == "" {
		return titlecompany.ErrEmptyName
	}
	s.mu.Lock()
	s.selections[statementID] = company
	s.mu.Unlock()
	return nil
}

// Consume returns and clears the staged pick for a statement. A second
// consume for the same statement reports ErrNotFound.
func (s *CompanyService) Consume(ctx context.Context, statementID string) (*titlecompany.Company, error) {
	_ = ctx
	if statementID == "" {
		return nil, titlecompany.ErrEmptyID
	}
	s.mu.Lock()
	company, ok := s.selections[statementID]
	if ok {
		delete(s.selections, statementID)
	}
	s.mu.Unlock()
	if !ok {
		return nil, titlecompany.ErrNotFound
	}
	return &company, nil
}

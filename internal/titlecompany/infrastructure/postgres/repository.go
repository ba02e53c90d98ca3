package postgres

import (
	"context"
	"database/sql"
	"errors"

	titlecompany "profee-cloud/internal/titlecompany/domain"
)

// CompanyRepository persists title companies.
type CompanyRepository struct {
	db *sql.DB
}

// NewCompanyRepository constructs a repository.
func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// ListByAgent returns the agent's companies, newest first.
func (r *CompanyRepository) ListByAgent(ctx context.Context, agentID string) ([]titlecompany.Company, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("titlecompany repo: nil db")
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, agent_id, name, contact_name, email, phone, created_at
FROM title_companies
WHERE ($1 = '' OR agent_id = $1)
ORDER BY created_at DESC`, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []titlecompany.Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, company)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID fetches one company.
func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*titlecompany.Company, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("titlecompany repo: nil db")
	}
	if id == "" {
		return nil, titlecompany.ErrEmptyID
	}
	row := r.db.QueryRowContext(ctx, `
SELECT id, agent_id, name, contact_name, email, phone, created_at
FROM title_companies
WHERE id = $1
LIMIT 1`, id)
	company, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

// Upsert inserts or replaces a company keyed by id.
func (r *CompanyRepository) Upsert(ctx context.Context, company titlecompany.Company) error {
	if r == nil || r.db == nil {
		return errors.New("titlecompany repo: nil db")
	}
	if company.ID == "" {
		return titlecompany.ErrEmptyID
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO title_companies (id, agent_id, name, contact_name, email, phone, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	contact_name = EXCLUDED.contact_name,
	email = EXCLUDED.email,
	phone = EXCLUDED.phone`,
		company.ID, company.AgentID, company.Name, company.ContactName,
		company.Email, company.Phone, company.CreatedAt.UTC())
	return err
}

// Delete removes a company; deleting a missing id is a no-op.
func (r *CompanyRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("titlecompany repo: nil db")
	}
	if id == "" {
		return titlecompany.ErrEmptyID
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM title_companies WHERE id = $1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompany(row rowScanner) (titlecompany.Company, error) {
	var company titlecompany.Company
	if err := row.Scan(&company.ID, &company.AgentID, &company.Name,
		&company.ContactName, &company.Email, &company.Phone, &company.CreatedAt); err != nil {
		return titlecompany.Company{}, err
	}
	company.CreatedAt = company.CreatedAt.UTC()
	return company, nil
}

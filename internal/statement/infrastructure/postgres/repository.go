package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	statement "profee-cloud/internal/statement/domain"
)

// StatementRepository persists statements. Scalar columns are extracted for
// listing and ownership checks; the full record lives in a JSON payload so
// that legacy field spellings are resolved once, at decode time.
type StatementRepository struct {
	db *sql.DB
}

// NewStatementRepository constructs a repository.
func NewStatementRepository(db *sql.DB) *StatementRepository {
	return &StatementRepository{db: db}
}

// ListByAgent returns the agent's statements, newest first.
func (r *StatementRepository) ListByAgent(ctx context.Context, agentID string) ([]statement.Statement, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("statement repo: nil db")
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT payload
FROM statements
WHERE ($1 = '' OR agent_id = $1)
ORDER BY created_at DESC`, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []statement.Statement
	for rows.Next() {
		stmt, err := scanPayload(rows)
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			result = append(result, *stmt)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID fetches a statement.
func (r *StatementRepository) GetByID(ctx context.Context, id string) (*statement.Statement, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("statement repo: nil db")
	}
	if id == "" {
		return nil, statement.ErrEmptyID
	}
	row := r.db.QueryRowContext(ctx, `
SELECT payload
FROM statements
WHERE id = $1
LIMIT 1`, id)
	stmt, err := scanPayload(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return stmt, nil
}

// Latest returns the most recently created statement for an agent.
func (r *StatementRepository) Latest(ctx context.Context, agentID string) (*statement.Statement, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("statement repo: nil db")
	}
	row := r.db.QueryRowContext(ctx, `
SELECT payload
FROM statements
WHERE ($1 = '' OR agent_id = $1)
ORDER BY created_at DESC
LIMIT 1`, agentID)
	stmt, err := scanPayload(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return stmt, nil
}

// Upsert inserts or replaces a statement keyed by id.
func (r *StatementRepository) Upsert(ctx context.Context, stmt statement.Statement) error {
	if r == nil || r.db == nil {
		return errors.New("statement repo: nil db")
	}
	if stmt.ID == "" {
		return statement.ErrEmptyID
	}
	payload, err := json.Marshal(stmt)
	if err != nil {
		return err
	}
	var salePrice sql.NullFloat64
	if stmt.SalePrice != nil {
		salePrice = sql.NullFloat64{Float64: *stmt.SalePrice, Valid: true}
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO statements (id, agent_id, property_address, sale_price, created_at, payload)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (id) DO UPDATE SET
	agent_id = EXCLUDED.agent_id,
	property_address = EXCLUDED.property_address,
	sale_price = EXCLUDED.sale_price,
	payload = EXCLUDED.payload`,
		stmt.ID, stmt.AgentID, stmt.PropertyAddress, salePrice, stmt.CreatedAt.UTC(), payload)
	return err
}

// Delete removes a statement; deleting a missing id is a no-op.
func (r *StatementRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("statement repo: nil db")
	}
	if id == "" {
		return statement.ErrEmptyID
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM statements WHERE id = $1`, id)
	return err
}

// PurgeAll removes every statement and reports how many were dropped.
func (r *StatementRepository) PurgeAll(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, errors.New("statement repo: nil db")
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM statements`)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return affected, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayload(row rowScanner) (*statement.Statement, error) {
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		return nil, err
	}
	var stmt statement.Statement
	if err := json.Unmarshal(payload, &stmt); err != nil {
		return nil, err
	}
	stmt.CreatedAt = stmt.CreatedAt.UTC()
	return &stmt, nil
}

package memory

import (
	"context"
	"sort"
	"sync"

	statement "profee-cloud/internal/statement/domain"
)

// StatementRepository is an in-memory statement store used by tests and
// local development.
type StatementRepository struct {
	mu   sync.RWMutex
	data map[string]statement.Statement
}

// NewStatementRepository constructs a repository.
func NewStatementRepository() *StatementRepository {
	return &StatementRepository{data: make(map[string]statement.Statement)}
}

// ListByAgent returns the agent's statements, newest first.
func (r *StatementRepository) ListByAgent(ctx context.Context, agentID string) ([]statement.Statement, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []statement.Statement
	for _, stmt := range r.data {
		if agentID != "" && stmt.AgentID != agentID {
			continue
		}
		result = append(result, stmt.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// GetByID loads one statement.
func (r *StatementRepository) GetByID(ctx context.Context, id string) (*statement.Statement, error) {
	_ = ctx
	if id == "" {
		return nil, statement.ErrEmptyID
	}
	r.mu.RLock()
	stmt, ok := r.data[id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	clone := stmt.Clone()
	return &clone, nil
}

// Latest returns the most recently created statement for an agent.
func (r *StatementRepository) Latest(ctx context.Context, agentID string) (*statement.Statement, error) {
	list, err := r.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	latest := list[0].Clone()
	return &latest, nil
}

// Upsert inserts or replaces a statement.
func (r *StatementRepository) Upsert(ctx context.Context, stmt statement.Statement) error {
	_ = ctx
	if stmt.ID == "" {
		return statement.ErrEmptyID
	}
	r.mu.Lock()
	r.data[stmt.ID] = stmt.Clone()
	r.mu.Unlock()
	return nil
}

// Delete removes a statement; deleting a missing id is a no-op.
func (r *StatementRepository) Delete(ctx context.Context, id string) error {
	_ = ctx
	if id == "" {
		return statement.ErrEmptyID
	}
	r.mu.Lock()
	delete(r.data, id)
	r.mu.Unlock()
	return nil
}

// PurgeAll clears the store and returns the number of removed statements.
func (r *StatementRepository) PurgeAll(ctx context.Context) (int64, error) {
	_ = ctx
	r.mu.Lock()
	count := int64(len(r.data))
	r.data = make(map[string]statement.Statement)
	r.mu.Unlock()
	return count, nil
}

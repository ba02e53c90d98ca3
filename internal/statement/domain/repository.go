package statement

import "context"

// Repository persists statements. Lookups return (nil, nil) when the
// statement does not exist.
type Repository interface {
	ListByAgent(ctx context.Context, agentID string) ([]Statement, error)
	GetByID(ctx context.Context, id string) (*Statement, error)
	Latest(ctx context.Context, agentID string) (*Statement, error)
	Upsert(ctx context.Context, stmt Statement) error
	Delete(ctx context.Context, id string) error
	PurgeAll(ctx context.Context) (int64, error)
}

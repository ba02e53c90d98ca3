package fuel

import "context"

// SessionRepository persists the per-agent proration session. GetByAgent
// returns (nil, nil) when the agent has no stored session.
type SessionRepository interface {
	GetByAgent(ctx context.Context, agentID string) (*Session, error)
	Upsert(ctx context.Context, session Session) error
}

package memory

import (
	"context"
	"sync"

	fuel "profee-cloud/internal/fuel/domain"
)

// SessionRepository is an in-memory session store used by tests and local
// development.
type SessionRepository struct {
	mu   sync.RWMutex
	data map[string]fuel.Session
}

// NewSessionRepository constructs a repository.
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{data: make(map[string]fuel.Session)}
}

// GetByAgent loads the agent's session.
func (r *SessionRepository) GetByAgent(ctx context.Context, agentID string) (*fuel.Session, error) {
	_ = ctx
	if agentID == "" {
		return nil, fuel.ErrEmptyAgentID
	}
	r.mu.RLock()
	session, ok := r.data[agentID]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return &session, nil
}

// Upsert stores the agent's session, replacing any prior state.
func (r *SessionRepository) Upsert(ctx context.Context, session fuel.Session) error {
	_ = ctx
	if session.AgentID == "" {
		return fuel.ErrEmptyAgentID
	}
	r.mu.Lock()
	r.data[session.AgentID] = session
	r.mu.Unlock()
	return nil
}

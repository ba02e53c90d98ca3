package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	fuel "profee-cloud/internal/fuel/domain"
)

// SessionRepository persists fuel proration sessions, one row per agent.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository constructs a repository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// GetByAgent loads the agent's session.
func (r *SessionRepository) GetByAgent(ctx context.Context, agentID string) (*fuel.Session, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("fuel session repo: nil db")
	}
	if agentID == "" {
		return nil, fuel.ErrEmptyAgentID
	}
	row := r.db.QueryRowContext(ctx, `
SELECT payload
FROM fuel_sessions
WHERE agent_id = $1
LIMIT 1`, agentID)
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var session fuel.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}
	session.AgentID = agentID
	session.UpdatedAt = session.UpdatedAt.UTC()
	return &session, nil
}

// Upsert stores the agent's session, replacing any prior state.
func (r *SessionRepository) Upsert(ctx context.Context, session fuel.Session) error {
	if r == nil || r.db == nil {
		return errors.New("fuel session repo: nil db")
	}
	if session.AgentID == "" {
		return fuel.ErrEmptyAgentID
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO fuel_sessions (agent_id, updated_at, payload)
VALUES ($1,$2,$3)
ON CONFLICT (agent_id) DO UPDATE SET
	updated_at = EXCLUDED.updated_at,
	payload = EXCLUDED.payload`,
		session.AgentID, session.UpdatedAt.UTC(), payload)
	return err
}

// Package titlecompany holds the agent's title company address book and the
// per-statement selection handoff used when a statement is being edited.
package titlecompany

import (
	"context"
	"errors"
	"time"
)

// Company is one title company contact owned by an agent.
type Company struct {
	ID          string    `json:"id"`
	AgentID     string    `json:"agentId"`
	Name        string    `json:"name"`
	ContactName string    `json:"contactName,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Sentinel errors.
var (
	ErrNotFound  = errors.New("titlecompany: not found")
	ErrEmptyID   = errors.New("titlecompany: empty id")
	ErrEmptyName = errors.New("titlecompany: empty name")
)

// Repository persists companies. GetByID returns (nil, nil) when missing.
type Repository interface {
	ListByAgent(ctx context.Context, agentID string) ([]Company, error)
	GetByID(ctx context.Context, id string) (*Company, error)
	Upsert(ctx context.Context, company Company) error
	Delete(ctx context.Context, id string) error
}

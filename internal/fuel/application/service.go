package application

import (
	"context"
	"errors"
	"time"

	"profee-cloud/internal/auth"
	"profee-cloud/internal/observability/metrics"

	fuel "profee-cloud/internal/fuel/domain"
)

// FuelService handles proration computations and the per-agent session.
type FuelService struct {
	sessions fuel.SessionRepository
}

// NewFuelService constructs a service.
func NewFuelService(sessions fuel.SessionRepository) (*FuelService, error) {
	if sessions == nil {
		return nil, errors.New("fuel service: nil session repo")
	}
	return &FuelService{sessions: sessions}, nil
}

// ProrationResult pairs the per-tank outcome with the combined fill level.
type ProrationResult struct {
	fuel.Proration
	TotalPercent float64 `json:"totalPercent"`
}

// Prorate computes the credit breakdown for a set of tanks. The computation
// is pure; metrics record the call.
func (s *FuelService) Prorate(ctx context.Context, tanks []fuel.Tank) ProrationResult {
	_ = ctx
	start := time.Now()
	defer func() {
		metrics.ObserveFuelProration(metrics.ResultSuccess, time.Since(start))
	}()

	return ProrationResult{
		Proration:    fuel.CalculateProration(tanks),
		TotalPercent: fuel.TotalFillPercent(tanks),
	}
}

// GetSession returns the caller's session, falling back to a fresh default
// when none is stored. Stored payloads are normalized on the way out.
func (s *FuelService) GetSession(ctx context.Context) (fuel.Session, error) {
	agentID := auth.AgentIDFromContext(ctx)
	if agentID == "" {
		return fuel.Session{}, fuel.ErrEmptyAgentID
	}
	stored, err := s.sessions.GetByAgent(ctx, agentID)
	if err != nil {
		return fuel.Session{}, err
	}
	if stored == nil {
		return fuel.NewSession(agentID), nil
	}
	session := stored.Normalize()
	session.AgentID = agentID
	return session, nil
}

// SaveSession normalizes and stores the caller's session. The owner and
// update time are always server assigned.
func (s *FuelService) SaveSession(ctx context.Context, session fuel.Session) (fuel.Session, error) {
	agentID := auth.AgentIDFromContext(ctx)
	if agentID == "" {
		return fuel.Session{}, fuel.ErrEmptyAgentID
	}
	session = session.Normalize()
	session.AgentID = agentID
	session.UpdatedAt = time.Now().UTC()
	if err := s.sessions.Upsert(ctx, session); err != nil {
		return fuel.Session{}, err
	}
	return session, nil
}

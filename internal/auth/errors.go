package auth

import "errors"

var (
	// ErrAgentMismatch indicates a resource belongs to a different agent.
	ErrAgentMismatch = errors.New("agent mismatch")
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("resource not found")
)

// EnsureOwner verifies a resource owner against the authenticated agent.
// Admins bypass ownership; an empty authenticated agent (auth disabled)
// passes as well.
func EnsureOwner(agentID string, role Role, ownerID string) error {
	if agentID == "" || role == RoleAdmin {
		return nil
	}
	if ownerID != "" && ownerID != agentID {
		return ErrAgentMismatch
	}
	return nil
}

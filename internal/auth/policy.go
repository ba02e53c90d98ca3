package auth

import (
	"net/http"
	"strings"
)

// Policy determines required roles by request.
type Policy struct {
	ExemptPaths    map[string]struct{}
	ExemptPrefixes []string
}

// NewDefaultPolicy builds a default policy with exemptions.
func NewDefaultPolicy(exemptPaths []string, exemptPrefixes []string) Policy {
	set := make(map[string]struct{}, len(exemptPaths))
	for _, path := range exemptPaths {
		set[path] = struct{}{}
	}
	return Policy{ExemptPaths: set, ExemptPrefixes: exemptPrefixes}
}

// IsExempt returns true when a request should skip auth/RBAC.
func (p Policy) IsExempt(r *http.Request) bool {
	if r == nil {
		return true
	}
	if _, ok := p.ExemptPaths[r.URL.Path]; ok {
		return true
	}
	for _, prefix := range p.ExemptPrefixes {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}
	return false
}

// RequiredRole resolves the required role for the request. Reads need a
// viewer; anything that writes or exports needs the agent role.
func (p Policy) RequiredRole(r *http.Request) (Role, bool) {
	if r == nil {
		return "", false
	}
	path := r.URL.Path
	method := r.Method

	switch {
	case strings.HasPrefix(path, "/api/v1/statements"):
		if method == http.MethodGet {
			if strings.Contains(path, "/export.") {
				return RoleAgent, true
			}
			return RoleViewer, true
		}
		return RoleAgent, true
	case strings.HasPrefix(path, "/api/v1/fuel/"):
		if method == http.MethodGet {
			return RoleViewer, true
		}
		return RoleAgent, true
	case strings.HasPrefix(path, "/api/v1/title-companies"):
		if method == http.MethodGet {
			return RoleViewer, true
		}
		return RoleAgent, true
	case strings.HasPrefix(path, "/api/v1/maintenance/"):
		return RoleAdmin, true
	}
	return "", false
}

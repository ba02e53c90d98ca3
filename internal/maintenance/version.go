// Package maintenance runs housekeeping tasks around statement history. The
// version migration mirrors the mobile app behavior: when the running app
// version differs from the one recorded at the last start, statement history
// is purged before the service begins accepting traffic.
package maintenance

import (
	"context"
	"errors"
	"log"

	"profee-cloud/internal/observability/metrics"
	statement "profee-cloud/internal/statement/domain"
)

// VersionStore records the app version seen at the last startup. Get returns
// ("", nil) when no version has been recorded yet.
type VersionStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, version string) error
}

// Migrator compares the stored and running versions and purges history on a
// mismatch. A fresh install (no stored version) also records the version; the
// purge is then a no-op.
type Migrator struct {
	versions   VersionStore
	statements statement.Repository
	logger     *log.Logger
}

// NewMigrator constructs a migrator.
func NewMigrator(versions VersionStore, statements statement.Repository, logger *log.Logger) (*Migrator, error) {
	if versions == nil {
		return nil, errors.New("maintenance: nil version store")
	}
	if statements == nil {
		return nil, errors.New("maintenance: nil statement repo")
	}
	return &Migrator{versions: versions, statements: statements, logger: logger}, nil
}

// Run performs the migration and returns how many statements were purged.
func (m *Migrator) Run(ctx context.Context, currentVersion string) (int64, error) {
	if currentVersion == "" {
		currentVersion = "unknown"
	}
	stored, err := m.versions.Get(ctx)
	if err != nil {
		return 0, err
	}
	if stored == currentVersion {
		return 0, nil
	}

	purged, err := m.statements.PurgeAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := m.versions.Set(ctx, currentVersion); err != nil {
		return purged, err
	}
	if purged > 0 {
		metrics.IncHistoryPurge()
	}
	if m.logger != nil {
		m.logger.Printf("maintenance: version %q -> %q, purged %d statements", stored, currentVersion, purged)
	}
	return purged, nil
}

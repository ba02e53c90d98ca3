package maintenance

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresVersionStore keeps the recorded app version in the app_meta table.
type PostgresVersionStore struct {
	db *sql.DB
}

// NewPostgresVersionStore constructs a store.
func NewPostgresVersionStore(db *sql.DB) *PostgresVersionStore {
	return &PostgresVersionStore{db: db}
}

// Get loads the recorded version.
func (s *PostgresVersionStore) Get(ctx context.Context) (string, error) {
	if s == nil || s.db == nil {
		return "", errors.New("maintenance: nil db")
	}
	row := s.db.QueryRowContext(ctx, `
SELECT value
FROM app_meta
WHERE key = 'app_version'
LIMIT 1`)
	var version string
	if err := row.Scan(&version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return version, nil
}

// Set records the version.
func (s *PostgresVersionStore) Set(ctx context.Context, version string) error {
	if s == nil || s.db == nil {
		return errors.New("maintenance: nil db")
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO app_meta (key, value)
VALUES ('app_version', $1)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, version)
	return err
}

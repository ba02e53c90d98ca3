package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"profee-cloud/internal/auth"
	"profee-cloud/internal/observability/metrics"
	statement "profee-cloud/internal/statement/domain"
)

// ValidationFailedError carries the field errors that blocked a save.
type ValidationFailedError struct {
	Errors []statement.FieldError
}

// Error joins all messages so logs stay readable.
func (e *ValidationFailedError) Error() string {
	messages := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		messages = append(messages, fe.Message)
	}
	return "statement service: validation failed: " + strings.Join(messages, " ")
}

// StatementService handles statement workflows.
type StatementService struct {
	repo statement.Repository
}

// NewStatementService constructs a service.
func NewStatementService(repo statement.Repository) (*StatementService, error) {
	if repo == nil {
		return nil, errors.New("statement service: nil repo")
	}
	return &StatementService{repo: repo}, nil
}

// Save validates and upserts a statement. New statements get a server
// assigned id and creation time; the authenticated agent becomes the owner.
// Validation gates the save: an invalid statement is rejected with a
// ValidationFailedError carrying every violation.
func (s *StatementService) Save(ctx context.Context, stmt statement.Statement) (*statement.Statement, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveStatementSave(result, time.Since(start))
	}()

	agentID := auth.AgentIDFromContext(ctx)
	role := auth.RoleFromContext(ctx)

	if stmt.ID == "" {
		stmt.ID = "stmt-" + uuid.NewString()
		stmt.CreatedAt = time.Now().UTC()
		if stmt.AgentID == "" {
			stmt.AgentID = agentID
		}
	} else {
		existing, err := s.repo.GetByID(ctx, stmt.ID)
		if err != nil {
			result = metrics.ResultError
			return nil, err
		}
		if existing != nil {
			if err := auth.EnsureOwner(agentID, role, existing.AgentID); err != nil {
				result = metrics.ResultError
				return nil, err
			}
			// Creation metadata is immutable.
			stmt.CreatedAt = existing.CreatedAt
			stmt.AgentID = existing.AgentID
		} else {
			if stmt.CreatedAt.IsZero() {
				stmt.CreatedAt = time.Now().UTC()
			}
			if stmt.AgentID == "" {
				stmt.AgentID = agentID
			}
		}
	}

	if errs := statement.Validate(stmt); len(errs) > 0 {
		result = metrics.ResultError
		for _, fe := range errs {
			metrics.IncValidationFailure(fe.Field)
		}
		return nil, &ValidationFailedError{Errors: errs}
	}

	if err := s.repo.Upsert(ctx, stmt); err != nil {
		result = metrics.ResultError
		return nil, err
	}
	return &stmt, nil
}

// Get returns a statement owned by (or visible to) the caller.
func (s *StatementService) Get(ctx context.Context, id string) (*statement.Statement, error) {
	stmt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stmt == nil {
		return nil, statement.ErrNotFound
	}
	if err := auth.EnsureOwner(auth.AgentIDFromContext(ctx), auth.RoleFromContext(ctx), stmt.AgentID); err != nil {
		return nil, err
	}
	return stmt, nil
}

// List returns the caller's statements, newest first.
func (s *StatementService) List(ctx context.Context) ([]statement.Statement, error) {
	return s.repo.ListByAgent(ctx, auth.AgentIDFromContext(ctx))
}

// Latest returns the caller's most recent statement.
func (s *StatementService) Latest(ctx context.Context) (*statement.Statement, error) {
	stmt, err := s.repo.Latest(ctx, auth.AgentIDFromContext(ctx))
	if err != nil {
		return nil, err
	}
	if stmt == nil {
		return nil, statement.ErrNotFound
	}
	return stmt, nil
}

// Delete removes a statement after an ownership check.
func (s *StatementService) Delete(ctx context.Context, id string) error {
	stmt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if stmt == nil {
		return statement.ErrNotFound
	}
	if err := auth.EnsureOwner(auth.AgentIDFromContext(ctx), auth.RoleFromContext(ctx), stmt.AgentID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Summary loads a statement and computes its financial projection.
func (s *StatementService) Summary(ctx context.Context, id string) (*statement.Statement, statement.Summary, error) {
	stmt, err := s.Get(ctx, id)
	if err != nil {
		return nil, statement.Summary{}, err
	}
	return stmt, statement.CalculateSummary(*stmt), nil
}

// Validation loads a statement and returns its advisory field errors.
func (s *StatementService) Validation(ctx context.Context, id string) ([]statement.FieldError, error) {
	stmt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return statement.Validate(*stmt), nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Kodiack54/ai-ryan-5407/internal/domain/roadmap"
	"github.com/Kodiack54/ai-ryan-5407/internal/repository"
)

// PhaseRepository implements repository.PhaseRepository for SQLite
type PhaseRepository struct {
	db *DB
}

// NewPhaseRepository creates a new PhaseRepository
func NewPhaseRepository(db *DB) *PhaseRepository {
	return &PhaseRepository{db: db}
}

const phaseColumns = `id, project_id, name, description, status, sort_order, started_at, completed_at, created_at`

// Create creates a new phase
func (r *PhaseRepository) Create(ctx context.Context, phase *roadmap.Phase) error {
	query := `
		INSERT INTO phases (` + phaseColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		phase.ID,
		phase.ProjectID,
		phase.Name,
		phase.Description,
		phase.Status,
		phase.SortOrder,
		phase.StartedAt,
		phase.CompletedAt,
		phase.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create phase: %w", err)
	}

	return nil
}

// Get retrieves a phase by ID
func (r *PhaseRepository) Get(ctx context.Context, id string) (*roadmap.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE id = ?`

	phase, err := scanPhase(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get phase: %w", err)
	}

	return phase, nil
}

// ListByProject returns a project's phases in sort_order
func (r *PhaseRepository) ListByProject(ctx context.Context, projectID string) ([]roadmap.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE project_id = ? ORDER BY sort_order`
	return r.list(ctx, query, projectID)
}

// List returns all phases ordered by project and sort_order
func (r *PhaseRepository) List(ctx context.Context) ([]roadmap.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases ORDER BY project_id, sort_order`
	return r.list(ctx, query)
}

func (r *PhaseRepository) list(ctx context.Context, query string, args ...any) ([]roadmap.Phase, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list phases: %w", err)
	}
	defer rows.Close()

	var phases []roadmap.Phase
	for rows.Next() {
		phase, err := scanPhase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan phase: %w", err)
		}
		phases = append(phases, *phase)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating phase rows: %w", err)
	}

	return phases, nil
}

// Update writes a phase's name, description, status, and timestamps.
// Ordering is updated only through SetSortOrder and ShiftRange.
func (r *PhaseRepository) Update(ctx context.Context, phase *roadmap.Phase) error {
	query := `
		UPDATE phases
		SET name = ?, description = ?, status = ?, started_at = ?, completed_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		phase.Name,
		phase.Description,
		phase.Status,
		phase.StartedAt,
		phase.CompletedAt,
		phase.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update phase: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// SetSortOrder writes a phase's sort_order
func (r *PhaseRepository) SetSortOrder(ctx context.Context, id string, order int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE phases SET sort_order = ? WHERE id = ?`, order, id)
	if err != nil {
		return fmt.Errorf("failed to set sort order: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ShiftRange moves the sort_order of every phase in [from, to] by delta in a
// single relative update. A to of zero or less means no upper bound.
func (r *PhaseRepository) ShiftRange(ctx context.Context, projectID string, from, to, delta int) error {
	query := `
		UPDATE phases
		SET sort_order = sort_order + ?
		WHERE project_id = ? AND sort_order >= ? AND (? <= 0 OR sort_order <= ?)
	`

	if _, err := r.db.ExecContext(ctx, query, delta, projectID, from, to, to); err != nil {
		return fmt.Errorf("failed to shift phases: %w", err)
	}

	return nil
}

// SupportsRelativeShift reports that SQLite can express relative updates.
func (r *PhaseRepository) SupportsRelativeShift() bool {
	return true
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPhase(row rowScanner) (*roadmap.Phase, error) {
	var phase roadmap.Phase
	var startedAt, completedAt sql.NullTime
	err := row.Scan(
		&phase.ID,
		&phase.ProjectID,
		&phase.Name,
		&phase.Description,
		&phase.Status,
		&phase.SortOrder,
		&startedAt,
		&completedAt,
		&phase.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if startedAt.Valid {
		phase.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		phase.CompletedAt = &completedAt.Time
	}
	return &phase, nil
}

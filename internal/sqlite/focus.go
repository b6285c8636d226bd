package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kodiack54/ai-ryan-5407/internal/domain/roadmap"
)

// FocusRepository implements repository.FocusRepository for SQLite
type FocusRepository struct {
	db *DB
}

// NewFocusRepository creates a new FocusRepository
func NewFocusRepository(db *DB) *FocusRepository {
	return &FocusRepository{db: db}
}

// Create creates a new focus record
func (r *FocusRepository) Create(ctx context.Context, focus *roadmap.FocusRecord) error {
	query := `
		INSERT INTO focus_records (id, project_id, phase_id, priority, rationale, set_by, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		focus.ID,
		focus.ProjectID,
		focus.PhaseID,
		focus.Priority,
		focus.Rationale,
		focus.SetBy,
		focus.CreatedAt,
		focus.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create focus record: %w", err)
	}

	return nil
}

// ListOpen returns open focus records ordered by priority
func (r *FocusRepository) ListOpen(ctx context.Context) ([]roadmap.FocusRecord, error) {
	query := `
		SELECT id, project_id, phase_id, priority, rationale, set_by, created_at, completed_at
		FROM focus_records
		WHERE completed_at IS NULL
		ORDER BY priority, created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list focus records: %w", err)
	}
	defer rows.Close()

	var records []roadmap.FocusRecord
	for rows.Next() {
		var record roadmap.FocusRecord
		var completedAt sql.NullTime
		err := rows.Scan(
			&record.ID,
			&record.ProjectID,
			&record.PhaseID,
			&record.Priority,
			&record.Rationale,
			&record.SetBy,
			&record.CreatedAt,
			&completedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan focus record: %w", err)
		}
		if completedAt.Valid {
			record.CompletedAt = &completedAt.Time
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating focus rows: %w", err)
	}

	return records, nil
}

// CloseForPhase closes every open focus record referencing the phase.
// Closing when none is open affects zero rows and is not an error.
func (r *FocusRepository) CloseForPhase(ctx context.Context, phaseID string, completedAt time.Time) error {
	query := `UPDATE focus_records SET completed_at = ? WHERE phase_id = ? AND completed_at IS NULL`

	if _, err := r.db.ExecContext(ctx, query, completedAt, phaseID); err != nil {
		return fmt.Errorf("failed to close focus records: %w", err)
	}

	return nil
}

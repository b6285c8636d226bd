package sqlite

import (
	"context"
	"fmt"

	"github.com/Kodiack54/ai-ryan-5407/internal/domain/roadmap"
)

// DependencyRepository implements repository.DependencyRepository for SQLite
type DependencyRepository struct {
	db *DB
}

// NewDependencyRepository creates a new DependencyRepository
func NewDependencyRepository(db *DB) *DependencyRepository {
	return &DependencyRepository{db: db}
}

// Add inserts a dependency edge. Duplicates are not deduplicated.
func (r *DependencyRepository) Add(ctx context.Context, dep *roadmap.Dependency) error {
	query := `
		INSERT INTO phase_dependencies (phase_id, depends_on_phase_id, dependency_type, notes, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		dep.PhaseID,
		dep.DependsOnPhaseID,
		dep.Type,
		dep.Notes,
		dep.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add dependency: %w", err)
	}

	return nil
}

// Remove deletes every edge matching the exact pair. Removing an absent edge
// affects zero rows and is not an error.
func (r *DependencyRepository) Remove(ctx context.Context, phaseID, dependsOnPhaseID string) error {
	query := `DELETE FROM phase_dependencies WHERE phase_id = ? AND depends_on_phase_id = ?`

	if _, err := r.db.ExecContext(ctx, query, phaseID, dependsOnPhaseID); err != nil {
		return fmt.Errorf("failed to remove dependency: %w", err)
	}

	return nil
}

// List returns all dependency edges
func (r *DependencyRepository) List(ctx context.Context) ([]roadmap.Dependency, error) {
	query := `
		SELECT phase_id, depends_on_phase_id, dependency_type, notes, created_at
		FROM phase_dependencies
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list dependencies: %w", err)
	}
	defer rows.Close()

	var deps []roadmap.Dependency
	for rows.Next() {
		var dep roadmap.Dependency
		err := rows.Scan(&dep.PhaseID, &dep.DependsOnPhaseID, &dep.Type, &dep.Notes, &dep.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dependency: %w", err)
		}
		deps = append(deps, dep)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dependency rows: %w", err)
	}

	return deps, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Kodiack54/ai-ryan-5407/internal/domain/roadmap"
	"github.com/Kodiack54/ai-ryan-5407/internal/repository"
)

// ProjectRepository implements repository.ProjectRepository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, project *roadmap.Project) error {
	query := `
		INSERT INTO projects (id, client_id, slug, name, server_path, sort_order, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		project.ID,
		project.ClientID,
		project.Slug,
		project.Name,
		project.ServerPath,
		project.SortOrder,
		project.IsActive,
		project.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		if isUniqueViolation(err) {
			return repository.ErrInvalidInput
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*roadmap.Project, error) {
	query := `
		SELECT id, client_id, slug, name, server_path, sort_order, is_active, created_at
		FROM projects
		WHERE id = ?
	`

	var project roadmap.Project
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&project.ID,
		&project.ClientID,
		&project.Slug,
		&project.Name,
		&project.ServerPath,
		&project.SortOrder,
		&project.IsActive,
		&project.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &project, nil
}

// List returns projects ordered by sort_order, optionally filtered by client
// and/or restricted to active projects
func (r *ProjectRepository) List(ctx context.Context, clientID string, activeOnly bool) ([]roadmap.Project, error) {
	query := `
		SELECT id, client_id, slug, name, server_path, sort_order, is_active, created_at
		FROM projects
		WHERE (? = '' OR client_id = ?)
		  AND (? = 0 OR is_active = 1)
		ORDER BY sort_order, slug
	`

	rows, err := r.db.QueryContext(ctx, query, clientID, clientID, boolToInt(activeOnly))
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []roadmap.Project
	for rows.Next() {
		var project roadmap.Project
		err := rows.Scan(
			&project.ID,
			&project.ClientID,
			&project.Slug,
			&project.Name,
			&project.ServerPath,
			&project.SortOrder,
			&project.IsActive,
			&project.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

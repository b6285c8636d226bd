package sqlite

import (
	"context"
	"fmt"

	"github.com/Kodiack54/ai-ryan-5407/internal/domain/todowatch"
)

// TodoRepository implements repository.TodoRepository for SQLite
type TodoRepository struct {
	db *DB
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(db *DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// List returns all TODOs, newest first
func (r *TodoRepository) List(ctx context.Context) ([]todowatch.Todo, error) {
	query := `
		SELECT id, title, description, status, priority, project_path, created_at
		FROM todos
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	var todos []todowatch.Todo
	for rows.Next() {
		var todo todowatch.Todo
		err := rows.Scan(
			&todo.ID,
			&todo.Title,
			&todo.Description,
			&todo.Status,
			&todo.Priority,
			&todo.ProjectPath,
			&todo.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todo rows: %w", err)
	}

	return todos, nil
}

// AnalysisRepository implements repository.AnalysisRepository for SQLite
type AnalysisRepository struct {
	db *DB
}

// NewAnalysisRepository creates a new AnalysisRepository
func NewAnalysisRepository(db *DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Record persists one watcher cycle analysis
func (r *AnalysisRepository) Record(ctx context.Context, rec *todowatch.AnalysisRecord) error {
	query := `
		INSERT INTO analysis_log (id, title, summary, details, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, rec.ID, rec.Title, rec.Summary, rec.Details, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record analysis: %w", err)
	}

	return nil
}

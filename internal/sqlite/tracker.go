package sqlite

import (
	"context"
	"fmt"

	"github.com/Kodiack54/ai-ryan-5407/internal/domain/roadmap"
)

// BugRepository implements repository.BugRepository for SQLite
type BugRepository struct {
	db *DB
}

// NewBugRepository creates a new BugRepository
func NewBugRepository(db *DB) *BugRepository {
	return &BugRepository{db: db}
}

// ListOpen returns bugs whose status is open or investigating
func (r *BugRepository) ListOpen(ctx context.Context) ([]roadmap.Bug, error) {
	query := `
		SELECT id, title, severity, status, project_path, created_at
		FROM bugs
		WHERE status IN ('open', 'investigating')
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list open bugs: %w", err)
	}
	defer rows.Close()

	var bugs []roadmap.Bug
	for rows.Next() {
		var bug roadmap.Bug
		err := rows.Scan(&bug.ID, &bug.Title, &bug.Severity, &bug.Status, &bug.ProjectPath, &bug.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bug: %w", err)
		}
		bugs = append(bugs, bug)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bug rows: %w", err)
	}

	return bugs, nil
}

// TradelineRepository implements repository.TradelineRepository for SQLite
type TradelineRepository struct {
	db *DB
}

// NewTradelineRepository creates a new TradelineRepository
func NewTradelineRepository(db *DB) *TradelineRepository {
	return &TradelineRepository{db: db}
}

// List returns all tradelines ordered by name
func (r *TradelineRepository) List(ctx context.Context) ([]roadmap.Tradeline, error) {
	query := `SELECT id, name, status, created_at FROM tradelines ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tradelines: %w", err)
	}
	defer rows.Close()

	var tradelines []roadmap.Tradeline
	for rows.Next() {
		var tl roadmap.Tradeline
		if err := rows.Scan(&tl.ID, &tl.Name, &tl.Status, &tl.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tradeline: %w", err)
		}
		tradelines = append(tradelines, tl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tradeline rows: %w", err)
	}

	return tradelines, nil
}

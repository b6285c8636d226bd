package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func insertClient(t *testing.T, db *DB, id, name string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO clients (id, name) VALUES (?, ?)`, id, name)
	require.NoError(t, err)
}

func insertProject(t *testing.T, db *DB, id, clientID, slug string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO projects (id, client_id, slug, name) VALUES (?, ?, ?, ?)`,
		id, clientID, slug, slug)
	require.NoError(t, err)
}

func insertPhase(t *testing.T, db *DB, id, projectID, name, status string, sortOrder int) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO phases (id, project_id, name, status, sort_order, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, projectID, name, status, sortOrder, time.Now())
	require.NoError(t, err)
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	// Verify all tables were created
	tables := []string{
		"clients",
		"projects",
		"phases",
		"phase_dependencies",
		"focus_records",
		"bugs",
		"tradelines",
		"todos",
		"analysis_log",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// TestPhasesTable verifies the phases table structure and constraints
func TestPhasesTable(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	insertClient(t, db, "c1", "Client One")
	insertProject(t, db, "p1", "c1", "project-one")

	_, err := db.ExecContext(ctx,
		`INSERT INTO phases (id, project_id, name, status, sort_order) VALUES (?, ?, ?, ?, ?)`,
		"ph1", "p1", "Phase 1", "pending", 1)
	require.NoError(t, err)

	// Foreign key constraint - should fail with invalid project_id
	_, err = db.ExecContext(ctx,
		`INSERT INTO phases (id, project_id, name, status, sort_order) VALUES (?, ?, ?, ?, ?)`,
		"ph2", "missing", "Phase 2", "pending", 1)
	require.Error(t, err, "should fail with invalid project_id")

	// Status constraint - should fail with invalid status
	_, err = db.ExecContext(ctx,
		`INSERT INTO phases (id, project_id, name, status, sort_order) VALUES (?, ?, ?, ?, ?)`,
		"ph3", "p1", "Phase 3", "paused", 2)
	require.Error(t, err, "should fail with invalid status")
}

// TestProjectSlugUnique verifies the unique slug constraint
func TestProjectSlugUnique(t *testing.T) {
	db := NewTestDB(t)

	insertClient(t, db, "c1", "Client One")
	insertProject(t, db, "p1", "c1", "shared-slug")

	_, err := db.Exec(
		`INSERT INTO projects (id, client_id, slug, name) VALUES (?, ?, ?, ?)`,
		"p2", "c1", "shared-slug", "Other")
	require.Error(t, err, "duplicate slug should be rejected")
}

// TestDependenciesUnconstrained verifies that dependency edges may dangle and
// duplicate; readers tolerate both.
func TestDependenciesUnconstrained(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO phase_dependencies (phase_id, depends_on_phase_id) VALUES (?, ?)`,
		"ghost-a", "ghost-b")
	require.NoError(t, err, "dangling edge should insert")

	_, err = db.ExecContext(ctx,
		`INSERT INTO phase_dependencies (phase_id, depends_on_phase_id) VALUES (?, ?)`,
		"ghost-a", "ghost-b")
	require.NoError(t, err, "duplicate edge should insert")
}

package sqlite

import (
	"context"
	"fmt"

	"github.com/Kodiack54/ai-ryan-5407/internal/domain/roadmap"
)

// ClientRepository implements repository.ClientRepository for SQLite
type ClientRepository struct {
	db *DB
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db *DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create creates a new client
func (r *ClientRepository) Create(ctx context.Context, client *roadmap.Client) error {
	query := `INSERT INTO clients (id, name, created_at) VALUES (?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, client.ID, client.Name, client.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// List returns all clients
func (r *ClientRepository) List(ctx context.Context) ([]roadmap.Client, error) {
	query := `SELECT id, name, created_at FROM clients ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []roadmap.Client
	for rows.Next() {
		var client roadmap.Client
		if err := rows.Scan(&client.ID, &client.Name, &client.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}

	return clients, nil
}

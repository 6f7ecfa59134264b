package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/hookledger/hookledger/integration"
)

/* PostgreSQL implementation of integration.Repository
 * One table for every provider: behavior varies per provider, the storage
 * shape does not. Provider data is stored as opaque JSON text.
 */

type Repository struct {
	DB *sql.DB
}

// NewRepository opens a PostgreSQL connection with the default pool (25, 5, 5 min)
func NewRepository(connectionString string) (*Repository, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &Repository{
		DB: db,
	}, nil
}

// Get retrieves an integration by ID
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (integration.Integration, error) {
	query := `
		SELECT id, project_id, integration_type, provider_data, created_at
		FROM integrations WHERE id = $1
	`
	in, err := scanIntegration(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return integration.Integration{}, integration.ErrNotFound
	}
	if err != nil {
		return integration.Integration{}, fmt.Errorf("selecting integration: %w", err)
	}
	return in, nil
}

// FindOne loads the single row matching the query. Zero or multiple matches
// fail with ErrNotFound and ErrAmbiguous respectively.
func (r *Repository) FindOne(ctx context.Context, q integration.Query) (integration.Integration, error) {
	var (
		conditions []string
		args       []any
	)
	if q.ID != uuid.Nil {
		args = append(args, q.ID)
		conditions = append(conditions, fmt.Sprintf("id = $%d", len(args)))
	}
	if q.ProjectID != "" {
		args = append(args, q.ProjectID)
		conditions = append(conditions, fmt.Sprintf("project_id = $%d", len(args)))
	}
	if q.Type != "" {
		args = append(args, q.Type.String())
		conditions = append(conditions, fmt.Sprintf("integration_type = $%d", len(args)))
	}
	if len(conditions) == 0 {
		return integration.Integration{}, fmt.Errorf("empty integration query")
	}

	// LIMIT 2 is enough to tell "exactly one" from "more than one"
	query := fmt.Sprintf(`
		SELECT id, project_id, integration_type, provider_data, created_at
		FROM integrations WHERE %s LIMIT 2
	`, strings.Join(conditions, " AND "))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return integration.Integration{}, fmt.Errorf("selecting integration: %w", err)
	}
	defer rows.Close()

	var matches []integration.Integration
	for rows.Next() {
		in, err := scanIntegration(rows)
		if err != nil {
			return integration.Integration{}, fmt.Errorf("scanning integration: %w", err)
		}
		matches = append(matches, in)
	}
	if err := rows.Err(); err != nil {
		return integration.Integration{}, fmt.Errorf("iterating integrations: %w", err)
	}

	switch len(matches) {
	case 0:
		return integration.Integration{}, integration.ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return integration.Integration{}, integration.ErrAmbiguous
	}
}

// ListByProject returns a project's integrations, newest first
func (r *Repository) ListByProject(ctx context.Context, projectID string) ([]integration.Integration, error) {
	query := `
		SELECT id, project_id, integration_type, provider_data, created_at
		FROM integrations
		WHERE project_id = $1
		ORDER BY created_at DESC, id
	`
	rows, err := r.DB.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("selecting integrations: %w", err)
	}
	defer rows.Close()

	var integrations []integration.Integration
	for rows.Next() {
		in, err := scanIntegration(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning integration: %w", err)
		}
		integrations = append(integrations, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating integrations: %w", err)
	}

	return integrations, nil
}

// Create inserts a new integration
func (r *Repository) Create(ctx context.Context, in integration.Integration) error {
	providerData, err := json.Marshal(in.ProviderData)
	if err != nil {
		return fmt.Errorf("marshaling provider data: %w", err)
	}

	query := `
		INSERT INTO integrations (id, project_id, integration_type, provider_data, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.DB.ExecContext(ctx, query, in.ID, in.ProjectID, in.Type.String(), string(providerData), in.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting integration: %w", err)
	}

	return nil
}

// UpdateProviderData replaces the provider mapping of an existing integration
func (r *Repository) UpdateProviderData(ctx context.Context, id uuid.UUID, data map[string]any) error {
	providerData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling provider data: %w", err)
	}

	query := "UPDATE integrations SET provider_data = $1 WHERE id = $2"

	result, err := r.DB.ExecContext(ctx, query, string(providerData), id)
	if err != nil {
		return fmt.Errorf("updating integration: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return integration.ErrNotFound
	}

	return nil
}

// Delete removes an integration row
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM integrations WHERE id = $1"

	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting integration: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return integration.ErrNotFound
	}

	return nil
}

// Close closes the database connection
func (r *Repository) Close(ctx context.Context) error {
	if r.DB != nil {
		return r.DB.Close()
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanIntegration(s scanner) (integration.Integration, error) {
	var (
		in              integration.Integration
		integrationType string
		providerData    string
	)
	err := s.Scan(&in.ID, &in.ProjectID, &integrationType, &providerData, &in.CreatedAt)
	if err != nil {
		return integration.Integration{}, err
	}

	in.Type = integration.Type(integrationType)
	if err := json.Unmarshal([]byte(providerData), &in.ProviderData); err != nil {
		return integration.Integration{}, fmt.Errorf("unmarshaling provider data: %w", err)
	}

	return in, nil
}

// CreateTable creates the integrations table and its lookup indexes (useful
// for tests and first boot)
func (r *Repository) CreateTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS integrations (
			id UUID PRIMARY KEY,
			project_id TEXT NOT NULL,
			integration_type TEXT NOT NULL,
			provider_data TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)
	`
	if _, err := r.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}

	for _, indexQuery := range []string{
		"CREATE INDEX IF NOT EXISTS integrations_project_idx ON integrations (project_id)",
		"CREATE INDEX IF NOT EXISTS integrations_type_idx ON integrations (integration_type)",
	} {
		if _, err := r.DB.ExecContext(ctx, indexQuery); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}

	return nil
}

// DropTable removes the integrations table (useful for tests)
func (r *Repository) DropTable(ctx context.Context) error {
	query := "DROP TABLE IF EXISTS integrations CASCADE"

	if _, err := r.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("dropping table: %w", err)
	}
	return nil
}

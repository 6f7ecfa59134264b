package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/hookledger/hookledger/exchange"
)

/* PostgreSQL implementation of exchange.Repository
 * The insert and the retention trim run inside one transaction, so no reader
 * ever observes an insert without its trim.
 */

type Repository struct {
	DB *sql.DB
}

// NewRepository opens a PostgreSQL connection with the default pool (25, 5, 5 min)
func NewRepository(connectionString string) (*Repository, error) {
	return NewRepositoryWithPoolConfig(connectionString, 25, 5, 5)
}

// NewRepositoryWithPoolConfig opens a PostgreSQL connection with a custom pool:
// maxOpenConns caps concurrent connections (0 = unlimited), maxIdleConns caps
// idle pooled connections, maxLifeMinutes bounds connection reuse.
func NewRepositoryWithPoolConfig(connectionString string, maxOpenConns, maxIdleConns, maxLifeMinutes int) (*Repository, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
	if maxLifeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(maxLifeMinutes) * time.Minute)
	}

	return &Repository{
		DB: db,
	}, nil
}

// Store inserts the exchange and trims the owner's history beyond the keep
// most recent rows, in a single transaction.
func (r *Repository) Store(ctx context.Context, ex exchange.Exchange, keep int) error {
	requestHeaders, err := json.Marshal(ex.RequestHeaders)
	if err != nil {
		return fmt.Errorf("marshaling request headers: %w", err)
	}
	responseHeaders, err := json.Marshal(ex.ResponseHeaders)
	if err != nil {
		return fmt.Errorf("marshaling response headers: %w", err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	insertQuery := `
		INSERT INTO exchanges (id, owner_kind, owner_id, created_at, request_headers, request_body, response_headers, response_body, status_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = tx.ExecContext(ctx, insertQuery,
		ex.ID,
		ex.Owner.Kind,
		ex.Owner.ID,
		ex.CreatedAt,
		string(requestHeaders),
		ex.RequestBody,
		string(responseHeaders),
		ex.ResponseBody,
		ex.StatusCode,
	)
	if err != nil {
		return fmt.Errorf("inserting exchange: %w", err)
	}

	// Retention trim: delete everything beyond the keep newest rows.
	trimQuery := `
		DELETE FROM exchanges
		WHERE id IN (
			SELECT id FROM exchanges
			WHERE owner_kind = $1 AND owner_id = $2
			ORDER BY created_at DESC, id
			OFFSET $3
		)
	`
	if _, err := tx.ExecContext(ctx, trimQuery, ex.Owner.Kind, ex.Owner.ID, keep); err != nil {
		return fmt.Errorf("trimming exchanges: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// Get retrieves an exchange by ID
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (exchange.Exchange, error) {
	query := `
		SELECT id, owner_kind, owner_id, created_at, request_headers, request_body, response_headers, response_body, status_code
		FROM exchanges WHERE id = $1
	`
	ex, err := scanExchange(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return exchange.Exchange{}, exchange.ErrNotFound
	}
	if err != nil {
		return exchange.Exchange{}, fmt.Errorf("selecting exchange: %w", err)
	}
	return ex, nil
}

// ListByOwner returns the owner's exchanges ordered newest first
func (r *Repository) ListByOwner(ctx context.Context, owner exchange.Owner, limit int) ([]exchange.Exchange, error) {
	query := `
		SELECT id, owner_kind, owner_id, created_at, request_headers, request_body, response_headers, response_body, status_code
		FROM exchanges
		WHERE owner_kind = $1 AND owner_id = $2
		ORDER BY created_at DESC, id
		LIMIT $3
	`
	rows, err := r.DB.QueryContext(ctx, query, owner.Kind, owner.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("selecting exchanges: %w", err)
	}
	defer rows.Close()

	var exchanges []exchange.Exchange
	for rows.Next() {
		ex, err := scanExchange(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning exchange: %w", err)
		}
		exchanges = append(exchanges, ex)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exchanges: %w", err)
	}

	return exchanges, nil
}

// CountByOwner returns the number of exchanges attached to the owner
func (r *Repository) CountByOwner(ctx context.Context, owner exchange.Owner) (int, error) {
	query := "SELECT COUNT(*) FROM exchanges WHERE owner_kind = $1 AND owner_id = $2"

	var count int
	if err := r.DB.QueryRowContext(ctx, query, owner.Kind, owner.ID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting exchanges: %w", err)
	}
	return count, nil
}

// DeleteByOwner removes every exchange attached to the owner
func (r *Repository) DeleteByOwner(ctx context.Context, owner exchange.Owner) error {
	query := "DELETE FROM exchanges WHERE owner_kind = $1 AND owner_id = $2"

	if _, err := r.DB.ExecContext(ctx, query, owner.Kind, owner.ID); err != nil {
		return fmt.Errorf("deleting exchanges: %w", err)
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

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanExchange(s scanner) (exchange.Exchange, error) {
	var (
		ex                               exchange.Exchange
		requestHeaders, responseHeaders string
	)
	err := s.Scan(
		&ex.ID,
		&ex.Owner.Kind,
		&ex.Owner.ID,
		&ex.CreatedAt,
		&requestHeaders,
		&ex.RequestBody,
		&responseHeaders,
		&ex.ResponseBody,
		&ex.StatusCode,
	)
	if err != nil {
		return exchange.Exchange{}, err
	}

	if err := json.Unmarshal([]byte(requestHeaders), &ex.RequestHeaders); err != nil {
		return exchange.Exchange{}, fmt.Errorf("unmarshaling request headers: %w", err)
	}
	if err := json.Unmarshal([]byte(responseHeaders), &ex.ResponseHeaders); err != nil {
		return exchange.Exchange{}, fmt.Errorf("unmarshaling response headers: %w", err)
	}

	return ex, nil
}

// CreateTable creates the exchanges table and its trim index (useful for
// tests and first boot)
func (r *Repository) CreateTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS exchanges (
			id UUID PRIMARY KEY,
			owner_kind TEXT NOT NULL,
			owner_id TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			request_headers TEXT NOT NULL,
			request_body TEXT NOT NULL,
			response_headers TEXT NOT NULL,
			response_body TEXT NOT NULL,
			status_code INTEGER NOT NULL
		)
	`
	if _, err := r.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}

	indexQuery := `
		CREATE INDEX IF NOT EXISTS exchanges_owner_created_idx
		ON exchanges (owner_kind, owner_id, created_at DESC)
	`
	if _, err := r.DB.ExecContext(ctx, indexQuery); err != nil {
		return fmt.Errorf("creating index: %w", err)
	}

	return nil
}

// DropTable removes the exchanges table (useful for tests)
func (r *Repository) DropTable(ctx context.Context) error {
	query := "DROP TABLE IF EXISTS exchanges CASCADE"

	if _, err := r.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("dropping table: %w", err)
	}
	return nil
}

package metrics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

/* StoreCollector gathers metrics straight from the SQL store.
 * Count queries only; it never touches row payloads.
 */
type StoreCollector struct {
	DB *sql.DB
}

// NewStoreCollector creates a collector over an open database handle
func NewStoreCollector(db *sql.DB) *StoreCollector {
	return &StoreCollector{DB: db}
}

// Collect gathers current metrics from the store
func (c *StoreCollector) Collect(ctx context.Context) (Metrics, error) {
	m := Metrics{
		ExchangesByOwnerKind: make(map[string]int64),
		IntegrationsByType:   make(map[string]int64),
		Timestamp:            time.Now().UTC(),
	}

	rows, err := c.DB.QueryContext(ctx, "SELECT owner_kind, COUNT(*) FROM exchanges GROUP BY owner_kind")
	switch {
	case isMissingTable(err):
		// Exchanges live in another backend and the table was never created;
		// their counts read as zero, integration counts still apply.
	case err != nil:
		return Metrics{}, fmt.Errorf("counting exchanges by owner kind: %w", err)
	default:
		defer rows.Close()
		for rows.Next() {
			var (
				kind  string
				count int64
			)
			if err := rows.Scan(&kind, &count); err != nil {
				return Metrics{}, fmt.Errorf("scanning exchange counts: %w", err)
			}
			m.ExchangesByOwnerKind[kind] = count
		}
		if err := rows.Err(); err != nil {
			return Metrics{}, fmt.Errorf("iterating exchange counts: %w", err)
		}

		// Same arithmetic as Exchange.Failed: integer division, not a range check
		statusQuery := `
			SELECT
				COUNT(*) FILTER (WHERE status_code / 100 <> 2),
				COUNT(*) FILTER (WHERE status_code / 100 = 2)
			FROM exchanges
		`
		if err := c.DB.QueryRowContext(ctx, statusQuery).Scan(&m.FailedExchanges, &m.SucceededExchanges); err != nil {
			return Metrics{}, fmt.Errorf("counting exchanges by status: %w", err)
		}
	}

	typeRows, err := c.DB.QueryContext(ctx, "SELECT integration_type, COUNT(*) FROM integrations GROUP BY integration_type")
	if err != nil {
		return Metrics{}, fmt.Errorf("counting integrations by type: %w", err)
	}
	defer typeRows.Close()
	for typeRows.Next() {
		var (
			integrationType string
			count           int64
		)
		if err := typeRows.Scan(&integrationType, &count); err != nil {
			return Metrics{}, fmt.Errorf("scanning integration counts: %w", err)
		}
		m.IntegrationsByType[integrationType] = count
	}
	if err := typeRows.Err(); err != nil {
		return Metrics{}, fmt.Errorf("iterating integration counts: %w", err)
	}

	return m, nil
}

// isMissingTable matches the PostgreSQL undefined_table error
func isMissingTable(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "42P01"
}

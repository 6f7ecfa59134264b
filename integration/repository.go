package integration

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a lookup matches no integration row.
	ErrNotFound = errors.New("integration not found")
	// ErrAmbiguous is returned when a lookup matches more than one row.
	ErrAmbiguous = errors.New("query matched multiple integrations")
)

/* Query identifies exactly one integration. Zero-valued fields are unset;
 * any combination of the remaining fields must match a single row.
 */
type Query struct {
	ID        uuid.UUID
	ProjectID string
	Type      Type
}

// Reader provides read operations for integrations
type Reader interface {
	Get(ctx context.Context, id uuid.UUID) (Integration, error)
	/* FindOne loads the single row matching the query. It fails with
	 * ErrNotFound or ErrAmbiguous exactly as a direct single-row lookup
	 * would, before any variant logic runs.
	 */
	FindOne(ctx context.Context, q Query) (Integration, error)
	ListByProject(ctx context.Context, projectID string) ([]Integration, error)
}

// Writer provides write operations for integrations
type Writer interface {
	Create(ctx context.Context, in Integration) error
	// UpdateProviderData replaces the provider mapping; the type
	// discriminator is immutable and has no update operation.
	UpdateProviderData(ctx context.Context, id uuid.UUID, data map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}

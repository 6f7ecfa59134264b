package exchange

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

/* Small, focused interfaces following "The Go Way"
 * Interfaces abstract behavior, not things
 * Written for users of the API, not just for testing
 */

// ErrNotFound is returned when an exchange id has no stored record.
var ErrNotFound = errors.New("exchange not found")

// Reader provides read operations for exchanges
type Reader interface {
	/* Context is always the first parameter in functions that do I/O
	 * This allows for cancellation, timeouts, and shared values
	 */
	Get(ctx context.Context, id uuid.UUID) (Exchange, error)
	// ListByOwner returns an owner's exchanges newest first.
	ListByOwner(ctx context.Context, owner Owner, limit int) ([]Exchange, error)
	CountByOwner(ctx context.Context, owner Owner) (int, error)
}

// Writer provides write operations for exchanges
type Writer interface {
	/* Store persists an exchange and trims the owner's history down to the
	 * keep most recent records. Backends run both steps as one unit of work
	 * where their storage supports it; under concurrent writers for the same
	 * owner the trim converges to keep rows rather than holding it as a hard
	 * real-time bound.
	 */
	Store(ctx context.Context, ex Exchange, keep int) error
	// DeleteByOwner removes every exchange attached to the owner.
	// Used when the owning entity is deleted.
	DeleteByOwner(ctx context.Context, owner Owner) error
}

/* Interface composition - combining small interfaces into larger ones
 * This is preferred over large monolithic interfaces
 */
type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}

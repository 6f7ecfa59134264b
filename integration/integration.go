package integration

import (
	"time"

	"github.com/google/uuid"

	"github.com/hookledger/hookledger/exchange"
)

/* Integration represents a configured inbound webhook binding for a project
 * Uses value semantics as it represents data, not behavior
 * The Type discriminator is immutable after creation; ProviderData is an
 * opaque provider-supplied mapping and is not validated at this layer.
 */
type Integration struct {
	ID           uuid.UUID
	ProjectID    string
	Type         Type
	ProviderData map[string]any
	CreatedAt    time.Time
}

// Owner returns the exchange owner reference for this integration.
func (i Integration) Owner() exchange.Owner {
	return exchange.IntegrationOwner(i.ID)
}

// Record implements Record; a generic integration resolves to itself.
func (i Integration) Record() Integration {
	return i
}

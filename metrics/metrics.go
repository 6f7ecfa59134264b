package metrics

import (
	"context"
	"time"
)

// Metrics represents the current state of the exchange ledger.
type Metrics struct {
	// ExchangesByOwnerKind maps owner kind to the number of retained exchanges
	ExchangesByOwnerKind map[string]int64 `json:"exchanges_by_owner_kind"`

	// FailedExchanges is the number of retained exchanges with a non-2xx status
	FailedExchanges int64 `json:"failed_exchanges"`

	// SucceededExchanges is the number of retained exchanges with a 2xx status
	SucceededExchanges int64 `json:"succeeded_exchanges"`

	// IntegrationsByType maps the type discriminator to the integration count
	IntegrationsByType map[string]int64 `json:"integrations_by_type"`

	// Timestamp when metrics were collected
	Timestamp time.Time `json:"timestamp"`
}

// Collector defines the interface for collecting metrics from the backing store.
type Collector interface {
	// Collect gathers current metrics from the store
	Collect(ctx context.Context) (Metrics, error)
}

package integration

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hookledger/hookledger/exchange"
)

// UseCase defines the business operations for integration management
type UseCase interface {
	Fetch(ctx context.Context, q Query) (Record, error)
	Create(ctx context.Context, projectID string, t Type, providerData map[string]any) (Integration, error)
	UpdateProviderData(ctx context.Context, id uuid.UUID, data map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByProject(ctx context.Context, projectID string) ([]Integration, error)
}

/* Service represents the business logic layer
 * Exchanges is the writer side of the exchange store, used to cascade
 * deletes: exchange records have no independent existence once their owner
 * is gone.
 */
type Service struct {
	Repo      Repository
	Exchanges exchange.Writer
}

// NewService creates a new integration service with dependency injection
func NewService(repo Repository, exchanges exchange.Writer) *Service {
	return &Service{
		Repo:      repo,
		Exchanges: exchanges,
	}
}

/* Fetch loads the single row matching the query and dispatches it to its
 * provider variant. The row is fetched once; lookup errors surface before
 * any variant logic runs.
 */
func (s *Service) Fetch(ctx context.Context, q Query) (Record, error) {
	rec, err := s.Repo.FindOne(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetching integration: %w", err)
	}
	return Resolve(rec), nil
}

// Create registers a new integration for a project
func (s *Service) Create(ctx context.Context, projectID string, t Type, providerData map[string]any) (Integration, error) {
	if projectID == "" {
		return Integration{}, fmt.Errorf("project id cannot be empty")
	}
	if err := t.Validate(); err != nil {
		return Integration{}, fmt.Errorf("validating integration type: %w", err)
	}

	in := Integration{
		ID:           uuid.New(),
		ProjectID:    projectID,
		Type:         t,
		ProviderData: providerData,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, in); err != nil {
		return Integration{}, fmt.Errorf("creating integration: %w", err)
	}

	return in, nil
}

// UpdateProviderData replaces the opaque provider mapping
func (s *Service) UpdateProviderData(ctx context.Context, id uuid.UUID, data map[string]any) error {
	if err := s.Repo.UpdateProviderData(ctx, id, data); err != nil {
		return fmt.Errorf("updating provider data: %w", err)
	}
	return nil
}

// Delete removes the integration and cascades to its recorded exchanges
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting integration: %w", err)
	}
	if s.Exchanges != nil {
		if err := s.Exchanges.DeleteByOwner(ctx, exchange.IntegrationOwner(id)); err != nil {
			return fmt.Errorf("deleting integration exchanges: %w", err)
		}
	}
	return nil
}

// ListByProject returns a project's integrations
func (s *Service) ListByProject(ctx context.Context, projectID string) ([]Integration, error) {
	list, err := s.Repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing integrations: %w", err)
	}
	return list, nil
}

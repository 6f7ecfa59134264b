package exchange

import (
	"fmt"

	"github.com/google/uuid"
)

/* Owner is a polymorphic reference to the entity an exchange is attached to.
 * A kind + id pair lets heterogeneous entity types share one exchange store;
 * the retention trim is scoped by this pair.
 */
type Owner struct {
	Kind string
	ID   string
}

// KindIntegration tags owners that are integration records.
const KindIntegration = "integration"

// IntegrationOwner builds the owner reference for an integration record.
func IntegrationOwner(id uuid.UUID) Owner {
	return Owner{Kind: KindIntegration, ID: id.String()}
}

// Validate checks that the reference identifies an entity.
func (o Owner) Validate() error {
	if o.Kind == "" {
		return fmt.Errorf("owner kind cannot be empty")
	}
	if o.ID == "" {
		return fmt.Errorf("owner id cannot be empty")
	}
	return nil
}

// String returns the kind:id form used in log lines and storage keys.
func (o Owner) String() string {
	return o.Kind + ":" + o.ID
}

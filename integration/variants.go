package integration

/* Provider variants
 * All providers share the same storage shape; what varies is behavior.
 * Variants embed the generic record and layer capabilities on top, so a
 * resolved value carries every stored field.
 */

// Record is a stored integration resolved to its provider variant. Callers
// discover capabilities by type assertion; a generic record exposes none.
type Record interface {
	Record() Integration
}

// Syncer is the capability to sync an integration with its remote provider.
// A resolved record that does not implement it cannot be synced at all:
// the capability is absent, not false.
type Syncer interface {
	CanSync() bool
}

// GitHub is the variant for GitHub incoming webhooks.
type GitHub struct {
	Integration
}

// CanSync reports whether provider data carries both the remote webhook id
// and url. Missing or malformed data reads as false, never as an error.
func (g GitHub) CanSync() bool {
	return hasProviderKeys(g.ProviderData, "id", "url")
}

// Bitbucket is the variant for Bitbucket incoming webhooks.
type Bitbucket struct {
	Integration
}

// CanSync reports whether provider data carries both the remote webhook id
// and url.
func (b Bitbucket) CanSync() bool {
	return hasProviderKeys(b.ProviderData, "id", "url")
}

func hasProviderKeys(data map[string]any, keys ...string) bool {
	for _, key := range keys {
		if _, ok := data[key]; !ok {
			return false
		}
	}
	return true
}

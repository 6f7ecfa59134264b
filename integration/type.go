package integration

import "fmt"

/* Type is the stored discriminator selecting which provider an integration
 * represents. The enumeration is closed: rows are only ever written with one
 * of these values.
 */
type Type string

const (
	GitHubWebhook    Type = "github_webhook"
	BitbucketWebhook Type = "bitbucket_webhook"
	GitLabWebhook    Type = "gitlab_webhook"
	APIWebhook       Type = "api_webhook"
)

// String returns the stored form of the type
func (t Type) String() string {
	return string(t)
}

// Validate checks if the type belongs to the closed enumeration
func (t Type) Validate() error {
	switch t {
	case GitHubWebhook, BitbucketWebhook, GitLabWebhook, APIWebhook:
		return nil
	default:
		return fmt.Errorf("invalid integration type: %q", t)
	}
}

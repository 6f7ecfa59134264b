package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeValidate(t *testing.T) {
	tests := []struct {
		name    string
		t       Type
		wantErr bool
	}{
		{"github webhook", GitHubWebhook, false},
		{"bitbucket webhook", BitbucketWebhook, false},
		{"gitlab webhook", GitLabWebhook, false},
		{"generic api webhook", APIWebhook, false},
		{"empty", Type(""), true},
		{"unknown provider", Type("gitea_webhook"), true},
		{"close but wrong", Type("github"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.t.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "github_webhook", GitHubWebhook.String())
	assert.Equal(t, "bitbucket_webhook", BitbucketWebhook.String())
}

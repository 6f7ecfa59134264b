package provisioning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hookledger/hookledger/integration"
)

/* Loader reads integration definitions from integrations.yaml
 * Integrations are created explicitly by an operator; this file is how they
 * are declared outside the API.
 */

// Config represents the structure of integrations.yaml
type Config struct {
	Integrations []IntegrationConfig `yaml:"integrations"`
}

// IntegrationConfig represents a single integration in the YAML file
type IntegrationConfig struct {
	ProjectID    string         `yaml:"project_id"`
	Type         string         `yaml:"type"`
	ProviderData map[string]any `yaml:"provider_data"`
}

// Seed is a validated integration definition ready to be created
type Seed struct {
	ProjectID    string
	Type         integration.Type
	ProviderData map[string]any
}

// Validate checks if the seed describes a creatable integration
func (s *Seed) Validate() error {
	if s.ProjectID == "" {
		return fmt.Errorf("project_id cannot be empty")
	}
	if err := s.Type.Validate(); err != nil {
		return fmt.Errorf("invalid type for project %s: %w", s.ProjectID, err)
	}
	return nil
}

// Loader holds the loaded seeds
type Loader struct {
	seeds []Seed
}

// NewLoader creates a new seed loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses the integrations YAML file
func (l *Loader) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading integrations file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing integrations YAML: %w", err)
	}

	for _, ic := range config.Integrations {
		seed := Seed{
			ProjectID:    ic.ProjectID,
			Type:         integration.Type(ic.Type),
			ProviderData: ic.ProviderData,
		}

		if err := seed.Validate(); err != nil {
			return fmt.Errorf("validating integration: %w", err)
		}

		l.seeds = append(l.seeds, seed)
	}

	return nil
}

// List returns all loaded seeds
func (l *Loader) List() []Seed {
	return l.seeds
}

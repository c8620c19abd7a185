package verifier

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexthissen/pact-net/internal/messaging"
	"github.com/alexthissen/pact-net/internal/provider"
)

// Fixtures are static provider messages loaded from YAML:
//
//	states:
//	  - an order exists
//	messages:
//	  - description: an order created event
//	    metadata:
//	      contentType: application/json
//	    contents:
//	      id: 1
//
// Listed states get no-op setup handlers so they verify without code.
type Fixtures struct {
	// States are provider states accepted without side effects.
	States []string `yaml:"states,omitempty"`

	// Messages are the messages the provider produces, by description.
	Messages []FixtureMessage `yaml:"messages"`
}

// FixtureMessage is one static message.
type FixtureMessage struct {
	Description string         `yaml:"description"`
	Metadata    map[string]any `yaml:"metadata,omitempty"`
	Contents    any            `yaml:"contents"`
}

// LoadFixtures reads and validates a fixtures file.
// Unknown fields are rejected.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures file: %w", err)
	}

	var f Fixtures
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("invalid fixtures: %w", err)
	}
	return &f, nil
}

func (f *Fixtures) validate() error {
	seen := make(map[string]bool, len(f.Messages))
	for i, m := range f.Messages {
		if m.Description == "" {
			return fmt.Errorf("messages[%d]: description is required", i)
		}
		if seen[m.Description] {
			return fmt.Errorf("messages[%d]: duplicate description %q", i, m.Description)
		}
		seen[m.Description] = true
	}
	for i, s := range f.States {
		if s == "" {
			return fmt.Errorf("states[%d]: name is required", i)
		}
	}
	return nil
}

// Registries builds a state registry and scenario set from the fixtures.
func (f *Fixtures) Registries() (*provider.Registry, *messaging.Scenarios, error) {
	states := provider.NewRegistry()
	if len(f.States) > 0 {
		handlers := make([]provider.StateHandler, len(f.States))
		for i, name := range f.States {
			handlers[i] = provider.NewStateHandler(name, provider.Setup, noopState)
		}
		if err := states.AddMany(handlers); err != nil {
			return nil, nil, err
		}
	}

	scenarios := messaging.NewScenarios()
	for _, m := range f.Messages {
		contents := m.Contents
		scenarios.AddWithMetadata(m.Description, m.Metadata, func() (any, error) {
			return contents, nil
		})
	}
	return states, scenarios, nil
}

func noopState(context.Context, map[string]any) error { return nil }

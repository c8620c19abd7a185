// Package messaging holds the message scenarios used when verifying
// message pacts.
//
// A scenario maps an interaction description to a factory producing the
// message the provider would actually send. The verifier looks a scenario
// up by description, invokes the factory and compares the produced message
// with the one recorded in the pact.
package messaging

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexthissen/pact-net/internal/ir"
	"github.com/alexthissen/pact-net/internal/pacterr"
)

// ContentFactory produces the contents of a message.
type ContentFactory func() (any, error)

// Scenario describes how to produce the message for one interaction.
type Scenario struct {
	Description string
	Metadata    map[string]any
	Factory     ContentFactory
}

// Scenarios is the set of message scenarios known to the verifier.
//
// Descriptions are not required to be unique when adding. Lookup fails with
// AmbiguousScenario when more than one scenario shares a description.
type Scenarios struct {
	mu        sync.RWMutex
	scenarios []Scenario
}

// NewScenarios creates an empty scenario set.
func NewScenarios() *Scenarios {
	return &Scenarios{}
}

// Add appends a pre-built scenario.
func (s *Scenarios) Add(scenario Scenario) *Scenarios {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scenarios = append(s.scenarios, scenario)
	return s
}

// AddContent appends a scenario without metadata.
func (s *Scenarios) AddContent(description string, factory ContentFactory) *Scenarios {
	return s.Add(Scenario{Description: description, Factory: factory})
}

// AddWithMetadata appends a scenario with message metadata.
func (s *Scenarios) AddWithMetadata(description string, metadata map[string]any, factory ContentFactory) *Scenarios {
	return s.Add(Scenario{Description: description, Metadata: metadata, Factory: factory})
}

// Len returns the number of scenarios.
func (s *Scenarios) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.scenarios)
}

// Clear removes all scenarios.
func (s *Scenarios) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scenarios = nil
}

// Lookup returns the single scenario registered for description.
func (s *Scenarios) Lookup(description string) (Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		found Scenario
		count int
	)
	for _, sc := range s.scenarios {
		if sc.Description == description {
			if count == 0 {
				found = sc
			}
			count++
		}
	}

	switch count {
	case 0:
		return Scenario{}, pacterr.New(pacterr.ScenarioNotFound, "no message scenario registered").
			WithDetail("description", description)
	case 1:
		return found, nil
	default:
		return Scenario{}, pacterr.New(pacterr.AmbiguousScenario,
			"%d message scenarios share a description", count).
			WithDetail("description", description)
	}
}

// Generate looks up the scenario for description and runs its factory.
func (s *Scenarios) Generate(ctx context.Context, description string) (ir.Message, error) {
	if err := ctx.Err(); err != nil {
		return ir.Message{}, err
	}

	sc, err := s.Lookup(description)
	if err != nil {
		return ir.Message{}, err
	}
	if sc.Factory == nil {
		return ir.Message{}, pacterr.New(pacterr.InvalidArgument, "message scenario has no content factory").
			WithDetail("description", description)
	}

	contents, err := sc.Factory()
	if err != nil {
		return ir.Message{}, fmt.Errorf("generate message %q: %w", description, err)
	}
	return ir.Message{Contents: contents, Metadata: sc.Metadata}, nil
}

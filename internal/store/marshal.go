package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/alexthissen/pact-net/internal/ir"
)

// interactionRow is the storage form of one message interaction.
type interactionRow struct {
	providerStates string
	metadata       string
	contents       string
	hash           string
}

// marshalInteraction converts m to canonical JSON columns plus its hash.
func marshalInteraction(m ir.MessageInteraction) (interactionRow, error) {
	states := m.ProviderStates
	if states == nil {
		states = []ir.ProviderState{}
	}
	statesJSON, err := marshalProviderStates(states)
	if err != nil {
		return interactionRow{}, err
	}

	metadata := m.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	metaJSON, err := ir.MarshalCanonical(metadata)
	if err != nil {
		return interactionRow{}, fmt.Errorf("marshal metadata: %w", err)
	}

	contentsJSON, err := ir.MarshalCanonical(m.Contents)
	if err != nil {
		return interactionRow{}, fmt.Errorf("marshal contents: %w", err)
	}

	hash, err := ir.InteractionHash(m)
	if err != nil {
		return interactionRow{}, err
	}

	return interactionRow{
		providerStates: statesJSON,
		metadata:       string(metaJSON),
		contents:       string(contentsJSON),
		hash:           hash,
	}, nil
}

func marshalProviderStates(states []ir.ProviderState) (string, error) {
	data, err := ir.MarshalCanonical(states)
	if err != nil {
		return "", fmt.Errorf("marshal provider states: %w", err)
	}
	return string(data), nil
}

// unmarshalInteraction rebuilds an interaction from its stored columns.
// Numbers decode as json.Number so integers of any size stay exact.
func unmarshalInteraction(description string, row interactionRow) (ir.MessageInteraction, error) {
	m := ir.MessageInteraction{Description: description}

	if err := decodeJSON(row.providerStates, &m.ProviderStates); err != nil {
		return m, fmt.Errorf("unmarshal provider states: %w", err)
	}
	if len(m.ProviderStates) == 0 {
		m.ProviderStates = nil
	}

	if err := decodeJSON(row.metadata, &m.Metadata); err != nil {
		return m, fmt.Errorf("unmarshal metadata: %w", err)
	}
	if len(m.Metadata) == 0 {
		m.Metadata = nil
	}

	if err := decodeJSON(row.contents, &m.Contents); err != nil {
		return m, fmt.Errorf("unmarshal contents: %w", err)
	}

	return m, nil
}

func decodeJSON(data string, v any) error {
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.UseNumber()
	return dec.Decode(v)
}

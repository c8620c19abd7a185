package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content fingerprints.
// Version suffix enables future algorithm migration.
const (
	DomainInteraction = "pact/message-interaction/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// InteractionHash fingerprints a message interaction.
// Two interactions hash equal iff their canonical encodings are equal, so
// the store can skip rewriting an unchanged interaction. Empty params and
// metadata hash like absent ones, matching the pact file encoding.
func InteractionHash(m MessageInteraction) (string, error) {
	states := make([]any, len(m.ProviderStates))
	for i, s := range m.ProviderStates {
		entry := map[string]any{"name": s.Name}
		if len(s.Params) > 0 {
			entry["params"] = s.Params
		}
		states[i] = entry
	}

	obj := map[string]any{
		"description":    m.Description,
		"providerStates": states,
		"contents":       m.Contents,
	}
	if len(m.Metadata) > 0 {
		obj["metadata"] = m.Metadata
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("interaction hash: %w", err)
	}
	return hashWithDomain(DomainInteraction, canonical), nil
}

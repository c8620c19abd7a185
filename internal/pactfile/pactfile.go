package pactfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alexthissen/pact-net/internal/ir"
)

type pacticipant struct {
	Name string `json:"name"`
}

type message struct {
	Description    string             `json:"description"`
	ProviderStates []ir.ProviderState `json:"providerStates,omitempty"`
	Contents       any                `json:"contents"`
	Metadata       map[string]any     `json:"metadata,omitempty"`
}

type versionInfo struct {
	Version string `json:"version"`
}

type fileMetadata struct {
	PactSpecification versionInfo  `json:"pactSpecification"`
	PactNet           *versionInfo `json:"pactNet,omitempty"`
}

type document struct {
	Consumer pacticipant  `json:"consumer"`
	Provider pacticipant  `json:"provider"`
	Messages []message    `json:"messages"`
	Metadata fileMetadata `json:"metadata"`
}

// FileName returns the conventional file name for a pact:
// "<consumer>-<provider>.json", lower-cased with spaces replaced by "_".
func FileName(consumer, provider string) string {
	clean := func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
	}
	return clean(consumer) + "-" + clean(provider) + ".json"
}

// Marshal encodes p as an indented pact file with messages sorted by
// description. HTML characters are not escaped.
func Marshal(p ir.Pact) ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("marshal pact: consumer and provider names are required")
	}

	specVersion := p.SpecVersion
	if specVersion == "" {
		specVersion = ir.PactSpecVersion
	}

	doc := document{
		Consumer: pacticipant{Name: p.Consumer},
		Provider: pacticipant{Name: p.Provider},
		Messages: make([]message, 0, len(p.Messages)),
		Metadata: fileMetadata{
			PactSpecification: versionInfo{Version: specVersion},
			PactNet:           &versionInfo{Version: ir.ClientVersion},
		},
	}
	for _, m := range p.Messages {
		doc.Messages = append(doc.Messages, message{
			Description:    m.Description,
			ProviderStates: m.ProviderStates,
			Contents:       m.Contents,
			Metadata:       m.Metadata,
		})
	}
	sort.SliceStable(doc.Messages, func(i, j int) bool {
		return doc.Messages[i].Description < doc.Messages[j].Description
	})

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("marshal pact: %w", err)
	}
	return buf.Bytes(), nil
}

// Write marshals p into dir/FileName(consumer, provider) and returns the
// path written. The directory is created if needed and the file is
// replaced atomically.
func Write(dir string, p ir.Pact) (string, error) {
	data, err := Marshal(p)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create pact dir: %w", err)
	}

	path := filepath.Join(dir, FileName(p.Consumer, p.Provider))
	tmp, err := os.CreateTemp(dir, ".pact-*.json")
	if err != nil {
		return "", fmt.Errorf("write pact file: %w", err)
	}
	defer os.Remove(tmp.Name()) // No-op after rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write pact file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write pact file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("write pact file: %w", err)
	}
	return path, nil
}

// Unmarshal validates data and decodes it into a Pact.
// Numbers decode as json.Number.
func Unmarshal(data []byte) (ir.Pact, error) {
	if err := Validate(data); err != nil {
		return ir.Pact{}, err
	}

	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return ir.Pact{}, fmt.Errorf("decode pact file: %w", err)
	}

	p := ir.Pact{
		Participants: ir.Participants{Consumer: doc.Consumer.Name, Provider: doc.Provider.Name},
		Messages:     make([]ir.MessageInteraction, 0, len(doc.Messages)),
		SpecVersion:  doc.Metadata.PactSpecification.Version,
	}
	for _, m := range doc.Messages {
		p.Messages = append(p.Messages, ir.MessageInteraction{
			Description:    m.Description,
			ProviderStates: m.ProviderStates,
			Metadata:       m.Metadata,
			Contents:       m.Contents,
		})
	}
	return p, nil
}

// Read loads and validates the pact file at path.
func Read(path string) (ir.Pact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ir.Pact{}, fmt.Errorf("read pact file: %w", err)
	}
	p, err := Unmarshal(data)
	if err != nil {
		return ir.Pact{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

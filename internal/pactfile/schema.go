package pactfile

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/alexthissen/pact-net/internal/pacterr"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "message-pact-v3.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		sch, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("parse pact schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, sch); err != nil {
			compileErr = fmt.Errorf("add pact schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Validate checks data against the message pact schema.
// Malformed JSON and schema violations are InvalidArgument errors.
func Validate(data []byte) error {
	sch, err := schema()
	if err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return pacterr.Wrap(pacterr.InvalidArgument, err, "pact file is not valid JSON")
	}
	if err := sch.Validate(inst); err != nil {
		return pacterr.Wrap(pacterr.InvalidArgument, err, "pact file does not match the message pact schema")
	}
	return nil
}

package verifier

import (
	"bytes"
	"sort"

	"github.com/alexthissen/pact-net/internal/ir"
)

func compareContents(res *InteractionResult, expected, actual any) {
	want, err := ir.MarshalCanonical(expected)
	if err != nil {
		res.fail("expected contents: %v", err)
		return
	}
	got, err := ir.MarshalCanonical(actual)
	if err != nil {
		res.fail("actual contents: %v", err)
		return
	}
	if !bytes.Equal(want, got) {
		res.fail("contents mismatch: expected %s, got %s", want, got)
	}
}

// compareMetadata checks that actual carries every expected key with an
// equal value. Extra actual keys are allowed.
func compareMetadata(res *InteractionResult, expected, actual map[string]any) {
	keys := make([]string, 0, len(expected))
	for k := range expected {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		got, ok := actual[k]
		if !ok {
			res.fail("metadata %q missing", k)
			continue
		}
		want, err := ir.MarshalCanonical(expected[k])
		if err != nil {
			res.fail("expected metadata %q: %v", k, err)
			continue
		}
		have, err := ir.MarshalCanonical(got)
		if err != nil {
			res.fail("actual metadata %q: %v", k, err)
			continue
		}
		if !bytes.Equal(want, have) {
			res.fail("metadata %q mismatch: expected %s, got %s", k, want, have)
		}
	}
}

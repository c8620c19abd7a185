package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"unicode/utf16"
)

// Normalize converts an arbitrary Go value into its generic JSON form:
// map[string]any, []any, string, bool, json.Number or nil.
//
// Message contents are produced by user code (structs, maps, slices), so
// they are round-tripped through encoding/json before comparison or hashing.
// Numbers are kept as json.Number to avoid float64 precision loss.
func Normalize(v any) (any, error) {
	switch v.(type) {
	case nil, string, bool, json.Number:
		return v, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("normalize %T: %w", v, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("normalize %T: %w", v, err)
	}
	return out, nil
}

// NormalizeMap is Normalize for metadata maps.
// A nil map stays nil.
func NormalizeMap(m map[string]any) (map[string]any, error) {
	if m == nil {
		return nil, nil
	}
	v, err := Normalize(m)
	if err != nil {
		return nil, err
	}
	out, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("normalize metadata: got %T", v)
	}
	return out, nil
}

// sortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
// Go's sort.Strings uses UTF-8 byte order which differs above U+FFFF.
func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// compareKeysRFC8785 compares strings using UTF-16 code unit ordering.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := min(len(a16), len(b16))
	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}

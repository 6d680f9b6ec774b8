// Package schema centralizes the versioned schema identifiers used by
// Tidal's structured outputs, and deterministic JSON encoding for them.
package schema

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Schema version constants
const (
	ErrorV1 = "tidal.error/v1"
	TermV1  = "tidal.term/v1"
)

// Accepts checks if a schema version is compatible with the expected
// version. Sub-versions within a major version are accepted, so
// "tidal.error/v1.2" satisfies "tidal.error/v1".
func Accepts(got, wantPrefix string) bool {
	if got == wantPrefix {
		return true
	}
	return strings.HasPrefix(got, wantPrefix+".")
}

// MarshalDeterministic marshals a value to JSON with sorted keys, for
// reproducible golden files and reports.
func MarshalDeterministic(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	data := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	// Round-trip through a generic value so map keys come out sorted.
	var m any
	if err := json.Unmarshal(data, &m); err != nil {
		return data, nil
	}
	return json.MarshalIndent(m, "", "  ")
}

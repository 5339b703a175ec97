// pkg/config/yaml.go
package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// EncodeYAML renders m as block-style YAML with two-space indentation and
// sorted keys.
func EncodeYAML(m map[string]any) (string, error) {
	if m == nil {
		m = map[string]any{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	return buf.String(), nil
}

// DecodeYAML parses a YAML mapping. Empty input yields an empty map.
func DecodeYAML(data []byte) (map[string]any, error) {
	out := map[string]any{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

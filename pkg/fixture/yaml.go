// pkg/fixture/yaml.go
package fixture

import (
	"fmt"

	"github.com/vulntor/pipetest/pkg/config"
)

// WriteYAML serialises m to path, replacing the file, and returns the
// absolute path written.
func (f *Fixture) WriteYAML(path string, m map[string]any) (string, error) {
	text, err := config.EncodeYAML(m)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	return f.fs.WriteBytes(path, []byte(text))
}

// ReadYAML parses the mapping stored at path. An empty file yields an empty
// map.
func (f *Fixture) ReadYAML(path string) (map[string]any, error) {
	text, err := f.fs.Read(path)
	if err != nil {
		return nil, err
	}
	m, err := config.DecodeYAML([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return m, nil
}

// UpdateYAML merges patch into the mapping at path and writes the result.
// Nested keys are merged leaf by leaf; a patch leaf wins over the existing
// value.
func (f *Fixture) UpdateYAML(path string, patch map[string]any) (string, error) {
	base, err := f.ReadYAML(path)
	if err != nil {
		return "", err
	}
	return f.WriteYAML(path, config.Merge(base, patch))
}

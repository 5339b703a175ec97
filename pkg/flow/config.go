// pkg/flow/config.go
package flow

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cast"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/vulntor/pipetest/pkg/project"
)

// Configuration environments, loaded in this order. Later ones win.
var configEnvs = []string{project.ConfBase, project.ConfLocal}

// DataSetSpec is one catalog entry.
type DataSetSpec struct {
	Name     string
	Type     string
	Filepath string
	Options  map[string]any
}

// ProjectConfig is the merged catalog and parameters of a project.
type ProjectConfig struct {
	Catalog map[string]DataSetSpec
	params  *koanf.Koanf
}

// LoadProjectConfig reads catalog and parameters files from conf/base and
// conf/local below root. A file named catalog*.yml or parameters*.yml, or any
// YAML file inside a catalog*/ or parameters*/ directory, is picked up. Catalog
// entries from a later file replace earlier ones by name; parameters are
// deep-merged. extra is merged over the parameters last.
func LoadProjectConfig(root string, extra map[string]any) (*ProjectConfig, error) {
	cfg := &ProjectConfig{
		Catalog: make(map[string]DataSetSpec),
		params:  koanf.New("."),
	}

	for _, env := range configEnvs {
		dir := filepath.Join(root, filepath.FromSlash(env))

		catalogFiles, err := configFiles(dir, "catalog")
		if err != nil {
			return nil, err
		}
		for _, path := range catalogFiles {
			if err := cfg.loadCatalog(path); err != nil {
				return nil, err
			}
		}

		paramFiles, err := configFiles(dir, "parameters")
		if err != nil {
			return nil, err
		}
		for _, path := range paramFiles {
			if err := cfg.params.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load parameters %s: %w", path, err)
			}
		}
	}

	if len(extra) > 0 {
		if err := cfg.params.Load(confmap.Provider(extra, "."), nil); err != nil {
			return nil, fmt.Errorf("load extra parameters: %w", err)
		}
	}
	return cfg, nil
}

func (c *ProjectConfig) loadCatalog(path string) error {
	// Dataset names may contain dots, so the per-file instance uses a
	// delimiter that never appears in them.
	k := koanf.New("::")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load catalog %s: %w", path, err)
	}

	for name, raw := range k.Raw() {
		entry, err := cast.ToStringMapE(raw)
		if err != nil {
			return fmt.Errorf("catalog %s: entry %q: %w", path, name, err)
		}
		spec := DataSetSpec{
			Name:     name,
			Type:     cast.ToString(entry["type"]),
			Filepath: cast.ToString(entry["filepath"]),
			Options:  make(map[string]any),
		}
		for key, v := range entry {
			if key != "type" && key != "filepath" {
				spec.Options[key] = v
			}
		}
		c.Catalog[name] = spec
	}
	return nil
}

// configFiles lists YAML files for kind in dir, sorted by path.
func configFiles(dir, kind string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config dir: %w", err)
	}

	var out []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), kind) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if !e.IsDir() {
			if isYAML(path) {
				out = append(out, path)
			}
			continue
		}
		err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isYAML(p) {
				out = append(out, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", path, err)
		}
	}
	sort.Strings(out)
	return out, nil
}

func isYAML(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yml" || ext == ".yaml"
}

// Param returns the parameter at a dotted key.
func (c *ProjectConfig) Param(key string) (any, bool) {
	if !c.params.Exists(key) {
		return nil, false
	}
	return c.params.Get(key), true
}

// Parameters returns all parameters as a nested map.
func (c *ProjectConfig) Parameters() map[string]any {
	return c.params.Raw()
}

// ParseParams parses a --params value of comma separated key=value pairs.
// Keys may be dotted to address nested parameters; values are decoded as
// YAML scalars so numbers and booleans keep their type.
func ParseParams(s string) (map[string]any, error) {
	out := make(map[string]any)
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	for _, pair := range strings.Split(s, ",") {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q: expected key=value", pair)
		}
		var v any
		if err := yamlv3.Unmarshal([]byte(strings.TrimSpace(raw)), &v); err != nil || v == nil {
			v = strings.TrimSpace(raw)
		}
		out[key] = v
	}
	return out, nil
}

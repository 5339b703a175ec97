// pkg/config/source.go
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix marks environment variables read into flow configuration.
const EnvPrefix = "FLOW_"

// flagKeys maps root flags onto configuration keys. Other flags (--output,
// --config, a command's own --pipeline) are not configuration.
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
}

// ConfigSource loads one layer of flow configuration. Layers load in
// ascending Priority; later layers override earlier ones:
//
//	defaults (10) < config file (20) < FLOW_* env (30) < flags (40)
type ConfigSource interface {
	Name() string
	Priority() int
	Load(k *koanf.Koanf) error
}

// DefaultSource loads DefaultConfig.
type DefaultSource struct{}

func (s *DefaultSource) Name() string  { return "defaults" }
func (s *DefaultSource) Priority() int { return 10 }

func (s *DefaultSource) Load(k *koanf.Koanf) error {
	if err := k.Load(confmap.Provider(DefaultConfigAsMap(), "."), nil); err != nil {
		return fmt.Errorf("load defaults: %w", err)
	}
	return nil
}

// FileSource loads a YAML config file. An empty or missing path is skipped,
// so the per-user file is optional.
type FileSource struct {
	Path string
}

func (s *FileSource) Name() string  { return "file:" + s.Path }
func (s *FileSource) Priority() int { return 20 }

func (s *FileSource) Load(k *koanf.Koanf) error {
	if s.Path == "" {
		return nil
	}
	if _, err := os.Stat(s.Path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat config file %s: %w", s.Path, err)
	}
	if err := k.Load(file.Provider(s.Path), yaml.Parser()); err != nil {
		return fmt.Errorf("load config file %s: %w", s.Path, err)
	}
	return nil
}

// EnvSource loads FLOW_<SECTION>_<FIELD> variables, e.g. FLOW_RUN_PIPELINE
// into run.pipeline. Variables that name no known key are ignored.
type EnvSource struct{}

func (s *EnvSource) Name() string  { return "env" }
func (s *EnvSource) Priority() int { return 30 }

func (s *EnvSource) Load(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return fmt.Errorf("load environment: %w", err)
	}
	return nil
}

func envKey(name string) string {
	section, field, ok := strings.Cut(strings.ToLower(strings.TrimPrefix(name, EnvPrefix)), "_")
	if !ok {
		return ""
	}
	key := section + "." + field
	if _, known := DefaultConfigAsMap()[key]; !known {
		return ""
	}
	return key
}

// FlagSource loads the flags listed in flagKeys. Unchanged flags only fill
// keys no earlier layer set. A set --debug forces log.level to debug.
type FlagSource struct {
	Flags *pflag.FlagSet
}

func (s *FlagSource) Name() string  { return "flags" }
func (s *FlagSource) Priority() int { return 40 }

func (s *FlagSource) Load(k *koanf.Koanf) error {
	if s.Flags == nil {
		return nil
	}

	provider := posflag.ProviderWithFlag(s.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return "", nil
		}
		return key, posflag.FlagVal(s.Flags, f)
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("load flags: %w", err)
	}

	if debug, err := s.Flags.GetBool("debug"); err == nil && debug {
		if err := k.Set("log.level", "debug"); err != nil {
			return fmt.Errorf("set debug level: %w", err)
		}
	}
	return nil
}

// DefaultSources returns the flow source chain for a config file and the
// flags of the executing command.
func DefaultSources(configPath string, flags *pflag.FlagSet) []ConfigSource {
	return []ConfigSource{
		&DefaultSource{},
		&FileSource{Path: configPath},
		&EnvSource{},
		&FlagSource{Flags: flags},
	}
}

// pkg/config/types.go
package config

// Config is the root configuration structure for the flow command line.
type Config struct {
	Log LogConfig `description:"Logging configuration" koanf:"log"`
	Run RunConfig `description:"Pipeline run defaults" koanf:"run"`
}

// LogConfig holds logging related configuration.
type LogConfig struct {
	Level  string `description:"Log level for flow output" koanf:"level"`        // "debug", "info", "warn", "error"
	Format string `description:"Log format: text | json" koanf:"format"` // "text" or "json"
}

// RunConfig holds defaults for `flow run`.
type RunConfig struct {
	Pipeline string `description:"Pipeline run when --pipeline is not given" koanf:"pipeline"`
	Runner   string `description:"Runner implementation" koanf:"runner"`
}

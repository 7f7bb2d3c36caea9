// Package config loads classdiagram settings from .classdiagram/config.yml,
// a .env file and CLASSDIAGRAM_* environment variables.
package config

// Config represents the complete classdiagram configuration.
type Config struct {
	Scan    ScanConfig    `yaml:"scan" mapstructure:"scan"`
	Diagram DiagramConfig `yaml:"diagram" mapstructure:"diagram"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
	Watch   WatchConfig   `yaml:"watch" mapstructure:"watch"`
}

// ScanConfig selects which files are scanned.
type ScanConfig struct {
	Include   []string `yaml:"include" mapstructure:"include"`     // glob patterns for source files
	Ignore    []string `yaml:"ignore" mapstructure:"ignore"`       // glob patterns to skip
	GitIgnore bool     `yaml:"gitignore" mapstructure:"gitignore"` // honor .gitignore files
}

// DiagramConfig controls rendering.
type DiagramConfig struct {
	Relations bool   `yaml:"relations" mapstructure:"relations"` // append inheritance edges
	Namespace string `yaml:"namespace" mapstructure:"namespace"` // keep only this namespace and its children
}

// OutputConfig controls where the diagram is written.
type OutputConfig struct {
	File string `yaml:"file" mapstructure:"file"` // empty means stdout
}

// CacheConfig configures the in-memory per-file scan cache.
type CacheConfig struct {
	Enabled    bool `yaml:"enabled" mapstructure:"enabled"`
	MaxEntries int  `yaml:"max_entries" mapstructure:"max_entries"`
}

// StorageConfig configures the SQLite export.
type StorageConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // relative paths resolve against the scan root
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	DebounceMs int      `yaml:"debounce_ms" mapstructure:"debounce_ms"`
	Extensions []string `yaml:"extensions" mapstructure:"extensions"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			Include: []string{"**/*.cs"},
			Ignore: []string{
				"bin/**",
				"obj/**",
				"node_modules/**",
				"**/*.g.cs",
				"**/*.Designer.cs",
			},
			GitIgnore: false,
		},
		Diagram: DiagramConfig{
			Relations: false,
			Namespace: "",
		},
		Output: OutputConfig{
			File: "", // stdout
		},
		Cache: CacheConfig{
			Enabled:    true,
			MaxEntries: 10000,
		},
		Storage: StorageConfig{
			Path: ".classdiagram/classdiagram.db",
		},
		Watch: WatchConfig{
			DebounceMs: 500,
			Extensions: []string{".cs"},
		},
	}
}

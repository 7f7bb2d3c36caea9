package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Dir is the per-project settings directory under the scan root.
const Dir = ".classdiagram"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CLASSDIAGRAM"

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (CLASSDIAGRAM_*), including those from <root>/.env
// 2. Config file (.classdiagram/config.yml or .classdiagram/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	// .env never overrides variables already set in the process
	envFile := filepath.Join(l.rootDir, ".env")
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(l.rootDir, Dir))

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// CLASSDIAGRAM_DIAGRAM_RELATIONS -> diagram.relations
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range []string{
		"scan.gitignore",
		"diagram.relations",
		"diagram.namespace",
		"output.file",
		"cache.enabled",
		"cache.max_entries",
		"storage.path",
		"watch.debounce_ms",
	} {
		_ = v.BindEnv(key)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Missing file is fine, defaults and env still apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("scan.include", defaults.Scan.Include)
	v.SetDefault("scan.ignore", defaults.Scan.Ignore)
	v.SetDefault("scan.gitignore", defaults.Scan.GitIgnore)

	v.SetDefault("diagram.relations", defaults.Diagram.Relations)
	v.SetDefault("diagram.namespace", defaults.Diagram.Namespace)

	v.SetDefault("output.file", defaults.Output.File)

	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("cache.max_entries", defaults.Cache.MaxEntries)

	v.SetDefault("storage.path", defaults.Storage.Path)

	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)
	v.SetDefault("watch.extensions", defaults.Watch.Extensions)
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}

// StoragePath resolves Storage.Path against rootDir.
func (c *Config) StoragePath(rootDir string) string {
	if filepath.IsAbs(c.Storage.Path) {
		return c.Storage.Path
	}
	return filepath.Join(rootDir, c.Storage.Path)
}

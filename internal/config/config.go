// Package config reads the optional turbo.yaml project file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/aretw0/turbo-editor/pkg/persistence/middleware"
	"github.com/aretw0/turbo-editor/pkg/schema"
	"gopkg.in/yaml.v3"
)

// FileName is the project file looked up by LoadDir.
const FileName = "turbo.yaml"

// Store backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is the project configuration. Command line flags override it.
type Config struct {
	Store       StoreConfig              `yaml:"store"`
	Templates   string                   `yaml:"templates,omitempty"`
	Tools       string                   `yaml:"tools,omitempty"` // allow-listed pipes for generated code
	LogLevel    string                   `yaml:"log_level,omitempty"`
	IndentWidth int                      `yaml:"indent_width,omitempty"`
	Schemas     map[string]schema.Schema `yaml:"schemas,omitempty"`
}

// StoreConfig selects where scenes live.
type StoreConfig struct {
	Backend string      `yaml:"backend"`
	Dir     string      `yaml:"dir,omitempty"`
	Redis   RedisConfig `yaml:"redis,omitempty"`

	// EncryptionKeyEnv names the environment variable holding a 32 byte
	// key (hex or base64). Empty disables encryption at rest.
	EncryptionKeyEnv string `yaml:"encryption_key_env,omitempty"`

	// Transient lists regular expressions of property keys that are
	// never persisted.
	Transient []string `yaml:"transient,omitempty"`

	LockTTL time.Duration `yaml:"lock_ttl,omitempty"`
}

// RedisConfig addresses a Redis server.
type RedisConfig struct {
	Addr     string        `yaml:"addr,omitempty"`
	Password string        `yaml:"password,omitempty"`
	DB       int           `yaml:"db,omitempty"`
	Prefix   string        `yaml:"prefix,omitempty"`
	TTL      time.Duration `yaml:"ttl,omitempty"`
}

// Default returns the configuration used when no project file exists.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Backend: BackendFile,
			Dir:     filepath.Join(".turbo", "scenes"),
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "turbo:scene:",
			},
		},
		LogLevel: "info",
	}
}

// Parse decodes a project file on top of Default. Unknown keys are errors.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the project file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadDir reads dir/turbo.yaml, falling back to Default when it is absent.
func LoadDir(dir string) (Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks field values that decoding alone does not.
func (c Config) Validate() error {
	var errs []error
	switch c.Store.Backend {
	case BackendFile, BackendMemory, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown store backend %q (want file, memory or redis)", c.Store.Backend))
	}
	if c.IndentWidth < 0 {
		errs = append(errs, fmt.Errorf("indent_width must not be negative"))
	}
	if c.Store.LockTTL < 0 || c.Store.Redis.TTL < 0 {
		errs = append(errs, fmt.Errorf("durations must not be negative"))
	}
	for _, p := range c.Store.Transient {
		if _, err := regexp.Compile(p); err != nil {
			errs = append(errs, fmt.Errorf("transient pattern: %w", err))
		}
	}
	if _, err := schema.ParseSet(c.Schemas); err != nil {
		errs = append(errs, fmt.Errorf("schemas: %w", err))
	}
	return errors.Join(errs...)
}

// EncryptionKey reads the key named by Store.EncryptionKeyEnv.
// It returns nil when encryption is not configured.
func (c Config) EncryptionKey() ([]byte, error) {
	if c.Store.EncryptionKeyEnv == "" {
		return nil, nil
	}
	raw, ok := os.LookupEnv(c.Store.EncryptionKeyEnv)
	if !ok || raw == "" {
		return nil, fmt.Errorf("encryption key variable %s is not set", c.Store.EncryptionKeyEnv)
	}
	key, err := middleware.ParseKey(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Store.EncryptionKeyEnv, err)
	}
	return key, nil
}

// SchemaSet returns the built-in property schemas extended by Schemas.
func (c Config) SchemaSet() (schema.Set, error) {
	extra, err := schema.ParseSet(c.Schemas)
	if err != nil {
		return nil, err
	}
	set := schema.Defaults()
	for t, s := range extra {
		set.Extend(t, s)
	}
	return set, nil
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/docsync"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the parsed docsync configuration file.
type Config struct {
	Docsets []DocsetConfig `yaml:"docsets"`

	// dir is the directory holding the config file. Docset directories and
	// relative local folders resolve against it.
	dir string

	// env holds variables read from a .env file beside the config.
	env map[string]string
}

// DocsetConfig is one entry of the docsets list.
type DocsetConfig struct {
	ID      string         `yaml:"id"`
	Name    string         `yaml:"name"`
	Sources []SourceConfig `yaml:"sources"`
}

// SourceConfig is one source of a docset.
type SourceConfig struct {
	Type     string   `yaml:"type"`
	URL      string   `yaml:"url,omitempty"`
	Branch   string   `yaml:"branch,omitempty"`
	Paths    []string `yaml:"paths,omitempty"`
	TokenEnv string   `yaml:"token_env,omitempty"`
}

// LoadConfig reads and parses the config file at path. A .env file in the
// same directory is read for token lookups; the process environment takes
// precedence over it.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, docsync.Errorf(docsync.ENOTFOUND, "config file not found: %s", path)
	} else if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(data, filepath.Dir(abs))
	if err != nil {
		return nil, err
	}

	envPath := filepath.Join(cfg.dir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		env, err := godotenv.Read(envPath)
		if err != nil {
			return nil, docsync.Errorf(docsync.EINVALID, "reading %s: %v", envPath, err)
		}
		cfg.env = env
	}
	return cfg, nil
}

// ParseConfig parses YAML config data. dir is the directory the config
// belongs to.
func ParseConfig(data []byte, dir string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, docsync.Errorf(docsync.EINVALID, "parsing config: %v", err)
	}
	cfg.dir = dir

	seen := make(map[string]struct{}, len(cfg.Docsets))
	for _, d := range cfg.Docsets {
		if d.ID == "" {
			return nil, docsync.Errorf(docsync.EINVALID, "docset without id")
		}
		if _, ok := seen[d.ID]; ok {
			return nil, docsync.Errorf(docsync.EINVALID, "duplicate docset id %q", d.ID)
		}
		seen[d.ID] = struct{}{}
	}
	return &cfg, nil
}

// Dir returns the directory the config belongs to.
func (c *Config) Dir() string {
	return c.dir
}

// Resolve returns the docsets with the given IDs, or every docset when
// ids is empty.
func (c *Config) Resolve(ids []string) ([]*docsync.Docset, error) {
	if len(ids) == 0 {
		out := make([]*docsync.Docset, 0, len(c.Docsets))
		for i := range c.Docsets {
			out = append(out, c.docset(&c.Docsets[i]))
		}
		return out, nil
	}

	out := make([]*docsync.Docset, 0, len(ids))
	for _, id := range ids {
		d, err := c.Docset(id)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Docset resolves the docset with the given ID.
func (c *Config) Docset(id string) (*docsync.Docset, error) {
	for i := range c.Docsets {
		if c.Docsets[i].ID == id {
			return c.docset(&c.Docsets[i]), nil
		}
	}
	return nil, docsync.Errorf(docsync.ENOTFOUND, "docset %q not found in config", id)
}

func (c *Config) docset(d *DocsetConfig) *docsync.Docset {
	name := d.Name
	if name == "" {
		name = d.ID
	}
	ds := &docsync.Docset{
		ID:          d.ID,
		Name:        name,
		Dir:         filepath.Join(c.dir, "docsets", d.ID),
		ProjectRoot: c.dir,
	}
	for _, s := range d.Sources {
		ds.Sources = append(ds.Sources, docsync.Source{
			Kind:   docsync.SourceKind(s.Type),
			URL:    s.URL,
			Paths:  s.Paths,
			Branch: s.Branch,
			Token:  c.lookup(s.TokenEnv),
		})
	}
	return ds
}

func (c *Config) lookup(name string) string {
	if name == "" {
		return ""
	}
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return c.env[name]
}

// ConfigCache memoizes parsed config files by absolute path. It is not
// safe for concurrent use.
type ConfigCache struct {
	entries map[string]*Config
}

// NewConfigCache returns an empty cache.
func NewConfigCache() *ConfigCache {
	return &ConfigCache{entries: make(map[string]*Config)}
}

// Load returns the cached config for path, reading it on first use.
func (c *ConfigCache) Load(path string) (*Config, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	if cfg, ok := c.entries[key]; ok {
		return cfg, nil
	}
	cfg, err := LoadConfig(key)
	if err != nil {
		return nil, err
	}
	c.entries[key] = cfg
	return cfg, nil
}

// Invalidate drops the cached config for path so the next Load rereads it.
func (c *ConfigCache) Invalidate(path string) {
	if key, err := filepath.Abs(path); err == nil {
		delete(c.entries, key)
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/radiantjxn/groups-catalog/internal/group"
)

// Duration wraps time.Duration so YAML values like "15m" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds every runtime knob. Values resolve as defaults, then the YAML
// file, then GROUPS_CATALOG_* environment variables.
type Config struct {
	Addr          string             `yaml:"addr"`
	DataDir       string             `yaml:"data_dir"`
	OverridesPath string             `yaml:"overrides_path"`
	LogLevel      string             `yaml:"log_level"`
	Headless      bool               `yaml:"headless"`
	Cooldown      Duration           `yaml:"cooldown"`
	PageTimeout   Duration           `yaml:"page_timeout"`
	DetailTimeout Duration           `yaml:"detail_timeout"`
	SourcePages   []group.SourcePage `yaml:"source_pages"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:          ":3000",
		DataDir:       "data",
		OverridesPath: "overrides.json",
		LogLevel:      "INFO",
		Headless:      true,
		Cooldown:      Duration(15 * time.Minute),
		PageTimeout:   Duration(30 * time.Second),
		DetailTimeout: Duration(20 * time.Second),
		SourcePages:   group.DefaultSourcePages(),
	}
}

// Load resolves the configuration. path may be empty; when set, the file must
// exist and parse. Environment variables are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("GROUPS_CATALOG_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("GROUPS_CATALOG_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("GROUPS_CATALOG_OVERRIDES"); v != "" {
		c.OverridesPath = v
	}
	if v := os.Getenv("GROUPS_CATALOG_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("GROUPS_CATALOG_HEADLESS"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing GROUPS_CATALOG_HEADLESS: %w", err)
		}
		c.Headless = parsed
	}

	durations := []struct {
		env  string
		dest *Duration
	}{
		{"GROUPS_CATALOG_COOLDOWN", &c.Cooldown},
		{"GROUPS_CATALOG_PAGE_TIMEOUT", &c.PageTimeout},
		{"GROUPS_CATALOG_DETAIL_TIMEOUT", &c.DetailTimeout},
	}
	for _, d := range durations {
		v := os.Getenv(d.env)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", d.env, err)
		}
		*d.dest = Duration(parsed)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if len(c.SourcePages) == 0 {
		return fmt.Errorf("source_pages must not be empty")
	}
	for i, p := range c.SourcePages {
		if p.URL == "" {
			return fmt.Errorf("source_pages[%d]: url must not be empty", i)
		}
		switch p.Type {
		case group.TypeGather, group.TypeGrow, group.TypeGo:
		default:
			return fmt.Errorf("source_pages[%d]: unknown type %q", i, p.Type)
		}
	}
	return nil
}

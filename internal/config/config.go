// Package config builds the effective tool configuration from defaults,
// an optional .revue.json file, and REVUE_* environment variables, in
// that order.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/revue-dev/revue/internal/model"
	"github.com/revue-dev/revue/internal/rule"
)

// DefaultFile is the project-local config file name.
const DefaultFile = ".revue.json"

// Config is the tool configuration.
type Config struct {
	Format            string            `json:"format"`
	Dimensions        []string          `json:"dimensions,omitempty"`
	MaxFileLines      int               `json:"maxFileLines"`
	Framework         string            `json:"framework,omitempty"`
	Snippets          bool              `json:"snippets"`
	SeverityOverrides map[string]string `json:"severityOverrides,omitempty"`
	Serve             ServeConfig       `json:"serve"`
}

// ServeConfig configures the HTTP API.
type ServeConfig struct {
	Addr string `json:"addr"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Format:       "text",
		MaxFileLines: rule.DefaultMaxFileLines,
		Serve: ServeConfig{
			Addr: ":7311",
		},
	}
}

// Load builds the effective config: defaults <- file <- env. path names
// an explicit config file; when empty, .revue.json in the working
// directory is used if present.
func Load(path string) (Config, error) {
	cfg := Default()

	fileCfg, err := loadFile(path)
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)

	return cfg, nil
}

// LoadDotenv loads .env for serve mode. Missing files are fine; real
// environment variables always win.
func LoadDotenv() {
	_ = godotenv.Load(".env")
}

func loadFile(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Format != "" {
		dst.Format = src.Format
	}
	if len(src.Dimensions) > 0 {
		dst.Dimensions = src.Dimensions
	}
	if src.MaxFileLines > 0 {
		dst.MaxFileLines = src.MaxFileLines
	}
	if src.Framework != "" {
		dst.Framework = src.Framework
	}
	dst.Snippets = dst.Snippets || src.Snippets
	if len(src.SeverityOverrides) > 0 {
		dst.SeverityOverrides = src.SeverityOverrides
	}
	if src.Serve.Addr != "" {
		dst.Serve.Addr = src.Serve.Addr
	}
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("REVUE_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("REVUE_DIMENSIONS"); v != "" {
		cfg.Dimensions = splitList(v)
	}
	if v := os.Getenv("REVUE_MAX_FILE_LINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxFileLines = n
		}
	}
	if v := os.Getenv("REVUE_FRAMEWORK"); v != "" {
		cfg.Framework = v
	}
	if v := os.Getenv("REVUE_SNIPPETS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Snippets = b
		}
	}
	if v := os.Getenv("REVUE_ADDR"); v != "" {
		cfg.Serve.Addr = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// RuleOptions converts the config into registry options. Unknown
// dimension or severity names are reported, not guessed at.
func (c Config) RuleOptions() (rule.Options, error) {
	opts := rule.Options{MaxFileLines: c.MaxFileLines}

	for _, name := range c.Dimensions {
		d, err := model.ParseDimension(name)
		if err != nil {
			return rule.Options{}, err
		}
		opts.EnabledDimensions = append(opts.EnabledDimensions, d)
	}

	if len(c.SeverityOverrides) > 0 {
		opts.SeverityOverrides = make(map[string]model.Severity, len(c.SeverityOverrides))
		for id, name := range c.SeverityOverrides {
			sev, err := model.ParseSeverity(name)
			if err != nil {
				return rule.Options{}, fmt.Errorf("override for rule %s: %w", id, err)
			}
			opts.SeverityOverrides[id] = sev
		}
	}

	return opts, nil
}

// Package config loads calcgate settings from defaults, an optional YAML file
// and command line overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/calcgate/pkg/adapters/process"
)

// DefaultPort is the listening port used when none is configured.
const DefaultPort = 3000

// Evaluator kinds.
const (
	EvaluatorProcess = "process"
	EvaluatorExpr    = "expr"
	EvaluatorStatic  = "static"
)

// Journal kinds.
const (
	JournalNone   = "none"
	JournalMemory = "memory"
	JournalRedis  = "redis"
)

// Config is the full application configuration.
type Config struct {
	Port      int             `mapstructure:"port" yaml:"port"`
	StaticDir string          `mapstructure:"static_dir" yaml:"static_dir"`
	LogLevel  string          `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string          `mapstructure:"log_format" yaml:"log_format"`
	Evaluator EvaluatorConfig `mapstructure:"evaluator" yaml:"evaluator"`
	Journal   JournalConfig   `mapstructure:"journal" yaml:"journal"`
}

// EvaluatorConfig selects and configures the evaluator.
type EvaluatorConfig struct {
	Kind           string `mapstructure:"kind" yaml:"kind"`
	process.Config `mapstructure:",squash" yaml:",inline"`
	// Output is the canned text of the static evaluator.
	Output string `mapstructure:"output" yaml:"output"`
}

// JournalConfig selects and configures the calculation journal.
type JournalConfig struct {
	Kind          string        `mapstructure:"kind" yaml:"kind"`
	Size          int           `mapstructure:"size" yaml:"size"`
	TTL           time.Duration `mapstructure:"ttl" yaml:"ttl"`
	RedisAddr     string        `mapstructure:"redis_addr" yaml:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password" yaml:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db" yaml:"redis_db"`
}

// Default returns the built-in configuration: port 3000, ./calculator, no journal.
func Default() Config {
	return Config{
		Port:      DefaultPort,
		LogLevel:  "info",
		LogFormat: "text",
		Evaluator: EvaluatorConfig{
			Kind:   EvaluatorProcess,
			Config: process.Config{Command: process.DefaultCommand},
		},
		Journal: JournalConfig{
			Kind: JournalNone,
			Size: 100,
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Decode overlays YAML data onto cfg. Unknown keys are rejected and
// durations are accepted as strings such as "5s".
func Decode(data []byte, cfg *Config) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused: true,
		Result:      cfg,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// Validate checks the fields that cannot be fixed up with a default.
func (c Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	switch c.Evaluator.Kind {
	case EvaluatorProcess, EvaluatorExpr, EvaluatorStatic:
	default:
		errs = append(errs, fmt.Errorf("unknown evaluator kind %q", c.Evaluator.Kind))
	}
	if c.Evaluator.Timeout < 0 {
		errs = append(errs, errors.New("evaluator timeout must not be negative"))
	}
	switch c.Journal.Kind {
	case "", JournalNone, JournalMemory:
	case JournalRedis:
		if c.Journal.RedisAddr == "" {
			errs = append(errs, errors.New("journal.redis_addr is required for the redis journal"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown journal kind %q", c.Journal.Kind))
	}
	return errors.Join(errs...)
}

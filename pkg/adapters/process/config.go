package process

import (
	"log/slog"
	"time"
)

// Config describes how to launch the evaluator process.
type Config struct {
	Command string            `yaml:"command" json:"command" mapstructure:"command"`
	Args    []string          `yaml:"args" json:"args" mapstructure:"args"`
	Env     map[string]string `yaml:"env" json:"env" mapstructure:"env"`
	Dir     string            `yaml:"dir" json:"dir" mapstructure:"dir"`
	Timeout time.Duration     `yaml:"timeout" json:"timeout" mapstructure:"timeout"`
}

// NewFromConfig builds a Runner from a decoded configuration block.
func NewFromConfig(cfg Config, logger *slog.Logger) *Runner {
	opts := []RunnerOption{
		WithArgs(cfg.Args...),
		WithEnv(cfg.Env),
		WithDir(cfg.Dir),
		WithTimeout(cfg.Timeout),
	}
	if logger != nil {
		opts = append(opts, WithLogger(logger))
	}
	return NewRunner(cfg.Command, opts...)
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/calcgate"
	"github.com/aretw0/calcgate/internal/config"
	"github.com/aretw0/calcgate/internal/logging"
	"github.com/aretw0/calcgate/pkg/adapters/exprlang"
	"github.com/aretw0/calcgate/pkg/adapters/memory"
	"github.com/aretw0/calcgate/pkg/adapters/process"
	"github.com/aretw0/calcgate/pkg/adapters/redis"
	"github.com/aretw0/calcgate/pkg/adapters/static"
	"github.com/aretw0/calcgate/pkg/domain"
	"github.com/aretw0/calcgate/pkg/observability"
	"github.com/aretw0/calcgate/pkg/ports"
)

// App bundles everything a command needs, built from one Config.
type App struct {
	Config     config.Config
	Calculator *calcgate.Calculator
	Journal    ports.Journal
	Metrics    *observability.Metrics
	Logger     *slog.Logger

	closers []io.Closer
}

// Build wires evaluator, journal, metrics and logger from cfg.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(level, cfg.LogFormat)

	return BuildWithLogger(ctx, cfg, logger)
}

// BuildWithLogger is Build with an explicit logger.
func BuildWithLogger(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	app := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewMetrics(),
	}

	evaluator, err := NewEvaluator(cfg.Evaluator, logger)
	if err != nil {
		return nil, err
	}

	opts := []calcgate.Option{
		calcgate.WithLogger(logger),
		calcgate.WithLifecycleHooks(app.Metrics.Hooks(debugHooks(logger))),
	}

	journal, closer, err := NewJournal(ctx, cfg.Journal)
	if err != nil {
		return nil, err
	}
	if journal != nil {
		app.Journal = journal
		opts = append(opts, calcgate.WithJournal(journal))
	}
	if closer != nil {
		app.closers = append(app.closers, closer)
	}

	app.Calculator = calcgate.New(evaluator, opts...)
	return app, nil
}

// Close releases external connections.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// NewEvaluator builds the evaluator selected by cfg.Kind.
func NewEvaluator(cfg config.EvaluatorConfig, logger *slog.Logger) (ports.Evaluator, error) {
	switch cfg.Kind {
	case "", config.EvaluatorProcess:
		return process.NewFromConfig(cfg.Config, logger), nil
	case config.EvaluatorExpr:
		return exprlang.New(), nil
	case config.EvaluatorStatic:
		return static.New(cfg.Output), nil
	default:
		return nil, fmt.Errorf("unknown evaluator kind %q", cfg.Kind)
	}
}

// NewJournal builds the journal selected by cfg.Kind. A nil journal means none.
// The redis journal is pinged so a bad address fails at startup.
func NewJournal(ctx context.Context, cfg config.JournalConfig) (ports.Journal, io.Closer, error) {
	switch cfg.Kind {
	case "", config.JournalNone:
		return nil, nil, nil
	case config.JournalMemory:
		return memory.NewJournal(cfg.Size), nil, nil
	case config.JournalRedis:
		j := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			redis.WithSize(cfg.Size),
			redis.WithTTL(cfg.TTL),
		)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := j.Ping(pingCtx); err != nil {
			j.Close()
			return nil, nil, fmt.Errorf("redis journal at %s: %w", cfg.RedisAddr, err)
		}
		return j, j, nil
	default:
		return nil, nil, fmt.Errorf("unknown journal kind %q", cfg.Kind)
	}
}

func debugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnEvaluate: func(ctx context.Context, e *domain.EvaluationEvent) {
			logger.Debug("Evaluation",
				"outcome", e.Outcome,
				"exit_code", e.ExitCode,
				"duration", e.Duration,
			)
		},
	}
}

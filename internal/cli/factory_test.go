package cli

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/calcgate/internal/config"
	"github.com/aretw0/calcgate/internal/logging"
	"github.com/aretw0/calcgate/pkg/adapters/exprlang"
	"github.com/aretw0/calcgate/pkg/adapters/memory"
	"github.com/aretw0/calcgate/pkg/adapters/process"
	"github.com/aretw0/calcgate/pkg/adapters/redis"
	"github.com/aretw0/calcgate/pkg/adapters/static"
	"github.com/aretw0/calcgate/pkg/domain"
)

func TestNewEvaluator(t *testing.T) {
	logger := logging.NewNop()

	ev, err := NewEvaluator(config.EvaluatorConfig{Kind: config.EvaluatorProcess}, logger)
	require.NoError(t, err)
	require.IsType(t, &process.Runner{}, ev)
	assert.Equal(t, process.DefaultCommand, ev.(*process.Runner).Command())

	ev, err = NewEvaluator(config.EvaluatorConfig{Kind: config.EvaluatorExpr}, logger)
	require.NoError(t, err)
	assert.IsType(t, &exprlang.Evaluator{}, ev)

	ev, err = NewEvaluator(config.EvaluatorConfig{Kind: config.EvaluatorStatic, Output: "Result: 1"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &static.Evaluator{}, ev)

	_, err = NewEvaluator(config.EvaluatorConfig{Kind: "slide-rule"}, logger)
	assert.Error(t, err)
}

func TestNewJournal(t *testing.T) {
	ctx := context.Background()

	j, closer, err := NewJournal(ctx, config.JournalConfig{Kind: config.JournalNone})
	require.NoError(t, err)
	assert.Nil(t, j)
	assert.Nil(t, closer)

	j, _, err = NewJournal(ctx, config.JournalConfig{Kind: config.JournalMemory, Size: 3})
	require.NoError(t, err)
	assert.IsType(t, &memory.Journal{}, j)

	mr := miniredis.RunT(t)
	j, closer, err = NewJournal(ctx, config.JournalConfig{Kind: config.JournalRedis, RedisAddr: mr.Addr()})
	require.NoError(t, err)
	assert.IsType(t, &redis.Journal{}, j)
	require.NotNil(t, closer)
	assert.NoError(t, closer.Close())
}

func TestNewJournal_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, _, err := NewJournal(context.Background(), config.JournalConfig{Kind: config.JournalRedis, RedisAddr: addr})
	assert.Error(t, err)
}

func TestBuildWithLogger(t *testing.T) {
	cfg := config.Default()
	cfg.Evaluator.Kind = config.EvaluatorStatic
	cfg.Evaluator.Output = "Result: 12"
	cfg.Journal.Kind = config.JournalMemory

	app, err := BuildWithLogger(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer app.Close()

	outcome, err := app.Calculator.Calculate(context.Background(), "3*4")
	require.NoError(t, err)
	assert.Equal(t, domain.Success(12), outcome)

	recs, err := app.Journal.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestBuild_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "shouty"
	_, err := Build(context.Background(), cfg)
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Journal.Kind = "tape"
	_, err = Build(context.Background(), cfg)
	assert.Error(t, err)
}

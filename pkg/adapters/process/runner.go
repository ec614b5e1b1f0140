package process

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/aretw0/calcgate/pkg/domain"
)

// DefaultCommand is the calculator executable looked up relative to the working directory.
const DefaultCommand = "./calculator"

// DefaultGracePeriod is how long an evaluator that hit its timeout may keep
// running after the interrupt before it is killed.
const DefaultGracePeriod = 5 * time.Second

// Runner implements ports.Evaluator by spawning one process per expression.
// The expression is written to stdin as a single line, then stdin is closed.
type Runner struct {
	command     string
	args        []string
	env         []string
	dir         string
	timeout     time.Duration
	gracePeriod time.Duration
	logger      *slog.Logger
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithArgs sets the arguments passed to the evaluator command.
func WithArgs(args ...string) RunnerOption {
	return func(r *Runner) {
		r.args = args
	}
}

// WithEnv adds KEY=VALUE pairs on top of the inherited environment.
func WithEnv(env map[string]string) RunnerOption {
	return func(r *Runner) {
		for k, v := range env {
			r.env = append(r.env, k+"="+v)
		}
	}
}

// WithDir sets the working directory for executed processes.
func WithDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.dir = dir
	}
}

// WithTimeout bounds each evaluation. Zero means wait for the process forever.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithGracePeriod sets the delay between interrupt and kill. It only applies
// together with WithTimeout.
func WithGracePeriod(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.gracePeriod = d
	}
}

// WithLogger sets the logger used for process diagnostics.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a new process evaluator for command.
// An empty command falls back to DefaultCommand.
func NewRunner(command string, opts ...RunnerOption) *Runner {
	if command == "" {
		command = DefaultCommand
	}
	r := &Runner{
		command:     command,
		gracePeriod: DefaultGracePeriod,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Command returns the executable this runner spawns.
func (r *Runner) Command() string {
	return r.command
}

// Evaluate spawns the evaluator, feeds it the expression and waits for it to exit.
// The exit status is reported but never turned into an error: only a failure to
// start the process is.
func (r *Runner) Evaluate(ctx context.Context, expression string) (domain.Output, error) {
	runCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, r.command, r.args...)
	cmd.Dir = r.dir
	if len(r.env) > 0 {
		cmd.Env = append(cmd.Environ(), r.env...)
	}

	// Without a timeout, output is collected until stdout closes, however long
	// that takes; WaitDelay would also cap the wait after a normal exit.
	if r.timeout > 0 {
		// Ask nicely first. Windows has no interrupt for child processes.
		if runtime.GOOS != "windows" {
			cmd.Cancel = func() error {
				return cmd.Process.Signal(os.Interrupt)
			}
		}
		cmd.WaitDelay = r.gracePeriod
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdin = strings.NewReader(expression + "\n")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	out := domain.Output{
		Text:     stdout.String(),
		ExitCode: -1,
		Duration: time.Since(start),
	}
	if cmd.ProcessState != nil {
		out.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err != nil && cmd.ProcessState == nil {
		return out, fmt.Errorf("%w: %s: %w", domain.ErrEvaluatorUnavailable, r.command, err)
	}

	if runCtx.Err() != nil {
		r.logger.Warn("evaluator interrupted",
			"command", r.command,
			"err", runCtx.Err(),
			"exit_code", out.ExitCode,
		)
	} else if out.ExitCode != 0 {
		r.logger.Debug("evaluator exited with non-zero status",
			"command", r.command,
			"exit_code", out.ExitCode,
			"stderr", stderr.String(),
		)
	}

	return out, nil
}

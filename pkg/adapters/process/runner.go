package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
	"syscall"
	"time"
)

// ErrToolNotRegistered is returned for a name missing from the allow-list.
var ErrToolNotRegistered = errors.New("process tool not registered")

// DefaultGracePeriod is how long a cancelled process may take to exit after SIGTERM.
const DefaultGracePeriod = 5 * time.Second

// Runner pipes generated code through local processes.
// It follows a Strict Registry pattern for security (Allow-Listing): only
// registered commands run, and callers never supply command lines.
type Runner struct {
	registry map[string]RegisteredProcess
	baseDir  string
	grace    time.Duration
}

// RegisteredProcess defines an allowed command execution.
type RegisteredProcess struct {
	Command string
	Args    []string
	Env     map[string]string
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithRegistry populates the allow-list from a loaded config.
func WithRegistry(tools map[string]ProcessConfig) RunnerOption {
	return func(r *Runner) {
		for name, tool := range tools {
			r.registry[name] = RegisteredProcess{Command: tool.Command, Args: tool.Args, Env: tool.Environment}
		}
	}
}

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// WithGracePeriod overrides DefaultGracePeriod.
func WithGracePeriod(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.grace = d
	}
}

// NewRunner creates a new Process Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: make(map[string]RegisteredProcess),
		grace:    DefaultGracePeriod,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a trusted command to the allow-list.
func (r *Runner) Register(name string, command string, args ...string) {
	r.registry[name] = RegisteredProcess{
		Command: command,
		Args:    args,
	}
}

// Names lists registered tools in sorted order.
func (r *Runner) Names() []string {
	names := make([]string, 0, len(r.registry))
	for name := range r.registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Pipe runs the named tool with input on stdin and returns its stdout.
// vars reach the process as TURBO_ARG_<KEY> environment variables rather
// than as flags, so values cannot inject options.
func (r *Runner) Pipe(ctx context.Context, name, input string, vars map[string]string) (string, error) {
	proc, ok := r.registry[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrToolNotRegistered, name)
	}

	cmd := exec.CommandContext(ctx, proc.Command, proc.Args...)
	cmd.Dir = r.baseDir
	cmd.Stdin = strings.NewReader(input)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = r.grace

	env := cmd.Environ()
	for k, v := range proc.Env {
		env = append(env, k+"="+os.ExpandEnv(v))
	}
	for k, v := range vars {
		env = append(env, fmt.Sprintf("TURBO_ARG_%s=%s", strings.ToUpper(k), v))
	}
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w (%w)", err, ctxErr)
		}
		return "", fmt.Errorf("%s: execution failed: %w. Stderr: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

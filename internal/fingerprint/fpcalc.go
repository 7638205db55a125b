package fingerprint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

var (
	// ErrNoBackend indicates fpcalc is not installed or not on PATH.
	ErrNoBackend = errors.New("fpcalc not available")
	// ErrGeneration indicates fpcalc ran but produced no usable fingerprint.
	ErrGeneration = errors.New("fingerprint generation failed")
)

// Fingerprint is a compact acoustic signature for one audio file. Duration
// is the fingerprinted audio length in seconds.
type Fingerprint struct {
	Duration float64 `json:"duration"`
	Value    string  `json:"fingerprint"`
}

// Executor abstracts command execution for testability.
type Executor interface {
	Output(ctx context.Context, binary string, args []string) ([]byte, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(executor Executor) Option {
	return func(c *Client) {
		if executor != nil {
			c.exec = executor
		}
	}
}

// Client wraps fpcalc CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
}

// New constructs an fpcalc client.
func New(binary string, timeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("fpcalc binary required")
	}
	client := &Client{
		binary:  binary,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Calculate fingerprints the audio file at path.
func (c *Client) Calculate(ctx context.Context, path string) (*Fingerprint, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("audio file path required")
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	output, err := c.exec.Output(runCtx, c.binary, []string{"-json", path})
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: binary %q not found", ErrNoBackend, c.binary)
		}
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	var result Fingerprint
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("%w: decode fpcalc output: %w", ErrGeneration, err)
	}
	if strings.TrimSpace(result.Value) == "" {
		return nil, fmt.Errorf("%w: empty fingerprint for %q", ErrGeneration, path)
	}
	if result.Duration <= 0 {
		return nil, fmt.Errorf("%w: missing duration for %q", ErrGeneration, path)
	}
	return &result, nil
}

type commandExecutor struct{}

func (commandExecutor) Output(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

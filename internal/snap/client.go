// ABOUTME: Client runs the snap CLI and captures its output for parsing
// ABOUTME: Bounds concurrent invocations with a semaphore; caps stdout size

package snap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/knightscode139/snap-store-mcp/internal/log"
)

const (
	// DefaultTimeout bounds a single snap invocation.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxOutput caps captured stdout at 10MB.
	DefaultMaxOutput = 10 * 1024 * 1024
	// DefaultMaxConcurrent bounds how many snap processes run at once.
	DefaultMaxConcurrent = 4
)

var errOutputLimitExceeded = errors.New("output limit exceeded")

// limitedWriter wraps an io.Writer and stops accepting data after limit bytes.
// When the limit is hit, Write returns errOutputLimitExceeded.
type limitedWriter struct {
	w        io.Writer
	limit    int
	written  int
	exceeded bool
}

func (lw *limitedWriter) Write(p []byte) (int, error) {
	remaining := lw.limit - lw.written
	if remaining <= 0 {
		lw.exceeded = true
		return 0, errOutputLimitExceeded
	}

	if len(p) > remaining {
		n, err := lw.w.Write(p[:remaining])
		lw.written += n
		lw.exceeded = true
		if err != nil {
			return n, err
		}
		return n, errOutputLimitExceeded
	}

	n, err := lw.w.Write(p)
	lw.written += n
	return n, err
}

// CommandError reports a failed snap invocation with enough context for the
// caller to build a structured error payload.
type CommandError struct {
	Command string // full command line that failed
	Stderr  string // trimmed stderr, or a placeholder when empty
	Hint    string // remediation hint for the caller
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, e.Stderr)
}

// Client invokes the snap CLI. The zero value is not usable; use NewClient.
type Client struct {
	bin       string
	timeout   time.Duration
	maxOutput int
	sem       *semaphore.Weighted
}

// NewClient creates a Client for the given snap binary. Zero or negative
// arguments fall back to the package defaults.
func NewClient(bin string, timeout time.Duration, maxOutput int, maxConcurrent int64) *Client {
	if bin == "" {
		bin = "snap"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxOutput <= 0 {
		maxOutput = DefaultMaxOutput
	}
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	return &Client{
		bin:       bin,
		timeout:   timeout,
		maxOutput: maxOutput,
		sem:       semaphore.NewWeighted(maxConcurrent),
	}
}

// Search runs `snap search <query>` and returns raw stdout.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	return c.run(ctx, "search", query)
}

// Info runs `snap info <name>` and returns raw stdout.
func (c *Client) Info(ctx context.Context, name string) (string, error) {
	return c.run(ctx, "info", name)
}

// run executes the snap binary with args and returns stdout on success.
// A non-zero exit or timeout produces a *CommandError; failures to spawn the
// process at all surface as plain errors.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer c.sem.Release(1)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.bin, args...)

	var stdout, stderr bytes.Buffer
	lw := &limitedWriter{w: &stdout, limit: c.maxOutput}
	cmd.Stdout = lw
	cmd.Stderr = &stderr

	cmdline := strings.Join(append([]string{c.bin}, args...), " ")
	log.Debug("running %s", cmdline)

	err := cmd.Run()

	if lw.exceeded {
		// No truncation marker: the parsers would read it as data.
		log.Warn("%s: stdout exceeded %d bytes, truncated", cmdline, c.maxOutput)
	}

	if err != nil {
		if ctx.Err() != nil {
			return "", &CommandError{
				Command: cmdline,
				Stderr:  fmt.Sprintf("command timed out after %s", c.timeout),
				Hint:    "Increase timeout_ms in settings or try again.",
			}
		}

		// The output cap kills the process; treat what we captured as success.
		if lw.exceeded {
			return stdout.String(), nil
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stderrText := strings.TrimSpace(stderr.String())
			if stderrText == "" {
				stderrText = "No error details available"
			}
			return "", &CommandError{
				Command: cmdline,
				Stderr:  stderrText,
				Hint:    "Check if the package name is correct. Try using 'search_snaps' first.",
			}
		}

		return "", fmt.Errorf("running %s: %w", cmdline, err)
	}

	return stdout.String(), nil
}

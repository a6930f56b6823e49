// Package claude wraps invocation of the Claude Code CLI as an opaque
// subprocess: prompt in, parsed result out. Nothing in this package
// assumes anything about the CLI beyond its flag surface and its
// JSON result envelope.
package claude

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

const (
	// DefaultBinary is the executable resolved from PATH.
	DefaultBinary = "claude"
	// DefaultOutputFormat requests machine-parsable output.
	DefaultOutputFormat = "json"
	// DefaultTimeout bounds a single invocation when the caller does
	// not provide a deadline of its own.
	DefaultTimeout = 10 * time.Minute

	// maxExcerptLen caps how much captured output is carried into an
	// error message.
	maxExcerptLen = 500
)

// ToolList describes the capability allow-list for one invocation.
// All means unrestricted: the --allowedTools flag is omitted entirely.
// An empty Names with All unset leaves the CLI on its own default
// minimal permission set, which also omits the flag.
type ToolList struct {
	All   bool
	Names []string
}

// Options contains per-invocation parameters.
type Options struct {
	// Dir is the working directory for the subprocess. Empty means
	// the current directory.
	Dir string
	// Tools is the capability allow-list.
	Tools ToolList
	// Timeout bounds the invocation. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Client invokes the Claude Code CLI.
type Client struct {
	bin          string
	outputFormat string
}

// NewClient creates a client for the given binary. Empty arguments
// fall back to DefaultBinary and DefaultOutputFormat.
func NewClient(bin, outputFormat string) *Client {
	if bin == "" {
		bin = DefaultBinary
	}
	if outputFormat == "" {
		outputFormat = DefaultOutputFormat
	}
	return &Client{bin: bin, outputFormat: outputFormat}
}

// buildArgs assembles the CLI argument list. The prompt goes last.
func (c *Client) buildArgs(prompt string, tools ToolList) []string {
	args := []string{"--output-format", c.outputFormat, "--print"}
	if !tools.All && len(tools.Names) > 0 {
		args = append(args, "--allowedTools", strings.Join(tools.Names, ","))
	}
	return append(args, "-p", prompt)
}

// Invoke runs one subprocess invocation to completion and returns its
// result. Process-level failures (spawn error, non-zero exit, timeout)
// come back as a failure Result, never as a Go error, so batch callers
// can keep processing siblings.
func (c *Client) Invoke(ctx context.Context, prompt string, opts Options) Result {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.bin, c.buildArgs(prompt, opts.Tools)...)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Result{Error: fmt.Sprintf("invocation timed out after %s", timeout)}
		}
		if ctx.Err() != nil {
			return Result{Error: fmt.Sprintf("invocation canceled: %v", ctx.Err())}
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{Error: fmt.Sprintf("%s exited with status %d: %s",
				c.bin, exitErr.ExitCode(), excerpt(stderr.Bytes(), stdout.Bytes()))}
		}
		return Result{Error: fmt.Sprintf("start %s process: %v", c.bin, err)}
	}

	return parseOutput(stdout.Bytes())
}

// parseOutput interprets captured stdout. A well-formed JSON result
// envelope yields its result text plus the raw structured payload.
// Anything else is treated as a plain-text success: parse failure on
// produced output is recovered locally, never surfaced as a failure.
func parseOutput(out []byte) Result {
	trimmed := bytes.TrimSpace(out)
	res := Result{Success: true, Output: string(trimmed)}

	if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') {
		return res
	}

	var envelope struct {
		Type   string `json:"type"`
		Result string `json:"result"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return res
	}

	res.Structured = json.RawMessage(append([]byte(nil), trimmed...))
	if envelope.Result != "" {
		res.Output = envelope.Result
	}
	return res
}

// excerpt picks the most useful diagnostic text from captured streams,
// preferring stderr, and truncates it for readable error messages.
func excerpt(stderr, stdout []byte) string {
	s := strings.TrimSpace(string(stderr))
	if s == "" {
		s = strings.TrimSpace(string(stdout))
	}
	if s == "" {
		return "(no output)"
	}
	if len(s) > maxExcerptLen {
		s = s[:maxExcerptLen] + "..."
	}
	return s
}

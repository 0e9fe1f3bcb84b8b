// Package launcher hands instruction payloads to the downstream agent
// executor. It is the boundary between planning and execution: once Run
// returns, the planner's job is done and the outcome is a recorded result,
// never a planning error.
package launcher

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultCommand is the downstream agent CLI.
const DefaultCommand = "claude"

// Result reports the outcome of one execution handoff.
type Result struct {
	// SessionID identifies the session the payload belonged to.
	SessionID string `json:"session_id"`
	// Mode is "cli" or "api".
	Mode string `json:"mode"`
	// Succeeded is true when the downstream executor finished cleanly.
	Succeeded bool `json:"succeeded"`
	// Err holds the failure description when Succeeded is false.
	Err string `json:"err,omitempty"`
	// Output is the tail of the executor's output, for diagnostics.
	Output string `json:"output,omitempty"`
	// Duration is how long the handoff ran.
	Duration time.Duration `json:"duration"`
}

// Runner hands an instruction payload to a downstream executor.
type Runner interface {
	Run(ctx context.Context, sessionID, payload string) Result
}

// CheckCLI verifies that the downstream agent CLI is available in PATH.
func CheckCLI(command string) error {
	if command == "" {
		command = DefaultCommand
	}
	if _, err := exec.LookPath(command); err != nil {
		return fmt.Errorf("%s CLI not found in PATH\n\n"+
			"snowswarm hands its plans to the Claude Code CLI for execution.\n\n"+
			"Install it with:\n"+
			"  npm install -g @anthropic-ai/claude-code", command)
	}
	return nil
}

// CLIRunner launches the agent CLI as a subprocess and streams the
// instruction payload to its standard input.
type CLIRunner struct {
	// Command is the executable to launch. Defaults to DefaultCommand.
	Command string
	// Timeout bounds the subprocess runtime. Zero means no timeout.
	Timeout time.Duration
	// SignalDir, when set, is watched for a kill control file; creating it
	// terminates the subprocess. This is the only external stop mechanism,
	// as the planner has no in-band cancellation.
	SignalDir string
}

// Run launches the subprocess and blocks until it exits or is killed.
// A non-zero exit is reported in the Result, not returned as an error.
func (r *CLIRunner) Run(ctx context.Context, sessionID, payload string) Result {
	command := r.Command
	if command == "" {
		command = DefaultCommand
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if r.SignalDir != "" {
		watcher, err := WatchSignals(r.SignalDir)
		if err == nil {
			defer watcher.Close()
			go func() {
				select {
				case <-watcher.Killed():
					cancel()
				case <-ctx.Done():
				}
			}()
		}
		// Watcher setup failure is not fatal; the run proceeds without the
		// control-file stop path.
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, command, "--print")
	cmd.Stdin = strings.NewReader(payload)
	out, err := cmd.CombinedOutput()

	result := Result{
		SessionID: sessionID,
		Mode:      "cli",
		Succeeded: err == nil,
		Output:    tail(string(out), 4096),
		Duration:  time.Since(start),
	}
	if err != nil {
		result.Err = err.Error()
		if ctx.Err() != nil {
			result.Err = fmt.Sprintf("execution stopped: %v", ctx.Err())
		}
	}
	return result
}

// tail returns at most n trailing bytes of s.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

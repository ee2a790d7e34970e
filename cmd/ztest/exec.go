package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/zelix-lang/Zelix/pkg/frontend"
)

// Record is the observable outcome of one `zelix check --json` run. It is
// both the golden file format and the report format.
type Record struct {
	Stdout         string        `json:"stdout"`
	Stderr         string        `json:"stderr"`
	ExitCode       int           `json:"exitCode"`
	Duration       time.Duration `json:"duration"`
	TimedOut       bool          `json:"timed_out"`
	UnstableOutput bool          `json:"unstable_output,omitempty"`
}

// executeCommand runs a command with a timeout and captures its output.
func executeCommand(ctx context.Context, command string, args ...string) Record {
	startTime := time.Now()
	cmd := exec.CommandContext(ctx, command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	rec := Record{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(startTime),
	}

	var exitErr *exec.ExitError
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		rec.TimedOut = true
		rec.ExitCode = -1
	case errors.As(err, &exitErr):
		rec.ExitCode = exitErr.ExitCode()
	case err != nil:
		rec.ExitCode = -2
		rec.Stderr += "\nExecution error: " + err.Error()
	}
	return rec
}

func (r *runner) checkArgs(file string) []string {
	args := []string{"check", "--json", "--feature", "no-color"}
	args = append(args, r.args...)
	return append(args, file)
}

// check runs zelix r.runs times on file. The fastest duration is kept; a run
// whose output differs from the first marks the record unstable.
func (r *runner) check(file string) *Record {
	var first Record
	var best time.Duration

	for i := 0; i < r.runs; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		rec := executeCommand(ctx, r.bin, r.checkArgs(file)...)
		cancel()

		if rec.TimedOut {
			return &rec
		}
		if i == 0 {
			first, best = rec, rec.Duration
			continue
		}
		if !sameOutput(first, rec, r.ignored) {
			first.UnstableOutput = true
			break
		}
		if rec.Duration < best {
			best = rec.Duration
		}
	}
	first.Duration = best
	return &first
}

func sameOutput(a, b Record, ignored []string) bool {
	return a.ExitCode == b.ExitCode &&
		filterOutput(a.Stdout, ignored) == filterOutput(b.Stdout, ignored) &&
		filterOutput(a.Stderr, ignored) == filterOutput(b.Stderr, ignored)
}

// compareRecords reports every difference between the golden record and the
// actual run. Durations are never compared.
func compareRecords(file string, golden, actual *Record, ignored []string) *FileTestResult {
	var diffs strings.Builder

	if actual.TimedOut {
		diffs.WriteString("zelix timed out.\n")
	}
	if golden.UnstableOutput != actual.UnstableOutput {
		fmt.Fprintf(&diffs, "Output stability mismatch:\n  - Golden: %v\n  - Actual: %v\n", golden.UnstableOutput, actual.UnstableOutput)
	}
	if golden.ExitCode != actual.ExitCode {
		fmt.Fprintf(&diffs, "Exit code mismatch:\n  - Golden: %d\n  - Actual: %d\n", golden.ExitCode, actual.ExitCode)
	}
	if filterOutput(golden.Stdout, ignored) != filterOutput(actual.Stdout, ignored) {
		fmt.Fprintf(&diffs, "STDOUT mismatch:\n%s", stdoutDiff(golden.Stdout, actual.Stdout))
	}
	if filterOutput(golden.Stderr, ignored) != filterOutput(actual.Stderr, ignored) {
		fmt.Fprintf(&diffs, "STDERR mismatch:\n%s", cmp.Diff(golden.Stderr, actual.Stderr))
	}

	if diffs.Len() > 0 {
		return &FileTestResult{
			File:    file,
			Status:  statusFail,
			Message: "Output or exit code mismatch",
			Diff:    diffs.String(),
			Golden:  golden,
			Actual:  actual,
		}
	}
	return &FileTestResult{File: file, Status: statusPass, Message: "Output matches the golden file", Golden: golden, Actual: actual}
}

// stdoutDiff compares two `check --json` outputs field by field when both
// decode as summaries, and as plain text otherwise.
func stdoutDiff(golden, actual string) string {
	var want, got frontend.Summary
	if json.Unmarshal([]byte(golden), &want) == nil && json.Unmarshal([]byte(actual), &got) == nil {
		if d := cmp.Diff(want, got); d != "" {
			return d
		}
	}
	return cmp.Diff(golden, actual)
}

// filterOutput removes lines containing any of the given substrings.
func filterOutput(output string, ignoredSubstrings []string) string {
	if len(ignoredSubstrings) == 0 || output == "" {
		return output
	}
	lines := strings.Split(output, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		ignore := false
		for _, sub := range ignoredSubstrings {
			if sub != "" && strings.Contains(line, sub) {
				ignore = true
				break
			}
		}
		if !ignore {
			filtered = append(filtered, line)
		}
	}
	return strings.Join(filtered, "\n")
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	zcli "github.com/zelix-lang/Zelix/pkg/cli"
)

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%6dµs", d.Microseconds())
	}
	return fmt.Sprintf("%6dms", d.Milliseconds())
}

func printSummary(w io.Writer, results []*FileTestResult, verbose bool) {
	var passed, failed, skipped, errored int
	var total time.Duration
	var timed int

	indent := zcli.NewIndentState()
	indent.Push()
	status := indent.Current()
	indent.Push()
	detail := indent.Current()

	for _, result := range results {
		fmt.Fprintln(w, "----------------------------------------------------------------------")
		fmt.Fprintf(w, "Testing %s...\n", cCyan.Sprint(result.File))

		switch result.Status {
		case statusPass:
			passed++
			fmt.Fprintf(w, "%s[%s] %s\n", status, cGreen.Sprint(statusPass), result.Message)
			if verbose && result.Actual != nil && result.Golden != nil {
				fmt.Fprintf(w, "%s[actual: %s | golden: %s]\n", status, formatDuration(result.Actual.Duration), formatDuration(result.Golden.Duration))
			}
		case statusFail:
			failed++
			fmt.Fprintf(w, "%s[%s] %s\n", status, cRed.Sprint(statusFail), result.Message)
			fmt.Fprintln(w, formatDiff(result.Diff, detail))
		case statusSkip:
			skipped++
			fmt.Fprintf(w, "%s[%s] %s\n", status, cYellow.Sprint(statusSkip), result.Message)
		case statusError:
			errored++
			fmt.Fprintf(w, "%s[%s] %s\n", status, cRed.Sprint(statusError), result.Message)
		}

		if result.Actual != nil && !result.Actual.TimedOut {
			total += result.Actual.Duration
			timed++
		}
	}

	fmt.Fprintln(w, "----------------------------------------------------------------------")
	fmt.Fprintf(w, "%s %s, %s, %s, %s, %d Total\n",
		cBold.Sprint("Test Summary:"),
		cGreen.Sprintf("%d Passed", passed), cRed.Sprintf("%d Failed", failed),
		cYellow.Sprintf("%d Skipped", skipped), cRed.Sprintf("%d Errored", errored), len(results))
	if timed > 0 {
		fmt.Fprintf(w, "Average check time: %s\n", strings.TrimSpace(formatDuration(total/time.Duration(timed))))
	}
}

// formatDiff prefixes every diff line with indent, coloring removals and
// additions.
func formatDiff(diff, indent string) string {
	if diff == "" {
		return ""
	}
	var builder strings.Builder
	builder.WriteString(indent + "--- Diff ---\n")
	for _, line := range strings.Split(diff, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "-"):
			builder.WriteString(cRed.Sprint(indent + line))
		case strings.HasPrefix(trimmed, "+"):
			builder.WriteString(cGreen.Sprint(indent + line))
		default:
			builder.WriteString(indent + line)
		}
		builder.WriteString("\n")
	}
	return builder.String()
}

func writeJSONReport(path string, results []*FileTestResult) error {
	resultsMap := make(TestSuiteResults, len(results))
	for _, r := range results {
		resultsMap[r.File] = r
	}

	data, err := json.MarshalIndent(resultsMap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write JSON report to %s: %w", path, err)
	}
	return nil
}

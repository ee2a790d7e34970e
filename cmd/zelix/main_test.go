package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zelix-lang/Zelix/pkg/config"
	"github.com/zelix-lang/Zelix/pkg/frontend"
	"github.com/zelix-lang/Zelix/pkg/project"
)

func runZelix(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"zelix"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersion(t *testing.T) {
	code, out, _ := runZelix(t, "version")
	if code != 0 || out != "zelix "+version+"\n" {
		t.Errorf("version = %d %q", code, out)
	}
}

func TestLicense(t *testing.T) {
	_, short, _ := runZelix(t, "license")
	_, full, _ := runZelix(t, "license", "--full")
	if short != shortLicense {
		t.Errorf("short license = %q", short)
	}
	if !strings.Contains(full, "Disclaimer of Warranty") {
		t.Error("full license is missing the warranty disclaimer")
	}
}

func TestCheckFile(t *testing.T) {
	path := writeFile(t, "main.zx", "import Vec from \"math\";\nfun main() -> nothing {\n\tVec;\n}\n")

	code, out, errOut := runZelix(t, "check", path)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, errOut)
	}
	if !strings.Contains(out, "main.zx: 1 function(s), 0 exported, 1 import(s), 0 warning(s)") {
		t.Errorf("unexpected summary line:\n%s", out)
	}
	if errOut != "" {
		t.Errorf("unexpected diagnostics:\n%s", errOut)
	}
}

func TestCheckJSON(t *testing.T) {
	path := writeFile(t, "app.zx", "pub fun add(a: num, b: num) -> num {\n\treturn a;\n}\n")

	code, out, errOut := runZelix(t, "check", "--json", path)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, errOut)
	}
	var got frontend.Summary
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	want := frontend.Summary{
		File: "app.zx",
		Functions: []frontend.FunctionSummary{{
			Name:       "add",
			Public:     true,
			Parameters: []frontend.ParamSummary{{Name: "a", Type: "num"}, {Name: "b", Type: "num"}},
			Returns:    "num",
			BodyTokens: 3,
			Position:   "app.zx:1:13",
		}},
		Imports:  []frontend.ImportSummary{},
		Exported: []string{"add"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckReportsErrors(t *testing.T) {
	path := writeFile(t, "bad.zx", "fun f() -> num { }\n")

	code, out, errOut := runZelix(t, "check", path)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if out != "" {
		t.Errorf("nothing should reach stdout, got:\n%s", out)
	}
	if !strings.Contains(errOut, "semantic error: function doesn't return a value") {
		t.Errorf("missing diagnostic:\n%s", errOut)
	}
	if strings.Contains(errOut, "[ERROR]") {
		t.Errorf("reported diagnostics must not be printed twice:\n%s", errOut)
	}
}

func TestCheckWarnings(t *testing.T) {
	path := writeFile(t, "main.zx", "fun Main_() -> nothing { x; }\n")
	const warning = "function 'Main_' should be snake_case [-Wname-style]"

	code, _, errOut := runZelix(t, "check", path)
	if code != 0 || !strings.Contains(errOut, warning) {
		t.Errorf("exit code = %d, stderr:\n%s", code, errOut)
	}

	_, _, errOut = runZelix(t, "check", "--warn", "no-name-style", path)
	if strings.Contains(errOut, warning) {
		t.Errorf("warning should be disabled:\n%s", errOut)
	}

	code, _, errOut = runZelix(t, "check", "--warn", "no-such-warning", path)
	if code != 1 || !strings.Contains(errOut, "unknown warning 'no-such-warning'") {
		t.Errorf("exit code = %d, stderr:\n%s", code, errOut)
	}
}

func TestCheckProject(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	m := &config.Manifest{Name: "demo", Version: "1.0.0", MainScript: project.DefaultMainScript}
	if err := project.Scaffold(dir, m); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := runZelix(t, "check", dir)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, errOut)
	}
	if !strings.Contains(out, "main.zx: 1 function(s)") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestListFlags(t *testing.T) {
	_, out, _ := runZelix(t, "check", "--list-flags")
	for _, name := range []string{"-Wname-style", "-Wno-main", "-Fcolor", "-Ftimer"} {
		if !strings.Contains(out, name) {
			t.Errorf("%s missing from:\n%s", name, out)
		}
	}
}

func TestTokens(t *testing.T) {
	path := writeFile(t, "t.zx", "fun main")

	code, out, errOut := runZelix(t, "tokens", path)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, errOut)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "t.zx:1:5") || !strings.HasSuffix(lines[0], `"fun"`) {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], `"main"`) {
		t.Errorf("second line = %q", lines[1])
	}

	code, _, errOut = runZelix(t, "tokens")
	if code != 1 || !strings.Contains(errOut, "missing file argument") {
		t.Errorf("exit code = %d, stderr:\n%s", code, errOut)
	}
}

package frontend

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zelix-lang/Zelix/pkg/config"
	"github.com/zelix-lang/Zelix/pkg/util"
)

const sample = `import Vec as V from "math";

pub fun len_of(v: V) -> num {
	return v.len();
}

fun main() -> nothing {
	len_of(v);
}
`

func TestProcess(t *testing.T) {
	u, err := Process(config.NewConfig(), "/src/app.zx", sample)
	if err != nil {
		t.Fatal(err)
	}
	if len(u.Tokens) == 0 || u.Result == nil {
		t.Fatal("tokens and result should be set")
	}
	if len(u.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", u.Warnings)
	}
	if u.Timings.Total() < u.Timings.Lex {
		t.Error("total time should include every phase")
	}

	want := Summary{
		File: "app.zx",
		Functions: []FunctionSummary{
			{Name: "len_of", Public: true, Parameters: []ParamSummary{{"v", "V"}}, Returns: "num", BodyTokens: 7, Position: "app.zx:3:16"},
			{Name: "main", Parameters: []ParamSummary{}, Returns: "nothing", BodyTokens: 5, Position: "app.zx:7:10"},
		},
		Imports:  []ImportSummary{{Path: "math", Alias: "V", OriginalName: "Vec"}},
		Exported: []string{"len_of"},
	}
	if diff := cmp.Diff(want, u.Summary()); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessStopsAtFirstError(t *testing.T) {
	u, err := Process(config.NewConfig(), "bad.zx", "fun f() -> num { }")
	e, ok := util.AsError(err)
	if !ok || e.Kind != util.SemanticError {
		t.Fatalf("error = %v, want a semantic diagnostic", err)
	}
	if u == nil || u.Result != nil || u.Tokens != nil {
		t.Fatalf("failed unit should keep only its source, got %+v", u)
	}
	if got := string(u.Record().Content); got != "fun f() -> num { }" {
		t.Errorf("record content = %q", got)
	}

	_, err = Process(config.NewConfig(), "bad.zx", `"open`)
	if e, ok := util.AsError(err); !ok || e.Kind != util.LexicalError {
		t.Errorf("error = %v, want a lexical diagnostic", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.zx")
	if err := os.WriteFile(path, []byte("fun Main_() -> nothing { x; }"), 0o644); err != nil {
		t.Fatal(err)
	}

	u, err := Load(config.NewConfig(), path)
	if err != nil {
		t.Fatal(err)
	}
	if len(u.Warnings) != 1 || u.Warnings[0].Kind != config.WarnNameStyle {
		t.Errorf("warnings = %v, want one name-style warning", u.Warnings)
	}

	_, err = Load(config.NewConfig(), filepath.Join(dir, "missing.zx"))
	if e, ok := util.AsError(err); !ok || e.Kind != util.IOError {
		t.Errorf("error = %v, want an i/o diagnostic", err)
	}
}

func TestSummaryJSON(t *testing.T) {
	u, err := Process(config.NewConfig(), "a.zx", `fun main() -> nothing { }`)
	if err != nil {
		t.Fatal(err)
	}
	data, err := u.Summary().JSON()
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, data)
	}
	if _, ok := decoded["warnings"]; ok {
		t.Error("warnings should be omitted when empty")
	}
	if data[len(data)-1] != '\n' {
		t.Error("JSON output should end with a newline")
	}
}

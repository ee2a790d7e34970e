package lint

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zelix-lang/Zelix/pkg/ast"
	"github.com/zelix-lang/Zelix/pkg/config"
	"github.com/zelix-lang/Zelix/pkg/lexer"
	"github.com/zelix-lang/Zelix/pkg/parser"
)

func extract(t *testing.T, src string) *ast.Result {
	t.Helper()
	toks, err := lexer.Tokenize("lint.zx", src)
	if err != nil {
		t.Fatal(err)
	}
	res, err := parser.Extract(toks)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

type finding struct {
	Kind    config.Warning
	Trace   string
	Message string
}

func check(t *testing.T, cfg *config.Config, src string) []finding {
	t.Helper()
	var out []finding
	for _, w := range Check(cfg, extract(t, src), "lint.zx") {
		out = append(out, finding{w.Kind, w.Token.Trace(), w.Message})
	}
	return out
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []finding
	}{
		{
			name: "clean",
			src:  `import Vec from "v"; fun main() -> nothing { } fun norm(v: Vec) -> num { return 1; }`,
		},
		{
			name: "name style",
			src:  `fun DoThing() -> num { return 1; } fun ok_name_2() -> num { return 2; }`,
			want: []finding{{config.WarnNameStyle, "lint.zx:1:13", "function 'DoThing' should be snake_case"}},
		},
		{
			name: "empty body",
			src:  `fun main() -> nothing { } fun stub() -> nothing { }`,
			want: []finding{{config.WarnEmptyBody, "lint.zx:1:36", "function 'stub' has an empty body"}},
		},
		{
			name: "unused import",
			src:  `import A from "a"; import B from "b"; fun f() -> nothing { B.run(); }`,
			want: []finding{{config.WarnUnusedImport, "lint.zx:1:10", "'A' is imported but never used"}},
		},
		{
			name: "duplicate import",
			src:  `import A from "a"; import A from "b"; fun f(x: A) -> nothing { x; }`,
			want: []finding{{config.WarnDuplicateImport, "lint.zx:1:29", `'A' is already imported from "a" at lint.zx:1:10`}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := check(t, config.NewConfig(), tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("warnings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckRespectsConfig(t *testing.T) {
	src := `import A from "a"; fun Bad() -> nothing { }`

	cfg := config.NewConfig()
	if err := cfg.ProcessFlags([]string{"-Wno-all"}); err != nil {
		t.Fatal(err)
	}
	if got := check(t, cfg, src); len(got) != 0 {
		t.Errorf("disabled warnings reported: %v", got)
	}

	cfg = config.NewConfig()
	if err := cfg.ProcessFlags([]string{"-Wall"}); err != nil {
		t.Fatal(err)
	}
	var kinds []config.Warning
	for _, f := range check(t, cfg, src) {
		kinds = append(kinds, f.Kind)
	}
	want := []config.Warning{config.WarnNameStyle, config.WarnEmptyBody, config.WarnUnusedImport, config.WarnNoMain}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("warning kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestNoMainAnchorsAtFileStart(t *testing.T) {
	cfg := config.NewConfig()
	cfg.SetWarning(config.WarnNoMain, true)
	got := check(t, cfg, `fun helper() -> num { return 1; }`)
	want := []finding{{config.WarnNoMain, "lint.zx:1:1", "no main function declared"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

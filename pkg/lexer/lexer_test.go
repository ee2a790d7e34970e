package lexer

import (
	"strings"
	"testing"
	"unicode"

	"github.com/google/go-cmp/cmp"
	"github.com/zelix-lang/Zelix/pkg/token"
	"github.com/zelix-lang/Zelix/pkg/util"
)

type lexeme struct {
	Type  token.Type
	Value string
}

func scan(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := Tokenize("test.zx", src)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	return toks
}

func lexemes(toks []token.Token) []lexeme {
	out := make([]lexeme, 0, len(toks))
	for _, tok := range toks {
		out = append(out, lexeme{tok.Type, tok.Value})
	}
	return out
}

func TestTokenizeLexemes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []lexeme
	}{
		{"array type", "num[]", []lexeme{{token.NumArray, "num[]"}}},
		{"spaced array type", "string [ ]", []lexeme{{token.StringArray, "string[]"}}},
		{"bool array", "bool[]", []lexeme{{token.BoolArray, "bool[]"}}},
		{"discrete", "[discrete]", []lexeme{{token.Discrete, "[discrete]"}}},
		{"greater or equal", "a >= b", []lexeme{
			{token.Unknown, "a"}, {token.GreaterThanOrEqual, ">="}, {token.Unknown, "b"},
		}},
		{"comparison operators", "a==b!=c<=d", []lexeme{
			{token.Unknown, "a"}, {token.Equal, "=="}, {token.Unknown, "b"},
			{token.NotEqual, "!="}, {token.Unknown, "c"}, {token.LessThanOrEqual, "<="},
			{token.Unknown, "d"},
		}},
		{"compound assignment", "x += 1; y -= 2; z *= 3; w /= 4;", []lexeme{
			{token.Unknown, "x"}, {token.AssignAdd, "+="}, {token.NumLiteral, "1"}, {token.Semicolon, ";"},
			{token.Unknown, "y"}, {token.AssignSub, "-="}, {token.NumLiteral, "2"}, {token.Semicolon, ";"},
			{token.Unknown, "z"}, {token.AssignAsterisk, "*="}, {token.NumLiteral, "3"}, {token.Semicolon, ";"},
			{token.Unknown, "w"}, {token.AssignSlash, "/="}, {token.NumLiteral, "4"}, {token.Semicolon, ";"},
		}},
		{"increment decrement", "i++ j--", []lexeme{
			{token.Unknown, "i"}, {token.Increment, "++"}, {token.Unknown, "j"}, {token.Decrement, "--"},
		}},
		{"triple minus", "---", []lexeme{{token.Decrement, "--"}, {token.Minus, "-"}}},
		{"arrow", ") -> num", []lexeme{
			{token.CloseParen, ")"}, {token.Arrow, "->"}, {token.Num, "num"},
		}},
		{"decimal", "x = 3.14;", []lexeme{
			{token.Unknown, "x"}, {token.Assign, "="}, {token.NumLiteral, "3.14"}, {token.Semicolon, ";"},
		}},
		{"member access", "io.println", []lexeme{
			{token.Unknown, "io"}, {token.Dot, "."}, {token.Unknown, "println"},
		}},
		{"booleans", "true false truth", []lexeme{
			{token.BoolLiteral, "true"}, {token.BoolLiteral, "false"}, {token.Unknown, "truth"},
		}},
		{"keywords", "pub fun import from as unsafe elseif", []lexeme{
			{token.Pub, "pub"}, {token.Function, "fun"}, {token.Import, "import"},
			{token.From, "from"}, {token.As, "as"}, {token.Unsafe, "unsafe"}, {token.ElseIf, "elseif"},
		}},
		{"string literal", `let s = "a b";`, []lexeme{
			{token.Let, "let"}, {token.Unknown, "s"}, {token.Assign, "="},
			{token.StringLiteral, "a b"}, {token.Semicolon, ";"},
		}},
		{"escaped quote", `"say \"hi\""`, []lexeme{{token.StringLiteral, `say \"hi\"`}}},
		{"escaped backslash", `"a\\" b`, []lexeme{{token.StringLiteral, `a\\`}, {token.Unknown, "b"}}},
		{"empty string", `""`, []lexeme{{token.StringLiteral, ""}}},
		{"string ends pending text", `abc"x"`, []lexeme{{token.Unknown, "abc"}, {token.StringLiteral, "x"}}},
		{"comment in string", `"a // b /* c"`, []lexeme{{token.StringLiteral, "a // b /* c"}}},
		{"line comment", "a // b c\nd", []lexeme{{token.Unknown, "a"}, {token.Unknown, "d"}}},
		{"line comment discards glued text", "a// b\nd", []lexeme{{token.Unknown, "d"}}},
		{"line comment keeps flushed tokens", "return x;// note\ny", []lexeme{
			{token.Return, "return"}, {token.Unknown, "x"}, {token.Semicolon, ";"}, {token.Unknown, "y"},
		}},
		{"line comment drops glued identifier", "return x// note\n;", []lexeme{{token.Return, "return"}, {token.Semicolon, ";"}}},
		{"block comment", "a /* b \n c */ d", []lexeme{{token.Unknown, "a"}, {token.Unknown, "d"}}},
		{"block comment ignores line comment start", "a /* // */ d", []lexeme{{token.Unknown, "a"}, {token.Unknown, "d"}}},
		{"unterminated block comment", "a /* b", []lexeme{{token.Unknown, "a"}}},
		{"other characters stay in identifiers", "a$b @c", []lexeme{{token.Unknown, "a$b"}, {token.Unknown, "@c"}}},
		{"empty", "", []lexeme{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lexemes(scan(t, tt.src))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestTokenizePayloads(t *testing.T) {
	toks := scan(t, `answer 42 2.5 true "raw\n"`)
	want := []token.Payload{
		token.Ident{Name: "answer"},
		token.Number{Value: 42},
		token.Number{Value: 2.5},
		token.Boolean{Value: true},
		token.Text{Raw: `raw\n`},
	}
	var got []token.Payload
	for _, tok := range toks {
		got = append(got, tok.Payload)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}

	for _, tok := range scan(t, "fun ( ) -> num[]") {
		if tok.Payload != nil {
			t.Errorf("%s should carry no payload, got %#v", tok, tok.Payload)
		}
	}
}

func TestTokenizePositions(t *testing.T) {
	toks := scan(t, "fun main(\n)")
	type pos struct {
		Value        string
		Line, Column int
	}
	want := []pos{
		{"fun", 1, 5},
		{"main", 1, 10},
		{"(", 1, 10},
		{")", 2, 2},
	}
	var got []pos
	for _, tok := range toks {
		got = append(got, pos{tok.Value, tok.Line, tok.Column})
		if tok.File != "test.zx" {
			t.Errorf("token %s has file %q", tok, tok.File)
		}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("position mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeFileBasename(t *testing.T) {
	toks, err := Tokenize("/home/user/project/src/main.zx", "x")
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].File != "main.zx" {
		t.Errorf("File = %q, want main.zx", toks[0].File)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	for _, src := range []string{`"unterminated`, `let s = "abc`, `"a\"`} {
		_, err := Tokenize("test.zx", src)
		e, ok := util.AsError(err)
		if !ok {
			t.Fatalf("Tokenize(%q) error = %v, want a diagnostic", src, err)
		}
		if e.Kind != util.LexicalError {
			t.Errorf("Tokenize(%q) kind = %s, want lexical error", src, e.Kind)
		}
		if e.Title != "unterminated string" {
			t.Errorf("Tokenize(%q) title = %q", src, e.Title)
		}
	}

	_, err := Tokenize("test.zx", `let s = "abc`)
	e, _ := util.AsError(err)
	if e.Token.Value != "=" {
		t.Errorf("error should point at the last produced token, got %s", e.Token)
	}
}

// Every character that is not whitespace must survive in exactly one token
// when the source has no strings or comments.
func TestTokenizeKeepsCharacters(t *testing.T) {
	sources := []string{
		"pub fun add(a: num, b: num) -> num { return a + b; }",
		"x>=y==z!=w<=v+=1-=2*=3/=4++--->",
		"let xs: num[] = [1, 2.5, 3]; [discrete] % ^ & | !",
		"fun   f ( )\n\t->\r\nnothing{}",
	}
	strip := func(s string) string {
		return strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, s)
	}
	for _, src := range sources {
		var sb strings.Builder
		for _, tok := range scan(t, src) {
			sb.WriteString(tok.Value)
		}
		if got, want := sb.String(), strip(src); got != want {
			t.Errorf("characters lost:\n got %q\nwant %q", got, want)
		}
	}
}

func TestLexerIsFreshPerCall(t *testing.T) {
	if _, err := Tokenize("a.zx", `"open`); err == nil {
		t.Fatal("expected an error")
	}
	toks := scan(t, "x")
	if len(toks) != 1 || toks[0].Value != "x" {
		t.Errorf("state leaked between calls: %v", toks)
	}
}

func TestUnterminatedStringIsIncomplete(t *testing.T) {
	_, err := Tokenize("test.zx", `fun f() -> nothing { "abc`)
	if !util.IsIncomplete(err) {
		t.Errorf("error = %v, want an end of input error", err)
	}
}

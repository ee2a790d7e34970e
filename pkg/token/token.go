package token

import (
	"fmt"
	"path/filepath"
	"strconv"
)

type Type int

const (
	Unknown Type = iota

	// Keywords
	Function
	Let
	Const
	If
	Else
	ElseIf
	While
	For
	In
	Break
	Continue
	Return
	Pub
	Import
	From
	As
	Unsafe

	// Operators
	Assign
	AssignAdd
	AssignSub
	AssignAsterisk
	AssignSlash
	Plus
	Minus
	Increment
	Decrement
	Asterisk
	Slash
	Percent
	LessThan
	GreaterThan
	Equal
	NotEqual
	LessThanOrEqual
	GreaterThanOrEqual
	Ampersand
	Bar
	Xor
	Not

	// Punctuation
	OpenParen
	CloseParen
	OpenCurly
	CloseCurly
	OpenBracket
	CloseBracket
	Comma
	Colon
	Semicolon
	Arrow
	Dot

	// Literals
	StringLiteral
	NumLiteral
	BoolLiteral

	// Types
	String
	Num
	Bool
	Nothing
	StringArray
	NumArray
	BoolArray
	Discrete

	typeCount
)

// Lexemes maps every fixed spelling to its category. Anything the lexer
// cannot find here falls back to a literal pattern or Unknown.
var Lexemes = map[string]Type{
	"fun":      Function,
	"let":      Let,
	"const":    Const,
	"if":       If,
	"else":     Else,
	"elseif":   ElseIf,
	"while":    While,
	"for":      For,
	"in":       In,
	"break":    Break,
	"continue": Continue,
	"return":   Return,
	"pub":      Pub,
	"import":   Import,
	"from":     From,
	"as":       As,
	"unsafe":   Unsafe,

	"=":  Assign,
	"+=": AssignAdd,
	"-=": AssignSub,
	"*=": AssignAsterisk,
	"/=": AssignSlash,
	"+":  Plus,
	"-":  Minus,
	"++": Increment,
	"--": Decrement,
	"*":  Asterisk,
	"/":  Slash,
	"%":  Percent,
	"<":  LessThan,
	">":  GreaterThan,
	"==": Equal,
	"!=": NotEqual,
	"<=": LessThanOrEqual,
	">=": GreaterThanOrEqual,
	"&":  Ampersand,
	"|":  Bar,
	"^":  Xor,
	"!":  Not,

	"(":  OpenParen,
	")":  CloseParen,
	"{":  OpenCurly,
	"}":  CloseCurly,
	"[":  OpenBracket,
	"]":  CloseBracket,
	",":  Comma,
	":":  Colon,
	";":  Semicolon,
	"->": Arrow,
	".":  Dot,

	"string":     String,
	"num":        Num,
	"bool":       Bool,
	"nothing":    Nothing,
	"string[]":   StringArray,
	"num[]":      NumArray,
	"bool[]":     BoolArray,
	"[discrete]": Discrete,
}

var typeNames = [...]string{
	Unknown:            "Unknown",
	Function:           "Function",
	Let:                "Let",
	Const:              "Const",
	If:                 "If",
	Else:               "Else",
	ElseIf:             "ElseIf",
	While:              "While",
	For:                "For",
	In:                 "In",
	Break:              "Break",
	Continue:           "Continue",
	Return:             "Return",
	Pub:                "Pub",
	Import:             "Import",
	From:               "From",
	As:                 "As",
	Unsafe:             "Unsafe",
	Assign:             "Assign",
	AssignAdd:          "AssignAdd",
	AssignSub:          "AssignSub",
	AssignAsterisk:     "AssignAsterisk",
	AssignSlash:        "AssignSlash",
	Plus:               "Plus",
	Minus:              "Minus",
	Increment:          "Increment",
	Decrement:          "Decrement",
	Asterisk:           "Asterisk",
	Slash:              "Slash",
	Percent:            "Percent",
	LessThan:           "LessThan",
	GreaterThan:        "GreaterThan",
	Equal:              "Equal",
	NotEqual:           "NotEqual",
	LessThanOrEqual:    "LessThanOrEqual",
	GreaterThanOrEqual: "GreaterThanOrEqual",
	Ampersand:          "Ampersand",
	Bar:                "Bar",
	Xor:                "Xor",
	Not:                "Not",
	OpenParen:          "OpenParen",
	CloseParen:         "CloseParen",
	OpenCurly:          "OpenCurly",
	CloseCurly:         "CloseCurly",
	OpenBracket:        "OpenBracket",
	CloseBracket:       "CloseBracket",
	Comma:              "Comma",
	Colon:              "Colon",
	Semicolon:          "Semicolon",
	Arrow:              "Arrow",
	Dot:                "Dot",
	StringLiteral:      "StringLiteral",
	NumLiteral:         "NumLiteral",
	BoolLiteral:        "BoolLiteral",
	String:             "String",
	Num:                "Num",
	Bool:               "Bool",
	Nothing:            "Nothing",
	StringArray:        "StringArray",
	NumArray:           "NumArray",
	BoolArray:          "BoolArray",
	Discrete:           "Discrete",
}

// Reverse mapping from Type to its fixed spelling
var TypeStrings = make(map[Type]string)

func init() {
	for str, typ := range Lexemes {
		TypeStrings[typ] = str
	}
}

func (t Type) String() string {
	if t >= 0 && t < typeCount {
		return typeNames[t]
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// Payload is the category-specific content of a token. Keywords, operators
// and punctuation carry none.
type Payload interface {
	payload()
}

type Ident struct{ Name string }

type Number struct{ Value float64 }

type Boolean struct{ Value bool }

// Text holds a string literal's body with escape sequences left undecoded.
type Text struct{ Raw string }

func (Ident) payload()   {}
func (Number) payload()  {}
func (Boolean) payload() {}
func (Text) payload()    {}

// Token is immutable once the lexer has produced it. File is always a
// basename. Column is the scanner's column when the token was flushed, which
// trails the first character of the lexeme.
type Token struct {
	Type    Type
	Value   string
	Payload Payload
	File    string
	Line    int
	Column  int
}

func New(typ Type, value, file string, line, column int) Token {
	if file != "" {
		file = filepath.Base(file)
	}
	return Token{Type: typ, Value: value, File: file, Line: line, Column: column}
}

// Trace renders the token position as file:line:column.
func (t Token) Trace() string {
	return fmt.Sprintf("%s:%d:%d", t.File, t.Line, t.Column)
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Type, t.Value)
}

// Is reports whether t has the category typ.
func (t Token) Is(typ Type) bool { return t.Type == typ }

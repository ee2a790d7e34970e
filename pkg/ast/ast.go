// Package ast defines the declaration-level records produced by the parser
package ast

import (
	"sort"
	"strings"

	"github.com/zelix-lang/Zelix/pkg/token"
)

// Import binds one symbol of another module to a local alias
type Import struct {
	SourcePath   string
	Alias        string
	OriginalName string
	Tok          token.Token // the symbol's first token
}

// Parameter is one declared argument of a function. NativeType holds the
// imported type's name when Type is token.Unknown and is empty otherwise.
type Parameter struct {
	Name       string
	Type       token.Type
	NativeType string
	Tok        token.Token
}

// Function is a top-level declaration. Body is the raw token run between the
// braces; nothing inside it has been interpreted.
type Function struct {
	Name           string
	Parameters     []Parameter
	ReturnType     token.Type
	ReturnedNative string
	Body           []token.Token
	Public         bool
	Tok            token.Token // the name token
}

// Result is everything one extraction pass produces
type Result struct {
	Functions map[string]*Function
	Imports   []Import
	Exported  map[string]*Function
}

func NewImport(tok token.Token, sourcePath, originalName, alias string) Import {
	return Import{SourcePath: sourcePath, Alias: alias, OriginalName: originalName, Tok: tok}
}

func NewParameter(tok token.Token, typ token.Type, native string) Parameter {
	return Parameter{Name: tok.Value, Type: typ, NativeType: native, Tok: tok}
}

func NewResult() *Result {
	return &Result{
		Functions: make(map[string]*Function),
		Exported:  make(map[string]*Function),
	}
}

// TypeName renders a declared type the way it is written in source.
func TypeName(typ token.Type, native string) string {
	if typ == token.Unknown {
		return native
	}
	if s, ok := token.TypeStrings[typ]; ok {
		return s
	}
	return typ.String()
}

func (p Parameter) TypeName() string { return TypeName(p.Type, p.NativeType) }

func (f *Function) ReturnTypeName() string { return TypeName(f.ReturnType, f.ReturnedNative) }

// Signature renders the declaration header, e.g. "pub fun add(a: num, b: num) -> num".
func (f *Function) Signature() string {
	var sb strings.Builder
	if f.Public {
		sb.WriteString("pub ")
	}
	sb.WriteString("fun ")
	sb.WriteString(f.Name)
	sb.WriteString("(")
	for i, p := range f.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
		sb.WriteString(": ")
		sb.WriteString(p.TypeName())
	}
	sb.WriteString(") -> ")
	sb.WriteString(f.ReturnTypeName())
	return sb.String()
}

// Names returns the function names in sorted order.
func (r *Result) Names() []string {
	names := make([]string, 0, len(r.Functions))
	for name := range r.Functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ImportByAlias returns the most recent import bound to alias.
func (r *Result) ImportByAlias(alias string) (Import, bool) {
	for i := len(r.Imports) - 1; i >= 0; i-- {
		if r.Imports[i].Alias == alias {
			return r.Imports[i], true
		}
	}
	return Import{}, false
}

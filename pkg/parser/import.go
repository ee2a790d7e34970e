package parser

import (
	"github.com/zelix-lang/Zelix/pkg/ast"
	"github.com/zelix-lang/Zelix/pkg/token"
	"github.com/zelix-lang/Zelix/pkg/tokenutil"
	"github.com/zelix-lang/Zelix/pkg/util"
)

var importForms = []string{"Use either 'import A from \"path\";' or 'import A as B, C as D from \"path\";'."}

// ExtractImport parses one import clause. tokens starts right after the
// import keyword. The returned count covers the import keyword, the clause
// and its semicolon, so the caller can skip the whole statement.
func ExtractImport(tokens []token.Token) ([]ast.Import, int, error) {
	clause, semicolon, err := tokenutil.ExtractUntil(tokens, token.Semicolon)
	if err != nil {
		// Anything but a leading semicolon means the statement never ended.
		if e, ok := util.AsError(err); ok && (len(tokens) == 0 || tokens[0].Type != token.Semicolon) {
			e.AtEnd()
		}
		return nil, 0, err
	}
	consumed := semicolon + 2

	names, from, err := tokenutil.ExtractUntil(clause, token.From)
	if err != nil {
		return nil, 0, err
	}

	rest := clause[from+1:]
	if len(rest) != 1 || rest[0].Type != token.StringLiteral {
		at := clause[from]
		if len(rest) > 0 {
			at = rest[0]
		}
		return nil, 0, util.Errorf(util.SyntaxError, at, "invalid import statement",
			"Expected a single string literal after 'from'.")
	}
	path := rest[0].Value

	var imports []ast.Import
	for _, group := range tokenutil.SplitOnComma(names) {
		imp, err := importSymbol(group, clause[0], path)
		if err != nil {
			return nil, 0, err
		}
		imports = append(imports, imp)
	}
	return imports, consumed, nil
}

// importSymbol validates one comma separated group: either "Name" or
// "Name as Alias".
func importSymbol(group []token.Token, anchor token.Token, path string) (ast.Import, error) {
	if len(group) == 0 {
		return ast.Import{}, util.Errorf(util.SyntaxError, anchor, "invalid import statement", importForms...).
			WithDetails("Found an empty symbol between commas.")
	}
	if len(group) != 1 && len(group) != 3 {
		return ast.Import{}, util.Errorf(util.SyntaxError, group[0], "invalid import statement", importForms...).
			WithDetails("Expected either one or three tokens per imported symbol.")
	}

	name := group[0]
	if name.Type != token.Unknown {
		return ast.Import{}, util.Errorf(util.SyntaxError, name, "invalid import statement", importForms...)
	}
	if len(group) == 1 {
		return ast.NewImport(name, path, name.Value, name.Value), nil
	}

	as, alias := group[1], group[2]
	if as.Type != token.As || alias.Type != token.Unknown {
		return ast.Import{}, util.Errorf(util.SyntaxError, group[0], "invalid import statement", importForms...)
	}
	return ast.NewImport(name, path, name.Value, alias.Value), nil
}

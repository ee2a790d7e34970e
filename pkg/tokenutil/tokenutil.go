// Package tokenutil holds small helpers that carve token slices, shared by
// the import-clause parser and anything else that reads delimited runs.
package tokenutil

import (
	"fmt"

	"github.com/zelix-lang/Zelix/pkg/token"
	"github.com/zelix-lang/Zelix/pkg/util"
)

// ExtractUntil returns the tokens before the first delim and the index of
// that delim. A missing delimiter or an empty prefix is a syntax error.
func ExtractUntil(tokens []token.Token, delim token.Type) ([]token.Token, int, error) {
	for i, tok := range tokens {
		if tok.Type != delim {
			continue
		}
		if i == 0 {
			return nil, 0, util.Errorf(util.SyntaxError, tok, "invalid statement",
				fmt.Sprintf("Expected something before %s.", quote(delim)))
		}
		return tokens[:i], i, nil
	}

	help := fmt.Sprintf("Expected a delimiter (%s) but found none.", quote(delim))
	if len(tokens) == 0 {
		return nil, 0, util.Untraced(util.SyntaxError, "invalid statement", help)
	}
	return nil, 0, util.Errorf(util.SyntaxError, tokens[len(tokens)-1], "invalid statement", help)
}

// SplitOnComma splits tokens into the groups between commas. Every comma
// closes a group, even an empty one; the trailing group is kept only when it
// holds something.
func SplitOnComma(tokens []token.Token) [][]token.Token {
	var groups [][]token.Token
	current := []token.Token{}
	for _, tok := range tokens {
		if tok.Type == token.Comma {
			groups = append(groups, current)
			current = []token.Token{}
			continue
		}
		current = append(current, tok)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

func quote(typ token.Type) string {
	if s, ok := token.TypeStrings[typ]; ok {
		return "'" + s + "'"
	}
	return typ.String()
}

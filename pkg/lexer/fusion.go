package lexer

import "github.com/zelix-lang/Zelix/pkg/token"

// pairRules lists, for each incoming category, the categories of the
// previous token it merges with.
var pairRules = map[token.Type][]token.Type{
	token.Assign: {
		token.Assign, token.LessThan, token.GreaterThan, token.Not,
		token.Plus, token.Minus, token.Asterisk, token.Slash,
	},
	token.Minus:       {token.Minus},
	token.Plus:        {token.Plus},
	token.GreaterThan: {token.Minus},
}

// fuse is the peephole step run before every token is appended. It returns
// the merged lexeme and how many previous tokens it replaces.
//
//	T [ ]          -> T[]        for T in num, string, bool
//	[ discrete ]   -> [discrete]
//	x =            -> x=         for x in = < > ! + - * /
//	- -, + +, - >  -> --, ++, ->
func fuse(prev []token.Token, next token.Token) (string, int, bool) {
	n := len(prev)

	if next.Type == token.CloseBracket && n >= 2 {
		first, second := prev[n-2], prev[n-1]
		switch {
		case token.IsPrimitive(first.Type) && second.Type == token.OpenBracket:
			return first.Value + second.Value + next.Value, 2, true
		case first.Type == token.OpenBracket && second.Type == token.Unknown && second.Value == "discrete":
			return first.Value + second.Value + next.Value, 2, true
		}
		return "", 0, false
	}

	if n == 0 {
		return "", 0, false
	}
	last := prev[n-1]
	for _, typ := range pairRules[next.Type] {
		if last.Type == typ {
			return last.Value + next.Value, 1, true
		}
	}
	return "", 0, false
}

package parser

import (
	"fmt"
	"regexp"

	"github.com/zelix-lang/Zelix/pkg/ast"
	"github.com/zelix-lang/Zelix/pkg/token"
	"github.com/zelix-lang/Zelix/pkg/util"
)

var namePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

const mainFunction = "main"

// Parser extracts top-level declarations in one forward pass. Function
// bodies are collected verbatim; only their braces and return tokens are
// inspected.
type Parser struct {
	tokens []token.Token
	pos    int
	state  state
	result *ast.Result

	// Per declaration, reset whenever a function closes.
	fn        *ast.Function
	paramName token.Token
	public    bool
	depth     int
	returned  bool
}

// NewParser creates and initializes a new Parser from a token stream
func NewParser(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens, result: ast.NewResult()}
}

// Extract is a shorthand for NewParser(tokens).Parse().
func Extract(tokens []token.Token) (*ast.Result, error) {
	return NewParser(tokens).Parse()
}

// Parse runs the extraction. The first fault aborts the pass and no partial
// result is returned.
func (p *Parser) Parse() (*ast.Result, error) {
	if len(p.tokens) == 0 {
		return nil, util.Untraced(util.SyntaxError, "empty source",
			"Declare at least one function, e.g. 'fun main() -> nothing { }'.")
	}

	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		if p.state == stateOutside && tok.Type == token.Import {
			imports, consumed, err := ExtractImport(p.tokens[p.pos+1:])
			if err != nil {
				return nil, err
			}
			p.result.Imports = append(p.result.Imports, imports...)
			p.pos += consumed
			continue
		}
		if err := p.step(tok); err != nil {
			return nil, err
		}
		p.pos++
	}

	if err := p.checkEnd(); err != nil {
		return nil, err
	}
	return p.result, nil
}

// step feeds one token to the state machine.
func (p *Parser) step(tok token.Token) error {
	switch p.state {
	case stateOutside:
		switch tok.Type {
		case token.Pub:
			p.public = true
			p.state = stateAwaitFun
		case token.Function:
			p.state = stateAwaitName
		default:
			return util.Errorf(util.SyntaxError, tok, "nothing may appear outside a function declaration",
				"Move this code into a function body.")
		}

	case stateAwaitFun:
		if tok.Type != token.Function {
			return expectedFun(tok)
		}
		p.state = stateAwaitName

	case stateAwaitName:
		return p.name(tok)

	case stateAwaitOpenParen:
		if tok.Type != token.OpenParen {
			return util.Errorf(util.SyntaxError, tok, "expected an open parenthesis",
				"Open the parameter list with a parenthesis.")
		}
		p.state = stateAwaitParamOrClose

	case stateAwaitParamOrClose:
		switch tok.Type {
		case token.CloseParen:
			p.state = stateAwaitArrow
		case token.Unknown:
			if p.fn.Name == mainFunction {
				return util.Errorf(util.SemanticError, tok, "the main function can't have arguments",
					"Remove the parameters of main.")
			}
			p.paramName = tok
			p.state = stateAwaitColon
		default:
			return util.Errorf(util.SyntaxError, tok, "expected an argument name",
				"Name the argument before its type.")
		}

	case stateAwaitColon:
		if tok.Type != token.Colon {
			return util.Errorf(util.SyntaxError, tok, "expected a colon",
				"Separate the argument name from its type with a colon.")
		}
		p.state = stateAwaitParamType

	case stateAwaitParamType:
		return p.paramType(tok)

	case stateAwaitCommaOrClose:
		switch tok.Type {
		case token.CloseParen:
			p.state = stateAwaitArrow
		case token.Comma:
			p.state = stateAwaitParamOrClose
		default:
			return util.Errorf(util.SyntaxError, tok, "expected a comma",
				"Separate the arguments with a comma.")
		}

	case stateAwaitArrow:
		if tok.Type != token.Arrow {
			return util.Errorf(util.SyntaxError, tok, "expected an arrow",
				"Separate the parameter list from the return type with '->'.")
		}
		p.state = stateAwaitReturnType

	case stateAwaitReturnType:
		return p.returnType(tok)

	case stateAwaitOpenCurly:
		if tok.Type != token.OpenCurly {
			return util.Errorf(util.SyntaxError, tok, "expected an open curly brace",
				"Open the function body with a curly brace.")
		}
		p.state = stateBody

	case stateBody:
		return p.body(tok)

	default:
		panic(fmt.Sprintf("parser: unhandled state %s", p.state))
	}
	return nil
}

func (p *Parser) name(tok token.Token) error {
	if tok.Type != token.Unknown {
		return util.Errorf(util.SyntaxError, tok, "expected a function name",
			"Name the function after the 'fun' keyword.")
	}
	if !namePattern.MatchString(tok.Value) {
		return util.Errorf(util.SyntaxError, tok, "invalid function name",
			"Function names start with a letter or an underscore and contain only letters, digits and underscores.")
	}
	if prev, ok := p.result.Functions[tok.Value]; ok {
		return util.Errorf(util.SemanticError, tok, "function already defined",
			"Rename one of the functions.").WithDetails("Previously defined at " + prev.Tok.Trace())
	}
	p.fn = &ast.Function{Name: tok.Value, ReturnType: token.Nothing, Public: p.public, Tok: tok}
	p.state = stateAwaitOpenParen
	return nil
}

func (p *Parser) paramType(tok token.Token) error {
	typ, native, err := p.resolveType(tok)
	if err != nil {
		return err
	}
	if typ == token.Nothing {
		return util.Errorf(util.SemanticError, tok, "the nothing type can't be used as an argument type",
			"Give the argument a value type or remove it.")
	}
	p.fn.Parameters = append(p.fn.Parameters, ast.NewParameter(p.paramName, typ, native))
	p.paramName = token.Token{}
	p.state = stateAwaitCommaOrClose
	return nil
}

func (p *Parser) returnType(tok token.Token) error {
	typ, native, err := p.resolveType(tok)
	if err != nil {
		return err
	}
	if typ != token.Nothing && p.fn.Name == mainFunction {
		return util.Errorf(util.SemanticError, tok, "the main function can't return a value",
			"Use nothing as the return type of main.")
	}
	p.fn.ReturnType, p.fn.ReturnedNative = typ, native
	p.state = stateAwaitOpenCurly
	return nil
}

// resolveType accepts a built-in type or the alias of an import seen
// earlier in the pass.
func (p *Parser) resolveType(tok token.Token) (token.Type, string, error) {
	if tok.Type == token.Unknown {
		if _, ok := p.result.ImportByAlias(tok.Value); !ok {
			return 0, "", util.Errorf(util.SemanticError, tok, "unknown type",
				"Import the type before using it.")
		}
		return token.Unknown, tok.Value, nil
	}
	if !token.IsDataType(tok.Type) {
		return 0, "", util.Errorf(util.SyntaxError, tok, "invalid data type",
			"Valid types are num, string, bool, nothing, num[], string[], bool[] and [discrete].")
	}
	return tok.Type, "", nil
}

func (p *Parser) body(tok token.Token) error {
	switch tok.Type {
	case token.CloseCurly:
		if p.depth == 0 {
			return p.closeFunction(tok)
		}
		p.depth--
	case token.OpenCurly:
		p.depth++
	case token.Return:
		if p.fn.ReturnType == token.Nothing {
			return util.Errorf(util.SemanticError, tok, "unexpected return value",
				"A function that returns nothing can't return a value.")
		}
		p.returned = true
	}
	p.fn.Body = append(p.fn.Body, tok)
	return nil
}

func (p *Parser) closeFunction(tok token.Token) error {
	if p.fn.ReturnType != token.Nothing && !p.returned {
		return util.Errorf(util.SemanticError, tok, "function doesn't return a value",
			fmt.Sprintf("The function declares a return type of %s, so it needs a return statement.", p.fn.ReturnTypeName()))
	}

	p.result.Functions[p.fn.Name] = p.fn
	if p.fn.Public {
		p.result.Exported[p.fn.Name] = p.fn
	}

	p.fn = nil
	p.paramName = token.Token{}
	p.public = false
	p.depth = 0
	p.returned = false
	p.state = stateOutside
	return nil
}

func (p *Parser) checkEnd() error {
	last := p.tokens[len(p.tokens)-1]
	switch p.state {
	case stateOutside:
		return nil
	case stateAwaitFun:
		return expectedFun(last).AtEnd()
	case stateBody:
		return util.Errorf(util.SyntaxError, last, "function body is never closed",
			"Close the function body with a curly brace.").AtEnd()
	}
	return util.Errorf(util.SyntaxError, last, "incomplete function declaration",
		"Finish the declaration and give it a body.").WithDetails("Expected " + p.state.expectation()).AtEnd()
}

func expectedFun(tok token.Token) *util.Error {
	return util.Errorf(util.SyntaxError, tok, "expected the keyword 'fun'",
		"Start the declaration with the 'fun' keyword.")
}

package lexer

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/zelix-lang/Zelix/pkg/token"
	"github.com/zelix-lang/Zelix/pkg/util"
)

// Characters that end the pending lexeme and form a token on their own.
const punctuation = ";,(){}:+->%<.=![]/|*^&"

var (
	numberPattern  = regexp.MustCompile(`^\d+(\.\d+)?$`)
	booleanPattern = regexp.MustCompile(`^(true|false)$`)
)

// Lexer scans a whole source file in one left-to-right pass. Multi-character
// operators and array types are not scanned greedily; they are recognized
// when their last character arrives by merging it with the tokens already
// emitted (see fuse).
type Lexer struct {
	source []rune
	file   string
	pos    int
	line   int
	column int

	pending []rune
	tokens  []token.Token

	inString       bool
	inEscape       bool
	inLineComment  bool
	inBlockComment bool
}

func NewLexer(file string, source []rune) *Lexer {
	if file != "" {
		file = filepath.Base(file)
	}
	return &Lexer{source: source, file: file, line: 1, column: 1}
}

// Tokenize is a shorthand for NewLexer(file, []rune(source)).Tokenize().
func Tokenize(file, source string) ([]token.Token, error) {
	return NewLexer(file, []rune(source)).Tokenize()
}

func (l *Lexer) Tokenize() ([]token.Token, error) {
	for !l.isAtEnd() {
		ch := l.advance()

		switch {
		case l.inBlockComment:
			if ch == '*' && l.peek() == '/' {
				l.advance()
				l.inBlockComment = false
			}
		case l.inLineComment:
			if ch == '\n' {
				l.inLineComment = false
			}
		case l.inString:
			l.stringChar(ch)
		case ch == '/' && l.peek() == '*':
			l.flush()
			l.advance()
			l.inBlockComment = true
		case ch == '/' && l.peek() == '/':
			// Text glued to the comment start is dropped with it.
			l.pending = l.pending[:0]
			l.advance()
			l.inLineComment = true
		case ch == '"':
			l.flush()
			l.inString = true
		case strings.ContainsRune(punctuation, ch):
			if ch == '.' && l.pendingIsNumeric() {
				l.pending = append(l.pending, ch)
				continue
			}
			l.flush()
			l.emit(l.classify(string(ch)))
		case unicode.IsSpace(ch):
			l.flush()
		default:
			l.pending = append(l.pending, ch)
		}
	}

	if l.inString {
		at := token.Token{File: l.file, Line: l.line, Column: l.column}
		if len(l.tokens) > 0 {
			at = l.tokens[len(l.tokens)-1]
		}
		return nil, util.Errorf(util.LexicalError, at, "unterminated string",
			"You need to close the string with a double quote.").AtEnd()
	}
	l.flush()

	return l.tokens, nil
}

func (l *Lexer) isAtEnd() bool { return l.pos >= len(l.source) }

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.pos]
}

// advance consumes one character. Line and column move before any token is
// built from it, so positions describe where the scanner stood at flush time.
func (l *Lexer) advance() rune {
	ch := l.source[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

// stringChar handles one character inside a string literal. Escapes are
// tracked only so that \" does not close the literal; they are not decoded.
func (l *Lexer) stringChar(ch rune) {
	switch {
	case ch == '"' && !l.inEscape:
		l.inString = false
		raw := string(l.pending)
		l.pending = l.pending[:0]
		l.tokens = append(l.tokens, token.Token{
			Type: token.StringLiteral, Value: raw, Payload: token.Text{Raw: raw},
			File: l.file, Line: l.line, Column: l.column,
		})
	case ch == '\\' && !l.inEscape:
		l.inEscape = true
		l.pending = append(l.pending, ch)
	default:
		l.inEscape = false
		l.pending = append(l.pending, ch)
	}
}

// pendingIsNumeric reports whether a '.' should extend the pending lexeme
// into a decimal rather than end it.
func (l *Lexer) pendingIsNumeric() bool {
	return len(l.pending) > 0 && l.pending[0] >= '0' && l.pending[0] <= '9'
}

func (l *Lexer) flush() {
	if len(l.pending) == 0 {
		return
	}
	l.emit(l.classify(string(l.pending)))
	l.pending = l.pending[:0]
}

func (l *Lexer) classify(lexeme string) token.Token {
	tok := token.Token{Value: lexeme, File: l.file, Line: l.line, Column: l.column}

	if typ, ok := token.Lexemes[lexeme]; ok {
		tok.Type = typ
		return tok
	}

	switch {
	case numberPattern.MatchString(lexeme):
		val, _ := strconv.ParseFloat(lexeme, 64)
		tok.Type, tok.Payload = token.NumLiteral, token.Number{Value: val}
	case booleanPattern.MatchString(lexeme):
		tok.Type, tok.Payload = token.BoolLiteral, token.Boolean{Value: lexeme == "true"}
	default:
		tok.Type, tok.Payload = token.Unknown, token.Ident{Name: lexeme}
	}
	return tok
}

// emit appends tok, first letting the look-back rules replace the most
// recent tokens with a single fused one.
func (l *Lexer) emit(tok token.Token) {
	if lexeme, n, ok := fuse(l.tokens, tok); ok {
		l.tokens = l.tokens[:len(l.tokens)-n]
		tok = l.classify(lexeme)
	}
	l.tokens = append(l.tokens, tok)
}

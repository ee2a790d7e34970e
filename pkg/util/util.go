package util

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/zelix-lang/Zelix/pkg/cli"
	"github.com/zelix-lang/Zelix/pkg/config"
	"github.com/zelix-lang/Zelix/pkg/token"
)

type Kind int

const (
	LexicalError Kind = iota
	SyntaxError
	SemanticError
	IOError
)

func (k Kind) String() string {
	switch k {
	case LexicalError:
		return "lexical error"
	case SyntaxError:
		return "syntax error"
	case SemanticError:
		return "semantic error"
	case IOError:
		return "i/o error"
	}
	return "error"
}

const NoTrace = "no trace available"

// Error is a fatal diagnostic. The pass that produced it stops immediately
// and returns no partial result.
type Error struct {
	Kind    Kind
	Title   string
	Help    []string
	Traces  []string
	Details []string
	Token   token.Token

	// AtEOF marks errors raised because the input ended early. More input
	// may turn them into a success.
	AtEOF bool
}

// Errorf builds a diagnostic anchored at tok.
func Errorf(kind Kind, tok token.Token, title string, help ...string) *Error {
	return &Error{Kind: kind, Title: title, Help: help, Traces: []string{tok.Trace()}, Token: tok}
}

// Untraced builds a diagnostic that has no token to point at.
func Untraced(kind Kind, title string, help ...string) *Error {
	return &Error{Kind: kind, Title: title, Help: help, Traces: []string{NoTrace}}
}

// AtEnd marks e as caused by the end of input and returns e.
func (e *Error) AtEnd() *Error {
	e.AtEOF = true
	return e
}

// IsIncomplete reports whether err only says that the input ended early.
func IsIncomplete(err error) bool {
	e, ok := AsError(err)
	return ok && e.AtEOF
}

// WithDetails appends free-text detail lines and returns e.
func (e *Error) WithDetails(details ...string) *Error {
	e.Details = append(e.Details, details...)
	return e
}

func (e *Error) Error() string {
	if len(e.Traces) > 0 && e.Traces[0] != NoTrace {
		return e.Traces[0] + ": " + e.Title
	}
	return e.Title
}

// AsError extracts the diagnostic carried by err, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Warning is a non-fatal diagnostic. Warnings never stop a pass.
type Warning struct {
	Kind    config.Warning
	Token   token.Token
	Message string
}

// SourceFileRecord tracks the name and content of a single source file.
type SourceFileRecord struct {
	Name    string
	Content []rune
}

// Reporter renders diagnostics. It never terminates the process; deciding
// the exit status is left to the caller.
type Reporter struct {
	out     io.Writer
	cfg     *config.Config
	width   int
	sources map[string][]rune

	errColor  *color.Color
	warnColor *color.Color
	infoColor *color.Color
	helpColor *color.Color
	dimColor  *color.Color
	caret     *color.Color
}

func NewReporter(out io.Writer, cfg *config.Config, width int) *Reporter {
	r := &Reporter{
		out:       out,
		cfg:       cfg,
		width:     width,
		sources:   make(map[string][]rune),
		errColor:  color.New(color.FgHiRed, color.Bold),
		warnColor: color.New(color.FgHiYellow, color.Bold),
		infoColor: color.New(color.FgHiMagenta),
		helpColor: color.New(color.FgHiBlue),
		dimColor:  color.New(color.FgHiBlack),
		caret:     color.New(color.FgGreen),
	}
	withColor := cfg.IsFeatureEnabled(config.FeatColor)
	for _, c := range []*color.Color{r.errColor, r.warnColor, r.infoColor, r.helpColor, r.dimColor, r.caret} {
		if withColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// AddSource registers file content so diagnostics can quote the offending
// line. Records are keyed by basename, matching token.Token.File.
func (r *Reporter) AddSource(rec SourceFileRecord) {
	name := rec.Name
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	r.sources[name] = rec.Content
}

// printErrorLine prints the source line and a caret under the position the
// token was recorded at.
func (r *Reporter) printErrorLine(tok token.Token) {
	if !r.cfg.IsFeatureEnabled(config.FeatSnippet) || tok.Line == 0 {
		return
	}
	content, ok := r.sources[tok.File]
	if !ok {
		return
	}

	lineNum := tok.Line
	lineStart := 0
	for i, ch := range content {
		if lineNum <= 1 {
			break
		}
		if ch == '\n' {
			lineNum--
			lineStart = i + 1
		}
	}
	if lineNum > 1 {
		return
	}

	lineEnd := len(content)
	for i := lineStart; i < len(content); i++ {
		if content[i] == '\n' {
			lineEnd = i
			break
		}
	}

	line := strings.TrimRight(string(content[lineStart:lineEnd]), "\r")
	fmt.Fprintf(r.out, "  %s\n", line)

	// Columns are recorded one past the scanner position.
	offset := tok.Column - 2
	if offset < 0 {
		offset = 0
	}
	fmt.Fprintf(r.out, "  %s%s\n", strings.Repeat(" ", offset), r.caret.Sprint("^"))
}

func (r *Reporter) printPrefixed(prefix string, c *color.Color, lines []string) {
	avail := r.width - len(prefix)
	for _, l := range lines {
		for _, wrapped := range cli.WrapText(l, avail) {
			fmt.Fprintf(r.out, "%s%s\n", c.Sprint(prefix), r.dimColor.Sprint(wrapped))
		}
	}
}

// Error renders err. Diagnostics get the full title, trace, detail and help
// layout; any other error is printed on one line.
func (r *Reporter) Error(err error) {
	e, ok := AsError(err)
	if !ok {
		fmt.Fprintf(r.out, "%s %v\n", r.errColor.Sprint("error:"), err)
		return
	}

	location := ""
	if len(e.Traces) > 0 && e.Traces[0] != NoTrace {
		location = e.Traces[0] + ": "
	}
	fmt.Fprintf(r.out, "%s%s %s\n", location, r.errColor.Sprint(e.Kind.String()+":"), e.Title)
	r.printErrorLine(e.Token)

	var info []string
	for _, trace := range e.Traces {
		info = append(info, "At "+trace)
	}
	info = append(info, e.Details...)
	r.printPrefixed("   [info] | ", r.infoColor, info)
	r.printPrefixed("   [help] | ", r.helpColor, e.Help)
}

// Warn renders w if its warning class is enabled.
func (r *Reporter) Warn(w Warning) {
	if !r.cfg.IsWarningEnabled(w.Kind) {
		return
	}
	fmt.Fprintf(r.out, "%s: %s %s [-W%s]\n", w.Token.Trace(), r.warnColor.Sprint("warning:"), w.Message, r.cfg.WarningName(w.Kind))
	r.printErrorLine(w.Token)
}

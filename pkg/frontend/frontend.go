// Package frontend chains the lexer, the declaration extractor and the lint
// pass over one source file.
package frontend

import (
	"fmt"
	"os"
	"time"

	"github.com/zelix-lang/Zelix/pkg/ast"
	"github.com/zelix-lang/Zelix/pkg/config"
	"github.com/zelix-lang/Zelix/pkg/lexer"
	"github.com/zelix-lang/Zelix/pkg/lint"
	"github.com/zelix-lang/Zelix/pkg/parser"
	"github.com/zelix-lang/Zelix/pkg/token"
	"github.com/zelix-lang/Zelix/pkg/util"
)

// Timings holds the wall time spent in each phase.
type Timings struct {
	Lex     time.Duration
	Extract time.Duration
	Lint    time.Duration
}

func (t Timings) Total() time.Duration { return t.Lex + t.Extract + t.Lint }

// Unit is one processed source file. When processing fails, Tokens and
// Result stay nil but File and Source are set so the caller can still quote
// the offending line.
type Unit struct {
	File     string
	Source   []rune
	Tokens   []token.Token
	Result   *ast.Result
	Warnings []util.Warning
	Timings  Timings
}

// Record returns the source record a util.Reporter needs for snippets.
func (u *Unit) Record() util.SourceFileRecord {
	return util.SourceFileRecord{Name: u.File, Content: u.Source}
}

// Process runs every phase over src. The first fatal diagnostic stops the
// pipeline.
func Process(cfg *config.Config, file, src string) (*Unit, error) {
	u := &Unit{File: file, Source: []rune(src)}

	start := time.Now()
	toks, err := lexer.NewLexer(file, u.Source).Tokenize()
	u.Timings.Lex = time.Since(start)
	if err != nil {
		return u, err
	}

	start = time.Now()
	res, err := parser.Extract(toks)
	u.Timings.Extract = time.Since(start)
	if err != nil {
		return u, err
	}
	u.Tokens, u.Result = toks, res

	start = time.Now()
	u.Warnings = lint.Check(cfg, res, file)
	u.Timings.Lint = time.Since(start)

	return u, nil
}

// Load reads path and processes it. A read failure is reported as an
// IOError diagnostic and yields a nil unit.
func Load(cfg *config.Config, path string) (*Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, util.Untraced(util.IOError, fmt.Sprintf("could not read '%s'", path),
			"Check that the file exists and is readable.").WithDetails(err.Error())
	}
	return Process(cfg, path, string(data))
}

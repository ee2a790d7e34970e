package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"github.com/zelix-lang/Zelix/pkg/lexer"
	"github.com/zelix-lang/Zelix/pkg/token"
	"github.com/zelix-lang/Zelix/pkg/util"
)

func tokensCommand(_ context.Context, cmd *cli.Command) error {
	stdout, stderr := cmd.Root().Writer, cmd.Root().ErrWriter
	path := cmd.Args().First()
	if path == "" {
		return errors.New("missing file argument; usage: zelix tokens <file.zx>")
	}

	cfg := newConfig(stderr)
	_, width := terminal(stderr)
	reporter := util.NewReporter(stderr, cfg, width)

	data, err := os.ReadFile(path)
	if err != nil {
		reporter.Error(util.Untraced(util.IOError, fmt.Sprintf("could not read '%s'", path)).WithDetails(err.Error()))
		return errReported
	}
	reporter.AddSource(util.SourceFileRecord{Name: path, Content: []rune(string(data))})

	toks, err := lexer.Tokenize(path, string(data))
	if err != nil {
		reporter.Error(err)
		return errReported
	}
	return printTokens(stdout, toks)
}

// printTokens writes one token per line: position, category and text.
func printTokens(w io.Writer, toks []token.Token) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, tok := range toks {
		fmt.Fprintf(tw, "%s\t%s\t%q\n", tok.Trace(), tok.Type, tok.Value)
	}
	return tw.Flush()
}

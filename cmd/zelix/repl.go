package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/urfave/cli/v3"
	zcli "github.com/zelix-lang/Zelix/pkg/cli"
	"github.com/zelix-lang/Zelix/pkg/config"
	"github.com/zelix-lang/Zelix/pkg/frontend"
	"github.com/zelix-lang/Zelix/pkg/lexer"
	"github.com/zelix-lang/Zelix/pkg/util"
)

const (
	historyFile = ".zelix_history"
	replFile    = "repl.zx"
	promptMain  = "zx> "
	promptCont  = "... "
)

const replHelp = `REPL commands:
  :list           List the functions declared so far
  :tokens <code>  Print the tokens of <code>
  :reset          Forget every declaration
  :quit           Exit the REPL
`

// session accumulates the declarations accepted so far. Every entry is
// checked together with them, so imports stay visible and redefinitions are
// caught.
type session struct {
	cfg     *config.Config
	entries []string
	last    *frontend.Unit
}

func newSession(cfg *config.Config) *session {
	return &session{cfg: cfg}
}

func (s *session) source(extra string) string {
	return strings.Join(append(append([]string(nil), s.entries...), extra), "\n")
}

// eval checks code on top of the session. On success code is kept and the
// signatures of the functions it declared are returned.
func (s *session) eval(code string) ([]string, *frontend.Unit, error) {
	u, err := frontend.Process(s.cfg, replFile, s.source(code))
	if err != nil {
		return nil, u, err
	}

	var added []string
	for _, name := range u.Result.Names() {
		if s.last == nil || s.last.Result.Functions[name] == nil {
			added = append(added, u.Result.Functions[name].Signature())
		}
	}
	s.entries = append(s.entries, code)
	s.last = u
	return added, u, nil
}

func (s *session) reset() {
	s.entries, s.last = nil, nil
}

func (s *session) list() []string {
	if s.last == nil {
		return nil
	}
	var sigs []string
	for _, name := range s.last.Result.Names() {
		sigs = append(sigs, s.last.Result.Functions[name].Signature())
	}
	return sigs
}

// incomplete reports whether code only fails because it has not ended yet.
func incomplete(code string) bool {
	_, err := frontend.Process(config.NewConfig(), replFile, code)
	return util.IsIncomplete(err)
}

func replCommand(_ context.Context, cmd *cli.Command) error {
	stdout, stderr := cmd.Root().Writer, cmd.Root().ErrWriter
	cfg := newConfig(stderr)
	s := newSession(cfg)
	_, width := terminal(stderr)

	fmt.Fprintf(stdout, "Zelix %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands.\n", version)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Fprintln(stdout)
			return nil
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if handleReplCommand(s, trimmed, stdout, stderr) {
				return nil
			}
			continue
		}

		added, u, err := s.eval(code)
		r := util.NewReporter(stderr, cfg, width)
		r.AddSource(u.Record())
		if err != nil {
			r.Error(err)
			continue
		}
		for _, w := range u.Warnings {
			r.Warn(w)
		}
		for _, sig := range added {
			fmt.Fprintln(stdout, zcli.Colorize(zcli.BrightGreen, sig))
		}
	}
}

// handleReplCommand runs one :command and reports whether the REPL should
// exit.
func handleReplCommand(s *session, line string, stdout, stderr io.Writer) (exit bool) {
	name, arg, _ := strings.Cut(line, " ")
	switch strings.ToLower(name) {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprint(stdout, replHelp)
	case ":reset":
		s.reset()
		zcli.Info(stdout, "Session cleared.")
	case ":list":
		for _, sig := range s.list() {
			fmt.Fprintln(stdout, sig)
		}
	case ":tokens":
		toks, err := lexer.Tokenize(replFile, arg)
		if err != nil {
			zcli.Error(stderr, err.Error())
			return false
		}
		_ = printTokens(stdout, toks)
	default:
		zcli.Warn(stderr, "Unknown command. Type :help for the list of commands.")
	}
	return false
}

// readByParseProbe keeps reading lines while the accumulated input is an
// unfinished declaration.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !incomplete(src) {
			return src, true
		}
	}
}

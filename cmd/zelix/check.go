package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	zcli "github.com/zelix-lang/Zelix/pkg/cli"
	"github.com/zelix-lang/Zelix/pkg/config"
	"github.com/zelix-lang/Zelix/pkg/frontend"
	"github.com/zelix-lang/Zelix/pkg/project"
	"github.com/zelix-lang/Zelix/pkg/util"
)

// terminal reports whether w is a terminal and how wide it is.
func terminal(w io.Writer) (bool, int) {
	f, ok := w.(*os.File)
	if !ok || !zcli.IsTerminal(f) {
		return false, 80
	}
	return true, zcli.TerminalWidth(f)
}

// commandFlags turns --warn/--feature values into the -W/-F grammar the
// config understands.
func commandFlags(cmd *cli.Command) []string {
	var flags []string
	for _, w := range cmd.StringSlice("warn") {
		flags = append(flags, "-W"+w)
	}
	for _, f := range cmd.StringSlice("feature") {
		flags = append(flags, "-F"+f)
	}
	if cmd.Bool("timer") {
		flags = append(flags, "-Ftimer")
	}
	return flags
}

func newConfig(stderr io.Writer) *config.Config {
	cfg := config.NewConfig()
	if tty, _ := terminal(stderr); !tty {
		cfg.SetFeature(config.FeatColor, false)
	}
	return cfg
}

func checkCommand(_ context.Context, cmd *cli.Command) error {
	stdout, stderr := cmd.Root().Writer, cmd.Root().ErrWriter
	cfg := newConfig(stderr)

	if cmd.Bool("list-flags") {
		for _, line := range cfg.Describe() {
			fmt.Fprintln(stdout, line)
		}
		return nil
	}

	target := cmd.Args().First()
	if target == "" {
		target = "."
	}
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("could not access '%s': %w", target, err)
	}

	var unit *frontend.Unit
	if info.IsDir() {
		var p *project.Project
		if p, err = project.Load(target); err == nil {
			if err = p.Configure(cfg, commandFlags(cmd)); err == nil {
				unit, err = p.Check(cfg)
			}
		}
	} else if err = cfg.ProcessFlags(commandFlags(cmd)); err == nil {
		unit, err = frontend.Load(cfg, target)
	}

	_, width := terminal(stderr)
	reporter := util.NewReporter(stderr, cfg, width)
	if unit != nil {
		reporter.AddSource(unit.Record())
	}
	if err != nil {
		reporter.Error(err)
		return errReported
	}

	for _, w := range unit.Warnings {
		reporter.Warn(w)
	}
	if cfg.IsFeatureEnabled(config.FeatTimer) {
		printTimings(stderr, unit.Timings)
	}

	if cmd.Bool("json") {
		data, err := unit.Summary().JSON()
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	res := unit.Result
	zcli.Info(stdout, fmt.Sprintf("%s: %d function(s), %d exported, %d import(s), %d warning(s)",
		unit.File, len(res.Functions), len(res.Exported), len(res.Imports), len(unit.Warnings)))
	return nil
}

func printTimings(w io.Writer, t frontend.Timings) {
	zcli.Info(w,
		fmt.Sprintf("Lexing      %v", t.Lex),
		fmt.Sprintf("Extracting  %v", t.Extract),
		fmt.Sprintf("Linting     %v", t.Lint),
		fmt.Sprintf("Total       %v", t.Total()),
	)
}

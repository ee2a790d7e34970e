package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/urfave/cli/v3"
	zcli "github.com/zelix-lang/Zelix/pkg/cli"
	"github.com/zelix-lang/Zelix/pkg/config"
	"github.com/zelix-lang/Zelix/pkg/project"
)

var (
	namePattern    = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	anyPattern     = regexp.MustCompile(`^.+$`)
)

type question struct {
	text     string
	fallback string
	pattern  *regexp.Regexp
	field    *string
}

func showHeader(w io.Writer) {
	fmt.Fprintln(w, zcli.Colorize(zcli.BrightPurple, "Zelix "+version).Bold())
	fmt.Fprintln(w, zcli.Colorize(zcli.BrightBlack, "This program comes with ABSOLUTELY NO WARRANTY. Type `zelix l` for details."))
	fmt.Fprintln(w)
}

func initCommand(ctx context.Context, cmd *cli.Command) error {
	stdout, stderr := cmd.Root().Writer, cmd.Root().ErrWriter
	showHeader(stdout)
	fmt.Fprintln(stdout, zcli.Colorize(zcli.BrightBlack,
		"This command will guide you through the process of creating a new Zelix project.\n"+
			"If you wish to exit the process at any time, press Ctrl+C or Esc."))
	fmt.Fprintln(stdout)

	target := cmd.Args().First()
	if target == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	m := &config.Manifest{MainScript: project.DefaultMainScript}
	questions := []question{
		{"Project name", filepath.Base(target), namePattern, &m.Name},
		{"Description", "A Zelix project", anyPattern, &m.Description},
		{"Version", "1.0.0", versionPattern, &m.Version},
		{"Author", "Zelix Developer", anyPattern, &m.Author},
		{"License", "GPL-3.0", anyPattern, &m.License},
		{"Repository", "https://github.com/zelix-lang/example", anyPattern, &m.Repository},
	}

	p := zcli.NewPrompter(stdout)
	for _, q := range questions {
		answer, err := p.Ask(q.text, q.fallback, q.pattern)
		if err != nil {
			return interrupted(stderr, err)
		}
		*q.field = answer
	}

	ok, err := p.Confirm("Create the project in "+target+"?", true)
	if err != nil {
		return interrupted(stderr, err)
	}
	if !ok {
		zcli.Warn(stderr, "Nothing was created.")
		return nil
	}

	spinner, err := zcli.NewSpinner(stdout, "Creating the project")
	if err != nil {
		return err
	}
	_ = spinner.Start()
	if err := project.Scaffold(target, m); err != nil {
		_ = spinner.StopFail()
		if errors.Is(err, project.ErrNotEmpty) {
			zcli.Error(stderr, "The target directory is not empty.")
			zcli.Help(stderr, "Pick an empty or missing directory, e.g. 'zelix init my_project'.")
			return errReported
		}
		return err
	}
	_ = spinner.Stop()

	wantGit := cmd.Bool("git")
	if !wantGit {
		if wantGit, err = p.Confirm("Initialize a git repository?", false); err != nil {
			return interrupted(stderr, err)
		}
	}
	if wantGit {
		if err := project.GitInit(ctx, target); err != nil {
			zcli.Warn(stderr, "Could not initialize a git repository: "+err.Error())
		}
	}

	zcli.Info(stdout, "Project created in "+target, "Run 'zelix check "+target+"' to check it.")
	return nil
}

func interrupted(w io.Writer, err error) error {
	if errors.Is(err, zcli.ErrInterrupted) {
		zcli.Error(w, "Process interrupted by the user")
		return errReported
	}
	return err
}

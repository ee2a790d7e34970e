package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	zcli "github.com/zelix-lang/Zelix/pkg/cli"
)

const version = "0.1.0"

// errReported is returned by commands that already printed their own
// diagnostics; main only has to pick the exit status.
var errReported = errors.New("reported")

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "zelix",
		Usage:   "Front end and project tool for the Zelix language",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "Checks a Zelix file or project",
				Aliases:   []string{"c"},
				ArgsUsage: "[file.zx | project dir]",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "warn",
						Aliases: []string{"W"},
						Usage:   "Enable or disable a warning (name, no-name, all, no-all)",
					},
					&cli.StringSliceFlag{
						Name:    "feature",
						Aliases: []string{"F"},
						Usage:   "Enable or disable a feature (name, no-name)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the extracted declarations as JSON",
					},
					&cli.BoolFlag{
						Name:    "timer",
						Usage:   "Prints the time taken for each step",
						Aliases: []string{"t"},
					},
					&cli.BoolFlag{
						Name:  "list-flags",
						Usage: "List every warning and feature with its default state",
					},
				},
				Action: checkCommand,
			},
			{
				Name:      "tokens",
				Usage:     "Prints the token stream of a Zelix file",
				Aliases:   []string{"t"},
				ArgsUsage: "<file.zx>",
				Action:    tokensCommand,
			},
			{
				Name:   "repl",
				Usage:  "Checks declarations interactively",
				Action: replCommand,
			},
			{
				Name:      "init",
				Usage:     "Creates a new Zelix project",
				Aliases:   []string{"i"},
				ArgsUsage: "[dir]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "git",
						Usage: "Initialize a git repository without asking",
					},
				},
				Action: initCommand,
			},
			{
				Name:    "license",
				Usage:   "Prints the license",
				Aliases: []string{"l"},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "full",
						Value:   false,
						Usage:   "Prints the full license",
						Aliases: []string{"f"},
					},
				},
				Action: licenseCommand,
			},
			{
				Name:  "version",
				Usage: "Prints the version",
				Action: func(_ context.Context, cmd *cli.Command) error {
					fmt.Fprintf(cmd.Root().Writer, "zelix %s\n", version)
					return nil
				},
			},
		},
	}
}

// run is the single place that turns an error into an exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := newApp()
	app.Writer, app.ErrWriter = stdout, stderr
	if err := app.Run(ctx, args); err != nil {
		if !errors.Is(err, errReported) {
			zcli.Error(stderr, err.Error())
		}
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

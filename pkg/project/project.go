// Package project loads and scaffolds Zelix projects: a directory holding a
// zelix.yml manifest and the entry script it names.
package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/zelix-lang/Zelix/pkg/config"
	"github.com/zelix-lang/Zelix/pkg/frontend"
	"github.com/zelix-lang/Zelix/pkg/util"
)

const DefaultMainScript = "src/main.zx"

const mainTemplate = `// Entry point of the project.
fun main() -> nothing {
}
`

var (
	ErrNotEmpty    = errors.New("the directory is not empty")
	ErrGitNotFound = errors.New("git is not installed")
)

type Project struct {
	Dir      string
	Manifest *config.Manifest
}

// MainPath is the absolute location of the entry script.
func (p *Project) MainPath() string {
	return filepath.Join(p.Dir, filepath.FromSlash(p.Manifest.MainScript))
}

// Load reads dir/zelix.yml and makes sure the entry script exists.
func Load(dir string) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	manifestPath := filepath.Join(abs, config.ManifestFile)
	m, err := config.LoadManifest(manifestPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, util.Untraced(util.IOError, "no "+config.ManifestFile+" found in "+abs,
			"Create a project with 'zelix init' or run the command from a project directory.")
	case errors.Is(err, config.ErrNoMainScript):
		return nil, util.Untraced(util.IOError, "invalid "+config.ManifestFile,
			"Add a main_script field pointing to the entry script.")
	case err != nil:
		return nil, util.Untraced(util.IOError, "invalid "+config.ManifestFile).WithDetails(err.Error())
	}

	p := &Project{Dir: abs, Manifest: m}
	if _, err := os.Stat(p.MainPath()); err != nil {
		return nil, util.Untraced(util.IOError, fmt.Sprintf("main script '%s' does not exist", m.MainScript),
			"Fix the main_script field of "+config.ManifestFile+".")
	}
	return p, nil
}

// Configure applies the manifest's flags to cfg, then overrides, so flags
// given on the command line win over the manifest.
func (p *Project) Configure(cfg *config.Config, overrides []string) error {
	if err := p.Manifest.Apply(cfg); err != nil {
		return util.Untraced(util.IOError, "invalid flags in "+config.ManifestFile).WithDetails(err.Error())
	}
	return cfg.ProcessFlags(overrides)
}

// Check runs the front end over the entry script. The entry script must
// declare main.
func (p *Project) Check(cfg *config.Config) (*frontend.Unit, error) {
	u, err := frontend.Load(cfg, p.MainPath())
	if err != nil {
		return u, err
	}
	if _, ok := u.Result.Functions["main"]; !ok {
		return u, util.Untraced(util.SemanticError, "no main function",
			"The entry script must declare 'fun main() -> nothing { }'.").WithDetails("In " + p.Manifest.MainScript)
	}
	return u, nil
}

// Scaffold creates a new project in dir. dir must be missing or empty; a
// directory created here is removed again if any later step fails.
func Scaffold(dir string, m *config.Manifest) (err error) {
	created, err := prepareDir(dir)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil && created {
			os.RemoveAll(dir)
		}
	}()

	if m.MainScript == "" {
		m.MainScript = DefaultMainScript
	}
	data, err := m.Marshal()
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, config.ManifestFile), data, 0o644); err != nil {
		return err
	}

	mainPath := filepath.Join(dir, filepath.FromSlash(m.MainScript))
	if err := os.MkdirAll(filepath.Dir(mainPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(mainPath, []byte(mainTemplate), 0o644)
}

func prepareDir(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return true, os.MkdirAll(dir, 0o755)
	case err != nil:
		return false, err
	case len(entries) > 0:
		return false, fmt.Errorf("%s: %w", dir, ErrNotEmpty)
	}
	return false, nil
}

// GitInit initializes a repository in dir.
func GitInit(ctx context.Context, dir string) error {
	git, err := exec.LookPath("git")
	if err != nil {
		return ErrGitNotFound
	}
	cmd := exec.CommandContext(ctx, git, "init", "--quiet")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git init: %w: %s", err, out)
	}
	return nil
}

// Package lint reports non-fatal issues in an extraction result. It never
// fails; disabled warning classes are skipped entirely.
package lint

import (
	"fmt"
	"regexp"

	"github.com/zelix-lang/Zelix/pkg/ast"
	"github.com/zelix-lang/Zelix/pkg/config"
	"github.com/zelix-lang/Zelix/pkg/token"
	"github.com/zelix-lang/Zelix/pkg/util"
)

var snakeCase = regexp.MustCompile(`^[a-z0-9_]+(_[a-z0-9]+)*$`)

type checker struct {
	cfg      *config.Config
	res      *ast.Result
	file     string
	warnings []util.Warning
}

// Check runs every enabled warning class over res. file anchors warnings
// that have no better token, such as a missing main function.
func Check(cfg *config.Config, res *ast.Result, file string) []util.Warning {
	c := &checker{cfg: cfg, res: res, file: file}
	c.functions()
	c.imports()
	c.noMain()
	return c.warnings
}

func (c *checker) warn(kind config.Warning, tok token.Token, format string, args ...interface{}) {
	if !c.cfg.IsWarningEnabled(kind) {
		return
	}
	c.warnings = append(c.warnings, util.Warning{Kind: kind, Token: tok, Message: fmt.Sprintf(format, args...)})
}

func (c *checker) functions() {
	for _, name := range c.res.Names() {
		fn := c.res.Functions[name]
		if !snakeCase.MatchString(name) {
			c.warn(config.WarnNameStyle, fn.Tok, "function '%s' should be snake_case", name)
		}
		if len(fn.Body) == 0 && name != "main" {
			c.warn(config.WarnEmptyBody, fn.Tok, "function '%s' has an empty body", name)
		}
	}
}

func (c *checker) imports() {
	bound := make(map[string]ast.Import)
	for _, imp := range c.res.Imports {
		if prev, ok := bound[imp.Alias]; ok {
			c.warn(config.WarnDuplicateImport, imp.Tok, "'%s' is already imported from \"%s\" at %s",
				imp.Alias, prev.SourcePath, prev.Tok.Trace())
		}
		bound[imp.Alias] = imp
	}

	used := c.referencedNames()
	reported := make(map[string]bool)
	for _, imp := range c.res.Imports {
		if used[imp.Alias] || reported[imp.Alias] {
			continue
		}
		reported[imp.Alias] = true
		c.warn(config.WarnUnusedImport, imp.Tok, "'%s' is imported but never used", imp.Alias)
	}
}

// referencedNames collects every imported type named in a signature and
// every identifier appearing in a body.
func (c *checker) referencedNames() map[string]bool {
	used := make(map[string]bool)
	for _, fn := range c.res.Functions {
		if fn.ReturnType == token.Unknown {
			used[fn.ReturnedNative] = true
		}
		for _, p := range fn.Parameters {
			if p.Type == token.Unknown {
				used[p.NativeType] = true
			}
		}
		for _, tok := range fn.Body {
			if tok.Type == token.Unknown {
				used[tok.Value] = true
			}
		}
	}
	return used
}

func (c *checker) noMain() {
	if _, ok := c.res.Functions["main"]; ok {
		return
	}
	c.warn(config.WarnNoMain, token.New(token.Unknown, "", c.file, 1, 1), "no main function declared")
}

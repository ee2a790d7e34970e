package config

import (
	"fmt"
	"sort"
	"strings"
)

type Feature int

const (
	FeatColor Feature = iota
	FeatSnippet
	FeatTimer
	FeatCount
)

type Warning int

const (
	WarnNameStyle Warning = iota
	WarnEmptyBody
	WarnUnusedImport
	WarnDuplicateImport
	WarnNoMain
	WarnCount
)

type Info struct {
	Name        string
	Enabled     bool
	Description string
}

type Config struct {
	Features   map[Feature]Info
	Warnings   map[Warning]Info
	FeatureMap map[string]Feature
	WarningMap map[string]Warning
}

func NewConfig() *Config {
	cfg := &Config{
		Features:   make(map[Feature]Info),
		Warnings:   make(map[Warning]Info),
		FeatureMap: make(map[string]Feature),
		WarningMap: make(map[string]Warning),
	}

	features := map[Feature]Info{
		FeatColor:   {"color", true, "Colorize diagnostics."},
		FeatSnippet: {"snippet", true, "Print the offending source line under each diagnostic."},
		FeatTimer:   {"timer", false, "Print the time taken by each front-end phase."},
	}

	warnings := map[Warning]Info{
		WarnNameStyle:       {"name-style", true, "Warn when a function name is not snake_case."},
		WarnEmptyBody:       {"empty-body", true, "Warn when a function body is empty."},
		WarnUnusedImport:    {"unused-import", true, "Warn when an imported name is never referenced."},
		WarnDuplicateImport: {"duplicate-import", true, "Warn when an import rebinds an alias already in scope."},
		WarnNoMain:          {"no-main", false, "Warn when a checked file has no main function."},
	}

	cfg.Features, cfg.Warnings = features, warnings
	for ft, info := range features {
		cfg.FeatureMap[info.Name] = ft
	}
	for wt, info := range warnings {
		cfg.WarningMap[info.Name] = wt
	}

	return cfg
}

func (c *Config) SetFeature(ft Feature, enabled bool) {
	if info, ok := c.Features[ft]; ok {
		info.Enabled = enabled
		c.Features[ft] = info
	}
}

func (c *Config) IsFeatureEnabled(ft Feature) bool { return c.Features[ft].Enabled }

func (c *Config) SetWarning(wt Warning, enabled bool) {
	if info, ok := c.Warnings[wt]; ok {
		info.Enabled = enabled
		c.Warnings[wt] = info
	}
}

func (c *Config) IsWarningEnabled(wt Warning) bool { return c.Warnings[wt].Enabled }

// WarningName returns the flag spelling of wt, as shown in [-Wname] suffixes.
func (c *Config) WarningName(wt Warning) string { return c.Warnings[wt].Name }

// applyFlag understands -Wname, -Wno-name, -Wall, -Wno-all, -Fname and
// -Fno-name. A bare name is treated as a warning.
func (c *Config) applyFlag(flag string) error {
	trimmed := strings.TrimPrefix(flag, "-")
	isNo := strings.HasPrefix(trimmed, "Wno-") || strings.HasPrefix(trimmed, "Fno-")
	enable := !isNo

	// spelled is the name as written, used in error messages.
	var name, spelled string
	var isWarning bool

	switch {
	case strings.HasPrefix(trimmed, "W"):
		spelled = strings.TrimPrefix(trimmed, "W")
		isWarning = true
	case strings.HasPrefix(trimmed, "F"):
		spelled = strings.TrimPrefix(trimmed, "F")
	default:
		spelled = trimmed
		isWarning = true
	}
	name = spelled
	if isNo {
		name = strings.TrimPrefix(spelled, "no-")
	}

	if name == "all" && isWarning {
		for i := Warning(0); i < WarnCount; i++ {
			c.SetWarning(i, enable)
		}
		return nil
	}

	if isWarning {
		w, ok := c.WarningMap[name]
		if !ok {
			return fmt.Errorf("unknown warning '%s'", spelled)
		}
		c.SetWarning(w, enable)
		return nil
	}
	f, ok := c.FeatureMap[name]
	if !ok {
		return fmt.Errorf("unknown feature '%s'", spelled)
	}
	c.SetFeature(f, enable)
	return nil
}

// ProcessFlags applies flags in two passes so that -Wall and -Wno-all never
// override a more specific flag regardless of their position.
func (c *Config) ProcessFlags(flags []string) error {
	isGlobal := func(f string) bool {
		f = strings.TrimPrefix(f, "-")
		return f == "Wall" || f == "Wno-all"
	}
	for _, f := range flags {
		if isGlobal(f) {
			if err := c.applyFlag(f); err != nil {
				return err
			}
		}
	}
	for _, f := range flags {
		if !isGlobal(f) {
			if err := c.applyFlag(f); err != nil {
				return err
			}
		}
	}
	return nil
}

// ProcessDirectiveFlags applies a whitespace separated flag string, such as
// the one carried by a project manifest.
func (c *Config) ProcessDirectiveFlags(flagStr string) error {
	return c.ProcessFlags(strings.Fields(flagStr))
}

// Describe lists every warning and feature with its state, sorted by name.
func (c *Config) Describe() []string {
	var lines []string
	for _, info := range c.Warnings {
		lines = append(lines, describe("-W", info))
	}
	for _, info := range c.Features {
		lines = append(lines, describe("-F", info))
	}
	sort.Strings(lines)
	return lines
}

func describe(prefix string, info Info) string {
	state := "-"
	if info.Enabled {
		state = "x"
	}
	return fmt.Sprintf("%s%-18s |%s| %s", prefix, info.Name, state, info.Description)
}

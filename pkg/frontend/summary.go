package frontend

import (
	"encoding/json"
	"path/filepath"
)

type ParamSummary struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type FunctionSummary struct {
	Name       string         `json:"name"`
	Public     bool           `json:"public"`
	Parameters []ParamSummary `json:"parameters"`
	Returns    string         `json:"returns"`
	BodyTokens int            `json:"body_tokens"`
	Position   string         `json:"position"`
}

type ImportSummary struct {
	Path         string `json:"path"`
	Alias        string `json:"alias"`
	OriginalName string `json:"original_name"`
}

type WarningSummary struct {
	Position string `json:"position"`
	Message  string `json:"message"`
}

// Summary is the stable, serializable view of a unit printed by
// `zelix check --json` and compared by the golden runner.
type Summary struct {
	File      string            `json:"file"`
	Functions []FunctionSummary `json:"functions"`
	Imports   []ImportSummary   `json:"imports"`
	Exported  []string          `json:"exported"`
	Warnings  []WarningSummary  `json:"warnings,omitempty"`
}

// Summary lists functions sorted by name and imports in source order. It
// must only be called on a unit that processed successfully.
func (u *Unit) Summary() Summary {
	s := Summary{
		File:      filepath.Base(u.File),
		Functions: []FunctionSummary{},
		Imports:   []ImportSummary{},
		Exported:  []string{},
	}
	for _, name := range u.Result.Names() {
		fn := u.Result.Functions[name]
		params := []ParamSummary{}
		for _, p := range fn.Parameters {
			params = append(params, ParamSummary{Name: p.Name, Type: p.TypeName()})
		}
		s.Functions = append(s.Functions, FunctionSummary{
			Name:       name,
			Public:     fn.Public,
			Parameters: params,
			Returns:    fn.ReturnTypeName(),
			BodyTokens: len(fn.Body),
			Position:   fn.Tok.Trace(),
		})
		if fn.Public {
			s.Exported = append(s.Exported, name)
		}
	}
	for _, imp := range u.Result.Imports {
		s.Imports = append(s.Imports, ImportSummary{Path: imp.SourcePath, Alias: imp.Alias, OriginalName: imp.OriginalName})
	}
	for _, w := range u.Warnings {
		s.Warnings = append(s.Warnings, WarningSummary{Position: w.Token.Trace(), Message: w.Message})
	}
	return s
}

// JSON renders the summary indented, with a trailing newline.
func (s Summary) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

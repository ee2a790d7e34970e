package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const ManifestFile = "zelix.yml"

const manifestBanner = "# ---------------------------------------------------\n" +
	"#   This file is generated by the Zelix CLI.\n" +
	"#   Feel free to modify the file to suit your needs.\n" +
	"# ---------------------------------------------------\n\n"

// Manifest is the project description stored in zelix.yml.
type Manifest struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Version     string   `yaml:"version"`
	Author      string   `yaml:"author"`
	License     string   `yaml:"license"`
	Repository  string   `yaml:"repository"`
	MainScript  string   `yaml:"main_script"`
	Flags       []string `yaml:"flags,omitempty"`
}

var ErrNoMainScript = errors.New("the manifest does not contain a main_script field")

func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ManifestFile, err)
	}
	if m.MainScript == "" {
		return nil, ErrNoMainScript
	}
	return &m, nil
}

func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseManifest(data)
}

// Marshal renders the manifest with the generated-file banner on top.
func (m *Manifest) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, err
	}
	return append([]byte(manifestBanner), data...), nil
}

// Apply feeds the manifest's flags into cfg.
func (m *Manifest) Apply(cfg *Config) error {
	if err := cfg.ProcessFlags(m.Flags); err != nil {
		return fmt.Errorf("%s: %w", ManifestFile, err)
	}
	return nil
}

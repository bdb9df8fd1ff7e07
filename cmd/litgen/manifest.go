package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/saylorsolutions/litcrypt/cmd/litgen/internal/tmpl"
	"gopkg.in/yaml.v3"
)

var errInvalidManifest = errors.New("invalid manifest")

// manifest lists the literals for one generated file.
type manifest struct {
	Package  string          `yaml:"package"`
	Prefix   string          `yaml:"prefix"`
	Output   string          `yaml:"output"`
	Exposed  bool            `yaml:"exposed"`
	Literals []manifestEntry `yaml:"literals"`
}

// manifestEntry sets exactly one of Literal or Env.
// Literal is Go source text for a single string literal, for example '"text"' or '`c:\path`'.
type manifestEntry struct {
	Name    string `yaml:"name"`
	Literal string `yaml:"literal"`
	Env     string `yaml:"env"`
}

func loadManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := new(manifest)
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errInvalidManifest, path, err)
	}
	return m, nil
}

func (m *manifest) paramOpts() ([]tmpl.ParamOpt, error) {
	opts := make([]tmpl.ParamOpt, 0, len(m.Literals)+2)
	opts = append(opts, tmpl.PackageName(m.Package), tmpl.HelperPrefix(m.Prefix))
	for i, e := range m.Literals {
		switch {
		case len(e.Name) == 0:
			return nil, fmt.Errorf("%w: entry %d has no name", errInvalidManifest, i)
		case len(e.Literal) > 0 && len(e.Env) > 0:
			return nil, fmt.Errorf("%w: %s sets both literal and env", errInvalidManifest, e.Name)
		case len(e.Env) > 0:
			opts = append(opts, tmpl.AddEnv(e.Name, e.Env))
		default:
			// An empty literal is still parsed, so it's reported as a missing argument.
			opts = append(opts, tmpl.AddLiteral(e.Name, e.Literal))
		}
	}
	return opts, nil
}

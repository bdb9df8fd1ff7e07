package tmpl

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
	"unicode"

	"github.com/saylorsolutions/litcrypt/pkg/litcrypt"
)

const (
	// DefaultPrefix names the decoder helpers and key declared in each generated file.
	DefaultPrefix = "litcrypt"
)

var (
	//go:embed litcrypt_embed.go.tmpl
	tmplText     string
	tmplTemplate = template.Must(template.New("template").Parse(tmplText))

	ErrInvalidSite = errors.New("invalid site")
)

type SiteParams struct {
	FuncName   string
	DataString string
	EnvVar     string
}

type Params struct {
	Package     string
	Exposed     bool
	Prefix      string
	KeyString   string
	Fingerprint string
	Sites       []SiteParams

	entries []litcrypt.Entry
}

// ParamOpt operates on Params in a standard and predictable way, and is used in Generate and GenerateFile.
// If any ParamOpt returns an error, then generation ceases and the error is returned.
type ParamOpt = func(params *Params) error

// ExposeFunctions indicates that generated accessor functions should be exposed.
func ExposeFunctions(val ...bool) ParamOpt {
	return func(params *Params) error {
		if len(val) > 0 {
			params.Exposed = val[0]
			return nil
		}
		params.Exposed = true
		return nil
	}
}

// PackageName specifies the package name of the generated file.
// This is useful for cases where the expected package name doesn't match the name of the containing directory.
func PackageName(name string) ParamOpt {
	name = strings.TrimSpace(name)
	return func(params *Params) error {
		if len(name) == 0 {
			return nil
		}
		params.Package = name
		return nil
	}
}

// HelperPrefix sets the prefix of the decoder helpers and key declared in the generated file.
// Each generated file in a package needs its own prefix, since the declarations would collide otherwise.
// The prefix must be an unexported Go identifier.
func HelperPrefix(prefix string) ParamOpt {
	prefix = strings.TrimSpace(prefix)
	return func(params *Params) error {
		if len(prefix) == 0 {
			return nil
		}
		if !token.IsIdentifier(prefix) || token.IsExported(prefix) {
			return fmt.Errorf("%w: helper prefix %q must be an unexported identifier", ErrInvalidSite, prefix)
		}
		params.Prefix = prefix
		return nil
	}
}

// AddLiteral adds a site named name, screening src.
// src must be exactly one Go string literal, either quoted or raw.
func AddLiteral(name, src string) ParamOpt {
	return func(params *Params) error {
		lit, err := litcrypt.ParseLiteral(src)
		if err != nil {
			return fmt.Errorf("literal for %s: %w", name, err)
		}
		params.entries = append(params.entries, litcrypt.LiteralEntry(name, lit))
		return nil
	}
}

// AddEnv adds a site named name, screening the current value of the environment variable varName.
func AddEnv(name, varName string) ParamOpt {
	return func(params *Params) error {
		if !envNamePattern.MatchString(varName) {
			return fmt.Errorf("%w: %q is not a valid environment variable name for %s", ErrInvalidSite, varName, name)
		}
		params.entries = append(params.entries, litcrypt.EnvEntry(name, varName))
		return nil
	}
}

// AddEntries adds already constructed entries.
func AddEntries(entries ...litcrypt.Entry) ParamOpt {
	return func(params *Params) error {
		params.entries = append(params.entries, entries...)
		return nil
	}
}

// Entries applies opts and returns the entries they add, for emitters other than Go source.
func Entries(opts ...ParamOpt) ([]litcrypt.Entry, error) {
	params := new(Params)
	for _, opt := range opts {
		if err := opt(params); err != nil {
			return nil, err
		}
	}
	return params.entries, nil
}

// Generate renders Go source declaring the session's decoder and one accessor function per site.
// Every site is screened with the key of sess, which is declared once in the output.
func Generate(out io.Writer, sess *litcrypt.Session, opts ...ParamOpt) error {
	params := &Params{
		Prefix: DefaultPrefix,
	}
	if err := populateContextData(params); err != nil {
		return err
	}
	for _, opt := range opts {
		if err := opt(params); err != nil {
			return err
		}
	}

	bundle, err := sess.Bundle(params.entries...)
	if err != nil {
		return err
	}
	if err := populateBundleData(params, bundle); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmplTemplate.Execute(&buf, params); err != nil {
		return err
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("generated source is invalid: %w", err)
	}
	_, err = out.Write(src)
	return err
}

// GenerateFile is like Generate, but writes to the file at path.
// Nothing is written if generation fails.
func GenerateFile(path string, sess *litcrypt.Session, opts ...ParamOpt) error {
	var buf bytes.Buffer
	if err := Generate(&buf, sess, opts...); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

var (
	packageCleansePattern = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	envNamePattern        = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	reservedFuncNames     = map[string]bool{"init": true, "main": true}
)

func populateContextData(params *Params) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	params.Package = packageCleansePattern.ReplaceAllString(filepath.Base(cwd), "_")
	return nil
}

func populateBundleData(params *Params, bundle *litcrypt.Bundle) error {
	params.KeyString = fmt.Sprintf("%#v", bundle.ObfuscatedKey)
	params.Fingerprint = bundle.Fingerprint

	envVars := map[string]string{}
	for _, e := range params.entries {
		if varName, ok := e.EnvVar(); ok {
			envVars[e.Name] = varName
		}
	}
	seen := map[string]string{}
	params.Sites = make([]SiteParams, 0, len(bundle.Sites))
	for _, site := range bundle.Sites {
		funcName := siteFuncName(site.Name, params.Exposed)
		switch {
		case !token.IsIdentifier(funcName):
			return fmt.Errorf("%w: %s generates %s, which is not a valid function name", ErrInvalidSite, site.Name, funcName)
		case reservedFuncNames[funcName]:
			return fmt.Errorf("%w: %s generates the reserved function name %s", ErrInvalidSite, site.Name, funcName)
		case strings.HasPrefix(strings.ToLower(funcName), strings.ToLower(params.Prefix)):
			return fmt.Errorf("%w: %s uses the helper prefix %q", ErrInvalidSite, site.Name, params.Prefix)
		}
		if other, ok := seen[funcName]; ok {
			return fmt.Errorf("%w: %s and %s both generate %s", ErrInvalidSite, other, site.Name, funcName)
		}
		seen[funcName] = site.Name
		params.Sites = append(params.Sites, SiteParams{
			FuncName:   funcName,
			DataString: fmt.Sprintf("%#v", site.Ciphertext),
			EnvVar:     envVars[site.Name],
		})
	}
	return nil
}

func siteFuncName(name string, exposed bool) string {
	if exposed {
		return unicap(name)
	}
	return uncap(name)
}

func unicap(s string) string {
	return mapFirst(s, unicode.ToUpper)
}

func uncap(s string) string {
	return mapFirst(s, unicode.ToLower)
}

func mapFirst(s string, fn func(rune) rune) string {
	runes := []rune(s)
	switch len(runes) {
	case 0:
		return ""
	case 1:
		return string(fn(runes[0]))
	default:
		return string(append([]rune{fn(runes[0])}, runes[1:]...))
	}
}

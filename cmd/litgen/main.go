package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/saylorsolutions/litcrypt/cmd/internal"
	"github.com/saylorsolutions/litcrypt/cmd/litgen/internal/tmpl"
	"github.com/saylorsolutions/litcrypt/pkg/litcrypt"
	flag "github.com/spf13/pflag"
)

var version = "dev"

const (
	defaultGoOutput = "litcrypt_gen.go"
	defaultIROutput = "litcrypt_gen.lcir"

	formatGo = "go"
	formatIR = "ir"
)

var errUsage = errors.New("usage error")

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		internal.Fatal("%v", err)
	}
}

func run(args []string) error {
	var (
		helpFlag       bool
		versionFlag    bool
		exposedFlag    bool
		requireKeyFlag bool
		verboseFlag    bool
		packageFlag    string
		prefixFlag     string
		outputFlag     string
		keyFlag        string
		manifestFlag   string
		formatFlag     string
		envFlags       []string
	)
	flags := flag.NewFlagSet("litgen", flag.ContinueOnError)
	flags.SetOutput(internal.Output)
	flags.BoolVarP(&helpFlag, "help", "h", false, "Prints this usage information.")
	flags.BoolVar(&versionFlag, "version", false, "Prints the version of litgen.")
	flags.BoolVarP(&exposedFlag, "exposed", "E", false, "Make the generated accessor functions exposed from the file. It's recommended to only expose from within an internal package.")
	flags.BoolVar(&requireKeyFlag, "require-key", false, "Fail if "+litcrypt.KeyEnvVar+" is not set (and no --key is given) instead of generating a random key.")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "Log diagnostic information to stderr.")
	flags.StringVarP(&packageFlag, "package", "p", "", "Package name of the generated file. Defaults to the name of the current directory.")
	flags.StringVar(&prefixFlag, "prefix", "", fmt.Sprintf("Prefix of the decoder helpers declared in the generated file. Defaults to %q; set a distinct prefix for each generated file in a package.", tmpl.DefaultPrefix))
	flags.StringVarP(&outputFlag, "output", "o", "", fmt.Sprintf("Output file. Defaults to %s, or %s with --format=%s.", defaultGoOutput, defaultIROutput, formatIR))
	flags.StringVarP(&keyFlag, "key", "k", "", "Key to use when "+litcrypt.KeyEnvVar+" is not set.")
	flags.StringVarP(&manifestFlag, "file", "f", "", "YAML manifest listing the literals to generate.")
	flags.StringVar(&formatFlag, "format", formatGo, fmt.Sprintf("Output format, %q for Go source or %q for a binary literal bundle.", formatGo, formatIR))
	flags.StringArrayVarP(&envFlags, "env", "e", nil, "NAME=VAR screens the build time value of environment variable VAR as NAME. May be repeated.")
	flags.Usage = func() {
		internal.Echo(`
litgen generates Go code that hides string literals from static inspection of a compiled binary. This pairs well with go:generate comments.
Each literal is XOR screened at generation time with a session key, and the generated file declares the obfuscated key once along with a small decoder.
Every literal becomes a function returning the original string, decoded on demand.

USAGE:  litgen [FLAGS] [NAME=LITERAL ...]

ARGS:
    NAME is the name of the generated function for the literal.
    LITERAL is exactly one Go string literal, quoted or raw. Remember to quote it for your shell, for example Greeting='"hello"' or Path='`+"`"+`c:\dir`+"`"+`'.

FLAGS:
%s
KEYS:
    The key is taken from %s if it's set, even if it's empty, which leaves literals unscreened.
Otherwise --key is used, and without either a random %d byte key is generated for this run.
Set a stable key for reproducible builds.

SECURITY:
    This is not encryption, this is obfuscation, and they are very different things!
XOR screening only hides literals from passive binary analysis, since the key is embedded right next to the screened data.
`, flags.FlagUsages(), litcrypt.KeyEnvVar, litcrypt.SessionKeyLen)
	}
	if len(args) == 0 {
		flags.Usage()
		return flag.ErrHelp
	}
	if err := flags.Parse(args); err != nil {
		flags.Usage()
		return fmt.Errorf("error parsing flags: %w", err)
	}
	if helpFlag {
		flags.Usage()
		return flag.ErrHelp
	}
	if versionFlag {
		internal.Echo("litgen %s", version)
		return flag.ErrHelp
	}
	log := internal.NewLogger("litgen", verboseFlag)

	var opts []tmpl.ParamOpt
	if len(manifestFlag) > 0 {
		m, err := loadManifest(manifestFlag)
		if err != nil {
			return err
		}
		mOpts, err := m.paramOpts()
		if err != nil {
			return err
		}
		opts = append(opts, mOpts...)
		if !flags.Changed("exposed") {
			exposedFlag = m.Exposed
		}
		if len(outputFlag) == 0 {
			outputFlag = m.Output
		}
		log.Debug("loaded manifest", "path", manifestFlag, "entries", len(m.Literals))
	}
	for _, arg := range flags.Args() {
		name, src, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("%w: argument %q must be NAME=LITERAL", errUsage, arg)
		}
		opts = append(opts, tmpl.AddLiteral(name, src))
	}
	for _, arg := range envFlags {
		name, varName, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("%w: --env %q must be NAME=VAR", errUsage, arg)
		}
		opts = append(opts, tmpl.AddEnv(name, varName))
	}
	if len(opts) == 0 {
		return fmt.Errorf("%w: no literals given, pass NAME=LITERAL arguments or --file", errUsage)
	}
	opts = append(opts, tmpl.PackageName(packageFlag), tmpl.HelperPrefix(prefixFlag), tmpl.ExposeFunctions(exposedFlag))

	var sessOpts []litcrypt.SessionOpt
	if flags.Changed("key") {
		sessOpts = append(sessOpts, litcrypt.FallbackKey(keyFlag))
	}
	if requireKeyFlag {
		sessOpts = append(sessOpts, litcrypt.RequireEnvKey())
	}
	sess, err := litcrypt.NewSession(sessOpts...)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Close()
	}()
	fp, err := sess.Fingerprint()
	if err != nil {
		return err
	}
	if _, fromEnv := os.LookupEnv(litcrypt.KeyEnvVar); !fromEnv && !flags.Changed("key") {
		log.Warn("using a random session key, output will differ between runs", "env", litcrypt.KeyEnvVar)
	}
	log.Debug("resolved session key", "fingerprint", fp)

	switch formatFlag {
	case formatGo:
		if len(outputFlag) == 0 {
			outputFlag = defaultGoOutput
		}
		if err := tmpl.GenerateFile(outputFlag, sess, opts...); err != nil {
			return fmt.Errorf("failed to generate file: %w", err)
		}
	case formatIR:
		if len(outputFlag) == 0 {
			outputFlag = defaultIROutput
		}
		if err := writeBundle(outputFlag, sess, opts...); err != nil {
			return fmt.Errorf("failed to generate bundle: %w", err)
		}
	default:
		return fmt.Errorf("%w: unknown format %q", errUsage, formatFlag)
	}
	log.Debug("generated output", "path", outputFlag, "format", formatFlag, "fingerprint", fp)
	return nil
}

func writeBundle(path string, sess *litcrypt.Session, opts ...tmpl.ParamOpt) error {
	entries, err := tmpl.Entries(opts...)
	if err != nil {
		return err
	}
	bundle, err := sess.Bundle(entries...)
	if err != nil {
		return err
	}
	data, err := bundle.MarshalBinary()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

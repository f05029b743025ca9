package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	flag "github.com/spf13/pflag"

	eqn2vec "github.com/alnah/go-eqn2vec"
	"github.com/alnah/go-eqn2vec/internal/config"
	"github.com/alnah/go-eqn2vec/internal/hints"
)

// runConvertCmd parses flags, runs the conversion, and maps the outcome to
// an exit code. Errors are printed with an actionable hint when one applies.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positional []string, flags *convertFlags, env *Environment) error {
	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	// Load configuration: --config wins over EQN2VEC_CONFIG
	cfg := baseConfig(env)
	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	if configName != "" {
		loaded, err := config.LoadConfig(configName)
		if err != nil {
			err = fmt.Errorf("loading config: %w", err)
			if errors.Is(err, config.ErrConfigNotFound) {
				return withHint(err, hints.ForConfigNotFound(config.SearchPaths(configName)))
			}
			return err
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	equations, err := collectEquations(positional, flags.input, env.Stdin)
	if err != nil {
		return err
	}

	input, engine, err := buildInput(equations, cfg)
	if err != nil {
		return err
	}

	opts := buildOptions(cfg, engine, flags.common, env)

	if !flags.skipCheck {
		checkOpts := append(opts[:len(opts):len(opts)], eqn2vec.WithLogger(env.Stderr))
		ok, statuses := eqn2vec.CheckEnvironment(ctx, engine, input.Format, checkOpts...)
		if !ok {
			return fmt.Errorf("%w: %s", eqn2vec.ErrToolNotFound, strings.Join(missingTools(statuses), ", "))
		}
	}

	conv, err := eqn2vec.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	result, err := conv.Convert(ctx, input)
	if result != nil {
		printResult(env.Stdout, result, flags.common)
	}
	if err != nil {
		return withHint(err, hintFor(err, conv.Workspace()))
	}
	return nil
}

// baseConfig copies the environment's config so runs do not share state.
func baseConfig(env *Environment) *config.Config {
	if env.Config == nil {
		return config.DefaultConfig()
	}
	cfg := *env.Config
	return &cfg
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.format != "" {
		cfg.Output.Format = flags.format
	}
	if flags.engine != "" {
		cfg.Engine = flags.engine
	}
	if flags.style != "" {
		cfg.Render.Style = flags.style
	}
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if flags.prefix != "" {
		cfg.Output.Prefix = flags.prefix
	}
	if flags.timeout != "" {
		cfg.Timeout = flags.timeout
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}
	if flags.keep {
		cfg.Keep = true
	}
}

// buildInput parses the enum fields of a validated config into library types.
func buildInput(equations []string, cfg *config.Config) (eqn2vec.Input, eqn2vec.Engine, error) {
	style, err := eqn2vec.ParseStyle(cfg.Render.Style)
	if err != nil {
		return eqn2vec.Input{}, "", err
	}
	format, err := eqn2vec.ParseFormat(cfg.Output.Format)
	if err != nil {
		return eqn2vec.Input{}, "", err
	}
	engine, err := eqn2vec.ParseEngine(cfg.Engine)
	if err != nil {
		return eqn2vec.Input{}, "", err
	}
	return eqn2vec.Input{
		Equations: equations,
		Style:     style,
		Format:    format,
		Keep:      cfg.Keep,
	}, engine, nil
}

// buildOptions translates config into converter options.
// Progress lines go to stderr in verbose mode only.
func buildOptions(cfg *config.Config, engine eqn2vec.Engine, common commonFlags, env *Environment) []eqn2vec.Option {
	var logger io.Writer = io.Discard
	if common.verbose && !common.quiet {
		logger = env.Stderr
	}

	opts := []eqn2vec.Option{
		eqn2vec.WithWorkDir(cfg.Output.Dir),
		eqn2vec.WithEngine(engine),
		eqn2vec.WithTools(eqn2vec.Tools{
			PDFLaTeX:    cfg.Tools.PDFLaTeX,
			PDFSeparate: cfg.Tools.PDFSeparate,
			PDF2SVG:     cfg.Tools.PDF2SVG,
		}),
		eqn2vec.WithAssetPath(cfg.Assets.BasePath),
		eqn2vec.WithLogger(logger),
		eqn2vec.WithVerbose(common.verbose),
	}
	if cfg.Output.Prefix != "" {
		opts = append(opts, eqn2vec.WithPrefix(cfg.Output.Prefix))
	}
	if d := cfg.TimeoutDuration(); d > 0 {
		opts = append(opts, eqn2vec.WithTimeout(d))
	}
	if env.Runner != nil {
		opts = append(opts, eqn2vec.WithRunner(env.Runner))
	}
	return opts
}

// missingTools returns the names of the tools that were not found.
func missingTools(statuses []eqn2vec.ToolStatus) []string {
	var names []string
	for _, st := range statuses {
		if !st.Found {
			names = append(names, st.Name)
		}
	}
	return names
}

// printResult lists created files, and kept intermediates in verbose mode.
func printResult(w io.Writer, result *eqn2vec.Result, common commonFlags) {
	if common.quiet {
		return
	}
	for _, p := range result.Outputs {
		fmt.Fprintf(w, "Created %s\n", p)
	}
	if common.verbose {
		for _, p := range result.Intermediates {
			fmt.Fprintf(w, "Kept %s\n", p)
		}
	}
}

// hintFor picks an actionable hint for a conversion error.
func hintFor(err error, ws eqn2vec.Workspace) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, eqn2vec.ErrWorkDirBusy):
		return hints.ForWorkDirBusy(ws.LockPath())
	case errors.Is(err, eqn2vec.ErrCompile):
		return hints.ForCompileFailure(ws.LogPath())
	case errors.Is(err, eqn2vec.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, eqn2vec.ErrPageCountMismatch):
		return hints.ForCompileFailure(ws.LogPath())
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) && pathErr.Op == "mkdir" {
		return hints.ForOutputDirectory()
	}
	return ""
}

// hintedError keeps the wrapped error for errors.Is while appending a hint
// to the message.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() + e.hint }
func (e *hintedError) Unwrap() error { return e.err }

// withHint attaches hint to err. An empty hint returns err unchanged.
func withHint(err error, hint string) error {
	if hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}

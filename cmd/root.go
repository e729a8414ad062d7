package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oakwood-commons/jview/internal/config"
	"github.com/oakwood-commons/jview/internal/document"
	"github.com/oakwood-commons/jview/internal/formatter"
	"github.com/oakwood-commons/jview/internal/label"
	"github.com/oakwood-commons/jview/internal/limiter"
	"github.com/oakwood-commons/jview/internal/ui"
	"github.com/oakwood-commons/jview/pkg/core"
	"github.com/oakwood-commons/jview/pkg/loader"
	"github.com/oakwood-commons/jview/pkg/logger"
	"github.com/oakwood-commons/jview/pkg/settings"
)

const noDocumentsMessage = "No valid JSON documents provided."

// rootOptions holds the parsed flags of the root command.
type rootOptions struct {
	parseOnly   bool
	validate    bool
	output      string
	tree        bool
	treeDepth   int
	treeNoVals  bool
	arrayStyle  string
	format      string
	decode      bool
	expression  string
	limit       int
	offset      int
	tail        int
	ascii       bool
	noMouse     bool
	colorScheme string
	searchTerm  string
	level       int
	startKeys   []string
	snapshot    bool
	width       int
	height      int
	configFile  string
	debug       bool
	noColor     bool
}

// exitError carries an exit code other than 1. A nil err exits silently,
// for failures that were already reported.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

func usageError(format string, args ...any) error {
	return &exitError{code: 2, err: fmt.Errorf(format, args...)}
}

var getenv = os.Getenv

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   settings.CliBinaryName + " [flags] [file ...]",
		Short: "Interactive terminal viewer for JSON documents",
		Long: settings.CliBinaryName + ` shows one or more JSON documents as a collapsible tree.
With no files, the document is read from standard input.

Keys: arrows or hjkl move, +/- expand or collapse everything, 0-9 expand to a
level, s/S search keys/values, n/N step through matches, t cycles colour
schemes, y copies the selection, ? shows help and q quits.`,
		Example: "  " + settings.CliBinaryName + " config.json data.json\n" +
			"  " + settings.CliBinaryName + " --parse-only config.json\n" +
			"  echo '{\"key\":\"value\"}' | " + settings.CliBinaryName + " --parse-only\n" +
			"  curl -s https://api.example.com/data | " + settings.CliBinaryName,
		Args:          cobra.ArbitraryArgs,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts, args)
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &exitError{code: 2, err: err}
	})

	f := cmd.Flags()
	f.BoolVarP(&opts.parseOnly, "parse-only", "p", false, "parse the input, pretty-print it and exit")
	f.BoolVar(&opts.validate, "validate", false, "parse the input and exit with status 0 only if every document is valid")
	f.StringVarP(&opts.output, "output", "o", "json", "output format for --parse-only: json|yaml")
	f.BoolVar(&opts.tree, "tree", false, "print a static tree of each document and exit")
	f.IntVar(&opts.treeDepth, "tree-depth", 0, "limit --tree depth (0 = unlimited)")
	f.BoolVar(&opts.treeNoVals, "tree-no-values", false, "show only keys in --tree output")
	f.StringVar(&opts.arrayStyle, "array-style", "index", "array index style for --tree: index|numbered|bullet|none")
	f.StringVar(&opts.format, "format", "auto", "input format: auto|json|yaml|toml|ndjson|jwt")
	f.BoolVar(&opts.decode, "decode", false, "expand string values holding embedded JSON, YAML or JWTs")
	f.StringVarP(&opts.expression, "expression", "e", "", "CEL expression applied to each document, bound to '_'; the result replaces the document")
	f.IntVar(&opts.limit, "limit", 0, "keep only the first N top-level records")
	f.IntVar(&opts.offset, "offset", 0, "skip the first N top-level records")
	f.IntVar(&opts.tail, "tail", 0, "keep only the last N top-level records (mutually exclusive with --limit)")
	f.BoolVar(&opts.ascii, "ascii", false, "use ASCII tree and indicator characters (or set "+settings.EnvASCII+")")
	f.BoolVar(&opts.noMouse, "no-mouse", false, "disable mouse support (or set "+settings.EnvNoMouse+")")
	f.StringVar(&opts.colorScheme, "color-scheme", "", "colour scheme: default|colorblind|none (or set "+settings.EnvColorScheme+")")
	f.StringVar(&opts.searchTerm, "search", "", "start with a key search for TERM")
	f.IntVar(&opts.level, "level", 0, "start expanded to nesting level N")
	f.StringArrayVar(&opts.startKeys, "press", nil, "simulate keys on startup; use <Key> for special keys (e.g. <Down>, <CR>, <Esc>)")
	f.BoolVar(&opts.snapshot, "snapshot", false, "render a single frame of the viewer and exit; honors --width/--height")
	f.IntVar(&opts.width, "width", 0, "viewer width in columns")
	f.IntVar(&opts.height, "height", 0, "viewer height in rows")
	cmd.PersistentFlags().StringVar(&opts.configFile, "config-file", "", "path to a YAML config file")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "write debug logs to stderr")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colour (or set "+settings.EnvNoColor+")")

	cmd.AddCommand(newVersionCmd(), newConfigCmd(opts))
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func (o *rootOptions) limitConfig() limiter.Config {
	return limiter.Config{Limit: o.limit, Offset: o.offset, Tail: o.tail}
}

func (o *rootOptions) validateFlags() error {
	if err := o.limitConfig().Validate(); err != nil {
		return &exitError{code: 2, err: fmt.Errorf("record limiting error: %w", err)}
	}
	if _, err := loader.ParseFormat(o.format); err != nil {
		return usageError("%v", err)
	}
	if o.output != "json" && o.output != "yaml" {
		return usageError("invalid output format %q (expected json or yaml)", o.output)
	}
	if o.treeDepth < 0 {
		return usageError("--tree-depth must be non-negative, got %d", o.treeDepth)
	}
	if err := formatter.ValidateArrayStyle(o.arrayStyle); err != nil {
		return usageError("%v", err)
	}
	if o.level < 0 || o.level > 9 {
		return usageError("--level must be between 0 and 9, got %d", o.level)
	}
	modes := 0
	for _, on := range []bool{o.parseOnly, o.validate, o.tree, o.snapshot} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return usageError("--parse-only, --validate, --tree and --snapshot are mutually exclusive")
	}
	return nil
}

// resolveRun layers config, environment and explicitly set flags.
func (o *rootOptions) resolveRun(flags *pflag.FlagSet, cfg config.Config) *settings.Run {
	run := settings.NewCliParams()
	run.ASCII = config.BoolValue(cfg.UI.ASCII, run.ASCII)
	run.Mouse = config.BoolValue(cfg.UI.Mouse, run.Mouse)
	if cfg.UI.ColorScheme != "" {
		run.ColorScheme = cfg.UI.ColorScheme
	}
	if ms := config.IntValue(cfg.UI.StatusTimeoutMS, 0); ms > 0 {
		run.StatusTimeout = durationMS(ms)
	}

	run.ApplyEnv(getenv)

	if flags.Changed("ascii") {
		run.ASCII = o.ascii
	}
	if flags.Changed("no-mouse") {
		run.Mouse = !o.noMouse
	}
	if flags.Changed("color-scheme") {
		run.ColorScheme = o.colorScheme
	}
	if o.noColor {
		run.NoColor = true
	}
	if o.debug {
		run.MinLogLevel = -1
	}
	run.Format = o.format
	run.Decode = o.decode
	return run
}

func runRoot(cmd *cobra.Command, opts *rootOptions, args []string) error {
	if err := opts.validateFlags(); err != nil {
		return err
	}

	ctx, cfg, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	run := settings.FromContextOrDefault(ctx)
	lgr := logger.FromContext(ctx)

	format, _ := loader.ParseFormat(run.Format)
	engine, err := core.New(
		core.WithDecode(run.Decode),
		core.WithExpression(opts.expression),
		core.WithLimit(opts.limitConfig()),
	)
	if errors.Is(err, core.ErrInvalidExpression) {
		return usageError("%v", err)
	}
	if err != nil {
		return err
	}

	in := inputLoader{
		format: format,
		engine: engine,
		stdin:  cmd.InOrStdin(),
		stderr: cmd.ErrOrStderr(),
		log:    *lgr,
	}
	arena, failures := in.load(args)
	lgr.V(1).Info("inputs loaded", "documents", arena.Len(), "failures", failures)

	out := cmd.OutOrStdout()
	switch {
	case opts.validate:
		if arena.Len() == 0 || failures > 0 {
			return &exitError{code: 1}
		}
		return nil
	case opts.parseOnly:
		if arena.Len() == 0 {
			return errors.New(noDocumentsMessage)
		}
		if err := printDocuments(out, arena.Documents(), opts.output); err != nil {
			return err
		}
		return failureExit(failures)
	case opts.tree:
		if arena.Len() == 0 {
			return errors.New(noDocumentsMessage)
		}
		for _, doc := range arena.Documents() {
			fmt.Fprint(out, formatter.FormatAsTree(doc.Name, &doc.Value, formatter.TreeOptions{
				NoValues:   opts.treeNoVals,
				MaxDepth:   opts.treeDepth,
				ArrayStyle: opts.arrayStyle,
			}))
		}
		return failureExit(failures)
	}

	if arena.Len() == 0 {
		return errors.New(noDocumentsMessage)
	}

	forest := document.NewForest(arena.Documents()...)
	uiOpts := ui.Options{
		ASCII:         run.ASCII,
		Mouse:         run.Mouse,
		NoColor:       run.NoColor,
		ColorScheme:   run.ColorScheme,
		StatusTimeout: run.StatusTimeout,
		Keys:          cfg.UI.Keys,
		Schemes:       cfg.UI.Schemes,
		SearchTerm:    opts.searchTerm,
	}
	if cmd.Flags().Changed("level") {
		level := opts.level
		uiOpts.Level = &level
	}
	sizes := label.Sizes(arena.Sizes())

	if opts.snapshot {
		view, err := ui.RenderModelSnapshot(forest, sizes, ui.ModelSnapshotConfig{
			Width:     opts.width,
			Height:    opts.height,
			NoColor:   run.NoColor,
			StartKeys: opts.startKeys,
			Options:   uiOpts,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(out, view)
		return nil
	}

	m, err := ui.NewModel(forest, sizes, uiOpts)
	if err != nil {
		return err
	}
	progOpts, cleanup := getProgramOptions(ctx)
	defer cleanup()
	lgr.V(1).Info("starting viewer", "roots", len(forest), "mouse", run.Mouse, "scheme", run.ColorScheme)
	if err := ui.RunModel(m, opts.width, opts.height, opts.startKeys, progOpts...); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}

// setup loads the config, resolves the run settings and builds the logger,
// returning a context that carries both.
func setup(cmd *cobra.Command, opts *rootOptions) (context.Context, config.Config, error) {
	cfg, err := loadMergedConfig(resolveConfigPath(opts.configFile))
	if err != nil {
		return nil, cfg, fmt.Errorf("loading config: %w", err)
	}
	run := opts.resolveRun(cmd.Flags(), cfg)

	lgr := logger.Get(run.MinLogLevel)
	lgr = logger.WithValues(lgr, logger.CommandKey, cmd.Name())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithLogger(ctx, lgr)
	ctx = settings.IntoContext(ctx, run)
	return ctx, cfg, nil
}

func failureExit(failures int) error {
	if failures > 0 {
		return &exitError{code: 1}
	}
	return nil
}

func printDocuments(w io.Writer, docs []*loader.Document, output string) error {
	for i, doc := range docs {
		if output == "yaml" {
			if i > 0 {
				fmt.Fprintln(w, "---")
			}
			text, err := formatter.FormatYAML(&doc.Value, formatter.YAMLFormatOptions{LiteralBlockStrings: true})
			if err != nil {
				return fmt.Errorf("formatting %s as YAML: %w", doc.Name, err)
			}
			fmt.Fprint(w, text)
			continue
		}
		if err := formatter.WriteJSON(w, &doc.Value, formatter.DefaultIndent); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}

// Package cmd implements the treex command line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	rdebug "runtime/debug"
	"strconv"
	"strings"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/treex/internal/navigator"
	"github.com/oakwood-commons/treex/internal/ui"
	"github.com/oakwood-commons/treex/pkg/core"
	"github.com/oakwood-commons/treex/pkg/loader"
	"github.com/oakwood-commons/treex/pkg/logger"
	"github.com/oakwood-commons/treex/pkg/settings"
	"github.com/oakwood-commons/treex/pkg/tree"
)

// errShowHelp is returned by loadInput when no input is provided and help
// should be shown instead of an error.
var errShowHelp = errors.New("no input provided")

var (
	interactive    bool
	output         string
	expression     string
	pathExpr       string
	searchTerm     string
	expandSpec     string
	decode         bool
	debug          bool
	noColor        bool
	abbreviateRoot bool
	maxStringLen   int
	width          int
	height         int

	rootCtx = context.Background()
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [file]",
	Short: "Explore and search tree-shaped data",
	Long: settings.CliBinaryName + ` loads JSON, YAML, TOML, NDJSON, or JWT input and renders it
as a navigable tree. Search opens exactly the branches that hold a match,
paths and CEL expressions select subtrees, and -i starts an interactive
explorer.`,
	Example: "\n  treex config.yaml\n  treex config.yaml --search tls\n  treex config.yaml -p server.ports[0]\n  treex data.json -e '_.items.filter(x, x.enabled)'\n  cat response.json | treex -i\n",
	Args:    cobra.MaximumNArgs(1),
	Version: buildVersion(),
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		var level int8
		if debug {
			level = -1
		}
		lgr := logger.Get(level)
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
		rootCtx = logger.WithLogger(context.Background(), lgr)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		if !noColor && (os.Getenv("TREEX_NO_COLOR") != "" || os.Getenv("NO_COLOR") != "") {
			noColor = true
		}
		if debug {
			navigator.Debug = true
			navigator.DebugWriter = cmd.ErrOrStderr()
		}

		policy, err := resolveExpandPolicy(expandSpec, searchTerm)
		if err != nil {
			return err
		}
		if output != "tree" && output != "yaml" && output != "json" {
			return fmt.Errorf("invalid --output value %q (expected tree, yaml, or json)", output)
		}

		params := settings.NewCliParams()
		params.NoColor = noColor
		if debug {
			params.MinLogLevel = -1
		}
		if len(args) > 0 {
			params.EntryPoint.Path = args[0]
		}
		ctx := settings.IntoContext(rootCtx, params)

		root, err := loadInput(cmd, ctx)
		if errors.Is(err, errShowHelp) {
			return cmd.Help()
		}
		if err != nil {
			return err
		}
		logger.FromContext(ctx).V(1).Info("input loaded",
			"from_stdin", params.EntryPoint.FromStdin, "path", params.EntryPoint.Path)
		if decode {
			root = loader.RecursiveDecode(root)
		}

		engine, err := core.New(
			core.WithNoColor(noColor),
			core.WithMaxStringLen(maxStringLen),
			core.WithAbbreviateRoot(abbreviateRoot),
		)
		if err != nil {
			return err
		}

		if expression != "" {
			root, err = engine.Evaluate(expression, root)
			if err != nil {
				return err
			}
		}
		if pathExpr != "" {
			root, err = engine.Select(root, pathExpr)
			if err != nil {
				return err
			}
		}

		if interactive {
			return ui.RunExplorer(root, ui.Options{
				Expand:         policy,
				Search:         strings.TrimSpace(searchTerm),
				NoColor:        noColor,
				AbbreviateRoot: abbreviateRoot,
				Width:          width,
				Height:         height,
			})
		}

		out, err := renderOutput(engine, root, policy)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

// loadInput reads the entry point named in the run settings, or stdin, and
// parses it. With no input but an expression set, evaluation proceeds
// against an empty object.
func loadInput(cmd *cobra.Command, ctx context.Context) (any, error) {
	params, hasParams := settings.FromContext(ctx)
	if hasParams && params.EntryPoint.Path != "" {
		path := params.EntryPoint.Path
		root, err := core.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		return root, nil
	}

	stat, _ := os.Stdin.Stat()
	piped := (stat.Mode() & os.ModeCharDevice) == 0
	if !piped {
		if expression != "" {
			return core.LoadRoot("{}")
		}
		return nil, errShowHelp
	}
	if hasParams {
		params.EntryPoint.FromStdin = true
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}
	if len(data) == 0 {
		data = []byte("{}")
	}
	return core.LoadRoot(string(data))
}

// resolveExpandPolicy maps the --expand and --search flags onto a policy.
// A search term wins over --expand so matches are always revealed.
func resolveExpandPolicy(spec, search string) (tree.ExpandPolicy, error) {
	if s := strings.TrimSpace(search); s != "" {
		return tree.ExpandSearchResults(s), nil
	}
	switch strings.ToLower(strings.TrimSpace(spec)) {
	case "", "all":
		return tree.ExpandAll(), nil
	case "none":
		return tree.ExpandNone(), nil
	default:
		level, err := strconv.Atoi(strings.TrimSpace(spec))
		if err != nil || level < 0 {
			return tree.ExpandPolicy{}, fmt.Errorf("invalid --expand value %q (expected all, none, or a depth)", spec)
		}
		return tree.ExpandToLevel(level), nil
	}
}

func renderOutput(engine *core.Engine, root any, policy tree.ExpandPolicy) (string, error) {
	switch output {
	case "yaml":
		return engine.RenderYAML(root)
	case "json":
		return oj.JSON(root, 2) + "\n", nil
	default:
		return engine.Render(root, policy), nil
	}
}

// buildVersion reads the module version from build info so release builds
// report their tag without a separate ldflags step.
func buildVersion() string {
	version := "dev"
	if info, ok := rdebug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
	}
	return fmt.Sprintf("%s (%s, %s/%s)", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func init() { //nolint:gochecknoinits
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "start the interactive explorer")
	rootCmd.Flags().StringVarP(&output, "output", "o", "tree", "output format: tree|yaml|json")
	rootCmd.Flags().StringVarP(&expression, "expression", "e", "", "CEL expression using '_' as the root, e.g. '_.items[0].name'")
	rootCmd.Flags().StringVarP(&pathExpr, "path", "p", "", "path to select before rendering: dotted, JSON Pointer segments, or $-prefixed JSONPath")
	rootCmd.Flags().StringVar(&searchTerm, "search", "", "case-insensitive search over keys and values; opens matching branches")
	rootCmd.Flags().StringVar(&expandSpec, "expand", "all", "initial expansion: all, none, or a depth like 2")
	rootCmd.Flags().BoolVar(&decode, "decode", false, "recursively decode serialized scalars (embedded JSON, YAML, base64, JWT)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "log navigation decisions to stderr")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable color output")
	rootCmd.Flags().BoolVar(&abbreviateRoot, "abbreviate-root", false, "treat the root as hidden when resolving search expansion")
	rootCmd.Flags().IntVar(&maxStringLen, "max-string", 0, "max string length in tree output (0 = unlimited)")
	rootCmd.Flags().IntVar(&width, "width", 0, "explorer width in columns (0 = auto)")
	rootCmd.Flags().IntVar(&height, "height", 0, "explorer height in rows (0 = auto)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lets-cli/lets-ls/internal/features"
	"github.com/lets-cli/lets-ls/internal/parser"
	"github.com/lets-cli/lets-ls/internal/report"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Run the analysis on a file and print what the server would see",
	Long: `Run a single analysis query against a file on disk. LINE and CHAR are
zero-based; CHAR counts bytes within the line.

EXAMPLES:
    lets-ls inspect commands lets.yaml
    lets-ls inspect classify lets.yaml 7 15
    lets-ls inspect complete lets.yaml 7 15 --format json
    lets-ls inspect errors lets.yaml --format yaml`,
}

// Inspect command-specific flags
var (
	inspectFormat string
	inspectColor  bool
)

// inspectQuery is one inspect subcommand. Positional queries take a
// LINE and CHAR after the file.
type inspectQuery struct {
	name       string
	short      string
	positional bool
	run        func(a *app, req features.Request) ([]report.Item, error)
}

var inspectQueries = []inspectQuery{
	{name: "classify", short: "Show the context of a position", positional: true, run: classifyItems},
	{name: "commands", short: "List command names", run: commandItems},
	{name: "command-at", short: "Show the command whose body holds a position", positional: true, run: commandAtItems},
	{name: "mixins", short: "List mixins entries", run: mixinItems},
	{name: "mixin-at", short: "Show the mixins entry on a position's line", positional: true, run: mixinAtItems},
	{name: "complete", short: "Show completion candidates for a position", positional: true, run: completeItems},
	{name: "definition", short: "Show where a mixins entry points", positional: true, run: definitionItems},
	{name: "errors", short: "List syntax errors", run: errorItems},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.PersistentFlags().StringVarP(&inspectFormat, "format", "f", "text", "Output format (text, json, yaml)")
	inspectCmd.PersistentFlags().BoolVar(&inspectColor, "color", false, "Colorize text output")

	for _, q := range inspectQueries {
		inspectCmd.AddCommand(q.command())
	}
}

func (q inspectQuery) command() *cobra.Command {
	use := q.name + " FILE"
	nargs := 1
	if q.positional {
		use += " LINE CHAR"
		nargs = 3
	}

	return &cobra.Command{
		Use:   use,
		Short: q.short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(inspectFormat)
			if err != nil {
				return err
			}

			config := loadConfig(viper.GetViper())
			logger, closer, err := newLogger(config, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer.Close()

			a, err := newApp(afero.NewOsFs(), config, logger, false)
			if err != nil {
				return err
			}
			defer a.Close()

			formatter := report.NewFormatter(cmd.OutOrStdout(), report.Config{
				Format:        format,
				ShowFilenames: true,
				ShowColors:    inspectColor,
			})
			return runInspect(a, q, args, formatter)
		},
	}
}

func runInspect(a *app, q inspectQuery, args []string, formatter report.Formatter) error {
	req, err := a.request(args, q.positional)
	if err != nil {
		return err
	}

	items, err := q.run(a, req)
	if err != nil {
		return fmt.Errorf("%s failed: %w", q.name, err)
	}

	result := report.Result{Query: q.name, Path: args[0], Items: items}
	if q.positional {
		result.Position = &report.Position{Line: req.Position.Line, Character: req.Position.Character}
	}

	if err := formatter.Write(result); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if closer, ok := formatter.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// request reads FILE and, for positional queries, LINE and CHAR
func (a *app) request(args []string, positional bool) (features.Request, error) {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return features.Request{}, fmt.Errorf("invalid path %s: %w", args[0], err)
	}

	text, err := a.readDocument(path)
	if err != nil {
		return features.Request{}, err
	}

	req := features.Request{Path: path, Text: text}
	if !positional {
		return req, nil
	}

	line, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return features.Request{}, fmt.Errorf("invalid LINE %q: %w", args[1], err)
	}
	char, err := strconv.ParseUint(args[2], 10, 32)
	if err != nil {
		return features.Request{}, fmt.Errorf("invalid CHAR %q: %w", args[2], err)
	}
	req.Position = parser.Position{Line: uint(line), Character: uint(char)}
	return req, nil
}

func classifyItems(a *app, req features.Request) ([]report.Item, error) {
	context, err := a.analyzer.Classify(req.Text, req.Position)
	if err != nil {
		return nil, err
	}
	return []report.Item{{Label: context.String(), Kind: "context"}}, nil
}

func commandItems(a *app, req features.Request) ([]report.Item, error) {
	commands, err := a.analyzer.ListCommands(req.Text)
	if err != nil {
		return nil, err
	}
	items := make([]report.Item, 0, len(commands))
	for _, cmd := range commands {
		items = append(items, report.Item{Label: cmd.Name, Kind: "command"})
	}
	return items, nil
}

func commandAtItems(a *app, req features.Request) ([]report.Item, error) {
	cmd, found, err := a.analyzer.EnclosingCommand(req.Text, req.Position)
	if err != nil || !found {
		return nil, err
	}
	return []report.Item{{Label: cmd.Name, Kind: "command"}}, nil
}

func mixinItems(a *app, req features.Request) ([]report.Item, error) {
	mixins, err := a.analyzer.ListMixins(req.Text)
	if err != nil {
		return nil, err
	}
	items := make([]report.Item, 0, len(mixins))
	for _, mixin := range mixins {
		items = append(items, report.Item{Label: mixin, Kind: "mixin"})
	}
	return items, nil
}

func mixinAtItems(a *app, req features.Request) ([]report.Item, error) {
	filename, found, err := a.analyzer.MixinFilename(req.Text, req.Position)
	if err != nil || !found {
		return nil, err
	}
	return []report.Item{{Label: filename, Kind: "mixin"}}, nil
}

func completeItems(a *app, req features.Request) ([]report.Item, error) {
	candidates, err := a.completer.Complete(req)
	if err != nil {
		return nil, err
	}
	items := make([]report.Item, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, report.Item{Label: c.Label, Kind: c.Kind.String()})
	}
	return items, nil
}

func definitionItems(a *app, req features.Request) ([]report.Item, error) {
	location, found, err := a.definer.Definition(req)
	if err != nil || !found {
		return nil, err
	}
	return []report.Item{{
		Label:    location.Path,
		Kind:     "file",
		Position: &report.Position{Line: location.Line},
	}}, nil
}

// errorItems reports syntax errors with zero-based positions like every
// other query
func errorItems(a *app, req features.Request) ([]report.Item, error) {
	tree, err := parser.Parse(req.Text)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var items []report.Item
	for _, e := range tree.Errors() {
		items = append(items, report.Item{
			Label: e.Message,
			Kind:  e.Kind,
			Position: &report.Position{
				Line:      uint(e.Line - 1),
				Character: uint(e.Column - 1),
			},
		})
	}
	return items, nil
}

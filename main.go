package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/mcncl/funkinconv/internal/config"
	"github.com/mcncl/funkinconv/internal/converter"
	"github.com/mcncl/funkinconv/internal/errors"
	"github.com/mcncl/funkinconv/internal/models"
)

// CLI defines the command-line interface
var CLI struct {
	Paths           []string `arg:"" optional:"" name:"path" help:"JSON files or glob patterns (e.g. 'mods/**/*.json')."`
	Config          string   `help:"Path to a config file. Defaults to the nearest .funkinconv.yml." short:"c" type:"path"`
	CharacterSchema string   `help:"Character schema: auto, v1 or v2." short:"s"`
	Naming          string   `help:"Output naming: converted (<name>_<suffix>.json) or dialect (<name>_base.json / <name>_psych.json)." short:"n"`
	Suffix          string   `help:"Suffix inserted before .json when naming is 'converted'."`
	Indent          int      `help:"Spaces of indentation in written files."`
	Jobs            int      `help:"Number of files converted at once." short:"j"`
	DetectOnly      bool     `help:"Only report each file's kind and dialect; write nothing." name:"detect-only"`
	Quiet           bool     `help:"Only log warnings and errors, and skip the summary table." short:"q"`
	Debug           bool     `help:"Enable debug logging." short:"d"`
	Version         bool     `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Logger *log.Logger
}

// Version information
const (
	Version = "0.1.0"
)

// Exit codes
const (
	exitOK     = 0
	exitFailed = 1
	exitFatal  = 2
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("funkinconv"),
		kong.Description("Convert Friday Night Funkin' characters, charts, events, stages and weeks between the Psych Engine and base game formats"),
		kong.UsageOnError(),
	)

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		parser.FatalIfErrorf(err)
	}

	if CLI.Version {
		fmt.Printf("funkinconv version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(exitFatal)
	}

	ctx := &Context{
		Debug:  cfg.Dev.Debug,
		Config: cfg,
		Logger: newLogger(os.Stderr, logLevel(cfg.Dev.Debug, CLI.Quiet)),
	}

	results, err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: funkinconv --help\n")
		os.Exit(exitFatal)
	}

	if !CLI.Quiet {
		fmt.Fprintln(os.Stderr, renderSummary(results, shouldColorize(os.Stderr)))
	}

	if converted, total := converter.Summary(results); converted < total {
		os.Exit(exitFailed)
	}
	os.Exit(exitOK)
}

// run expands the inputs and converts every file
func run(ctx *Context) ([]converter.FileOutcome, error) {
	conv := converter.New(ctx.Config, ctx.Logger)
	conv.DetectOnly = CLI.DetectOnly

	return conv.Run(context.Background(), globSource(CLI.Paths), nil)
}

// loadConfig merges the config file with the flags that were given
func loadConfig() (*config.Config, error) {
	var o config.Overrides
	if CLI.CharacterSchema != "" {
		o.CharacterSchema = &CLI.CharacterSchema
	}
	if CLI.Naming != "" {
		o.Naming = &CLI.Naming
	}
	if CLI.Suffix != "" {
		o.Suffix = &CLI.Suffix
	}
	if CLI.Indent != 0 {
		o.Indent = &CLI.Indent
	}
	if CLI.Jobs != 0 {
		o.Jobs = &CLI.Jobs
	}
	if CLI.Debug {
		o.Debug = &CLI.Debug
	}

	cfg, err := config.LoadConfigWithCLI(CLI.Config, o)
	if err != nil {
		return nil, errors.NewConfigError("invalid configuration", err)
	}
	return cfg, nil
}

// globSource expands each argument as a doublestar pattern. Arguments that
// match nothing are kept as given so they are reported as not found.
type globSource []string

func (g globSource) Files() ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, arg := range g {
		if !strings.ContainsAny(arg, "*?[{") {
			add(arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.NewInputError(fmt.Sprintf("invalid pattern '%s'", arg), err)
		}
		if len(matches) == 0 {
			add(arg)
			continue
		}
		for _, m := range matches {
			add(m)
		}
	}
	return files, nil
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func logLevel(debug, quiet bool) log.Level {
	switch {
	case debug:
		return log.DebugLevel
	case quiet:
		return log.WarnLevel
	default:
		return log.InfoLevel
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// renderSummary lays the batch out as a table, one row per file
func renderSummary(results []converter.FileOutcome, color bool) string {
	tw := table.NewWriter()
	if color {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	tw.AppendHeader(table.Row{"File", "Kind", "Dialect", "Status", "Message"})
	for _, r := range results {
		tw.AppendRow(table.Row{
			r.Path,
			label(string(r.Outcome.Kind)),
			label(string(r.Outcome.Dialect)),
			status(r.Outcome, color),
			r.Outcome.Message,
		})
	}

	converted, total := converter.Summary(results)
	tw.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d/%d", converted, total), ""})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignLeft, AlignFooter: text.AlignLeft},
	})
	return tw.Render()
}

func label(s string) string {
	if s == "" || s == string(models.KindUnknown) {
		return "-"
	}
	return s
}

func status(o models.Outcome, color bool) string {
	s, c := "failed", text.FgRed
	if o.OK {
		s, c = "ok", text.FgGreen
	}
	if !color {
		return s
	}
	return c.Sprint(s)
}

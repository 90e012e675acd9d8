package runner

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/dkoosis/ut/internal/config"
	"github.com/dkoosis/ut/internal/version"
	"github.com/dkoosis/ut/pkg/reporter"
	"github.com/dkoosis/ut/pkg/suite"
)

// Exit codes.
const (
	ExitSuccess  = 0 // all tests passed
	ExitFailures = 1 // a test or hook failed
	ExitUsage    = 2 // bad flags, config or declarations
)

// Main runs the tree with the process arguments and exits.
func Main(tree *suite.Tree) {
	os.Exit(Run(tree, os.Args[1:], os.Stdout, os.Stderr))
}

type invocation struct {
	flags   config.CliFlags
	list    bool
	version bool
}

// Run parses args, executes the tree and returns the exit code.
func Run(tree *suite.Tree, args []string, stdout, stderr io.Writer) int {
	inv, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}
	if inv.version {
		fmt.Fprintln(stdout, version.String())
		return ExitSuccess
	}

	cfg, err := config.ResolveConfig(inv.flags)
	if err != nil {
		fmt.Fprintf(stderr, "ut: %v\n", err)
		return ExitUsage
	}
	log := newLogger(cfg, stderr)
	if cfg.ConfigFile != "" {
		log.WithField("path", cfg.ConfigFile).Debug("loaded config file")
	}

	opts := []suite.Option{suite.WithLogger(log), suite.WithAsyncTimeout(cfg.AsyncTimeout)}
	if cfg.CaptureOutput {
		opts = append(opts, suite.WithCapture(cfg.MaxCaptureBytes))
	}
	tree.Configure(opts...)

	if inv.list {
		return list(tree, stdout, stderr)
	}
	return execute(tree, cfg, stdout, stderr, log)
}

func parseFlags(args []string, stderr io.Writer) (invocation, error) {
	var inv invocation
	flags := &inv.flags

	fs := flag.NewFlagSet("ut", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&flags.Format, "format", "", "Output format: auto, terminal, json, live")
	fs.StringVar(&flags.Theme, "theme", "", "Theme: default, orca, mono")
	fs.BoolVar(&flags.PrintStack, "stack", false, "Print stack snapshots under assertion failures")
	fs.BoolVar(&flags.NoCapture, "no-capture", false, "Let tests write straight to stdout/stderr")
	fs.DurationVar(&flags.AsyncTimeout, "async-timeout", 0, "Fail async actions that do not signal in time (0 waits forever)")
	fs.BoolVar(&flags.Summary, "summary", false, "Print a summary table after the run")
	fs.StringVar(&flags.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file")
	fs.StringVar(&flags.ConfigPath, "config", "", "Path to a .ut.yaml config file")
	fs.BoolVar(&flags.NoColor, "no-color", false, "Disable colors")
	fs.BoolVar(&flags.CI, "ci", false, "CI mode: no colors, no live display")
	fs.BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&inv.version, "version", false, "Print version and exit")
	fs.BoolVar(&inv.list, "list", false, "List declared suites and tests without running them")
	if err := fs.Parse(args); err != nil {
		return inv, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "ut: unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return inv, fmt.Errorf("unexpected arguments")
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "stack":
			flags.PrintStackSet = true
		case "no-capture":
			flags.NoCaptureSet = true
		case "async-timeout":
			flags.AsyncTimeoutSet = true
		case "summary":
			flags.SummarySet = true
		case "no-color":
			flags.NoColorSet = true
		case "ci":
			flags.CISet = true
		}
	})
	return inv, nil
}

func newLogger(cfg *config.ResolvedConfig, stderr io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(stderr)
	log.SetLevel(cfg.LogLevel)
	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableColors: cfg.NoColor, FullTimestamp: true})
	}
	return log
}

func execute(tree *suite.Tree, cfg *config.ResolvedConfig, stdout, stderr io.Writer, log logrus.FieldLogger) int {
	theme := reporter.ThemeByName(cfg.Theme)
	format := resolveFormat(cfg, stdout)

	var (
		reporters []suite.Reporter
		jsonRep   *reporter.JSON
		live      *reporter.Live
		metrics   *reporter.Metrics
	)
	switch format {
	case config.FormatJSON:
		jsonRep = reporter.NewJSON(stdout)
		reporters = append(reporters, jsonRep)
	case config.FormatLive:
		width, _ := termSize(stdout)
		live = reporter.NewLive(stdout, theme, width)
		reporters = append(reporters, live)
	default:
		reporters = append(reporters, reporter.NewTerminal(stdout,
			reporter.WithTheme(theme),
			reporter.WithStack(cfg.PrintStack),
		))
	}
	if cfg.Summary {
		// Keep JSON output parseable.
		out := stdout
		if format == config.FormatJSON {
			out = stderr
		}
		reporters = append(reporters, reporter.NewSummary(out, !cfg.NoColor))
	}
	if cfg.MetricsFile != "" {
		metrics = reporter.NewMetrics()
		reporters = append(reporters, metrics)
	}

	info, err := tree.Run(suite.Multi(reporters...))
	if err != nil {
		if live != nil {
			live.Stop()
		}
		fmt.Fprintf(stderr, "ut: %v\n", err)
		return ExitUsage
	}
	if live != nil {
		if err := live.Wait(); err != nil {
			log.WithError(err).Warn("live display failed")
		}
	}
	if jsonRep != nil && jsonRep.Err() != nil {
		fmt.Fprintf(stderr, "ut: writing JSON report: %v\n", jsonRep.Err())
		return ExitUsage
	}
	if metrics != nil {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			log.WithError(err).WithField("path", cfg.MetricsFile).Warn("could not write metrics file")
		}
	}

	log.WithFields(logrus.Fields{
		"tests":     info.Tests,
		"successes": info.Successes,
		"failures":  info.Failures,
		"stubs":     info.Stubs,
		"duration":  info.Duration,
	}).Debug("run finished")
	if info.Failed() {
		return ExitFailures
	}
	return ExitSuccess
}

// resolveFormat maps auto to the live display on an interactive terminal
// and to the terminal log everywhere else.
func resolveFormat(cfg *config.ResolvedConfig, stdout io.Writer) string {
	if cfg.Format != config.FormatAuto {
		return cfg.Format
	}
	if isTTYWriter(stdout) && !cfg.CI {
		return config.FormatLive
	}
	return config.FormatTerminal
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termSize returns the terminal dimensions for w, defaulting to 80x24.
func termSize(w io.Writer) (width, height int) {
	width, height = 80, 24
	if f, ok := w.(*os.File); ok {
		if tw, th, err := term.GetSize(int(f.Fd())); err == nil {
			if tw > 0 {
				width = tw
			}
			if th > 0 {
				height = th
			}
		}
	}
	return width, height
}

// list prints the declared tree without executing it.
func list(tree *suite.Tree, stdout, stderr io.Writer) int {
	if err := tree.Finalize(); err != nil {
		fmt.Fprintf(stderr, "ut: %v\n", err)
		return ExitUsage
	}
	tree.Root().Walk(func(s *suite.Suite) {
		indent := strings.Repeat("  ", s.Depth())
		fmt.Fprintf(stdout, "%s%s\n", indent, s.Name)
		for _, t := range s.Tests() {
			marker := ""
			if t.IsStub() {
				marker = " (stub)"
			}
			fmt.Fprintf(stdout, "%s  - %s%s\n", indent, t.Name, marker)
		}
	})
	return ExitSuccess
}

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/kenshaw/requirements"
	"github.com/kenshaw/requirements/config"
	"github.com/kenshaw/requirements/diffwriter"
	"github.com/kenshaw/requirements/message"
	"github.com/kenshaw/requirements/terminal"
	"github.com/spf13/cobra"
)

// errDiffer is returned when the inputs differ. It sets the exit status
// without printing an error.
var errDiffer = errors.New("values differ")

type options struct {
	encoding   string
	configPath string
	logLevel   string
	literal    bool
	legend     bool
	noDiff     bool
	raw        bool
	maxLength  int
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "reqdiff ACTUAL EXPECTED",
		Short: "Show how two values differ",
		Long: `reqdiff compares two files, or two strings with --string, and prints
an aligned diff of them. The exit status is 1 when they differ.`,
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0], args[1])
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.encoding, "encoding", "auto", "terminal encoding (auto|"+strings.Join(encodingNames(), "|")+")")
	flags.StringVar(&opts.configPath, "config", "", "load options from a TOML or YAML file")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	flags.BoolVar(&opts.literal, "string", false, "treat the arguments as strings instead of file names")
	flags.BoolVar(&opts.legend, "legend", true, "print the legend after a diff")
	flags.BoolVar(&opts.noDiff, "no-diff", false, "print the values without a diff")
	flags.BoolVar(&opts.raw, "raw", false, "print the raw character diff")
	flags.IntVar(&opts.maxLength, "max-length", 0, "print values longer than this many bytes without a diff")
	return cmd
}

func encodingNames() []string {
	var names []string
	for _, enc := range terminal.Encodings() {
		names = append(names, enc.String())
	}
	return names
}

func run(cmd *cobra.Command, opts *options, actualArg, expectedArg string) error {
	logger, err := newLogger(cmd.ErrOrStderr(), opts.logLevel)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, opts, logger)
	if err != nil {
		return err
	}
	actual, err := readInput(actualArg, opts.literal)
	if err != nil {
		return err
	}
	expected, err := readInput(expectedArg, opts.literal)
	if err != nil {
		return err
	}
	logger.Debug("read inputs", "actual", len(actual), "expected", len(expected))

	out := cmd.OutOrStdout()
	colors := cfg.Encoding != terminal.None
	if actual == expected {
		status(out, "values are equal", true, colors)
		return nil
	}
	if opts.raw {
		logger.Debug("computing raw diff", "cleanup", cfg.Engine.Cleanup)
		fmt.Fprintln(out, diffwriter.Inline(cfg.Engine.Compute(actual, expected), diffwriter.ForEncoding(cfg.Encoding)))
	} else {
		v := requirements.New(
			requirements.WithConfig(cfg),
			requirements.WithStringMapper(func(v any) string { return fmt.Sprint(v) }),
		)
		logger.Debug("rendering diff", "encoding", cfg.Encoding, "allow_diff", cfg.AllowDiff)
		sections, err := v.Diff(actual, expected, "actual", "expected")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, message.FormatAligned(sections))
	}
	res, err := diffwriter.Generate(cfg.Engine, diffwriter.TextOnly{}, actual, expected)
	if err != nil {
		return err
	}
	status(out, fmt.Sprintf("values differ (edit distance %d)", res.Distance()), false, colors)
	return errDiffer
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

// loadConfig reads the config file, if any, and applies the flags that were
// set on top of it.
func loadConfig(cmd *cobra.Command, opts *options, logger *slog.Logger) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return nil, err
		}
		logger.Debug("loaded config", "path", opts.configPath)
	}
	flags := cmd.Flags()
	switch {
	case flags.Changed("encoding") && opts.encoding != "auto":
		enc, err := terminal.ParseEncoding(opts.encoding)
		if err != nil {
			return nil, err
		}
		cfg.Encoding = enc
	case opts.configPath == "" || flags.Changed("encoding"):
		cfg.Encoding = terminal.Detect(cmd.OutOrStdout())
		logger.Debug("detected encoding", "encoding", cfg.Encoding)
	}
	if flags.Changed("legend") {
		cfg.AllowLegend = opts.legend
	}
	if opts.noDiff {
		cfg.AllowDiff = false
	}
	if flags.Changed("max-length") {
		if opts.maxLength < 0 {
			return nil, fmt.Errorf("max-length may not be negative: %d", opts.maxLength)
		}
		cfg.MaxLength = opts.maxLength
	}
	return cfg, nil
}

func readInput(arg string, literal bool) (string, error) {
	if literal {
		return arg, nil
	}
	buf, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("unable to read input: %w", err)
	}
	return string(buf), nil
}

func status(w io.Writer, msg string, equal, colors bool) {
	c := color.New(color.FgRed, color.Bold)
	if equal {
		c = color.New(color.FgGreen, color.Bold)
	}
	if colors {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	_, _ = c.Fprintln(w, msg)
}

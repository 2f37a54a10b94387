package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-colorable"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arnodel/csvjson"
	"github.com/arnodel/csvjson/internal/logging"
	"github.com/arnodel/csvjson/internal/watch"
)

const successMessage = "Data successfully converted."

func (a *app) rootCommand() *cobra.Command {
	com := &cobra.Command{
		Use:   "csvjson [flags] SOURCE DEST",
		Short: "Convert a CSV file into a JSON document",
		Long: `csvjson converts CSV into a JSON document of the form

  {"data": [{"name": "Alice", "age": "30"}, ...]}

The first line of SOURCE gives the field names.  Every following line becomes
one object, written as soon as it is read.  Use - for SOURCE to read standard
input and - for DEST to write to standard output.

Settings can also be given with CSVJSON_* environment variables; flags take
precedence.`,
		Args:              exactArgs(2),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.convert(args[0], args[1])
		},
	}
	com.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	// This set of flags propagates
	fl := com.PersistentFlags()

	out := &a.cfg.Output
	outputFlags := pflag.NewFlagSet("Output", pflag.ContinueOnError)
	outputFlags.StringVar(&out.Quotes, "quotes", out.Quotes, "quote tracking when splitting lines: parity, quoted")
	outputFlags.StringVar(&out.Mismatch, "mismatch", out.Mismatch, "lines with a different field count than the header: truncate, pad, strict")
	outputFlags.IntVar(&out.Indent, "indent", out.Indent, "write one record per line, indented by this many spaces (0 for compact)")
	outputFlags.BoolVar(&out.ASCII, "ascii", out.ASCII, "escape non-ASCII characters (use --ascii=false for UTF-8)")
	outputFlags.StringVar(&out.Color, "color", out.Color, "colorize standard output: auto, always, never")
	fl.AddFlagSet(outputFlags)

	logFlags := pflag.NewFlagSet("Logging", pflag.ContinueOnError)
	logFlags.StringVar(&a.cfg.Logging.Level, "log-level", a.cfg.Logging.Level, "log level: trace, debug, info, warn, error")
	logFlags.StringVar(&a.cfg.Logging.Format, "log-format", a.cfg.Logging.Format, "log format: console, json")
	logFlags.BoolVarP(&a.quiet, "quiet", "q", false, "do not print a message on success")
	fl.AddFlagSet(logFlags)

	com.AddCommand(a.watchCommand())
	return com
}

func (a *app) watchCommand() *cobra.Command {
	com := &cobra.Command{
		Use:   "watch [flags] SOURCE DEST",
		Short: "Convert SOURCE into DEST, then again each time SOURCE changes",
		Long: `watch converts SOURCE into DEST like csvjson does, then keeps running and
converts it again each time SOURCE is written or replaced.  A failed
conversion is logged and watching continues.  Stop it with Ctrl-C.`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := args[0], args[1]
			if src == csvjson.StdStream {
				return usageError{errors.New("watch needs a source file, not standard input")}
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			conv := a.converter(dst)
			w := &watch.Watcher{
				Source:   src,
				Debounce: a.cfg.Watch.Debounce,
				Logger:   &a.log,
				Convert: func() error {
					_, err := conv.ConvertFiles(src, dst)
					return err
				},
			}
			return w.Run(ctx)
		},
	}
	com.Flags().DurationVar(&a.cfg.Watch.Debounce, "debounce", a.cfg.Watch.Debounce, "wait this long after the last change before converting")
	return com
}

// setup checks the settings once flags have been parsed and creates the
// logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := a.cfg.Validate(); err != nil {
		return usageError{err}
	}
	color := a.stderrIsTerminal && a.cfg.Output.Color != "never"
	a.log = logging.New(a.stderr, a.cfg.Logging.Level, a.cfg.Logging.Format, color)
	return nil
}

// converter returns a Converter configured for writing to dst.
func (a *app) converter(dst string) *csvjson.Converter {
	out := a.cfg.Output
	toTerminal := dst == csvjson.StdStream && a.stdoutIsTerminal

	// Files never get colors, they would not be valid JSON.
	color := false
	if dst == csvjson.StdStream {
		switch out.Color {
		case "always":
			color = true
		case "auto":
			color = toTerminal
		}
	}

	// Set up stdout for handling colors
	stdout := a.stdout
	if f, ok := stdout.(*os.File); ok && color {
		stdout = colorable.NewColorable(f)
	}

	return &csvjson.Converter{
		Mode:   out.Mode(),
		Policy: out.Policy(),
		Indent: out.Indent,
		ASCII:  out.ASCII,
		Color:  color,

		// If we are writing to a terminal, flush after each record so user
		// gets feedback early.
		FlushEachRecord: toTerminal,

		Stdin:  a.stdin,
		Stdout: stdout,
		Logger: &a.log,
	}
}

func (a *app) convert(src, dst string) error {
	conv := a.converter(dst)
	if _, err := conv.ConvertFiles(src, dst); err != nil {
		return err
	}
	msgOut := a.stdout
	if dst == csvjson.StdStream {
		msgOut = a.stderr
		if a.stdoutIsTerminal && conv.Indent <= 0 {
			fmt.Fprintln(a.stdout)
		}
	}
	if !a.quiet {
		fmt.Fprintln(msgOut, successMessage)
	}
	return nil
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

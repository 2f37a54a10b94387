package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/arnodel/csvjson"
	"github.com/arnodel/csvjson/internal/config"
)

const (
	exitSuccess     = 0
	exitFailure     = 1
	exitSourceError = 2
)

// app holds what the commands share: the standard streams and the settings.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	stdoutIsTerminal bool
	stderrIsTerminal bool

	cfg   *config.Config
	log   zerolog.Logger
	quiet bool
}

func main() {
	// Do not handle SIGPIPE, we'll do it ourselves (see app.report).
	signal.Ignore(syscall.SIGPIPE)

	// Display a stack trace on panic
	defer func() {
		if e := recover(); e != nil {
			fmt.Fprintf(os.Stderr, "%s: %s", e, debug.Stack())
			os.Exit(exitFailure)
		}
	}()

	a := &app{
		stdin:            os.Stdin,
		stdout:           os.Stdout,
		stderr:           os.Stderr,
		stdoutIsTerminal: isTerminal(os.Stdout),
		stderrIsTerminal: isTerminal(os.Stderr),
	}
	os.Exit(a.run(os.Args[1:]))
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// run executes the command line and returns the process exit code.
func (a *app) run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(a.stderr, "csvjson: %s\n", err)
		return exitFailure
	}
	a.cfg = cfg
	a.log = zerolog.Nop()

	cmd := a.rootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	return a.report(cmd.ExecuteContext(context.Background()))
}

// A usageError is an error in the command line rather than in the
// conversion.
type usageError struct {
	err error
}

func (e usageError) Error() string {
	return e.err.Error()
}

func (e usageError) Unwrap() error {
	return e.err
}

// report tells the user about err and chooses the exit code.
func (a *app) report(err error) int {
	var (
		srcErr   *csvjson.SourceError
		usageErr usageError
	)
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, syscall.EPIPE):
		// stdout is a pipe and something closed it (e.g. 'head' or 'less').
		// In this case we don't want to complain.
		return exitSuccess
	case errors.Is(err, csvjson.ErrSourceNotFound):
		fmt.Fprintln(a.stderr, "Source file not found!")
		return exitSourceError
	case errors.As(err, &srcErr):
		fmt.Fprintf(a.stderr, "csvjson: %s\n", err)
		return exitSourceError
	case errors.As(err, &usageErr):
		fmt.Fprintf(a.stderr, "csvjson: %s\nRun 'csvjson --help' for usage.\n", err)
		return exitFailure
	default:
		a.log.Error().Err(err).Msg("conversion failed")
		fmt.Fprintf(a.stderr, "csvjson: %s\n", err)
		return exitFailure
	}
}

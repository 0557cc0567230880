package main

// gcalc evaluates one arithmetic expression per input line and prints the sum
// of the results.

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ltungv/gcalc/internal/calc"
	"github.com/ltungv/gcalc/internal/config"
	"github.com/ltungv/gcalc/internal/logging"
)

// Exit statuses, as in sysexits.h
const (
	exitUsage   = 64
	exitDataErr = 65
	exitIOErr   = 74
	exitSoftErr = 70
)

// flagValues holds the command line flags of one command instance.
type flagValues struct {
	configFile string
	precedence string
	onError    string
	format     string
	logLevel   string
	printAST   bool
}

func newRootCmd() *cobra.Command {
	var flags flagValues
	cmd := &cobra.Command{
		Use:   "gcalc [file]",
		Short: "Sum up the value of every arithmetic expression in a file",
		Long: `gcalc reads one expression per line from the given file, or from stdin when
the file is omitted or "-", and prints the sum of their values.

Expressions hold non-negative integers, "+", "-", "*", "/" and parentheses.
By default "+" and "-" bind tighter than "*" and "/"; see --precedence.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return &exitError{exitUsage, err}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, &flags)
		},
	}

	cmd.Flags().StringVar(&flags.configFile, "config", "", "Configuration file (YAML)")
	cmd.Flags().StringVar(&flags.precedence, "precedence", "", "Operator precedence: inverted, flat or standard")
	cmd.Flags().StringVar(&flags.onError, "on-error", "", "What to do with a failing line: skip or abort")
	cmd.Flags().StringVar(&flags.format, "format", "", "Output format: text, json or yaml")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	cmd.Flags().BoolVar(&flags.printAST, "print-ast", false, "Print the syntax tree of each line instead of the total")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &exitError{exitUsage, err}
	})
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		status := 1
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			status = exitErr.status
			err = exitErr.err
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(status)
	}
}

func run(cmd *cobra.Command, args []string, flags *flagValues) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return &exitError{exitUsage, err}
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := logging.New(cmd.ErrOrStderr(), level)

	input, err := openInput(cmd, args)
	if err != nil {
		return &exitError{exitIOErr, err}
	}
	defer input.Close()

	opts := cfg.Options()
	opts.Reporter = calc.NewColorReporter(cmd.ErrOrStderr())
	opts.Logger = logger
	opts.ParseOnly = flags.printAST
	logger.Debug("starting batch", "precedence", opts.Precedence, "onError", opts.OnError)

	summary, err := calc.Run(input, opts)
	var abortErr *calc.AbortError
	if errors.As(err, &abortErr) {
		// the reporter already printed the failure
		var runtimeErr *calc.RuntimeError
		if errors.As(abortErr, &runtimeErr) {
			return &exitError{exitSoftErr, nil}
		}
		return &exitError{exitDataErr, nil}
	}
	if err != nil {
		return &exitError{exitIOErr, err}
	}

	if err := writeSummary(cmd.OutOrStdout(), summary, cfg.Format, flags.printAST); err != nil {
		return &exitError{exitIOErr, err}
	}
	return nil
}

// loadConfig layers the defaults, the config file, the environment and the
// flags that were set on the command line.
func loadConfig(cmd *cobra.Command, flags *flagValues) (*config.Config, error) {
	cfg := config.Default()
	if flags.configFile != "" {
		if err := cfg.LoadFile(flags.configFile); err != nil {
			return nil, err
		}
	}
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)

	set := cmd.Flags()
	if set.Changed("precedence") {
		cfg.Precedence = flags.precedence
	}
	if set.Changed("on-error") {
		cfg.OnError = flags.onError
	}
	if set.Changed("format") {
		cfg.Format = flags.format
	}
	if set.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(args[0])
}

type exitError struct {
	status int
	err    error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.status)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

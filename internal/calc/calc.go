package calc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// defaultMaxLineSize bounds the length of a single input line.
const defaultMaxLineSize = 1 << 20

// ErrorPolicy decides what happens to a batch once a line fails.
type ErrorPolicy string

const (
	// OnErrorSkip reports the failing line, leaves it out of the total and
	// carries on with the next line.
	OnErrorSkip ErrorPolicy = "skip"
	// OnErrorAbort stops the batch at the first failing line.
	OnErrorAbort ErrorPolicy = "abort"
)

// ParseErrorPolicy returns the policy with the given name.
func ParseErrorPolicy(name string) (ErrorPolicy, error) {
	switch p := ErrorPolicy(strings.ToLower(strings.TrimSpace(name))); p {
	case OnErrorSkip, OnErrorAbort:
		return p, nil
	case "":
		return OnErrorSkip, nil
	}
	return "", fmt.Errorf("unknown error policy %q", name)
}

// Options configures a batch run. The zero value is usable.
type Options struct {
	Precedence Precedence
	OnError    ErrorPolicy
	// Reporter receives every scan, parse and runtime error.
	Reporter Reporter
	Logger   *slog.Logger
	// ParseOnly stops each line after parsing; values and the total stay 0.
	ParseOnly bool
	// MaxLineSize is the longest line in bytes; longer lines fail.
	MaxLineSize int
}

func (opts Options) withDefaults() Options {
	if opts.Precedence == "" {
		opts.Precedence = PrecedenceInverted
	}
	if opts.OnError == "" {
		opts.OnError = OnErrorSkip
	}
	if opts.Reporter == nil {
		opts.Reporter = NewSimpleReporter(io.Discard)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.MaxLineSize <= 0 {
		opts.MaxLineSize = defaultMaxLineSize
	}
	return opts
}

// LineResult is the outcome of a single non-empty line.
type LineResult struct {
	Line   int    `json:"line" yaml:"line"`
	Source string `json:"source" yaml:"source"`
	AST    string `json:"ast,omitempty" yaml:"ast,omitempty"`
	Value  int64  `json:"value" yaml:"value"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summary collects the results of a batch run.
type Summary struct {
	Total     int64        `json:"total" yaml:"total"`
	Evaluated int          `json:"evaluated" yaml:"evaluated"`
	Failed    int          `json:"failed" yaml:"failed"`
	Results   []LineResult `json:"results" yaml:"results"`
}

// Run evaluates every non-empty line of r and sums up the values. Lines are
// trimmed of surrounding white space and numbered from 1. With OnErrorAbort,
// the returned error is an *AbortError and the summary holds the lines that
// were processed before the failure.
func Run(r io.Reader, opts Options) (*Summary, error) {
	opts = opts.withDefaults()
	summary := &Summary{Results: make([]LineResult, 0)}

	lines := newLineReader(r, opts.MaxLineSize)
	lineNo := 0
	for {
		text, tooLong, err := lines.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return summary, fmt.Errorf("read input: %w", err)
		}
		lineNo++

		var (
			result LineResult
			val    int64
		)
		if tooLong {
			result = LineResult{Line: lineNo}
			err = NewScanError(lineNo, "Line is too long.")
			opts.Reporter.Report(err)
		} else {
			source := strings.TrimSpace(text)
			if source == "" {
				continue
			}
			result = LineResult{Line: lineNo, Source: source}
			result.AST, val, err = evalLine(source, lineNo, opts)
		}
		if err == nil {
			total, ok := addInt64(summary.Total, val)
			if !ok {
				err = NewRuntimeError(nil, "Total does not fit in a signed 64-bit integer.")
				opts.Reporter.Report(err)
			} else {
				summary.Total = total
			}
		}

		if err != nil {
			result.Error = err.Error()
			summary.Failed++
			summary.Results = append(summary.Results, result)
			opts.Logger.Debug("line failed", "line", lineNo, "error", err)
			if opts.OnError == OnErrorAbort {
				return summary, &AbortError{Line: lineNo, Err: err}
			}
			continue
		}

		result.Value = val
		summary.Evaluated++
		summary.Results = append(summary.Results, result)
		opts.Logger.Debug("line evaluated", "line", lineNo, "value", val)
	}

	opts.Logger.Info(
		"batch finished",
		"evaluated", summary.Evaluated,
		"failed", summary.Failed,
		"total", summary.Total,
	)
	return summary, nil
}

// ParseLine scans and parses a single line. It returns nil when an error was
// reported.
func ParseLine(source string, line int, precedence Precedence, reporter Reporter) Expr {
	scanner := NewScanner([]rune(source), line, reporter)
	tokens := scanner.Scan()
	if reporter.HadError() {
		return nil
	}
	return NewParserWithPrecedence(tokens, precedence, reporter).Parse()
}

// Eval scans, parses and evaluates a single line with the given precedence.
func Eval(source string, precedence Precedence) (int64, error) {
	_, val, err := evalLine(source, 1, Options{Precedence: precedence}.withDefaults())
	return val, err
}

// evalLine runs one line through the whole pipeline with fresh state. The
// printed tree is returned whenever parsing succeeded.
func evalLine(source string, line int, opts Options) (string, int64, error) {
	reporter := newLineReporter(opts.Reporter)

	expr := ParseLine(source, line, opts.Precedence, reporter)
	if expr == nil {
		return "", 0, reporter.err()
	}
	printer := AstPrinter{}
	ast := printer.Print(expr)
	opts.Logger.Debug("line parsed", "line", line, "ast", ast)
	if opts.ParseOnly {
		return ast, 0, nil
	}

	val, ok := NewInterpreter(reporter).Interpret(expr)
	if !ok {
		return ast, 0, reporter.err()
	}
	return ast, val, nil
}

// lineReader splits the input on "\n" or "\r\n". A line longer than max is
// consumed entirely but only flagged, so reading can carry on after it.
type lineReader struct {
	r   *bufio.Reader
	max int
}

func newLineReader(r io.Reader, max int) *lineReader {
	return &lineReader{bufio.NewReader(r), max}
}

// next returns io.EOF once the input is exhausted.
func (lr *lineReader) next() (string, bool, error) {
	var (
		buf     []byte
		tooLong bool
		started bool
	)
	for {
		chunk, isPrefix, err := lr.r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && started {
				return string(buf), tooLong, nil
			}
			return "", false, err
		}
		started = true
		if !tooLong {
			if len(buf)+len(chunk) > lr.max {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

// lineReporter keeps the errors of a single line and forwards them.
type lineReporter struct {
	next          Reporter
	errors        []error
	hadErr        bool
	hadRuntimeErr bool
}

func newLineReporter(next Reporter) *lineReporter {
	return &lineReporter{next: next}
}

func (reporter *lineReporter) Report(err error) {
	reporter.errors = append(reporter.errors, err)
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) {
		reporter.hadRuntimeErr = true
	} else {
		reporter.hadErr = true
	}
	reporter.next.Report(err)
}

func (reporter *lineReporter) HadError() bool {
	return reporter.hadErr
}

func (reporter *lineReporter) HadRuntimeError() bool {
	return reporter.hadRuntimeErr
}

func (reporter *lineReporter) Reset() {
	reporter.errors = nil
	reporter.hadErr = false
	reporter.hadRuntimeErr = false
}

func (reporter *lineReporter) err() error {
	return errors.Join(reporter.errors...)
}

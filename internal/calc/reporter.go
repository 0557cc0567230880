package calc

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter defines the interface for structure that can display errors to the
// user. A reporter is defined to separated errors reporting code from errors
// displaying code.
type Reporter interface {
	Report(err error)
	HadError() bool
	HadRuntimeError() bool
	Reset()
}

// SimpleReporter writes error as-is to inner writer
type SimpleReporter struct {
	writer        io.Writer
	paint         *color.Color
	hadErr        bool
	hadRuntimeErr bool
}

func NewSimpleReporter(writer io.Writer) Reporter {
	return &SimpleReporter{writer: writer}
}

// NewColorReporter is a SimpleReporter that highlights errors in red. Colors
// are dropped when the process is not attached to a terminal.
func NewColorReporter(writer io.Writer) Reporter {
	return &SimpleReporter{writer: writer, paint: color.New(color.FgRed)}
}

func (reporter *SimpleReporter) Report(err error) {
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) {
		reporter.hadRuntimeErr = true
	} else {
		reporter.hadErr = true
	}
	if reporter.paint != nil {
		reporter.paint.Fprintln(reporter.writer, err)
		return
	}
	fmt.Fprintln(reporter.writer, err)
}

func (reporter *SimpleReporter) HadError() bool {
	return reporter.hadErr
}

func (reporter *SimpleReporter) HadRuntimeError() bool {
	return reporter.hadRuntimeErr
}

func (reporter *SimpleReporter) Reset() {
	reporter.hadErr = false
	reporter.hadRuntimeErr = false
}

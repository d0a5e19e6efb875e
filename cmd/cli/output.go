package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/samber/lo"

	"github.com/limaJavier/satmodeler/pkg/sat"
)

// printer colors its output only when writing to a terminal
type printer struct {
	out      io.Writer
	verdicts map[sat.Verdict]*color.Color
	name     *color.Color
	faint    *color.Color
}

func newPrinter(out io.Writer) *printer {
	printer := &printer{
		out: out,
		verdicts: map[sat.Verdict]*color.Color{
			sat.Sat:     color.New(color.FgGreen, color.Bold),
			sat.Unsat:   color.New(color.FgRed, color.Bold),
			sat.Timeout: color.New(color.FgYellow, color.Bold),
			sat.Failure: color.New(color.FgRed),
		},
		name:  color.New(color.FgCyan),
		faint: color.New(color.Faint),
	}

	colored := isTerminal(out)
	for _, c := range append([]*color.Color{printer.name, printer.faint}, lo.Values(printer.verdicts)...) {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return printer
}

func (printer *printer) verdict(verdict sat.Verdict, solver string, duration time.Duration) {
	fmt.Fprintf(printer.out, "%v %v\n",
		printer.verdicts[verdict].Sprint(verdict),
		printer.faint.Sprintf("(%v, %v)", solver, duration.Round(time.Millisecond)),
	)
}

func (printer *printer) assignment(name string, value bool) {
	fmt.Fprintf(printer.out, "%v = %v\n", printer.name.Sprint(name), value)
}

func (printer *printer) solver(info sat.SolverInfo, isDefault bool) {
	status := printer.verdicts[sat.Sat].Sprint("ready")
	if !info.Ready {
		status = printer.faint.Sprint("missing")
	}
	marker := " "
	if isDefault {
		marker = "*"
	}
	fmt.Fprintf(printer.out, "%v %d %-16v %-8v %-12v %v\n", marker, info.ID, printer.name.Sprint(info.Key), status, info.InputMode, info.Executable)
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

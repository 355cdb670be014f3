package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

type scanProgressReporter struct {
	enabled bool
	out     io.Writer
	label   string
	start   time.Time
	spinner int
	count   int
	lastLen int
}

func newScanProgressReporter(label string, out io.Writer, quiet bool) *scanProgressReporter {
	f, ok := out.(*os.File)
	enabled := ok && term.IsTerminal(int(f.Fd())) && !quiet
	return &scanProgressReporter{
		enabled: enabled,
		out:     out,
		label:   label,
		start:   time.Now(),
	}
}

func (r *scanProgressReporter) Update(file string) {
	r.count++
	if !r.enabled {
		return
	}
	frames := [4]string{"-", "\\", "|", "/"}
	frame := frames[r.spinner%len(frames)]
	r.spinner++
	file = strings.TrimSpace(file)
	if len(file) > 88 {
		file = "..." + file[len(file)-85:]
	}
	r.printStatus(fmt.Sprintf("%s %s %d scanning %s", frame, r.label, r.count, file))
}

// Clear wipes the status line so a log line can be printed cleanly.
func (r *scanProgressReporter) Clear() {
	if !r.enabled || r.lastLen == 0 {
		return
	}
	fmt.Fprintf(r.out, "\r%s\r", strings.Repeat(" ", r.lastLen))
	r.lastLen = 0
}

func (r *scanProgressReporter) Done() {
	if !r.enabled || r.count == 0 {
		return
	}
	elapsed := time.Since(r.start).Round(time.Millisecond)
	r.printStatus(fmt.Sprintf("%s complete (%d files in %s)", r.label, r.count, elapsed))
	fmt.Fprintln(r.out)
	r.lastLen = 0
}

func (r *scanProgressReporter) printStatus(status string) {
	if r.lastLen > len(status) {
		status = status + strings.Repeat(" ", r.lastLen-len(status))
	}
	r.lastLen = len(status)
	fmt.Fprintf(r.out, "\r%s", status)
}

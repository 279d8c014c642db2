package install

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorDim    = lipgloss.Color("240")
)

var (
	styleTask    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleCommand = lipgloss.NewStyle().Foreground(colorDim)
	styleOutput  = lipgloss.NewStyle().Foreground(colorDim)
	styleDone    = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleFailed  = lipgloss.NewStyle().Foreground(colorRed)
)

const indentUnit = "  "

// Warning is a soft inconsistency noticed during the run, such as an
// existing config file that differs from the shipped one.
type Warning struct {
	Message string
	Diff    string
}

// Reporter writes the task log. It implements shell.Observer so command
// echo and output appear nested under the current task.
type Reporter struct {
	mu       sync.Mutex
	out      io.Writer
	file     io.Writer
	logger   *log.Logger
	depth    int
	warnings []Warning
}

// NewReporter writes styled output to out and, when file is non-nil, a plain
// copy to file. Debug events go to logger, which may be nil.
func NewReporter(out, file io.Writer, logger *log.Logger) *Reporter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Reporter{out: out, file: file, logger: logger}
}

// Task prints a "▶ name" header and runs fn with everything it reports
// indented one level deeper.
func (r *Reporter) Task(name string, fn func() error) error {
	r.line(styleTask.Render("▶ " + name))
	r.logger.Debug("task started", "task", name)

	r.mu.Lock()
	r.depth++
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.depth--
		r.mu.Unlock()
	}()

	err := fn()
	if err != nil {
		r.logger.Debug("task failed", "task", name, "err", err)
	}
	return err
}

// Log prints an informational line in the current task.
func (r *Reporter) Log(format string, args ...any) {
	r.line(fmt.Sprintf(format, args...))
}

// Done prints a success line in the current task.
func (r *Reporter) Done(format string, args ...any) {
	r.line(styleDone.Render(fmt.Sprintf(format, args...)))
}

// Fail prints a failure line in the current task.
func (r *Reporter) Fail(format string, args ...any) {
	r.line(styleFailed.Render(fmt.Sprintf(format, args...)))
}

// Warn prints a warning now and records it for the summary.
func (r *Reporter) Warn(msg, diff string) {
	r.line(styleWarning.Render("WARNING: " + msg))
	r.mu.Lock()
	r.warnings = append(r.warnings, Warning{Message: msg, Diff: diff})
	r.mu.Unlock()
}

// Warnings returns the warnings recorded so far.
func (r *Reporter) Warnings() []Warning {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Warning(nil), r.warnings...)
}

// Command echoes a command about to run.
func (r *Reporter) Command(cmd string) {
	r.line(styleCommand.Render("$ " + cmd))
}

// Output prints one line of command output.
func (r *Reporter) Output(line string) {
	r.line(styleOutput.Render(line))
}

// Summary replays the recorded warnings with their diffs.
func (r *Reporter) Summary() {
	warnings := r.Warnings()
	if len(warnings) == 0 {
		return
	}
	r.line("")
	r.line(styleWarning.Render("Warnings:"))
	for _, w := range warnings {
		r.line(indentUnit + "- " + w.Message)
		for _, d := range strings.Split(w.Diff, "\n") {
			if d != "" {
				r.line(indentUnit + indentUnit + d)
			}
		}
	}
}

func (r *Reporter) line(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefix := strings.Repeat(indentUnit, r.depth)
	for _, l := range strings.Split(msg, "\n") {
		fmt.Fprintln(r.out, prefix+l)
		if r.file != nil {
			fmt.Fprintln(r.file, ansi.Strip(prefix+l))
		}
	}
}

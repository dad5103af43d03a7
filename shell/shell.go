package shell

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Shell writes user-facing lines to one stream, styled when the stream
// supports color. This is the only place the tool talks to a console;
// core packages hand their warnings and results up as data.
type Shell struct {
	out      io.Writer
	renderer *lipgloss.Renderer
}

func NewShell(out io.Writer, color bool) *Shell {
	profile := termenv.Ascii
	if color {
		profile = termenv.ANSI
	}
	// SetColorProfile is required because lipgloss.Renderer.ColorProfile()
	// ignores the termenv option and re-detects from the writer.
	renderer := lipgloss.NewRenderer(out, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)
	return &Shell{out: out, renderer: renderer}
}

// Style returns a fresh style bound to this shell's color capability.
// On a colorless shell every derived style renders plain text.
func (s *Shell) Style() lipgloss.Style {
	return s.renderer.NewStyle()
}

func (s *Shell) Say(message string, style lipgloss.Style) error {
	_, err := fmt.Fprintln(s.out, style.Render(message))
	return err
}

// SayStatus writes the status verb right-aligned to 12 columns followed
// by the plain message. Alignment happens before styling so escape
// sequences don't count against the width.
func (s *Shell) SayStatus(status string, message string, style lipgloss.Style) error {
	_, err := fmt.Fprintf(s.out, "%s %s\n", style.Render(fmt.Sprintf("%12s", status)), message)
	return err
}

// Callback runs against the shell only when its verbosity matches.
type Callback func(*MultiShell) error

// MultiShell pairs an output shell with an error shell and gates
// verbose-only reporting. Status lines and results go to out, warnings
// and errors to err.
type MultiShell struct {
	out     *Shell
	err     *Shell
	verbose bool

	statusStyle lipgloss.Style
	warnStyle   lipgloss.Style
	errorStyle  lipgloss.Style
}

func NewMultiShell(out io.Writer, err io.Writer, color bool, verbose bool) *MultiShell {
	outShell := NewShell(out, color)
	errShell := NewShell(err, color)
	return &MultiShell{
		out:         outShell,
		err:         errShell,
		verbose:     verbose,
		statusStyle: outShell.Style().Foreground(lipgloss.Color("2")).Bold(true),
		warnStyle:   errShell.Style().Foreground(lipgloss.Color("3")),
		errorStyle:  errShell.Style().Foreground(lipgloss.Color("1")),
	}
}

// Stdio builds the shell for a terminal session. Color is on unless
// disabled by flag, by NO_COLOR, or because stdout is not a terminal.
func Stdio(noColor bool, verbose bool) *MultiShell {
	color := !noColor && !termenv.EnvNoColor() &&
		termenv.NewOutput(os.Stdout).ColorProfile() != termenv.Ascii
	return NewMultiShell(os.Stdout, os.Stderr, color, verbose)
}

func (m *MultiShell) Out() *Shell {
	return m.out
}

func (m *MultiShell) Err() *Shell {
	return m.err
}

func (m *MultiShell) Say(message string) error {
	return m.out.Say(message, m.out.Style())
}

// Status reports one step of progress, e.g. Status("Planning", pkg).
func (m *MultiShell) Status(status string, message string) error {
	return m.out.SayStatus(status, message, m.statusStyle)
}

func (m *MultiShell) Warn(message string) error {
	return m.err.Say(message, m.warnStyle)
}

func (m *MultiShell) Error(message string) error {
	return m.err.Say(message, m.errorStyle)
}

func (m *MultiShell) Verbose(callback Callback) error {
	if m.verbose {
		return callback(m)
	}
	return nil
}

func (m *MultiShell) Concise(callback Callback) error {
	if !m.verbose {
		return callback(m)
	}
	return nil
}

func (m *MultiShell) SetVerbose(verbose bool) {
	m.verbose = verbose
}

func (m *MultiShell) IsVerbose() bool {
	return m.verbose
}

package question

import (
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-tty"
	"golang.org/x/term"
)

// terminalInterface abstracts the terminal a Readline reads key presses from.
//
// Implementations:
//   - realTerminal: go-tty for input, x/term for raw mode
//   - mockTerminal: scripted input for tests
type terminalInterface interface {
	SetRaw() error                        // Enter raw mode for immediate key processing
	Restore() error                       // Restore original terminal settings
	Size() (width, height int, err error) // Get terminal dimensions with safe fallbacks
	ReadRune() (rune, int, error)         // Read a single Unicode character from input
	Output() io.Writer                    // Writer the renderer draws on
	Close() error                         // Clean up resources and prevent fd leaks
}

// realTerminal implements terminalInterface on top of go-tty.
//
// Raw mode is managed with golang.org/x/term on stdin so the original state can be
// restored between prompts, and output goes through go-colorable on Windows so the
// ANSI sequences of the screen renderer are interpreted there as well.
type realTerminal struct {
	tty           *tty.TTY    // TTY handle from go-tty for cross-platform terminal operations
	output        io.Writer   // Color-capable output writer (colorable on Windows, stdout elsewhere)
	closed        bool        // Track if terminal is already closed to prevent double-close panic on Windows
	stdinFd       int         // File descriptor for stdin for raw mode management
	originalState *term.State // Original terminal state to restore on exit
}

func newRealTerminal() (*realTerminal, error) {
	t, err := tty.Open()
	if err != nil {
		return nil, err
	}

	return &realTerminal{
		tty:     t,
		output:  defaultOutput(),
		stdinFd: int(os.Stdin.Fd()),
	}, nil
}

// defaultOutput returns stdout, wrapped by go-colorable on Windows.
func defaultOutput() io.Writer {
	if runtime.GOOS == "windows" {
		return colorable.NewColorableStdout()
	}
	return os.Stdout
}

func (t *realTerminal) SetRaw() error {
	if !term.IsTerminal(t.stdinFd) {
		return nil
	}
	state, err := term.GetState(t.stdinFd)
	if err != nil {
		return err
	}
	t.originalState = state

	_, err = term.MakeRaw(t.stdinFd)
	return err
}

func (t *realTerminal) Restore() error {
	if t.originalState != nil && term.IsTerminal(t.stdinFd) {
		err := term.Restore(t.stdinFd, t.originalState)
		// Capture a fresh baseline on the next SetRaw
		t.originalState = nil
		return err
	}
	return nil
}

func (t *realTerminal) Size() (width, height int, err error) {
	w, h, err := t.tty.Size()
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24, err
	}
	return w, h, nil
}

func (t *realTerminal) ReadRune() (rune, int, error) {
	r, err := t.tty.ReadRune()
	if err != nil {
		return 0, 0, err
	}
	return r, 1, nil
}

func (t *realTerminal) Output() io.Writer {
	return t.output
}

func (t *realTerminal) Close() error {
	// Double close panics on Windows
	if t.closed {
		return nil
	}
	if t.tty != nil {
		err := t.tty.Close()
		t.closed = true
		return err
	}
	return nil
}

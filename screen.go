package question

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
)

// Renderer is the output boundary of a prompt. It owns cursor movement and
// screen clearing; prompts only hand it text.
type Renderer interface {
	// Render repaints the prompt. content is the question block, bottom an
	// optional line shown below it (usually an error message).
	Render(content, bottom string) error
	// Done finishes the prompt's output so the next prompt starts on a fresh line.
	Done() error
}

// Screen is the default Renderer. It writes ANSI sequences to an io.Writer
// and erases what it drew before on every repaint.
type Screen struct {
	mu        sync.Mutex
	output    io.Writer
	width     func() int // Terminal columns, 0 when unknown
	rows      int        // Rows drawn by the previous Render, wrapped lines included
	cursorRow int        // Row of the cursor within the previous frame
	history   []string
}

// ScreenOption configures a Screen.
type ScreenOption func(*Screen)

// WithScreenWidth sets how the screen learns the terminal width. Lines wider
// than the terminal wrap, and the screen needs the width to erase them.
func WithScreenWidth(width func() int) ScreenOption {
	return func(s *Screen) {
		s.width = width
	}
}

// NewScreen creates a screen renderer writing to output.
func NewScreen(output io.Writer, options ...ScreenOption) *Screen {
	s := &Screen{output: output}
	for _, option := range options {
		option(s)
	}
	return s
}

// Render clears the previous frame and draws content followed by bottom.
// The cursor is left at the end of content, above the bottom block.
func (s *Screen) Render(content, bottom string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.clearPrevious(); err != nil {
		return err
	}

	frame := content
	if bottom != "" {
		frame += "\n" + bottom
	}
	width := s.columns()
	lines := splitIntoLines(frame)
	for i, line := range lines {
		if i > 0 {
			if _, err := fmt.Fprint(s.output, "\r\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(s.output, line); err != nil {
			return err
		}
	}

	rows := 0
	for _, line := range lines {
		rows += rowsOf(line, width)
	}

	// Place the cursor after the last content line
	contentLines := splitIntoLines(content)
	last := visibleWidth(contentLines[len(contentLines)-1])
	lastRows := rowsOf(contentLines[len(contentLines)-1], width)
	target := -1
	for _, line := range contentLines {
		target += rowsOf(line, width)
	}
	col := last
	if width > 0 {
		col = last - (lastRows-1)*width
	}
	if up := rows - 1 - target; up > 0 {
		if _, err := fmt.Fprintf(s.output, "\x1b[%dA", up); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(s.output, "\r"); err != nil {
		return err
	}
	if col > 0 {
		if _, err := fmt.Fprintf(s.output, "\x1b[%dC", col); err != nil {
			return err
		}
	}

	s.rows = rows
	s.cursorRow = target
	s.history = append(s.history, frame)
	return nil
}

// Done moves below the last frame and forgets it.
func (s *Screen) Done() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if down := s.rows - 1 - s.cursorRow; down > 0 {
		if _, err := fmt.Fprintf(s.output, "\x1b[%dB", down); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(s.output, "\r\n")
	s.rows = 0
	s.cursorRow = 0
	return err
}

// Frames returns every frame rendered so far, without cursor movement.
func (s *Screen) Frames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...)
}

// clearPrevious moves to the first row of the last frame and erases from
// there to the end of the screen.
func (s *Screen) clearPrevious() error {
	if s.cursorRow > 0 {
		if _, err := fmt.Fprintf(s.output, "\x1b[%dA", s.cursorRow); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(s.output, "\r\x1b[J")
	return err
}

func (s *Screen) columns() int {
	if s.width == nil {
		return 0
	}
	return max(s.width(), 0)
}

// rowsOf returns how many terminal rows line takes at the given width.
func rowsOf(line string, width int) int {
	w := visibleWidth(line)
	if width <= 0 || w <= width {
		return 1
	}
	return (w + width - 1) / width
}

func visibleWidth(line string) int {
	return runewidth.StringWidth(stripANSI(line))
}

func splitIntoLines(input string) []string {
	if input == "" {
		return []string{""}
	}
	return strings.Split(input, "\n")
}

// stripANSI removes CSI escape sequences so visible widths can be measured.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inEscape:
			if c >= '@' && c <= '~' && c != '[' {
				inEscape = false
			}
		case c == '\x1b':
			inEscape = true
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

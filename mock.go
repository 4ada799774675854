package question

import (
	"bytes"
	"io"
	"sync"
)

// mockTerminal implements terminalInterface with a scripted key sequence.
//
// Once the script is consumed ReadRune blocks until Close, the way a real
// terminal waits for the next key, and then reports io.EOF. Output is
// collected in a buffer so tests can inspect what the screen drew.
type mockTerminal struct {
	mu           sync.Mutex
	input        []rune        // Pre-configured input sequence
	inputPos     int           // Current position in the input sequence
	rawMode      bool          // Track raw mode state for test verification
	terminalSize [2]int        // Fixed terminal dimensions [width, height]
	output       *syncBuffer   // Everything rendered to the terminal
	done         chan struct{} // Closed by Close to release a blocked ReadRune
	closeOnce    sync.Once
}

func newMockTerminal(input string) *mockTerminal {
	return &mockTerminal{
		input:        []rune(input),
		terminalSize: [2]int{80, 24},
		output:       &syncBuffer{},
		done:         make(chan struct{}),
	}
}

func (m *mockTerminal) SetRaw() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rawMode = true
	return nil
}

func (m *mockTerminal) Restore() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rawMode = false
	return nil
}

func (m *mockTerminal) isRaw() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rawMode
}

func (m *mockTerminal) Size() (width, height int, err error) {
	return m.terminalSize[0], m.terminalSize[1], nil
}

func (m *mockTerminal) ReadRune() (rune, int, error) {
	m.mu.Lock()
	if m.inputPos < len(m.input) {
		r := m.input[m.inputPos]
		m.inputPos++
		m.mu.Unlock()
		return r, 1, nil
	}
	m.mu.Unlock()

	<-m.done
	return 0, 0, io.EOF
}

func (m *mockTerminal) Output() io.Writer {
	return m.output
}

func (m *mockTerminal) Close() error {
	m.closeOnce.Do(func() { close(m.done) })
	return nil
}

// syncBuffer is a bytes.Buffer safe for the concurrent writes of a
// read loop and a test goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

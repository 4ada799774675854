package question

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Source is the input boundary of a prompt: a live stream of key presses plus
// a distinct "line submitted" notification. Sources are shared by sequential
// prompts; every prompt removes its own subscriptions when it finishes.
type Source interface {
	// OnKeypress subscribes to raw key presses. Enter/Return are not delivered here.
	OnKeypress(fn func(KeyEvent)) (unsubscribe func())
	// OnLine subscribes to line submissions carrying the accumulated text.
	OnLine(fn func(string)) (unsubscribe func())
	// OnClose subscribes to the end of input for the current prompt.
	OnClose(fn func(error)) (unsubscribe func())
	// Line returns the text accumulated since the last submission.
	Line() string
	// SetLine replaces the accumulated text.
	SetLine(line string)
	// Submit emits a line submission, as if the user pressed Enter with line typed.
	Submit(line string)
	// Abort signals subscribers that the current prompt must stop waiting for input.
	Abort(err error)
}

// Readline turns a terminal into a Source. It reads runes in raw mode, decodes
// them through a KeyMap, keeps a minimal editable line buffer and publishes
// keypress, line and close notifications.
//
// Readline is meant to be created once and shared by every prompt of a
// program. Press and Submit can be called directly, which is how tests drive it.
type Readline struct {
	terminal terminalInterface
	keyMap   *KeyMap
	logger   *zap.Logger

	mu     sync.Mutex
	line   []rune
	cursor int
	err    error // terminal error that ended the read loop

	keypress *emitter[KeyEvent]
	lines    *emitter[string]
	closes   *emitter[error]

	startOnce sync.Once
	closeOnce sync.Once
	stop      chan struct{}
	loopDone  chan struct{}
}

type readlineConfig struct {
	keyMap *KeyMap
	logger *zap.Logger
}

// ReadlineOption configures a Readline.
type ReadlineOption func(*readlineConfig)

// WithKeyMap sets the key bindings used to decode terminal input
func WithKeyMap(keyMap *KeyMap) ReadlineOption {
	return func(c *readlineConfig) {
		c.keyMap = keyMap
	}
}

// WithReadlineLogger sets the logger for terminal level events
func WithReadlineLogger(logger *zap.Logger) ReadlineOption {
	return func(c *readlineConfig) {
		c.logger = logger
	}
}

// NewReadline opens the controlling terminal and returns a Readline reading from it.
//
// Example:
//
//	rl, err := question.NewReadline()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer rl.Close()
func NewReadline(options ...ReadlineOption) (*Readline, error) {
	terminal, err := newRealTerminal()
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal: %w", err)
	}
	return newReadline(terminal, options...), nil
}

func newReadline(terminal terminalInterface, options ...ReadlineOption) *Readline {
	cfg := readlineConfig{}
	for _, option := range options {
		option(&cfg)
	}
	if cfg.keyMap == nil {
		cfg.keyMap = NewDefaultKeyMap()
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	return &Readline{
		terminal: terminal,
		keyMap:   cfg.keyMap,
		logger:   cfg.logger,
		keypress: newEmitter[KeyEvent](),
		lines:    newEmitter[string](),
		closes:   newEmitter[error](),
		stop:     make(chan struct{}),
		loopDone: make(chan struct{}),
	}
}

// Start puts the terminal in raw mode and starts the read loop. Calling it
// again is a no-op, so every prompt may call it before waiting for input.
func (r *Readline) Start() error {
	var err error
	r.startOnce.Do(func() {
		if r.terminal == nil {
			close(r.loopDone)
			return
		}
		if err = r.terminal.SetRaw(); err != nil {
			err = fmt.Errorf("failed to enter raw mode: %w", err)
			close(r.loopDone)
			return
		}
		go r.loop()
	})
	return err
}

func (r *Readline) loop() {
	defer close(r.loopDone)

	for {
		rn, _, err := r.terminal.ReadRune()
		if err != nil {
			select {
			case <-r.stop:
				return
			default:
			}
			if errors.Is(err, io.EOF) {
				err = ErrEOF
			} else {
				err = fmt.Errorf("failed to read input: %w", err)
			}
			r.fail(err)
			return
		}

		var ev KeyEvent
		if rn == '\x1b' {
			seq, err := r.readEscapeSequence()
			if err != nil {
				continue
			}
			ev = r.keyMap.DecodeSequence(seq)
		} else {
			ev = r.keyMap.Decode(rn)
		}
		r.Press(ev)
	}
}

func (r *Readline) readEscapeSequence() (string, error) {
	seq := make([]rune, 0, 10)
	for range 10 { // Limit to prevent infinite loop
		rn, _, err := r.terminal.ReadRune()
		if err != nil {
			return "", err
		}
		seq = append(seq, rn)
		if isSequenceComplete(seq) {
			break
		}
	}
	return string(seq), nil
}

func (r *Readline) fail(err error) {
	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
	r.logger.Debug("read loop stopped", zap.Error(err))
	r.closes.emit(err)
}

// Press feeds one key press through the line editor and publishes it.
// Enter/Return submit the line instead, Ctrl+C aborts with ErrInterrupted
// and Ctrl+D on an empty line aborts with ErrEOF.
func (r *Readline) Press(ev KeyEvent) {
	key := ev.Key
	switch {
	case key.Name == "enter" || key.Name == "return":
		r.Submit(r.Line())
		return
	case key.Ctrl && key.Name == "c":
		r.Abort(ErrInterrupted)
		return
	case key.Ctrl && key.Name == "d" && r.Line() == "":
		r.Abort(ErrEOF)
		return
	}

	r.mu.Lock()
	switch {
	case key.Name == "backspace":
		if r.cursor > 0 {
			r.line = append(r.line[:r.cursor-1], r.line[r.cursor:]...)
			r.cursor--
		}
	case key.Name == "delete":
		if r.cursor < len(r.line) {
			r.line = append(r.line[:r.cursor], r.line[r.cursor+1:]...)
		}
	case key.Name == "left" && !key.Ctrl:
		if r.cursor > 0 {
			r.cursor--
		}
	case key.Name == "right" && !key.Ctrl:
		if r.cursor < len(r.line) {
			r.cursor++
		}
	case key.Name == "home" || key.Ctrl && key.Name == "a":
		r.cursor = 0
	case key.Name == "end" || key.Ctrl && key.Name == "e":
		r.cursor = len(r.line)
	case key.Ctrl && key.Name == "u":
		r.line = r.line[:0]
		r.cursor = 0
	case ev.Value != "" && !key.Ctrl && !key.Meta:
		ins := []rune(ev.Value)
		r.line = append(r.line[:r.cursor], append(ins, r.line[r.cursor:]...)...)
		r.cursor += len(ins)
	}
	r.mu.Unlock()

	r.keypress.emit(ev)
}

// Submit publishes a line submission carrying line and clears the buffer.
func (r *Readline) Submit(line string) {
	r.mu.Lock()
	r.line = r.line[:0]
	r.cursor = 0
	r.mu.Unlock()

	r.lines.emit(line)
}

// Abort publishes err to every close subscriber. The read loop keeps running
// so the next prompt can use the same Readline.
func (r *Readline) Abort(err error) {
	r.closes.emit(err)
}

// Line returns the text typed since the last submission.
func (r *Readline) Line() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return string(r.line)
}

// SetLine replaces the current text and moves the cursor to its end.
func (r *Readline) SetLine(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.line = []rune(line)
	r.cursor = len(r.line)
}

// Cursor returns the cursor position within Line, in runes.
func (r *Readline) Cursor() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cursor
}

func (r *Readline) OnKeypress(fn func(KeyEvent)) func() {
	return r.keypress.Subscribe(fn)
}

func (r *Readline) OnLine(fn func(string)) func() {
	return r.lines.Subscribe(fn)
}

// OnClose subscribes fn to the end of input. When the read loop has already
// stopped, fn is called right away with the terminal error.
func (r *Readline) OnClose(fn func(error)) func() {
	unsubscribe := r.closes.Subscribe(fn)
	r.mu.Lock()
	err := r.err
	r.mu.Unlock()
	if err != nil {
		fn(err)
	}
	return unsubscribe
}

// Width returns the terminal width in columns, or 0 without a terminal.
func (r *Readline) Width() int {
	if r.terminal == nil {
		return 0
	}
	w, _, err := r.terminal.Size()
	if err != nil {
		r.logger.Debug("failed to get terminal size", zap.Error(err))
	}
	return w
}

// Output returns the writer prompts render on.
func (r *Readline) Output() io.Writer {
	if r.terminal == nil {
		return defaultOutput()
	}
	return r.terminal.Output()
}

// Close restores the terminal and releases it. A prompt still waiting for
// input ends with ErrClosed. It is safe to call Close multiple times.
func (r *Readline) Close() error {
	var err error
	r.closeOnce.Do(func() {
		close(r.stop)
		r.mu.Lock()
		failed := r.err != nil
		r.mu.Unlock()
		if !failed {
			r.fail(ErrClosed)
		}
		if r.terminal == nil {
			return
		}
		if rerr := r.terminal.Restore(); rerr != nil {
			r.logger.Warn("failed to restore terminal state", zap.Error(rerr))
		}
		// Show the cursor again
		fmt.Fprint(r.terminal.Output(), "\x1b[?25h")
		err = r.terminal.Close()
	})
	return err
}

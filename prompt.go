package question

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Status is the lifecycle state of a prompt. It only moves forward.
type Status int

const (
	// StatusPending means the prompt is waiting for a valid answer
	StatusPending Status = iota
	// StatusAnswered means a valid answer was accepted
	StatusAnswered
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusAnswered:
		return "answered"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Kind names a prompt type.
type Kind string

// Prompt kinds
const (
	KindInput    Kind = "input"
	KindConfirm  Kind = "confirm"
	KindExpand   Kind = "expand"
	KindList     Kind = "list"
	KindCheckbox Kind = "checkbox"
)

// behavior is the per-type part of a prompt.
type behavior interface {
	kind() Kind
	// run wires the prompt type to p's event streams and draws the first
	// frame. done must be called with the accepted answer.
	run(p *Prompt, done func(any))
}

// defaultHinter lets a prompt type replace the "(default)" hint of Question.
type defaultHinter interface {
	defaultHint(p *Prompt) (string, bool)
}

// base is the behavior without any interaction: it resolves immediately with nil.
type base struct{}

func (base) kind() Kind { return "base" }

func (base) run(_ *Prompt, done func(any)) { done(nil) }

type starter interface {
	Start() error
}

type outputter interface {
	Output() io.Writer
}

type widther interface {
	Width() int
}

// Prompt is one question's interactive turn. It is created by one of the
// kind constructors (NewInput, NewExpand, ...), run once, and discarded.
type Prompt struct {
	id       string
	behavior behavior
	question Question
	filter   FilterFunc
	validate ValidateFunc
	answers  Answers
	choices  *Choices
	source   Source
	renderer Renderer
	theme    *Theme
	logger   *zap.Logger

	mu        sync.Mutex
	status    Status
	answer    any
	started   bool
	cancelled bool
	ctx       context.Context
	stop      context.CancelFunc
	offs      []func()
	tornDown  bool

	events       *Events
	wentBack     chan struct{}
	wentBackOnce sync.Once
	closed       chan error
	teardownOnce sync.Once
}

func newPrompt(b behavior, q Question, src Source, options ...Option) (*Prompt, error) {
	if err := q.check(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, errors.New("question: nil source")
	}

	cfg := config{}
	for _, option := range options {
		option(&cfg)
	}
	if cfg.answers == nil {
		cfg.answers = Answers{}
	}
	if cfg.theme == nil {
		cfg.theme = ThemeDefault
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	if cfg.renderer == nil {
		output := cfg.output
		if output == nil {
			if o, ok := src.(outputter); ok {
				output = o.Output()
			} else {
				output = defaultOutput()
			}
		}
		var screenOptions []ScreenOption
		if w, ok := src.(widther); ok {
			screenOptions = append(screenOptions, WithScreenWidth(w.Width))
		}
		cfg.renderer = NewScreen(output, screenOptions...)
	}

	q = q.withDefaults()
	id := uuid.NewString()
	p := &Prompt{
		id:       id,
		behavior: b,
		question: q,
		filter:   q.Filter,
		validate: q.Validate,
		answers:  cfg.answers,
		source:   src,
		renderer: cfg.renderer,
		theme:    cfg.theme,
		logger: cfg.logger.With(
			zap.String("prompt_id", id),
			zap.String("name", q.Name),
			zap.String("kind", string(b.kind())),
		),
		ctx:      context.Background(),
		stop:     func() {},
		wentBack: make(chan struct{}),
		closed:   make(chan error, 1),
	}

	if q.Choices != nil {
		choices, err := NewChoices(q.Choices, cfg.answers)
		if err != nil {
			return nil, err
		}
		p.choices = choices
	}

	p.logger.Debug("prompt created")
	return p, nil
}

// Run starts the interactive turn and blocks until it ends.
//
// It returns the filtered value of the first attempt that passes validation.
// Invalid attempts are shown to the user and never returned. Run returns
// ErrGoBack when the go-back handler took over, the source's error when input
// ends (ErrInterrupted, ErrEOF) and ctx.Err() when ctx is done.
//
// Example:
//
//	p, err := question.NewInput(question.Question{Name: "user", Message: "User name"}, rl)
//	if err != nil {
//		log.Fatal(err)
//	}
//	name, err := p.Run(ctx)
func (p *Prompt) Run(ctx context.Context) (any, error) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return nil, ErrAlreadyRun
	}
	p.started = true
	p.ctx, p.stop = context.WithCancel(ctx)
	p.mu.Unlock()
	defer p.teardown()

	resolved := make(chan any, 1)
	var once sync.Once
	done := func(value any) {
		once.Do(func() {
			p.markAnswered(value)
			resolved <- value
		})
	}

	p.track(p.source.OnClose(func(err error) {
		select {
		case p.closed <- err:
		default:
		}
	}))
	events := observe(p.source, p)
	p.mu.Lock()
	p.events = events
	p.mu.Unlock()
	p.behavior.run(p, done)
	// Start reading only once every stream has its subscribers
	if s, ok := p.source.(starter); ok {
		if err := s.Start(); err != nil {
			return nil, err
		}
	}

	select {
	case value := <-resolved:
		p.logger.Debug("prompt answered")
		return value, nil
	case <-p.wentBack:
		return nil, ErrGoBack
	case err := <-p.closed:
		// A go-back abort from this prompt's own backspace ends once the handler ran
		if errors.Is(err, ErrGoBack) && p.isCancelled() {
			select {
			case <-p.wentBack:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		p.logger.Debug("input closed", zap.Error(err))
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// OnBackspace runs the go-back handler, if the question has one.
func (p *Prompt) OnBackspace() {
	if p.question.OnGoBack == nil {
		p.logger.Debug("no go-back handler")
		return
	}
	p.logger.Debug("running go-back handler")
	p.question.OnGoBack(p)
}

// cancel marks the prompt cancelled. It reports false, and does nothing,
// when the question has no go-back handler or the prompt already ended.
func (p *Prompt) cancel() bool {
	if p.question.OnGoBack == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancelled || p.status == StatusAnswered {
		return false
	}
	p.cancelled = true
	p.stop()
	p.logger.Debug("prompt cancelled by backspace")
	return true
}

// goBack detaches the prompt from its source, runs OnBackspace and then
// releases Run. Detaching first lets the handler start another prompt on
// the same source.
func (p *Prompt) goBack() {
	p.teardown()
	p.OnBackspace()
	p.wentBackOnce.Do(func() { close(p.wentBack) })
}

func (p *Prompt) isCancelled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancelled
}

func (p *Prompt) markAnswered(value any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = StatusAnswered
	p.answer = value
}

// answered returns the accepted answer, if any.
func (p *Prompt) answered() (any, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.answer, p.status == StatusAnswered
}

func (p *Prompt) context() context.Context {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctx
}

// track registers an unsubscribe function to run on teardown.
func (p *Prompt) track(off func()) {
	p.mu.Lock()
	if p.tornDown {
		p.mu.Unlock()
		off()
		return
	}
	p.offs = append(p.offs, off)
	p.mu.Unlock()
}

// teardown removes every subscription the prompt holds on its source.
func (p *Prompt) teardown() {
	p.teardownOnce.Do(func() {
		p.mu.Lock()
		offs := p.offs
		p.offs = nil
		p.tornDown = true
		stop := p.stop
		events := p.events
		p.mu.Unlock()

		stop()
		if events != nil {
			events.Close()
		}
		for _, off := range offs {
			off()
		}
	})
}

// Question renders the question preamble: the marker, the message and, while
// the prompt is not answered, the default value hint.
func (p *Prompt) Question() string {
	t := p.theme
	message := t.Marker.Sprint(t.MarkerSymbol) + " " + t.Message.Sprint(p.question.Message) + " "

	hint, ok := "", false
	if h, isHinter := p.behavior.(defaultHinter); isHinter {
		hint, ok = h.defaultHint(p)
	} else if p.question.Default != nil {
		hint, ok = fmt.Sprint(p.question.Default), true
	}
	if ok && p.Status() != StatusAnswered {
		message += t.Default.Sprint("("+hint+")") + " "
	}
	return message
}

// render hands a frame to the renderer. Render failures are logged, not
// returned: a broken terminal surfaces through the source instead.
func (p *Prompt) render(content, bottom string) {
	if err := p.renderer.Render(content, bottom); err != nil {
		p.logger.Warn("failed to render prompt", zap.Error(err))
	}
}

// errorLine formats an attempt error for the bottom of the prompt.
func (p *Prompt) errorLine(err error) string {
	if err == nil {
		return ""
	}
	return p.theme.Error.Sprint(">>") + " " + err.Error()
}

// finish draws the answered frame and releases the renderer.
func (p *Prompt) finish(content string) {
	p.render(content, "")
	if err := p.renderer.Done(); err != nil {
		p.logger.Warn("failed to finish rendering", zap.Error(err))
	}
}

// Status returns the lifecycle state.
func (p *Prompt) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Name returns the answer key of the question.
func (p *Prompt) Name() string { return p.question.Name }

// Kind returns the prompt type.
func (p *Prompt) Kind() Kind { return p.behavior.kind() }

// Answers returns the answers the prompt is bound to.
func (p *Prompt) Answers() Answers { return p.answers }

// Choices returns the normalized choice list, or nil.
func (p *Prompt) Choices() *Choices { return p.choices }

// Source returns the input the prompt reads from.
func (p *Prompt) Source() Source { return p.source }

// Applicable evaluates the question's When function against the bound answers.
func (p *Prompt) Applicable() bool {
	return p.question.When(p.answers)
}

// New creates a prompt of the given kind.
func New(k Kind, q Question, src Source, options ...Option) (*Prompt, error) {
	switch k {
	case KindInput, "":
		return NewInput(q, src, options...)
	case KindConfirm:
		return NewConfirm(q, src, options...)
	case KindExpand:
		return NewExpand(q, src, options...)
	case KindList:
		return NewList(q, src, options...)
	case KindCheckbox:
		return NewCheckbox(q, src, options...)
	default:
		return nil, fmt.Errorf("unknown prompt kind %q", k)
	}
}

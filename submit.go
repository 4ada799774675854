package question

import (
	"sync"

	"go.uber.org/zap"
)

// Outcome is the result of running one submission attempt through filter and validate.
type Outcome struct {
	Valid bool
	Value any   // Filtered value; nil when the filter failed
	Err   error // Why the attempt is invalid
}

// Submission evaluates submission attempts for one prompt. Success is
// delivered at most once, for the first attempt to complete valid; errors
// are delivered for every invalid attempt completing before that.
//
// Callbacks run one at a time and must not submit new attempts themselves.
type Submission struct {
	prompt  *Prompt
	success *emitter[any]
	errors  *emitter[Outcome]

	mu   sync.Mutex
	done bool
	off  func()
}

// HandleSubmitEvents runs every value of submit through the prompt's filter
// and validate functions. Attempts are evaluated concurrently and the first
// to complete valid wins; everything after it is discarded.
//
// When the prompt was already cancelled by its go-back handler nothing is
// subscribed, the source is aborted with ErrGoBack and nil is returned.
func (p *Prompt) HandleSubmitEvents(submit Stream[any]) *Submission {
	if p.isCancelled() {
		p.logger.Debug("go back already requested, closing input")
		p.source.Abort(ErrGoBack)
		return nil
	}

	s := &Submission{
		prompt:  p,
		success: newEmitter[any](),
		errors:  newEmitter[Outcome](),
	}
	off := submit.Subscribe(s.attempt)
	s.mu.Lock()
	s.off = off
	s.mu.Unlock()
	p.track(off)
	return s
}

// OnSuccess subscribes fn to the accepted value.
func (s *Submission) OnSuccess(fn func(value any)) (unsubscribe func()) {
	return s.success.Subscribe(fn)
}

// OnError subscribes fn to invalid attempts.
func (s *Submission) OnError(fn func(Outcome)) (unsubscribe func()) {
	return s.errors.Subscribe(fn)
}

// Done reports whether an attempt was accepted.
func (s *Submission) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *Submission) attempt(raw any) {
	if s.Done() {
		return
	}
	go func() {
		s.deliver(s.prompt.evaluate(raw))
	}()
}

func (s *Submission) deliver(outcome Outcome) {
	p := s.prompt

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done || p.isCancelled() {
		p.logger.Debug("attempt discarded", zap.Bool("valid", outcome.Valid))
		return
	}
	if !outcome.Valid {
		p.logger.Debug("attempt rejected", zap.Error(outcome.Err))
		s.errors.emit(outcome)
		return
	}

	s.done = true
	if s.off != nil {
		s.off()
	}
	p.logger.Debug("attempt accepted")
	s.success.emit(outcome.Value)
}

// evaluate filters raw and validates the result. validate is never called
// when filter fails.
func (p *Prompt) evaluate(raw any) Outcome {
	ctx := p.context()

	value, err := p.filter(ctx, raw)
	if err != nil {
		return Outcome{Err: err}
	}

	ok, err := p.validate(ctx, value, p.answers)
	switch {
	case err != nil:
		return Outcome{Value: value, Err: err}
	case !ok:
		return Outcome{Value: value, Err: ErrInvalidAnswer}
	}
	return Outcome{Valid: true, Value: value}
}

package question

import (
	"context"
	"io"

	"go.uber.org/zap"
)

// Answers holds the answers collected so far in a session, keyed by question name.
type Answers map[string]any

// FilterFunc transforms a submitted value into the answer value. It may block
// and it may fail; a failure makes the attempt invalid.
type FilterFunc func(ctx context.Context, value any) (any, error)

// ValidateFunc decides whether a filtered value is acceptable. Only (true, nil)
// accepts the value. A non-nil error is shown to the user as the reason.
type ValidateFunc func(ctx context.Context, value any, answers Answers) (bool, error)

// WhenFunc decides whether the question applies given the previous answers.
type WhenFunc func(answers Answers) bool

// GoBackFunc is called once after the user pressed backspace or delete on a
// prompt that supports going back. It receives the prompt being cancelled.
type GoBackFunc func(p *Prompt)

// Question describes a single question. Message and Name are required.
type Question struct {
	Name     string       // Key of the answer in Answers
	Message  string       // Text shown to the user
	Default  any          // Value used when the user submits an empty line
	Filter   FilterFunc   // Defaults to identity
	Validate ValidateFunc // Defaults to always valid
	When     WhenFunc     // Defaults to always applicable
	Choices  []Choice     // Options for choice-bearing prompts
	OnGoBack GoBackFunc   // Optional go-back handler, enables backspace cancellation
}

// withDefaults returns a copy of q with the optional functions filled in.
func (q Question) withDefaults() Question {
	if q.Filter == nil {
		q.Filter = func(_ context.Context, value any) (any, error) {
			return value, nil
		}
	}
	if q.Validate == nil {
		q.Validate = func(context.Context, any, Answers) (bool, error) {
			return true, nil
		}
	}
	if q.When == nil {
		q.When = func(Answers) bool { return true }
	}
	if q.Choices != nil {
		q.Choices = append([]Choice(nil), q.Choices...)
	}
	return q
}

// check reports the first missing required field.
func (q Question) check() error {
	if q.Message == "" {
		return &MissingParameterError{Param: "message"}
	}
	if q.Name == "" {
		return &MissingParameterError{Param: "name"}
	}
	return nil
}

// config holds the engine options of a prompt.
type config struct {
	answers  Answers
	renderer Renderer
	output   io.Writer
	theme    *Theme
	logger   *zap.Logger
}

// Option represents a configuration option for a prompt
type Option func(*config)

// WithAnswers binds the prompt to the answers collected so far. They are
// passed to validate, When and choice visibility functions.
func WithAnswers(answers Answers) Option {
	return func(c *config) {
		c.answers = answers
	}
}

// WithRenderer replaces the default screen renderer
func WithRenderer(renderer Renderer) Option {
	return func(c *config) {
		c.renderer = renderer
	}
}

// WithOutput sets the writer the default screen renderer draws on
func WithOutput(output io.Writer) Option {
	return func(c *config) {
		c.output = output
	}
}

// WithTheme sets the styles used to format questions and answers
func WithTheme(theme *Theme) Option {
	return func(c *config) {
		c.theme = theme
	}
}

// WithLogger sets the structured logger for lifecycle events.
//
// Example:
//
//	logger, _ := zap.NewDevelopment()
//	p, err := question.NewInput(q, rl, question.WithLogger(logger))
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

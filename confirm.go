package question

import (
	"context"
	"regexp"
)

var yesPattern = regexp.MustCompile(`(?i)^y(es)?`)

// confirm is a yes/no prompt. The answer is a bool.
type confirm struct {
	def bool
}

// NewConfirm creates a yes/no prompt. The default answer is true unless
// Question.Default is false. Input starting with "y" or "yes" (any case)
// means true, an empty line means the default and anything else means false.
func NewConfirm(q Question, src Source, options ...Option) (*Prompt, error) {
	c := &confirm{def: true}
	if v, ok := q.Default.(bool); ok && !v {
		c.def = false
	}

	p, err := newPrompt(c, q, src, options...)
	if err != nil {
		return nil, err
	}

	userFilter := p.filter
	p.filter = func(ctx context.Context, value any) (any, error) {
		line, _ := value.(string)
		answer := c.def
		if line != "" {
			answer = yesPattern.MatchString(line)
		}
		return userFilter(ctx, answer)
	}
	return p, nil
}

func (*confirm) kind() Kind { return KindConfirm }

func (c *confirm) defaultHint(*Prompt) (string, bool) {
	if c.def {
		return "Y/n", true
	}
	return "y/N", true
}

func (c *confirm) run(p *Prompt, done func(any)) {
	submit := Map(p.events.Line, func(line string) any { return line })

	validation := p.HandleSubmitEvents(submit)
	if validation == nil {
		return
	}

	offKeypress := p.events.Keypress.Subscribe(func(KeyEvent) {
		c.render(p, nil)
	})
	p.track(offKeypress)

	validation.OnSuccess(func(value any) {
		offKeypress()
		p.markAnswered(value)
		p.finish(c.frame(p))
		done(value)
	})
	validation.OnError(func(o Outcome) {
		c.render(p, o.Err)
	})

	c.render(p, nil)
}

func (c *confirm) frame(p *Prompt) string {
	message := p.Question()
	if answer, ok := p.answered(); ok {
		text := "No"
		if yes, _ := answer.(bool); yes {
			text = "Yes"
		}
		return message + p.theme.Answer.Sprint(text)
	}
	return message + p.source.Line()
}

func (c *confirm) render(p *Prompt, err error) {
	p.render(c.frame(p), p.errorLine(err))
}

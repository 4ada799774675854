package question

import "fmt"

// input is a free text prompt.
type input struct{}

// NewInput creates a free text prompt. An empty submission resolves to
// Question.Default, or to "" when there is none.
//
// Example:
//
//	p, err := question.NewInput(question.Question{
//		Name:    "port",
//		Message: "Listen port",
//		Default: "8080",
//	}, rl)
func NewInput(q Question, src Source, options ...Option) (*Prompt, error) {
	return newPrompt(input{}, q, src, options...)
}

func (input) kind() Kind { return KindInput }

func (k input) run(p *Prompt, done func(any)) {
	submit := Map(p.events.Line, func(line string) any {
		if line == "" {
			if p.question.Default == nil {
				return ""
			}
			return p.question.Default
		}
		return line
	})

	validation := p.HandleSubmitEvents(submit)
	if validation == nil {
		return
	}

	offKeypress := p.events.Keypress.Subscribe(func(KeyEvent) {
		k.render(p, nil)
	})
	p.track(offKeypress)

	validation.OnSuccess(func(value any) {
		offKeypress()
		p.markAnswered(value)
		p.finish(k.frame(p))
		done(value)
	})
	validation.OnError(func(o Outcome) {
		// Give the rejected text back so the user can fix it
		if s, ok := o.Value.(string); ok && p.source.Line() == "" {
			p.source.SetLine(s)
		}
		k.render(p, o.Err)
	})

	k.render(p, nil)
}

func (k input) frame(p *Prompt) string {
	message := p.Question()
	if answer, ok := p.answered(); ok {
		return message + p.theme.Answer.Sprint(fmt.Sprint(answer))
	}
	return message + p.source.Line()
}

func (k input) render(p *Prompt, err error) {
	p.render(k.frame(p), p.errorLine(err))
}

package question

import (
	"strings"
	"sync"
)

// list is a single-choice prompt driven by the arrow keys.
type list struct {
	mu      sync.Mutex
	pointer int
}

// NewList creates a prompt selecting one choice with up/down (or k/j,
// ctrl-p/ctrl-n) and number keys. Question.Default is the index or the value
// of the initially selected choice. The answer is the choice value.
func NewList(q Question, src Source, options ...Option) (*Prompt, error) {
	l := &list{}

	p, err := newPrompt(l, q, src, options...)
	if err != nil {
		return nil, err
	}
	if p.choices == nil || p.choices.Len() == 0 {
		return nil, &ChoiceError{Err: ErrFormat, Detail: "list prompts need at least one choice"}
	}
	l.pointer = defaultIndex(p.choices, q.Default)
	return p, nil
}

// defaultIndex resolves a Default given as an index or as a choice value.
func defaultIndex(c *Choices, def any) int {
	if i, ok := def.(int); ok {
		if i >= 0 && i < c.Len() {
			return i
		}
		return 0
	}
	if def != nil {
		if i := c.IndexOfValue(def); i >= 0 {
			return i
		}
	}
	return 0
}

func (*list) kind() Kind { return KindList }

// defaultHint is suppressed: the pointer already shows the default.
func (*list) defaultHint(*Prompt) (string, bool) { return "", false }

func (l *list) move(p *Prompt, delta int) {
	n := p.choices.Len()
	l.mu.Lock()
	l.pointer = ((l.pointer+delta)%n + n) % n
	l.mu.Unlock()
}

func (l *list) jump(p *Prompt, number int) {
	if number > p.choices.Len() {
		return
	}
	l.mu.Lock()
	l.pointer = number - 1
	l.mu.Unlock()
}

func (l *list) selected() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pointer
}

func (l *list) run(p *Prompt, done func(any)) {
	submit := Map(p.events.Line, func(string) any {
		choice, _ := p.choices.Get(l.selected())
		return choice.AnswerValue()
	})

	validation := p.HandleSubmitEvents(submit)
	if validation == nil {
		return
	}

	offs := []func(){
		p.events.Up.Subscribe(func(Event) {
			l.move(p, -1)
			l.render(p, nil)
		}),
		p.events.Down.Subscribe(func(Event) {
			l.move(p, 1)
			l.render(p, nil)
		}),
		p.events.Number.Subscribe(func(n int) {
			l.jump(p, n)
			l.render(p, nil)
		}),
	}
	for _, off := range offs {
		p.track(off)
	}

	validation.OnSuccess(func(value any) {
		for _, off := range offs {
			off()
		}
		p.markAnswered(value)
		p.finish(l.frame(p))
		done(value)
	})
	validation.OnError(func(o Outcome) {
		l.render(p, o.Err)
	})

	l.render(p, nil)
}

func (l *list) frame(p *Prompt) string {
	message := p.Question()
	if _, ok := p.answered(); ok {
		choice, _ := p.choices.Get(l.selected())
		return message + p.theme.Answer.Sprint(choice.Display())
	}
	return message + p.theme.Default.Sprint("(Use arrow keys)") + l.choicesString(p)
}

func (l *list) render(p *Prompt, err error) {
	p.render(l.frame(p), p.errorLine(err))
}

func (l *list) choicesString(p *Prompt) string {
	t := p.theme
	pointer := l.selected()

	var b strings.Builder
	for i, choice := range p.choices.Visible() {
		b.WriteString("\n")
		if i == pointer {
			b.WriteString(t.Highlight.Sprint(t.PointerSymbol + " " + choice.Name))
			continue
		}
		b.WriteString("  " + choice.Name)
	}
	return b.String()
}

package question

import (
	"strings"
	"sync"
)

// checkbox is a multiple-choice prompt. The answer is a []any of the values
// of the checked choices, in choice order.
type checkbox struct {
	mu      sync.Mutex
	pointer int
	checked []bool
}

// NewCheckbox creates a multiple-choice prompt. Space toggles the pointed
// choice, "a" checks all (or none when all are checked), "i" inverts the
// selection and a number key moves to and toggles that choice.
//
// A choice starts checked when Choice.Checked is set or when its value is in
// Question.Default, which must then be a []any.
func NewCheckbox(q Question, src Source, options ...Option) (*Prompt, error) {
	c := &checkbox{}

	p, err := newPrompt(c, q, src, options...)
	if err != nil {
		return nil, err
	}
	if p.choices == nil || p.choices.Len() == 0 {
		return nil, &ChoiceError{Err: ErrFormat, Detail: "checkbox prompts need at least one choice"}
	}

	visible := p.choices.Visible()
	c.checked = make([]bool, len(visible))
	defaults, _ := q.Default.([]any)
	for i, choice := range visible {
		c.checked[i] = choice.Checked
		for _, d := range defaults {
			if p.choices.IndexOfValue(d) == i {
				c.checked[i] = true
			}
		}
	}
	return p, nil
}

func (*checkbox) kind() Kind { return KindCheckbox }

func (*checkbox) defaultHint(*Prompt) (string, bool) { return "", false }

func (c *checkbox) move(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.checked)
	c.pointer = ((c.pointer+delta)%n + n) % n
}

func (c *checkbox) toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checked[c.pointer] = !c.checked[c.pointer]
}

func (c *checkbox) jump(number int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if number > len(c.checked) {
		return
	}
	c.pointer = number - 1
	c.checked[c.pointer] = !c.checked[c.pointer]
}

func (c *checkbox) toggleAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	all := true
	for _, v := range c.checked {
		all = all && v
	}
	for i := range c.checked {
		c.checked[i] = !all
	}
}

func (c *checkbox) invert() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.checked {
		c.checked[i] = !c.checked[i]
	}
}

// selection returns the checked choices in order.
func (c *checkbox) selection(p *Prompt) []Choice {
	c.mu.Lock()
	defer c.mu.Unlock()
	var selected []Choice
	for i, choice := range p.choices.Visible() {
		if i < len(c.checked) && c.checked[i] {
			selected = append(selected, choice)
		}
	}
	return selected
}

func (c *checkbox) run(p *Prompt, done func(any)) {
	submit := Map(p.events.Line, func(string) any {
		values := []any{}
		for _, choice := range c.selection(p) {
			values = append(values, choice.AnswerValue())
		}
		return values
	})

	validation := p.HandleSubmitEvents(submit)
	if validation == nil {
		return
	}

	redraw := func(fn func()) func(Event) {
		return func(Event) {
			fn()
			c.render(p, nil)
		}
	}
	offs := []func(){
		p.events.Up.Subscribe(redraw(func() { c.move(-1) })),
		p.events.Down.Subscribe(redraw(func() { c.move(1) })),
		p.events.Space.Subscribe(redraw(c.toggle)),
		p.events.Letter("a").Subscribe(redraw(c.toggleAll)),
		p.events.Letter("i").Subscribe(redraw(c.invert)),
		p.events.Number.Subscribe(func(n int) {
			c.jump(n)
			c.render(p, nil)
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
		p.finish(c.frame(p))
		done(value)
	})
	validation.OnError(func(o Outcome) {
		c.render(p, o.Err)
	})

	c.render(p, nil)
}

func (c *checkbox) frame(p *Prompt) string {
	message := p.Question()
	if _, ok := p.answered(); ok {
		names := make([]string, 0)
		for _, choice := range c.selection(p) {
			names = append(names, choice.Display())
		}
		return message + p.theme.Answer.Sprint(strings.Join(names, ", "))
	}
	hint := "(Press <space> to select, <a> to toggle all, <i> to invert selection)"
	return message + p.theme.Default.Sprint(hint) + c.choicesString(p)
}

func (c *checkbox) render(p *Prompt, err error) {
	p.render(c.frame(p), p.errorLine(err))
}

func (c *checkbox) choicesString(p *Prompt) string {
	t := p.theme
	c.mu.Lock()
	pointer := c.pointer
	checked := append([]bool(nil), c.checked...)
	c.mu.Unlock()

	var b strings.Builder
	for i, choice := range p.choices.Visible() {
		b.WriteString("\n")
		box := t.UncheckedSymbol
		if i < len(checked) && checked[i] {
			box = t.CheckedSymbol
		}
		line := box + " " + choice.Name
		if i == pointer {
			b.WriteString(t.Highlight.Sprint(t.PointerSymbol + line))
			continue
		}
		b.WriteString(" " + line)
	}
	return b.String()
}

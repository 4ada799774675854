package question

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var (
	// ErrUnknownCommand is the attempt error of an expand prompt input matching no key
	ErrUnknownCommand = errors.New("Please enter a valid command")

	errHelpRequested = errors.New("help requested")
)

// Values an expand prompt submits instead of a choice value.
type (
	helpRequest    struct{}
	unknownCommand struct{ input string }
)

// expand is a compact choice prompt answered by typing a choice key.
type expand struct {
	mu          sync.Mutex
	rawDefault  string // Key of the default choice
	keysHint    string // Keys with the default capitalized, plus the help key
	expanded    bool   // Full choice list shown after a help request
	selectedKey string // Key typed so far, used for the live hint
}

// NewExpand creates a prompt answered by a single-key shortcut. Every choice
// needs a Key; HelpKey is reserved and expands the full choice list.
// Question.Default is the index of the default choice (0 when unset).
// Input is trimmed and compared case-insensitively.
func NewExpand(q Question, src Source, options ...Option) (*Prompt, error) {
	e := &expand{}

	p, err := newPrompt(e, q, src, options...)
	if err != nil {
		return nil, err
	}
	if p.choices == nil || len(p.choices.all) == 0 {
		return nil, &ChoiceError{Err: ErrFormat, Detail: "expand prompts need at least one choice"}
	}
	if err := p.choices.requireKeys(); err != nil {
		return nil, err
	}

	keys := p.choices.Keys()
	defIndex := 0
	if i, ok := q.Default.(int); ok && i >= 0 && i < len(keys) {
		defIndex = i
	}
	if len(keys) > 0 {
		e.rawDefault = keys[defIndex]
		keys[defIndex] = strings.ToUpper(keys[defIndex])
	}
	e.keysHint = strings.Join(keys, "") + HelpKey

	userFilter, userValidate := p.filter, p.validate
	p.filter = func(ctx context.Context, value any) (any, error) {
		switch value.(type) {
		case helpRequest, unknownCommand:
			return value, nil
		}
		return userFilter(ctx, value)
	}
	p.validate = func(ctx context.Context, value any, answers Answers) (bool, error) {
		switch value.(type) {
		case helpRequest:
			return false, errHelpRequested
		case unknownCommand:
			return false, ErrUnknownCommand
		}
		return userValidate(ctx, value, answers)
	}
	return p, nil
}

func (*expand) kind() Kind { return KindExpand }

func (e *expand) defaultHint(*Prompt) (string, bool) {
	return e.keysHint, true
}

// selection maps a submitted line to the value of the choice it names.
func (e *expand) selection(p *Prompt, line string) any {
	input := strings.ToLower(strings.TrimSpace(line))
	if input == "" {
		input = e.rawDefault
	}
	if input == HelpKey {
		return helpRequest{}
	}
	if choice, ok := p.choices.ByKey(input); ok {
		return choice.AnswerValue()
	}
	return unknownCommand{input: input}
}

func (e *expand) run(p *Prompt, done func(any)) {
	submit := Map(p.events.Line, func(line string) any {
		return e.selection(p, line)
	})

	validation := p.HandleSubmitEvents(submit)
	if validation == nil {
		return
	}

	offKeypress := p.events.Keypress.Subscribe(func(KeyEvent) {
		e.mu.Lock()
		e.selectedKey = strings.ToLower(strings.TrimSpace(p.source.Line()))
		e.mu.Unlock()
		e.render(p, nil)
	})
	p.track(offKeypress)

	validation.OnSuccess(func(value any) {
		offKeypress()
		p.markAnswered(value)
		p.finish(e.frame(p))
		done(value)
	})
	validation.OnError(func(o Outcome) {
		e.mu.Lock()
		e.selectedKey = ""
		help := errors.Is(o.Err, errHelpRequested)
		if help {
			e.expanded = true
		}
		e.mu.Unlock()

		if help {
			e.render(p, nil)
			return
		}
		e.render(p, o.Err)
	})

	e.render(p, nil)
}

func (e *expand) frame(p *Prompt) string {
	message := p.Question()
	if answer, ok := p.answered(); ok {
		display := ""
		if i := p.choices.IndexOfValue(answer); i >= 0 {
			choice, _ := p.choices.Get(i)
			display = choice.Display()
		}
		return message + p.theme.Answer.Sprint(display)
	}

	e.mu.Lock()
	expanded, selectedKey := e.expanded, e.selectedKey
	e.mu.Unlock()

	if expanded {
		return message + e.choicesString(p, selectedKey) + "\n  Answer: " + p.source.Line()
	}
	return message + p.source.Line()
}

func (e *expand) render(p *Prompt, err error) {
	bottom := p.errorLine(err)
	if err == nil {
		e.mu.Lock()
		expanded, selectedKey := e.expanded, e.selectedKey
		e.mu.Unlock()
		if !expanded && selectedKey != "" {
			if choice, ok := p.choices.ByKey(selectedKey); ok {
				bottom = p.theme.Highlight.Sprint(">> ") + choice.Name
			}
		}
	}
	p.render(e.frame(p), bottom)
}

// choicesString lists every choice as "key) name", highlighting selectedKey.
func (e *expand) choicesString(p *Prompt, selectedKey string) string {
	var b strings.Builder
	for _, choice := range p.choices.Visible() {
		line := "  " + choice.Key + ") " + choice.Name
		if choice.Key == selectedKey {
			line = p.theme.Highlight.Sprint(line)
		}
		b.WriteString("\n" + line)
	}
	help := "  " + HelpKey + ") Help, list all options"
	if selectedKey == HelpKey {
		help = p.theme.Highlight.Sprint(help)
	}
	b.WriteString("\n" + help)
	return b.String()
}

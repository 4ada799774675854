package question

import "sync"

// EventKind classifies a semantic event.
type EventKind int

// Semantic event kinds
const (
	EventLine EventKind = iota
	EventBackspace
	EventLeft
	EventRight
	EventUp
	EventDown
	EventNumber
	EventSpace
	EventLetter
)

// Event is a classified view of a raw key press.
type Event struct {
	Kind   EventKind
	Value  string // Raw character, if any
	Number int    // Parsed digit for EventNumber
	Key    Key
}

// canceller is the part of a prompt the normalizer needs for backspace handling.
type canceller interface {
	// cancel marks the prompt cancelled and reports whether a go-back
	// handler exists; without one backspace has no side effects.
	cancel() bool
	// goBack runs the go-back handler.
	goBack()
}

// Events holds the semantic streams derived from one Source. All streams
// share a single subscription on the source, so side effects run once per
// raw event no matter how many subscribers a stream has.
type Events struct {
	Line      Stream[string]
	Keypress  Stream[KeyEvent]
	Backspace Stream[Event]
	Left      Stream[Event]
	Right     Stream[Event]
	Up        Stream[Event]
	Down      Stream[Event]
	Number    Stream[int]
	Space     Stream[Event]

	letters *emitter[Event]
	offs    []func()
	once    sync.Once
}

// observe subscribes to src and classifies its events. target receives the
// backspace side effects; it may be nil.
func observe(src Source, target canceller) *Events {
	var (
		line      = newEmitter[string]()
		keypress  = newEmitter[KeyEvent]()
		backspace = newEmitter[Event]()
		left      = newEmitter[Event]()
		right     = newEmitter[Event]()
		up        = newEmitter[Event]()
		down      = newEmitter[Event]()
		number    = newEmitter[int]()
		space     = newEmitter[Event]()
		letters   = newEmitter[Event]()
	)

	dispatch := func(ev KeyEvent) {
		key := ev.Key
		// Enter only reaches prompts through the line notification
		if key.Name == "enter" || key.Name == "return" {
			return
		}
		keypress.emit(ev)

		switch {
		case key.Name == "backspace" || key.Name == "delete":
			if target != nil && target.cancel() {
				src.Submit("")
				go target.goBack()
			}
			backspace.emit(Event{Kind: EventBackspace, Value: ev.Value, Key: key})
		case key.Name == "left":
			left.emit(Event{Kind: EventLeft, Key: key})
		case key.Name == "right":
			right.emit(Event{Kind: EventRight, Key: key})
		case key.Name == "up" || key.Name == "k" || key.Name == "p" && key.Ctrl:
			up.emit(Event{Kind: EventUp, Value: ev.Value, Key: key})
		case key.Name == "down" || key.Name == "j" || key.Name == "n" && key.Ctrl:
			down.emit(Event{Kind: EventDown, Value: ev.Value, Key: key})
		}

		if len(ev.Value) == 1 && ev.Value[0] >= '1' && ev.Value[0] <= '9' {
			number.emit(int(ev.Value[0] - '0'))
		}
		if key.Name == "space" {
			space.emit(Event{Kind: EventSpace, Value: ev.Value, Key: key})
		}
		if isLetterName(key.Name) && !key.Ctrl && !key.Meta {
			letters.emit(Event{Kind: EventLetter, Value: ev.Value, Key: key})
		}
	}

	e := &Events{
		Line:      line,
		Keypress:  keypress,
		Backspace: backspace,
		Left:      left,
		Right:     right,
		Up:        up,
		Down:      down,
		Number:    number,
		Space:     space,
		letters:   letters,
	}
	e.offs = append(e.offs,
		src.OnKeypress(dispatch),
		src.OnLine(line.emit),
	)
	return e
}

// Letter returns the stream of presses of the single-letter key name, such as
// "a" for select all or "i" for invert.
func (e *Events) Letter(name string) Stream[Event] {
	return Filter[Event](e.letters, func(ev Event) bool {
		return ev.Key.Name == name
	})
}

// Close removes the normalizer's subscriptions from the source.
func (e *Events) Close() {
	e.once.Do(func() {
		for _, off := range e.offs {
			off()
		}
	})
}

func isLetterName(name string) bool {
	return len(name) == 1 && name[0] >= 'a' && name[0] <= 'z'
}

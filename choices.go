package question

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"
)

// HelpKey is the shortcut reserved for the built-in help action of expand prompts.
const HelpKey = "h"

// Choice is one selectable option.
type Choice struct {
	Key     string             // Optional single-character shortcut
	Name    string             // Display text, required
	Value   any                // Answer payload, defaults to Name
	Short   string             // Text shown once answered, defaults to Name
	Checked bool               // Initial state in checkbox prompts
	Hidden  func(Answers) bool // Hides the choice depending on previous answers
}

// AnswerValue returns the value the choice resolves to.
func (c Choice) AnswerValue() any {
	if c.Value == nil {
		return c.Name
	}
	return c.Value
}

// Display returns the short text of the choice, or its name.
func (c Choice) Display() string {
	if c.Short != "" {
		return c.Short
	}
	return c.Name
}

// Choices is an ordered choice list bound to the answers collected so far.
// It is never mutated after construction.
type Choices struct {
	all     []Choice
	answers Answers
}

// NewChoices validates choices and binds them to answers.
//
// Every choice needs a Name. Keys are compared case-insensitively: a key must
// be a single character, unique among the choices that declare one, and
// different from HelpKey.
func NewChoices(choices []Choice, answers Answers) (*Choices, error) {
	all := make([]Choice, len(choices))
	seen := make(map[string]int, len(choices))

	for i, c := range choices {
		if c.Name == "" {
			return nil, &ChoiceError{Err: ErrFormat, Index: i, Detail: fmt.Sprintf("choice %d has no name", i)}
		}
		if c.Key != "" {
			c.Key = strings.ToLower(c.Key)
			if utf8.RuneCountInString(c.Key) != 1 {
				return nil, &ChoiceError{Err: ErrFormat, Index: i, Key: c.Key,
					Detail: fmt.Sprintf("`key` param must be a single letter and is required, got %q", c.Key)}
			}
			if c.Key == HelpKey {
				return nil, &ChoiceError{Err: ErrReservedKey, Index: i, Key: c.Key,
					Detail: fmt.Sprintf("%q is a reserved key", HelpKey)}
			}
			if prev, ok := seen[c.Key]; ok {
				return nil, &ChoiceError{Err: ErrDuplicateKey, Index: i, Key: c.Key,
					Detail: fmt.Sprintf("key %q is used by choices %d and %d", c.Key, prev, i)}
			}
			seen[c.Key] = i
		}
		all[i] = c
	}

	return &Choices{all: all, answers: answers}, nil
}

// requireKeys fails with ErrFormat when a choice has no key.
func (c *Choices) requireKeys() error {
	for i, choice := range c.all {
		if choice.Key == "" {
			return &ChoiceError{Err: ErrFormat, Index: i,
				Detail: fmt.Sprintf("`key` param must be a single letter and is required, choice %q has none", choice.Name)}
		}
	}
	return nil
}

// Visible returns the choices not hidden by the current answers.
func (c *Choices) Visible() []Choice {
	visible := make([]Choice, 0, len(c.all))
	for _, choice := range c.all {
		if choice.Hidden != nil && choice.Hidden(c.answers) {
			continue
		}
		visible = append(visible, choice)
	}
	return visible
}

// Len returns the number of visible choices.
func (c *Choices) Len() int {
	return len(c.Visible())
}

// Get returns the visible choice at index i.
func (c *Choices) Get(i int) (Choice, bool) {
	visible := c.Visible()
	if i < 0 || i >= len(visible) {
		return Choice{}, false
	}
	return visible[i], true
}

// ByKey returns the visible choice with the given shortcut key.
func (c *Choices) ByKey(key string) (Choice, bool) {
	key = strings.ToLower(key)
	for _, choice := range c.Visible() {
		if choice.Key != "" && choice.Key == key {
			return choice, true
		}
	}
	return Choice{}, false
}

// IndexOfValue returns the index of the first visible choice whose answer
// value equals v, or -1.
func (c *Choices) IndexOfValue(v any) int {
	for i, choice := range c.Visible() {
		if reflect.DeepEqual(choice.AnswerValue(), v) {
			return i
		}
	}
	return -1
}

// Keys returns the keys of the visible choices in order.
func (c *Choices) Keys() []string {
	visible := c.Visible()
	keys := make([]string, 0, len(visible))
	for _, choice := range visible {
		keys = append(keys, choice.Key)
	}
	return keys
}

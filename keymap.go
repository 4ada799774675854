package question

import (
	"strings"
	"unicode"
)

// Key describes a pressed key independently of the bytes the terminal sent for it.
type Key struct {
	Name string // Key name: "backspace", "up", "space", "a", "1", ...
	Ctrl bool   // Control modifier
	Meta bool   // Meta/Alt modifier (ESC prefix)
}

// KeyEvent is a raw key press as delivered by a Source.
type KeyEvent struct {
	Value string // Printed character, empty for keys without one
	Key   Key
}

// KeyMap holds the mapping from terminal input to key descriptors.
type KeyMap struct {
	bindings  map[rune]Key
	sequences map[string]Key
}

// NewDefaultKeyMap creates the key map used by Readline unless another one is supplied.
//
// Default bindings:
//   - Enter/Return: "enter" / "return"
//   - Backspace (DEL, ^H): "backspace"
//   - Delete (ESC [3~): "delete"
//   - Tab: "tab", Space: "space", Escape: "escape"
//   - Arrow keys: "up", "down", "left", "right"
//   - Home/End: "home", "end"
//   - Ctrl+<letter>: the letter with Ctrl set
//
// Example:
//
//	keyMap := question.NewDefaultKeyMap()
//	// Treat F1 (ESC O P) as the help key
//	keyMap.BindSequence("OP", question.Key{Name: "h"})
func NewDefaultKeyMap() *KeyMap {
	km := &KeyMap{
		bindings:  make(map[rune]Key),
		sequences: make(map[string]Key),
	}

	for r := rune(0x01); r <= 0x1a; r++ {
		km.bindings[r] = Key{Name: string('a' + r - 1), Ctrl: true}
	}
	km.bindings['\r'] = Key{Name: "return"}
	km.bindings['\n'] = Key{Name: "enter"}
	km.bindings['\t'] = Key{Name: "tab"}
	km.bindings['\x7f'] = Key{Name: "backspace"}
	km.bindings['\b'] = Key{Name: "backspace"}
	km.bindings['\x1b'] = Key{Name: "escape"}
	km.bindings[' '] = Key{Name: "space"}

	km.sequences["[A"] = Key{Name: "up"}
	km.sequences["[B"] = Key{Name: "down"}
	km.sequences["[C"] = Key{Name: "right"}
	km.sequences["[D"] = Key{Name: "left"}
	km.sequences["OA"] = Key{Name: "up"}
	km.sequences["OB"] = Key{Name: "down"}
	km.sequences["OC"] = Key{Name: "right"}
	km.sequences["OD"] = Key{Name: "left"}
	km.sequences["[H"] = Key{Name: "home"}
	km.sequences["[F"] = Key{Name: "end"}
	km.sequences["[1;5C"] = Key{Name: "right", Ctrl: true}
	km.sequences["[1;5D"] = Key{Name: "left", Ctrl: true}
	km.sequences["[3~"] = Key{Name: "delete"}

	return km
}

// Bind adds or updates the key produced by a single rune.
func (km *KeyMap) Bind(r rune, key Key) {
	km.bindings[r] = key
}

// BindSequence adds or updates the key produced by an escape sequence.
// The sequence must not include the leading ESC.
func (km *KeyMap) BindSequence(seq string, key Key) {
	km.sequences[seq] = key
}

// Decode converts a single rune into a key event. Printable characters keep
// their value; letters are named by their lower-case form.
func (km *KeyMap) Decode(r rune) KeyEvent {
	if km != nil {
		if key, ok := km.bindings[r]; ok {
			ev := KeyEvent{Key: key}
			if key.Name == "space" {
				ev.Value = " "
			}
			return ev
		}
	}
	if !unicode.IsPrint(r) {
		return KeyEvent{}
	}
	name := ""
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		name = strings.ToLower(string(r))
	}
	return KeyEvent{Value: string(r), Key: Key{Name: name}}
}

// DecodeSequence converts an escape sequence (without ESC) into a key event.
// A single unbound printable rune after ESC is reported as that key with Meta set.
func (km *KeyMap) DecodeSequence(seq string) KeyEvent {
	if km != nil {
		if key, ok := km.sequences[seq]; ok {
			return KeyEvent{Key: key}
		}
	}
	if r := []rune(seq); len(r) == 1 {
		ev := km.Decode(r[0])
		ev.Value = ""
		ev.Key.Meta = true
		return ev
	}
	return KeyEvent{}
}

// isSequenceComplete reports whether seq (without ESC) is a finished escape sequence.
func isSequenceComplete(seq []rune) bool {
	s := string(seq)
	switch {
	case len(seq) == 1 && seq[0] != '[' && seq[0] != 'O':
		return true
	case len(seq) == 2 && (seq[0] == 'O' || (seq[1] < '0' || seq[1] > '9') && seq[1] != ';'):
		return true
	case strings.HasSuffix(s, "~") && len(s) >= 3:
		return true
	case len(seq) >= 3 && (seq[len(seq)-1] < '0' || seq[len(seq)-1] > '9') && seq[len(seq)-1] != ';':
		return true
	}
	return false
}

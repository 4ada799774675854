package question

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyMapDecode(t *testing.T) {
	t.Parallel()

	km := NewDefaultKeyMap()
	tests := []struct {
		name string
		r    rune
		want KeyEvent
	}{
		{name: "carriage return", r: '\r', want: KeyEvent{Key: Key{Name: "return"}}},
		{name: "line feed", r: '\n', want: KeyEvent{Key: Key{Name: "enter"}}},
		{name: "DEL", r: 0x7f, want: KeyEvent{Key: Key{Name: "backspace"}}},
		{name: "ctrl-h", r: '\b', want: KeyEvent{Key: Key{Name: "backspace"}}},
		{name: "tab", r: '\t', want: KeyEvent{Key: Key{Name: "tab"}}},
		{name: "space", r: ' ', want: KeyEvent{Value: " ", Key: Key{Name: "space"}}},
		{name: "ctrl-c", r: 0x03, want: KeyEvent{Key: Key{Name: "c", Ctrl: true}}},
		{name: "ctrl-p", r: 0x10, want: KeyEvent{Key: Key{Name: "p", Ctrl: true}}},
		{name: "lower letter", r: 'b', want: KeyEvent{Value: "b", Key: Key{Name: "b"}}},
		{name: "upper letter", r: 'B', want: KeyEvent{Value: "B", Key: Key{Name: "b"}}},
		{name: "digit", r: '7', want: KeyEvent{Value: "7", Key: Key{Name: "7"}}},
		{name: "symbol", r: '?', want: KeyEvent{Value: "?"}},
		{name: "unicode letter", r: 'é', want: KeyEvent{Value: "é", Key: Key{Name: "é"}}},
		{name: "unprintable", r: 0x1c, want: KeyEvent{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, km.Decode(tt.r))
		})
	}
}

func TestKeyMapDecodeSequence(t *testing.T) {
	t.Parallel()

	km := NewDefaultKeyMap()
	tests := []struct {
		seq  string
		want Key
	}{
		{seq: "[A", want: Key{Name: "up"}},
		{seq: "[B", want: Key{Name: "down"}},
		{seq: "[C", want: Key{Name: "right"}},
		{seq: "[D", want: Key{Name: "left"}},
		{seq: "OA", want: Key{Name: "up"}},
		{seq: "[H", want: Key{Name: "home"}},
		{seq: "[F", want: Key{Name: "end"}},
		{seq: "[3~", want: Key{Name: "delete"}},
		{seq: "[1;5C", want: Key{Name: "right", Ctrl: true}},
		{seq: "b", want: Key{Name: "b", Meta: true}},
		{seq: "[99~", want: Key{}},
	}

	for _, tt := range tests {
		t.Run(tt.seq, func(t *testing.T) {
			t.Parallel()
			ev := km.DecodeSequence(tt.seq)
			assert.Equal(t, tt.want, ev.Key)
			assert.Empty(t, ev.Value)
		})
	}
}

func TestKeyMapBind(t *testing.T) {
	t.Parallel()

	km := NewDefaultKeyMap()
	km.Bind('q', Key{Name: "escape"})
	km.BindSequence("OP", Key{Name: "h"})

	assert.Equal(t, Key{Name: "escape"}, km.Decode('q').Key)
	assert.Equal(t, Key{Name: "h"}, km.DecodeSequence("OP").Key)
}

func TestNilKeyMap(t *testing.T) {
	t.Parallel()

	var km *KeyMap
	assert.Equal(t, KeyEvent{Value: "x", Key: Key{Name: "x"}}, km.Decode('x'))
	assert.Equal(t, Key{}, km.DecodeSequence("[A").Key)
}

func TestIsSequenceComplete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seq  string
		want bool
	}{
		{seq: "[", want: false},
		{seq: "O", want: false},
		{seq: "b", want: true},
		{seq: "[A", want: true},
		{seq: "OP", want: true},
		{seq: "[3", want: false},
		{seq: "[3~", want: true},
		{seq: "[1;", want: false},
		{seq: "[1;5", want: false},
		{seq: "[1;5C", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.seq, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isSequenceComplete([]rune(tt.seq)))
		})
	}
}

package question

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abChoices() []Choice {
	return []Choice{
		{Key: "a", Name: "A", Value: "a value"},
		{Key: "b", Name: "B", Value: "b value"},
	}
}

func TestExpandResolves(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		choices   []Choice
		def       any
		line      string
		want      any
		wantFrame string
	}{
		{
			name:      "key",
			choices:   abChoices(),
			line:      "b",
			want:      "b value",
			wantFrame: "? Pick B",
		},
		{
			name:      "surrounding whitespace",
			choices:   abChoices(),
			line:      " b ",
			want:      "b value",
			wantFrame: "? Pick B",
		},
		{
			name:      "upper case",
			choices:   abChoices(),
			line:      "B",
			want:      "b value",
			wantFrame: "? Pick B",
		},
		{
			name:      "empty uses first choice",
			choices:   abChoices(),
			line:      "",
			want:      "a value",
			wantFrame: "? Pick A",
		},
		{
			name:      "empty uses default index",
			choices:   abChoices(),
			def:       1,
			line:      "",
			want:      "b value",
			wantFrame: "? Pick B",
		},
		{
			name: "short display text",
			choices: []Choice{
				{Key: "o", Name: "Overwrite this file", Short: "Overwrite"},
				{Key: "s", Name: "Skip"},
			},
			line:      "o",
			want:      "Overwrite this file",
			wantFrame: "? Pick Overwrite",
		},
		{
			name: "false value",
			choices: []Choice{
				{Key: "y", Name: "Yes", Value: true},
				{Key: "n", Name: "No", Value: false},
			},
			line:      "n",
			want:      false,
			wantFrame: "? Pick No",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rl, _ := newTestReadline(t, "")
			screen := NewScreen(&syncBuffer{})
			p, err := NewExpand(Question{Name: "n", Message: "Pick", Default: tt.def, Choices: tt.choices}, rl, testOptions(screen)...)
			require.NoError(t, err)

			results := start(t, context.Background(), p, screen)
			rl.Submit(tt.line)

			r := await(t, results)
			require.NoError(t, r.err)
			assert.Equal(t, tt.want, r.value)
			assert.Equal(t, tt.wantFrame, lastFrame(screen))
		})
	}
}

func TestExpandConstructionErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		choices []Choice
		wantErr error
	}{
		{name: "no choices", choices: nil, wantErr: ErrFormat},
		{name: "missing key", choices: []Choice{{Key: "a", Name: "A"}, {Name: "B"}}, wantErr: ErrFormat},
		{name: "missing name", choices: []Choice{{Key: "a"}}, wantErr: ErrFormat},
		{name: "duplicate key", choices: []Choice{{Key: "a", Name: "A"}, {Key: "a", Name: "B"}}, wantErr: ErrDuplicateKey},
		{name: "reserved key", choices: []Choice{{Key: "h", Name: "Hello"}}, wantErr: ErrReservedKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rl, _ := newTestReadline(t, "")
			p, err := NewExpand(Question{Name: "n", Message: "m", Choices: tt.choices}, rl)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, rl.keypress.len())
		})
	}
}

func TestExpandUnknownCommand(t *testing.T) {
	t.Parallel()

	rl, _ := newTestReadline(t, "")
	screen := NewScreen(&syncBuffer{})
	p, err := NewExpand(Question{Name: "n", Message: "Pick", Choices: abChoices()}, rl, testOptions(screen)...)
	require.NoError(t, err)

	results := start(t, context.Background(), p, screen)
	rl.Submit("z")
	require.Eventually(t, func() bool {
		return strings.HasSuffix(lastFrame(screen), ">> Please enter a valid command")
	}, waitFor, time.Millisecond)
	assert.Equal(t, StatusPending, p.Status())

	rl.Submit("a")
	r := await(t, results)
	require.NoError(t, r.err)
	assert.Equal(t, "a value", r.value)
}

func TestExpandHelp(t *testing.T) {
	t.Parallel()

	var validated []any
	rl, _ := newTestReadline(t, "")
	screen := NewScreen(&syncBuffer{})
	p, err := NewExpand(Question{
		Name:    "n",
		Message: "Pick",
		Choices: abChoices(),
		Validate: func(_ context.Context, v any, _ Answers) (bool, error) {
			validated = append(validated, v)
			return true, nil
		},
	}, rl, testOptions(screen)...)
	require.NoError(t, err)

	results := start(t, context.Background(), p, screen)
	rl.Submit("h")
	want := "? Pick (Abh) \n  a) A\n  b) B\n  h) Help, list all options\n  Answer: "
	require.Eventually(t, func() bool { return lastFrame(screen) == want }, waitFor, time.Millisecond,
		"got %q", lastFrame(screen))

	rl.Submit("b")
	r := await(t, results)
	require.NoError(t, r.err)
	assert.Equal(t, "b value", r.value)
	assert.Equal(t, []any{"b value"}, validated, "help requests never reach the user's validate")
}

func TestExpandKeypressHint(t *testing.T) {
	t.Parallel()

	rl, _ := newTestReadline(t, "")
	screen := NewScreen(&syncBuffer{})
	p, err := NewExpand(Question{Name: "n", Message: "Pick", Choices: abChoices()}, rl, testOptions(screen)...)
	require.NoError(t, err)

	results := start(t, context.Background(), p, screen)
	typeText(rl, "b")
	assert.Equal(t, "? Pick (Abh) b\n>> B", lastFrame(screen))

	press(rl, "enter")
	r := await(t, results)
	require.NoError(t, r.err)
	assert.Equal(t, "b value", r.value)
}

func TestExpandGoBack(t *testing.T) {
	t.Parallel()

	gone := make(chan struct{}, 2)
	rl, _ := newTestReadline(t, "")
	screen := NewScreen(&syncBuffer{})
	p, err := NewExpand(Question{
		Name:     "n",
		Message:  "Pick",
		Choices:  abChoices(),
		OnGoBack: func(*Prompt) { gone <- struct{}{} },
	}, rl, testOptions(screen)...)
	require.NoError(t, err)

	results := start(t, context.Background(), p, screen)
	press(rl, "backspace")

	assert.ErrorIs(t, await(t, results).err, ErrGoBack)
	assert.Len(t, gone, 1)
}

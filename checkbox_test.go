package question

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toppingChoices() []Choice {
	return []Choice{
		{Name: "Cheese", Checked: true},
		{Name: "Olives"},
		{Name: "Ham", Value: "ham"},
	}
}

func TestCheckbox(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		def       any
		keys      []KeyEvent
		want      []any
		wantFrame string
	}{
		{name: "initially checked", want: []any{"Cheese"}, wantFrame: "? Toppings Cheese"},
		{name: "space toggles", keys: keys(" "), want: []any{}, wantFrame: "? Toppings "},
		{name: "move and toggle", keys: []KeyEvent{named("down"), named("space")}, want: []any{"Cheese", "Olives"}, wantFrame: "? Toppings Cheese, Olives"},
		{name: "select all", keys: keys("a"), want: []any{"Cheese", "Olives", "ham"}, wantFrame: "? Toppings Cheese, Olives, Ham"},
		{name: "select none after all", keys: keys("aa"), want: []any{}, wantFrame: "? Toppings "},
		{name: "invert", keys: keys("i"), want: []any{"Olives", "ham"}, wantFrame: "? Toppings Olives, Ham"},
		{name: "number toggles", keys: keys("3"), want: []any{"Cheese", "ham"}, wantFrame: "? Toppings Cheese, Ham"},
		{name: "default values", def: []any{"ham"}, want: []any{"Cheese", "ham"}, wantFrame: "? Toppings Cheese, Ham"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rl, _ := newTestReadline(t, "")
			screen := NewScreen(&syncBuffer{})
			p, err := NewCheckbox(Question{Name: "toppings", Message: "Toppings", Default: tt.def, Choices: toppingChoices()}, rl, testOptions(screen)...)
			require.NoError(t, err)

			results := start(t, context.Background(), p, screen)
			for _, k := range tt.keys {
				rl.Press(k)
			}
			press(rl, "enter")

			r := await(t, results)
			require.NoError(t, r.err)
			assert.Equal(t, tt.want, r.value)
			assert.Equal(t, tt.wantFrame, lastFrame(screen))
		})
	}
}

func TestCheckboxRender(t *testing.T) {
	t.Parallel()

	rl, _ := newTestReadline(t, "")
	screen := NewScreen(&syncBuffer{})
	p, err := NewCheckbox(Question{Name: "toppings", Message: "Toppings", Choices: toppingChoices()}, rl, testOptions(screen)...)
	require.NoError(t, err)

	results := start(t, context.Background(), p, screen)
	hint := "? Toppings (Press <space> to select, <a> to toggle all, <i> to invert selection)"
	assert.Equal(t, hint+"\n❯◉ Cheese\n ◯ Olives\n ◯ Ham", lastFrame(screen))

	press(rl, "down")
	press(rl, "space")
	assert.Equal(t, hint+"\n ◉ Cheese\n❯◉ Olives\n ◯ Ham", lastFrame(screen))

	press(rl, "enter")
	require.NoError(t, await(t, results).err)
}

func TestCheckboxValidation(t *testing.T) {
	t.Parallel()

	rl, _ := newTestReadline(t, "")
	screen := NewScreen(&syncBuffer{})
	p, err := NewCheckbox(Question{
		Name:    "toppings",
		Message: "Toppings",
		Choices: toppingChoices(),
		Validate: func(_ context.Context, v any, _ Answers) (bool, error) {
			return len(v.([]any)) >= 2, nil
		},
	}, rl, testOptions(screen)...)
	require.NoError(t, err)

	results := start(t, context.Background(), p, screen)
	rl.Submit("")
	require.Eventually(t, func() bool {
		return strings.HasSuffix(lastFrame(screen), ">> invalid answer")
	}, waitFor, time.Millisecond)

	rl.Press(keys("a")[0])
	rl.Submit("")
	r := await(t, results)
	require.NoError(t, r.err)
	assert.Equal(t, []any{"Cheese", "Olives", "ham"}, r.value)
}

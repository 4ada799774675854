package question

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChoicesErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		choices []Choice
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing name",
			choices: []Choice{{Key: "a"}},
			wantErr: ErrFormat,
			wantMsg: "Format error: choice 0 has no name",
		},
		{
			name:    "key longer than one character",
			choices: []Choice{{Key: "ab", Name: "A"}},
			wantErr: ErrFormat,
		},
		{
			name:    "duplicate key",
			choices: []Choice{{Key: "a", Name: "A"}, {Key: "b", Name: "B"}, {Key: "a", Name: "C"}},
			wantErr: ErrDuplicateKey,
			wantMsg: `Duplicate key error: key "a" is used by choices 0 and 2`,
		},
		{
			name:    "duplicate key ignoring case",
			choices: []Choice{{Key: "a", Name: "A"}, {Key: "A", Name: "B"}},
			wantErr: ErrDuplicateKey,
		},
		{
			name:    "reserved help key",
			choices: []Choice{{Key: "h", Name: "Help me"}},
			wantErr: ErrReservedKey,
		},
		{
			name:    "reserved help key upper case",
			choices: []Choice{{Key: "H", Name: "Help me"}},
			wantErr: ErrReservedKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := NewChoices(tt.choices, nil)
			require.Error(t, err)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}

			var ce *ChoiceError
			assert.ErrorAs(t, err, &ce)
		})
	}
}

func TestChoicesLookup(t *testing.T) {
	t.Parallel()

	answers := Answers{"advanced": false}
	c, err := NewChoices([]Choice{
		{Key: "A", Name: "Apple", Value: "apple"},
		{Key: "b", Name: "Banana", Short: "Ban"},
		{Key: "x", Name: "Expert", Hidden: func(a Answers) bool { return a["advanced"] == false }},
		{Name: "No key", Value: 0},
	}, answers)
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"a", "b", ""}, c.Keys())

	apple, ok := c.ByKey("a")
	require.True(t, ok)
	assert.Equal(t, "apple", apple.AnswerValue())
	assert.Equal(t, "Apple", apple.Display())

	banana, ok := c.ByKey("B")
	require.True(t, ok)
	assert.Equal(t, "Banana", banana.AnswerValue())
	assert.Equal(t, "Ban", banana.Display())

	_, ok = c.ByKey("x")
	assert.False(t, ok, "hidden choices are not selectable")

	third, ok := c.Get(2)
	require.True(t, ok)
	assert.Equal(t, "No key", third.Name)
	_, ok = c.Get(3)
	assert.False(t, ok)
	_, ok = c.Get(-1)
	assert.False(t, ok)

	assert.Equal(t, 2, c.IndexOfValue(0))
	assert.Equal(t, 1, c.IndexOfValue("Banana"))
	assert.Equal(t, -1, c.IndexOfValue("missing"))
	assert.Equal(t, -1, c.IndexOfValue("Expert"), "hidden choices are not found by value")

	answers["advanced"] = true
	assert.Equal(t, 4, c.Len(), "visibility follows the bound answers")
}

func TestChoicesRequireKeys(t *testing.T) {
	t.Parallel()

	c, err := NewChoices([]Choice{{Key: "a", Name: "A"}, {Name: "B"}}, nil)
	require.NoError(t, err)
	err = c.requireKeys()
	assert.ErrorIs(t, err, ErrFormat)

	c, err = NewChoices([]Choice{{Key: "a", Name: "A"}}, nil)
	require.NoError(t, err)
	assert.NoError(t, c.requireKeys())
}

func TestChoiceValueKeepsFalsyValues(t *testing.T) {
	t.Parallel()

	assert.Equal(t, false, Choice{Name: "No", Value: false}.AnswerValue())
	assert.Equal(t, 0, Choice{Name: "Zero", Value: 0}.AnswerValue())
	assert.Equal(t, "Name", Choice{Name: "Name"}.AnswerValue())
}

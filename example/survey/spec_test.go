package main

import (
	"testing"

	"github.com/nao1215/question"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadQuestions(t *testing.T) {
	t.Parallel()

	questions, err := loadQuestions(defaultQuestions)
	require.NoError(t, err)
	require.Len(t, questions, 6)

	assert.Equal(t, "input", questions[0].Type)
	assert.NotNil(t, questions[0].patternR)
	assert.Equal(t, 0, questions[5].Default)
	assert.Equal(t, "m", questions[5].Choices[0].Key)
}

func TestLoadQuestionsErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "not yaml", data: "questions: ["},
		{name: "empty", data: "questions: []"},
		{name: "bad pattern", data: "questions:\n  - name: a\n    message: b\n    pattern: \"[\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := loadQuestions([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestQuestionSpecWhen(t *testing.T) {
	t.Parallel()

	spec := questionSpec{
		Name:    "registry",
		Message: "Registry",
		When:    &whenSpec{Name: "docker", Equals: true},
	}
	q := spec.question()
	assert.True(t, q.When(question.Answers{"docker": true}))
	assert.False(t, q.When(question.Answers{"docker": false}))
	assert.False(t, q.When(question.Answers{}))
}

func TestQuestionSpecDefaultsToInput(t *testing.T) {
	t.Parallel()

	questions, err := loadQuestions([]byte("questions:\n  - name: a\n    message: b\n"))
	require.NoError(t, err)
	assert.Equal(t, string(question.KindInput), questions[0].Type)
}

func TestThemeByName(t *testing.T) {
	t.Parallel()

	assert.Same(t, question.ThemeAccessible, themeByName("accessible"))
	assert.Same(t, question.ThemeASCII, themeByName("ascii"))
	assert.Same(t, question.ThemeDefault, themeByName("whatever"))
}

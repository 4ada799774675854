package main

import (
	"context"
	"fmt"
	"regexp"

	"github.com/nao1215/question"
	"gopkg.in/yaml.v3"
)

// questionSpec is one question of a questions file.
type questionSpec struct {
	Type     string       `yaml:"type"`
	Name     string       `yaml:"name"`
	Message  string       `yaml:"message"`
	Default  any          `yaml:"default,omitempty"`
	Pattern  string       `yaml:"pattern,omitempty"` // Input must match, for input questions
	When     *whenSpec    `yaml:"when,omitempty"`
	Choices  []choiceSpec `yaml:"choices,omitempty"`
	patternR *regexp.Regexp
}

// whenSpec asks a question only when a previous answer equals a value.
type whenSpec struct {
	Name   string `yaml:"name"`
	Equals any    `yaml:"equals"`
}

type choiceSpec struct {
	Key     string `yaml:"key,omitempty"`
	Name    string `yaml:"name"`
	Value   any    `yaml:"value,omitempty"`
	Short   string `yaml:"short,omitempty"`
	Checked bool   `yaml:"checked,omitempty"`
}

type questionsFile struct {
	Questions []questionSpec `yaml:"questions"`
}

// loadQuestions parses a questions file. Construction problems such as a
// duplicate choice key are reported later by the prompt constructors.
func loadQuestions(data []byte) ([]questionSpec, error) {
	var file questionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse questions: %w", err)
	}
	if len(file.Questions) == 0 {
		return nil, fmt.Errorf("no questions defined")
	}

	for i := range file.Questions {
		q := &file.Questions[i]
		if q.Type == "" {
			q.Type = string(question.KindInput)
		}
		if q.Pattern != "" {
			re, err := regexp.Compile(q.Pattern)
			if err != nil {
				return nil, fmt.Errorf("question %d: invalid pattern: %w", i, err)
			}
			q.patternR = re
		}
	}
	return file.Questions, nil
}

func (s questionSpec) question() question.Question {
	q := question.Question{
		Name:    s.Name,
		Message: s.Message,
		Default: s.Default,
	}
	for _, c := range s.Choices {
		q.Choices = append(q.Choices, question.Choice{
			Key:     c.Key,
			Name:    c.Name,
			Value:   c.Value,
			Short:   c.Short,
			Checked: c.Checked,
		})
	}
	if s.When != nil {
		when := *s.When
		q.When = func(a question.Answers) bool {
			return fmt.Sprint(a[when.Name]) == fmt.Sprint(when.Equals)
		}
	}
	if re := s.patternR; re != nil {
		q.Validate = func(_ context.Context, v any, _ question.Answers) (bool, error) {
			if !re.MatchString(fmt.Sprint(v)) {
				return false, fmt.Errorf("answer must match %s", re)
			}
			return true, nil
		}
	}
	return q
}

// Package main runs a questionnaire described in a YAML file. Backspace goes
// back to the previous question.
package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/nao1215/question"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var defaultQuestions []byte

var (
	surveyVerbose bool
	surveyTheme   string
)

var rootCmd = &cobra.Command{
	Use:   "survey [questions.yaml]",
	Short: "Ask the questions of a YAML file one by one",
	Long: `Ask the questions of a YAML file one by one and print the answers as YAML.

Every question has a type (input, confirm, expand, list or checkbox), a name
and a message. Press Backspace to go back to the previous question.

Examples:
  survey                    # Built-in sample questions
  survey ./onboarding.yaml  # Questions from a file
  survey -v                 # Log prompt lifecycle to stderr`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runSurvey,
}

func init() {
	rootCmd.Flags().BoolVarP(&surveyVerbose, "verbose", "v", false, "Log prompt lifecycle events")
	rootCmd.Flags().StringVar(&surveyTheme, "theme", "default", "Color theme: default, accessible or ascii")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSurvey(cmd *cobra.Command, args []string) error {
	data := defaultQuestions
	if len(args) > 0 {
		var err error
		if data, err = os.ReadFile(args[0]); err != nil {
			return fmt.Errorf("failed to read questions: %w", err)
		}
	}
	questions, err := loadQuestions(data)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if surveyVerbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
	}
	defer func() { _ = logger.Sync() }()

	rl, err := question.NewReadline(question.WithReadlineLogger(logger))
	if err != nil {
		return err
	}

	answers, err := ask(cmd.Context(), rl, questions,
		question.WithLogger(logger),
		question.WithTheme(themeByName(surveyTheme)),
	)
	// Leave raw mode before printing anything else
	if cerr := rl.Close(); cerr != nil {
		logger.Warn("failed to close terminal", zap.Error(cerr))
	}
	if errors.Is(err, question.ErrInterrupted) || errors.Is(err, question.ErrEOF) {
		fmt.Fprintln(cmd.ErrOrStderr(), "\nCancelled")
		return nil
	}
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(map[string]any(answers))
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s", out)
	return nil
}

// ask runs the questions in order. A prompt that returns ErrGoBack sends the
// survey to the previous applicable question.
func ask(ctx context.Context, rl *question.Readline, questions []questionSpec, options ...question.Option) (question.Answers, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	answers := question.Answers{}
	opts := append([]question.Option{question.WithAnswers(answers)}, options...)

	var asked []int // Indexes of the questions answered so far
	for i := 0; i < len(questions); {
		spec := questions[i]
		q := spec.question()
		if len(asked) > 0 {
			q.OnGoBack = func(*question.Prompt) {}
		}

		p, err := question.New(question.Kind(spec.Type), q, rl, opts...)
		if err != nil {
			return nil, fmt.Errorf("question %q: %w", spec.Name, err)
		}
		if !p.Applicable() {
			i++
			continue
		}

		answer, err := p.Run(ctx)
		switch {
		case errors.Is(err, question.ErrGoBack):
			i = asked[len(asked)-1]
			asked = asked[:len(asked)-1]
			delete(answers, questions[i].Name)
		case err != nil:
			return nil, err
		default:
			answers[spec.Name] = answer
			asked = append(asked, i)
			i++
		}
	}
	return answers, nil
}

func themeByName(name string) *question.Theme {
	switch name {
	case "accessible":
		return question.ThemeAccessible
	case "ascii":
		return question.ThemeASCII
	default:
		return question.ThemeDefault
	}
}

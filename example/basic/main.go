// Package main demonstrates basic usage of the question library.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/nao1215/question"
)

func main() {
	// One Readline serves every question of the program
	rl, err := question.NewReadline()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Basic Question Example")
	fmt.Println("Press Ctrl+C to exit")
	fmt.Println()

	answers, err := ask(context.Background(), rl)
	// Leave raw mode before printing anything else
	if cerr := rl.Close(); cerr != nil {
		log.Printf("failed to close terminal: %v", cerr)
	}
	if errors.Is(err, question.ErrInterrupted) || errors.Is(err, question.ErrEOF) {
		fmt.Println("\nGoodbye!")
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("name=%v age=%v confirmed=%v\n", answers["name"], answers["age"], answers["ok"])
}

func ask(ctx context.Context, rl *question.Readline) (question.Answers, error) {
	answers := question.Answers{}

	name, err := question.NewInput(question.Question{
		Name:    "name",
		Message: "What is your name?",
		Default: "gopher",
	}, rl, question.WithAnswers(answers))
	if err != nil {
		return nil, err
	}
	if answers["name"], err = name.Run(ctx); err != nil {
		return nil, err
	}

	age, err := question.NewInput(question.Question{
		Name:    "age",
		Message: "How old are you?",
		Filter: func(_ context.Context, v any) (any, error) {
			return strconv.Atoi(v.(string))
		},
		Validate: func(_ context.Context, v any, _ question.Answers) (bool, error) {
			if v.(int) <= 0 {
				return false, errors.New("age must be positive")
			}
			return true, nil
		},
	}, rl, question.WithAnswers(answers))
	if err != nil {
		return nil, err
	}
	if answers["age"], err = age.Run(ctx); err != nil {
		return nil, err
	}

	ok, err := question.NewConfirm(question.Question{
		Name:    "ok",
		Message: "Is this correct?",
	}, rl, question.WithAnswers(answers))
	if err != nil {
		return nil, err
	}
	if answers["ok"], err = ok.Run(ctx); err != nil {
		return nil, err
	}
	return answers, nil
}

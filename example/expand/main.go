// Package main demonstrates an expand prompt resolving a file conflict.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/fatih/color"
	"github.com/nao1215/question"
)

func main() {
	rl, err := question.NewReadline()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Expand Prompt Example")
	fmt.Println("Type a key and press Enter, or 'h' to list every option")
	fmt.Println()

	answer, err := ask(context.Background(), rl)
	// Leave raw mode before printing anything else
	if cerr := rl.Close(); cerr != nil {
		log.Printf("failed to close terminal: %v", cerr)
	}
	if errors.Is(err, question.ErrInterrupted) {
		fmt.Println("\nInterrupted")
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	color.New(color.FgGreen).Printf("✓ ")
	fmt.Printf("Action: %v\n", answer)
}

func ask(ctx context.Context, rl *question.Readline) (any, error) {
	p, err := question.NewExpand(question.Question{
		Name:    "overwrite",
		Message: "Conflict on `main.go`:",
		Default: 2,
		Choices: []question.Choice{
			{Key: "y", Name: "Overwrite", Value: "overwrite"},
			{Key: "a", Name: "Overwrite this one and all next", Value: "overwrite_all", Short: "Overwrite all"},
			{Key: "d", Name: "Show diff", Value: "diff"},
			{Key: "x", Name: "Abort", Value: "abort"},
		},
	}, rl, question.WithTheme(question.ThemeAccessible))
	if err != nil {
		return nil, err
	}
	return p.Run(ctx)
}

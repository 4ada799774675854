// Package question asks one interactive question on a terminal and resolves
// to a filtered, validated answer.
//
// A Prompt is a single question's turn. It subscribes to a Source (usually a
// Readline shared by every question of a program), classifies raw key presses
// into semantic streams, runs every submitted value through the question's
// Filter and Validate functions, redraws after invalid attempts and resolves
// with the first value that passes validation.
//
// Key Features:
//
//   - Input, confirm, expand, list and checkbox prompt kinds
//   - Asynchronous filter and validate functions with context support
//   - Backspace cancellation through a go-back handler, for wizard-style flows
//   - Configurable key bindings and themes
//   - Structured logging through go.uber.org/zap
//
// Quick Start:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		"github.com/nao1215/question"
//	)
//
//	func main() {
//		rl, err := question.NewReadline()
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer rl.Close()
//
//		p, err := question.NewInput(question.Question{
//			Name:    "name",
//			Message: "What is your name?",
//		}, rl)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		answer, err := p.Run(context.Background())
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Printf("Hello, %s\n", answer)
//	}
//
// Expand prompts:
//
// An expand prompt is answered with a single key. Every choice needs a Key,
// and HelpKey ("h") is reserved for listing all options:
//
//	p, err := question.NewExpand(question.Question{
//		Name:    "overwrite",
//		Message: "Conflict on file.go",
//		Choices: []question.Choice{
//			{Key: "y", Name: "Overwrite", Value: "overwrite"},
//			{Key: "n", Name: "Skip", Value: "skip"},
//			{Key: "d", Name: "Show diff", Value: "diff"},
//		},
//	}, rl)
//
// Going back:
//
// When a Question has an OnGoBack handler, pressing Backspace or Delete
// cancels the prompt: the handler runs once, on its own goroutine, and Run
// returns ErrGoBack. The handler typically asks the previous question again
// on the same Readline.
//
// Key Bindings:
//
//   - Enter: Submit the line
//   - Ctrl+C: Cancel and return ErrInterrupted
//   - Ctrl+D: EOF when the line is empty
//   - Up/Down, k/j, Ctrl+P/Ctrl+N: Move in list and checkbox prompts
//   - 1-9: Jump to a choice
//   - Space: Toggle a checkbox choice; a: toggle all; i: invert
//   - Ctrl+A / Home, Ctrl+E / End, Left/Right: Move the cursor
//   - Ctrl+U: Delete the entire line
//   - Backspace/Delete: Delete a character, or go back when enabled
//
// Error Handling:
//
//	answer, err := p.Run(ctx)
//	switch {
//	case errors.Is(err, question.ErrGoBack):
//		// the go-back handler took over
//	case errors.Is(err, question.ErrInterrupted):
//		// Ctrl+C
//	case errors.Is(err, question.ErrEOF):
//		// Ctrl+D or the terminal went away
//	case err != nil:
//		log.Fatal(err)
//	}
//
// Construction errors match ErrMissingParameter, ErrFormat, ErrDuplicateKey
// and ErrReservedKey with errors.Is.
package question

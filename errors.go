package question

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrEOF is returned when the user presses Ctrl+D on an empty line or the input is exhausted
	ErrEOF = errors.New("EOF")
	// ErrInterrupted is returned when the user presses Ctrl+C
	ErrInterrupted = errors.New("interrupted")
	// ErrClosed is returned when the input source was closed while a prompt was waiting
	ErrClosed = errors.New("input closed")
	// ErrGoBack is returned by Run when the prompt was cancelled through its go-back handler.
	// It is a control transition, not a failure: the prompt never produced a value.
	ErrGoBack = errors.New("go back")
	// ErrAlreadyRun is returned when Run is called on a prompt that already finished its turn
	ErrAlreadyRun = errors.New("prompt already run")
	// ErrInvalidAnswer is the outcome error of an attempt whose validate function returned false
	ErrInvalidAnswer = errors.New("invalid answer")
)

// Construction errors
var (
	// ErrMissingParameter is matched by every MissingParameterError
	ErrMissingParameter = errors.New("missing parameter")
	// ErrFormat indicates a choice lacks a required descriptor field
	ErrFormat = errors.New("Format error")
	// ErrDuplicateKey indicates two choices share the same shortcut key
	ErrDuplicateKey = errors.New("Duplicate key error")
	// ErrReservedKey indicates a choice uses the key reserved for the help action
	ErrReservedKey = errors.New("Reserved key error")
)

// MissingParameterError reports a required Question field that was left empty.
type MissingParameterError struct {
	Param string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("You must provide a `%s` parameter", e.Param)
}

// Unwrap makes errors.Is(err, ErrMissingParameter) succeed.
func (e *MissingParameterError) Unwrap() error { return ErrMissingParameter }

// ChoiceError describes an invalid choice list. Err is one of ErrFormat,
// ErrDuplicateKey or ErrReservedKey.
type ChoiceError struct {
	Err    error
	Index  int
	Key    string
	Detail string
}

func (e *ChoiceError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: choice %d", e.Err, e.Index)
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Detail)
}

func (e *ChoiceError) Unwrap() error { return e.Err }

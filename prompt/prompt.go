// Package prompt abstracts the interactive terminal dialogs mergeflow uses.
//
// The workflow only ever has one outstanding prompt at a time, so every
// operation is a plain blocking call returning the selection or ErrCancelled.
package prompt

import "errors"

// ErrCancelled is returned when the user dismisses a prompt without
// making a selection. Callers treat it as a deliberate no-op, not a failure.
var ErrCancelled = errors.New("prompt cancelled")

// Option is a single entry in a choice menu. Label is what the user sees,
// Value is what the caller gets back.
type Option struct {
	Label string
	Value string
}

// Prompter presents interactive dialogs and returns user selections.
type Prompter interface {
	// ChooseOne presents a single-choice menu and returns the selected
	// option's value, or ErrCancelled.
	ChooseOne(title, message string, options []Option) (string, error)

	// ChooseMany presents a checklist with every item initially unchecked
	// and returns the checked values in the order the prompt layer reports
	// them. Confirming with nothing checked returns an empty slice, not an
	// error; cancelling returns ErrCancelled.
	ChooseMany(title, message string, options []string) ([]string, error)

	// InputText presents a free-text input and returns the trimmed text,
	// or ErrCancelled. An empty confirmation returns "".
	InputText(title, message, placeholder string) (string, error)

	// Notify displays a status message. It never blocks on user input.
	Notify(title, message string)
}

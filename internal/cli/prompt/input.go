// Package prompt holds the interactive terminal prompts used by the CLI:
// share details for config init, the share password, and rm confirmations.
package prompt

import (
	"errors"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user leaves a prompt with Ctrl+C or
// Ctrl+D.
var ErrAborted = errors.New("aborted")

// IsAborted reports whether err means the user left a prompt.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted) ||
		errors.Is(err, promptui.ErrInterrupt) ||
		errors.Is(err, promptui.ErrAbort) ||
		errors.Is(err, promptui.ErrEOF)
}

func wrapError(err error) error {
	if err != nil && IsAborted(err) {
		return ErrAborted
	}
	return err
}

// ask runs p and maps promptui's abort errors onto ErrAborted.
func ask(p promptui.Prompt) (string, error) {
	result, err := p.Run()
	if err != nil {
		return "", wrapError(err)
	}
	return result, nil
}

// Input prompts for a line of text. Surrounding whitespace is dropped.
func Input(label, defaultValue string) (string, error) {
	return InputWithValidation(label, defaultValue, nil)
}

// InputWithValidation prompts until validate accepts the trimmed answer.
// A nil validate accepts anything.
func InputWithValidation(label, defaultValue string, validate func(string) error) (string, error) {
	p := promptui.Prompt{Label: label, Default: defaultValue}
	if validate != nil {
		p.Validate = func(s string) error { return validate(strings.TrimSpace(s)) }
	}

	result, err := ask(p)
	return strings.TrimSpace(result), err
}

package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// ErrPasswordMismatch indicates passwords don't match.
var ErrPasswordMismatch = errors.New("passwords do not match")

// Password prompts for a masked password.
func Password(label string) (string, error) {
	return ask(promptui.Prompt{Label: label, Mask: '*'})
}

// NewPassword prompts for a password of at least minLength characters,
// then for its confirmation.
func NewPassword(minLength int) (string, error) {
	password, err := ask(promptui.Prompt{
		Label: "Password",
		Mask:  '*',
		Validate: func(input string) error {
			if len(input) < minLength {
				return fmt.Errorf("password must be at least %d characters", minLength)
			}
			return nil
		},
	})
	if err != nil {
		return "", err
	}

	confirm, err := Password("Confirm password")
	if err != nil {
		return "", err
	}
	if password != confirm {
		return "", ErrPasswordMismatch
	}
	return password, nil
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Secret reads a secret from stdin: a masked prompt when stdin is a
// terminal, otherwise the first line of input.
func Secret(label string) (string, error) {
	if IsTerminal(os.Stdin) {
		return Password(label)
	}
	return ReadLine(os.Stdin)
}

// ReadLine returns the first line of r without its line terminator.
// Empty input yields an empty string.
func ReadLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

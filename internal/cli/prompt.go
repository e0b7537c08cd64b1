package cli

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted signals the user aborted the prompt (e.g., Ctrl+C).
var ErrAborted = errors.New("cli: aborted")

// Selector asks the user to pick one option. It abstracts the terminal so
// commands can be tested without one.
type Selector interface {
	Select(message string, options []string) (string, error)
}

type surveySelector struct{}

func (surveySelector) Select(message string, options []string) (string, error) {
	var out string
	prompt := &survey.Select{
		Message:  message,
		Options:  options,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", ErrAborted
		}
		return "", err
	}
	return out, nil
}

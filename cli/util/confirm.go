package util

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// PromptConfirmer asks for confirmation on a terminal.
type PromptConfirmer struct{}

// Confirm shows question and waits for the user answer. Default answer is no.
func (PromptConfirmer) Confirm(question string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     question,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		if errors.Is(err, promptui.ErrInterrupt) {
			return false, ErrCmdAbort
		}
		return false, err
	}
	return true, nil
}

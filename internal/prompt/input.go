package prompt

import (
	"errors"
	"strings"

	"github.com/manifoldco/promptui"
)

// Input prompts for text input.
func Input(label string, defaultValue string) (string, error) {
	prompt := promptui.Prompt{
		Label:   label,
		Default: defaultValue,
	}

	result, err := prompt.Run()
	return strings.TrimSpace(result), wrapError(err)
}

// InputRequired prompts for non-blank text input.
func InputRequired(label string) (string, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Validate: required,
	}

	result, err := prompt.Run()
	return strings.TrimSpace(result), wrapError(err)
}

func required(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("value is required")
	}
	return nil
}

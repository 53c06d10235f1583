package steps

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	create_ctx "github.com/brainsum/themekit/cli/create/context"
	"github.com/brainsum/themekit/cli/create/internal/app_template"
)

// Reader interface is used from reading user input.
type Reader interface {
	readLine() (string, error)
}

// consoleReader implements reading from console.
type consoleReader struct {
	stdinReader *bufio.Reader
}

// readLine reads line from console. New-line symbol is trimmed.
func (consoleReader consoleReader) readLine() (string, error) {
	input, err := consoleReader.stdinReader.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", fmt.Errorf("error getting user input: %s", err)
	}
	return strings.TrimRight(input, "\r\n"), nil
}

// NewConsoleReader create new console reader.
func NewConsoleReader() consoleReader {
	return consoleReader{bufio.NewReader(os.Stdin)}
}

// CollectTemplateVarsFromUser represents interactive variables collection step.
type CollectTemplateVarsFromUser struct {
	// Reader is used to get user input.
	Reader Reader
	// Writer is used to print prompts. os.Stdout is used if nil.
	Writer io.Writer
}

// validate checks value against the prompt regular expression.
func validate(varInfo app_template.UserPrompt, value string) (bool, error) {
	if varInfo.Re == "" {
		return true, nil
	}
	matched, err := regexp.MatchString(varInfo.Re, value)
	if err != nil {
		return false, fmt.Errorf("failed to validate user input: %s", err)
	}
	return matched, nil
}

// Run collects template variables from user in interactive mode.
func (step CollectTemplateVarsFromUser) Run(ctx *create_ctx.CreateCtx,
	templateCtx *app_template.TemplateCtx) error {
	if !templateCtx.IsManifestPresent {
		return nil
	}
	out := step.Writer
	if out == nil {
		out = os.Stdout
	}

	for _, varInfo := range templateCtx.Manifest.Vars {
		// Check if var is already set, and validate it.
		if existingValue, found := templateCtx.Vars[varInfo.Name]; found {
			valid, err := validate(varInfo, existingValue)
			if err != nil {
				return err
			}
			if valid {
				continue
			}
			if ctx.SilentMode {
				return fmt.Errorf("invalid format of %s variable", varInfo.Name)
			}
			fmt.Fprintf(out, "Invalid format of %s variable.\n", varInfo.Name)
		}

		defaultValue, err := templateCtx.Engine.RenderText(varInfo.Default, templateCtx.Vars)
		if err != nil {
			return fmt.Errorf("failed to render default value of %s: %s", varInfo.Name, err)
		}

		if ctx.SilentMode {
			if defaultValue == "" {
				return fmt.Errorf("%s variable value is not set", varInfo.Name)
			}
			valid, err := validate(varInfo, defaultValue)
			if err != nil {
				return err
			}
			if !valid {
				return fmt.Errorf("invalid format of %s variable", varInfo.Name)
			}
			templateCtx.Vars[varInfo.Name] = defaultValue
			continue
		}

		for {
			if defaultValue == "" {
				fmt.Fprintf(out, "%s: ", varInfo.Prompt)
			} else {
				fmt.Fprintf(out, "%s (default: %s): ", varInfo.Prompt, defaultValue)
			}

			input, err := step.Reader.readLine()
			if err != nil {
				return fmt.Errorf("error reading user input: %s", err)
			}
			input = strings.TrimSpace(input)
			if input == "" {
				if defaultValue == "" {
					fmt.Fprintln(out, "Please enter a value.")
					continue
				}
				input = defaultValue
			}

			valid, err := validate(varInfo, input)
			if err != nil {
				return err
			}
			if !valid {
				fmt.Fprintln(out, "Invalid format. Try again.")
				continue
			}
			templateCtx.Vars[varInfo.Name] = input
			break
		}
	}

	return nil
}

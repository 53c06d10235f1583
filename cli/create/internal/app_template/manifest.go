package app_template

import (
	"fmt"
	"os"
	"regexp"

	"github.com/brainsum/themekit/cli/util"
	"github.com/mitchellh/mapstructure"
)

const (
	DefaultManifestName = "MANIFEST.yaml"
)

// UserPrompt describes interactive prompt to get the value of variable from a user.
type UserPrompt struct {
	// Prompt is an input prompt for the variable.
	Prompt string
	// Name is a variable name to store a value to.
	Name string
	// Default is a default value. It is rendered as a template over the
	// already known variables before it is offered to a user.
	Default string
	// Re is a regular expression for the value validation.
	Re string
}

// TemplateManifest is a manifest for application template.
type TemplateManifest struct {
	// Description is a template description.
	Description string
	// Vars is a set of variables, which values are to be
	// requested from a user.
	Vars []UserPrompt
	// Include contains a list of files to keep after template instantiation.
	Include []string
	// FollowUpMessage is printed after the theme is created.
	FollowUpMessage string `mapstructure:"follow-up-message"`
}

func validateManifest(manifest *TemplateManifest) error {
	for _, varInfo := range manifest.Vars {
		if varInfo.Prompt == "" {
			return fmt.Errorf("missing user prompt")
		}
		if varInfo.Name == "" {
			return fmt.Errorf("missing variable name")
		}
		if varInfo.Re != "" {
			if _, err := regexp.Compile(varInfo.Re); err != nil {
				return fmt.Errorf("invalid regular expression of %s: %s", varInfo.Name, err)
			}
		}
	}
	return nil
}

// LoadManifest loads template manifest from manifestPath.
func LoadManifest(manifestPath string) (TemplateManifest, error) {
	var templateManifest TemplateManifest
	if _, err := os.Stat(manifestPath); err != nil {
		return templateManifest, fmt.Errorf("failed to get access to manifest file: %s", err)
	}

	rawConfigOpts, err := util.ParseYAML(manifestPath)
	if err != nil {
		return templateManifest, err
	}

	if err := mapstructure.Decode(rawConfigOpts, &templateManifest); err != nil {
		return templateManifest, fmt.Errorf("failed to decode template manifest: %s", err)
	}

	if err := validateManifest(&templateManifest); err != nil {
		return TemplateManifest{}, fmt.Errorf("invalid manifest format: %s", err)
	}

	return templateManifest, nil
}

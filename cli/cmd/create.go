package cmd

import (
	"github.com/brainsum/themekit/cli/cmdcontext"
	"github.com/brainsum/themekit/cli/create"
	create_ctx "github.com/brainsum/themekit/cli/create/context"
	"github.com/spf13/cobra"
)

var (
	dstPath            string
	templatePath       string
	forceMode          bool
	nonInteractiveMode bool
	skipInstall        bool
	install            bool
	varsFromCli        *[]string
	varsFile           string
)

// NewCreateCmd creates a theme from a template.
func NewCreateCmd() *cobra.Command {
	var createCmd = &cobra.Command{
		Use:   "create [DIRECTORY] [flags]",
		Short: "Create a Drupal theme",
		Run:   RunModuleFunc(internalCreateModule),
		Args:  cobra.MaximumNArgs(1),
		Long: `Create a Drupal theme from the built-in template or a template directory.

The theme is created in the working directory unless DIRECTORY or --dst is set.
Template variables are asked interactively, defaults are derived from the
directory name and the git configuration.`,
		Example: `
# Create a theme in the current directory.

    $ themekit create

# Create a theme in ./rustique without questions, overwriting existing files.

    $ themekit create rustique -s -f --var themeName=Rustique --var siteUrl=http://rustique.test

# Create a theme from a custom template, skipping npm install.

    $ themekit create --template-path ./my-template --dst web/themes/custom/shop --skip-install`,
	}

	createCmd.Flags().StringVarP(&dstPath, "dst", "d", "",
		"Path to the directory where the theme will be created")
	createCmd.Flags().StringVar(&templatePath, "template-path", "",
		"Path to a template directory to use instead of the built-in one")
	createCmd.Flags().BoolVarP(&forceMode, "force", "f", false,
		"Overwrite existing files without confirmation")
	createCmd.Flags().BoolVarP(&nonInteractiveMode, "non-interactive", "s", false,
		"Non-interactive mode")
	createCmd.Flags().BoolVar(&skipInstall, "skip-install", false,
		"Do not install npm packages")
	createCmd.Flags().BoolVar(&install, "install", false,
		"Install npm packages without confirmation")
	varsFromCli = createCmd.Flags().StringArray("var", []string{},
		"Variable definition. Usage: --var var_name=value")
	createCmd.Flags().StringVar(&varsFile, "vars-file", "", "Variables definition file path")

	return createCmd
}

// internalCreateModule is a default create module.
func internalCreateModule(cmdCtx *cmdcontext.CmdCtx, args []string) error {
	createCtx := create_ctx.CreateCtx{
		DestinationDir: dstPath,
		TemplatePath:   templatePath,
		VarsFromCli:    *varsFromCli,
		VarsFile:       varsFile,
		ForceMode:      forceMode,
		SilentMode:     nonInteractiveMode,
		SkipInstall:    skipInstall,
		Install:        install,
	}

	if err := create.FillCtx(&createCtx, args); err != nil {
		return err
	}

	return create.Run(&createCtx)
}

package cmd

import (
	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/brainsum/themekit/cli/cmdcontext"
	"github.com/spf13/cobra"
)

var (
	cmdCtx  cmdcontext.CmdCtx
	rootCmd *cobra.Command
)

// NewCmdRoot creates a new root command.
func NewCmdRoot() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "themekit",
		Short: "Drupal theme toolkit",
		Long:  "Utility for scaffolding Drupal themes and building their assets",
		Example: `$ themekit create my-theme
  $ themekit run prod
  $ themekit tasks`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cmdCtx.Cli.Verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&cmdCtx.Cli.Verbose, "verbose", "V",
		false, "Verbose output")

	rootCmd.AddCommand(
		NewVersionCmd(),
		NewCompletionCmd(),
		NewCreateCmd(),
		NewRunCmd(),
		NewTasksCmd(),
	)

	rootCmd.InitDefaultHelpCmd()

	log.SetHandler(cli.Default)

	return rootCmd
}

// Execute root command.
func Execute() {
	if rootCmd == nil {
		InitRoot()
	}
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf(err.Error())
	}
}

// InitRoot initializes the root command with its subcommands.
func InitRoot() {
	rootCmd = NewCmdRoot()
}

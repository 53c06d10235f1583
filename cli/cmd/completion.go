package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/brainsum/themekit/cli/cmdcontext"
	"github.com/spf13/cobra"
)

const (
	shellBash = "bash"
	shellZsh  = "zsh"
	shellFish = "fish"
)

var shellSupported = []string{shellBash, shellZsh, shellFish}

func listShells() string {
	return strings.Join(shellSupported, " | ")
}

// NewCompletionCmd creates a new completion command.
func NewCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use: "completion <SHELL_TYPE>",
		Short: "Generate autocomplete for a specified shell. " +
			fmt.Sprintf("Supported shell type: %s", listShells()),
		ValidArgs: shellSupported,
		Run:       RunModuleFunc(internalCompletionCmd),
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Example: `
# Enable auto-completion in current bash shell.

    $ . <(themekit completion bash)`,
	}

	return cmd
}

// internalCompletionCmd is a default (internal) completion module function.
func internalCompletionCmd(cmdCtx *cmdcontext.CmdCtx, args []string) error {
	var buf bytes.Buffer
	var err error
	switch shell := args[0]; shell {
	case shellBash:
		err = rootCmd.GenBashCompletionV2(&buf, true)
	case shellZsh:
		err = rootCmd.GenZshCompletion(&buf)
	case shellFish:
		err = rootCmd.GenFishCompletion(&buf, true)
	default:
		return fmt.Errorf("specified shell type is not supported. Available: %s", listShells())
	}
	if err != nil {
		return err
	}
	fmt.Print(buf.String())
	return nil
}

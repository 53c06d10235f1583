package cmd

import (
	"github.com/brainsum/themekit/cli/cmdcontext"
	"github.com/brainsum/themekit/cli/util"
	"github.com/spf13/cobra"
)

// InternalFunc is a command implementation.
type InternalFunc func(cmdCtx *cmdcontext.CmdCtx, args []string) error

// RunModuleFunc returns a cobra run function calling internal with the
// program context. Errors are handled by util.HandleCmdErr.
func RunModuleFunc(internal InternalFunc) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		cmdCtx.CommandName = cmd.Name()
		util.HandleCmdErr(cmd, internal(&cmdCtx, args))
	}
}

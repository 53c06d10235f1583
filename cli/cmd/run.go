package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/brainsum/themekit/cli/cmdcontext"
	"github.com/brainsum/themekit/cli/configure"
	"github.com/brainsum/themekit/cli/pipeline"
	"github.com/brainsum/themekit/cli/util"
	"github.com/spf13/cobra"
)

// NewRunCmd creates run command.
func NewRunCmd() *cobra.Command {
	var runCmd = &cobra.Command{
		Use:   "run [TASK...]",
		Short: "Run asset pipeline tasks",
		Long: "Run asset pipeline tasks of the theme, " + pipeline.DefaultEntryPoint +
			" if none is set.\nTasks: " + strings.Join(entryPointNames(), ", ") + ".",
		Run:               RunModuleFunc(internalRunModule),
		ValidArgsFunction: runValidArgsFunction,
		Example: `
# Build for development, then serve the live reload proxy and watch.

    $ themekit run

# Build for production and lint.

    $ themekit run prod lint

# Run a task of a theme in another directory.

    $ themekit run sassProd --project web/themes/custom/rustique`,
	}

	runCmd.Flags().StringVarP(&cmdCtx.Cli.ProjectDir, "project", "p", "",
		"Theme directory")
	runCmd.Flags().StringVarP(&cmdCtx.Cli.ConfigPath, "cfg", "c", "",
		"Path to "+configure.ConfigName)

	return runCmd
}

func entryPointNames() []string {
	entries := pipeline.EntryPoints()
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name
	}
	return names
}

// runValidArgsFunction completes task names.
func runValidArgsFunction(_ *cobra.Command, _ []string,
	_ string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, entry := range pipeline.EntryPoints() {
		names = append(names, fmt.Sprintf("%s\t%s", entry.Name, entry.Description))
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// internalRunModule is a default run module.
func internalRunModule(cmdCtx *cmdcontext.CmdCtx, args []string) error {
	for _, name := range args {
		if _, ok := pipeline.FindEntryPoint(name); !ok {
			return util.NewArgError(fmt.Sprintf("unknown task %q, available: %s",
				name, strings.Join(entryPointNames(), ", ")))
		}
	}

	if err := configure.Cli(cmdCtx); err != nil {
		return err
	}
	cfg, err := configure.GetConfig(&cmdCtx.Cli)
	if err != nil {
		return err
	}
	p, err := pipeline.New(cfg, pipeline.NewExecToolchain(cfg))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return p.Run(ctx, args...)
}

package cmd

import (
	"fmt"

	"github.com/brainsum/themekit/cli/cmdcontext"
	"github.com/brainsum/themekit/cli/formatter"
	"github.com/brainsum/themekit/cli/pipeline"
	"github.com/brainsum/themekit/cli/util"
	"github.com/spf13/cobra"
)

var (
	tasksFormat     string
	tasksDialect    string
	tasksNoGraphics bool
)

// NewTasksCmd creates tasks command.
func NewTasksCmd() *cobra.Command {
	var tasksCmd = &cobra.Command{
		Use:   "tasks",
		Short: "List asset pipeline tasks",
		Run:   RunModuleFunc(internalTasksModule),
		Args:  cobra.NoArgs,
	}

	tasksCmd.Flags().StringVarP(&tasksFormat, "format", "o", "table",
		"Output format: table or yaml")
	tasksCmd.Flags().StringVar(&tasksDialect, "table-dialect", "default",
		"Table dialect: default or markdown")
	tasksCmd.Flags().BoolVar(&tasksNoGraphics, "no-graphics", false,
		"Render the table without pseudographics")

	return tasksCmd
}

// tasksRows returns a row per entry point.
func tasksRows() [][]string {
	entries := pipeline.EntryPoints()
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{entry.Name, entry.Node.String(), entry.Description})
	}
	return rows
}

// internalTasksModule is a default tasks module.
func internalTasksModule(cmdCtx *cmdcontext.CmdCtx, args []string) error {
	format, ok := formatter.ParseFormat(tasksFormat)
	if !ok {
		return util.NewArgError(fmt.Sprintf("unknown output format %q", tasksFormat))
	}
	dialect, ok := formatter.ParseTableDialect(tasksDialect)
	if !ok {
		return util.NewArgError(fmt.Sprintf("unknown table dialect %q", tasksDialect))
	}
	out, err := formatter.MakeOutput([]string{"TASK", "COMPOSITION", "DESCRIPTION"},
		tasksRows(), format, formatter.Opts{Graphics: !tasksNoGraphics, TableDialect: dialect})
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

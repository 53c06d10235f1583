package cmdcontext

// CmdCtx is the main structure of the program context.
// Contains within itself other structures of CLI modules.
type CmdCtx struct {
	// Cli - CLI context. Contains flags passed when starting
	// themekit and some other parameters.
	Cli CliCtx
	// CommandName contains name of the command.
	CommandName string
}

// CliCtx - CLI context. Contains flags passed when starting
// themekit and some other parameters.
type CliCtx struct {
	// ProjectDir is the theme directory passed with --project. Detected
	// from the configuration file location if empty.
	ProjectDir string
	// ConfigPath is the path to themekit.yml passed with --cfg. Empty if
	// the configuration file should be searched for.
	ConfigPath string
	// Verbose logging flag. Enables debug log output.
	Verbose bool
}

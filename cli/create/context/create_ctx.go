package create_ctx

// CreateCtx contains information for creating a theme from a template.
type CreateCtx struct {
	// WorkDir is themekit launch working directory.
	WorkDir string
	// DestinationDir is the path where a theme will be created. Working
	// directory is used if empty.
	DestinationDir string
	// TemplatePath is a directory with a custom template. Built-in template
	// is used if empty.
	TemplatePath string
	// VarsFromCli template variables definitions provided in command line.
	VarsFromCli []string
	// VarsFile is a file with variables definitions.
	VarsFile string
	// ForceMode - if flag is set, conflicting files in destination are
	// overwritten without confirmation.
	ForceMode bool
	// SilentMode if set, disables user interaction. All invalid format errors fail
	// theme creation.
	SilentMode bool
	// SkipInstall disables npm packages installation.
	SkipInstall bool
	// Install forces npm packages installation in silent mode.
	Install bool
}

package app_template

import "github.com/brainsum/themekit/cli/templates"

// TemplateCtx contains an information required for theme template rendering.
type TemplateCtx struct {
	// AppPath is a path to the staging directory. Theme template is
	// instantiated in this directory.
	AppPath string
	// TargetAppPath is a directory the rendered theme is written to.
	TargetAppPath string
	// Manifest is a loaded template manifest.
	Manifest TemplateManifest
	// IsManifestPresent is true is a template manifest is loaded. False - otherwise.
	IsManifestPresent bool
	// Vars is the answer set used for template rendering.
	Vars map[string]string
	// Engine is a template engine to use for template rendering.
	Engine templates.TemplateEngine
}

// NewTemplateContext creates new theme template context.
func NewTemplateContext() TemplateCtx {
	var ctx TemplateCtx
	ctx.Vars = make(map[string]string)
	ctx.Engine = templates.NewDefaultEngine()
	return ctx
}

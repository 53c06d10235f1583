package builtin_templates

import (
	"embed"
)

//go:embed all:templates
var TemplatesFs embed.FS

// TemplatesRoot is a directory of TemplatesFs containing built-in templates.
const TemplatesRoot = "templates"

// DefaultName is a template used when no template path is specified.
const DefaultName = "drupal_theme"

// Names contains built-in template names.
var Names = [...]string{DefaultName}

package config

import "time"

// Config used to store all information from the
// themekit.yml configuration file.
//
// themekit.yml file format:
// styles:
//   src: glob
//   dest: path
// scripts:
//   src: glob
//   dest: path
// images:
//   src: glob
//   dest: path
// vendors:
//   src: node_modules
//   dest: path
// breakpoint: 48em
// live_reload:
//   proxy: url
//   listen: host:port
//   debounce: duration
// critical:
//   dest: path
//   pages: path
//   dimensions:
//     - width: num
//       height: num
//   ignore: [pattern]
// tools:
//   sass: name
//   ...
type Config struct {
	// ProjectDir is the theme directory. All relative paths are resolved
	// against it.
	ProjectDir string `mapstructure:"-"`
	// ConfigPath is the configuration file in use, empty if none was found.
	ConfigPath string `mapstructure:"-"`

	Styles     PathOpts       `mapstructure:"styles"`
	Scripts    PathOpts       `mapstructure:"scripts"`
	// Images is reserved for image tasks. No task reads it yet, it is kept
	// so generated projects declare the image file set next to the others.
	Images     PathOpts       `mapstructure:"images"`
	Vendors    PathOpts       `mapstructure:"vendors"`
	Breakpoint string         `mapstructure:"breakpoint"`
	LiveReload LiveReloadOpts `mapstructure:"live_reload"`
	Critical   CriticalOpts   `mapstructure:"critical"`
	Tools      ToolsOpts      `mapstructure:"tools"`
}

// PathOpts is a source glob with its output directory.
type PathOpts struct {
	// Src is a glob relative to the project directory.
	Src string `mapstructure:"src"`
	// Dest is an output directory.
	Dest string `mapstructure:"dest"`
}

// LiveReloadOpts configures the development proxy.
type LiveReloadOpts struct {
	// Proxy is the URL of the site under development.
	Proxy string `mapstructure:"proxy"`
	// Listen is the address of the proxy server.
	Listen string `mapstructure:"listen"`
	// Debounce is the delay between a change and a rebuild.
	Debounce time.Duration `mapstructure:"debounce"`
}

// Dimension is a viewport size.
type Dimension struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// CriticalOpts configures critical CSS generation.
type CriticalOpts struct {
	Dest       string      `mapstructure:"dest"`
	Pages      string      `mapstructure:"pages"`
	Dimensions []Dimension `mapstructure:"dimensions"`
	// Ignore is a list of patterns of rules and declarations to drop.
	Ignore []string `mapstructure:"ignore"`
}

// ToolsOpts holds executable names of the Node toolchain.
type ToolsOpts struct {
	Sass      string `mapstructure:"sass"`
	Postcss   string `mapstructure:"postcss"`
	Stylelint string `mapstructure:"stylelint"`
	Eslint    string `mapstructure:"eslint"`
	Critical  string `mapstructure:"critical"`
}

package configure

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/brainsum/themekit/cli/cmdcontext"
	"github.com/brainsum/themekit/cli/config"
	"github.com/brainsum/themekit/cli/css"
	"github.com/spf13/viper"
)

const (
	// ConfigName is the pipeline configuration file name.
	ConfigName = "themekit.yml"
	// EnvPrefix is the prefix of environment variables overriding
	// configuration values: THEMEKIT_LIVE_RELOAD_PROXY etc.
	EnvPrefix = "themekit"
)

// setDefaults sets the built-in pipeline configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("styles.src", "sass/**/*.scss")
	v.SetDefault("styles.dest", "css")
	v.SetDefault("scripts.src", "js/src/*.js")
	v.SetDefault("scripts.dest", "js/dist")
	v.SetDefault("images.src", "images/src/*")
	v.SetDefault("images.dest", "images/dist")
	v.SetDefault("vendors.src", "node_modules")
	v.SetDefault("vendors.dest", "vendors")
	v.SetDefault("breakpoint", "48em")
	v.SetDefault("live_reload.proxy", "http://localhost")
	v.SetDefault("live_reload.listen", "localhost:3000")
	v.SetDefault("live_reload.debounce", "200ms")
	v.SetDefault("critical.dest", "css/critical")
	v.SetDefault("critical.pages", "critical.json")
	v.SetDefault("critical.dimensions", []map[string]int{
		{"width": 500, "height": 200},
		{"width": 1200, "height": 900},
	})
	v.SetDefault("critical.ignore", css.DefaultIgnore)
	v.SetDefault("tools.sass", "sass")
	v.SetDefault("tools.postcss", "postcss")
	v.SetDefault("tools.stylelint", "stylelint")
	v.SetDefault("tools.eslint", "eslint")
	v.SetDefault("tools.critical", "critical")
}

// adjustPathWithConfigLocation adjust provided filePath with configDir.
// Absolute filePath is returned as is. Relative filePath is calculated relative to configDir.
func adjustPathWithConfigLocation(filePath, configDir string) string {
	if filePath == "" || filepath.IsAbs(filePath) {
		return filePath
	}
	return filepath.Join(configDir, filePath)
}

// getConfigPath looks for the themekit.yml configuration file, looking
// through all directories from startDir to the root.
func getConfigPath(startDir string) (string, error) {
	curDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to detect current directory: %s", err)
	}
	for {
		configPath := filepath.Join(curDir, ConfigName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		} else if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(curDir)
		if parent == curDir {
			return "", nil
		}
		curDir = parent
	}
}

// Cli resolves the project directory and the configuration file path of
// the command context.
func Cli(cmdCtx *cmdcontext.CmdCtx) error {
	cli := &cmdCtx.Cli
	if cli.ConfigPath != "" {
		configPath, err := filepath.Abs(cli.ConfigPath)
		if err != nil {
			return err
		}
		if _, err := os.Stat(configPath); err != nil {
			return fmt.Errorf("failed to get access to configuration file: %s", err)
		}
		cli.ConfigPath = configPath
		if cli.ProjectDir == "" {
			cli.ProjectDir = filepath.Dir(configPath)
		}
	}

	startDir := cli.ProjectDir
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to detect current directory: %s", err)
		}
		startDir = wd
	}
	projectDir, err := filepath.Abs(startDir)
	if err != nil {
		return err
	}
	if info, err := os.Stat(projectDir); err != nil || !info.IsDir() {
		return fmt.Errorf("project directory %s does not exist", projectDir)
	}

	if cli.ConfigPath == "" {
		configPath, err := getConfigPath(projectDir)
		if err != nil {
			return err
		}
		if configPath != "" && cli.ProjectDir == "" {
			projectDir = filepath.Dir(configPath)
		}
		cli.ConfigPath = configPath
	}
	cli.ProjectDir = projectDir
	log.Debugf("Project directory: %s", projectDir)
	if cli.ConfigPath != "" {
		log.Debugf("Configuration file: %s", cli.ConfigPath)
	}
	return nil
}

// GetConfig returns the pipeline configuration: built-in defaults
// overridden by the configuration file and THEMEKIT_* environment
// variables. Relative paths are resolved against the project directory.
func GetConfig(cliCtx *cmdcontext.CliCtx) (*config.Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cliCtx.ConfigPath != "" {
		v.SetConfigFile(cliCtx.ConfigPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse themekit configuration: %s", err)
		}
	}

	cfg := &config.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse themekit configuration: %s", err)
	}
	cfg.ProjectDir = cliCtx.ProjectDir
	cfg.ConfigPath = cliCtx.ConfigPath

	if _, err := ParseBreakpoint(cfg.Breakpoint); err != nil {
		return nil, err
	}
	if cfg.LiveReload.Debounce < 0 {
		return nil, fmt.Errorf("negative live_reload.debounce: %s", cfg.LiveReload.Debounce)
	}
	for _, dim := range cfg.Critical.Dimensions {
		if dim.Width <= 0 || dim.Height <= 0 {
			return nil, fmt.Errorf("invalid critical dimension %dx%d", dim.Width, dim.Height)
		}
	}

	for _, dir := range []*string{
		&cfg.Styles.Dest, &cfg.Scripts.Dest, &cfg.Images.Dest,
		&cfg.Vendors.Src, &cfg.Vendors.Dest,
		&cfg.Critical.Dest, &cfg.Critical.Pages,
	} {
		*dir = adjustPathWithConfigLocation(*dir, cfg.ProjectDir)
	}
	return cfg, nil
}

// ParseBreakpoint converts a breakpoint like 48em, 768px or 48 to em.
func ParseBreakpoint(value string) (float64, error) {
	raw := strings.ToLower(strings.TrimSpace(value))
	divisor := 1.0
	switch {
	case strings.HasSuffix(raw, "px"):
		raw, divisor = strings.TrimSuffix(raw, "px"), 16
	case strings.HasSuffix(raw, "rem"):
		raw = strings.TrimSuffix(raw, "rem")
	case strings.HasSuffix(raw, "em"):
		raw = strings.TrimSuffix(raw, "em")
	}
	number, err := strconv.ParseFloat(raw, 64)
	if err != nil || number <= 0 {
		return 0, fmt.Errorf("invalid breakpoint %q", value)
	}
	return number / divisor, nil
}

// Page is a page type of the critical CSS page table.
type Page struct {
	// Name is the page type label, used as the output file name.
	Name string
	// URL is absolute or relative to the proxied site.
	URL string
}

// LoadPages reads the page table: a JSON object of label to URL.
// Pages are sorted by name.
func LoadPages(path string) ([]Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("page table %s does not exist", path)
		}
		return nil, err
	}
	var table map[string]string
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("invalid page table %s: %s", path, err)
	}
	pages := make([]Page, 0, len(table))
	for name, url := range table {
		if name == "" || strings.ContainsAny(name, `/\`) {
			return nil, fmt.Errorf("invalid page name %q in %s", name, path)
		}
		pages = append(pages, Page{Name: name, URL: url})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Name < pages[j].Name })
	return pages, nil
}

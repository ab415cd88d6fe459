package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	sverrors "github.com/alexisbeaulieu97/sportvisual/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// DefaultPath is where the CLI looks for a configuration file when none is given.
const DefaultPath = "~/.sportvisual/config.yaml"

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{Path: "~/.sportvisual/sportvisual.db"},
		Render:  RenderConfig{Format: "square", DecodeTimeout: 10 * time.Second, ExportDir: "."},
		Server:  ServerConfig{Addr: ":8080", MetricsPath: "/metrics"},
		Log:     LogConfig{Level: "info", Human: true},
	}
}

// Load reads the file at path over the defaults. An empty path, or the default
// path when it does not exist, yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
		if _, err := os.Stat(ExpandHome(path)); err != nil {
			return finalize(Default()), nil
		}
	}
	return ParseConfig(path)
}

// ParseConfig loads a configuration file from disk over the defaults,
// validates it and returns the result.
func ParseConfig(path string) (*Config, error) {
	data, err := os.ReadFile(ExpandHome(path))
	if err != nil {
		return nil, sverrors.NewParseError(path, 0, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, sverrors.NewParseError(path, extractLine(err), err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return finalize(cfg), nil
}

func finalize(cfg *Config) *Config {
	cfg.Storage.Path = ExpandHome(cfg.Storage.Path)
	cfg.Render.ExportDir = ExpandHome(cfg.Render.ExportDir)
	for i, dir := range cfg.Fonts.Dirs {
		cfg.Fonts.Dirs[i] = ExpandHome(dir)
	}
	return cfg
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}

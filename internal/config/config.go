package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory and in
// the user config directory.
const FileName = ".ut.yaml"

// FileConfig is the content of a .ut.yaml file. Pointer fields distinguish
// "unset" from an explicit false.
type FileConfig struct {
	Format          string `yaml:"format"`
	Theme           string `yaml:"theme"`
	NoColor         *bool  `yaml:"no_color"`
	CI              *bool  `yaml:"ci"`
	PrintStack      *bool  `yaml:"print_stack"`
	CaptureOutput   *bool  `yaml:"capture_output"`
	MaxCaptureBytes int    `yaml:"max_capture_bytes"`
	AsyncTimeout    string `yaml:"async_timeout"`
	Summary         *bool  `yaml:"summary"`
	MetricsFile     string `yaml:"metrics_file"`
	LogLevel        string `yaml:"log_level"`
	LogFormat       string `yaml:"log_format"`
}

// LoadFile reads the config file at path. An empty path searches the
// default locations; finding nothing there is not an error. The returned
// path is the file actually read, or "".
func LoadFile(path string) (*FileConfig, string, error) {
	explicit := path != ""
	if !explicit {
		path = findConfigPath()
		if path == "" {
			return &FileConfig{}, "", nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return &FileConfig{}, "", nil
		}
		return nil, "", fmt.Errorf("read config %s: %w", path, err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, "", fmt.Errorf("parse config %s: %w", path, err)
	}
	return &fc, path, nil
}

// findConfigPath checks the working directory first, then the user config
// directory (e.g. ~/.config/ut/.ut.yaml).
func findConfigPath() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "ut", FileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Appearance holds colors (by name, #RRGGBB, or 0-255 index) and layout.
type Appearance struct {
	SelectedColor  string `yaml:"selected_color"`
	DirectoryColor string `yaml:"directory_color"`
	FileColor      string `yaml:"file_color"`
	BorderColor    string `yaml:"border_color"`
	ErrorColor     string `yaml:"error_color"`
	HighlightColor string `yaml:"highlight_color"`

	// SplitPosition is the tree pane width as a percentage of the screen.
	SplitPosition   int    `yaml:"split_position"`
	ShowLineNumbers bool   `yaml:"show_line_numbers"`
	SyntaxTheme     string `yaml:"syntax_theme"`
	EnableSyntax    bool   `yaml:"enable_syntax_highlighting"`
}

// Behavior holds navigation and viewer behavior switches.
type Behavior struct {
	ShowHidden     bool `yaml:"show_hidden"`
	ShowFiles      bool `yaml:"show_files"`
	FollowSymlinks bool `yaml:"follow_symlinks"`
	MaxFileLines   int  `yaml:"max_file_lines"`
	WrapLines      bool `yaml:"wrap_lines"`
}

// Config is the persisted application configuration.
type Config struct {
	Appearance Appearance `yaml:"appearance"`
	Behavior   Behavior   `yaml:"behavior"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Appearance: Appearance{
			SelectedColor:  "yellow",
			DirectoryColor: "cyan",
			FileColor:      "white",
			BorderColor:    "gray",
			ErrorColor:     "red",
			HighlightColor: "magenta",
			SplitPosition:  40,
			SyntaxTheme:    "monokai",
			EnableSyntax:   true,
		},
		Behavior: Behavior{
			MaxFileLines: 2000,
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve config directory: %w", err)
	}
	return filepath.Join(dir, "dtree", "config.yaml"), nil
}

// Load reads the config at path, falling back to defaults for every missing
// key. A missing file is not an error: first run uses the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the config, creating the parent directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}

func (c *Config) normalize() {
	if c.Appearance.SplitPosition < 10 || c.Appearance.SplitPosition > 90 {
		c.Appearance.SplitPosition = Default().Appearance.SplitPosition
	}
	if c.Behavior.MaxFileLines <= 0 {
		c.Behavior.MaxFileLines = Default().Behavior.MaxFileLines
	}
}

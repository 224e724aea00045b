// Package config handles configuration loading and validation for caseedit.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/caseedit/internal/core/styles"
)

// Built-in action names for keybindings.
const (
	ActionOpen        = "open"
	ActionNew         = "new"
	ActionSave        = "save"
	ActionSaveAs      = "save-as"
	ActionClose       = "close"
	ActionDelete      = "delete"
	ActionInsert      = "insert"
	ActionReplace     = "replace"
	ActionSelectAll   = "select-all"
	ActionUnselectAll = "unselect-all"
	ActionExpandAll   = "expand-all"
	ActionCollapseAll = "collapse-all"
	ActionPreview     = "preview"
	ActionNextTab     = "next-tab"
	ActionPrevTab     = "prev-tab"
	ActionHelp        = "help"
	ActionQuit        = "quit"
)

var actions = []string{
	ActionOpen, ActionNew, ActionSave, ActionSaveAs, ActionClose,
	ActionDelete, ActionInsert, ActionReplace,
	ActionSelectAll, ActionUnselectAll, ActionExpandAll, ActionCollapseAll,
	ActionPreview, ActionNextTab, ActionPrevTab, ActionHelp, ActionQuit,
}

// defaultKeybindings maps keys to built-in actions. Users may override them.
var defaultKeybindings = map[string]string{
	"o":         ActionOpen,
	"n":         ActionNew,
	"ctrl+s":    ActionSave,
	"S":         ActionSaveAs,
	"w":         ActionClose,
	"d":         ActionDelete,
	"i":         ActionInsert,
	"r":         ActionReplace,
	"a":         ActionSelectAll,
	"A":         ActionUnselectAll,
	"e":         ActionExpandAll,
	"E":         ActionCollapseAll,
	"p":         ActionPreview,
	"tab":       ActionNextTab,
	"shift+tab": ActionPrevTab,
	"?":         ActionHelp,
	"q":         ActionQuit,
}

// Config holds the application configuration.
type Config struct {
	Theme       string            `yaml:"theme"`
	Indent      int               `yaml:"indent"`
	Extensions  []string          `yaml:"extensions"`
	Recent      RecentConfig      `yaml:"recent"`
	Confirm     ConfirmConfig     `yaml:"confirm"`
	TUI         TUIConfig         `yaml:"tui"`
	Keybindings map[string]string `yaml:"keybindings"`
	DataDir     string            `yaml:"-"` // set by caller, not from config file
}

// RecentConfig controls the recent files list.
type RecentConfig struct {
	MaxEntries int `yaml:"max_entries"`
}

// ConfirmConfig controls when edit operations ask for confirmation.
type ConfirmConfig struct {
	// InsertThreshold is the number of insert targets above which the user
	// is asked to confirm.
	InsertThreshold int `yaml:"insert_threshold"`
}

// TUIConfig holds interactive editor settings.
type TUIConfig struct {
	ExpandOnOpen *bool `yaml:"expand_on_open"`
	WatchFiles   *bool `yaml:"watch_files"`
}

// ExpandOnOpenEnabled reports whether trees start fully expanded.
func (t TUIConfig) ExpandOnOpenEnabled() bool {
	return t.ExpandOnOpen == nil || *t.ExpandOnOpen
}

// WatchFilesEnabled reports whether open files are watched for outside changes.
func (t TUIConfig) WatchFilesEnabled() bool {
	return t.WatchFiles == nil || *t.WatchFiles
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme:       styles.DefaultTheme,
		Indent:      4,
		Extensions:  []string{".json"},
		Recent:      RecentConfig{MaxEntries: 20},
		Confirm:     ConfirmConfig{InsertThreshold: 1},
		Keybindings: map[string]string{},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.Keybindings = mergeKeybindings(defaultKeybindings, cfg.Keybindings)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Indent == 0 {
		c.Indent = defaults.Indent
	}
	if len(c.Extensions) == 0 {
		c.Extensions = defaults.Extensions
	}
	if c.Recent.MaxEntries == 0 {
		c.Recent.MaxEntries = defaults.Recent.MaxEntries
	}
	if c.Confirm.InsertThreshold == 0 {
		c.Confirm.InsertThreshold = defaults.Confirm.InsertThreshold
	}
	for i, ext := range c.Extensions {
		c.Extensions[i] = normalizeExt(ext)
	}
}

// mergeKeybindings merges user keybindings into defaults.
// User keybindings override defaults for the same key.
func mergeKeybindings(defaults, user map[string]string) map[string]string {
	result := make(map[string]string, len(defaults)+len(user))
	for k, v := range defaults {
		result[k] = v
	}
	for k, v := range user {
		result[k] = v
	}
	return result
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if _, ok := styles.GetPalette(c.Theme); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", c.Theme, strings.Join(styles.ThemeNames(), ", "))
	}

	if c.Indent < 1 || c.Indent > 8 {
		return fmt.Errorf("indent must be between 1 and 8")
	}

	if c.Recent.MaxEntries < 1 {
		return fmt.Errorf("recent.max_entries must be at least 1")
	}

	if c.Confirm.InsertThreshold < 0 {
		return fmt.Errorf("confirm.insert_threshold cannot be negative")
	}

	for key, action := range c.Keybindings {
		if !IsValidAction(action) {
			return fmt.Errorf("keybinding %q has invalid action %q", key, action)
		}
	}

	return nil
}

// Actions returns the built-in action names in display order.
func Actions() []string {
	return slices.Clone(actions)
}

// IsValidAction reports whether action names a built-in action.
func IsValidAction(action string) bool {
	return slices.Contains(actions, action)
}

// Accepts reports whether path has one of the configured extensions. The
// comparison ignores case.
func (c *Config) Accepts(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.ContainsFunc(c.Extensions, func(e string) bool {
		return strings.ToLower(e) == ext
	})
}

// RecentFile returns the path to the recent files JSON file.
func (c *Config) RecentFile() string {
	return filepath.Join(c.DataDir, "recent.json")
}

// LogFile returns the default log file path.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "caseedit.log")
}

func normalizeExt(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

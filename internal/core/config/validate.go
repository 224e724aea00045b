package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// extension syntax and file accessibility. The configPath argument specifies
// the config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateExtensions(),
		c.validateKeybindings(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	bound := make(map[string]bool, len(c.Keybindings))
	for _, action := range c.Keybindings {
		bound[action] = true
	}
	for _, action := range []string{ActionSave, ActionQuit} {
		if !bound[action] {
			warnings = append(warnings, ValidationWarning{
				Category: "Keybindings",
				Item:     action,
				Message:  "action has no key bound",
			})
		}
	}

	if !slices.Contains(c.Extensions, ".json") {
		warnings = append(warnings, ValidationWarning{
			Category: "Extensions",
			Message:  ".json files will not be accepted by open dialogs",
		})
	}

	return warnings
}

// validateFileAccess checks the config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

// validateExtensions checks each extension is a bare ".ext" suffix.
func (c *Config) validateExtensions() error {
	var errs criterio.FieldErrorsBuilder
	seen := make(map[string]bool, len(c.Extensions))
	for i, ext := range c.Extensions {
		field := fmt.Sprintf("extensions[%d]", i)
		switch {
		case ext == "" || ext == ".":
			errs = errs.Append(field, fmt.Errorf("extension cannot be empty"))
		case strings.ContainsAny(ext, `/\*?[`):
			errs = errs.Append(field, fmt.Errorf("invalid extension %q", ext))
		case seen[strings.ToLower(ext)]:
			errs = errs.Append(field, fmt.Errorf("duplicate extension %q", ext))
		}
		seen[strings.ToLower(ext)] = true
	}
	return errs.ToError()
}

// validateKeybindings checks that bound keys are non-empty.
func (c *Config) validateKeybindings() error {
	var errs criterio.FieldErrorsBuilder
	for key, action := range c.Keybindings {
		if strings.TrimSpace(key) == "" {
			errs = errs.Append(fmt.Sprintf("keybindings[%q]", key), fmt.Errorf("key for action %q cannot be blank", action))
		}
	}
	return errs.ToError()
}

// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// EngineAuto probes for an available engine at startup (podman first).
	EngineAuto ContainerEngine = "auto"
	// EnginePodman uses Podman as the container runtime.
	EnginePodman ContainerEngine = "podman"
	// EngineDocker uses Docker as the container runtime.
	EngineDocker ContainerEngine = "docker"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidContainerEngine is returned when a ContainerEngine value is not recognized.
	ErrInvalidContainerEngine = errors.New("invalid container engine")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidTagPrefix is returned when a TagPrefix value is not a valid image name component.
	ErrInvalidTagPrefix = errors.New("invalid tag prefix")
	// ErrInvalidWorkDir is returned when a WorkDir value is not an absolute path.
	ErrInvalidWorkDir = errors.New("invalid work dir")
	// ErrInvalidBuildConfig is the sentinel error wrapped by InvalidBuildConfigError.
	ErrInvalidBuildConfig = errors.New("invalid build config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ContainerEngine specifies which container runtime to use.
	ContainerEngine string

	// InvalidContainerEngineError is returned when a ContainerEngine value is not recognized.
	// It wraps ErrInvalidContainerEngine for errors.Is() compatibility.
	InvalidContainerEngineError struct {
		Value ContainerEngine
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// TagPrefix is the repository-name prefix for snapshot image tags.
	// A valid prefix is lowercase alphanumeric with interior dashes,
	// matching what image registries accept as a name component.
	TagPrefix string

	// InvalidTagPrefixError is returned when a TagPrefix value is not a
	// valid image name component. It wraps ErrInvalidTagPrefix.
	InvalidTagPrefixError struct {
		Value TagPrefix
	}

	// WorkDir is the in-image working directory where the app file lands.
	// The zero value ("") is valid and means "use the built-in default".
	// Non-zero values must be absolute paths.
	WorkDir string

	// InvalidWorkDirError is returned when a WorkDir value is non-empty
	// but not absolute. It wraps ErrInvalidWorkDir.
	InvalidWorkDirError struct {
		Value WorkDir
	}

	// InvalidBuildConfigError is returned when a BuildConfig has invalid fields.
	// It wraps ErrInvalidBuildConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidBuildConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// ContainerEngine selects "podman", "docker", or "auto" for runtime probing
		ContainerEngine ContainerEngine `json:"container_engine" toml:"container_engine" mapstructure:"container_engine"`
		// Build configures snapshot building
		Build BuildConfig `json:"build" toml:"build" mapstructure:"build"`
		// UI configures the user interface
		UI UIConfig `json:"ui" toml:"ui" mapstructure:"ui"`
	}

	// BuildConfig configures snapshot building.
	BuildConfig struct {
		// TagPrefix is the repository-name prefix for snapshot tags
		TagPrefix TagPrefix `json:"tag_prefix" toml:"tag_prefix" mapstructure:"tag_prefix"`
		// WorkDir is the in-image working directory for the app file
		WorkDir WorkDir `json:"work_dir" toml:"work_dir" mapstructure:"work_dir"`
		// BaseImages overrides the default base image per flavor,
		// e.g. {python = "python:3.13-slim"}
		BaseImages map[string]string `json:"base_images" toml:"base_images" mapstructure:"base_images"`
		// NoCache disables the engine's layer cache for every build
		NoCache bool `json:"no_cache" toml:"no_cache" mapstructure:"no_cache"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" toml:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" toml:"verbose" mapstructure:"verbose"`
	}
)

// tagPrefixAllowed reports whether r may appear in a tag prefix.
func tagPrefixAllowed(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
}

// String returns the string representation of the ContainerEngine.
func (ce ContainerEngine) String() string { return string(ce) }

// IsValid returns whether the ContainerEngine is one of the defined engine
// selections, and a list of validation errors if it is not.
func (ce ContainerEngine) IsValid() (bool, []error) {
	switch ce {
	case EngineAuto, EnginePodman, EngineDocker:
		return true, nil
	default:
		return false, []error{&InvalidContainerEngineError{Value: ce}}
	}
}

// Error implements the error interface for InvalidContainerEngineError.
func (e *InvalidContainerEngineError) Error() string {
	return fmt.Sprintf("invalid container engine %q (valid: auto, podman, docker)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidContainerEngineError) Unwrap() error {
	return ErrInvalidContainerEngine
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the TagPrefix.
func (p TagPrefix) String() string { return string(p) }

// IsValid returns whether the TagPrefix is a valid image name component.
// A valid prefix is non-empty, lowercase alphanumeric with interior dashes,
// and neither starts nor ends with a dash.
func (p TagPrefix) IsValid() (bool, []error) {
	s := string(p)
	if s == "" {
		return false, []error{&InvalidTagPrefixError{Value: p}}
	}
	for _, r := range s {
		if !tagPrefixAllowed(r) {
			return false, []error{&InvalidTagPrefixError{Value: p}}
		}
	}
	if strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") {
		return false, []error{&InvalidTagPrefixError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidTagPrefixError.
func (e *InvalidTagPrefixError) Error() string {
	return fmt.Sprintf("invalid tag prefix %q: must be lowercase alphanumeric with interior dashes", e.Value)
}

// Unwrap returns ErrInvalidTagPrefix for errors.Is() compatibility.
func (e *InvalidTagPrefixError) Unwrap() error { return ErrInvalidTagPrefix }

// String returns the string representation of the WorkDir.
func (w WorkDir) String() string { return string(w) }

// IsValid returns whether the WorkDir is valid.
// The zero value ("") is valid (means "use the built-in default").
// Non-zero values must be absolute paths.
func (w WorkDir) IsValid() (bool, []error) {
	if w == "" {
		return true, nil
	}
	if !filepath.IsAbs(string(w)) {
		return false, []error{&InvalidWorkDirError{Value: w}}
	}
	return true, nil
}

// Error implements the error interface for InvalidWorkDirError.
func (e *InvalidWorkDirError) Error() string {
	return fmt.Sprintf("invalid work dir %q: must be an absolute path", e.Value)
}

// Unwrap returns ErrInvalidWorkDir for errors.Is() compatibility.
func (e *InvalidWorkDirError) Unwrap() error { return ErrInvalidWorkDir }

// IsValid returns whether the BuildConfig has valid fields.
// It delegates to TagPrefix.IsValid() and WorkDir.IsValid(); BaseImages
// values are validated by the engine at build time.
func (c BuildConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.TagPrefix.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.WorkDir.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidBuildConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidBuildConfigError.
func (e *InvalidBuildConfigError) Error() string {
	return fmt.Sprintf("invalid build config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidBuildConfig for errors.Is() compatibility.
func (e *InvalidBuildConfigError) Unwrap() error { return ErrInvalidBuildConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to ContainerEngine.IsValid(), Build.IsValid(), and UI.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ContainerEngine.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Build.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ContainerEngine: EngineAuto,
		Build: BuildConfig{
			TagPrefix:  "appcrate",
			WorkDir:    "", // Provision layer supplies the default
			BaseImages: map[string]string{},
			NoCache:    false,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}

// SPDX-License-Identifier: MPL-2.0

package appfile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFlavor is the sentinel error wrapped by UnknownFlavorError.
var ErrUnknownFlavor = errors.New("unknown application flavor")

type (
	// Flavor describes an application runtime family: the interpreter used as
	// the entry command, the default base image, and how declared dependencies
	// are installed into the image.
	Flavor struct {
		// Name is the flavor identifier (e.g., "python", "node")
		Name string
		// Interpreter is the entry command interpreter (e.g., "python3")
		Interpreter string
		// DefaultBaseImage is used when no base image is given
		DefaultBaseImage string
		// ManifestName is the conventional manifest filename for this flavor
		ManifestName string
		// installTemplate renders the dependency install shell command;
		// %s is replaced by the manifest filename inside the image.
		// Empty means the flavor has no manifest installer.
		installTemplate string
	}

	// UnknownFlavorError is returned when no flavor matches an application
	// file's interpreter or extension.
	UnknownFlavorError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *UnknownFlavorError) Error() string {
	return fmt.Sprintf("unknown application flavor for %q (known: %s)", e.Value, strings.Join(FlavorNames(), ", "))
}

// Unwrap returns ErrUnknownFlavor so callers can use errors.Is for programmatic detection.
func (e *UnknownFlavorError) Unwrap() error { return ErrUnknownFlavor }

// SupportsManifest returns true if the flavor knows how to install a
// dependency manifest.
func (f Flavor) SupportsManifest() bool {
	return f.installTemplate != ""
}

// InstallCommand renders the shell command that installs the manifest's
// packages without retaining download or build caches. Returns empty when
// the flavor has no manifest installer.
func (f Flavor) InstallCommand(manifestName string) string {
	if f.installTemplate == "" {
		return ""
	}
	return fmt.Sprintf(f.installTemplate, manifestName)
}

// flavors is the registry of known application flavors.
var flavors = []Flavor{
	{
		Name:             "python",
		Interpreter:      "python3",
		DefaultBaseImage: "python:3.12-slim",
		ManifestName:     "requirements.txt",
		installTemplate:  "pip install --no-cache-dir -r %s",
	},
	{
		Name:             "node",
		Interpreter:      "node",
		DefaultBaseImage: "node:22-slim",
		ManifestName:     "packages.txt",
		installTemplate:  "xargs -a %s npm install --no-audit --no-fund",
	},
	{
		Name:             "ruby",
		Interpreter:      "ruby",
		DefaultBaseImage: "ruby:3.3-slim",
		ManifestName:     "gems.txt",
		installTemplate:  "xargs -a %s gem install --no-document",
	},
	{
		Name:             "shell",
		Interpreter:      "sh",
		DefaultBaseImage: "debian:stable-slim",
		ManifestName:     "",
		installTemplate:  "",
	},
}

// flavorsByExtension maps application file extensions to flavor names.
var flavorsByExtension = map[string]string{
	".py": "python",
	".js": "node",
	".rb": "ruby",
	".sh": "shell",
}

// flavorsByInterpreter maps interpreter base names to flavor names.
var flavorsByInterpreter = map[string]string{
	"python": "python", "python3": "python", "python2": "python",
	"node": "node", "nodejs": "node",
	"ruby": "ruby",
	"sh":   "shell", "bash": "shell", "dash": "shell", "zsh": "shell", "ash": "shell", "ksh": "shell",
}

// FlavorNames returns the names of all registered flavors.
func FlavorNames() []string {
	names := make([]string, 0, len(flavors))
	for _, f := range flavors {
		names = append(names, f.Name)
	}
	return names
}

// FlavorByName looks up a flavor by its registry name.
func FlavorByName(name string) (Flavor, error) {
	for _, f := range flavors {
		if f.Name == name {
			return f, nil
		}
	}
	return Flavor{}, &UnknownFlavorError{Value: name}
}

// FlavorForInterpreter resolves the flavor for an interpreter command
// (path or base name).
func FlavorForInterpreter(interpreter string) (Flavor, error) {
	name, ok := flavorsByInterpreter[InterpreterBase(interpreter)]
	if !ok {
		return Flavor{}, &UnknownFlavorError{Value: interpreter}
	}
	return FlavorByName(name)
}

// FlavorForExtension resolves the flavor for a file extension (with dot).
func FlavorForExtension(ext string) (Flavor, error) {
	name, ok := flavorsByExtension[strings.ToLower(ext)]
	if !ok {
		return Flavor{}, &UnknownFlavorError{Value: ext}
	}
	return FlavorByName(name)
}

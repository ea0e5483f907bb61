// SPDX-License-Identifier: MPL-2.0

package appfile

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotRegularFile is returned when the application path exists but is not
// a regular file.
var ErrNotRegularFile = errors.New("application path is not a regular file")

// AppFile is the single source file constituting the runnable program. It is
// copied verbatim into the image's working directory; the build never
// modifies it.
type AppFile struct {
	// Path is the application file path on the host
	Path string
	// Name is the base filename, used as the copy destination in the image
	Name string
	// Flavor is the resolved runtime family
	Flavor Flavor
	// Interpreter is the entry command interpreter. Usually the flavor
	// default; a shebang or explicit override takes precedence.
	Interpreter string
	// ContentHash is the sha256 hex digest of the file contents
	ContentHash string
}

// Resolve validates the application file and determines its interpreter.
//
// Resolution order for the interpreter:
//  1. interpreterOverride, when non-empty
//  2. the file's shebang line, when present
//  3. the flavor default for the file extension
//
// The flavor itself is resolved from the shebang interpreter when one is
// found, otherwise from the extension.
func Resolve(path string, interpreterOverride string) (*AppFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("application file '%s': %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("application file '%s': %w", path, ErrNotRegularFile)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read application file '%s': %w", path, err)
	}

	sum := sha256.Sum256(content)

	app := &AppFile{
		Path:        path,
		Name:        filepath.Base(path),
		ContentHash: hex.EncodeToString(sum[:]),
	}

	shebang := ParseShebang(string(content))

	// Resolve the flavor: shebang first, then extension
	if shebang.Found {
		flavor, err := FlavorForInterpreter(shebang.Interpreter)
		if err != nil {
			return nil, err
		}
		app.Flavor = flavor
		app.Interpreter = InterpreterBase(shebang.Interpreter)
	} else {
		flavor, err := FlavorForExtension(filepath.Ext(path))
		if err != nil {
			return nil, err
		}
		app.Flavor = flavor
		app.Interpreter = flavor.Interpreter
	}

	if interpreterOverride != "" {
		app.Interpreter = interpreterOverride
	}

	return app, nil
}

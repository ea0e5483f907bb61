// SPDX-License-Identifier: MPL-2.0

package appfile

import (
	"path/filepath"
	"strings"
)

// ShebangInfo contains parsed shebang information from an application file.
type ShebangInfo struct {
	// Interpreter is the interpreter path or command name (e.g., "/bin/bash", "python3")
	Interpreter string
	// Args contains additional arguments to pass to the interpreter (e.g., ["-u"] for python3 -u)
	Args []string
	// Found indicates whether a valid shebang was detected
	Found bool
}

// ParseShebang extracts interpreter information from file content.
// It parses the first line looking for a shebang (#!) pattern.
//
// Supported formats:
//   - #!/bin/bash            -> Interpreter: "/bin/bash", Args: []
//   - #!/usr/bin/env python3 -> Interpreter: "python3", Args: []
//   - #!/usr/bin/env -S python3 -u -> Interpreter: "python3", Args: ["-u"]
//   - #!/usr/bin/perl -w     -> Interpreter: "/usr/bin/perl", Args: ["-w"]
//   - #! /bin/sh             -> Interpreter: "/bin/sh", Args: [] (space after #! allowed)
//
// If no valid shebang is found, returns ShebangInfo{Found: false}.
func ParseShebang(content string) ShebangInfo {
	// Get first line
	firstLine := content
	if idx := strings.IndexByte(content, '\n'); idx != -1 {
		firstLine = content[:idx]
	}
	// Also handle Windows-style line endings
	firstLine = strings.TrimSuffix(firstLine, "\r")
	firstLine = strings.TrimSpace(firstLine)

	// Check for shebang prefix
	if !strings.HasPrefix(firstLine, "#!") {
		return ShebangInfo{Found: false}
	}

	// Extract the part after #!
	shebang := strings.TrimSpace(strings.TrimPrefix(firstLine, "#!"))
	if shebang == "" {
		return ShebangInfo{Found: false}
	}

	parts := strings.Fields(shebang)
	if len(parts) == 0 {
		return ShebangInfo{Found: false}
	}

	interpreter := parts[0]
	args := parts[1:]

	// Handle /usr/bin/env specially (finds interpreter in PATH)
	if interpreter == "/usr/bin/env" || interpreter == "/bin/env" {
		return parseEnvShebang(args)
	}

	return ShebangInfo{
		Interpreter: interpreter,
		Args:        args,
		Found:       true,
	}
}

// parseEnvShebang handles the special case of #!/usr/bin/env
// which is used to find the interpreter in PATH.
func parseEnvShebang(args []string) ShebangInfo {
	if len(args) == 0 {
		return ShebangInfo{Found: false}
	}

	// Handle -S flag (split string mode, common on BSD/macOS)
	// Example: #!/usr/bin/env -S python3 -u
	if args[0] == "-S" {
		if len(args) < 2 {
			return ShebangInfo{Found: false}
		}
		return ShebangInfo{
			Interpreter: args[1],
			Args:        args[2:],
			Found:       true,
		}
	}

	// Skip other env flags (rare, but handle gracefully)
	// Look for the first non-flag argument as the interpreter
	interpreterIdx := 0
	for i, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			interpreterIdx = i
			break
		}
		// If all args are flags, we can't find an interpreter
		if i == len(args)-1 {
			return ShebangInfo{Found: false}
		}
	}

	return ShebangInfo{
		Interpreter: args[interpreterIdx],
		Args:        args[interpreterIdx+1:],
		Found:       true,
	}
}

// InterpreterBase returns the base name of an interpreter path with any
// Windows executable extension stripped (e.g., "/usr/bin/python3" -> "python3").
func InterpreterBase(interpreter string) string {
	base := filepath.Base(interpreter)
	return strings.TrimSuffix(base, ".exe")
}

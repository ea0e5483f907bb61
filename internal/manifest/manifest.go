// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// ErrInvalidRequirement is the sentinel error wrapped by InvalidRequirementError.
var ErrInvalidRequirement = errors.New("invalid requirement")

// ErrDuplicateRequirement is the sentinel error wrapped by DuplicateRequirementError.
var ErrDuplicateRequirement = errors.New("duplicate requirement")

// constraintOps are the version constraint operators, longest first so that
// two-character operators win over their one-character prefixes.
var constraintOps = []string{"==", ">=", "<=", "~=", "!=", "<", ">"}

// namePattern matches a package specifier name: letters, digits, and
// separators (-, _, .), starting and ending with a letter or digit.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

type (
	// Requirement is a single declared dependency: a package name with an
	// optional version constraint.
	Requirement struct {
		// Name is the normalized (lowercased) package name.
		Name string
		// Op is the constraint operator ("==", ">=", ...) or empty when
		// the requirement is unpinned.
		Op string
		// Version is the constraint version, empty when unpinned.
		Version string
	}

	// Manifest is the parsed dependency manifest: the declarative list of
	// packages the application needs, read once at build time.
	Manifest struct {
		// Path is the manifest file path on the host (informational).
		Path string
		// Requirements are the declared dependencies in file order.
		Requirements []Requirement
	}

	// InvalidRequirementError is returned when a manifest line cannot be
	// parsed as a package specifier.
	InvalidRequirementError struct {
		File string
		Line int
		Text string
	}

	// DuplicateRequirementError is returned when the same package name is
	// declared more than once.
	DuplicateRequirementError struct {
		File string
		Line int
		Name string
	}
)

// Error implements the error interface.
func (e *InvalidRequirementError) Error() string {
	return fmt.Sprintf("%s:%d: invalid requirement %q", e.File, e.Line, e.Text)
}

// Unwrap returns ErrInvalidRequirement so callers can use errors.Is for programmatic detection.
func (e *InvalidRequirementError) Unwrap() error { return ErrInvalidRequirement }

// Error implements the error interface.
func (e *DuplicateRequirementError) Error() string {
	return fmt.Sprintf("%s:%d: duplicate requirement %q", e.File, e.Line, e.Name)
}

// Unwrap returns ErrDuplicateRequirement so callers can use errors.Is for programmatic detection.
func (e *DuplicateRequirementError) Unwrap() error { return ErrDuplicateRequirement }

// String returns the requirement in manifest line format.
func (r Requirement) String() string {
	if r.Op == "" {
		return r.Name
	}
	return r.Name + r.Op + r.Version
}

// IsPinned returns true if the requirement carries an exact version pin.
func (r Requirement) IsPinned() bool {
	return r.Op == "=="
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest '%s': %w", path, err)
	}
	return Parse(content, path)
}

// Parse parses manifest content in the one-specifier-per-line format:
//   - Lines starting with # are comments
//   - Empty lines are ignored
//   - Inline comments after a specifier (" #...") are stripped
//   - A specifier is a package name optionally followed by a version
//     constraint (==, >=, <=, ~=, !=, <, >)
//
// The filename parameter is used for error messages.
func Parse(content []byte, filename string) (*Manifest, error) {
	m := &Manifest{Path: filename}
	seen := make(map[string]bool)

	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lineNum := i + 1

		line = strings.TrimSuffix(line, "\r")
		line = strings.TrimSpace(line)

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Strip inline comments
		if idx := strings.Index(line, " #"); idx != -1 {
			line = strings.TrimSpace(line[:idx])
		}

		req, err := parseRequirement(line)
		if err != nil {
			return nil, &InvalidRequirementError{File: filename, Line: lineNum, Text: line}
		}

		if seen[req.Name] {
			return nil, &DuplicateRequirementError{File: filename, Line: lineNum, Name: req.Name}
		}
		seen[req.Name] = true

		m.Requirements = append(m.Requirements, req)
	}

	return m, nil
}

// parseRequirement parses a single specifier line into a Requirement.
func parseRequirement(line string) (Requirement, error) {
	name := line
	op := ""
	version := ""

	for _, candidate := range constraintOps {
		if idx := strings.Index(line, candidate); idx != -1 {
			name = strings.TrimSpace(line[:idx])
			op = candidate
			version = strings.TrimSpace(line[idx+len(candidate):])
			break
		}
	}

	if !namePattern.MatchString(name) {
		return Requirement{}, ErrInvalidRequirement
	}
	if op != "" && version == "" {
		return Requirement{}, ErrInvalidRequirement
	}

	return Requirement{
		Name:    strings.ToLower(name),
		Op:      op,
		Version: version,
	}, nil
}

// Names returns the declared package names in file order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Requirements))
	for _, r := range m.Requirements {
		names = append(names, r.Name)
	}
	return names
}

// Canonical returns the manifest in canonical form: normalized specifiers,
// sorted by package name, one per line. Two manifests that declare the same
// dependency set have the same canonical form regardless of ordering,
// comments, or whitespace.
func (m *Manifest) Canonical() string {
	specs := make([]string, 0, len(m.Requirements))
	for _, r := range m.Requirements {
		specs = append(specs, r.String())
	}
	sort.Strings(specs)
	return strings.Join(specs, "\n") + "\n"
}

// Hash returns the sha256 hex digest of the canonical form. It feeds the
// snapshot cache key: an unchanged dependency set yields an unchanged hash.
func (m *Manifest) Hash() string {
	sum := sha256.Sum256([]byte(m.Canonical()))
	return hex.EncodeToString(sum[:])
}

// SPDX-License-Identifier: MPL-2.0

package appfile

import (
	"errors"
	"testing"
)

func TestFlavorForExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext  string
		want string
	}{
		{".py", "python"},
		{".PY", "python"},
		{".js", "node"},
		{".rb", "ruby"},
		{".sh", "shell"},
	}

	for _, tt := range tests {
		f, err := FlavorForExtension(tt.ext)
		if err != nil {
			t.Errorf("FlavorForExtension(%q) error: %v", tt.ext, err)
			continue
		}
		if f.Name != tt.want {
			t.Errorf("FlavorForExtension(%q) = %q, want %q", tt.ext, f.Name, tt.want)
		}
	}

	if _, err := FlavorForExtension(".go"); !errors.Is(err, ErrUnknownFlavor) {
		t.Errorf("expected ErrUnknownFlavor for .go, got %v", err)
	}
}

func TestFlavorForInterpreter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		interpreter string
		want        string
	}{
		{"python3", "python"},
		{"/usr/bin/python3", "python"},
		{"python2", "python"},
		{"node", "node"},
		{"nodejs", "node"},
		{"ruby", "ruby"},
		{"/bin/bash", "shell"},
		{"dash", "shell"},
		{"zsh", "shell"},
	}

	for _, tt := range tests {
		f, err := FlavorForInterpreter(tt.interpreter)
		if err != nil {
			t.Errorf("FlavorForInterpreter(%q) error: %v", tt.interpreter, err)
			continue
		}
		if f.Name != tt.want {
			t.Errorf("FlavorForInterpreter(%q) = %q, want %q", tt.interpreter, f.Name, tt.want)
		}
	}

	_, err := FlavorForInterpreter("perl")
	if !errors.Is(err, ErrUnknownFlavor) {
		t.Errorf("expected ErrUnknownFlavor for perl, got %v", err)
	}
	var unknownErr *UnknownFlavorError
	if !errors.As(err, &unknownErr) {
		t.Error("expected *UnknownFlavorError in chain")
	}
}

func TestInstallCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		flavor string
		want   string
	}{
		{"python", "pip install --no-cache-dir -r requirements.txt"},
		{"node", "xargs -a packages.txt npm install --no-audit --no-fund"},
		{"ruby", "xargs -a gems.txt gem install --no-document"},
	}

	for _, tt := range tests {
		f, err := FlavorByName(tt.flavor)
		if err != nil {
			t.Fatalf("FlavorByName(%q) error: %v", tt.flavor, err)
		}
		if !f.SupportsManifest() {
			t.Errorf("flavor %q should support manifests", tt.flavor)
		}
		if got := f.InstallCommand(f.ManifestName); got != tt.want {
			t.Errorf("InstallCommand(%q) = %q, want %q", tt.flavor, got, tt.want)
		}
	}
}

func TestShellFlavorHasNoInstaller(t *testing.T) {
	t.Parallel()

	f, err := FlavorByName("shell")
	if err != nil {
		t.Fatal(err)
	}
	if f.SupportsManifest() {
		t.Error("shell flavor should not support manifests")
	}
	if f.InstallCommand("anything") != "" {
		t.Error("expected empty install command for shell flavor")
	}
}

func TestFlavorNames(t *testing.T) {
	t.Parallel()

	names := FlavorNames()
	if len(names) != 4 {
		t.Fatalf("expected 4 flavors, got %v", names)
	}
}

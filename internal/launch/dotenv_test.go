// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseEnvFile(t *testing.T) {
	content := `# Bot credentials
TOKEN=abc123
export API_URL=https://api.example.com

NAME="wild tree"
MOTD="line1\nline2"
LITERAL='a\nb'
EMPTY=
SPACED = trimmed
UNQUOTED=value # trailing comment
`

	env := make(map[string]string)
	if err := ParseEnvFile(env, []byte(content), ".env"); err != nil {
		t.Fatalf("ParseEnvFile failed: %v", err)
	}

	want := map[string]string{
		"TOKEN":    "abc123",
		"API_URL":  "https://api.example.com",
		"NAME":     "wild tree",
		"MOTD":     "line1\nline2",
		"LITERAL":  `a\nb`,
		"EMPTY":    "",
		"SPACED":   "trimmed",
		"UNQUOTED": "value",
	}
	for k, v := range want {
		if env[k] != v {
			t.Errorf("env[%q] = %q, want %q", k, env[k], v)
		}
	}
	if len(env) != len(want) {
		t.Errorf("env has %d entries, want %d: %v", len(env), len(want), env)
	}
}

func TestParseEnvFileOverrides(t *testing.T) {
	env := map[string]string{"TOKEN": "old"}
	if err := ParseEnvFile(env, []byte("TOKEN=new\n"), ".env"); err != nil {
		t.Fatalf("ParseEnvFile failed: %v", err)
	}
	if env["TOKEN"] != "new" {
		t.Errorf("TOKEN = %q, want new", env["TOKEN"])
	}
}

func TestParseEnvFileCRLF(t *testing.T) {
	env := make(map[string]string)
	if err := ParseEnvFile(env, []byte("A=1\r\nB=2\r\n"), ".env"); err != nil {
		t.Fatalf("ParseEnvFile failed: %v", err)
	}
	if env["A"] != "1" || env["B"] != "2" {
		t.Errorf("env = %v", env)
	}
}

func TestParseEnvFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantIn  string
	}{
		{"missing equals", "NOVALUE\n", ".env:1"},
		{"empty key", "=value\n", "empty variable name"},
		{"unterminated double quote", `KEY="abc` + "\n", "unterminated double quote"},
		{"unterminated single quote", "KEY='abc\n", "unterminated single quote"},
		{"bad escape", `KEY="a\x"` + "\n", "unsupported escape"},
		{"error names line", "OK=1\nBAD\n", ".env:2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := make(map[string]string)
			err := ParseEnvFile(env, []byte(tt.content), ".env")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantIn) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantIn)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("TOKEN=abc\n"), 0o644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	t.Run("absolute path", func(t *testing.T) {
		env := make(map[string]string)
		if err := LoadEnvFile(env, path, ""); err != nil {
			t.Fatalf("LoadEnvFile failed: %v", err)
		}
		if env["TOKEN"] != "abc" {
			t.Errorf("TOKEN = %q", env["TOKEN"])
		}
	})

	t.Run("relative to base dir", func(t *testing.T) {
		env := make(map[string]string)
		if err := LoadEnvFile(env, ".env", dir); err != nil {
			t.Fatalf("LoadEnvFile failed: %v", err)
		}
		if env["TOKEN"] != "abc" {
			t.Errorf("TOKEN = %q", env["TOKEN"])
		}
	})

	t.Run("missing required", func(t *testing.T) {
		env := make(map[string]string)
		if err := LoadEnvFile(env, filepath.Join(dir, "missing.env"), ""); err == nil {
			t.Error("expected error for missing required env file")
		}
	})

	t.Run("missing optional", func(t *testing.T) {
		env := make(map[string]string)
		if err := LoadEnvFile(env, filepath.Join(dir, "missing.env")+"?", ""); err != nil {
			t.Errorf("optional missing env file should not error: %v", err)
		}
		if len(env) != 0 {
			t.Errorf("env should stay empty, got %v", env)
		}
	})

	t.Run("present optional", func(t *testing.T) {
		env := make(map[string]string)
		if err := LoadEnvFile(env, path+"?", ""); err != nil {
			t.Fatalf("LoadEnvFile failed: %v", err)
		}
		if env["TOKEN"] != "abc" {
			t.Errorf("TOKEN = %q", env["TOKEN"])
		}
	})
}
